package words

import (
	"math/bits"
	"strings"
)

const (
	WordLength = 5
	alphabet   = 26
)

// Mask has bit i set iff the i-th letter of the latin alphabet occurs in the word.
type Mask uint32

// MaskOf returns the mask of a lowercase word and false if the word contains
// anything but a-z.
func MaskOf(word string) (Mask, bool) {
	var m Mask
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return 0, false
		}
		m |= 1 << (c - 'a')
	}
	return m, true
}

func (m Mask) Size() int {
	return bits.OnesCount32(uint32(m))
}

func (m Mask) Disjoint(other Mask) bool {
	return m&other == 0
}

// Letters lists the mask's letters in alphabetical order.
func (m Mask) Letters() string {
	var b strings.Builder
	for i := 0; i < alphabet; i++ {
		if m&(1<<i) != 0 {
			b.WriteByte(byte('a' + i))
		}
	}
	return b.String()
}
