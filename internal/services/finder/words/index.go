package words

import (
	"fmt"
	"slices"

	"github.com/kestfor/FiveWordCliques/pkg/set"
)

// Index is the immutable, mask-ordered candidate sequence shared by all search workers.
type Index struct {
	masks []Mask
	words []string
}

// NewIndex copies candidates into an index ordered by ascending mask.
// Every mask must have five letters and appear once.
func NewIndex(candidates []Candidate) (*Index, error) {
	sorted := slices.Clone(candidates)
	slices.SortFunc(sorted, compareCandidates)

	idx := &Index{
		masks: make([]Mask, len(sorted)),
		words: make([]string, len(sorted)),
	}

	seen := set.New[Mask]()
	for i, c := range sorted {
		if c.Mask.Size() != WordLength {
			return nil, fmt.Errorf("candidate %q has %d letters, want %d", c.Word, c.Mask.Size(), WordLength)
		}
		if !seen.Insert(c.Mask) {
			return nil, fmt.Errorf("candidate %q duplicates mask %s", c.Word, c.Mask.Letters())
		}

		idx.masks[i] = c.Mask
		idx.words[i] = c.Word
	}

	return idx, nil
}

func (x *Index) Len() int {
	return len(x.masks)
}

func (x *Index) Mask(i int) Mask {
	return x.masks[i]
}

func (x *Index) Word(i int) string {
	return x.words[i]
}

// Masks exposes the backing slice, callers must not modify it.
func (x *Index) Masks() []Mask {
	return x.masks
}
