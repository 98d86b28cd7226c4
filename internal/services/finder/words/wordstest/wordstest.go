// Package wordstest generates word lists with known solutions for tests.
package wordstest

import (
	"math/rand/v2"

	"github.com/kestfor/FiveWordCliques/internal/services/finder/words"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// Planted hides 'partitions' random 25-letter partitions (five words each)
// among 'noise' random five-letter words and shuffles the lot.
func Planted(rng *rand.Rand, partitions, noise int) []string {
	out := make([]string, 0, partitions*5+noise)

	for p := 0; p < partitions; p++ {
		perm := rng.Perm(len(letters))
		for g := 0; g < 5; g++ {
			out = append(out, word(perm[g*words.WordLength:]))
		}
	}

	for n := 0; n < noise; n++ {
		out = append(out, word(rng.Perm(len(letters))))
	}

	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func word(perm []int) string {
	w := make([]byte, words.WordLength)
	for i := range w {
		w[i] = letters[perm[i]]
	}
	return string(w)
}
