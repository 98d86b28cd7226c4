package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess(t *testing.T) {
	t.Run("every candidate has five letters", func(t *testing.T) {
		candidates, _ := Preprocess([]string{"abcde", "fjord", "gawky", "aabbc", "abc", "strengths", "vex"})

		require.Len(t, candidates, 3)
		for _, c := range candidates {
			assert.Equal(t, WordLength, c.Mask.Size(), c.Word)
		}
	})

	t.Run("first seen anagram is kept", func(t *testing.T) {
		candidates, stats := Preprocess([]string{"least", "slate", "stale", "steal", "tales"})

		require.Len(t, candidates, 1)
		assert.Equal(t, "least", candidates[0].Word)
		assert.Equal(t, 4, stats.Anagrams)
		assert.Equal(t, 1, stats.Candidates)
	})

	t.Run("rejects malformed lines", func(t *testing.T) {
		lines := []string{
			"",
			"abcd",
			"abcdef",
			"ab-de",
			"ab de",
			"llama",
			"ab3de",
			"über",
			"fghij",
		}

		candidates, stats := Preprocess(lines)

		require.Len(t, candidates, 1)
		assert.Equal(t, "fghij", candidates[0].Word)
		assert.Equal(t, len(lines), stats.Lines)
		assert.Equal(t, len(lines)-1, stats.Rejected)
		assert.Equal(t, 0, stats.Anagrams)
	})

	t.Run("case is normalized but spelling kept", func(t *testing.T) {
		candidates, stats := Preprocess([]string{"Fjord", "FJORD", "droFJ"})

		require.Len(t, candidates, 1)
		assert.Equal(t, "Fjord", candidates[0].Word)
		assert.Equal(t, 2, stats.Anagrams)
	})

	t.Run("padded lines are rejected", func(t *testing.T) {
		candidates, stats := Preprocess([]string{"  abcde ", "\tnymph", "fjord ", "waltz\r"})

		require.Len(t, candidates, 1)
		assert.Equal(t, "waltz", candidates[0].Word)
		assert.Equal(t, 3, stats.Rejected)
	})

	t.Run("output sorted by mask", func(t *testing.T) {
		candidates, _ := Preprocess([]string{"uvwxy", "klmno", "abcde", "pqrst", "fghij"})

		require.Len(t, candidates, 5)
		for i := 1; i < len(candidates); i++ {
			assert.Less(t, candidates[i-1].Mask, candidates[i].Mask)
		}
		assert.Equal(t, "abcde", candidates[0].Word)
		assert.Equal(t, "uvwxy", candidates[4].Word)
	})

	t.Run("order does not depend on input order", func(t *testing.T) {
		a, _ := Preprocess([]string{"abcde", "fghij", "klmno"})
		b, _ := Preprocess([]string{"klmno", "abcde", "fghij"})

		assert.Equal(t, a, b)
	})
}
