package words

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
)

// Candidate is a unique letter mask with the first word seen carrying it.
type Candidate struct {
	Mask Mask
	Word string
}

// Preprocess filters raw lines down to five-letter words without repeated letters
// and collapses anagrams onto the first word seen. Malformed lines are skipped.
// The result is sorted by ascending mask.
func Preprocess(lines []string) ([]Candidate, finder.Stats) {
	stats := finder.Stats{Lines: len(lines)}
	kept := make(map[Mask]string)
	candidates := make([]Candidate, 0)

	for _, line := range lines {
		// only a carriage return from CRLF files is stripped, padded lines are not five letters
		word := strings.TrimSuffix(line, "\r")

		mask, ok := candidateMask(word)
		if !ok {
			stats.Rejected++
			continue
		}

		if existing, ok := kept[mask]; ok {
			stats.Anagrams++
			slog.Debug("anagram already in the list",
				slog.String("word", word),
				slog.String("kept", existing),
			)
			continue
		}

		kept[mask] = word
		candidates = append(candidates, Candidate{Mask: mask, Word: word})
		slog.Debug("word added", slog.String("word", word))
	}

	slices.SortFunc(candidates, compareCandidates)
	stats.Candidates = len(candidates)

	return candidates, stats
}

func candidateMask(word string) (Mask, bool) {
	if len(word) != WordLength {
		return 0, false
	}

	mask, ok := MaskOf(strings.ToLower(word))
	if !ok || mask.Size() != WordLength {
		return 0, false
	}

	return mask, true
}

func compareCandidates(a, b Candidate) int {
	switch {
	case a.Mask < b.Mask:
		return -1
	case a.Mask > b.Mask:
		return 1
	default:
		return 0
	}
}
