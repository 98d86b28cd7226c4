package pkg

import (
	"fmt"
)

// Range represents a range of candidate indices [Start, End)
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// SplitRange splits [0, total) into 'parts' contiguous ranges whose sizes differ by at most one.
// Returns an error if parts > total, callers that may have more workers than indices
// should clamp first.
func SplitRange(total int, parts int) ([]Range, error) {
	if parts <= 0 {
		return []Range{}, nil
	}

	if total <= 0 {
		return nil, fmt.Errorf("split empty range")
	}

	if parts > total {
		return nil, fmt.Errorf("parts (%d) exceed total size (%d)", parts, total)
	}

	ranges := make([]Range, parts)
	baseSize := total / parts
	remainder := total % parts

	start := 0
	for i := 0; i < parts; i++ {
		size := baseSize
		if i < remainder {
			size++ // first ranges take the remainder
		}

		ranges[i] = Range{
			Start: start,
			End:   start + size,
		}
		start += size
	}

	return ranges, nil
}

func ToPtr[T any](v T) *T {
	return &v
}
