package search

import (
	"context"
	"errors"

	"github.com/kestfor/FiveWordCliques/internal/services/finder/words"
	"github.com/kestfor/FiveWordCliques/pkg"
)

// Depth is the number of words in a solution.
const Depth = 5

// ErrStopped is returned when a Sink asked to stop the enumeration.
var ErrStopped = errors.New("search stopped by sink")

// Quintet holds strictly increasing candidate indices with pairwise disjoint masks.
type Quintet [Depth]int

// Sink receives every solution found. Returning false stops the enumeration.
type Sink func(q Quintet) bool

// Engine enumerates quintets over a candidate index. It holds no mutable state
// and may be shared by any number of goroutines.
type Engine struct {
	masks []words.Mask
}

func New(idx *words.Index) *Engine {
	return &Engine{masks: idx.Masks()}
}

func (e *Engine) Len() int {
	return len(e.masks)
}

// Range enumerates every solution whose first index lies in r.
// ctx is checked between first indices only.
func (e *Engine) Range(ctx context.Context, r pkg.Range, sink Sink) error {
	start := max(r.Start, 0)
	end := min(r.End, e.lastStart(0)+1)

	for i1 := start; i1 < end; i1++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !e.First(i1, sink) {
			return ErrStopped
		}
	}

	return nil
}

// First enumerates every solution starting with candidate i1.
// It reports false if the sink stopped the enumeration.
func (e *Engine) First(i1 int, sink Sink) bool {
	if i1 < 0 || i1 > e.lastStart(0) {
		return true
	}

	var chosen Quintet
	chosen[0] = i1
	return e.descend(&chosen, 1, e.masks[i1], i1+1, sink)
}

// Pair enumerates every solution starting with candidates i1 < i2.
// Overlapping pairs yield nothing.
func (e *Engine) Pair(i1, i2 int, sink Sink) bool {
	if i1 < 0 || i1 >= i2 || i2 > e.lastStart(1) {
		return true
	}

	if e.masks[i1]&e.masks[i2] != 0 {
		return true
	}

	var chosen Quintet
	chosen[0], chosen[1] = i1, i2
	return e.descend(&chosen, 2, e.masks[i1]|e.masks[i2], i2+1, sink)
}

// descend fills chosen[depth:] with candidates from 'from' onwards. union is the
// letters used by chosen[:depth].
func (e *Engine) descend(chosen *Quintet, depth int, union words.Mask, from int, sink Sink) bool {
	if depth == Depth {
		return sink(*chosen)
	}

	last := e.lastStart(depth)
	for c := from; c <= last; c++ {
		m := e.masks[c]
		if m&union != 0 {
			continue
		}

		chosen[depth] = c
		if !e.descend(chosen, depth+1, union|m, c+1, sink) {
			return false
		}
	}

	return true
}

// lastStart is the highest index that still leaves room for the remaining
// Depth-depth-1 picks after it.
func (e *Engine) lastStart(depth int) int {
	return len(e.masks) - (Depth - depth)
}

// Compare orders quintets lexicographically by index.
func Compare(a, b Quintet) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
