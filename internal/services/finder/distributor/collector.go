package distributor

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/kestfor/FiveWordCliques/internal/services/finder/search"
)

// collector is the only state shared for writing between workers.
type collector struct {
	mu        sync.Mutex
	solutions []search.Quintet

	limit int
	full  atomic.Bool
}

func newCollector(limit int) *collector {
	return &collector{limit: limit}
}

// add reports false once the limit is reached, which stops the calling worker.
func (c *collector) add(q search.Quintet) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.limit > 0 && len(c.solutions) >= c.limit {
		return false
	}

	c.solutions = append(c.solutions, q)

	if c.limit > 0 && len(c.solutions) == c.limit {
		c.full.Store(true)
		return false
	}

	return true
}

func (c *collector) Full() bool {
	return c.full.Load()
}

func (c *collector) Found() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.solutions)
}

// Sorted returns a sorted copy of the collected solutions.
func (c *collector) Sorted() []search.Quintet {
	c.mu.Lock()
	out := slices.Clone(c.solutions)
	c.mu.Unlock()

	slices.SortFunc(out, search.Compare)
	return out
}
