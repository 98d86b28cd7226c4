package distributor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/search"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/words"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/words/wordstest"
	"github.com/kestfor/FiveWordCliques/pkg"
	"github.com/kestfor/FiveWordCliques/pkg/set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t testing.TB, lines []string) *words.Index {
	t.Helper()
	candidates, _ := words.Preprocess(lines)
	idx, err := words.NewIndex(candidates)
	require.NoError(t, err)
	return idx
}

// sequential is the single-goroutine reference enumeration.
func sequential(t testing.TB, idx *words.Index) []search.Quintet {
	t.Helper()
	var all []search.Quintet
	e := search.New(idx)
	err := e.Range(context.Background(), pkg.Range{Start: 0, End: e.Len()}, func(q search.Quintet) bool {
		all = append(all, q)
		return true
	})
	require.NoError(t, err)
	return all
}

func TestDistributor_ParallelInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))
	idx := buildIndex(t, wordstest.Planted(rng, 25, 120))

	want := sequential(t, idx)
	require.NotEmpty(t, want)

	strategies := []string{finder.StrategyPairs, finder.StrategyStriped, finder.StrategyContiguous}
	workers := []int{1, 2, 3, 8, 64}

	for _, strategy := range strategies {
		for _, w := range workers {
			t.Run(fmt.Sprintf("%s/%d workers", strategy, w), func(t *testing.T) {
				d := New(idx, finder.Config{Workers: w, Strategy: strategy, ChunkSize: 37})

				out, err := d.Run(context.Background())
				require.NoError(t, err)

				assert.Equal(t, want, out.Solutions)
				assert.True(t, out.Complete)
				assert.Equal(t, out.TotalUnits, out.UnitsDone)
				assert.LessOrEqual(t, out.Workers, w)

				done, total, found := d.Progress()
				assert.Equal(t, total, done)
				assert.Equal(t, len(want), found)
			})
		}
	}
}

func TestDistributor_NoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	idx := buildIndex(t, wordstest.Planted(rng, 15, 40))

	for _, chunk := range []int{1, 5, 1000} {
		d := New(idx, finder.Config{Workers: 4, Strategy: finder.StrategyPairs, ChunkSize: chunk})
		out, err := d.Run(context.Background())
		require.NoError(t, err)

		seen := set.New[search.Quintet]()
		for _, q := range out.Solutions {
			assert.True(t, seen.Insert(q), "chunk %d: duplicate %v", chunk, q)
		}
	}
}

func TestDistributor_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"single quintuple", []string{"abcde", "fghij", "klmno", "pqrst", "uvwxy"}, 1},
		{"anagram", []string{"abcde", "fghij", "klmno", "pqrst", "uvwxy", "edcba"}, 1},
		{"overlap", []string{"abcde", "fghij", "klmno", "pqrst", "uvwxy", "abcdz"}, 1},
		{"too few candidates", []string{"abcde", "fghij"}, 0},
		{"no candidates", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := buildIndex(t, tt.lines)
			out, err := New(idx, finder.Config{Workers: 4}).Run(context.Background())
			require.NoError(t, err)
			assert.Len(t, out.Solutions, tt.want)
			assert.True(t, out.Complete)
		})
	}
}

func TestDistributor_Limit(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	idx := buildIndex(t, wordstest.Planted(rng, 30, 50))
	all := set.New(sequential(t, idx)...)
	require.Greater(t, all.Size(), 3)

	for _, strategy := range []string{finder.StrategyPairs, finder.StrategyStriped, finder.StrategyContiguous} {
		t.Run(strategy, func(t *testing.T) {
			d := New(idx, finder.Config{Workers: 4, Strategy: strategy, Limit: 3, ChunkSize: 16})

			out, err := d.Run(context.Background())
			require.NoError(t, err)

			assert.Len(t, out.Solutions, 3)
			assert.False(t, out.Complete)
			for _, q := range out.Solutions {
				assert.True(t, all.Contains(q))
			}
		})
	}

	t.Run("limit above solution count", func(t *testing.T) {
		d := New(idx, finder.Config{Workers: 4, Limit: all.Size() + 1})

		out, err := d.Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, out.Solutions, all.Size())
		assert.True(t, out.Complete)
	})
}

func TestDistributor_WorkerFailure(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	idx := buildIndex(t, wordstest.Planted(rng, 10, 40))

	d := New(idx, finder.Config{Workers: 4, Strategy: finder.StrategyStriped})
	run := d.runRange
	d.runRange = func(ctx context.Context, r pkg.Range, sink search.Sink) error {
		if r.Start == 3 {
			panic("bad memory")
		}
		return run(ctx, r, sink)
	}

	out, err := d.Run(context.Background())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, finder.ErrWorkerFailed)
}

func TestDistributor_Cancel(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	idx := buildIndex(t, wordstest.Planted(rng, 10, 40))

	ctx, cancel := context.WithCancel(context.Background())
	d := New(idx, finder.Config{Workers: 2})
	run := d.runRange
	d.runRange = func(ctx context.Context, r pkg.Range, sink search.Sink) error {
		cancel()
		return run(ctx, r, sink)
	}

	out, err := d.Run(ctx)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFirstCount(t *testing.T) {
	assert.Equal(t, 0, firstCount(0))
	assert.Equal(t, 0, firstCount(4))
	assert.Equal(t, 1, firstCount(5))
	assert.Equal(t, 96, firstCount(100))
}
