package distributor

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/search"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/words"
	"github.com/kestfor/FiveWordCliques/pkg"
	"golang.org/x/sync/errgroup"
)

type Outcome struct {
	// Solutions sorted by index tuple.
	Solutions  []search.Quintet
	Complete   bool
	UnitsDone  int64
	TotalUnits int64
	Workers    int
	Elapsed    time.Duration
}

// Distributor runs one exhaustive search over an index with several workers.
// Work is laid out as a flat range of cells: a cell is a first index for the
// contiguous and striped strategies and an (i1, i2) pair for the pairs strategy.
type Distributor struct {
	idx    *words.Index
	engine *search.Engine
	cfg    finder.Config

	collector *collector
	cursor    atomic.Int64
	unitsDone atomic.Int64
	total     int64
	stop      atomic.Bool

	// runRange searches a claimed range of cells. It returns search.ErrStopped
	// when the sink refused a solution.
	runRange func(ctx context.Context, r pkg.Range, sink search.Sink) error
}

func New(idx *words.Index, cfg finder.Config) *Distributor {
	cfg = cfg.WithDefaults()

	d := &Distributor{
		idx:       idx,
		engine:    search.New(idx),
		cfg:       cfg,
		collector: newCollector(cfg.Limit),
	}

	firsts := firstCount(idx.Len())
	if cfg.Strategy == finder.StrategyPairs {
		n := idx.Len()
		d.total = int64(firsts) * int64(n)
		d.runRange = d.pairs
	} else {
		d.total = int64(firsts)
		d.runRange = d.engine.Range
	}

	return d
}

// Progress returns cells searched, total cells and solutions collected so far.
func (d *Distributor) Progress() (done, total int64, found int) {
	return d.unitsDone.Load(), d.total, d.collector.Found()
}

// Run blocks until every worker has joined. On any worker failure or
// cancellation no solutions are returned.
func (d *Distributor) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()

	workers := d.cfg.Workers
	if int64(workers) > d.total {
		workers = int(d.total)
	}

	if workers == 0 {
		return &Outcome{Solutions: []search.Quintet{}, Complete: true}, nil
	}

	claims, err := d.claims(workers)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	stopOnCancel := context.AfterFunc(gctx, func() { d.stop.Store(true) })
	defer stopOnCancel()

	if d.cfg.ProgressPeriod > 0 {
		reportCtx, cancelReport := context.WithCancel(gctx)
		defer cancelReport()
		go d.report(reportCtx, d.cfg.ProgressPeriod)
	}

	slog.Debug("search started",
		slog.Int("candidates", d.idx.Len()),
		slog.Int("workers", workers),
		slog.String("strategy", d.cfg.Strategy),
		slog.Int64("total_units", d.total),
	)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return d.work(gctx, w, claims(w))
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Outcome{
		Solutions:  d.collector.Sorted(),
		Complete:   !d.collector.Full(),
		UnitsDone:  d.unitsDone.Load(),
		TotalUnits: d.total,
		Workers:    workers,
		Elapsed:    time.Since(start),
	}, nil
}

func (d *Distributor) claims(workers int) (func(w int) iter.Seq[pkg.Range], error) {
	total := int(d.total)

	switch d.cfg.Strategy {
	case finder.StrategyContiguous:
		ranges, err := pkg.SplitRange(total, workers)
		if err != nil {
			return nil, err
		}
		return func(w int) iter.Seq[pkg.Range] {
			return func(yield func(pkg.Range) bool) {
				for cell := ranges[w].Start; cell < ranges[w].End; cell++ {
					if !yield(pkg.Range{Start: cell, End: cell + 1}) {
						return
					}
				}
			}
		}, nil

	case finder.StrategyStriped:
		return func(w int) iter.Seq[pkg.Range] {
			return func(yield func(pkg.Range) bool) {
				for cell := w; cell < total; cell += workers {
					if !yield(pkg.Range{Start: cell, End: cell + 1}) {
						return
					}
				}
			}
		}, nil

	case finder.StrategyPairs:
		chunk := d.cfg.ChunkSize
		return func(int) iter.Seq[pkg.Range] {
			return func(yield func(pkg.Range) bool) {
				for {
					start := int(d.cursor.Add(int64(chunk))) - chunk
					if start >= total {
						return
					}
					if !yield(pkg.Range{Start: start, End: min(start+chunk, total)}) {
						return
					}
				}
			}
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", finder.ErrInvalidConfig, d.cfg.Strategy)
	}
}

func (d *Distributor) work(ctx context.Context, w int, claims iter.Seq[pkg.Range]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d: %v", finder.ErrWorkerFailed, w, r)
		}
	}()

	sink := d.sink(ctx)

	for r := range claims {
		if d.stop.Load() {
			return ctx.Err()
		}

		err := d.runRange(ctx, r, sink)
		if errors.Is(err, search.ErrStopped) {
			// limit reached, tell the others
			d.stop.Store(true)
			return nil
		}
		if err != nil {
			return err
		}

		d.unitsDone.Add(int64(r.Len()))
	}

	return nil
}

// pairs searches cells of the (i1, i2) grid, checking the stop flag per cell.
func (d *Distributor) pairs(ctx context.Context, r pkg.Range, sink search.Sink) error {
	n := d.engine.Len()

	for cell := r.Start; cell < r.End; cell++ {
		if d.stop.Load() {
			return ctx.Err()
		}

		if !d.engine.Pair(cell/n, cell%n, sink) {
			return search.ErrStopped
		}
	}

	return nil
}

func (d *Distributor) sink(ctx context.Context) search.Sink {
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return d.collector.add
	}

	return func(q search.Quintet) bool {
		found := make([]string, 0, search.Depth)
		for _, i := range q {
			found = append(found, d.idx.Word(i))
		}
		slog.Debug("found", slog.Any("words", found))
		return d.collector.add(q)
	}
}

func (d *Distributor) report(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		done, total, found := d.Progress()
		percent := 0.0
		if total > 0 {
			percent = float64(done) / float64(total) * 100
		}
		slog.Info("search progress",
			slog.Int64("units_done", done),
			slog.Int64("total_units", total),
			slog.String("percent", fmt.Sprintf("%.1f", percent)),
			slog.Int("solutions", found),
		)
	}
}

// firstCount is the number of candidates that can open a quintet.
func firstCount(n int) int {
	return max(n-(search.Depth-1), 0)
}
