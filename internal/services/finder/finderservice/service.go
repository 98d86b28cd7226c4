package finderservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/kestfor/FiveWordCliques/internal/services/finder"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/distributor"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/notifier"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/search"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/words"
	"github.com/kestfor/FiveWordCliques/pkg"
)

type run struct {
	id     uuid.UUID
	idx    *words.Index
	stats  finder.Stats
	dist   *distributor.Distributor
	cancel context.CancelFunc

	// deleted runs stay in the map, hidden, until their workers have stopped.
	deleted atomic.Bool

	status atomic.Pointer[finder.Status]
	result atomic.Pointer[finder.Result]
}

type finderService struct {
	cfg       finder.Config
	notifiers []notifier.Notifier

	mu   sync.Mutex
	runs map[uuid.UUID]*run
}

var _ finder.Service = (*finderService)(nil)

func NewService(cfg *finder.Config, notifiers ...notifier.Notifier) (*finderService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &finderService{
		cfg:       cfg.WithDefaults(),
		notifiers: notifiers,
		runs:      make(map[uuid.UUID]*run),
	}, nil
}

func (s *finderService) Find(ctx context.Context, lines []string) (*finder.Result, error) {
	r, err := s.prepare(lines)
	if err != nil {
		return nil, err
	}

	result, err := s.execute(ctx, r)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *finderService) Submit(ctx context.Context, lines []string) (uuid.UUID, error) {
	r, err := s.prepare(lines)
	if err != nil {
		return uuid.Nil, err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	s.mu.Lock()
	active := 0
	for _, other := range s.runs {
		if other.result.Load() == nil {
			active++
		}
	}

	if active >= s.cfg.MaxRuns {
		s.mu.Unlock()
		cancel()
		return uuid.Nil, fmt.Errorf("%w: %d of %d", finder.ErrTooManyRuns, active, s.cfg.MaxRuns)
	}

	s.runs[r.id] = r
	s.mu.Unlock()

	go func() {
		defer cancel()
		_, _ = s.execute(runCtx, r)
		s.finish(r)
	}()

	return r.id, nil
}

func (s *finderService) Progress(ctx context.Context, runID uuid.UUID) (*finder.Progress, error) {
	r, err := s.get(runID)
	if err != nil {
		return nil, err
	}

	done, total, found := r.dist.Progress()
	progress := &finder.Progress{
		RunID:          r.id,
		Status:         *r.status.Load(),
		UnitsDone:      done,
		TotalUnits:     total,
		SolutionsFound: found,
	}

	if result := r.result.Load(); result != nil {
		progress.Error = result.Error
		progress.SolutionsFound = len(result.Solutions)
	}

	return progress, nil
}

func (s *finderService) Result(ctx context.Context, runID uuid.UUID) (*finder.Result, error) {
	r, err := s.get(runID)
	if err != nil {
		return nil, err
	}

	result := r.result.Load()
	if result == nil {
		return nil, finder.ErrRunNotReady
	}

	return result, nil
}

// Delete forgets a run. A run that is still searching is cancelled and keeps
// counting against MaxRuns until its workers have joined.
func (s *finderService) Delete(ctx context.Context, runID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[runID]
	if !ok || r.deleted.Load() {
		return finder.ErrRunNotFound
	}

	if r.result.Load() != nil {
		delete(s.runs, runID)
		return nil
	}

	r.deleted.Store(true)
	if r.cancel != nil {
		r.cancel()
	}

	return nil
}

// finish drops a deleted run once its result is stored.
func (s *finderService) finish(r *run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.deleted.Load() {
		delete(s.runs, r.id)
	}
}

func (s *finderService) get(runID uuid.UUID) (*run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[runID]
	if !ok || r.deleted.Load() {
		return nil, finder.ErrRunNotFound
	}

	return r, nil
}

// prepare builds the candidate index before any worker starts.
func (s *finderService) prepare(lines []string) (*run, error) {
	candidates, stats := words.Preprocess(lines)

	idx, err := words.NewIndex(candidates)
	if err != nil {
		return nil, fmt.Errorf("build candidate index: %w", err)
	}

	r := &run{
		id:    uuid.New(),
		idx:   idx,
		stats: stats,
		dist:  distributor.New(idx, s.cfg),
	}
	r.status.Store(pkg.ToPtr(finder.StatusNotStarted))

	slog.Info("word list preprocessed",
		slog.String("run_id", r.id.String()),
		slog.Int("lines", stats.Lines),
		slog.Int("rejected", stats.Rejected),
		slog.Int("anagrams", stats.Anagrams),
		slog.Int("candidates", stats.Candidates),
	)

	return r, nil
}

func (s *finderService) execute(ctx context.Context, r *run) (*finder.Result, error) {
	r.status.Store(pkg.ToPtr(finder.StatusInProgress))

	slog.Info("search started",
		slog.String("run_id", r.id.String()),
		slog.Int("workers", s.cfg.Workers),
		slog.String("strategy", s.cfg.Strategy),
		slog.Int("limit", s.cfg.Limit),
	)

	out, err := r.dist.Run(ctx)
	if err != nil {
		result := &finder.Result{
			RunID:     r.id,
			Status:    finder.StatusError,
			Stats:     r.stats,
			Solutions: []finder.Solution{},
			Error:     err.Error(),
		}
		r.result.Store(result)
		r.status.Store(pkg.ToPtr(finder.StatusError))
		s.notify(result)

		return nil, fmt.Errorf("run %s: %w", r.id, err)
	}

	result := &finder.Result{
		RunID:     r.id,
		Status:    finder.StatusReady,
		Stats:     r.stats,
		Complete:  out.Complete,
		Solutions: toSolutions(r.idx, out.Solutions),
	}
	r.result.Store(result)
	r.status.Store(pkg.ToPtr(finder.StatusReady))

	slog.Debug("search finished",
		slog.String("run_id", r.id.String()),
		slog.Int("solutions", len(result.Solutions)),
		slog.Bool("complete", out.Complete),
		slog.Int("workers", out.Workers),
		slog.Duration("elapsed", out.Elapsed),
	)

	s.notify(result)

	return result, nil
}

func (s *finderService) notify(result *finder.Result) {
	for _, n := range s.notifiers {
		if err := n.Notify(result); err != nil {
			slog.Warn("notify failed",
				slog.String("run_id", result.RunID.String()),
				slog.Any("error", err),
			)
		}
	}
}

func toSolutions(idx *words.Index, quintets []search.Quintet) []finder.Solution {
	solutions := make([]finder.Solution, len(quintets))
	for i, q := range quintets {
		for j, c := range q {
			solutions[i][j] = idx.Word(c)
		}
	}
	return solutions
}
