package notifier

import (
	"log/slog"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
)

type logNotifier struct{}

func NewLogNotifier() *logNotifier {
	return &logNotifier{}
}

func (n *logNotifier) Notify(result *finder.Result) error {
	if result.Status == finder.StatusError {
		slog.Error("run failed",
			slog.String("run_id", result.RunID.String()),
			slog.String("error", result.Error),
		)
		return nil
	}

	slog.Info("run finished",
		slog.String("run_id", result.RunID.String()),
		slog.Int("candidates", result.Stats.Candidates),
		slog.Int("solutions", len(result.Solutions)),
		slog.Bool("complete", result.Complete),
	)

	return nil
}
