package finder

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// Find runs the whole pipeline and blocks until every worker has joined.
	Find(ctx context.Context, lines []string) (*Result, error)
	Submit(ctx context.Context, lines []string) (uuid.UUID, error)
	Progress(ctx context.Context, runID uuid.UUID) (*Progress, error)
	Result(ctx context.Context, runID uuid.UUID) (*Result, error)
	Delete(ctx context.Context, runID uuid.UUID) error
}
