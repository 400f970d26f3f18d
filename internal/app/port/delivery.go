package port

import (
	"context"

	"alpha_radar/internal/domain/entity"
)

// Notifier delivers a pre-formatted Markdown message to one destination.
// It must not retry internally.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// SnapshotSink persists the ranked candidate list.
type SnapshotSink interface {
	Persist(ctx context.Context, candidates []entity.ScoredCandidate) error
	Name() string
}
