package draft

import "context"

// Repository keeps live sessions addressable by id.
type Repository interface {
	Get(ctx context.Context, draftID string) (*Session, bool, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, draftID string) error
}

// Pruner is implemented by repositories that expire idle sessions.
type Pruner interface {
	PruneExpired(ctx context.Context) []string
}
