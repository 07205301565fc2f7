package roster

import "context"

// ExportRepository stores finished rosters for the "my team" view.
type ExportRepository interface {
	Save(ctx context.Context, export Export) error
	GetLatest(ctx context.Context) (Export, bool, error)
}
