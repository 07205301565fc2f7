package league

import "context"

// Repository persists the single league configuration. A missing
// configuration is reported with exists=false, not an error.
type Repository interface {
	Get(ctx context.Context) (Settings, bool, error)
	Save(ctx context.Context, settings Settings) error
	Delete(ctx context.Context) error
}
