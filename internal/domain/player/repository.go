package player

import "context"

// Loader produces the raw player list for a draft session.
type Loader interface {
	Load(ctx context.Context) ([]Player, error)
}
