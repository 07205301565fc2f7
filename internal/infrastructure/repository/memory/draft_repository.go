package memory

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/platform/cache"
)

// DraftRepository holds live sessions by pointer. Callers serialize access to
// a session themselves. With a ttl, a session not saved within ttl expires.
type DraftRepository struct {
	sessions *cache.Store[*draft.Session]
}

func NewDraftRepository() *DraftRepository {
	return NewDraftRepositoryWithTTL(0, nil)
}

func NewDraftRepositoryWithTTL(ttl time.Duration, clock clockwork.Clock) *DraftRepository {
	return &DraftRepository{sessions: cache.NewStoreWithClock[*draft.Session](ttl, clock)}
}

func (r *DraftRepository) Get(ctx context.Context, draftID string) (*draft.Session, bool, error) {
	session, ok := r.sessions.Get(ctx, draftID)
	return session, ok, nil
}

func (r *DraftRepository) Save(ctx context.Context, session *draft.Session) error {
	r.sessions.Set(ctx, session.ID, session)
	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, draftID string) error {
	r.sessions.Delete(ctx, draftID)
	return nil
}

// PruneExpired evicts idle sessions and returns their ids.
func (r *DraftRepository) PruneExpired(ctx context.Context) []string {
	return r.sessions.PruneExpired(ctx)
}

func (r *DraftRepository) Len() int {
	return r.sessions.Len()
}
