package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/draft-companion/internal/domain/league"
)

type LeagueRepository struct {
	mu       sync.RWMutex
	settings league.Settings
	exists   bool
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{}
}

func (r *LeagueRepository) Get(_ context.Context) (league.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return league.Settings{}, false, nil
	}
	return cloneSettings(r.settings), true, nil
}

func (r *LeagueRepository) Save(_ context.Context, settings league.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = cloneSettings(settings)
	r.exists = true
	return nil
}

func (r *LeagueRepository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = league.Settings{}
	r.exists = false
	return nil
}

func cloneSettings(settings league.Settings) league.Settings {
	copied := settings
	copied.Roster = maps.Clone(settings.Roster)
	return copied
}
