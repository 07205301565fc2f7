package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
)

// PlayerLoader serves a fixed player list as a catalog source.
type PlayerLoader struct {
	mu      sync.RWMutex
	players []player.Player
}

func NewPlayerLoader(players []player.Player) *PlayerLoader {
	return &PlayerLoader{players: append([]player.Player(nil), players...)}
}

func (l *PlayerLoader) Load(_ context.Context) ([]player.Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]player.Player, 0, len(l.players))
	out = append(out, l.players...)
	return out, nil
}

// Replace swaps the served list; cached catalogs keep the old one until they expire.
func (l *PlayerLoader) Replace(players []player.Player) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.players = append([]player.Player(nil), players...)
}
