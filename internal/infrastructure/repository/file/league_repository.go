package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"gopkg.in/yaml.v3"
)

// LeagueRepository keeps league settings in a YAML document on disk. Writes go
// to a temp file first and are renamed into place.
type LeagueRepository struct {
	mu   sync.Mutex
	path string
}

func NewLeagueRepository(path string) *LeagueRepository {
	return &LeagueRepository{path: path}
}

func (r *LeagueRepository) Get(_ context.Context) (league.Settings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return league.Settings{}, false, nil
		}
		return league.Settings{}, false, fmt.Errorf("read league settings file: %w", err)
	}

	var settings league.Settings
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return league.Settings{}, false, fmt.Errorf("decode league settings file: %w", err)
	}
	return settings, true, nil
}

func (r *LeagueRepository) Save(_ context.Context, settings league.Settings) error {
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode league settings: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".league-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp settings file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

func (r *LeagueRepository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove league settings file: %w", err)
	}
	return nil
}
