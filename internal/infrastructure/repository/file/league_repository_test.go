package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

func TestLeagueRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "league.yaml")
	repo := NewLeagueRepository(path)

	if _, exists, err := repo.Get(ctx); err != nil || exists {
		t.Fatalf("expected no settings, exists=%v err=%v", exists, err)
	}

	settings := league.DefaultSettings()
	settings.LeagueName = "Office League"
	settings.Roster[roster.SlotUTIL] = 3
	settings.SavedAt = time.Date(2026, 10, 2, 8, 30, 0, 0, time.UTC)
	if err := repo.Save(ctx, settings); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(raw), "league_name: Office League") {
		t.Fatalf("expected yaml keys, got:\n%s", raw)
	}

	got, exists, err := repo.Get(ctx)
	if err != nil || !exists {
		t.Fatalf("get: exists=%v err=%v", exists, err)
	}
	if got.LeagueName != "Office League" || got.Roster[roster.SlotUTIL] != 3 || !got.SavedAt.Equal(settings.SavedAt) {
		t.Fatalf("unexpected settings: %+v", got)
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, exists, _ := repo.Get(ctx); exists {
		t.Fatalf("expected settings to be gone")
	}
}

func TestLeagueRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.yaml")
	if err := os.WriteFile(path, []byte("num_teams: [oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := NewLeagueRepository(path).Get(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
