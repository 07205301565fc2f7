package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	leaguemock "github.com/riskibarqy/draft-companion/internal/mocks/domain/league"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestSettingsService_SaveNormalizesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	fixedNow := time.Date(2026, 10, 1, 18, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	service := NewSettingsService(repo, logging.NewNop(), clockwork.NewFakeClockAt(fixedNow))

	repo.
		On("Save", ctx, mock.MatchedBy(func(s league.Settings) bool {
			return s.NumTeams == 10 && s.DraftPosition == 10 && s.TotalStarterSlots == 3
		})).
		Return(nil).
		Once()

	got, err := service.Save(ctx, SaveSettingsInput{
		LeagueName:    "  Office League ",
		NumTeams:      10,
		DraftPosition: 14,
		Roster:        map[roster.Slot]int{roster.SlotPG: 2, roster.SlotC: 1, roster.SlotUTIL: -4},
		BenchSlots:    -1,
	})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if got.LeagueName != "Office League" {
		t.Fatalf("expected trimmed league name, got %q", got.LeagueName)
	}
	if got.Roster[roster.SlotUTIL] != 0 || got.BenchSlots != 0 {
		t.Fatalf("expected negative capacities clamped, got %+v", got)
	}
	if !got.SavedAt.Equal(fixedNow) || got.SavedAt.Location() != time.UTC {
		t.Fatalf("expected savedAt from clock in UTC, got %v", got.SavedAt)
	}
}

func TestSettingsService_SaveRejectsUnknownSlot(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	service := NewSettingsService(repo, logging.NewNop(), nil)

	_, err := service.Save(context.Background(), SaveSettingsInput{
		NumTeams: 12,
		Roster:   map[roster.Slot]int{"WING": 1},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = service.Save(context.Background(), SaveSettingsInput{NumTeams: league.MaxNumTeams + 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for too many teams, got %v", err)
	}
}

func TestSettingsService_GetMissingUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	service := NewSettingsService(repo, logging.NewNop(), nil)

	repo.On("Get", ctx).Return(league.Settings{}, false, nil).Once()

	_, err := service.Get(ctx)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, draft.ErrConfigurationMissing) {
		t.Fatalf("expected configuration missing, got %v", err)
	}
}

func TestSettingsService_ResetStoresDefaultsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC))
	service := NewSettingsService(repo, logging.NewNop(), clock)

	repo.On("Delete", ctx).Return(nil).Once()
	repo.
		On("Save", ctx, mock.MatchedBy(func(s league.Settings) bool {
			return s.NumTeams == league.DefaultNumTeams && s.TotalStarterSlots == 9 && s.BenchSlots == 3
		})).
		Return(nil).
		Once()

	got, err := service.Reset(ctx)
	if err != nil {
		t.Fatalf("reset settings: %v", err)
	}
	if got.DraftPosition != 1 {
		t.Fatalf("expected default draft position, got %d", got.DraftPosition)
	}
	if !got.SavedAt.Equal(clock.Now()) {
		t.Fatalf("expected savedAt from the injected clock, got %v", got.SavedAt)
	}
}
