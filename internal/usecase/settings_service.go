package usecase

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

type SaveSettingsInput struct {
	LeagueName    string
	NumTeams      int
	DraftPosition int
	Roster        map[roster.Slot]int
	BenchSlots    int
}

type SettingsService struct {
	repo   league.Repository
	logger *logging.Logger
	clock  clockwork.Clock
}

func NewSettingsService(repo league.Repository, logger *logging.Logger, clock clockwork.Clock) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SettingsService{
		repo:   repo,
		logger: logger,
		clock:  clock,
	}
}

// Save normalizes the submitted form and replaces the stored configuration.
func (s *SettingsService) Save(ctx context.Context, input SaveSettingsInput) (league.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Save")
	defer span.End()

	for slot := range input.Roster {
		if !slot.Valid() || slot == roster.SlotBench {
			return league.Settings{}, fmt.Errorf("%w: unknown roster slot %q", ErrInvalidInput, slot)
		}
	}
	if input.NumTeams > league.MaxNumTeams {
		return league.Settings{}, fmt.Errorf("%w: num_teams must be at most %d", ErrInvalidInput, league.MaxNumTeams)
	}

	settings := league.Settings{
		LeagueName:    input.LeagueName,
		NumTeams:      input.NumTeams,
		DraftPosition: input.DraftPosition,
		Roster:        input.Roster,
		BenchSlots:    input.BenchSlots,
	}.Normalize()
	if err := settings.Validate(); err != nil {
		return league.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	settings.SavedAt = s.clock.Now().UTC()

	if err := s.repo.Save(ctx, settings); err != nil {
		return league.Settings{}, fmt.Errorf("save league settings: %w", err)
	}

	s.logger.InfoContext(ctx, "league settings saved",
		"num_teams", settings.NumTeams,
		"draft_position", settings.DraftPosition,
		"starter_slots", settings.TotalStarterSlots,
		"bench_slots", settings.BenchSlots,
	)
	return settings, nil
}

func (s *SettingsService) Get(ctx context.Context) (league.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Get")
	defer span.End()

	settings, exists, err := s.repo.Get(ctx)
	if err != nil {
		return league.Settings{}, fmt.Errorf("get league settings: %w", err)
	}
	if !exists {
		return league.Settings{}, fmt.Errorf("%w: %w", ErrNotFound, draft.ErrConfigurationMissing)
	}

	return settings.Normalize(), nil
}

// Reset replaces the stored configuration with the defaults.
func (s *SettingsService) Reset(ctx context.Context) (league.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Reset")
	defer span.End()

	if err := s.repo.Delete(ctx); err != nil {
		return league.Settings{}, fmt.Errorf("delete league settings: %w", err)
	}

	settings := league.DefaultSettings()
	settings.SavedAt = s.clock.Now().UTC()
	if err := s.repo.Save(ctx, settings); err != nil {
		return league.Settings{}, fmt.Errorf("save default league settings: %w", err)
	}

	s.logger.InfoContext(ctx, "league settings reset to defaults")
	return settings, nil
}
