package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	qb "github.com/riskibarqy/draft-companion/internal/platform/querybuilder"
)

const leagueSettingsUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	league_name = EXCLUDED.league_name,
	num_teams = EXCLUDED.num_teams,
	draft_position = EXCLUDED.draft_position,
	roster = EXCLUDED.roster,
	bench_slots = EXCLUDED.bench_slots,
	total_starter_slots = EXCLUDED.total_starter_slots,
	saved_at = EXCLUDED.saved_at,
	updated_at = NOW()`

// LeagueRepository stores the single league configuration row.
type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Get(ctx context.Context) (league.Settings, bool, error) {
	query, args, err := qb.Select(qb.Columns(leagueSettingsTableModel{})...).
		From("league_settings").
		Where(qb.Eq("id", leagueSettingsRowID)).
		ToSQL()
	if err != nil {
		return league.Settings{}, false, fmt.Errorf("build get league settings query: %w", err)
	}

	var row leagueSettingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Settings{}, false, nil
		}
		return league.Settings{}, false, fmt.Errorf("get league settings: %w", err)
	}

	settings, err := settingsFromRow(row)
	if err != nil {
		return league.Settings{}, false, err
	}
	return settings, true, nil
}

func (r *LeagueRepository) Save(ctx context.Context, settings league.Settings) error {
	row, err := settingsToRow(settings)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("league_settings", row, leagueSettingsUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert league settings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league settings: %w", err)
	}
	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("league_settings").Where(qb.Eq("id", leagueSettingsRowID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete league settings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete league settings: %w", err)
	}
	return nil
}

func settingsToRow(settings league.Settings) (leagueSettingsTableModel, error) {
	capacities, err := sonic.MarshalString(settings.Roster)
	if err != nil {
		return leagueSettingsTableModel{}, fmt.Errorf("encode roster capacities: %w", err)
	}
	return leagueSettingsTableModel{
		ID:                leagueSettingsRowID,
		LeagueName:        settings.LeagueName,
		NumTeams:          settings.NumTeams,
		DraftPosition:     settings.DraftPosition,
		Roster:            capacities,
		BenchSlots:        settings.BenchSlots,
		TotalStarterSlots: settings.TotalStarterSlots,
		SavedAt:           settings.SavedAt.UTC(),
	}, nil
}

func settingsFromRow(row leagueSettingsTableModel) (league.Settings, error) {
	capacities := make(map[roster.Slot]int)
	if err := sonic.UnmarshalString(row.Roster, &capacities); err != nil {
		return league.Settings{}, fmt.Errorf("decode roster capacities: %w", err)
	}
	return league.Settings{
		LeagueName:        row.LeagueName,
		NumTeams:          row.NumTeams,
		DraftPosition:     row.DraftPosition,
		Roster:            capacities,
		BenchSlots:        row.BenchSlots,
		TotalStarterSlots: row.TotalStarterSlots,
		SavedAt:           row.SavedAt.UTC(),
	}, nil
}
