package postgres

import "time"

const leagueSettingsRowID = 1

type leagueSettingsTableModel struct {
	ID                int       `db:"id"`
	LeagueName        string    `db:"league_name"`
	NumTeams          int       `db:"num_teams"`
	DraftPosition     int       `db:"draft_position"`
	Roster            string    `db:"roster"`
	BenchSlots        int       `db:"bench_slots"`
	TotalStarterSlots int       `db:"total_starter_slots"`
	SavedAt           time.Time `db:"saved_at"`
}

type rosterExportTableModel struct {
	DraftID    string    `db:"draft_id"`
	LeagueName string    `db:"league_name"`
	ExportedAt time.Time `db:"exported_at"`
}

type rosterExportEntryTableModel struct {
	DraftID         string  `db:"draft_id"`
	PickOrder       int     `db:"pick_order"`
	PlayerName      string  `db:"player_name"`
	Team            string  `db:"team"`
	Position        string  `db:"position"`
	PriorPoints     float64 `db:"prior_points"`
	ProjectedPoints float64 `db:"projected_points"`
	Slot            string  `db:"slot"`
}
