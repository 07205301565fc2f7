package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation league_settings does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestSettingsRowRoundTrip(t *testing.T) {
	settings := league.DefaultSettings()
	settings.LeagueName = "Office League"
	settings.SavedAt = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	row, err := settingsToRow(settings)
	if err != nil {
		t.Fatalf("settings to row: %v", err)
	}
	if row.ID != leagueSettingsRowID {
		t.Fatalf("unexpected row id %d", row.ID)
	}

	got, err := settingsFromRow(row)
	if err != nil {
		t.Fatalf("settings from row: %v", err)
	}
	if got.LeagueName != settings.LeagueName || got.Roster[roster.SlotUTIL] != 2 || !got.SavedAt.Equal(settings.SavedAt) {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestExportFromRowsKeepsPickOrder(t *testing.T) {
	header := rosterExportTableModel{DraftID: "d1", ExportedAt: time.Now()}
	rows := []rosterExportEntryTableModel{
		{DraftID: "d1", PickOrder: 1, PlayerName: "A", Position: "PG", Slot: "PG"},
		{DraftID: "d1", PickOrder: 2, PlayerName: "B", Position: "PG", Slot: "G"},
	}

	export := exportFromRows(header, rows)
	if len(export.Entries) != 2 || export.Entries[1].Slot != roster.SlotG || export.Entries[0].Player.Name != "A" {
		t.Fatalf("unexpected export: %+v", export)
	}
}
