package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	qb "github.com/riskibarqy/draft-companion/internal/platform/querybuilder"
)

type RosterExportRepository struct {
	db *sqlx.DB
}

func NewRosterExportRepository(db *sqlx.DB) *RosterExportRepository {
	return &RosterExportRepository{db: db}
}

// Save replaces any earlier export of the same draft.
func (r *RosterExportRepository) Save(ctx context.Context, export roster.Export) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("roster_exports").Where(qb.Eq("draft_id", export.DraftID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete roster export query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete roster export: %w", err)
		}

		header := rosterExportTableModel{
			DraftID:    export.DraftID,
			LeagueName: export.LeagueName,
			ExportedAt: export.ExportedAt.UTC(),
		}
		insertQuery, insertArgs, err := qb.InsertModel("roster_exports", header, "")
		if err != nil {
			return fmt.Errorf("build insert roster export query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert roster export: %w", err)
		}

		if len(export.Entries) == 0 {
			return nil
		}
		rows := make([]rosterExportEntryTableModel, 0, len(export.Entries))
		for i, entry := range export.Entries {
			rows = append(rows, rosterExportEntryTableModel{
				DraftID:         export.DraftID,
				PickOrder:       i + 1,
				PlayerName:      entry.Player.Name,
				Team:            entry.Player.Team,
				Position:        string(entry.Player.Position),
				PriorPoints:     entry.Player.PriorPoints,
				ProjectedPoints: entry.Player.ProjectedPoints,
				Slot:            string(entry.Slot),
			})
		}
		entriesQuery, entriesArgs, err := qb.InsertModels("roster_export_entries", rows, "")
		if err != nil {
			return fmt.Errorf("build insert roster entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, entriesQuery, entriesArgs...); err != nil {
			return fmt.Errorf("insert roster entries: %w", err)
		}
		return nil
	})
}

func (r *RosterExportRepository) GetLatest(ctx context.Context) (roster.Export, bool, error) {
	headerQuery, headerArgs, err := qb.Select(qb.Columns(rosterExportTableModel{})...).
		From("roster_exports").
		OrderBy("exported_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Export{}, false, fmt.Errorf("build latest roster export query: %w", err)
	}

	var header rosterExportTableModel
	if err := r.db.GetContext(ctx, &header, headerQuery, headerArgs...); err != nil {
		if isNotFound(err) {
			return roster.Export{}, false, nil
		}
		return roster.Export{}, false, fmt.Errorf("get latest roster export: %w", err)
	}

	entriesQuery, entriesArgs, err := qb.Select(qb.Columns(rosterExportEntryTableModel{})...).
		From("roster_export_entries").
		Where(qb.Eq("draft_id", header.DraftID)).
		OrderBy("pick_order").
		ToSQL()
	if err != nil {
		return roster.Export{}, false, fmt.Errorf("build roster entries query: %w", err)
	}

	var rows []rosterExportEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, entriesQuery, entriesArgs...); err != nil {
		return roster.Export{}, false, fmt.Errorf("select roster entries: %w", err)
	}

	return exportFromRows(header, rows), true, nil
}

func exportFromRows(header rosterExportTableModel, rows []rosterExportEntryTableModel) roster.Export {
	entries := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, roster.Entry{
			Player: player.Player{
				Name:            row.PlayerName,
				Team:            row.Team,
				Position:        player.Position(row.Position),
				PriorPoints:     row.PriorPoints,
				ProjectedPoints: row.ProjectedPoints,
			},
			Slot: roster.Slot(row.Slot),
		})
	}
	return roster.Export{
		DraftID:    header.DraftID,
		LeagueName: header.LeagueName,
		Entries:    entries,
		ExportedAt: header.ExportedAt.UTC(),
	}
}
