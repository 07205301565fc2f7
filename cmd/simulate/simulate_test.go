package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/memory"
)

func smallSettings() league.Settings {
	return league.Settings{
		NumTeams:   4,
		Roster:     map[roster.Slot]int{roster.SlotPG: 1, roster.SlotC: 1, roster.SlotUTIL: 1},
		BenchSlots: 1,
	}.Normalize()
}

func TestSimulateAll_EveryPositionFillsRoster(t *testing.T) {
	settings := smallSettings()
	catalog := player.NewCatalog(memory.SeedPlayers(settings.NumTeams))

	results, err := simulateAll(context.Background(), settings, catalog, 2)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(results) != settings.NumTeams {
		t.Fatalf("expected %d results, got %d", settings.NumTeams, len(results))
	}

	rounds := draft.PlayersPerTeam
	for i, res := range results {
		if res.DraftPosition != i+1 {
			t.Fatalf("results not ordered by position: %d at %d", res.DraftPosition, i)
		}
		if res.Stalled {
			t.Fatalf("position %d stalled", res.DraftPosition)
		}
		if res.Picks != rounds*settings.NumTeams {
			t.Fatalf("position %d: expected %d picks, got %d", res.DraftPosition, rounds*settings.NumTeams, res.Picks)
		}
		if len(res.Entries) != rounds {
			t.Fatalf("position %d: expected %d roster entries, got %d", res.DraftPosition, rounds, len(res.Entries))
		}
		if res.ProjectedTotal <= 0 {
			t.Fatalf("position %d: expected a positive projected total", res.DraftPosition)
		}
	}
	if results[0].Entries[0].Player.Name == results[len(results)-1].Entries[0].Player.Name {
		t.Fatalf("first and last position should not share a first pick")
	}
}

func TestSimulateOne_StallsWhenCatalogRunsOut(t *testing.T) {
	settings := smallSettings()
	catalog := player.NewCatalog(memory.SeedPlayers(1)[:5])

	res, err := simulateOne(context.Background(), settings, catalog)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !res.Stalled {
		t.Fatalf("expected the draft to stall on an exhausted catalog")
	}
	if res.Picks != 5 {
		t.Fatalf("expected 5 picks before stalling, got %d", res.Picks)
	}
}

func TestSimulateAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	settings := smallSettings()
	catalog := player.NewCatalog(memory.SeedPlayers(settings.NumTeams))
	if _, err := simulateAll(ctx, settings, catalog, 1); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestPrintResults(t *testing.T) {
	settings := smallSettings()
	catalog := player.NewCatalog(memory.SeedPlayers(settings.NumTeams))
	res, err := simulateOne(context.Background(), settings, catalog)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	var buf bytes.Buffer
	if err := printResults(&buf, settings, []Result{res}); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Draft position 1 of 4") {
		t.Fatalf("missing header in output: %s", out)
	}
	if !strings.Contains(out, res.Entries[0].Player.Name) {
		t.Fatalf("missing first pick in output: %s", out)
	}
}
