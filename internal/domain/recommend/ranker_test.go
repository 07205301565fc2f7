package recommend

import (
	"testing"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

type draftedSet map[string]struct{}

func (d draftedSet) Contains(name string) bool {
	_, ok := d[name]
	return ok
}

func TestRank_NeedBeatsProjection(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		{Name: "A", Position: player.PositionPointGuard, ProjectedPoints: 500, PriorPoints: 400},
		{Name: "B", Position: player.PositionCenter, ProjectedPoints: 600, PriorPoints: 100},
	}
	needed := map[roster.Slot]int{roster.SlotPG: 0, roster.SlotC: 1}

	got := Rank(players, nil, needed, UserCount)
	if len(got) != 2 {
		t.Fatalf("unexpected result size: %d", len(got))
	}
	if got[0].Player.Name != "B" || !got[0].FillsNeed {
		t.Fatalf("expected B first with need, got %+v", got[0])
	}
	if got[1].FillsNeed {
		t.Fatalf("expected A to not fill a need")
	}
}

func TestRank_NeedFirstEvenAgainstHigherProjection(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		{Name: "A", Position: player.PositionPointGuard, ProjectedPoints: 900, PriorPoints: 400},
		{Name: "B", Position: player.PositionCenter, ProjectedPoints: 600, PriorPoints: 100},
	}
	needed := map[roster.Slot]int{roster.SlotC: 1}

	got := Rank(players, nil, needed, UserCount)
	if got[0].Player.Name != "B" {
		t.Fatalf("expected need to outrank projection, got %s first", got[0].Player.Name)
	}
}

func TestRank_TieBreaksAndStability(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		{Name: "first", Position: player.PositionSmallForward, ProjectedPoints: 300, PriorPoints: 200},
		{Name: "prior", Position: player.PositionSmallForward, ProjectedPoints: 300, PriorPoints: 250},
		{Name: "second", Position: player.PositionSmallForward, ProjectedPoints: 300, PriorPoints: 200},
		{Name: "proj", Position: player.PositionSmallForward, ProjectedPoints: 301, PriorPoints: 0},
	}
	needed := map[roster.Slot]int{roster.SlotUTIL: 1}

	got := Rank(players, nil, needed, 0)
	want := []string{"proj", "prior", "first", "second"}
	for i, name := range want {
		if got[i].Player.Name != name {
			t.Fatalf("position %d: got=%s want=%s", i, got[i].Player.Name, name)
		}
	}
}

func TestRank_ExcludesDraftedAndTruncates(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		{Name: "A", ProjectedPoints: 10},
		{Name: "B", ProjectedPoints: 20},
		{Name: "C", ProjectedPoints: 30},
		{Name: "D", ProjectedPoints: 40},
	}

	got := Rank(players, draftedSet{"D": {}}, nil, AutoPickCount)
	if len(got) != 1 || got[0].Player.Name != "C" {
		t.Fatalf("expected only C, got %+v", got)
	}

	if empty := Rank(players, draftedSet{"A": {}, "B": {}, "C": {}, "D": {}}, nil, UserCount); len(empty) != 0 {
		t.Fatalf("expected no candidates, got %d", len(empty))
	}
}

func TestReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		player    player.Player
		fillsNeed bool
		want      string
	}{
		{
			name:      "all clauses",
			player:    player.Player{Position: player.PositionCenter, ProjectedPoints: 600, PriorPoints: 100},
			fillsNeed: true,
			want:      "Fills your open C slot; top projected (600 pts); strong 2024-25 (100)",
		},
		{
			name:   "no need no prior",
			player: player.Player{Position: player.PositionPointGuard, ProjectedPoints: 500},
			want:   "top projected (500 pts)",
		},
		{
			name:   "grouped thousands",
			player: player.Player{Position: player.PositionPointGuard, ProjectedPoints: 1500, PriorPoints: 2250},
			want:   "top projected (1,500 pts); strong 2024-25 (2,250)",
		},
	}

	for _, tc := range tests {
		if got := Reason(tc.player, tc.fillsNeed); got != tc.want {
			t.Fatalf("%s: got=%q want=%q", tc.name, got, tc.want)
		}
	}
}

func TestBuildFact_ListsOnlyOpenPositionalSlots(t *testing.T) {
	t.Parallel()

	rec := Recommendation{
		Player:    player.Player{Name: " Bam Adebayo ", Team: "MIA", Position: player.PositionCenter, ProjectedPoints: 2400, PriorPoints: 2300},
		FillsNeed: true,
	}
	needed := map[roster.Slot]int{roster.SlotPG: 1, roster.SlotC: 0, roster.SlotUTIL: 2, roster.SlotBench: 3}

	fact := BuildFact(rec, needed)
	if fact.PlayerName != "Bam Adebayo" || !fact.PositionNeed {
		t.Fatalf("unexpected fact: %+v", fact)
	}
	if len(fact.PositionsStillNeeded) != 1 || fact.PositionsStillNeeded["PG"] != 1 {
		t.Fatalf("unexpected positions still needed: %v", fact.PositionsStillNeeded)
	}

	none := BuildFact(rec, map[roster.Slot]int{roster.SlotUTIL: 1})
	if none.PositionsStillNeeded != nil {
		t.Fatalf("expected nil map when nothing positional is open, got %v", none.PositionsStillNeeded)
	}
}
