package roster

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
)

func TestAssign_GreedyPriorityThenBench(t *testing.T) {
	t.Parallel()

	caps := Capacities{SlotPG: 1, SlotG: 1, SlotUTIL: 2, SlotBench: 3}
	var entries []Entry
	want := []Slot{SlotPG, SlotG, SlotUTIL, SlotUTIL, SlotBench}

	for i, expected := range want {
		slot := Assign(player.PositionPointGuard, caps, FillsFromEntries(entries))
		if slot != expected {
			t.Fatalf("pick %d: unexpected slot: got=%s want=%s", i+1, slot, expected)
		}
		entries = append(entries, Entry{Player: player.Player{Name: "pg"}, Slot: slot})
	}
}

func TestAssign_ThreePGsWithSingleUtil(t *testing.T) {
	t.Parallel()

	caps := Capacities{SlotPG: 1, SlotG: 1, SlotUTIL: 1, SlotBench: 3}
	fills := Fills{}
	got := make([]Slot, 0, 4)
	for range 4 {
		slot := Assign(player.PositionPointGuard, caps, fills)
		fills[slot]++
		got = append(got, slot)
	}

	want := []Slot{SlotPG, SlotG, SlotUTIL, SlotBench}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected slots: got=%v want=%v", got, want)
	}
}

func TestAssign_BenchNeverBlocks(t *testing.T) {
	t.Parallel()

	caps := Capacities{SlotBench: 0}
	fills := Fills{SlotBench: 5}
	if slot := Assign(player.PositionCenter, caps, fills); slot != SlotBench {
		t.Fatalf("expected BENCH fallback, got %s", slot)
	}
}

func TestEligibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pos  player.Position
		want []Slot
	}{
		{pos: player.PositionPointGuard, want: []Slot{SlotPG, SlotG, SlotUTIL}},
		{pos: player.PositionShootingGuard, want: []Slot{SlotSG, SlotG, SlotUTIL}},
		{pos: player.PositionSmallForward, want: []Slot{SlotSF, SlotF, SlotUTIL}},
		{pos: player.PositionPowerForward, want: []Slot{SlotPF, SlotF, SlotUTIL}},
		{pos: player.PositionCenter, want: []Slot{SlotC, SlotUTIL}},
		{pos: player.PlaceholderField, want: []Slot{SlotUTIL}},
		{pos: "G-F", want: []Slot{SlotUTIL}},
	}

	for _, tc := range tests {
		if got := Eligibility(tc.pos); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("position %s: got=%v want=%v", tc.pos, got, tc.want)
		}
	}
}

func TestStillNeeded_IdempotentAndClamped(t *testing.T) {
	t.Parallel()

	caps := Capacities{SlotPG: 1, SlotC: 1, SlotUTIL: 2, SlotBench: 3}
	fills := Fills{SlotPG: 1, SlotBench: 4}

	first := StillNeeded(caps, fills)
	second := StillNeeded(caps, fills)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("still needed must be idempotent: %v vs %v", first, second)
	}
	if len(first) != len(AllSlots) {
		t.Fatalf("expected all nine slots, got %d", len(first))
	}
	if first[SlotPG] != 0 || first[SlotC] != 1 || first[SlotUTIL] != 2 || first[SlotBench] != 0 {
		t.Fatalf("unexpected still needed: %v", first)
	}

	open := OpenSlots(caps, fills)
	if _, ok := open[SlotBench]; ok {
		t.Fatalf("open slots must not include BENCH")
	}
}

func TestFillsOpenNeed(t *testing.T) {
	t.Parallel()

	needed := map[Slot]int{SlotPG: 0, SlotG: 0, SlotUTIL: 0, SlotC: 1, SlotF: 1}
	if FillsOpenNeed(player.PositionPointGuard, needed) {
		t.Fatalf("PG must not fill a need when PG, G and UTIL are full")
	}
	if !FillsOpenNeed(player.PositionCenter, needed) {
		t.Fatalf("C must fill the open C slot")
	}
	if !FillsOpenNeed(player.PositionSmallForward, needed) {
		t.Fatalf("SF must fill the open F slot")
	}
	if FillsOpenNeed("", map[Slot]int{SlotUTIL: 1}) {
		t.Fatalf("empty position never fills a need")
	}
}

func TestIndicators_SkipsZeroCapacity(t *testing.T) {
	t.Parallel()

	caps := Capacities{SlotPG: 1, SlotUTIL: 2, SlotBench: 3}
	fills := Fills{SlotPG: 1, SlotUTIL: 1}

	got := Indicators(caps, fills)
	want := []Indicator{
		{Slot: SlotPG, Filled: 1, Max: 1, Full: true},
		{Slot: SlotUTIL, Filled: 1, Max: 2, Full: false},
		{Slot: SlotBench, Filled: 0, Max: 3, Full: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected indicators: got=%+v want=%+v", got, want)
	}
}
