package draft

import (
	"errors"
	"reflect"
	"testing"
)

func TestSequencer_SnakeOrder(t *testing.T) {
	t.Parallel()

	seq := NewSequencer(4, 1)
	got := make([]int, 0, 8)
	for i := range 8 {
		got = append(got, seq.TeamIndexForPick(i))
	}

	want := []int{0, 1, 2, 3, 3, 2, 1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected snake order: got=%v want=%v", got, want)
	}
}

func TestSequencer_OddRoundMirrorsPrecedingEvenRound(t *testing.T) {
	t.Parallel()

	for numTeams := 2; numTeams <= 16; numTeams++ {
		seq := NewSequencer(numTeams, 1)
		for round := 0; round+1 < PlayersPerTeam; round += 2 {
			for slot := range numTeams {
				even := seq.TeamIndexForPick(round*numTeams + slot)
				odd := seq.TeamIndexForPick((round+1)*numTeams + numTeams - 1 - slot)
				if even != odd {
					t.Fatalf("numTeams=%d round=%d slot=%d: even=%d odd=%d", numTeams, round, slot, even, odd)
				}
			}
		}
	}
}

func TestSequencer_CompletesAfterTotalPicks(t *testing.T) {
	t.Parallel()

	seq := NewSequencer(10, 3)
	if seq.TotalPicks() != 120 {
		t.Fatalf("unexpected total picks: %d", seq.TotalPicks())
	}
	if err := seq.Advance(); !errors.Is(err, ErrInvalidPickRequest) {
		t.Fatalf("expected ErrInvalidPickRequest before start, got %v", err)
	}

	seq.Start()
	for i := range 120 {
		if seq.Phase() != PhaseInProgress {
			t.Fatalf("pick %d: expected in progress, got %s", i, seq.Phase())
		}
		if err := seq.Advance(); err != nil {
			t.Fatalf("advance pick %d: %v", i, err)
		}
	}

	if seq.Phase() != PhaseComplete {
		t.Fatalf("expected complete, got %s", seq.Phase())
	}
	if seq.PickIndex() != 120 {
		t.Fatalf("expected pick index 120, got %d", seq.PickIndex())
	}
	if err := seq.Advance(); !errors.Is(err, ErrInvalidPickRequest) {
		t.Fatalf("expected ErrInvalidPickRequest after complete, got %v", err)
	}
}

func TestSequencer_LabelsAndUserTurns(t *testing.T) {
	t.Parallel()

	seq := NewSequencer(4, 2)
	tests := []struct {
		index int
		label string
		user  bool
		round int
	}{
		{index: 0, label: "Team 1", round: 1},
		{index: 1, label: "You", user: true, round: 1},
		{index: 3, label: "Team 4", round: 1},
		{index: 4, label: "Team 4", round: 2},
		{index: 6, label: "You", user: true, round: 2},
	}

	for _, tc := range tests {
		if got := seq.TeamLabel(tc.index); got != tc.label {
			t.Fatalf("index %d: label got=%q want=%q", tc.index, got, tc.label)
		}
		if got := seq.IsUserPick(tc.index); got != tc.user {
			t.Fatalf("index %d: user got=%t want=%t", tc.index, got, tc.user)
		}
		if got := seq.Round(tc.index); got != tc.round {
			t.Fatalf("index %d: round got=%d want=%d", tc.index, got, tc.round)
		}
	}
}
