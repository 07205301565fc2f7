package draft

import (
	"fmt"
	"strconv"
)

// PlayersPerTeam is the fixed roster size every team drafts to.
const PlayersPerTeam = 12

// UserTeamLabel labels history entries for the user's own picks.
const UserTeamLabel = "You"

type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseComplete   Phase = "complete"
)

// Sequencer walks a zero-based pick index through snake order.
type Sequencer struct {
	numTeams  int
	userTeam  int
	pickIndex int
	phase     Phase
}

// NewSequencer expects numTeams >= 1 and a 1-based draft position already
// clamped into [1, numTeams].
func NewSequencer(numTeams, draftPosition int) Sequencer {
	if numTeams < 1 {
		numTeams = 1
	}
	return Sequencer{
		numTeams: numTeams,
		userTeam: draftPosition - 1,
		phase:    PhaseNotStarted,
	}
}

func (s *Sequencer) Start() {
	s.pickIndex = 0
	s.phase = PhaseInProgress
	if s.TotalPicks() == 0 {
		s.phase = PhaseComplete
	}
}

// Advance consumes the current pick. The last pick moves the sequencer to
// PhaseComplete, which is terminal.
func (s *Sequencer) Advance() error {
	if s.phase != PhaseInProgress {
		return fmt.Errorf("%w: draft is %s", ErrInvalidPickRequest, s.phase)
	}
	s.pickIndex++
	if s.pickIndex >= s.TotalPicks() {
		s.phase = PhaseComplete
	}
	return nil
}

func (s Sequencer) Phase() Phase { return s.phase }

func (s Sequencer) PickIndex() int { return s.pickIndex }

func (s Sequencer) NumTeams() int { return s.numTeams }

func (s Sequencer) UserTeamIndex() int { return s.userTeam }

func (s Sequencer) TotalPicks() int {
	return s.numTeams * PlayersPerTeam
}

// TeamIndexForPick resolves the 0-based team for a 0-based pick index.
// Odd rounds run in reverse.
func (s Sequencer) TeamIndexForPick(index int) int {
	round := index / s.numTeams
	slotInRound := index % s.numTeams
	if round%2 == 0 {
		return slotInRound
	}
	return s.numTeams - 1 - slotInRound
}

// Round is the 1-based round for a pick index.
func (s Sequencer) Round(index int) int {
	return index/s.numTeams + 1
}

func (s Sequencer) IsUserPick(index int) bool {
	return s.TeamIndexForPick(index) == s.userTeam
}

func (s Sequencer) TeamLabel(index int) string {
	teamIndex := s.TeamIndexForPick(index)
	if teamIndex == s.userTeam {
		return UserTeamLabel
	}
	return "Team " + strconv.Itoa(teamIndex+1)
}

// IsUserTurn reports whether the current pick belongs to the user.
func (s Sequencer) IsUserTurn() bool {
	return s.phase == PhaseInProgress && s.IsUserPick(s.pickIndex)
}
