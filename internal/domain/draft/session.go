package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/recommend"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

// HistoryEntry is one immutable line of the draft audit log.
type HistoryEntry struct {
	PickNumber int       `json:"pick_number"`
	TeamLabel  string    `json:"team_label"`
	PlayerName string    `json:"player_name"`
	IsUser     bool      `json:"is_user"`
	PickedAt   time.Time `json:"picked_at"`
}

// PickResult describes what a recorded pick changed.
type PickResult struct {
	History  HistoryEntry  `json:"history"`
	Roster   *roster.Entry `json:"roster,omitempty"`
	Matched  bool          `json:"matched"`
	Complete bool          `json:"complete"`
}

// Session is the mutable state of one draft. It is not safe for concurrent
// use; callers serialize access.
type Session struct {
	ID          string
	Settings    league.Settings
	Catalog     *player.Catalog
	Simulate    bool
	Generation  uint64
	Explanation string
	StartedAt   time.Time

	sequencer Sequencer
	drafted   *Availability
	roster    []roster.Entry
	history   []HistoryEntry
}

func NewSession(id string, settings league.Settings, catalog *player.Catalog) *Session {
	settings = settings.Normalize()
	return &Session{
		ID:        id,
		Settings:  settings,
		Catalog:   catalog,
		sequencer: NewSequencer(settings.NumTeams, settings.DraftPosition),
		drafted:   NewAvailability(),
	}
}

// Start resets every mutable field and bumps the generation so callbacks
// scheduled for the previous run become no-ops.
func (s *Session) Start(settings league.Settings, catalog *player.Catalog, now time.Time) {
	s.Settings = settings.Normalize()
	s.Catalog = catalog
	s.sequencer = NewSequencer(s.Settings.NumTeams, s.Settings.DraftPosition)
	s.drafted = NewAvailability()
	s.roster = nil
	s.history = nil
	s.Explanation = ""
	s.Generation++
	s.StartedAt = now
	s.sequencer.Start()
}

func (s *Session) Sequencer() Sequencer { return s.sequencer }

func (s *Session) Phase() Phase { return s.sequencer.Phase() }

func (s *Session) Drafted() *Availability { return s.drafted }

func (s *Session) InProgress() bool { return s.sequencer.Phase() == PhaseInProgress }

// RecordPick appends the pick to history, marks the name drafted, places user
// picks on the roster and advances the sequencer. Nothing is mutated when the
// draft is not in progress.
func (s *Session) RecordPick(name string, isUser bool, now time.Time) (PickResult, error) {
	if !s.InProgress() {
		return PickResult{}, fmt.Errorf("%w: draft is %s", ErrInvalidPickRequest, s.sequencer.Phase())
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return PickResult{}, fmt.Errorf("%w: player name is required", ErrInvalidPickRequest)
	}

	index := s.sequencer.PickIndex()
	label := s.sequencer.TeamLabel(index)
	if isUser {
		label = UserTeamLabel
	}
	entry := HistoryEntry{
		PickNumber: index + 1,
		TeamLabel:  label,
		PlayerName: name,
		IsUser:     isUser,
		PickedAt:   now,
	}
	s.history = append(s.history, entry)
	s.drafted.Add(name)

	result := PickResult{History: entry, Matched: true}
	if isUser {
		p, ok := s.Catalog.Lookup(name)
		if !ok {
			p = player.Placeholder(name)
			result.Matched = false
		}
		slot := roster.Assign(p.Position, s.Settings.Capacities(), roster.FillsFromEntries(s.roster))
		rosterEntry := roster.Entry{Player: p, Slot: slot}
		s.roster = append(s.roster, rosterEntry)
		result.Roster = &rosterEntry
	} else if _, ok := s.Catalog.Lookup(name); !ok {
		result.Matched = false
	}

	if err := s.sequencer.Advance(); err != nil {
		return PickResult{}, err
	}
	result.Complete = s.sequencer.Phase() == PhaseComplete

	return result, nil
}

// Recommendations ranks the available catalog against the user's open slots.
func (s *Session) Recommendations(n int) []recommend.Recommendation {
	return recommend.Rank(s.Catalog.Players(), s.drafted, s.StillNeeded(), n)
}

func (s *Session) Fills() roster.Fills {
	return roster.FillsFromEntries(s.roster)
}

func (s *Session) StillNeeded() map[roster.Slot]int {
	return roster.StillNeeded(s.Settings.Capacities(), s.Fills())
}

func (s *Session) SlotIndicators() []roster.Indicator {
	return roster.Indicators(s.Settings.Capacities(), s.Fills())
}

// Roster returns a copy of the user's entries in pick order.
func (s *Session) Roster() []roster.Entry {
	out := make([]roster.Entry, len(s.roster))
	copy(out, s.roster)
	return out
}

// History returns a copy of the audit log.
func (s *Session) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}
