package league

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

const (
	DefaultNumTeams   = 12
	DefaultBenchSlots = 3
	MaxNumTeams       = 30
	MaxLeagueName     = 100
)

// Settings is the user's league configuration. It is read-only for the draft
// engine once a session starts.
type Settings struct {
	LeagueName        string              `json:"leagueName" yaml:"league_name"`
	NumTeams          int                 `json:"numTeams" yaml:"num_teams"`
	DraftPosition     int                 `json:"draftPosition" yaml:"draft_position"`
	Roster            map[roster.Slot]int `json:"roster" yaml:"roster"`
	BenchSlots        int                 `json:"benchSlots" yaml:"bench_slots"`
	TotalStarterSlots int                 `json:"totalStarterSlots" yaml:"total_starter_slots"`
	SavedAt           time.Time           `json:"savedAt" yaml:"saved_at"`
}

// DefaultRoster returns one of each positional and generic slot and two UTIL.
func DefaultRoster() map[roster.Slot]int {
	return map[roster.Slot]int{
		roster.SlotPG:   1,
		roster.SlotSG:   1,
		roster.SlotSF:   1,
		roster.SlotPF:   1,
		roster.SlotC:    1,
		roster.SlotG:    1,
		roster.SlotF:    1,
		roster.SlotUTIL: 2,
	}
}

func DefaultSettings() Settings {
	s := Settings{
		NumTeams:      DefaultNumTeams,
		DraftPosition: 1,
		Roster:        DefaultRoster(),
		BenchSlots:    DefaultBenchSlots,
	}
	return s.Normalize()
}

// Normalize applies defaults and clamps: numTeams falls back to 12, the draft
// position is clamped into [1, numTeams], capacities are non-negative and the
// starter total is recomputed.
func (s Settings) Normalize() Settings {
	s.LeagueName = strings.TrimSpace(s.LeagueName)
	if s.NumTeams <= 0 {
		s.NumTeams = DefaultNumTeams
	}
	if s.DraftPosition < 1 {
		s.DraftPosition = 1
	}
	if s.DraftPosition > s.NumTeams {
		s.DraftPosition = s.NumTeams
	}

	normalized := make(map[roster.Slot]int, len(roster.StarterSlots))
	if s.Roster == nil {
		s.Roster = DefaultRoster()
	}
	for _, slot := range roster.StarterSlots {
		normalized[slot] = max(0, s.Roster[slot])
	}
	s.Roster = normalized
	s.BenchSlots = max(0, s.BenchSlots)
	s.TotalStarterSlots = s.starterTotal()

	return s
}

func (s Settings) starterTotal() int {
	total := 0
	for _, slot := range roster.StarterSlots {
		total += max(0, s.Roster[slot])
	}
	return total
}

// Capacities exposes the configured slot sizes, BENCH included.
func (s Settings) Capacities() roster.Capacities {
	caps := make(roster.Capacities, len(roster.AllSlots))
	for _, slot := range roster.StarterSlots {
		caps[slot] = max(0, s.Roster[slot])
	}
	caps[roster.SlotBench] = max(0, s.BenchSlots)
	return caps
}

func (s Settings) Validate() error {
	if s.NumTeams < 1 || s.NumTeams > MaxNumTeams {
		return fmt.Errorf("num teams must be between 1 and %d", MaxNumTeams)
	}
	if s.DraftPosition < 1 || s.DraftPosition > s.NumTeams {
		return fmt.Errorf("draft position must be between 1 and %d", s.NumTeams)
	}
	if len(s.LeagueName) > MaxLeagueName {
		return fmt.Errorf("league name must be at most %d characters", MaxLeagueName)
	}
	for slot, n := range s.Roster {
		if !slot.Valid() || slot == roster.SlotBench {
			return fmt.Errorf("unknown starter slot: %s", slot)
		}
		if n < 0 {
			return fmt.Errorf("slot %s capacity must be non-negative", slot)
		}
	}
	if s.BenchSlots < 0 {
		return fmt.Errorf("bench slots must be non-negative")
	}

	return nil
}
