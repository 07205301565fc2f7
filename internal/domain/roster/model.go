package roster

import (
	"time"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
)

// Slot is a named roster bucket.
type Slot string

const (
	SlotPG    Slot = "PG"
	SlotSG    Slot = "SG"
	SlotSF    Slot = "SF"
	SlotPF    Slot = "PF"
	SlotC     Slot = "C"
	SlotG     Slot = "G"
	SlotF     Slot = "F"
	SlotUTIL  Slot = "UTIL"
	SlotBench Slot = "BENCH"
)

// StarterSlots are the configurable starter buckets in display order.
var StarterSlots = []Slot{SlotPG, SlotSG, SlotSF, SlotPF, SlotC, SlotG, SlotF, SlotUTIL}

// AllSlots is StarterSlots followed by BENCH.
var AllSlots = []Slot{SlotPG, SlotSG, SlotSF, SlotPF, SlotC, SlotG, SlotF, SlotUTIL, SlotBench}

func (s Slot) Valid() bool {
	for _, candidate := range AllSlots {
		if candidate == s {
			return true
		}
	}
	return false
}

// Entry pairs a drafted player with the slot that absorbed the pick.
type Entry struct {
	Player player.Player `json:"player"`
	Slot   Slot          `json:"slot"`
}

// Export is a finished roster handed to the "my team" view.
type Export struct {
	DraftID    string    `json:"draft_id"`
	LeagueName string    `json:"league_name,omitempty"`
	Entries    []Entry   `json:"entries"`
	ExportedAt time.Time `json:"exported_at"`
}
