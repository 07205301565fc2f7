package roster

import "github.com/riskibarqy/draft-companion/internal/domain/player"

// Capacities holds the configured size of every slot, BENCH included.
type Capacities map[Slot]int

// Fills counts roster entries per slot.
type Fills map[Slot]int

// FillsFromEntries derives fill counts from the ordered roster.
func FillsFromEntries(entries []Entry) Fills {
	fills := make(Fills, len(AllSlots))
	for _, entry := range entries {
		slot := entry.Slot
		if !slot.Valid() {
			slot = SlotBench
		}
		fills[slot]++
	}
	return fills
}

// Eligibility returns the slots a position may be placed in, in priority order.
// BENCH is never listed; it is the unconditional fallback in Assign.
func Eligibility(pos player.Position) []Slot {
	switch pos {
	case player.PositionPointGuard:
		return []Slot{SlotPG, SlotG, SlotUTIL}
	case player.PositionShootingGuard:
		return []Slot{SlotSG, SlotG, SlotUTIL}
	case player.PositionSmallForward:
		return []Slot{SlotSF, SlotF, SlotUTIL}
	case player.PositionPowerForward:
		return []Slot{SlotPF, SlotF, SlotUTIL}
	case player.PositionCenter:
		return []Slot{SlotC, SlotUTIL}
	default:
		return []Slot{SlotUTIL}
	}
}

// Assign picks the first eligible slot with room and falls back to BENCH.
// The choice is greedy and never revisited by later picks.
func Assign(pos player.Position, caps Capacities, fills Fills) Slot {
	for _, slot := range Eligibility(pos) {
		if fills[slot] < caps[slot] {
			return slot
		}
	}
	return SlotBench
}

// StillNeeded reports max(0, capacity-filled) for all nine slots.
func StillNeeded(caps Capacities, fills Fills) map[Slot]int {
	out := make(map[Slot]int, len(AllSlots))
	for _, slot := range AllSlots {
		out[slot] = max(0, caps[slot]-fills[slot])
	}
	return out
}

// OpenSlots reports max(0, capacity-filled) for the eight starter slots.
func OpenSlots(caps Capacities, fills Fills) map[Slot]int {
	out := make(map[Slot]int, len(StarterSlots))
	for _, slot := range StarterSlots {
		out[slot] = max(0, caps[slot]-fills[slot])
	}
	return out
}

// FillsOpenNeed reports whether any slot the position may use still has room.
func FillsOpenNeed(pos player.Position, needed map[Slot]int) bool {
	if pos == "" {
		return false
	}
	for _, slot := range Eligibility(pos) {
		if needed[slot] > 0 {
			return true
		}
	}
	return false
}

// Indicator is the filled/max view of one slot.
type Indicator struct {
	Slot   Slot `json:"slot"`
	Filled int  `json:"filled"`
	Max    int  `json:"max"`
	Full   bool `json:"full"`
}

// Indicators lists slots with a non-zero capacity in display order.
func Indicators(caps Capacities, fills Fills) []Indicator {
	out := make([]Indicator, 0, len(AllSlots))
	for _, slot := range AllSlots {
		capacity := max(0, caps[slot])
		if capacity == 0 {
			continue
		}
		out = append(out, Indicator{
			Slot:   slot,
			Filled: fills[slot],
			Max:    capacity,
			Full:   fills[slot] >= capacity,
		})
	}
	return out
}
