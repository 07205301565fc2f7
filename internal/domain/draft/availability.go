package draft

import "github.com/riskibarqy/draft-companion/internal/domain/player"

// Availability is the set of drafted player names.
type Availability struct {
	drafted map[string]struct{}
}

func NewAvailability() *Availability {
	return &Availability{drafted: make(map[string]struct{})}
}

func (a *Availability) Add(name string) {
	a.drafted[player.NormalizeName(name)] = struct{}{}
}

func (a *Availability) Contains(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.drafted[player.NormalizeName(name)]
	return ok
}

// ContainsFold reports whether a name was drafted, ignoring case.
func (a *Availability) ContainsFold(name string) bool {
	if a == nil {
		return false
	}
	folded := player.FoldName(name)
	for drafted := range a.drafted {
		if player.FoldName(drafted) == folded {
			return true
		}
	}
	return false
}

func (a *Availability) Len() int {
	if a == nil {
		return 0
	}
	return len(a.drafted)
}

// Available returns catalog players not yet drafted, in catalog order.
func (a *Availability) Available(players []player.Player) []player.Player {
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if a.Contains(p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Clone returns an independent copy, safe to read without the session lock.
func (a *Availability) Clone() *Availability {
	out := NewAvailability()
	if a == nil {
		return out
	}
	for name := range a.drafted {
		out.drafted[name] = struct{}{}
	}
	return out
}
