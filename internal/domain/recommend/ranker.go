package recommend

import (
	"slices"
	"strings"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

const (
	// UserCount is how many candidates the user sees on their turn.
	UserCount = 3
	// AutoPickCount is how many candidates auto-pick considers.
	AutoPickCount = 1
)

// Drafted answers whether a player name has already been taken.
type Drafted interface {
	Contains(name string) bool
}

// Recommendation is a ranked candidate with its justification.
type Recommendation struct {
	Player    player.Player `json:"player"`
	FillsNeed bool          `json:"fills_need"`
	Reason    string        `json:"reason"`
}

// Rank filters out drafted players, flags positional need, and orders the rest
// by need, then projected points, then prior points, all descending. Ties keep
// catalog order. The result is truncated to n; n <= 0 returns every candidate.
func Rank(players []player.Player, drafted Drafted, needed map[roster.Slot]int, n int) []Recommendation {
	candidates := make([]Recommendation, 0, len(players))
	for _, p := range players {
		if drafted != nil && drafted.Contains(p.Name) {
			continue
		}
		candidates = append(candidates, Recommendation{
			Player:    p,
			FillsNeed: roster.FillsOpenNeed(p.Position, needed),
		})
	}

	slices.SortStableFunc(candidates, compare)

	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	for i := range candidates {
		candidates[i].Reason = Reason(candidates[i].Player, candidates[i].FillsNeed)
	}

	return candidates
}

func compare(a, b Recommendation) int {
	if a.FillsNeed != b.FillsNeed {
		if a.FillsNeed {
			return -1
		}
		return 1
	}
	if a.Player.ProjectedPoints != b.Player.ProjectedPoints {
		if a.Player.ProjectedPoints > b.Player.ProjectedPoints {
			return -1
		}
		return 1
	}
	if a.Player.PriorPoints != b.Player.PriorPoints {
		if a.Player.PriorPoints > b.Player.PriorPoints {
			return -1
		}
		return 1
	}
	return 0
}

// Reason joins the applicable clauses with "; ".
func Reason(p player.Player, fillsNeed bool) string {
	parts := make([]string, 0, 3)
	if fillsNeed {
		parts = append(parts, "Fills your open "+strings.TrimSpace(string(p.Position))+" slot")
	}
	parts = append(parts, "top projected ("+formatPoints(p.ProjectedPoints)+" pts)")
	if p.PriorPoints > 0 {
		parts = append(parts, "strong 2024-25 ("+formatPoints(p.PriorPoints)+")")
	}
	return strings.Join(parts, "; ")
}
