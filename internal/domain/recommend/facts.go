package recommend

import (
	"strings"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

// Fact is the serializable summary of one recommendation handed to the
// explanation service.
type Fact struct {
	PlayerName           string         `json:"playerName"`
	Team                 string         `json:"team"`
	Position             string         `json:"position"`
	PositionNeed         bool           `json:"positionNeed"`
	ProjectedPts         float64        `json:"projectedPts"`
	PriorYearPts         float64        `json:"priorYearPts"`
	PositionsStillNeeded map[string]int `json:"positionsStillNeeded,omitempty"`
}

var factPositions = []player.Position{
	player.PositionPointGuard,
	player.PositionShootingGuard,
	player.PositionSmallForward,
	player.PositionPowerForward,
	player.PositionCenter,
}

// BuildFact summarizes a recommendation. Only the five positional slots with
// remaining room are listed under PositionsStillNeeded.
func BuildFact(rec Recommendation, needed map[roster.Slot]int) Fact {
	stillNeeded := make(map[string]int)
	for _, pos := range factPositions {
		if n := needed[roster.Slot(pos)]; n > 0 {
			stillNeeded[string(pos)] = n
		}
	}
	if len(stillNeeded) == 0 {
		stillNeeded = nil
	}

	return Fact{
		PlayerName:           strings.TrimSpace(rec.Player.Name),
		Team:                 strings.TrimSpace(rec.Player.Team),
		Position:             strings.TrimSpace(string(rec.Player.Position)),
		PositionNeed:         rec.FillsNeed,
		ProjectedPts:         rec.Player.ProjectedPoints,
		PriorYearPts:         rec.Player.PriorPoints,
		PositionsStillNeeded: stillNeeded,
	}
}

func BuildFacts(recs []Recommendation, needed map[roster.Slot]int) []Fact {
	out := make([]Fact, 0, len(recs))
	for _, rec := range recs {
		out = append(out, BuildFact(rec, needed))
	}
	return out
}
