package memory

import (
	"fmt"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
)

// SeedPlayers builds a deterministic demo pool large enough for a full draft
// of numTeams teams. Points decrease with rank and positions rotate.
func SeedPlayers(numTeams int) []player.Player {
	if numTeams < 1 {
		numTeams = 1
	}
	teams := []string{"BOS", "DEN", "LAL", "MIL", "OKC", "PHX", "GSW", "DAL", "NYK", "MIN"}
	positions := []player.Position{
		player.PositionPointGuard,
		player.PositionShootingGuard,
		player.PositionSmallForward,
		player.PositionPowerForward,
		player.PositionCenter,
	}

	count := numTeams*12 + 20
	out := make([]player.Player, 0, count)
	for i := range count {
		prior := float64(4000 - i*25)
		projected := prior + float64((i%7)*15) - 45
		out = append(out, player.Player{
			Name:            fmt.Sprintf("Demo Player %03d", i+1),
			Team:            teams[i%len(teams)],
			Position:        positions[i%len(positions)],
			PriorPoints:     player.CoercePoints(prior),
			ProjectedPoints: player.CoercePoints(projected),
		})
	}
	return out
}
