package player

import (
	"fmt"
	"math"
	"strings"
)

// Position is the single primary basketball position of a player.
type Position string

const (
	PositionPointGuard    Position = "PG"
	PositionShootingGuard Position = "SG"
	PositionSmallForward  Position = "SF"
	PositionPowerForward  Position = "PF"
	PositionCenter        Position = "C"
)

// PlaceholderField is used for team and position of players typed in by hand
// that have no catalog match.
const PlaceholderField = "—"

var AllPositions = map[Position]struct{}{
	PositionPointGuard:    {},
	PositionShootingGuard: {},
	PositionSmallForward:  {},
	PositionPowerForward:  {},
	PositionCenter:        {},
}

// NormalizePosition trims and uppercases a raw position value. Unknown values
// are kept as-is so they fall through to UTIL-only eligibility.
func NormalizePosition(raw string) Position {
	return Position(strings.ToUpper(strings.TrimSpace(raw)))
}

func (p Position) Known() bool {
	_, ok := AllPositions[p]
	return ok
}

// Player is a draftable athlete. Name is the identity within a catalog.
type Player struct {
	Name            string   `json:"player_name"`
	Team            string   `json:"team"`
	Position        Position `json:"position"`
	PriorPoints     float64  `json:"fantasy_pts_2024_25"`
	ProjectedPoints float64  `json:"projected_fantasy_pts_2025_26"`
}

// Placeholder returns the synthetic player recorded when a user pick has no
// catalog match.
func Placeholder(name string) Player {
	return Player{
		Name:     strings.TrimSpace(name),
		Team:     PlaceholderField,
		Position: PlaceholderField,
	}
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.PriorPoints < 0 || p.ProjectedPoints < 0 {
		return fmt.Errorf("player points must be non-negative: %s", p.Name)
	}

	return nil
}

// NormalizeName is the lookup key for catalog indexing.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// FoldName is the case-insensitive comparison key used for manual entry.
func FoldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CoercePoints turns a raw numeric field into a non-negative value, defaulting
// to zero for missing, invalid or non-finite input.
func CoercePoints(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
