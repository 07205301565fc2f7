package player

import (
	"slices"
	"strings"
)

// Catalog is an immutable, deduplicated list of players in load order.
type Catalog struct {
	players []Player
	byName  map[string]int
	byFold  map[string]int
}

// NewCatalog normalizes players and collapses duplicate names, keeping the
// first occurrence. Rows without a name are skipped.
func NewCatalog(players []Player) *Catalog {
	c := &Catalog{
		players: make([]Player, 0, len(players)),
		byName:  make(map[string]int, len(players)),
		byFold:  make(map[string]int, len(players)),
	}
	for _, p := range players {
		name := NormalizeName(p.Name)
		if name == "" {
			continue
		}
		if _, exists := c.byName[name]; exists {
			continue
		}

		p.Name = name
		p.Team = strings.TrimSpace(p.Team)
		p.Position = NormalizePosition(string(p.Position))
		p.PriorPoints = CoercePoints(p.PriorPoints)
		p.ProjectedPoints = CoercePoints(p.ProjectedPoints)

		c.byName[name] = len(c.players)
		if _, exists := c.byFold[FoldName(name)]; !exists {
			c.byFold[FoldName(name)] = len(c.players)
		}
		c.players = append(c.players, p)
	}

	return c
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.players)
}

// Players returns a copy of the catalog in load order.
func (c *Catalog) Players() []Player {
	if c == nil {
		return nil
	}
	out := make([]Player, len(c.players))
	copy(out, c.players)
	return out
}

// Lookup finds a player by exact (trimmed) name.
func (c *Catalog) Lookup(name string) (Player, bool) {
	if c == nil {
		return Player{}, false
	}
	idx, ok := c.byName[NormalizeName(name)]
	if !ok {
		return Player{}, false
	}
	return c.players[idx], true
}

// LookupFold finds the first player whose name matches case-insensitively.
func (c *Catalog) LookupFold(name string) (Player, bool) {
	if c == nil {
		return Player{}, false
	}
	idx, ok := c.byFold[FoldName(name)]
	if !ok {
		return Player{}, false
	}
	return c.players[idx], true
}

// FirstFold returns the first player in load order whose name matches
// case-insensitively and that accept admits.
func (c *Catalog) FirstFold(name string, accept func(Player) bool) (Player, bool) {
	if c == nil {
		return Player{}, false
	}
	folded := FoldName(name)
	for _, p := range c.players {
		if FoldName(p.Name) == folded && (accept == nil || accept(p)) {
			return p, true
		}
	}
	return Player{}, false
}

// Teams returns the sorted distinct non-empty team names.
func (c *Catalog) Teams() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range c.players {
		if p.Team == "" {
			continue
		}
		if _, ok := seen[p.Team]; ok {
			continue
		}
		seen[p.Team] = struct{}{}
		out = append(out, p.Team)
	}
	slices.Sort(out)
	return out
}
