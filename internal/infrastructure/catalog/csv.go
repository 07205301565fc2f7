package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
)

const (
	columnName      = "player_name"
	columnTeam      = "team"
	columnPosition  = "position"
	columnPrior     = "fantasy_pts_2024_25"
	columnProjected = "projected_fantasy_pts_2025_26"
)

// ParseCSV reads a header row followed by player rows. Columns are matched by
// header name, rows without a name are skipped and unparseable points become 0.
func ParseCSV(r io.Reader) ([]player.Player, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := index[columnName]; !ok {
		return nil, fmt.Errorf("csv header is missing %s", columnName)
	}

	field := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]player.Player, 0, 256)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		name := field(row, columnName)
		if name == "" {
			continue
		}
		out = append(out, player.Player{
			Name:            name,
			Team:            field(row, columnTeam),
			Position:        player.NormalizePosition(field(row, columnPosition)),
			PriorPoints:     parsePoints(field(row, columnPrior)),
			ProjectedPoints: parsePoints(field(row, columnProjected)),
		})
	}

	return out, nil
}

func parsePoints(raw string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return player.CoercePoints(v)
}
