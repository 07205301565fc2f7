package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/recommend"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/sourcegraph/conc/pool"
)

// Result is the outcome of one fully auto-drafted session.
type Result struct {
	DraftPosition  int
	Entries        []roster.Entry
	ProjectedTotal float64
	PriorTotal     float64
	Picks          int
	Stalled        bool
}

// simulateAll drafts once per draft position, at most workers at a time.
// Results come back ordered by draft position.
func simulateAll(ctx context.Context, settings league.Settings, catalog *player.Catalog, workers int) ([]Result, error) {
	settings = settings.Normalize()
	p := pool.NewWithResults[Result]().WithContext(ctx).WithCancelOnError()
	if workers > 0 {
		p = p.WithMaxGoroutines(workers)
	}

	for position := 1; position <= settings.NumTeams; position++ {
		s := settings
		s.DraftPosition = position
		p.Go(func(ctx context.Context) (Result, error) {
			return simulateOne(ctx, s, catalog)
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b Result) int { return a.DraftPosition - b.DraftPosition })
	return results, nil
}

// simulateOne plays every pick with the top-ranked available player. The
// user's team ranks against its own open slots; every other team takes the
// same ranking the auto-picker uses. An exhausted catalog ends the draft
// early and marks the result stalled.
func simulateOne(ctx context.Context, settings league.Settings, catalog *player.Catalog) (Result, error) {
	session := draft.NewSession(fmt.Sprintf("sim-%d", settings.DraftPosition), settings, catalog)
	session.Start(settings, catalog, time.Now())

	result := Result{DraftPosition: session.Settings.DraftPosition}
	for session.InProgress() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		count := recommend.AutoPickCount
		if session.Sequencer().IsUserTurn() {
			count = recommend.UserCount
		}
		recs := session.Recommendations(count)
		if len(recs) == 0 {
			result.Stalled = true
			break
		}

		if _, err := session.RecordPick(recs[0].Player.Name, session.Sequencer().IsUserTurn(), time.Now()); err != nil {
			return Result{}, fmt.Errorf("pick %d for position %d: %w", session.Sequencer().PickIndex()+1, result.DraftPosition, err)
		}
		result.Picks++
	}

	result.Entries = session.Roster()
	for _, entry := range result.Entries {
		result.ProjectedTotal += entry.Player.ProjectedPoints
		result.PriorTotal += entry.Player.PriorPoints
	}
	return result, nil
}
