package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/draft-companion/internal/domain/explanation"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/recommend"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	explanationmock "github.com/riskibarqy/draft-companion/internal/mocks/domain/explanation"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func ptr[T any](v T) *T { return &v }

func TestBuildExplanationPrompt(t *testing.T) {
	t.Parallel()

	facts := []ExplanationFact{
		{
			PlayerName:           ptr("  Jamal Murray "),
			Team:                 ptr("DEN"),
			Position:             ptr("PG"),
			PositionNeed:         ptr(true),
			ProjectedPts:         ptr(2700.5),
			PriorYearPts:         ptr(2500.0),
			PositionsStillNeeded: map[string]float64{"C": 1, "PG": 1, "SF": 0},
		},
		{
			PlayerName:   ptr("Jrue Holiday"),
			PositionNeed: ptr(false),
		},
		{},
	}

	got := BuildExplanationPrompt(facts)
	want := "Recommendation 1:\n" +
		"Player: Jamal Murray. Team: DEN. Position: PG. We need this position: yes. " +
		"Projected fantasy points this season: 2700.5. Last season fantasy points: 2500. " +
		"Positions still needed: PG: 1, C: 1" +
		"\n\nRecommendation 2:\nPlayer: Jrue Holiday. We need this position: no" +
		"\n\nRecommendation 3:\n{}"
	if got != want {
		t.Fatalf("unexpected prompt:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestSanitizePromptStringCapsLength(t *testing.T) {
	t.Parallel()

	got := sanitizePromptString("  " + strings.Repeat("é", 250) + "  ")
	if n := len([]rune(got)); n != 200 {
		t.Fatalf("expected 200 runes, got %d", n)
	}
}

func TestExplanationFactFrom(t *testing.T) {
	t.Parallel()

	rec := recommend.Recommendation{
		Player:    player.Player{Name: "Nikola Jokic", Team: "DEN", Position: player.PositionCenter, PriorPoints: 4200, ProjectedPoints: 4100},
		FillsNeed: true,
	}
	fact := ExplanationFactFrom(recommend.BuildFact(rec, map[roster.Slot]int{roster.SlotC: 1, roster.SlotUTIL: 2}))

	if fact.PlayerName == nil || *fact.PlayerName != "Nikola Jokic" {
		t.Fatalf("unexpected player name: %v", fact.PlayerName)
	}
	if fact.PositionNeed == nil || !*fact.PositionNeed {
		t.Fatalf("expected position need flag")
	}
	if len(fact.PositionsStillNeeded) != 1 || fact.PositionsStillNeeded["C"] != 1 {
		t.Fatalf("only positional slots belong in still-needed: %+v", fact.PositionsStillNeeded)
	}
}

func TestExplainService_NotConfigured(t *testing.T) {
	t.Parallel()

	service := NewExplainService(nil, nil, logging.NewNop())
	_, err := service.Explain(context.Background(), []ExplanationFact{{PlayerName: ptr("A")}})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestExplainService_FactCountLimits(t *testing.T) {
	t.Parallel()

	service := NewExplainService(explanationmock.NewGenerator(t), nil, logging.NewNop())
	if _, err := service.Explain(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected empty facts to be rejected, got %v", err)
	}
	tooMany := make([]ExplanationFact, MaxExplanationFacts+1)
	if _, err := service.Explain(context.Background(), tooMany); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected too many facts to be rejected, got %v", err)
	}
}

func TestExplainService_InstructionAndCacheUsingMockery(t *testing.T) {
	t.Parallel()

	generator := explanationmock.NewGenerator(t)
	service := NewExplainService(generator, nil, logging.NewNop())
	ctx := context.Background()

	generator.
		On("Generate", mock.Anything, mock.MatchedBy(func(req explanation.Request) bool {
			return req.SystemInstruction == explainInstructionSingle &&
				req.MaxOutputTokens == 5000 &&
				req.Temperature == 0.5
		})).
		Return("  Take him.  ", nil).
		Once()
	generator.
		On("Generate", mock.Anything, mock.MatchedBy(func(req explanation.Request) bool {
			return req.SystemInstruction == explainInstructionMulti
		})).
		Return("All three help.", nil).
		Once()

	single := []ExplanationFact{{PlayerName: ptr("Jamal Murray")}}
	for range 2 {
		got, err := service.Explain(ctx, single)
		if err != nil {
			t.Fatalf("explain single: %v", err)
		}
		if got != "Take him." {
			t.Fatalf("expected trimmed text, got %q", got)
		}
	}

	got, err := service.Explain(ctx, []ExplanationFact{{PlayerName: ptr("A")}, {PlayerName: ptr("B")}})
	if err != nil {
		t.Fatalf("explain multi: %v", err)
	}
	if got != "All three help." {
		t.Fatalf("unexpected multi text %q", got)
	}
}

func TestExplainService_ErrorMappingUsingMockery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		err     error
		wantErr error
	}{
		{name: "empty", text: "   ", wantErr: ErrUpstream},
		{name: "unauthorized", err: explanation.ErrUnauthorized, wantErr: ErrUnauthorized},
		{name: "other", err: errors.New("boom"), wantErr: ErrUpstream},
	}

	for _, tc := range tests {
		generator := explanationmock.NewGenerator(t)
		generator.On("Generate", mock.Anything, mock.Anything).Return(tc.text, tc.err).Once()
		service := NewExplainService(generator, nil, logging.NewNop())

		_, err := service.Explain(context.Background(), []ExplanationFact{{PlayerName: ptr(tc.name)}})
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}
