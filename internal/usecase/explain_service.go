package usecase

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/explanation"
	"github.com/riskibarqy/draft-companion/internal/domain/recommend"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/platform/cache"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const (
	MaxExplanationFacts = 10

	explainMaxOutputTokens = 5000
	explainTemperature     = 0.5
	explainMaxStringLength = 200

	explainInstructionSingle = "You explain a fantasy basketball draft recommendation in very simple English. Use only the facts you are given. Write 1-2 short sentences. No extra opinions or numbers not in the facts. Aim for a beginner reader."
	explainInstructionMulti  = "You explain fantasy basketball draft recommendations in very simple English. You are given the top 3 recommendations in order of preference (1 = best). Write 2-3 short sentences about the overall recommendations, including reasons why each is a good pick. Separate each recommendation with a blank line. No extra opinions or numbers not in the facts. Aim for a beginner basketball reader."
)

// ExplanationFact is one recommendation as accepted by the explanation
// endpoint. Absent fields are left out of the prompt.
type ExplanationFact struct {
	PlayerName           *string            `json:"playerName,omitempty"`
	Team                 *string            `json:"team,omitempty"`
	Position             *string            `json:"position,omitempty"`
	PositionNeed         *bool              `json:"positionNeed,omitempty"`
	ProjectedPts         *float64           `json:"projectedPts,omitempty"`
	PriorYearPts         *float64           `json:"priorYearPts,omitempty"`
	PositionsStillNeeded map[string]float64 `json:"positionsStillNeeded,omitempty"`
}

// ExplanationFactFrom converts an engine fact into the wire shape.
func ExplanationFactFrom(f recommend.Fact) ExplanationFact {
	out := ExplanationFact{
		PlayerName:   &f.PlayerName,
		Team:         &f.Team,
		Position:     &f.Position,
		PositionNeed: &f.PositionNeed,
		ProjectedPts: &f.ProjectedPts,
		PriorYearPts: &f.PriorYearPts,
	}
	if len(f.PositionsStillNeeded) > 0 {
		out.PositionsStillNeeded = make(map[string]float64, len(f.PositionsStillNeeded))
		for pos, n := range f.PositionsStillNeeded {
			out.PositionsStillNeeded[pos] = float64(n)
		}
	}
	return out
}

type ExplainService struct {
	generator explanation.Generator
	cache     *cache.Store[string]
	logger    *logging.Logger
}

// NewExplainService builds the service. A nil generator leaves the feature
// unconfigured and every call fails with ErrDependencyUnavailable.
func NewExplainService(generator explanation.Generator, explanations *cache.Store[string], logger *logging.Logger) *ExplainService {
	if explanations == nil {
		explanations = cache.NewStore[string](time.Hour)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ExplainService{
		generator: generator,
		cache:     explanations,
		logger:    logger,
	}
}

func (s *ExplainService) Configured() bool {
	return s != nil && s.generator != nil
}

// Explain turns one to ten facts into a short plain-English paragraph.
func (s *ExplainService) Explain(ctx context.Context, facts []ExplanationFact) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExplainService.Explain")
	defer span.End()

	if !s.Configured() {
		return "", fmt.Errorf("%w: %w: explanation provider is not configured", ErrDependencyUnavailable, draft.ErrExplanationServiceFailure)
	}
	if len(facts) == 0 {
		return "", fmt.Errorf("%w: facts must be a non-empty object or array", ErrInvalidInput)
	}
	if len(facts) > MaxExplanationFacts {
		return "", fmt.Errorf("%w: too many facts; maximum %d", ErrInvalidInput, MaxExplanationFacts)
	}

	req := explanation.Request{
		SystemInstruction: explainInstructionSingle,
		Prompt:            BuildExplanationPrompt(facts),
		MaxOutputTokens:   explainMaxOutputTokens,
		Temperature:       explainTemperature,
	}
	if len(facts) > 1 {
		req.SystemInstruction = explainInstructionMulti
	}

	text, err := s.cache.GetOrLoad(ctx, promptCacheKey(req), func(ctx context.Context) (string, error) {
		out, err := s.generator.Generate(ctx, req)
		if err != nil {
			return "", err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return "", explanation.ErrEmptyResponse
		}
		return out, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "explanation request failed", "facts", len(facts), "error", err)
		switch {
		case errors.Is(err, explanation.ErrEmptyResponse):
			return "", fmt.Errorf("%w: %w: %w", ErrUpstream, draft.ErrExplanationServiceFailure, explanation.ErrEmptyResponse)
		case errors.Is(err, explanation.ErrUnauthorized):
			return "", fmt.Errorf("%w: %w: %v", ErrUnauthorized, draft.ErrExplanationServiceFailure, err)
		default:
			return "", fmt.Errorf("%w: %w: %v", ErrUpstream, draft.ErrExplanationServiceFailure, err)
		}
	}

	return text, nil
}

func promptCacheKey(req explanation.Request) string {
	sum := sha256.Sum256([]byte(req.SystemInstruction + "\x00" + req.Prompt))
	return hex.EncodeToString(sum[:])
}

// BuildExplanationPrompt labels each fact block "Recommendation i:" and
// separates blocks with a blank line.
func BuildExplanationPrompt(facts []ExplanationFact) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, fact := range facts {
		if i > 0 {
			_, _ = buf.WriteString("\n\n")
		}
		_, _ = buf.WriteString("Recommendation ")
		_, _ = buf.WriteString(strconv.Itoa(i + 1))
		_, _ = buf.WriteString(":\n")
		_, _ = buf.WriteString(formatFactForPrompt(fact))
	}

	return buf.String()
}

func formatFactForPrompt(fact ExplanationFact) string {
	parts := make([]string, 0, 7)
	if fact.PlayerName != nil {
		parts = append(parts, "Player: "+sanitizePromptString(*fact.PlayerName))
	}
	if fact.Team != nil {
		parts = append(parts, "Team: "+sanitizePromptString(*fact.Team))
	}
	if fact.Position != nil {
		parts = append(parts, "Position: "+sanitizePromptString(*fact.Position))
	}
	if fact.PositionNeed != nil {
		need := "no"
		if *fact.PositionNeed {
			need = "yes"
		}
		parts = append(parts, "We need this position: "+need)
	}
	if fact.ProjectedPts != nil {
		parts = append(parts, "Projected fantasy points this season: "+formatPromptNumber(*fact.ProjectedPts))
	}
	if fact.PriorYearPts != nil {
		parts = append(parts, "Last season fantasy points: "+formatPromptNumber(*fact.PriorYearPts))
	}
	if needs := formatStillNeeded(fact.PositionsStillNeeded); needs != "" {
		parts = append(parts, "Positions still needed: "+needs)
	}

	if len(parts) == 0 {
		raw, err := sonic.MarshalString(fact)
		if err != nil {
			return "{}"
		}
		return raw
	}
	return strings.Join(parts, ". ")
}

// formatStillNeeded lists positive counts in roster slot order, then any
// unknown keys alphabetically.
func formatStillNeeded(needed map[string]float64) string {
	if len(needed) == 0 {
		return ""
	}

	rank := make(map[string]int, len(roster.AllSlots))
	for i, slot := range roster.AllSlots {
		rank[string(slot)] = i
	}
	keys := make([]string, 0, len(needed))
	for pos, n := range needed {
		if n > 0 {
			keys = append(keys, pos)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		ra, okA := rank[a]
		rb, okB := rank[b]
		switch {
		case okA && okB:
			return cmp.Compare(ra, rb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	out := make([]string, 0, len(keys))
	for _, pos := range keys {
		out = append(out, sanitizePromptString(pos)+": "+formatPromptNumber(needed[pos]))
	}
	return strings.Join(out, ", ")
}

func sanitizePromptString(raw string) string {
	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) <= explainMaxStringLength {
		return raw
	}
	return string([]rune(raw)[:explainMaxStringLength])
}

func formatPromptNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
