package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-companion/internal/domain/explanation"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

const (
	explainMsgNotConfigured = "Explain feature not configured (missing GEMINI_API_KEY)."
	explainMsgMissingFacts  = "Request body must include { facts: { ... } or facts: [ ... ] }."
	explainMsgEmptyFacts    = "facts must be a non-empty object or array."
	explainMsgTooManyFacts  = "Too many facts; maximum 10."
	explainMsgEmptyResponse = "Empty response from model."
	explainMsgFailed        = "Could not get explanation."
)

type explainRequest struct {
	Facts json.RawMessage `json:"facts"`
}

type explainResponse struct {
	PlainEnglish string `json:"plainEnglish"`
}

// ExplainRecommendation keeps the bare {plainEnglish}/{error} contract the
// draft page already speaks rather than the /v1 envelope.
func (h *Handler) ExplainRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExplainRecommendation")
	defer span.End()

	if !h.explainService.Configured() {
		writePlainError(ctx, w, http.StatusServiceUnavailable, explainMsgNotConfigured)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		writePlainError(ctx, w, http.StatusBadRequest, explainMsgMissingFacts)
		return
	}
	var req explainRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writePlainError(ctx, w, http.StatusBadRequest, explainMsgMissingFacts)
		return
	}

	facts, status, msg := parseExplanationFacts(req.Facts)
	if status != 0 {
		writePlainError(ctx, w, status, msg)
		return
	}

	text, err := h.explainService.Explain(ctx, facts)
	if err != nil {
		h.logger.WarnContext(ctx, "explain recommendation failed", "facts", len(facts), "error", err)
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			writePlainError(ctx, w, http.StatusBadRequest, invalidFactsMessage(len(facts)))
		case errors.Is(err, usecase.ErrDependencyUnavailable):
			writePlainError(ctx, w, http.StatusServiceUnavailable, explainMsgNotConfigured)
		case errors.Is(err, usecase.ErrUnauthorized):
			writePlainError(ctx, w, http.StatusUnauthorized, explainMsgFailed)
		case errors.Is(err, explanation.ErrEmptyResponse):
			writePlainError(ctx, w, http.StatusBadGateway, explainMsgEmptyResponse)
		default:
			writePlainError(ctx, w, http.StatusBadGateway, explainMsgFailed)
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, explainResponse{PlainEnglish: text})
}

func invalidFactsMessage(count int) string {
	if count > usecase.MaxExplanationFacts {
		return explainMsgTooManyFacts
	}
	return explainMsgEmptyFacts
}

// parseExplanationFacts accepts a single fact object or an array of them. A
// non-zero status reports why the payload was rejected.
func parseExplanationFacts(raw json.RawMessage) ([]usecase.ExplanationFact, int, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, http.StatusBadRequest, explainMsgMissingFacts
	}

	switch trimmed[0] {
	case '[':
		var facts []usecase.ExplanationFact
		if err := sonic.Unmarshal(trimmed, &facts); err != nil {
			return nil, http.StatusBadRequest, explainMsgEmptyFacts
		}
		if len(facts) == 0 {
			return nil, http.StatusBadRequest, explainMsgEmptyFacts
		}
		if len(facts) > usecase.MaxExplanationFacts {
			return nil, http.StatusBadRequest, explainMsgTooManyFacts
		}
		return facts, 0, ""
	case '{':
		var fact usecase.ExplanationFact
		if err := sonic.Unmarshal(trimmed, &fact); err != nil {
			return nil, http.StatusBadRequest, explainMsgEmptyFacts
		}
		return []usecase.ExplanationFact{fact}, 0, ""
	default:
		return nil, http.StatusBadRequest, explainMsgEmptyFacts
	}
}
