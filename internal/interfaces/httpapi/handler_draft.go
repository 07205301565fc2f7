package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/draft-companion/internal/domain/recommend"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

const maxRecommendations = 50

func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraft")
	defer span.End()

	var req createDraftRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.draftService.Create(ctx, req.Simulate)
	if err != nil {
		h.logger.WarnContext(ctx, "create draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, state)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft", draftIDAttr(r))
	defer span.End()

	state, err := h.draftService.State(ctx, r.PathValue("draftID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft", draftIDAttr(r))
	defer span.End()

	var req startDraftRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := r.PathValue("draftID")
	state, err := h.draftService.Start(ctx, draftID, req.Simulate)
	if err != nil {
		h.logger.WarnContext(ctx, "start draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDraft", draftIDAttr(r))
	defer span.End()

	if err := h.draftService.Delete(ctx, r.PathValue("draftID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPick", draftIDAttr(r))
	defer span.End()

	var req recordPickRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := r.PathValue("draftID")
	var (
		outcome usecase.PickOutcome
		err     error
	)
	switch req.Team {
	case "user":
		outcome, err = h.draftService.RecordUserPick(ctx, draftID, req.PlayerName)
	case "other":
		outcome, err = h.draftService.RecordOtherTeamPick(ctx, draftID, req.PlayerName)
	default:
		outcome, err = h.draftService.RecordPick(ctx, draftID, req.PlayerName)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "record pick failed", "draft_id", draftID, "player_name", req.PlayerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcome)
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRecommendations", draftIDAttr(r))
	defer span.End()

	n, err := queryInt(r, "n", recommend.UserCount)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if n < 1 || n > maxRecommendations {
		writeError(ctx, w, fmt.Errorf("%w: n must be between 1 and %d", usecase.ErrInvalidInput, maxRecommendations))
		return
	}

	view, err := h.draftService.Recommendations(ctx, r.PathValue("draftID"), n)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) SetSimulate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSimulate", draftIDAttr(r))
	defer span.End()

	var req simulateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.draftService.SetSimulate(ctx, r.PathValue("draftID"), *req.Enabled)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

func (h *Handler) GetDraftRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftRoster", draftIDAttr(r))
	defer span.End()

	view, err := h.draftService.Roster(ctx, r.PathValue("draftID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetDraftHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftHistory", draftIDAttr(r))
	defer span.End()

	history, err := h.draftService.History(ctx, r.PathValue("draftID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, history)
}

// StreamDraftEvents checks the draft exists before upgrading to a websocket.
func (h *Handler) StreamDraftEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamDraftEvents", draftIDAttr(r))
	defer span.End()

	if h.events == nil {
		writeError(ctx, w, fmt.Errorf("%w: event stream is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	draftID := r.PathValue("draftID")
	if _, err := h.draftService.State(ctx, draftID); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.events.Serve(w, r, draftID)
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	export, err := h.draftService.LatestRoster(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, export)
}
