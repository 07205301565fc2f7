package httpapi

import (
	"net/http"

	"github.com/riskibarqy/draft-companion/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	q := r.URL.Query()
	list, err := h.playerService.List(ctx, usecase.PlayerListQuery{
		Team:     q.Get("team"),
		Position: q.Get("position"),
		SortBy:   q.Get("sort_by"),
		SortDir:  q.Get("sort_dir"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, list)
}

func (h *Handler) ListPlayerTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerTeams")
	defer span.End()

	teams, err := h.playerService.Teams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list player teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}

func (h *Handler) AutocompletePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AutocompletePlayers")
	defer span.End()

	q := r.URL.Query()
	hits, err := h.playerService.Autocomplete(ctx, q.Get("draft_id"), q.Get("q"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, hits)
}
