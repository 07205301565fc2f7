package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settings)
}

func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSettings")
	defer span.End()

	var req saveSettingsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var capacities map[roster.Slot]int
	if req.Roster != nil {
		capacities = make(map[roster.Slot]int, len(req.Roster))
		for key, n := range req.Roster {
			capacities[roster.Slot(strings.ToUpper(strings.TrimSpace(key)))] = n
		}
	}

	settings, err := h.settingsService.Save(ctx, usecase.SaveSettingsInput{
		LeagueName:    req.LeagueName,
		NumTeams:      req.NumTeams,
		DraftPosition: req.DraftPosition,
		Roster:        capacities,
		BenchSlots:    req.BenchSlots,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settings)
}

func (h *Handler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetSettings")
	defer span.End()

	settings, err := h.settingsService.Reset(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reset settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settings)
}
