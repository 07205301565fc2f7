package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSettingsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
	mux.HandleFunc("PUT /v1/settings", handler.SaveSettings)
	mux.HandleFunc("DELETE /v1/settings", handler.ResetSettings)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/teams", handler.ListPlayerTeams)
	mux.HandleFunc("GET /v1/players/autocomplete", handler.AutocompletePlayers)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/drafts", handler.CreateDraft)
	mux.HandleFunc("GET /v1/drafts/{draftID}", handler.GetDraft)
	mux.HandleFunc("DELETE /v1/drafts/{draftID}", handler.DeleteDraft)
	mux.HandleFunc("POST /v1/drafts/{draftID}/start", handler.StartDraft)
	mux.HandleFunc("POST /v1/drafts/{draftID}/picks", handler.RecordPick)
	mux.HandleFunc("GET /v1/drafts/{draftID}/recommendations", handler.GetRecommendations)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/simulate", handler.SetSimulate)
	mux.HandleFunc("GET /v1/drafts/{draftID}/roster", handler.GetDraftRoster)
	mux.HandleFunc("GET /v1/drafts/{draftID}/history", handler.GetDraftHistory)
	mux.HandleFunc("GET /v1/drafts/{draftID}/events", handler.StreamDraftEvents)
	mux.HandleFunc("GET /v1/my-team", handler.GetMyTeam)
}

func registerExplainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/explain-recommendation", handler.ExplainRecommendation)
}
