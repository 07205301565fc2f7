package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

// EventStream upgrades a request into a live feed of draft events.
type EventStream interface {
	Serve(w http.ResponseWriter, r *http.Request, draftID string)
}

type Handler struct {
	settingsService *usecase.SettingsService
	playerService   *usecase.PlayerService
	draftService    *usecase.DraftService
	explainService  *usecase.ExplainService
	events          EventStream
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	settingsService *usecase.SettingsService,
	playerService *usecase.PlayerService,
	draftService *usecase.DraftService,
	explainService *usecase.ExplainService,
	events EventStream,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		settingsService: settingsService,
		playerService:   playerService,
		draftService:    draftService,
		explainService:  explainService,
		events:          events,
		logger:          logger,
		validator:       newValidator(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
