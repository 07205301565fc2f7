package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("rosterslot", func(fl validator.FieldLevel) bool {
		slot := roster.Slot(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
		return slot.Valid() && slot != roster.SlotBench
	})
	return v
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a size-capped body. An empty body is accepted when
// allowEmpty is set and leaves dst untouched.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigDefault.NewDecoder(strings.NewReader(string(body)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

type saveSettingsRequest struct {
	LeagueName    string         `json:"leagueName" validate:"max=100"`
	NumTeams      int            `json:"numTeams" validate:"gte=0,lte=30"`
	DraftPosition int            `json:"draftPosition" validate:"gte=0"`
	Roster        map[string]int `json:"roster" validate:"omitempty,dive,keys,rosterslot,endkeys,gte=0"`
	BenchSlots    int            `json:"benchSlots" validate:"gte=0"`
}

type createDraftRequest struct {
	Simulate bool `json:"simulate"`
}

type startDraftRequest struct {
	Simulate *bool `json:"simulate"`
}

type recordPickRequest struct {
	PlayerName string `json:"playerName" validate:"required,max=200"`
	// Team is "user" or "other"; empty follows the current turn.
	Team string `json:"team" validate:"omitempty,oneof=user other"`
}

type simulateRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
