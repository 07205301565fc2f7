package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

const (
	envelopeAPIVersion = "2.0"
	errorDomain        = "draft-companion"
	internalErrorMsg   = "internal server error"
)

// envelope is the {apiVersion, data, error} body of every /v1 response.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	target     error
	HTTPStatus int
	Reason     string
	Status     string
}

var (
	internalErrorClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

	// First match wins.
	errorClasses = []errorClass{
		{target: usecase.ErrInvalidInput, HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
		{target: usecase.ErrNotFound, HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
		{target: usecase.ErrConflict, HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "FAILED_PRECONDITION"},
		{target: usecase.ErrUnauthorized, HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
		{target: usecase.ErrDependencyUnavailable, HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
		{target: usecase.ErrUpstream, HTTPStatus: http.StatusBadGateway, Reason: "upstreamFailure", Status: "UNKNOWN"},
	}
)

func classifyError(err error) errorClass {
	for _, class := range errorClasses {
		if errors.Is(err, class.target) {
			return class
		}
	}
	return internalErrorClass
}

func writeJSON(_ context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: envelopeAPIVersion, Data: data})
}

// writeError maps a usecase error onto the envelope. Unclassified errors are
// reported as a generic 500 so internals never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classifyError(err)
	msg := internalErrorMsg
	if class.target != nil {
		msg = err.Error()
	}
	writeClassified(ctx, w, class, msg)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeClassified(ctx, w, internalErrorClass, internalErrorMsg)
}

func writeClassified(ctx context.Context, w http.ResponseWriter, class errorClass, msg string) {
	writeJSON(ctx, w, class.HTTPStatus, envelope{
		APIVersion: envelopeAPIVersion,
		Error: &errorBody{
			Code:    class.HTTPStatus,
			Message: msg,
			Status:  class.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: msg}},
		},
	})
}

type plainErrorBody struct {
	Error string `json:"error"`
}

// writePlainError writes the bare {"error": msg} shape used by the explain
// endpoint instead of the envelope.
func writePlainError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, plainErrorBody{Error: msg})
}
