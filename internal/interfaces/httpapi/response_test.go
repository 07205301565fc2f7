package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, map[string]string{"draftId": "d1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: %w", usecase.ErrConflict, draft.ErrInvalidPickRequest))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	errorObj, ok := decodeEnvelope(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "FAILED_PRECONDITION" {
		t.Fatalf("expected error status FAILED_PRECONDITION, got %v", errorObj["status"])
	}
}

func TestWriteError_HidesUnclassifiedDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("dial tcp 10.0.0.5:5432: refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: duplicate", usecase.ErrConflict), want: http.StatusConflict},
		{err: fmt.Errorf("%w: model down", usecase.ErrUpstream), want: http.StatusBadGateway},
		{err: fmt.Errorf("%w: no draft", usecase.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("%w: bad key", usecase.ErrUnauthorized), want: http.StatusUnauthorized},
		{err: fmt.Errorf("%w: catalog", usecase.ErrDependencyUnavailable), want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := classifyError(tt.err).HTTPStatus; got != tt.want {
			t.Fatalf("classifyError(%v)=%d want=%d", tt.err, got, tt.want)
		}
	}
}

func TestWritePlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	writePlainError(context.Background(), rec, http.StatusServiceUnavailable, explainMsgNotConfigured)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if _, ok := body["apiVersion"]; ok {
		t.Fatalf("plain error must not use the envelope")
	}
	if body["error"] != explainMsgNotConfigured {
		t.Fatalf("unexpected error message %v", body["error"])
	}
}
