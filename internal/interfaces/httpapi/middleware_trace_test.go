package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldTraceRequest_HealthPaths(t *testing.T) {
	paths := []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /healthz "}
	for _, path := range paths {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
}

func TestShouldTraceRequest_NonHealthPaths(t *testing.T) {
	paths := []string{"/v1/players", "/v1/drafts", "/", "/docs"}
	for _, path := range paths {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRequestTracing_PassesThrough(t *testing.T) {
	called := false
	handler := RequestTracing(func(*http.Request) string { return "GET /v1/drafts/{draftID}" }, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/drafts/abc", nil))

	if !called || rec.Code != http.StatusTeapot {
		t.Fatalf("expected wrapped handler to run, called=%v status=%d", called, rec.Code)
	}
}
