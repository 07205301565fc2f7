package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_CountsDraftActivity(t *testing.T) {
	rec := NewRecorder()
	rec.RecordDraftStarted()
	rec.RecordPick("user", true)
	rec.RecordPick("user", true)
	rec.RecordPick("other_team", false)
	rec.RecordExplanation("fallback", 0)
	rec.RecordDraftCompleted()

	if got := testutil.ToFloat64(rec.picks.WithLabelValues("user", "true")); got != 2 {
		t.Fatalf("expected 2 matched user picks, got %v", got)
	}
	if got := testutil.ToFloat64(rec.picks.WithLabelValues("other_team", "false")); got != 1 {
		t.Fatalf("expected 1 unmatched other-team pick, got %v", got)
	}
	if got := testutil.ToFloat64(rec.draftsCompleted); got != 1 {
		t.Fatalf("expected 1 completed draft, got %v", got)
	}
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	rec := NewRecorder()
	rec.RecordHTTPRequest("GET", "GET /v1/players", 200, 15*time.Millisecond)
	rec.RecordExplanation("ok", 800*time.Millisecond)

	srv := httptest.NewServer(rec.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		"draft_companion_http_requests_total",
		`route="GET /v1/players"`,
		"draft_companion_explanation_duration_seconds_bucket",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %q in scrape output", want)
		}
	}
}
