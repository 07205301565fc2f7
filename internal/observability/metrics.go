package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "draft_companion"

// Recorder exposes draft engine and HTTP counters on a private registry.
type Recorder struct {
	registry        *prometheus.Registry
	draftsStarted   prometheus.Counter
	draftsCompleted prometheus.Counter
	picks           *prometheus.CounterVec
	explanations    *prometheus.CounterVec
	explainLatency  *prometheus.HistogramVec
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		draftsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "drafts_started_total",
			Help:      "Draft sessions started or restarted.",
		}),
		draftsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "drafts_completed_total",
			Help:      "Draft sessions that reached the last pick.",
		}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "picks_total",
			Help:      "Recorded picks by kind and catalog match.",
		}, []string{"kind", "matched"}),
		explanations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "explanations_total",
			Help:      "Explanation requests by outcome.",
		}, []string{"outcome"}),
		explainLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "explanation_duration_seconds",
			Help:      "Time spent producing an explanation.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.draftsStarted,
		r.draftsCompleted,
		r.picks,
		r.explanations,
		r.explainLatency,
		r.requests,
		r.requestLatency,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) RecordDraftStarted() {
	r.draftsStarted.Inc()
}

func (r *Recorder) RecordDraftCompleted() {
	r.draftsCompleted.Inc()
}

func (r *Recorder) RecordPick(kind string, matched bool) {
	r.picks.WithLabelValues(kind, strconv.FormatBool(matched)).Inc()
}

func (r *Recorder) RecordExplanation(outcome string, duration time.Duration) {
	r.explanations.WithLabelValues(outcome).Inc()
	if duration > 0 {
		r.explainLatency.WithLabelValues(outcome).Observe(duration.Seconds())
	}
}

// RecordHTTPRequest takes the matched route pattern, not the raw path, to
// keep label cardinality bounded.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}
