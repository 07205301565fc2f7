package httpapi

import (
	"net/http"

	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

// RouterOptions carries the optional surfaces of the router.
type RouterOptions struct {
	Metrics            http.Handler
	Recorder           RequestRecorder
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics, opts.SwaggerEnabled)
	registerSettingsRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)
	registerDraftRoutes(mux, handler)
	registerExplainRoutes(mux, handler)

	routeOf := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}

	return RequestTracing(routeOf, RequestLogging(logger, opts.Recorder, routeOf, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
