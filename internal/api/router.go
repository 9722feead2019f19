package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/sensai/internal/api/handlers"
	"github.com/wonny/sensai/pkg/logger"
	"github.com/wonny/sensai/pkg/metrics"
)

// NewRouter creates and configures the HTTP router.
// football and recorder may be nil; their routes are then not registered.
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(health Health, pipeline *handlers.PipelineHandler, football *handlers.FootballHandler, recorder *metrics.Recorder, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthHandler(health)).Methods("GET")

	// Prometheus
	if recorder != nil {
		r.Handle("/metrics", recorder.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Pipeline endpoints
	api.HandleFunc("/players/metrics", pipeline.GetPlayerMetrics).Methods("GET")
	api.HandleFunc("/lineup", pipeline.PostLineup).Methods("POST")
	api.HandleFunc("/strategy", pipeline.PostStrategy).Methods("POST")
	api.HandleFunc("/export", pipeline.PostExport).Methods("POST")

	// Championship endpoints
	if football != nil {
		api.HandleFunc("/standings", football.GetStandings).Methods("GET")
		api.HandleFunc("/matches/next", football.GetNextMatches).Methods("GET")
		api.HandleFunc("/teams/{id:[0-9]+}/results", football.GetTeamResults).Methods("GET")
	}

	// Apply middleware
	r.Use(loggingMiddleware(log, recorder))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthHandler reports the pipeline wiring; an unreachable export database is 503
func healthHandler(h Health) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]interface{}{
			"status":   "ok",
			"service":  logger.Service,
			"env":      h.Env,
			"source":   h.Source,
			"sink":     h.Sink,
			"narrator": h.Narrator,
		}

		if h.Database != nil {
			dbStatus, err := h.Database.HealthCheck(r.Context())
			body["database"] = dbStatus
			if err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs HTTP requests and records their latency by route template
func loggingMiddleware(log *logger.Logger, recorder *metrics.Recorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			// Call next handler
			next.ServeHTTP(sw, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			recorder.ObserveHTTP(r.Method, route, sw.status, time.Since(start))

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   sw.status,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
