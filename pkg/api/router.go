package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dd0wney/graphdb/pkg/logging"
	"github.com/dd0wney/graphdb/pkg/metrics"
	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP front-end: the eight graph endpoints plus a
// /metrics endpoint, wrapped in CORS, request-logging, and metrics
// middleware.
func NewRouter(ctx *peer.Context, logger logging.Logger, reg *metrics.Registry) *mux.Router {
	srv := NewServer(ctx, logger, reg)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/add_node", srv.AddNode).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/remove_node", srv.RemoveNode).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/add_edge", srv.AddEdge).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/remove_edge", srv.RemoveEdge).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/get_node", srv.GetNode).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/get_edge", srv.GetEdge).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/get_neighbors", srv.GetNeighbors).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/shortest_path", srv.ShortestPath).Methods(http.MethodPost)

	router.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	router.Use(corsMiddleware)
	router.Use(loggingMiddleware(srv.logger))
	router.Use(metricsMiddleware(reg))

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("http request",
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Latency(time.Since(start)),
			)
		})
	}
}

// statusRecorder captures the status code a handler wrote, since
// http.ResponseWriter doesn't expose it after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(reg *metrics.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			reg.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(rec.status), time.Since(start))
		})
	}
}
