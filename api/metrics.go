package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	movesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tilegame_moves_total",
		Help: "Accepted moves by direction and whether the grid changed",
	}, []string{"direction", "changed"})
	gameOversTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tilegame_game_overs_total",
		Help: "Moves that ended a game",
	})
	sessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tilegame_sessions_created_total",
		Help: "Sessions created through the API",
	})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tilegame_http_request_duration_seconds",
		Help:    "Histogram of API request durations in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func init() {
	prometheus.MustRegister(movesTotal, gameOversTotal, sessionsCreated, requestDuration)
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the hijacker for WebSocket upgrades
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument records request latency labelled by the matched route template
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		// WebSocket upgrades need the raw writer for Hijack
		if route == "/ws" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		requestDuration.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
	})
}

func recordMove(direction string, changed, gameOver bool) {
	movesTotal.WithLabelValues(direction, strconv.FormatBool(changed)).Inc()
	if gameOver {
		gameOversTotal.Inc()
	}
}
