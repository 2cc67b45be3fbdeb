package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wxforge/metgen/pkg/logger"
)

// NewRouter builds the HTTP route table for serve mode.
func NewRouter(h *Handler, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(log.Named("http")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.GetHealth)
		r.Get("/metar/{icao}", h.GetReport)
		r.Get("/metar/{icao}/official", h.GetOfficialReport)
		r.Get("/history", h.GetHistory)
	})

	return r
}

// requestLogger logs each request with its status and duration.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			log.Info("Request handled",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", sw.status),
				logger.Duration("duration", time.Since(start)))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
