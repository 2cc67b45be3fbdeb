// Package api exposes report generation over HTTP for serve mode.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wxforge/metgen/internal/airport"
	"github.com/wxforge/metgen/internal/noaa"
	"github.com/wxforge/metgen/internal/provider"
	"github.com/wxforge/metgen/internal/storage/sqlite"
	"github.com/wxforge/metgen/internal/synth"
	"github.com/wxforge/metgen/pkg/logger"
)

// ReportGenerator produces reports for ICAO stations.
type ReportGenerator interface {
	ForICAO(ctx context.Context, icao string) (*synth.Result, error)
}

// OfficialFetcher fetches published METARs for comparison.
type OfficialFetcher interface {
	FetchMETAR(ctx context.Context, stationCode string) (string, error)
}

// HistoryStore lists previously generated reports.
type HistoryStore interface {
	Recent(ctx context.Context, limit int) ([]sqlite.ReportRecord, error)
}

// Handler contains the API handlers.
type Handler struct {
	generator ReportGenerator
	official  OfficialFetcher
	history   HistoryStore // nil disables the history endpoint
	logger    *logger.Logger
}

// NewHandler creates a new API handler. history may be nil.
func NewHandler(generator ReportGenerator, official OfficialFetcher, history HistoryStore, log *logger.Logger) *Handler {
	return &Handler{
		generator: generator,
		official:  official,
		history:   history,
		logger:    log.Named("api-handler"),
	}
}

type reportResponse struct {
	Station string   `json:"station"`
	Report  string   `json:"report"`
	Alerts  []string `json:"alerts,omitempty"`
	Source  string   `json:"source"`
}

// GetReport generates a report for the station in the URL.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	icao := chi.URLParam(r, "icao")

	result, err := h.generator.ForICAO(r.Context(), icao)
	if err != nil {
		h.logger.Warn("Report generation failed",
			logger.String("station", icao),
			logger.Error(err))
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Station: result.Station,
		Report:  result.Report,
		Alerts:  result.Alerts,
		Source:  result.Source,
	})
}

// GetOfficialReport returns the latest published METAR for the station.
func (h *Handler) GetOfficialReport(w http.ResponseWriter, r *http.Request) {
	icao := chi.URLParam(r, "icao")

	raw, err := h.official.FetchMETAR(r.Context(), icao)
	if err != nil {
		h.logger.Warn("Official METAR fetch failed",
			logger.String("station", icao),
			logger.Error(err))
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"station": icao,
		"report":  raw,
	})
}

// GetHistory returns recently generated reports.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, errors.New("history is disabled"))
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("History query failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []sqlite.ReportRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GetHealth is a liveness probe.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, airport.ErrNotFound), errors.Is(err, provider.ErrNotFound), errors.Is(err, noaa.ErrNoReport):
		return http.StatusNotFound
	case errors.Is(err, provider.ErrNoAPIKey), errors.Is(err, provider.ErrUnauthorized):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
