// Package synth orchestrates report generation: resolve the station to
// coordinates, fetch an observation, encode it, and record the result in the
// history store when one is configured.
package synth

import (
	"context"
	"fmt"
	"time"

	"github.com/wxforge/metgen/internal/airport"
	"github.com/wxforge/metgen/internal/storage/sqlite"
	"github.com/wxforge/metgen/pkg/logger"
	"github.com/wxforge/metgen/pkg/metar"
)

// WeatherProvider supplies normalized observations for coordinates.
type WeatherProvider interface {
	Observation(ctx context.Context, lat, lon float64) (metar.Observation, []string, error)
	HasOneCall() bool
}

// StationResolver maps station identifiers and place names to coordinates.
type StationResolver interface {
	ResolveICAO(ctx context.Context, icao string) (float64, float64, error)
	ResolveFreeform(ctx context.Context, location string) (float64, float64, error)
}

// Result is one generated report plus any active weather alerts.
type Result struct {
	Station string
	Report  string
	Alerts  []string
	Source  string
}

// Generator produces reports for stations and locations.
type Generator struct {
	provider WeatherProvider
	stations StationResolver
	encoder  *metar.Encoder
	store    *sqlite.ReportStore // nil disables history
	units    metar.Units
	logger   *logger.Logger
}

// NewGenerator wires a generator. store may be nil when history is disabled.
func NewGenerator(p WeatherProvider, s StationResolver, enc *metar.Encoder, store *sqlite.ReportStore, units metar.Units, log *logger.Logger) *Generator {
	return &Generator{
		provider: p,
		stations: s,
		encoder:  enc,
		store:    store,
		units:    units,
		logger:   log.Named("synth"),
	}
}

// ForICAO generates a report for an airport identified by its ICAO code.
func (g *Generator) ForICAO(ctx context.Context, icao string) (*Result, error) {
	lat, lon, err := g.stations.ResolveICAO(ctx, icao)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", icao, err)
	}
	return g.ForCoordinates(ctx, icao, lat, lon)
}

// ForLocation generates a report for a free-form place name, labeled with the
// given station identifier.
func (g *Generator) ForLocation(ctx context.Context, stationID, location string) (*Result, error) {
	lat, lon, err := g.stations.ResolveFreeform(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", location, err)
	}
	return g.ForCoordinates(ctx, stationID, lat, lon)
}

// ForCoordinates generates a report for explicit coordinates. No observation
// means no report: a provider error aborts generation entirely.
func (g *Generator) ForCoordinates(ctx context.Context, stationID string, lat, lon float64) (*Result, error) {
	if err := airport.ValidateLatLon(lat, lon); err != nil {
		return nil, err
	}

	obs, alerts, err := g.provider.Observation(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("fetching observation: %w", err)
	}

	result := &Result{
		Station: stationID,
		Report:  g.encoder.Encode(stationID, obs, g.units),
		Alerts:  alerts,
		Source:  g.source(),
	}

	g.logger.Info("Generated report",
		logger.String("station", result.Station),
		logger.String("source", result.Source))

	g.record(ctx, result)
	return result, nil
}

// SetUnits switches the measurement system for subsequent reports. Not safe
// to call concurrently with generation.
func (g *Generator) SetUnits(units metar.Units) { g.units = units }

func (g *Generator) source() string {
	if g.provider.HasOneCall() {
		return "onecall"
	}
	return "current"
}

// record persists the report when a store is configured. History is best
// effort; a storage failure never fails the generation.
func (g *Generator) record(ctx context.Context, result *Result) {
	if g.store == nil {
		return
	}
	_, err := g.store.Save(ctx, sqlite.ReportRecord{
		Station:     result.Station,
		Units:       string(g.units),
		Source:      result.Source,
		Report:      result.Report,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		g.logger.Warn("Failed to record report history",
			logger.String("station", result.Station),
			logger.Error(err))
	}
}
