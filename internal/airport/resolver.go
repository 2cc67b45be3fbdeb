// Package airport resolves ICAO codes and free-form place names to the
// latitude/longitude the weather provider needs. ICAO lookups try the
// Aviation Weather Center API first and fall back to a bundled airport
// database when the network or the API is unavailable.
package airport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wxforge/metgen/pkg/logger"
)

const (
	defaultAirportURL = "https://aviationweather.gov/api/data/airport"
	defaultGeocodeURL = "http://api.openweathermap.org/geo/1.0/direct"

	requestTimeout = 10 * time.Second
)

var (
	ErrNotFound = errors.New("airport not found")
	ErrNoAPIKey = errors.New("geocoding api key is missing")
)

// Resolver turns station identifiers and place names into coordinates.
type Resolver struct {
	httpClient   *http.Client
	apiKey       string // OpenWeatherMap key, used only for free-form geocoding
	airportURL   string
	geocodeURL   string
	geolocateURL string
	logger       *logger.Logger
}

// NewResolver creates a resolver. The API key may be empty; only free-form
// geocoding needs it.
func NewResolver(apiKey string, log *logger.Logger) *Resolver {
	return &Resolver{
		httpClient:   &http.Client{Timeout: requestTimeout},
		apiKey:       apiKey,
		airportURL:   defaultAirportURL,
		geocodeURL:   defaultGeocodeURL,
		geolocateURL: defaultGeolocateURL,
		logger:       log.Named("airport"),
	}
}

// SetAPIKey replaces the geocoding API key, for settings changes at runtime.
func (r *Resolver) SetAPIKey(key string) { r.apiKey = key }

// ResolveICAO finds the coordinates of an airport by its ICAO code, falling
// back to the bundled database when the remote lookup fails.
func (r *Resolver) ResolveICAO(ctx context.Context, icao string) (float64, float64, error) {
	icao = strings.ToUpper(strings.TrimSpace(icao))

	lat, lon, err := r.lookupRemote(ctx, icao)
	if err == nil {
		return lat, lon, nil
	}
	r.logger.Warn("Remote airport lookup failed, using bundled database",
		logger.String("icao", icao),
		logger.Error(err))

	if lat, lon, ok := lookupBundled(icao); ok {
		return lat, lon, nil
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrNotFound, icao)
}

func (r *Resolver) lookupRemote(ctx context.Context, icao string) (float64, float64, error) {
	params := url.Values{}
	params.Set("ids", icao)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.airportURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("querying airport API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("airport API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("reading airport API response: %w", err)
	}

	var airports []struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(body, &airports); err != nil {
		return 0, 0, fmt.Errorf("parsing airport API response: %w", err)
	}
	if len(airports) == 0 || airports[0].Lat == nil || airports[0].Lon == nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrNotFound, icao)
	}
	return *airports[0].Lat, *airports[0].Lon, nil
}

// ResolveFreeform geocodes a free-form location string ("Helsinki",
// "Portland, OR, US") via OpenWeatherMap direct geocoding.
func (r *Resolver) ResolveFreeform(ctx context.Context, location string) (float64, float64, error) {
	if r.apiKey == "" {
		return 0, 0, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("limit", "1")
	params.Set("appid", r.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.geocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("querying geocoding API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("parsing geocoding response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrNotFound, location)
	}
	return results[0].Lat, results[0].Lon, nil
}

// ValidateLatLon checks that coordinates lie in the valid geographic range.
func ValidateLatLon(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %g", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %g", lon)
	}
	return nil
}
