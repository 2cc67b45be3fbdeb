// Package provider fetches weather data from OpenWeatherMap and normalizes
// it into the engine's observation record. Two upstream endpoints are
// supported: the current-weather API (no dew point, humidity only) and the
// One Call 3.0 API (direct dew point, hourly forecast, alerts). Both
// converge on the same record shape before reaching the encoder.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wxforge/metgen/pkg/logger"
	"github.com/wxforge/metgen/pkg/metar"
)

const (
	defaultCurrentURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultOneCallURL = "https://api.openweathermap.org/data/3.0/onecall"

	requestTimeout = 10 * time.Second
)

// Sentinel errors surfaced to callers. Per the engine contract there is no
// partial-success path: any error here means assembly is skipped entirely.
var (
	ErrNoAPIKey     = errors.New("api key is missing")
	ErrUnauthorized = errors.New("api key rejected")
	ErrNotFound     = errors.New("location not found")
	ErrNoData       = errors.New("no observation data available")
)

// Client talks to OpenWeatherMap with retries and a circuit breaker.
type Client struct {
	httpClient *http.Client
	apiKey     string
	oneCallKey string
	currentURL string
	oneCallURL string
	breaker    *gobreaker.CircuitBreaker
	backoff    backoffConfig
	logger     *logger.Logger
}

// NewClient creates a provider client. Either key may be empty; calls that
// need the missing key fail with ErrNoAPIKey.
func NewClient(apiKey, oneCallKey string, log *logger.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiKey:     apiKey,
		oneCallKey: oneCallKey,
		currentURL: defaultCurrentURL,
		oneCallURL: defaultOneCallURL,
		breaker:    cb,
		backoff: backoffConfig{
			maxRetries:      3,
			initialInterval: 500 * time.Millisecond,
			maxInterval:     5 * time.Second,
		},
		logger: log.Named("provider"),
	}
}

// HasOneCall reports whether the richer One Call endpoint is configured.
func (c *Client) HasOneCall() bool { return c.oneCallKey != "" }

// SetKeys replaces the API keys, for settings changes at runtime. Not safe
// to call concurrently with in-flight requests.
func (c *Client) SetKeys(apiKey, oneCallKey string) {
	c.apiKey = apiKey
	c.oneCallKey = oneCallKey
}

// Observation fetches the best available observation for the coordinates:
// One Call when its key is configured, the current-weather endpoint
// otherwise. Alerts are only available through One Call.
func (c *Client) Observation(ctx context.Context, lat, lon float64) (metar.Observation, []string, error) {
	if c.HasOneCall() {
		return c.OneCall(ctx, lat, lon)
	}
	obs, err := c.Current(ctx, lat, lon)
	return obs, nil, err
}

// Current fetches the current-weather endpoint. The returned observation has
// no dew point; the encoder derives one from humidity.
func (c *Client) Current(ctx context.Context, lat, lon float64) (metar.Observation, error) {
	if c.apiKey == "" {
		return metar.Observation{}, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	var payload currentPayload
	if err := c.getJSON(ctx, c.currentURL, params, &payload); err != nil {
		return metar.Observation{}, fmt.Errorf("fetching current weather: %w", err)
	}

	c.logger.Debug("Current weather fetched",
		logger.Float64("lat", lat),
		logger.Float64("lon", lon))

	return payload.observation(), nil
}

// OneCall fetches the One Call 3.0 endpoint: observation plus up to two
// hourly forecast entries and any active weather alert descriptions.
func (c *Client) OneCall(ctx context.Context, lat, lon float64) (metar.Observation, []string, error) {
	if c.oneCallKey == "" {
		return metar.Observation{}, nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("appid", c.oneCallKey)
	params.Set("exclude", "minutely")
	params.Set("units", "metric")

	var payload oneCallPayload
	if err := c.getJSON(ctx, c.oneCallURL, params, &payload); err != nil {
		return metar.Observation{}, nil, fmt.Errorf("fetching one call weather: %w", err)
	}

	c.logger.Debug("One Call weather fetched",
		logger.Float64("lat", lat),
		logger.Float64("lon", lon),
		logger.Int("hourly_entries", len(payload.Hourly)),
		logger.Int("alerts", len(payload.Alerts)))

	return payload.observation(), payload.alertDescriptions(), nil
}

// getJSON performs a resilient GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, baseURL string, params url.Values, out any) error {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, baseURL+"?"+params.Encode(), nil)
	}

	resp, err := c.doRequest(ctx, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrNoData, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
