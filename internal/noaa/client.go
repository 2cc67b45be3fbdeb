// Package noaa fetches published METAR reports from the Aviation Weather
// Center so generated reports can be compared against the real thing.
package noaa

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
	defaultMETARURL = "https://aviationweather.gov/api/data/metar"

	requestTimeout = 10 * time.Second
)

// ErrNoReport means the station exists but has no published METAR.
var ErrNoReport = errors.New("no published METAR for station")

// Client fetches official METAR reports.
type Client struct {
	httpClient *http.Client
	metarURL   string
	logger     *logger.Logger
}

func NewClient(log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		metarURL:   defaultMETARURL,
		logger:     log.Named("noaa"),
	}
}

// FetchMETAR fetches the latest raw METAR for a given station code.
func (c *Client) FetchMETAR(ctx context.Context, stationCode string) (string, error) {
	stationCode = strings.ToUpper(strings.TrimSpace(stationCode))

	params := url.Values{}
	params.Set("ids", stationCode)
	params.Set("format", "json")
	params.Set("taf", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metarURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching METAR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	var reports []struct {
		RawOb string `json:"rawOb"`
	}
	if err := json.Unmarshal(body, &reports); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if len(reports) == 0 || strings.TrimSpace(reports[0].RawOb) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoReport, stationCode)
	}

	c.logger.Debug("Fetched official METAR", logger.String("station", stationCode))
	return strings.TrimSpace(reports[0].RawOb), nil
}
