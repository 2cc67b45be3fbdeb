package airport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultGeolocateURL = "http://ip-api.com/json/"

// Location represents geographic coordinates of the user.
type Location struct {
	Latitude  float64
	Longitude float64
	City      string
	Region    string
	Country   string
}

// Geolocate estimates the caller's location from their public IP address.
// Uses ip-api.com which is free for non-commercial use.
func (r *Resolver) Geolocate(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.geolocateURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result struct {
		Status      string  `json:"status"`
		Lat         float64 `json:"lat"`
		Lon         float64 `json:"lon"`
		City        string  `json:"city"`
		RegionName  string  `json:"regionName"`
		CountryName string  `json:"country"`
		Message     string  `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	return &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Region:    result.RegionName,
		Country:   result.CountryName,
	}, nil
}
