package metar

// Units selects the measurement system for the visibility and pressure tokens.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// Observation is a normalized weather snapshot for a single location, built
// fresh from a provider payload for every request. Every numeric field may be
// missing independently; the encoder renders a placeholder token instead of
// failing when a field is absent.
type Observation struct {
	TemperatureC  *float64
	DewPointC     *float64
	HumidityPct   *float64 // used only when DewPointC is absent
	PressureHPa   *float64
	WindSpeedMS   *float64
	WindDirDeg    *int
	WindGustMS    *float64
	VisibilityM   *float64
	CloudCoverPct *float64
	WeatherCodes  []int // provider condition codes, in the order received
	Forecast      []ForecastEntry
}

// ForecastEntry is one hourly forecast point used for the FCST trend section.
type ForecastEntry struct {
	TimestampUnix int64
	TemperatureC  *float64
	DewPointC     *float64
	PressureHPa   *float64
	WindSpeedMS   *float64
	WindDirDeg    *int
	WindGustMS    *float64
	VisibilityM   *float64
	WeatherCodes  []int
}
