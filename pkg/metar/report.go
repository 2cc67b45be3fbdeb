// Package metar renders normalized weather observations into METAR-style
// report text. The encoder is a pure transformation over its inputs: missing
// fields degrade to placeholder tokens, there is no failure path, and the
// only non-deterministic input is the wall clock read for the report
// timestamp.
package metar

import (
	"fmt"
	"strings"
	"time"

	"k8s.io/utils/clock"
)

// Encoder assembles full reports. It is stateless apart from the clock and
// safe for concurrent use.
type Encoder struct {
	clock clock.PassiveClock
}

// NewEncoder returns an encoder stamping reports with the system clock.
func NewEncoder() *Encoder {
	return &Encoder{clock: clock.RealClock{}}
}

// NewEncoderWithClock returns an encoder with an injected clock, for tests.
func NewEncoderWithClock(c clock.PassiveClock) *Encoder {
	return &Encoder{clock: c}
}

// Encode renders the observation as a single report line in the fixed token
// order STATION DDHHMMZ AUTO WIND VIS CLOUDS TEMP/DEW PRESSURE, followed by
// the phenomena line when non-empty and by FCST trend segments when the
// observation carries a significant forecast.
func (e *Encoder) Encode(stationID string, obs Observation, units Units) string {
	reportTime := e.clock.Now().UTC().Format("021504") + "Z"

	wind := FormatWind(obs.WindDirDeg, obs.WindSpeedMS, obs.WindGustMS)
	visibility := FormatVisibility(obs.VisibilityM, units, obs.WeatherCodes)
	clouds := FormatClouds(obs.CloudCoverPct)
	tempDew := FormatTempDew(obs.TemperatureC, obs.DewPointC, obs.HumidityPct)
	pressure := FormatPressure(obs.PressureHPa, units)

	report := fmt.Sprintf("%s %s AUTO %s %s %s %s %s",
		strings.ToUpper(stationID), reportTime, wind, visibility, clouds, tempDew, pressure)

	if wx := FormatWeatherConditions(obs.WeatherCodes); wx != "" {
		report += " " + wx
	}
	if trend := trendSection(obs.Forecast, units); trend != "" {
		report += " " + trend
	}
	return report
}

// trendSection builds FCST segments from the hourly forecast, in input order.
// A segment is emitted only when the hour differs meaningfully from a default
// clear/calm state: phenomena present, visibility other than 9999, or a gust
// in the wind group.
func trendSection(forecast []ForecastEntry, units Units) string {
	var b strings.Builder
	for _, entry := range forecast {
		trendTime := time.Unix(entry.TimestampUnix, 0).UTC().Format("1504") + "Z"

		wind := FormatWind(entry.WindDirDeg, entry.WindSpeedMS, entry.WindGustMS)
		visibility := FormatVisibility(entry.VisibilityM, units, entry.WeatherCodes)
		wx := FormatWeatherConditions(entry.WeatherCodes)
		tempDew := FormatTempDew(entry.TemperatureC, entry.DewPointC, nil)
		pressure := FormatPressure(entry.PressureHPa, units)

		if wx == "" && visibility == "9999" && !strings.Contains(wind, "G") {
			continue
		}
		fmt.Fprintf(&b, " FCST %s %s %s %s %s %s", trendTime, wind, visibility, wx, tempDew, pressure)
	}
	return strings.TrimSpace(b.String())
}
