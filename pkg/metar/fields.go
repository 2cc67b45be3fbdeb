package metar

import (
	"fmt"
	"math"
	"strings"
)

// Placeholder tokens emitted when an observation field is missing.
const (
	missingVisibility = "////"
	missingPressure   = "Q////"
	missingTempDew    = "/// ///"
	variableCalmWind  = "VRB00KT"
)

// Raw visibility equal to this value (the cap reported by the provider) means
// "10 miles or more" in imperial mode, unless reducing conditions are present.
const (
	fullVisibilityMeters = 10000.0
	visibilityEpsilon    = 1e-9
)

// FormatWind renders the wind group. A missing or negative direction yields
// VRB00KT; a missing speed is treated as calm. The gust segment sits directly
// before KT and only appears when the gust rounds to at least one knot.
func FormatWind(dirDeg *int, speedMS, gustMS *float64) string {
	dir := -1
	if dirDeg != nil {
		dir = *dirDeg
	}
	if dir < 0 {
		return variableCalmWind
	}

	var spd, gst float64
	if speedMS != nil {
		spd = *speedMS
	}
	if gustMS != nil {
		gst = *gustMS
	}

	speedKt := MSToKnots(spd)
	gustKt := MSToKnots(gst)
	if gustKt > 0 {
		return fmt.Sprintf("%03d%02dG%02dKT", dir, speedKt, gustKt)
	}
	return fmt.Sprintf("%03d%02dKT", dir, speedKt)
}

// FormatVisibility renders the visibility group. Metric reports round to the
// nearest 100 m with 10 km encoded as 9999. Imperial reports convert to
// statute miles with quarter-mile fractions; the provider's 10 km cap becomes
// 10SM unless a precipitation or obscuration code (200-799) is present.
func FormatVisibility(visM *float64, units Units, weatherCodes []int) string {
	if visM == nil {
		return missingVisibility
	}
	vis := *visM

	if units == Imperial {
		miles := MetersToStatuteMiles(vis)

		if math.Abs(vis-fullVisibilityMeters) < visibilityEpsilon && !hasReducingConditions(weatherCodes) {
			return "10SM"
		}

		if miles < 1 {
			num, den := ReduceFraction(int(math.Round(miles*4)), 4)
			if den == 1 {
				return fmt.Sprintf("%dSM", num)
			}
			return fmt.Sprintf("%d/%dSM", num, den)
		}

		whole := int(math.Floor(miles))
		quarters := int(math.Round((miles - float64(whole)) * 4))
		if quarters == 0 {
			return fmt.Sprintf("%dSM", whole)
		}
		num, den := ReduceFraction(quarters, 4)
		if den == 1 {
			return fmt.Sprintf("%dSM", whole+num)
		}
		return fmt.Sprintf("%d %d/%dSM", whole, num, den)
	}

	rounded := int(math.Round(vis/100)) * 100
	if rounded == 10000 {
		return "9999"
	}
	return fmt.Sprintf("%04d", rounded)
}

// hasReducingConditions reports whether any code falls in the precipitation
// or obscuration families (200-799).
func hasReducingConditions(weatherCodes []int) bool {
	for _, code := range weatherCodes {
		if code >= 200 && code < 800 {
			return true
		}
	}
	return false
}

// FormatClouds renders the cloud-coverage group from a coverage percentage.
// Absent or out-of-range values fall back to CLR.
func FormatClouds(coverPct *float64) string {
	if coverPct == nil {
		return "CLR"
	}
	switch c := *coverPct; {
	case c < 0 || c > 100:
		return "CLR"
	case c == 0:
		return "CLR"
	case c <= 25:
		return "FEW"
	case c <= 50:
		return "SCT"
	case c <= 87:
		return "BKN"
	default:
		return "OVC"
	}
}

// FormatTempDew renders the temperature/dew-point group. When the provider
// supplies no dew point it is approximated as temp - (100-humidity)/5, a
// deliberate simplification of the Magnus formula kept for parity with the
// reports this feeds. Either side missing collapses the whole group to the
// placeholder.
func FormatTempDew(tempC, dewC, humidityPct *float64) string {
	if tempC == nil {
		return missingTempDew
	}

	dew := dewC
	if dew == nil && humidityPct != nil {
		d := *tempC - (100-*humidityPct)/5
		dew = &d
	}
	if dew == nil {
		return missingTempDew
	}

	return signedTwoDigits(*tempC) + "/" + signedTwoDigits(*dew)
}

// signedTwoDigits rounds to the nearest whole degree and applies the METAR M
// prefix for sub-zero values.
func signedTwoDigits(v float64) string {
	if v < 0 {
		return fmt.Sprintf("M%02d", int(math.Round(math.Abs(v))))
	}
	return fmt.Sprintf("%02d", int(math.Round(v)))
}

// FormatPressure renders the altimeter group: A#### in hundredths of inHg for
// imperial, Q#### in whole hectopascals for metric.
func FormatPressure(hpa *float64, units Units) string {
	if hpa == nil {
		return missingPressure
	}
	if units == Imperial {
		return fmt.Sprintf("A%04d", HPaToInHgHundredths(*hpa))
	}
	return fmt.Sprintf("Q%04d", int(math.Round(*hpa)))
}

// FormatWeatherConditions renders the phenomena line: cloud-only codes (800
// and above) are excluded, unmapped codes are dropped, and the remaining
// abbreviations keep the provider's order. An empty result means the line is
// omitted from the report entirely.
func FormatWeatherConditions(weatherCodes []int) string {
	var abbrs []string
	for _, code := range weatherCodes {
		if code >= 800 {
			continue
		}
		if abbr, ok := PhenomenaAbbreviation(code); ok {
			abbrs = append(abbrs, abbr)
		}
	}
	return strings.Join(abbrs, " ")
}
