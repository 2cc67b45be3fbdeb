package airport

import (
	_ "embed"
	"strconv"
	"strings"
)

// Offline fallback for ICAO resolution when the Aviation Weather Center API
// is unreachable. Comment lines start with // and the first data line is the
// header.
//
//go:embed airports.csv
var bundledAirports string

func lookupBundled(icao string) (float64, float64, bool) {
	foundHeader := false
	for _, line := range strings.Split(bundledAirports, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !foundHeader {
			foundHeader = true
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 3 || !strings.EqualFold(fields[0], icao) {
			continue
		}

		lat, latErr := strconv.ParseFloat(fields[1], 64)
		lon, lonErr := strconv.ParseFloat(fields[2], 64)
		if latErr == nil && lonErr == nil {
			return lat, lon, true
		}
	}
	return 0, 0, false
}
