package metar

import "math"

const (
	knotsPerMeterSecond  = 1.94384
	metersPerStatuteMile = 1609.344
	inHgPerHPa           = 0.02953
)

// MSToKnots converts a wind speed in meters per second to whole knots,
// rounding to the nearest integer.
func MSToKnots(ms float64) int {
	return int(math.Round(ms * knotsPerMeterSecond))
}

// MetersToStatuteMiles converts a distance in meters to statute miles.
func MetersToStatuteMiles(m float64) float64 {
	return m / metersPerStatuteMile
}

// HPaToInHgHundredths converts a pressure in hectopascals to hundredths of
// inches of mercury, the integer encoded in the A#### altimeter token.
func HPaToInHgHundredths(hpa float64) int {
	return int(math.Round(hpa * inHgPerHPa * 100))
}

// ReduceFraction reduces num/den to lowest terms using the Euclidean GCD.
// Visibility fractions always arrive with a denominator of 4 (quarter-mile
// graduations).
func ReduceFraction(num, den int) (int, int) {
	g := gcd(num, den)
	if g == 0 {
		return num, den
	}
	return num / g, den / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
