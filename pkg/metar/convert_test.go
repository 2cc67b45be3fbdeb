package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMSToKnots(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ms   float64
		want int
	}{
		{0, 0},
		{5.0, 10},
		{5.1, 10},
		{8.0, 16},
		{12.86, 25},
		{0.2, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MSToKnots(tt.ms), "m/s=%v", tt.ms)
	}
}

func TestMetersToStatuteMiles(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1.0, MetersToStatuteMiles(1609.344), 1e-12)
	assert.InDelta(t, 0.497097, MetersToStatuteMiles(800), 1e-6)
	assert.InDelta(t, 6.213712, MetersToStatuteMiles(10000), 1e-6)
}

func TestHPaToInHgHundredths(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hpa  float64
		want int
	}{
		{1013.25, 2992},
		{1013.0, 2991},
		{980.0, 2894},
		{1030.0, 3042},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HPaToInHgHundredths(tt.hpa), "hPa=%v", tt.hpa)
	}
}

func TestReduceFraction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		num, den         int
		wantNum, wantDen int
	}{
		{2, 4, 1, 2},
		{4, 4, 1, 1},
		{3, 4, 3, 4},
		{1, 4, 1, 4},
		{0, 4, 0, 1},
	}
	for _, tt := range tests {
		num, den := ReduceFraction(tt.num, tt.den)
		assert.Equal(t, tt.wantNum, num, "%d/%d numerator", tt.num, tt.den)
		assert.Equal(t, tt.wantDen, den, "%d/%d denominator", tt.num, tt.den)
	}
}
