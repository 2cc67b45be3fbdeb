package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStationCode(t *testing.T) {
	t.Parallel()
	code, err := normalizeStationCode("  ksea \n")
	require.NoError(t, err)
	assert.Equal(t, "KSEA", code)

	_, err = normalizeStationCode("SEA")
	assert.Error(t, err)

	_, err = normalizeStationCode("")
	assert.Error(t, err)
}

func TestParseCoordinates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		lat, lon float64
		wantErr  bool
	}{
		{input: "60.32, 24.96", lat: 60.32, lon: 24.96},
		{input: "60.32 24.96", lat: 60.32, lon: 24.96},
		{input: "-33.94,151.18", lat: -33.94, lon: 151.18},
		{input: "60.32", wantErr: true},
		{input: "abc, def", wantErr: true},
		{input: "95, 0", wantErr: true},
		{input: "0, 200", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			lat, lon, err := parseCoordinates(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, lat)
			assert.Equal(t, tt.lon, lon)
		})
	}
}

func TestStationLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "HELS", stationLabel("Helsinki"))
	assert.Equal(t, "NEWY", stationLabel("New York"))
	assert.Equal(t, "RIOZ", stationLabel("rio"))
	assert.Equal(t, "ZZZZ", stationLabel(""))
}
