package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestFormatWind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		dir   *int
		speed *float64
		gust  *float64
		want  string
	}{
		{"missing direction", nil, fptr(5.0), nil, "VRB00KT"},
		{"negative direction sentinel", iptr(-1), fptr(5.0), nil, "VRB00KT"},
		{"steady wind", iptr(270), fptr(5.0), nil, "27010KT"},
		{"gusting wind", iptr(270), fptr(5.0), fptr(8.0), "27010G16KT"},
		{"gust rounds to zero", iptr(90), fptr(2.0), fptr(0.2), "09004KT"},
		{"missing speed treated as calm", iptr(270), nil, nil, "27000KT"},
		{"single digit direction padded", iptr(5), fptr(1.0), nil, "00502KT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWind(tt.dir, tt.speed, tt.gust))
		})
	}
}

func TestFormatVisibility_metric(t *testing.T) {
	t.Parallel()
	tests := []struct {
		vis  *float64
		want string
	}{
		{nil, "////"},
		{fptr(10000), "9999"},
		{fptr(9960), "9999"},
		{fptr(9400), "9400"},
		{fptr(650), "0700"},
		{fptr(123), "0100"},
		{fptr(0), "0000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatVisibility(tt.vis, Metric, nil))
	}
}

func TestFormatVisibility_imperial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		vis   *float64
		codes []int
		want  string
	}{
		{"missing", nil, nil, "////"},
		{"full visibility clear", fptr(10000), nil, "10SM"},
		{"full visibility with cloud code only", fptr(10000), []int{801}, "10SM"},
		{"full visibility reduced by rain", fptr(10000), []int{501}, "6 1/4SM"},
		{"half mile", fptr(800), nil, "1/2SM"},
		{"quarter mile", fptr(400), nil, "1/4SM"},
		{"rounds to zero miles", fptr(100), nil, "0SM"},
		{"one and a half miles", fptr(2500), nil, "1 1/2SM"},
		{"exactly two miles", fptr(3218.688), nil, "2SM"},
		{"fraction rounds up to next mile", fptr(3200), nil, "2SM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVisibility(tt.vis, Imperial, tt.codes))
		})
	}
}

func TestFormatClouds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cover *float64
		want  string
	}{
		{nil, "CLR"},
		{fptr(0), "CLR"},
		{fptr(10), "FEW"},
		{fptr(25), "FEW"},
		{fptr(26), "SCT"},
		{fptr(50), "SCT"},
		{fptr(51), "BKN"},
		{fptr(87), "BKN"},
		{fptr(88), "OVC"},
		{fptr(100), "OVC"},
		{fptr(150), "CLR"},
		{fptr(-5), "CLR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClouds(tt.cover), "cover=%v", tt.cover)
	}
}

func TestFormatTempDew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		temp     *float64
		dew      *float64
		humidity *float64
		want     string
	}{
		{"direct dew point", fptr(-5.3), fptr(-10.7), nil, "M05/M11"},
		{"positive values", fptr(21.4), fptr(12.6), nil, "21/13"},
		{"dew derived from humidity", fptr(-5), nil, fptr(80), "M05/M09"},
		{"derived dew stays positive", fptr(20), nil, fptr(90), "20/18"},
		{"missing temperature", nil, fptr(10), nil, "/// ///"},
		{"missing dew and humidity", fptr(10), nil, nil, "/// ///"},
		{"negative zero rounding", fptr(-0.4), fptr(0.2), nil, "M00/00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTempDew(tt.temp, tt.dew, tt.humidity))
		})
	}
}

func TestFormatPressure(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Q1013", FormatPressure(fptr(1013.0), Metric))
	assert.Equal(t, "Q1014", FormatPressure(fptr(1013.6), Metric))
	assert.Equal(t, "Q0998", FormatPressure(fptr(998.0), Metric))
	assert.Equal(t, "A2992", FormatPressure(fptr(1013.25), Imperial))
	assert.Equal(t, "Q////", FormatPressure(nil, Metric))
	assert.Equal(t, "Q////", FormatPressure(nil, Imperial))
}

func TestFormatWeatherConditions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		codes []int
		want  string
	}{
		{"empty", nil, ""},
		{"cloud codes excluded", []int{800, 501, 201}, "RA TSRA"},
		{"light rain", []int{500}, "-RA"},
		{"order preserved", []int{741, 301}, "FG DZ"},
		{"unmapped codes dropped", []int{599, 501}, "RA"},
		{"only cloud codes", []int{801, 804}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWeatherConditions(tt.codes))
		})
	}
}

func TestPhenomenaAbbreviation(t *testing.T) {
	t.Parallel()
	abbr, ok := PhenomenaAbbreviation(511)
	assert.True(t, ok)
	assert.Equal(t, "FZRA", abbr)

	_, ok = PhenomenaAbbreviation(999)
	assert.False(t, ok)
}
