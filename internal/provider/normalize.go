package provider

import (
	"encoding/json"
	"math"

	"github.com/wxforge/metgen/pkg/metar"
)

// nullableFloat decodes a JSON number. Anything else (null, a string, a
// malformed value) collapses to absent rather than failing the whole payload,
// per the normalization contract.
type nullableFloat struct {
	value *float64
}

func (n *nullableFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		n.value = nil
		return nil
	}
	n.value = &v
	return nil
}

func (n nullableFloat) ptr() *float64 { return n.value }

// degrees converts a wind direction to the whole-degree form the encoder
// expects, keeping absence intact.
func (n nullableFloat) degrees() *int {
	if n.value == nil {
		return nil
	}
	d := int(math.Round(*n.value))
	return &d
}

type weatherCondition struct {
	ID int `json:"id"`
}

func conditionCodes(conditions []weatherCondition) []int {
	if len(conditions) == 0 {
		return nil
	}
	codes := make([]int, 0, len(conditions))
	for _, c := range conditions {
		codes = append(codes, c.ID)
	}
	return codes
}

// currentPayload mirrors the data/2.5/weather response shape.
type currentPayload struct {
	Main struct {
		Temp     nullableFloat `json:"temp"`
		Pressure nullableFloat `json:"pressure"`
		Humidity nullableFloat `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed nullableFloat `json:"speed"`
		Deg   nullableFloat `json:"deg"`
		Gust  nullableFloat `json:"gust"`
	} `json:"wind"`
	Visibility nullableFloat `json:"visibility"`
	Clouds     struct {
		All nullableFloat `json:"all"`
	} `json:"clouds"`
	Weather []weatherCondition `json:"weather"`
}

func (p currentPayload) observation() metar.Observation {
	return metar.Observation{
		TemperatureC:  p.Main.Temp.ptr(),
		HumidityPct:   p.Main.Humidity.ptr(),
		PressureHPa:   p.Main.Pressure.ptr(),
		WindSpeedMS:   p.Wind.Speed.ptr(),
		WindDirDeg:    p.Wind.Deg.degrees(),
		WindGustMS:    p.Wind.Gust.ptr(),
		VisibilityM:   p.Visibility.ptr(),
		CloudCoverPct: p.Clouds.All.ptr(),
		WeatherCodes:  conditionCodes(p.Weather),
	}
}

// oneCallPayload mirrors the data/3.0/onecall response shape.
type oneCallPayload struct {
	Current struct {
		Temp       nullableFloat      `json:"temp"`
		DewPoint   nullableFloat      `json:"dew_point"`
		Pressure   nullableFloat      `json:"pressure"`
		Humidity   nullableFloat      `json:"humidity"`
		WindSpeed  nullableFloat      `json:"wind_speed"`
		WindDeg    nullableFloat      `json:"wind_deg"`
		WindGust   nullableFloat      `json:"wind_gust"`
		Visibility nullableFloat      `json:"visibility"`
		Clouds     nullableFloat      `json:"clouds"`
		Weather    []weatherCondition `json:"weather"`
	} `json:"current"`
	Hourly []struct {
		Dt         int64              `json:"dt"`
		Temp       nullableFloat      `json:"temp"`
		DewPoint   nullableFloat      `json:"dew_point"`
		Pressure   nullableFloat      `json:"pressure"`
		WindSpeed  nullableFloat      `json:"wind_speed"`
		WindDeg    nullableFloat      `json:"wind_deg"`
		WindGust   nullableFloat      `json:"wind_gust"`
		Visibility nullableFloat      `json:"visibility"`
		Weather    []weatherCondition `json:"weather"`
	} `json:"hourly"`
	Alerts []struct {
		Description string `json:"description"`
	} `json:"alerts"`
}

// forecastHours is how many hourly entries feed the FCST trend section.
const forecastHours = 2

func (p oneCallPayload) observation() metar.Observation {
	obs := metar.Observation{
		TemperatureC:  p.Current.Temp.ptr(),
		DewPointC:     p.Current.DewPoint.ptr(),
		HumidityPct:   p.Current.Humidity.ptr(),
		PressureHPa:   p.Current.Pressure.ptr(),
		WindSpeedMS:   p.Current.WindSpeed.ptr(),
		WindDirDeg:    p.Current.WindDeg.degrees(),
		WindGustMS:    p.Current.WindGust.ptr(),
		VisibilityM:   p.Current.Visibility.ptr(),
		CloudCoverPct: p.Current.Clouds.ptr(),
		WeatherCodes:  conditionCodes(p.Current.Weather),
	}

	for i, hour := range p.Hourly {
		if i >= forecastHours {
			break
		}
		obs.Forecast = append(obs.Forecast, metar.ForecastEntry{
			TimestampUnix: hour.Dt,
			TemperatureC:  hour.Temp.ptr(),
			DewPointC:     hour.DewPoint.ptr(),
			PressureHPa:   hour.Pressure.ptr(),
			WindSpeedMS:   hour.WindSpeed.ptr(),
			WindDirDeg:    hour.WindDeg.degrees(),
			WindGustMS:    hour.WindGust.ptr(),
			VisibilityM:   hour.Visibility.ptr(),
			WeatherCodes:  conditionCodes(hour.Weather),
		})
	}
	return obs
}

func (p oneCallPayload) alertDescriptions() []string {
	if len(p.Alerts) == 0 {
		return nil
	}
	alerts := make([]string, 0, len(p.Alerts))
	for _, a := range p.Alerts {
		alerts = append(alerts, a.Description)
	}
	return alerts
}
