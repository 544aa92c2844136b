package models

import "time"

// WeatherCondition is the provider's coarse condition tag ("main" in the
// OpenWeather payload). Unknown values simply match no condition rule.
type WeatherCondition string

const (
	CondClear        WeatherCondition = "Clear"
	CondSunny        WeatherCondition = "Sunny"
	CondRain         WeatherCondition = "Rain"
	CondThunderstorm WeatherCondition = "Thunderstorm"
	CondDrizzle      WeatherCondition = "Drizzle"
	CondMist         WeatherCondition = "Mist"
	CondClouds       WeatherCondition = "Clouds"
)

// OneOf reports whether the condition equals any of the given tags.
func (c WeatherCondition) OneOf(set ...WeatherCondition) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Location struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// WeatherReading is a single observed weather state at a location.
// All numeric fields are required inputs for the risk engines; the upstream
// client always fills them, the engines do not re-validate.
type WeatherReading struct {
	Temperature   float64          `json:"temperature"` // °C
	FeelsLike     float64          `json:"feels_like"`
	Humidity      float64          `json:"humidity"` // %
	Pressure      float64          `json:"pressure"`
	Visibility    float64          `json:"visibility"` // km
	WindSpeed     float64          `json:"wind_speed"` // m/s
	WindDirection float64          `json:"wind_direction"`
	Condition     WeatherCondition `json:"weather_condition"`
	Description   string           `json:"weather_description"`
	Icon          string           `json:"weather_icon"`
	Clouds        int              `json:"clouds"`
	Rainfall1h    float64          `json:"rainfall_1h"` // mm
	Rainfall3h    float64          `json:"rainfall_3h"` // mm
	Timestamp     time.Time        `json:"timestamp"`
}

// WeatherSnapshot is a current reading together with where it was taken.
type WeatherSnapshot struct {
	Location Location       `json:"location"`
	Current  WeatherReading `json:"current"`
}

// ForecastDay aggregates one calendar day of 3-hourly forecast samples.
type ForecastDay struct {
	Date              string           `json:"date"` // YYYY-MM-DD
	TemperatureMin    float64          `json:"temperature_min"`
	TemperatureMax    float64          `json:"temperature_max"`
	TemperatureAvg    float64          `json:"temperature_avg"`
	HumidityAvg       float64          `json:"humidity_avg"`
	HumidityMax       float64          `json:"humidity_max"`
	TotalRainfall     float64          `json:"total_rainfall"`
	WindSpeedAvg      float64          `json:"wind_speed_avg"`
	WindSpeedMax      float64          `json:"wind_speed_max"`
	PressureAvg       float64          `json:"pressure_avg"`
	DominantCondition WeatherCondition `json:"dominant_weather"`
	MorningRH         float64          `json:"morning_rh"` // first sample of the day
	EveningRH         float64          `json:"evening_rh"` // last sample of the day
}

// ForecastBundle is an ordered (date ascending) multi-day forecast.
type ForecastBundle struct {
	Location Location      `json:"location"`
	Days     []ForecastDay `json:"forecast"`
}
