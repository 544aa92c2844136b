package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"CaneGuard/internal/domain/models"
	drepo "CaneGuard/internal/domain/repository"
	"CaneGuard/internal/service/ratelimit"
	"CaneGuard/pkg/cache"
	"CaneGuard/pkg/config"
	xhttp "CaneGuard/pkg/http"
	"CaneGuard/pkg/logger"
)

const limiterKey = "openweather"

// Client fetches weather from the OpenWeatherMap REST API with a cache-aside
// layer in front. Responses are cached as JSON strings so both the memory and
// Redis layers can hold them unchanged.
type Client struct {
	apiKey    string
	baseURL   string
	units     string
	cacheTTL  time.Duration
	perSecond float64
	burst     int

	http    *xhttp.Client
	cache   cache.Service
	limiter *ratelimit.Limiter
	log     *logger.Logger
	metrics drepo.Metrics
}

func New(cfg *config.Config, c cache.Service, limiter *ratelimit.Limiter, log *logger.Logger, rec drepo.Metrics) *Client {
	return &Client{
		apiKey:    cfg.OpenWeather.APIKey,
		baseURL:   cfg.OpenWeather.BaseURL,
		units:     cfg.OpenWeather.Units,
		cacheTTL:  cfg.OpenWeather.CacheTTL,
		perSecond: cfg.OpenWeather.RateLimit.PerSecond,
		burst:     cfg.OpenWeather.RateLimit.Burst,
		http:      xhttp.NewClient(xhttp.WithTimeout(cfg.OpenWeather.Timeout)),
		cache:     c,
		limiter:   limiter,
		log:       log,
		metrics:   rec,
	}
}

// Available reports whether an API key is configured. Without one every
// weather-backed endpoint degrades to 503.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Current returns the current weather at the coordinate.
func (c *Client) Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	var snapshot models.WeatherSnapshot
	key := cache.GenerateKeyWithParams("weather:current", lat, lon)
	if c.fromCache(ctx, key, &snapshot) {
		c.metrics.RecordWeatherFetch("weather", "hit")
		return snapshot, nil
	}

	var raw owCurrentResponse
	if err := c.fetch(ctx, "/weather", map[string][]string{
		"lat": {fmt.Sprintf("%v", lat)},
		"lon": {fmt.Sprintf("%v", lon)},
	}, &raw); err != nil {
		c.metrics.RecordWeatherFetch("weather", "error")
		return snapshot, err
	}

	snapshot = raw.toSnapshot(lat, lon)
	c.toCache(ctx, key, snapshot)
	c.metrics.RecordWeatherFetch("weather", "miss")
	c.log.Info("fetched current weather",
		logger.Float64("lat", lat), logger.Float64("lon", lon),
		logger.String("condition", string(snapshot.Current.Condition)))
	return snapshot, nil
}

// Forecast returns up to days of daily-aggregated forecast for the coordinate.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int) (models.ForecastBundle, error) {
	var bundle models.ForecastBundle
	key := cache.GenerateKeyWithParams("weather:forecast", days, lat, lon)
	if c.fromCache(ctx, key, &bundle) {
		c.metrics.RecordWeatherFetch("forecast", "hit")
		return bundle, nil
	}

	var raw owForecastResponse
	if err := c.fetch(ctx, "/forecast", map[string][]string{
		"lat": {fmt.Sprintf("%v", lat)},
		"lon": {fmt.Sprintf("%v", lon)},
		// 8 samples per day at 3-hour intervals.
		"cnt": {fmt.Sprintf("%d", days*8)},
	}, &raw); err != nil {
		c.metrics.RecordWeatherFetch("forecast", "error")
		return bundle, err
	}

	bundle = raw.toBundle(lat, lon, days)
	c.toCache(ctx, key, bundle)
	c.metrics.RecordWeatherFetch("forecast", "miss")
	c.log.Info("fetched weather forecast",
		logger.Float64("lat", lat), logger.Float64("lon", lon), logger.Int("days", len(bundle.Days)))
	return bundle, nil
}

func (c *Client) fetch(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	if !c.Available() {
		return xhttp.ServiceUnavailableError("Weather service unavailable. API key not configured.")
	}
	if !c.limiter.Allow(limiterKey, float64(c.burst), c.perSecond) {
		return xhttp.TooManyRequestsError("Weather API rate limit reached, try again shortly")
	}

	params["appid"] = []string{c.apiKey}
	params["units"] = []string{c.units}

	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: params,
	}, dest)
	if err != nil {
		c.log.Error("weather fetch failed", logger.String("path", path), logger.Error(err))
		return xhttp.ServiceUnavailableError("Weather service temporarily unavailable").WithError(err)
	}
	return nil
}

func (c *Client) fromCache(ctx context.Context, key string, dest interface{}) bool {
	var stored string
	if err := c.cache.Get(ctx, key, &stored); err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(stored), dest); err != nil {
		c.log.Warn("dropping corrupt weather cache entry", logger.String("key", key), logger.Error(err))
		_ = c.cache.Delete(ctx, key)
		return false
	}
	return true
}

func (c *Client) toCache(ctx context.Context, key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(b), c.cacheTTL); err != nil {
		c.log.Warn("weather cache write failed", logger.String("key", key), logger.Error(err))
	}
}

// --- raw API payloads ---

type owWeatherTag struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owRain struct {
	OneHour   float64 `json:"1h"`
	ThreeHour float64 `json:"3h"`
}

type owCurrentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Visibility float64 `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Weather []owWeatherTag `json:"weather"`
	Rain    owRain         `json:"rain"`
}

func (r owCurrentResponse) toSnapshot(lat, lon float64) models.WeatherSnapshot {
	var tag owWeatherTag
	if len(r.Weather) > 0 {
		tag = r.Weather[0]
	}
	name := r.Name
	if name == "" {
		name = "Unknown"
	}
	return models.WeatherSnapshot{
		Location: models.Location{
			Name:        name,
			Country:     r.Sys.Country,
			Coordinates: models.Coordinates{Lat: lat, Lon: lon},
		},
		Current: models.WeatherReading{
			Temperature:   r.Main.Temp,
			FeelsLike:     r.Main.FeelsLike,
			Humidity:      r.Main.Humidity,
			Pressure:      r.Main.Pressure,
			Visibility:    r.Visibility / 1000, // meters to km
			WindSpeed:     r.Wind.Speed,
			WindDirection: r.Wind.Deg,
			Condition:     models.WeatherCondition(tag.Main),
			Description:   tag.Description,
			Icon:          tag.Icon,
			Clouds:        r.Clouds.All,
			Rainfall1h:    r.Rain.OneHour,
			Rainfall3h:    r.Rain.ThreeHour,
			Timestamp:     time.Now(),
		},
	}
}

type owForecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []owWeatherTag `json:"weather"`
	Rain    owRain         `json:"rain"`
}

type owForecastResponse struct {
	List []owForecastItem `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

func (r owForecastResponse) toBundle(lat, lon float64, days int) models.ForecastBundle {
	type dayAcc struct {
		temps      []float64
		humidity   []float64
		rainfall   []float64
		windSpeed  []float64
		pressure   []float64
		conditions []models.WeatherCondition
	}

	byDate := make(map[string]*dayAcc)
	for _, item := range r.List {
		date := time.Unix(item.Dt, 0).Format("2006-01-02")
		acc, ok := byDate[date]
		if !ok {
			acc = &dayAcc{}
			byDate[date] = acc
		}
		acc.temps = append(acc.temps, item.Main.Temp)
		acc.humidity = append(acc.humidity, item.Main.Humidity)
		acc.rainfall = append(acc.rainfall, item.Rain.ThreeHour)
		acc.windSpeed = append(acc.windSpeed, item.Wind.Speed)
		acc.pressure = append(acc.pressure, item.Main.Pressure)
		var cond models.WeatherCondition
		if len(item.Weather) > 0 {
			cond = models.WeatherCondition(item.Weather[0].Main)
		}
		acc.conditions = append(acc.conditions, cond)
	}

	out := make([]models.ForecastDay, 0, len(byDate))
	for date, acc := range byDate {
		out = append(out, models.ForecastDay{
			Date:              date,
			TemperatureMin:    minOf(acc.temps),
			TemperatureMax:    maxOf(acc.temps),
			TemperatureAvg:    avgOf(acc.temps),
			HumidityAvg:       avgOf(acc.humidity),
			HumidityMax:       maxOf(acc.humidity),
			TotalRainfall:     sumOf(acc.rainfall),
			WindSpeedAvg:      avgOf(acc.windSpeed),
			WindSpeedMax:      maxOf(acc.windSpeed),
			PressureAvg:       avgOf(acc.pressure),
			DominantCondition: dominant(acc.conditions),
			MorningRH:         acc.humidity[0],
			EveningRH:         acc.humidity[len(acc.humidity)-1],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > days {
		out = out[:days]
	}

	return models.ForecastBundle{
		Location: models.Location{
			Name:        r.City.Name,
			Country:     r.City.Country,
			Coordinates: models.Coordinates{Lat: lat, Lon: lon},
		},
		Days: out,
	}
}

func dominant(conds []models.WeatherCondition) models.WeatherCondition {
	counts := make(map[models.WeatherCondition]int, len(conds))
	var best models.WeatherCondition
	bestCount := 0
	for _, c := range conds {
		counts[c]++
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func sumOf(vals []float64) float64 {
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s
}

func avgOf(vals []float64) float64 {
	return sumOf(vals) / float64(len(vals))
}

var _ drepo.WeatherSource = (*Client)(nil)
