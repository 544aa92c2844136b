package openweather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CaneGuard/internal/domain/models"
	"CaneGuard/internal/service/ratelimit"
	"CaneGuard/pkg/cache"
	"CaneGuard/pkg/config"
	"CaneGuard/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordAssessment(string, string)         {}
func (noopMetrics) RecordPrediction(string, string)         {}
func (noopMetrics) RecordRiskScore(string, string, float64) {}
func (noopMetrics) RecordWeatherFetch(string, string)       {}
func (noopMetrics) RecordError(string)                      {}
func (noopMetrics) RecordLatency(string, float64)           {}

const currentPayload = `{
	"name": "Karur",
	"sys": {"country": "IN"},
	"main": {"temp": 27.4, "feels_like": 29.0, "humidity": 82, "pressure": 1008},
	"visibility": 8000,
	"wind": {"speed": 1.4, "deg": 120},
	"clouds": {"all": 75},
	"weather": [{"main": "Rain", "description": "moderate rain", "icon": "10d"}],
	"rain": {"3h": 6.2}
}`

// forecastPayload builds a two-day forecast; timestamps are generated in
// local time since daily grouping follows the host timezone.
func forecastPayload() string {
	day1 := time.Date(2026, 3, 2, 6, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 3, 6, 0, 0, 0, time.Local)
	return fmt.Sprintf(`{
	"city": {"name": "Karur", "country": "IN"},
	"list": [
		{"dt": %d, "main": {"temp": 24, "humidity": 70, "pressure": 1009}, "wind": {"speed": 2}, "weather": [{"main": "Clouds"}], "rain": {}},
		{"dt": %d, "main": {"temp": 30, "humidity": 60, "pressure": 1007}, "wind": {"speed": 4}, "weather": [{"main": "Clear"}], "rain": {}},
		{"dt": %d, "main": {"temp": 33, "humidity": 55, "pressure": 1006}, "wind": {"speed": 3}, "weather": [{"main": "Clear"}], "rain": {"3h": 1.2}},
		{"dt": %d, "main": {"temp": 26, "humidity": 75, "pressure": 1010}, "wind": {"speed": 5}, "weather": [{"main": "Rain"}], "rain": {"3h": 4.0}}
	]
}`, day1.Unix(), day1.Add(3*time.Hour).Unix(), day1.Add(6*time.Hour).Unix(), day2.Unix())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.OpenWeather.APIKey = "test-key"
	cfg.OpenWeather.BaseURL = srv.URL
	cfg.OpenWeather.Units = "metric"
	cfg.OpenWeather.Timeout = 2 * time.Second
	cfg.OpenWeather.CacheTTL = time.Minute
	cfg.OpenWeather.RateLimit.PerSecond = 100
	cfg.OpenWeather.RateLimit.Burst = 100

	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	return New(cfg, mc, ratelimit.New(), log, noopMetrics{}), srv
}

func TestCurrentMapsPayload(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
			"lat":   r.URL.Query().Get("lat"),
		}
		assert.Equal(t, "/weather", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentPayload))
	})

	snapshot, err := client.Current(context.Background(), 10.96, 78.08)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotQuery["appid"])
	assert.Equal(t, "metric", gotQuery["units"])
	assert.Equal(t, "10.96", gotQuery["lat"])

	assert.Equal(t, "Karur", snapshot.Location.Name)
	assert.Equal(t, "IN", snapshot.Location.Country)
	assert.Equal(t, 27.4, snapshot.Current.Temperature)
	assert.Equal(t, 82.0, snapshot.Current.Humidity)
	assert.Equal(t, 8.0, snapshot.Current.Visibility) // km
	assert.Equal(t, models.CondRain, snapshot.Current.Condition)
	assert.Equal(t, 6.2, snapshot.Current.Rainfall3h)
	assert.Equal(t, 0.0, snapshot.Current.Rainfall1h)
}

func TestCurrentServesSecondCallFromCache(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(currentPayload))
	})
	ctx := context.Background()

	_, err := client.Current(ctx, 10.96, 78.08)
	require.NoError(t, err)
	_, err = client.Current(ctx, 10.96, 78.08)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestForecastAggregatesDaily(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "40", r.URL.Query().Get("cnt"))
		_, _ = w.Write([]byte(forecastPayload()))
	})

	bundle, err := client.Forecast(context.Background(), 10.96, 78.08, 5)
	require.NoError(t, err)

	require.Len(t, bundle.Days, 2)
	day := bundle.Days[0]
	assert.Equal(t, 24.0, day.TemperatureMin)
	assert.Equal(t, 33.0, day.TemperatureMax)
	assert.InDelta(t, 29.0, day.TemperatureAvg, 1e-9)
	assert.InDelta(t, 61.666666, day.HumidityAvg, 1e-3)
	assert.Equal(t, 75.0, day.HumidityMax)
	assert.Equal(t, 1.2, day.TotalRainfall)
	assert.Equal(t, 70.0, day.MorningRH)
	assert.Equal(t, 55.0, day.EveningRH)
	assert.Equal(t, models.CondClear, day.DominantCondition)

	assert.Equal(t, 4.0, bundle.Days[1].TotalRainfall)
	assert.Less(t, bundle.Days[0].Date, bundle.Days[1].Date)
}

func TestUnavailableWithoutAPIKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	client.apiKey = ""

	assert.False(t, client.Available())
	_, err := client.Current(context.Background(), 1, 2)
	assert.ErrorContains(t, err, "API key not configured")
}

func TestUpstreamFailureReturnsServiceUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.Current(context.Background(), 1, 2)
	assert.ErrorContains(t, err, "temporarily unavailable")
}
