package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
environment: test
models:
  service_url: http://localhost:9000
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OpenWeather.BaseURL)
	assert.Equal(t, "metric", cfg.OpenWeather.Units)
	assert.Equal(t, 30*time.Minute, cfg.OpenWeather.CacheTTL)
	assert.Equal(t, 0.6, cfg.Fusion.ImageWeight)
	assert.Equal(t, 0.4, cfg.Fusion.TabularWeight)
	assert.Equal(t, 0.5, cfg.Fusion.Threshold)
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	_, err := Load(writeConfig(t, "models:\n  service_url: http://localhost:9000\n"))
	assert.ErrorContains(t, err, "environment is required")
}

func TestLoadRejectsMissingModelServiceURL(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\n"))
	assert.ErrorContains(t, err, "models.service_url is required")
}

func TestLoadRejectsMonitorWithoutPlots(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+"monitor:\n  enabled: true\n"))
	assert.ErrorContains(t, err, "monitor.plots")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
	t.Setenv("MODEL_SERVICE_URL", "http://models:9000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("PORT", "8080")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "ow-key", cfg.OpenWeather.APIKey)
	assert.Equal(t, "http://models:9000", cfg.Models.ServiceURL)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.True(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadWithEnvOverridesFusionAndCacheTTL(t *testing.T) {
	t.Setenv("WEATHER_CACHE_DURATION", "1800")
	t.Setenv("IMAGE_WEIGHT", "0.7")
	t.Setenv("TABNET_WEIGHT", "0.3")
	t.Setenv("PREDICTION_THRESHOLD", "0.55")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.OpenWeather.CacheTTL)
	assert.Equal(t, 0.7, cfg.Fusion.ImageWeight)
	assert.Equal(t, 0.3, cfg.Fusion.TabularWeight)
	assert.Equal(t, 0.55, cfg.Fusion.Threshold)
}

func TestLoadWithEnvAcceptsDurationString(t *testing.T) {
	t.Setenv("WEATHER_CACHE_DURATION", "45m")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.OpenWeather.CacheTTL)
}

func TestLoadWithEnvRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadWithEnv(writeConfig(t, minimalYAML))
	assert.ErrorContains(t, err, "parse PORT")
}

func TestLoadParsesPlots(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
monitor:
  enabled: true
  interval: 15m
  plots:
    - name: north-field
      lat: 10.5
      lon: 78.2
`))
	require.NoError(t, err)

	require.Len(t, cfg.Monitor.Plots, 1)
	assert.Equal(t, "north-field", cfg.Monitor.Plots[0].Name)
	assert.Equal(t, 15*time.Minute, cfg.Monitor.Interval)
}
