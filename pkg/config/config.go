package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Plot struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	OpenWeather struct {
		APIKey   string        `yaml:"api_key"`
		BaseURL  string        `yaml:"base_url"`
		Units    string        `yaml:"units"`
		Timeout  time.Duration `yaml:"timeout"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
		// Free tier allows 60 calls/minute; keep below it.
		RateLimit struct {
			PerSecond float64 `yaml:"per_second"`
			Burst     int     `yaml:"burst"`
		} `yaml:"rate_limit"`
	} `yaml:"openweather"`
	Models struct {
		ServiceURL string        `yaml:"service_url"`
		Timeout    time.Duration `yaml:"timeout"`
		Vision     struct {
			Confidence float64 `yaml:"confidence"`
			IoU        float64 `yaml:"iou"`
			ImageSize  int     `yaml:"image_size"`
		} `yaml:"vision"`
	} `yaml:"models"`
	Fusion struct {
		ImageWeight   float64 `yaml:"image_weight"`
		TabularWeight float64 `yaml:"tabular_weight"`
		Threshold     float64 `yaml:"threshold"`
	} `yaml:"fusion"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Monitor struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
		Plots    []Plot        `yaml:"plots"`
	} `yaml:"monitor"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.OpenWeather.APIKey = v
	}
	if v := os.Getenv("WEATHER_CACHE_DURATION"); v != "" {
		ttl, err := parseDurationOrSeconds(v)
		if err != nil {
			return nil, fmt.Errorf("parse WEATHER_CACHE_DURATION: %w", err)
		}
		c.OpenWeather.CacheTTL = ttl
	}
	if v := os.Getenv("MODEL_SERVICE_URL"); v != "" {
		c.Models.ServiceURL = v
	}
	if v := os.Getenv("IMAGE_WEIGHT"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse IMAGE_WEIGHT: %w", err)
		}
		c.Fusion.ImageWeight = w
	}
	if v := os.Getenv("TABNET_WEIGHT"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TABNET_WEIGHT: %w", err)
		}
		c.Fusion.TabularWeight = w
	}
	if v := os.Getenv("PREDICTION_THRESHOLD"); v != "" {
		th, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse PREDICTION_THRESHOLD: %w", err)
		}
		c.Fusion.Threshold = th
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT: %w", err)
		}
		c.Server.Port = port
	}

	return c, nil
}

// parseDurationOrSeconds accepts either a Go duration string ("30m") or a bare
// number of seconds ("1800"), which is how deployments configured the cache
// historically.
func parseDurationOrSeconds(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.OpenWeather.BaseURL == "" {
		c.OpenWeather.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if c.OpenWeather.Units == "" {
		c.OpenWeather.Units = "metric"
	}
	if c.OpenWeather.Timeout == 0 {
		c.OpenWeather.Timeout = 10 * time.Second
	}
	if c.OpenWeather.CacheTTL == 0 {
		c.OpenWeather.CacheTTL = 30 * time.Minute
	}
	if c.OpenWeather.RateLimit.PerSecond == 0 {
		c.OpenWeather.RateLimit.PerSecond = 0.8
	}
	if c.OpenWeather.RateLimit.Burst == 0 {
		c.OpenWeather.RateLimit.Burst = 5
	}
	if c.Models.Timeout == 0 {
		c.Models.Timeout = 30 * time.Second
	}
	if c.Fusion.ImageWeight == 0 && c.Fusion.TabularWeight == 0 {
		c.Fusion.ImageWeight = 0.6
		c.Fusion.TabularWeight = 0.4
	}
	if c.Fusion.Threshold == 0 {
		c.Fusion.Threshold = 0.5
	}
	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = 30 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Models.ServiceURL == "" {
		return fmt.Errorf("models.service_url is required")
	}
	if c.Fusion.ImageWeight < 0 || c.Fusion.TabularWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative")
	}
	if c.Monitor.Enabled && len(c.Monitor.Plots) == 0 {
		return fmt.Errorf("monitor.plots cannot be empty when the monitor is enabled")
	}
	return nil
}
