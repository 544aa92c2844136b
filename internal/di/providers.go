package di

import (
	"fmt"
	"net"
	"strconv"

	drepo "CaneGuard/internal/domain/repository"
	domsvc "CaneGuard/internal/domain/service"
	"CaneGuard/internal/handler/api"
	"CaneGuard/internal/service/openweather"
	"CaneGuard/internal/service/ratelimit"
	"CaneGuard/internal/services/detect"
	"CaneGuard/internal/services/fusion"
	"CaneGuard/internal/usecase"
	"CaneGuard/pkg/cache"
	"CaneGuard/pkg/config"
	xhttp "CaneGuard/pkg/http"
	"CaneGuard/pkg/logger"
	"CaneGuard/pkg/metrics"
	"CaneGuard/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
		if cfg.Environment == "production" {
			format = "json"
		}
	}
	l, err := logger.New(&logger.Config{Level: cfg.Logging.Level, Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideCache creates the weather cache. With Redis configured the memory
// layer fronts it so repeat lookups skip the network hop.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	host, port, err := splitAddr(cfg.Cache.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

func splitAddr(addr string) (string, int, error) {
	if addr == "" {
		return "localhost", 6379, nil
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideRateLimiter creates the per-key token bucket limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideWeatherSource creates the OpenWeather client.
func ProvideWeatherSource(
	cfg *config.Config,
	c cache.Service,
	limiter *ratelimit.Limiter,
	log *logger.Logger,
	rec drepo.Metrics,
) drepo.WeatherSource {
	return openweather.New(cfg, c, limiter, log, rec)
}

// ProvideImageDetector creates the vision model client.
func ProvideImageDetector(cfg *config.Config) domsvc.ImageDetector {
	return detect.NewHTTPVisionDetector(cfg)
}

// ProvideTabularScorer creates the questionnaire model client.
func ProvideTabularScorer(cfg *config.Config) domsvc.TabularScorer {
	return detect.NewHTTPTabularScorer(cfg)
}

// ProvideFusionConfig builds fusion weights from configuration.
func ProvideFusionConfig(cfg *config.Config) fusion.Config {
	return fusion.Config{
		ImageWeight:   cfg.Fusion.ImageWeight,
		TabularWeight: cfg.Fusion.TabularWeight,
		Threshold:     cfg.Fusion.Threshold,
	}
}

// ProvideAssessor creates the risk assessment use case.
func ProvideAssessor(weather drepo.WeatherSource, rec drepo.Metrics) *usecase.AssessorUseCase {
	return usecase.NewAssessorUseCase(weather, rec)
}

// ProvidePredictor creates the image+questionnaire prediction use case.
func ProvidePredictor(
	detector domsvc.ImageDetector,
	scorer domsvc.TabularScorer,
	fusionCfg fusion.Config,
	rec drepo.Metrics,
	log *logger.Logger,
) *usecase.PredictorUseCase {
	return usecase.NewPredictorUseCase(detector, scorer, fusionCfg, rec, log)
}

// ProvideRiskMonitor creates the background plot monitor, or nil when disabled.
func ProvideRiskMonitor(
	assessor *usecase.AssessorUseCase,
	rec drepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.RiskMonitor {
	if !cfg.Monitor.Enabled {
		return nil
	}
	return usecase.NewRiskMonitor(assessor, rec, log, cfg)
}

// ProvideHTTPHandler wires the Echo handlers behind one registrar.
func ProvideHTTPHandler(
	log *logger.Logger,
	assessor *usecase.AssessorUseCase,
	predictor *usecase.PredictorUseCase,
) xhttp.Handler {
	return api.NewRouter(
		api.NewAssessEchoHandler(log, assessor),
		api.NewPredictEchoHandler(log, predictor),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	monitor *usecase.RiskMonitor,
	c cache.Service,
) *server.App {
	app := server.New(cfg, handler, monitor)
	if closer, ok := c.(interface{ Close() error }); ok {
		app.AddCloser(closer.Close)
	}
	return app
}
