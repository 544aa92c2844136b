//go:build wireinject
// +build wireinject

package di

import (
	"CaneGuard/pkg/config"
	"CaneGuard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Shared infrastructure
		ProvideLogger,
		ProvideCache,
		ProvideMetrics,
		ProvideRateLimiter,

		// External services
		ProvideWeatherSource,
		ProvideImageDetector,
		ProvideTabularScorer,
		ProvideFusionConfig,

		// Use cases
		ProvideAssessor,
		ProvidePredictor,
		ProvideRiskMonitor,

		// HTTP surface and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
