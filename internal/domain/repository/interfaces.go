package repository

import (
	"context"

	"CaneGuard/internal/domain/models"
)

// WeatherSource supplies observed and forecast weather for a coordinate.
type WeatherSource interface {
	// Available reports whether the upstream provider is configured.
	Available() bool
	Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
	Forecast(ctx context.Context, lat, lon float64, days int) (models.ForecastBundle, error)
}

type Metrics interface {
	RecordAssessment(disease, level string)
	RecordPrediction(disease, label string)
	RecordRiskScore(disease, plot string, score float64)
	RecordWeatherFetch(endpoint, outcome string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
