package usecase

import (
	"context"
	"time"

	"CaneGuard/internal/domain/models"
	drepo "CaneGuard/internal/domain/repository"
	"CaneGuard/internal/services/risk"
)

// AssessorUseCase combines weather retrieval with the risk engines.
type AssessorUseCase struct {
	weather drepo.WeatherSource
	metrics drepo.Metrics
}

func NewAssessorUseCase(weather drepo.WeatherSource, metrics drepo.Metrics) *AssessorUseCase {
	return &AssessorUseCase{weather: weather, metrics: metrics}
}

// WeatherAvailable reports whether the weather provider is usable.
func (uc *AssessorUseCase) WeatherAvailable() bool {
	return uc.weather.Available()
}

// CurrentWeather returns the current conditions at the coordinate.
func (uc *AssessorUseCase) CurrentWeather(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	return uc.weather.Current(ctx, lat, lon)
}

// Forecast returns the daily-aggregated forecast at the coordinate.
func (uc *AssessorUseCase) Forecast(ctx context.Context, lat, lon float64, days int) (models.ForecastBundle, error) {
	return uc.weather.Forecast(ctx, lat, lon, days)
}

// AssessCombined scores both diseases against current conditions.
func (uc *AssessorUseCase) AssessCombined(ctx context.Context, lat, lon float64) (models.CombinedRiskResult, models.WeatherSnapshot, error) {
	start := time.Now()
	snapshot, err := uc.weather.Current(ctx, lat, lon)
	if err != nil {
		uc.metrics.RecordError("weather_current")
		return models.CombinedRiskResult{}, snapshot, err
	}

	combined := risk.Combine(snapshot)
	uc.recordCombined(combined)
	uc.metrics.RecordLatency("assess_combined", time.Since(start).Seconds())
	return combined, snapshot, nil
}

// AssessDisease scores a single disease against current conditions.
func (uc *AssessorUseCase) AssessDisease(ctx context.Context, disease models.Disease, lat, lon float64) (models.RiskResult, models.WeatherSnapshot, error) {
	snapshot, err := uc.weather.Current(ctx, lat, lon)
	if err != nil {
		uc.metrics.RecordError("weather_current")
		return models.RiskResult{}, snapshot, err
	}

	var result models.RiskResult
	switch disease {
	case models.DiseaseTiller:
		result = risk.ScoreTiller(snapshot.Current)
	default:
		result = risk.ScoreDeadHeart(snapshot.Current)
	}
	uc.metrics.RecordAssessment(string(result.Disease), string(result.RiskLevel))
	return result, snapshot, nil
}

// AssessWithForecast runs the approximation-mode combined assessment, which
// also needs the multi-day forecast.
func (uc *AssessorUseCase) AssessWithForecast(ctx context.Context, lat, lon float64) (models.CombinedRiskResult, models.WeatherSnapshot, models.ForecastBundle, error) {
	start := time.Now()
	snapshot, err := uc.weather.Current(ctx, lat, lon)
	if err != nil {
		uc.metrics.RecordError("weather_current")
		return models.CombinedRiskResult{}, snapshot, models.ForecastBundle{}, err
	}
	forecast, err := uc.weather.Forecast(ctx, lat, lon, 5)
	if err != nil {
		uc.metrics.RecordError("weather_forecast")
		return models.CombinedRiskResult{}, snapshot, forecast, err
	}

	combined := risk.CombineWithForecast(snapshot, forecast)
	uc.recordCombined(combined)
	uc.metrics.RecordLatency("assess_forecast", time.Since(start).Seconds())
	return combined, snapshot, forecast, nil
}

func (uc *AssessorUseCase) recordCombined(combined models.CombinedRiskResult) {
	uc.metrics.RecordAssessment(string(combined.DeadHeart.Disease), string(combined.DeadHeart.RiskLevel))
	uc.metrics.RecordAssessment(string(combined.Tiller.Disease), string(combined.Tiller.RiskLevel))
}
