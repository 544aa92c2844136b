package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CaneGuard/internal/domain/models"
)

func dryDays(n int, avgTemp float64) []models.ForecastDay {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	days := make([]models.ForecastDay, n)
	for i := range days {
		days[i] = models.ForecastDay{
			Date:           base.AddDate(0, 0, i).Format("2006-01-02"),
			TemperatureMin: avgTemp - 5,
			TemperatureMax: avgTemp + 5,
			TemperatureAvg: avgTemp,
			HumidityMax:    55,
			MorningRH:      60,
			EveningRH:      55,
		}
	}
	return days
}

func TestApproxHighAWhenWarmDryEvenings(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	days := dryDays(5, 30)
	days[0].TemperatureMin = 24
	days[0].EveningRH = 58

	result := scoreDeadHeartApprox(models.WeatherReading{Rainfall1h: 0}, days, now)

	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, 90.0, result.RiskScore)
	assert.True(t, result.ApproxMode)
	assert.Empty(t, result.Recommendations)
	require.Len(t, result.RiskFactors, 1)
	assert.Contains(t, result.RiskFactors[0], "(approx)")
	assert.Contains(t, result.RiskFactors[0], "Min temp ≥23°C")
}

func TestApproxHighBWhenHotAndRainFree(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	days := dryDays(5, 31)
	days[0].TemperatureMin = 20 // rules out high_A
	days[0].TemperatureMax = 38
	days[0].EveningRH = 50
	days[0].TotalRainfall = 1.5 // breaks the 24h proxy but not "significant rain"

	// With rain today the 24h proxy fails, so high_B cannot fire; high_A is
	// already out, dry scan sees 5 dry days at 31C and elevated_C takes it.
	result := scoreDeadHeartApprox(models.WeatherReading{}, days, now)
	assert.Equal(t, models.RiskMedium, result.RiskLevel)
	assert.Equal(t, 65.0, result.RiskScore)

	days[0].TotalRainfall = 0
	result = scoreDeadHeartApprox(models.WeatherReading{}, days, now)
	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, 88.0, result.RiskScore)
	assert.Contains(t, result.RiskFactors[0], "Max temp ≥35°C")
}

func TestApproxElevatedCNeedsFourDryDays(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	days := dryDays(7, 30)
	for i := range days {
		days[i].TemperatureMin = 20 // keep high_A out
		days[i].EveningRH = 65      // keep both high rules out
		days[i].MorningRH = 60      // keep elevated_D out
	}
	days[3].TotalRainfall = 3.0 // wet day ends the dry run at 3

	result := scoreDeadHeartApprox(models.WeatherReading{}, days, now)
	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Equal(t, 30.0, result.RiskScore)
	assert.Contains(t, result.RiskFactors[0], "No high/elevated")

	days[3].TotalRainfall = 0
	result = scoreDeadHeartApprox(models.WeatherReading{}, days, now)
	assert.Equal(t, models.RiskMedium, result.RiskLevel)
	assert.Equal(t, 65.0, result.RiskScore)
	assert.Contains(t, result.RiskFactors[0], "≥4 dry days")
}

func TestApproxDisrupterForcesLow(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	// Conditions that would otherwise trigger high_A.
	days := dryDays(5, 32)
	days[0].TemperatureMin = 25
	days[0].EveningRH = 50
	days[4].TotalRainfall = 55 // heavy rain expected later in the week

	result := scoreDeadHeartApprox(models.WeatherReading{}, days, now)

	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Equal(t, 30.0, result.RiskScore)
	assert.Contains(t, result.RiskFactors[0], "disrupter")
}

func TestApproxHumidityDisrupter(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	days := dryDays(5, 32)
	days[0].TemperatureMin = 25
	days[0].EveningRH = 50
	days[2].HumidityMax = 85

	result := scoreDeadHeartApprox(models.WeatherReading{}, days, now)

	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Equal(t, 30.0, result.RiskScore)
}

func TestApproxEmptyForecastFallsBackToCurrent(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	reading := models.WeatherReading{
		Temperature: 36,
		Humidity:    45,
		Rainfall1h:  0,
	}

	// With no forecast every daily field falls back to the current reading:
	// min temp 36 ≥ 23, evening RH 45 ≤ 60, no rain. high_A fires.
	result := scoreDeadHeartApprox(reading, nil, now)

	assert.Equal(t, models.RiskHigh, result.RiskLevel)
	assert.Equal(t, 90.0, result.RiskScore)
}

func TestApproxDefaultLow(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	days := dryDays(2, 25)
	days[0].TemperatureMin = 18
	days[0].EveningRH = 70
	days[0].MorningRH = 65
	days[1].EveningRH = 70

	result := scoreDeadHeartApprox(models.WeatherReading{Humidity: 65}, days, now)

	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Equal(t, 30.0, result.RiskScore)
	assert.True(t, result.ApproxMode)
}

func TestCombineWithForecastMarksApproxMode(t *testing.T) {
	snapshot := models.WeatherSnapshot{
		Current: models.WeatherReading{
			Temperature: 30,
			Humidity:    65,
			Rainfall3h:  0,
			WindSpeed:   3,
			Condition:   models.CondClear,
			Description: "clear sky",
		},
	}
	forecast := models.ForecastBundle{Days: dryDays(5, 30)}

	combined := CombineWithForecast(snapshot, forecast)

	assert.True(t, combined.ApproxMode)
	assert.Equal(t, "approx_free", combined.RuleMode)
	assert.True(t, combined.DeadHeart.ApproxMode)
	assert.False(t, combined.Tiller.ApproxMode)
	assert.Equal(t, Classify(combined.OverallRisk.RiskScore), combined.OverallRisk.RiskLevel)
	// The general consulting recommendations are not added in approx mode.
	assert.NotContains(t, combined.CombinedRecommendations, "Consider consulting agricultural extension officer")
}
