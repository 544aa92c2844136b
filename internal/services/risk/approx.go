package risk

import (
	"time"

	"CaneGuard/internal/domain/models"
)

// Approximation mode scores Dead Heart from free-tier data only: a current
// reading plus the 3-hourly forecast aggregated to days. Historical windows
// ("no rain in the last 3 days", "dry week behind us") are not observable on
// the free plan, so forward-looking proxies stand in for them and every
// triggered reason carries an "(approx)" marker.
//
// Unlike the additive engine, these rules are priority ordered and the first
// match wins.

const (
	approxScoreDefault   = 30.0
	approxScoreHighA     = 90.0
	approxScoreHighB     = 88.0
	approxScoreElevatedC = 65.0
	approxScoreElevatedD = 60.0

	// A forecast day below this rainfall counts as dry in the
	// consecutive-dry scan.
	dryDayRainfallMM = 2.0
)

// ScoreDeadHeartApprox assesses Dead Heart risk under approximation mode.
func ScoreDeadHeartApprox(reading models.WeatherReading, days []models.ForecastDay) models.RiskResult {
	return scoreDeadHeartApprox(reading, days, time.Now())
}

func scoreDeadHeartApprox(reading models.WeatherReading, days []models.ForecastDay, now time.Time) models.RiskResult {
	td := todayOrFirst(days, now)

	minTempToday := fallback(td.TemperatureMin, td.Date != "", reading.Temperature)
	maxTempToday := fallback(td.TemperatureMax, td.Date != "", reading.Temperature)
	eveRHToday := fallback(td.EveningRH, td.Date != "", reading.Humidity)
	mornRHToday := fallback(td.MorningRH, td.Date != "", reading.Humidity)
	totalRainToday := td.TotalRainfall

	next7 := firstN(days, 7)

	// Rainfall-window proxies.
	noSigRainLast3 := reading.Rainfall1h == 0 && totalRainToday <= 1.0
	noRain24h := reading.Rainfall1h == 0 && totalRainToday == 0

	// Forward scan for consecutive dry days; stops at the first wet day.
	consecutiveDry := 0
	for _, d := range next7 {
		if d.TotalRainfall >= dryDayRainfallMM {
			break
		}
		consecutiveDry++
	}

	// Average temperature over the coming dry window, at least four days.
	evalWindow := consecutiveDry
	if evalWindow < 4 {
		evalWindow = 4
	}
	avgTempFuture := meanAvgTemp(firstN(next7, evalWindow), fallback(td.TemperatureAvg, td.Date != "", reading.Temperature))

	weekRain := 0.0
	for _, d := range next7 {
		weekRain += d.TotalRainfall
	}
	priorWeekRainLow := weekRain < 5.0

	mean7Future := meanAvgTemp(next7, fallback(td.TemperatureAvg, td.Date != "", reading.Temperature))
	tempAboveNormal := fallback(td.TemperatureAvg, td.Date != "", reading.Temperature) > mean7Future

	// Disrupters force a low outcome regardless of the dry-heat signals.
	disrupted := false
	for _, d := range next7 {
		if d.TotalRainfall >= 50.0 || d.HumidityMax > 80.0 {
			disrupted = true
			break
		}
	}

	score := approxScoreDefault
	level := models.RiskLow
	var reason string

	switch {
	case disrupted:
		reason = "Monsoon/disrupter: heavy rain ≥50mm or RH>80% expected (approx)"
	case minTempToday >= 23.0 && eveRHToday <= 60.0 && noSigRainLast3:
		reason = "Min temp ≥23°C AND evening RH ≤60% AND ~no rain last 3 days (approx)"
		level = models.RiskHigh
		score = approxScoreHighA
	case maxTempToday >= 35.0 && eveRHToday <= 60.0 && noRain24h:
		reason = "Max temp ≥35°C AND evening RH ≤60% AND ~no rain last 24h (approx)"
		level = models.RiskHigh
		score = approxScoreHighB
	case consecutiveDry >= 4 && avgTempFuture > 28.0:
		reason = "≥4 dry days (<2mm) ahead AND avg temp >28°C (approx)"
		level = models.RiskMedium
		score = approxScoreElevatedC
	case mornRHToday <= 50.0 && priorWeekRainLow && tempAboveNormal:
		reason = "Morning RH ≤50% AND week rain <5mm AND temp above normal (approx)"
		level = models.RiskMedium
		score = approxScoreElevatedD
	default:
		reason = "No high/elevated ESB conditions (approx) → Low"
	}

	return models.RiskResult{
		Disease:         models.DiseaseDeadHeart,
		RiskLevel:       level,
		RiskScore:       score,
		RiskColor:       level.Color(),
		RiskFactors:     []string{reason},
		Recommendations: []string{},
		AssessmentTime:  now,
		ApproxMode:      true,
	}
}

// todayOrFirst returns the forecast day matching the current date, falling
// back to the first day, or a zero value when the forecast is empty.
func todayOrFirst(days []models.ForecastDay, now time.Time) models.ForecastDay {
	today := now.Format("2006-01-02")
	for _, d := range days {
		if d.Date == today {
			return d
		}
	}
	if len(days) > 0 {
		return days[0]
	}
	return models.ForecastDay{}
}

func firstN(days []models.ForecastDay, n int) []models.ForecastDay {
	if len(days) > n {
		return days[:n]
	}
	return days
}

func meanAvgTemp(days []models.ForecastDay, empty float64) float64 {
	if len(days) == 0 {
		return empty
	}
	sum := 0.0
	for _, d := range days {
		sum += d.TemperatureAvg
	}
	return sum / float64(len(days))
}

// fallback picks v when a forecast day was present, otherwise the current
// reading's value.
func fallback(v float64, present bool, current float64) float64 {
	if present {
		return v
	}
	return current
}
