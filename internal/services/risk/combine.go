package risk

import (
	"fmt"
	"time"

	"CaneGuard/internal/domain/models"
)

// Caps on the combined recommendation list: up to three per actionable
// disease, eight overall.
const (
	maxPerDiseaseRecs = 3
	maxCombinedRecs   = 8
)

// Combine assesses both diseases from one snapshot and aggregates them under
// an overall risk taken from the worse of the two scores.
func Combine(snapshot models.WeatherSnapshot) models.CombinedRiskResult {
	now := time.Now()
	deadheart := deadHeartRules.evaluate(snapshot.Current, now)
	tiller := tillerRules.evaluate(snapshot.Current, now)

	combined := aggregate(deadheart, tiller, snapshot.Current, now)
	if combined.OverallRisk.RiskLevel.Actionable() {
		combined.CombinedRecommendations = append(combined.CombinedRecommendations,
			"Consider consulting agricultural extension officer",
			"Document symptoms with photos for expert review",
		)
		combined.CombinedRecommendations = capRecs(combined.CombinedRecommendations)
	}
	return combined
}

// CombineWithForecast is the degraded-data variant: Dead Heart is scored by
// the approximation rules against the forecast while Tiller still uses the
// current reading. The two general consulting recommendations are not added
// here.
func CombineWithForecast(snapshot models.WeatherSnapshot, forecast models.ForecastBundle) models.CombinedRiskResult {
	now := time.Now()
	deadheart := scoreDeadHeartApprox(snapshot.Current, forecast.Days, now)
	tiller := tillerRules.evaluate(snapshot.Current, now)

	combined := aggregate(deadheart, tiller, snapshot.Current, now)
	combined.ApproxMode = true
	combined.RuleMode = "approx_free"
	return combined
}

func aggregate(deadheart, tiller models.RiskResult, reading models.WeatherReading, now time.Time) models.CombinedRiskResult {
	maxScore := deadheart.RiskScore
	if tiller.RiskScore > maxScore {
		maxScore = tiller.RiskScore
	}
	overall := Classify(maxScore)

	recs := make([]string, 0, 2*maxPerDiseaseRecs+2)
	recs = append(recs, prefixRecs(deadheart)...)
	recs = append(recs, prefixRecs(tiller)...)

	return models.CombinedRiskResult{
		OverallRisk: models.OverallRisk{
			RiskLevel: overall,
			RiskScore: maxScore,
			RiskColor: overall.Color(),
		},
		DeadHeart:               deadheart,
		Tiller:                  tiller,
		CombinedRecommendations: capRecs(recs),
		AssessmentTime:          now,
		WeatherSummary: models.WeatherSummary{
			Temperature: reading.Temperature,
			Humidity:    reading.Humidity,
			Rainfall:    reading.Rainfall3h,
			Conditions:  reading.Description,
		},
	}
}

// prefixRecs takes the first few recommendations of an actionable assessment
// and labels them with the disease name.
func prefixRecs(result models.RiskResult) []string {
	if !result.RiskLevel.Actionable() {
		return nil
	}
	n := len(result.Recommendations)
	if n > maxPerDiseaseRecs {
		n = maxPerDiseaseRecs
	}
	out := make([]string, 0, n)
	for _, rec := range result.Recommendations[:n] {
		out = append(out, fmt.Sprintf("%s: %s", result.Disease.Display(), rec))
	}
	return out
}

func capRecs(recs []string) []string {
	if len(recs) > maxCombinedRecs {
		return recs[:maxCombinedRecs]
	}
	return recs
}
