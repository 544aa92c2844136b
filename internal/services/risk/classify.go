package risk

import "CaneGuard/internal/domain/models"

// Score thresholds separating the ordinal risk levels. Evaluated
// highest-first: a score at or above a threshold takes that level.
const (
	thresholdMedium   = 50.0
	thresholdHigh     = 75.0
	thresholdCritical = 90.0
)

// Classify maps a risk score to its ordinal level.
func Classify(score float64) models.RiskLevel {
	switch {
	case score >= thresholdCritical:
		return models.RiskCritical
	case score >= thresholdHigh:
		return models.RiskHigh
	case score >= thresholdMedium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
