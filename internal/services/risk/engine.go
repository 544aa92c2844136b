package risk

import (
	"time"

	"CaneGuard/internal/domain/models"
)

// The two disease engines share one evaluator: ordered groups of mutually
// exclusive branches accumulate points, then independent overlays (combination
// bonuses and the dry-condition reduction) stack on top. Only the rule tables
// differ per disease.

type condition func(models.WeatherReading) bool

// branch is one arm of a mutually exclusive group; the first matching branch
// in a group contributes and the rest are skipped.
type branch struct {
	when           condition
	points         int
	factor         func(models.WeatherReading) string
	recommendation string
}

type branchGroup []branch

// overlay is an independent adjustment evaluated after every group. Negative
// points are a reduction; the running score never drops below zero.
type overlay struct {
	when           condition
	points         int
	factor         string
	recommendation string
}

type ruleSet struct {
	disease  models.Disease
	groups   []branchGroup
	overlays []overlay
	// levelRecommendations are appended after classification, on top of any
	// rule-triggered recommendations.
	levelRecommendations map[models.RiskLevel][]string
}

func (rs *ruleSet) evaluate(reading models.WeatherReading, now time.Time) models.RiskResult {
	score := 0
	factors := make([]string, 0, len(rs.groups)+len(rs.overlays))
	recommendations := make([]string, 0, 8)

	for _, group := range rs.groups {
		for _, b := range group {
			if !b.when(reading) {
				continue
			}
			score += b.points
			factors = append(factors, b.factor(reading))
			if b.recommendation != "" {
				recommendations = append(recommendations, b.recommendation)
			}
			break
		}
	}

	for _, o := range rs.overlays {
		if !o.when(reading) {
			continue
		}
		score += o.points
		if score < 0 {
			score = 0
		}
		factors = append(factors, o.factor)
		if o.recommendation != "" {
			recommendations = append(recommendations, o.recommendation)
		}
	}

	finalScore := clampScore(float64(score))
	level := Classify(finalScore)
	recommendations = append(recommendations, rs.levelRecommendations[level]...)

	return models.RiskResult{
		Disease:         rs.disease,
		RiskLevel:       level,
		RiskScore:       finalScore,
		RiskColor:       level.Color(),
		RiskFactors:     factors,
		Recommendations: recommendations,
		AssessmentTime:  now,
	}
}

// ScoreDeadHeart assesses Dead Heart risk from a single weather reading.
func ScoreDeadHeart(reading models.WeatherReading) models.RiskResult {
	return deadHeartRules.evaluate(reading, time.Now())
}

// ScoreTiller assesses Tiller risk from a single weather reading.
func ScoreTiller(reading models.WeatherReading) models.RiskResult {
	return tillerRules.evaluate(reading, time.Now())
}
