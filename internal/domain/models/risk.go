package models

import (
	"fmt"
	"time"
)

// Disease identifies one of the two supported sugarcane syndromes.
type Disease string

const (
	DiseaseDeadHeart Disease = "deadheart"
	DiseaseTiller    Disease = "tiller"
)

// ParseDisease maps a route/path value to a known disease.
func ParseDisease(s string) (Disease, error) {
	switch Disease(s) {
	case DiseaseDeadHeart, DiseaseTiller:
		return Disease(s), nil
	}
	return "", fmt.Errorf("disease must be %q or %q, got %q", DiseaseDeadHeart, DiseaseTiller, s)
}

// Display returns the human-facing name used in combined recommendations.
func (d Disease) Display() string {
	switch d {
	case DiseaseDeadHeart:
		return "Dead Heart"
	case DiseaseTiller:
		return "Tiller"
	}
	return string(d)
}

// RiskLevel is the ordinal classification of a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Color returns the display color for the level.
func (l RiskLevel) Color() string {
	switch l {
	case RiskCritical:
		return "#F44336"
	case RiskHigh:
		return "#FF5722"
	case RiskMedium:
		return "#FF9800"
	default:
		return "#4CAF50"
	}
}

// Actionable reports whether the level warrants combined recommendations.
func (l RiskLevel) Actionable() bool {
	return l == RiskHigh || l == RiskCritical
}

// RiskResult is one disease assessment. Constructed fresh per call, never
// mutated afterwards.
type RiskResult struct {
	Disease         Disease   `json:"disease"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskScore       float64   `json:"risk_score"` // always within [0,100]
	RiskColor       string    `json:"risk_color"`
	RiskFactors     []string  `json:"risk_factors"`
	Recommendations []string  `json:"recommendations"`
	AssessmentTime  time.Time `json:"assessment_time"`
	ApproxMode      bool      `json:"approx_mode,omitempty"`
}

// OverallRisk summarizes the worst of the per-disease assessments.
type OverallRisk struct {
	RiskLevel RiskLevel `json:"risk_level"`
	RiskScore float64   `json:"risk_score"`
	RiskColor string    `json:"risk_color"`
}

// WeatherSummary is the condensed reading echoed alongside a combined result.
type WeatherSummary struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	Conditions  string  `json:"conditions"`
}

// CombinedRiskResult aggregates both disease assessments.
type CombinedRiskResult struct {
	OverallRisk             OverallRisk    `json:"overall_risk"`
	DeadHeart               RiskResult     `json:"deadheart"`
	Tiller                  RiskResult     `json:"tiller"`
	CombinedRecommendations []string       `json:"combined_recommendations"`
	AssessmentTime          time.Time      `json:"assessment_time"`
	WeatherSummary          WeatherSummary `json:"weather_summary"`
	ApproxMode              bool           `json:"approx_mode,omitempty"`
	RuleMode                string         `json:"rule_mode,omitempty"`
}
