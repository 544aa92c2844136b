package risk

import (
	"fmt"

	"CaneGuard/internal/domain/models"
)

// Dead Heart thrives in warm, humid, stagnant fields. Optimal band 25-30C,
// humidity above 80 percent, recent rain with low wind.
var deadHeartRules = ruleSet{
	disease: models.DiseaseDeadHeart,
	groups: []branchGroup{
		{
			{
				when:   func(w models.WeatherReading) bool { return w.Temperature >= 25 && w.Temperature <= 30 },
				points: 30,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Optimal temperature for disease development (%.1f°C)", w.Temperature)
				},
			},
			{
				when:   func(w models.WeatherReading) bool { return w.Temperature >= 20 && w.Temperature <= 35 },
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Moderate temperature risk (%.1f°C)", w.Temperature)
				},
			},
		},
		{
			{
				when:   func(w models.WeatherReading) bool { return w.Humidity > 80 },
				points: 25,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("High humidity level (%.0f%%)", w.Humidity)
				},
				recommendation: "Monitor plants closely for early symptoms",
			},
			{
				when:   func(w models.WeatherReading) bool { return w.Humidity > 70 },
				points: 10,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Moderate humidity level (%.0f%%)", w.Humidity)
				},
			},
		},
		{
			{
				when:   func(w models.WeatherReading) bool { return w.Rainfall3h > 5 },
				points: 20,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Recent significant rainfall (%.1fmm)", w.Rainfall3h)
				},
				recommendation: "Check for waterlogged areas and improve drainage",
			},
			{
				when:   func(w models.WeatherReading) bool { return w.Rainfall3h > 0 },
				points: 10,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Recent light rainfall (%.1fmm)", w.Rainfall3h)
				},
			},
		},
		{
			{
				when:   func(w models.WeatherReading) bool { return w.WindSpeed < 2 },
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Low wind speed (%.1f m/s) - stagnant conditions", w.WindSpeed)
				},
			},
			{
				when:   func(w models.WeatherReading) bool { return w.WindSpeed < 5 },
				points: 5,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Moderate wind speed (%.1f m/s)", w.WindSpeed)
				},
			},
		},
		{
			{
				when: func(w models.WeatherReading) bool {
					return w.Condition.OneOf(models.CondRain, models.CondThunderstorm)
				},
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Wet weather conditions (%s)", w.Condition)
				},
				recommendation: "Avoid field activities until conditions improve",
			},
			{
				when: func(w models.WeatherReading) bool {
					return w.Condition.OneOf(models.CondDrizzle, models.CondMist)
				},
				points: 10,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Moist weather conditions (%s)", w.Condition)
				},
			},
		},
	},
	overlays: []overlay{
		{
			when: func(w models.WeatherReading) bool {
				return w.Humidity > 80 && w.Temperature >= 25 && w.Temperature <= 30
			},
			points:         20,
			factor:         "Critical combination: High humidity + optimal temperature",
			recommendation: "Apply preventive fungicide spray immediately",
		},
		{
			when: func(w models.WeatherReading) bool {
				return w.Rainfall3h > 5 && w.WindSpeed < 2
			},
			points:         15,
			factor:         "Critical combination: Recent rain + low wind (stagnant water)",
			recommendation: "Improve field drainage urgently",
		},
		{
			when: func(w models.WeatherReading) bool {
				return w.Humidity < 60 && w.Rainfall3h == 0 &&
					w.Condition.OneOf(models.CondClear, models.CondSunny)
			},
			points:         -20,
			factor:         "Dry conditions reduce disease risk",
			recommendation: "Good conditions for field activities",
		},
	},
	levelRecommendations: map[models.RiskLevel][]string{
		models.RiskCritical: {
			"URGENT: Apply fungicide treatment immediately",
			"Inspect all plants for early symptoms",
			"Improve drainage in waterlogged areas",
		},
		models.RiskHigh: {
			"Apply preventive fungicide spray",
			"Monitor plants daily for symptoms",
			"Ensure proper field drainage",
		},
		models.RiskMedium: {
			"Increase monitoring frequency",
			"Prepare fungicide for application if needed",
			"Check drainage systems",
		},
		models.RiskLow: {
			"Continue regular monitoring",
			"Good time for field maintenance activities",
		},
	},
}
