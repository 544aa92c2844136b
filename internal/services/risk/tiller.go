package risk

import (
	"fmt"

	"CaneGuard/internal/domain/models"
)

// Tiller disease prefers hotter and wetter weather than Dead Heart: optimal
// band 28-35C, humidity above 85 percent, and wind-driven spread during rain.
var tillerRules = ruleSet{
	disease: models.DiseaseTiller,
	groups: []branchGroup{
		{
			{
				when:   func(w models.WeatherReading) bool { return w.Temperature >= 28 && w.Temperature <= 35 },
				points: 30,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Optimal temperature for disease development (%.1f°C)", w.Temperature)
				},
			},
			{
				when:   func(w models.WeatherReading) bool { return w.Temperature >= 25 && w.Temperature <= 38 },
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Moderate temperature risk (%.1f°C)", w.Temperature)
				},
			},
		},
		{
			{
				when:   func(w models.WeatherReading) bool { return w.Humidity > 85 },
				points: 30,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Very high humidity level (%.0f%%)", w.Humidity)
				},
				recommendation: "Critical humidity - monitor plants hourly",
			},
			{
				when:   func(w models.WeatherReading) bool { return w.Humidity > 75 },
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("High humidity level (%.0f%%)", w.Humidity)
				},
				recommendation: "Increase plant monitoring frequency",
			},
		},
		{
			{
				when:   func(w models.WeatherReading) bool { return w.Rainfall3h > 10 },
				points: 25,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Heavy rainfall (%.1fmm)", w.Rainfall3h)
				},
				recommendation: "Check for waterlogged areas immediately",
			},
			{
				when:   func(w models.WeatherReading) bool { return w.Rainfall3h > 2 },
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Moderate rainfall (%.1fmm)", w.Rainfall3h)
				},
			},
		},
		{
			{
				when:   func(w models.WeatherReading) bool { return w.WindSpeed > 10 && w.Rainfall3h > 0 },
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Strong winds (%.1f m/s) with rain - disease spread risk", w.WindSpeed)
				},
				recommendation: "Monitor for wind-blown disease spread",
			},
			{
				when:   func(w models.WeatherReading) bool { return w.WindSpeed > 15 },
				points: 10,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Strong winds (%.1f m/s) may spread disease", w.WindSpeed)
				},
			},
		},
		{
			{
				when:   func(w models.WeatherReading) bool { return w.Condition == models.CondThunderstorm },
				points: 20,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Severe weather conditions (%s)", w.Condition)
				},
				recommendation: "Expect increased disease pressure after storm",
			},
			{
				when: func(w models.WeatherReading) bool {
					return w.Condition.OneOf(models.CondRain, models.CondDrizzle)
				},
				points: 15,
				factor: func(w models.WeatherReading) string {
					return fmt.Sprintf("Wet weather conditions (%s)", w.Condition)
				},
			},
		},
	},
	overlays: []overlay{
		{
			when: func(w models.WeatherReading) bool {
				return w.Humidity > 85 && w.Temperature >= 28 && w.Temperature <= 35
			},
			points:         25,
			factor:         "Critical combination: Very high humidity + optimal temperature",
			recommendation: "Apply systemic fungicide immediately",
		},
		{
			when: func(w models.WeatherReading) bool {
				return w.Rainfall3h > 5 && w.Humidity > 80
			},
			points:         20,
			factor:         "Critical combination: Heavy rain + high humidity (continuous moisture)",
			recommendation: "Improve drainage and air circulation",
		},
		{
			when: func(w models.WeatherReading) bool {
				return w.Humidity < 70 && w.Rainfall3h == 0
			},
			points:         -15,
			factor:         "Dry conditions reduce disease risk",
			recommendation: "Favorable conditions for plant health",
		},
	},
	levelRecommendations: map[models.RiskLevel][]string{
		models.RiskCritical: {
			"EMERGENCY: Apply systemic fungicide now",
			"Inspect all tillers for symptoms",
			"Implement emergency drainage measures",
			"Consider copper-based treatments",
		},
		models.RiskHigh: {
			"Apply preventive fungicide to tillers",
			"Monitor tiller development closely",
			"Improve field ventilation",
			"Check drainage systems",
		},
		models.RiskMedium: {
			"Increase tiller monitoring",
			"Prepare treatment materials",
			"Monitor weather forecasts closely",
		},
		models.RiskLow: {
			"Continue routine monitoring",
			"Good conditions for tiller development",
		},
	},
}
