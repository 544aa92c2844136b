package fusion

import "CaneGuard/internal/domain/models"

// Config holds the fusion weights and decision threshold. Weights are not
// required to sum to 1; they are tuned per deployment.
type Config struct {
	ImageWeight   float64 `yaml:"image_weight" default:"0.6"`
	TabularWeight float64 `yaml:"tabular_weight" default:"0.4"`
	Threshold     float64 `yaml:"threshold" default:"0.5"`
}

// DefaultConfig returns the tuned production weights.
func DefaultConfig() Config {
	return Config{ImageWeight: 0.6, TabularWeight: 0.4, Threshold: 0.5}
}

// Fuse blends the vision confidence with the tabular probability into a final
// score and a label. Inputs are expected in [0,1]; the blend itself performs
// no clamping.
func Fuse(cfg Config, disease models.Disease, imageConfidence, tabularProbability float64) (float64, string) {
	score := cfg.ImageWeight*imageConfidence + cfg.TabularWeight*tabularProbability
	if score >= cfg.Threshold {
		return score, string(disease)
	}
	return score, "not_" + string(disease)
}
