package fusion

import (
	"strings"

	"CaneGuard/internal/domain/models"
)

// FeatureLength is the fixed width of every questionnaire feature vector.
const FeatureLength = 15

// Canonical question orders for the tabular models. Position sensitive: the
// models were trained against these exact orderings, never reorder.
var tillerQuestions = []string{
	"affected_setts_spreading",
	"plants_stunted_slow_growth",
	"honey_dew_sooty_mould",
	"nodal_regions_infested",
	"tillers_white_yellow",
	"high_aphid_population",
	"gaps_early_drying",
	"cane_stunted_reduced_internodes",
	"no_millable_cane_formation",
	"profuse_lateral_buds",
	"woolly_matter_deposition",
	"gradual_yellowing_drying",
	"yellowing_from_tip_margins",
	"profuse_tillering_3_4_months",
	"ratoon_crop_present",
}

var deadHeartQuestions = []string{
	"boreholes_plugged_excreta",
	"central_whorl_dry_withered",
	"affected_shoots_come_off_easily",
	"affected_shoots_wilting_drying",
	"caterpillars_destroying_shoots",
	"reduction_millable_canes",
	"bore_holes_base_ground_level",
	"dirty_white_larvae_violet_stripes",
	"central_shoot_comes_out_easily",
	"small_holes_stem_near_ground",
	"crop_early_growth_phase",
	"leaves_drying_tip_margins",
	"plant_yellow_wilted",
	"rotten_central_shoot_foul_odor",
	"rotten_straw_colored_dead_heart",
}

// Questions returns the canonical question order for a disease.
func Questions(disease models.Disease) []string {
	if disease == models.DiseaseTiller {
		return tillerQuestions
	}
	return deadHeartQuestions
}

// Encode turns raw questionnaire answers into the fixed-width feature vector
// the tabular model expects. Missing answers count as "no"; any non-string
// value encodes to 0. Only a case-insensitive "yes" contributes a 1.
func Encode(disease models.Disease, answers map[string]any) []float64 {
	order := Questions(disease)
	features := make([]float64, 0, FeatureLength)
	for _, q := range order {
		raw, ok := answers[q]
		if !ok {
			features = append(features, 0)
			continue
		}
		s, ok := raw.(string)
		if ok && strings.EqualFold(s, "yes") {
			features = append(features, 1)
		} else {
			features = append(features, 0)
		}
	}
	// Enforce the fixed width even if the canonical lists ever drift.
	for len(features) < FeatureLength {
		features = append(features, 0)
	}
	return features[:FeatureLength]
}
