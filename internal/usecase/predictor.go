package usecase

import (
	"context"
	"time"

	"CaneGuard/internal/domain/models"
	drepo "CaneGuard/internal/domain/repository"
	domsvc "CaneGuard/internal/domain/service"
	"CaneGuard/internal/services/fusion"
	"CaneGuard/pkg/logger"
	"CaneGuard/pkg/util"
)

// neutralProbability stands in for the tabular model when it cannot be
// reached, so the image signal alone decides the outcome.
const neutralProbability = 0.5

// PredictorUseCase fuses the vision and questionnaire models into one
// prediction per uploaded image.
type PredictorUseCase struct {
	detector domsvc.ImageDetector
	scorer   domsvc.TabularScorer
	fusion   fusion.Config
	metrics  drepo.Metrics
	log      *logger.Logger
}

func NewPredictorUseCase(detector domsvc.ImageDetector, scorer domsvc.TabularScorer, cfg fusion.Config, metrics drepo.Metrics, log *logger.Logger) *PredictorUseCase {
	return &PredictorUseCase{
		detector: detector,
		scorer:   scorer,
		fusion:   cfg,
		metrics:  metrics,
		log:      log,
	}
}

type PredictParams struct {
	Disease  models.Disease
	Filename string
	Image    []byte
	Answers  map[string]any
}

// Predict runs both models and blends their outputs. A vision failure aborts
// the prediction; a tabular failure degrades to a neutral probability since
// questionnaire answers are optional for farmers in the field.
func (uc *PredictorUseCase) Predict(ctx context.Context, p PredictParams) (models.PredictionResult, error) {
	start := time.Now()
	var result models.PredictionResult

	analysis, err := uc.detector.Detect(ctx, p.Disease, p.Filename, p.Image)
	if err != nil {
		uc.metrics.RecordError("vision_detect")
		return result, err
	}

	features := fusion.Encode(p.Disease, p.Answers)
	prob, err := uc.scorer.Probability(ctx, p.Disease, features)
	if err != nil {
		uc.log.Warn("tabular model unavailable, using neutral probability",
			logger.String("disease", string(p.Disease)), logger.Error(err))
		uc.metrics.RecordError("tabular_predict")
		prob = neutralProbability
	}

	score, label := fusion.Fuse(uc.fusion, p.Disease, analysis.Confidence, prob)

	result = models.PredictionResult{
		ImageConfidence:    util.Round3(analysis.Confidence),
		TabnetProb:         util.Round3(prob),
		FinalScore:         util.Round3(score),
		FinalLabel:         label,
		Detections:         analysis.Detections,
		OverlayImageBase64: analysis.OverlayBase64,
	}

	uc.metrics.RecordPrediction(string(p.Disease), label)
	uc.metrics.RecordLatency("predict", time.Since(start).Seconds())
	return result, nil
}
