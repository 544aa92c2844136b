package service

import (
	"context"

	"CaneGuard/internal/domain/models"
)

// ImageDetector runs the opaque vision model over an uploaded image and
// returns its confidence, raw detections and rendered overlay.
type ImageDetector interface {
	Detect(ctx context.Context, disease models.Disease, filename string, image []byte) (models.ImageAnalysis, error)
}

// TabularScorer runs the opaque tabular model over an encoded questionnaire
// feature vector and returns the positive-class probability in [0,1].
type TabularScorer interface {
	Probability(ctx context.Context, disease models.Disease, features []float64) (float64, error)
}
