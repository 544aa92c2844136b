package detect

import (
	"context"
	"fmt"
	"strconv"

	"CaneGuard/internal/domain/models"
	domsvc "CaneGuard/internal/domain/service"
	"CaneGuard/pkg/config"
)

// HTTPVisionDetector calls the vision model runtime over HTTP.
type HTTPVisionDetector struct {
	base       *HTTPServiceBase
	confidence float64
	iou        float64
	imageSize  int
}

func NewHTTPVisionDetector(cfg *config.Config) *HTTPVisionDetector {
	return &HTTPVisionDetector{
		base:       NewHTTPServiceBase(cfg),
		confidence: cfg.Models.Vision.Confidence,
		iou:        cfg.Models.Vision.IoU,
		imageSize:  cfg.Models.Vision.ImageSize,
	}
}

type visionResp struct {
	Confidence float64            `json:"confidence"`
	Detections []models.Detection `json:"detections"`
	Overlay    string             `json:"overlay_image_base64"`
}

func (s *HTTPVisionDetector) Detect(ctx context.Context, disease models.Disease, filename string, image []byte) (models.ImageAnalysis, error) {
	var result models.ImageAnalysis

	fields := map[string]string{}
	if s.confidence > 0 {
		fields["conf"] = strconv.FormatFloat(s.confidence, 'f', -1, 64)
	}
	if s.iou > 0 {
		fields["iou"] = strconv.FormatFloat(s.iou, 'f', -1, 64)
	}
	if s.imageSize > 0 {
		fields["imgsz"] = strconv.Itoa(s.imageSize)
	}

	var vr visionResp
	path := fmt.Sprintf("/vision/%s/detect", disease)
	if err := s.base.PostMultipart(ctx, path, "file", filename, image, fields, &vr); err != nil {
		return result, fmt.Errorf("vision detect: %w", err)
	}

	result.Confidence = vr.Confidence
	result.Detections = vr.Detections
	result.OverlayBase64 = vr.Overlay
	if result.Detections == nil {
		result.Detections = []models.Detection{}
	}
	return result, nil
}

var _ domsvc.ImageDetector = (*HTTPVisionDetector)(nil)
