package models

import "encoding/json"

// Detection is a single vision-model finding. Box/polygon/mask shapes come
// from the model runtime and pass through untouched.
type Detection struct {
	Box     []int           `json:"box,omitempty"`
	Polygon [][]float64     `json:"polygon,omitempty"`
	Mask    json.RawMessage `json:"mask,omitempty"`
	Score   float64         `json:"score"`
	Class   string          `json:"class"`
	Type    string          `json:"type"` // "detection" or "segmentation"
}

// ImageAnalysis is the vision runtime's verdict for one uploaded image.
type ImageAnalysis struct {
	Confidence    float64     `json:"confidence"` // max detection score, [0,1]
	Detections    []Detection `json:"detections"`
	OverlayBase64 string      `json:"overlay_image_base64"`
}

// PredictionResult is the fused image+questionnaire classification.
type PredictionResult struct {
	ImageConfidence    float64     `json:"image_confidence"`
	TabnetProb         float64     `json:"tabnet_prob"`
	FinalScore         float64     `json:"final_score"`
	FinalLabel         string      `json:"final_label"`
	Detections         []Detection `json:"detections"`
	OverlayImageBase64 string      `json:"overlay_image_base64"`
}
