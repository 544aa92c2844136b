package detect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CaneGuard/internal/domain/models"
	"CaneGuard/pkg/config"
)

func modelConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Models.ServiceURL = url
	cfg.Models.Timeout = 5 * time.Second
	cfg.Models.Vision.Confidence = 0.6
	cfg.Models.Vision.IoU = 0.45
	cfg.Models.Vision.ImageSize = 640
	return cfg
}

func TestVisionDetectorSendsTuningFields(t *testing.T) {
	var gotPath, gotConf, gotIoU, gotSize string
	var gotImage []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotConf = r.FormValue("conf")
		gotIoU = r.FormValue("iou")
		gotSize = r.FormValue("imgsz")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "leaf.jpg", header.Filename)
		gotImage = make([]byte, header.Size)
		_, _ = file.Read(gotImage)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"confidence":           0.83,
			"detections":           []map[string]any{{"class": "deadheart", "score": 0.83, "type": "detection"}},
			"overlay_image_base64": "aGVsbG8=",
		})
	}))
	defer srv.Close()

	detector := NewHTTPVisionDetector(modelConfig(srv.URL))
	analysis, err := detector.Detect(context.Background(), models.DiseaseDeadHeart, "leaf.jpg", []byte{0xff, 0xd8})

	require.NoError(t, err)
	assert.Equal(t, "/vision/deadheart/detect", gotPath)
	assert.Equal(t, "0.6", gotConf)
	assert.Equal(t, "0.45", gotIoU)
	assert.Equal(t, "640", gotSize)
	assert.Equal(t, []byte{0xff, 0xd8}, gotImage)
	assert.Equal(t, 0.83, analysis.Confidence)
	require.Len(t, analysis.Detections, 1)
	assert.Equal(t, "aGVsbG8=", analysis.OverlayBase64)
}

func TestVisionDetectorNormalizesNilDetections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"confidence": 0.1})
	}))
	defer srv.Close()

	detector := NewHTTPVisionDetector(modelConfig(srv.URL))
	analysis, err := detector.Detect(context.Background(), models.DiseaseTiller, "leaf.jpg", []byte{0x01})

	require.NoError(t, err)
	assert.NotNil(t, analysis.Detections)
	assert.Empty(t, analysis.Detections)
}

func TestTabularScorerPostsFeatureVector(t *testing.T) {
	var gotPath string
	var gotBody tabularReq

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"probability": 0.42})
	}))
	defer srv.Close()

	scorer := NewHTTPTabularScorer(modelConfig(srv.URL))
	prob, err := scorer.Probability(context.Background(), models.DiseaseTiller, []float64{1, 0, 1})

	require.NoError(t, err)
	assert.Equal(t, "/tabular/tiller/predict", gotPath)
	assert.Equal(t, []float64{1, 0, 1}, gotBody.Features)
	assert.Equal(t, 0.42, prob)
}

func TestTabularScorerPropagatesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	scorer := NewHTTPTabularScorer(modelConfig(srv.URL))
	_, err := scorer.Probability(context.Background(), models.DiseaseDeadHeart, []float64{0})

	assert.Error(t, err)
}
