package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CaneGuard/internal/domain/models"
	"CaneGuard/internal/services/fusion"
	"CaneGuard/internal/usecase"
	"CaneGuard/pkg/logger"
)

type stubWeather struct {
	available bool
	snapshot  models.WeatherSnapshot
	forecast  models.ForecastBundle
	err       error
}

func (s *stubWeather) Available() bool { return s.available }

func (s *stubWeather) Current(context.Context, float64, float64) (models.WeatherSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubWeather) Forecast(context.Context, float64, float64, int) (models.ForecastBundle, error) {
	return s.forecast, s.err
}

type stubDetector struct {
	analysis models.ImageAnalysis
	err      error
}

func (s *stubDetector) Detect(context.Context, models.Disease, string, []byte) (models.ImageAnalysis, error) {
	return s.analysis, s.err
}

type stubScorer struct{ prob float64 }

func (s *stubScorer) Probability(context.Context, models.Disease, []float64) (float64, error) {
	return s.prob, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordAssessment(string, string)         {}
func (noopMetrics) RecordPrediction(string, string)         {}
func (noopMetrics) RecordRiskScore(string, string, float64) {}
func (noopMetrics) RecordWeatherFetch(string, string)       {}
func (noopMetrics) RecordError(string)                      {}
func (noopMetrics) RecordLatency(string, float64)           {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func newAssessServer(t *testing.T, weather *stubWeather) *echo.Echo {
	t.Helper()
	e := echo.New()
	assessor := usecase.NewAssessorUseCase(weather, noopMetrics{})
	NewAssessEchoHandler(testLogger(t), assessor).RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (int, json.RawMessage) {
	t.Helper()
	var envelope struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Status, envelope.Data
}

func wetWeather() *stubWeather {
	return &stubWeather{
		available: true,
		snapshot: models.WeatherSnapshot{
			Location: models.Location{Name: "Karur", Country: "IN"},
			Current: models.WeatherReading{
				Temperature: 27,
				Humidity:    85,
				Rainfall3h:  6,
				WindSpeed:   1,
				Condition:   models.CondRain,
				Description: "moderate rain",
			},
		},
	}
}

func TestHealth(t *testing.T) {
	e := newAssessServer(t, wetWeather())

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	status, data := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), "healthy")
}

func TestDiseaseRiskReturnsCombinedAssessment(t *testing.T) {
	e := newAssessServer(t, wetWeather())

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/weather/disease-risk?lat=10.96&lon=78.08", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)

	var resp RiskAssessmentResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, models.RiskCritical, resp.DeadHeart.RiskLevel)
	assert.Equal(t, 100.0, resp.OverallRisk.RiskScore)
	assert.Equal(t, "Karur", resp.WeatherData.Location.Name)
	assert.Equal(t, "moderate rain", resp.WeatherSummary.Conditions)
}

func TestDiseaseRiskWithoutAPIKeyReturns503(t *testing.T) {
	e := newAssessServer(t, &stubWeather{available: false})

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/weather/disease-risk?lat=1&lon=2", nil))

	status, _ := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestDiseaseRiskRejectsBadCoordinates(t *testing.T) {
	e := newAssessServer(t, wetWeather())

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/weather/disease-risk?lat=123&lon=78", nil))

	status, _ := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSpecificDiseaseRisk(t *testing.T) {
	e := newAssessServer(t, wetWeather())

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/weather/disease-risk/tiller?lat=10.96&lon=78.08", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)

	var resp DiseaseRiskResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, models.DiseaseTiller, resp.Disease)
	assert.NotEmpty(t, resp.RiskFactors)
}

func TestSpecificDiseaseRiskRejectsUnknownDisease(t *testing.T) {
	e := newAssessServer(t, wetWeather())

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/weather/disease-risk/rust?lat=1&lon=2", nil))

	status, _ := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestForecastValidatesDays(t *testing.T) {
	e := newAssessServer(t, wetWeather())

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/weather/forecast?lat=1&lon=2&days=9", nil))

	status, _ := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDiseaseRiskForecastMarksApproxMode(t *testing.T) {
	weather := wetWeather()
	weather.forecast = models.ForecastBundle{Days: []models.ForecastDay{
		{Date: "2026-03-02", TemperatureMin: 24, TemperatureMax: 33, TemperatureAvg: 29, HumidityMax: 60, MorningRH: 60, EveningRH: 55},
	}}
	e := newAssessServer(t, weather)

	rec := doRequest(e, httptest.NewRequest(http.MethodGet, "/weather/disease-risk-forecast?lat=1&lon=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)

	var resp ForecastRiskResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.True(t, resp.ApproxMode)
	assert.Equal(t, "approx_free", resp.RuleMode)
	require.Len(t, resp.ForecastData.Days, 1)
}

// --- prediction endpoints ---

func newPredictServer(t *testing.T, detector *stubDetector, scorer *stubScorer) *echo.Echo {
	t.Helper()
	e := echo.New()
	predictor := usecase.NewPredictorUseCase(detector, scorer, fusion.DefaultConfig(), noopMetrics{}, testLogger(t))
	NewPredictEchoHandler(testLogger(t), predictor).RegisterRoutes(e)
	return e
}

func multipartBody(t *testing.T, contentType, questions string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="leaf.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)

	if questions != "" {
		require.NoError(t, mw.WriteField("questions", questions))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestPredictDeadHeart(t *testing.T) {
	detector := &stubDetector{analysis: models.ImageAnalysis{Confidence: 0.8}}
	e := newPredictServer(t, detector, &stubScorer{prob: 0.6})

	body, contentType := multipartBody(t, "image/jpeg", `{"boreholes_plugged_excreta":"yes"}`)
	req := httptest.NewRequest(http.MethodPost, "/predict/deadheart", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)

	var resp models.PredictionResult
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, 0.72, resp.FinalScore)
	assert.Equal(t, "deadheart", resp.FinalLabel)
}

func TestPredictRejectsNonImageUpload(t *testing.T) {
	e := newPredictServer(t, &stubDetector{}, &stubScorer{})

	body, contentType := multipartBody(t, "text/plain", "")
	req := httptest.NewRequest(http.MethodPost, "/predict/tiller", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(e, req)

	status, data := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(data), "File must be an image")
}

func TestPredictRejectsMissingImage(t *testing.T) {
	e := newPredictServer(t, &stubDetector{}, &stubScorer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("questions", "{}"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict/deadheart", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := doRequest(e, req)

	status, _ := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPredictRejectsMalformedQuestions(t *testing.T) {
	e := newPredictServer(t, &stubDetector{}, &stubScorer{})

	body, contentType := multipartBody(t, "image/png", `["not","an","object"]`)
	req := httptest.NewRequest(http.MethodPost, "/predict/tiller", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(e, req)

	status, _ := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, status)
}
