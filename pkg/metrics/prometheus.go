package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	assessments    *prometheus.CounterVec
	predictions    *prometheus.CounterVec
	riskScore      *prometheus.GaugeVec
	weatherFetches *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		assessments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caneguard_assessments_total",
				Help: "Total number of disease risk assessments",
			},
			[]string{"disease", "level"},
		),
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caneguard_predictions_total",
				Help: "Total number of fused image+questionnaire predictions",
			},
			[]string{"disease", "label"},
		),
		riskScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "caneguard_risk_score",
				Help: "Last assessed risk score for a monitored plot",
			},
			[]string{"disease", "plot"},
		),
		weatherFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caneguard_weather_fetches_total",
				Help: "Upstream weather API fetches by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caneguard_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caneguard_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAssessment records one per-disease risk assessment outcome.
func (r *Recorder) RecordAssessment(disease, level string) {
	r.assessments.WithLabelValues(disease, level).Inc()
}

// RecordPrediction records one fused prediction outcome.
func (r *Recorder) RecordPrediction(disease, label string) {
	r.predictions.WithLabelValues(disease, label).Inc()
}

// RecordRiskScore records the latest risk score for a monitored plot.
func (r *Recorder) RecordRiskScore(disease, plot string, score float64) {
	r.riskScore.WithLabelValues(disease, plot).Set(score)
}

// RecordWeatherFetch records an upstream weather API call.
func (r *Recorder) RecordWeatherFetch(endpoint, outcome string) {
	r.weatherFetches.WithLabelValues(endpoint, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
