package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ModelLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "caneguard",
			Subsystem: "model",
			Name:      "latency_seconds",
			Help:      "Latency of model runtime calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ModelErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "caneguard",
			Subsystem: "model",
			Name:      "errors_total",
			Help:      "Errors by model runtime endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ModelLatency, ModelErrors)
	})
}
