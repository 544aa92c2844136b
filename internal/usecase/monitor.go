package usecase

import (
	"context"
	"time"

	drepo "CaneGuard/internal/domain/repository"
	"CaneGuard/pkg/config"
	"CaneGuard/pkg/logger"
)

// RiskMonitor periodically assesses the configured plots so dashboards can
// watch risk trends without driving the HTTP API.
type RiskMonitor struct {
	assessor *AssessorUseCase
	metrics  drepo.Metrics
	log      *logger.Logger
	plots    []config.Plot
	interval time.Duration
	done     chan struct{}
}

func NewRiskMonitor(assessor *AssessorUseCase, metrics drepo.Metrics, log *logger.Logger, cfg *config.Config) *RiskMonitor {
	return &RiskMonitor{
		assessor: assessor,
		metrics:  metrics,
		log:      log,
		plots:    cfg.Monitor.Plots,
		interval: cfg.Monitor.Interval,
		done:     make(chan struct{}),
	}
}

func (m *RiskMonitor) Start(ctx context.Context) error {
	if len(m.plots) == 0 {
		m.log.Info("risk monitor disabled, no plots configured")
		close(m.done)
		return nil
	}
	if !m.assessor.WeatherAvailable() {
		m.log.Warn("risk monitor disabled, weather provider not configured")
		close(m.done)
		return nil
	}
	go m.run(ctx)
	return nil
}

func (m *RiskMonitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

func (m *RiskMonitor) sweep(ctx context.Context) {
	for _, plot := range m.plots {
		combined, _, err := m.assessor.AssessCombined(ctx, plot.Lat, plot.Lon)
		if err != nil {
			m.log.Error("plot assessment failed", logger.String("plot", plot.Name), logger.Error(err))
			m.metrics.RecordError("monitor_sweep")
			continue
		}

		m.metrics.RecordRiskScore(string(combined.DeadHeart.Disease), plot.Name, combined.DeadHeart.RiskScore)
		m.metrics.RecordRiskScore(string(combined.Tiller.Disease), plot.Name, combined.Tiller.RiskScore)

		if combined.OverallRisk.RiskLevel.Actionable() {
			m.log.Warn("plot at elevated risk",
				logger.String("plot", plot.Name),
				logger.String("level", string(combined.OverallRisk.RiskLevel)),
				logger.Float64("score", combined.OverallRisk.RiskScore))
		}
	}
}

// Stop blocks until the monitor loop has exited.
func (m *RiskMonitor) Stop() {
	<-m.done
}
