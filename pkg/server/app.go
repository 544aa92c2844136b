package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CaneGuard/internal/usecase"
	"CaneGuard/pkg/config"
	xhttp "CaneGuard/pkg/http"
	applogger "CaneGuard/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	monitor     *usecase.RiskMonitor
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	closers     []func() error
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, handler xhttp.Handler, monitor *usecase.RiskMonitor) *App {
	return &App{
		cfg:         cfg,
		monitor:     monitor,
		httpHandler: handler,
	}
}

// AddCloser registers a resource to close during shutdown, in LIFO order.
func (a *App) AddCloser(close func() error) {
	a.closers = append(a.closers, close)
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		return err
	}

	serverOpts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(a.cfg.Server.CORSOrigins),
		xhttp.WithMetricsLogger(l),
	}
	if a.cfg.Metrics.Path != "" {
		serverOpts = append(serverOpts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}
	a.httpServer = xhttp.NewServer(a.httpHandler, serverOpts...)

	if a.monitor != nil {
		if err := a.monitor.Start(ctx); err != nil {
			l.Error("risk monitor start error", applogger.Error(err))
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	cancel()
	return a.shutdown(l)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(l *applogger.Logger) error {
	// The monitor loop observes the cancelled run context; wait for it to drain.
	if a.monitor != nil {
		a.monitor.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			l.Warn("resource close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
