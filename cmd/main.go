package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/studyscore/internal/adapters/http/api"
	"github.com/okian/studyscore/internal/adapters/http/client"
	"github.com/okian/studyscore/internal/adapters/http/site"
	"github.com/okian/studyscore/internal/adapters/http/swagger"
	service "github.com/okian/studyscore/internal/app"
	"github.com/okian/studyscore/internal/config"
	"github.com/okian/studyscore/internal/dashboard"
	"github.com/okian/studyscore/pkg/logger"
	"github.com/okian/studyscore/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 15 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// logger isn't configured yet
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(
		service.WithLogger(log.Named("service")),
		service.WithDatasetPath(cfg.DatasetPath),
		service.WithDatabasePath(cfg.DatabasePath),
		service.WithPolynomialDegree(cfg.PolynomialDegree),
		service.WithCurve(cfg.CurveMin, cfg.CurveMax, cfg.CurvePoints),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return err
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	mux := http.NewServeMux()
	swagger.Register(mux)
	api.NewServer(svc, svc, log.Named("api")).Register(mux)
	registerDashboard(mux, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("api_base_url", cfg.ResolvedAPIBaseURL()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
	return nil
}

// registerDashboard wires the three UI handlers to the prediction API over
// HTTP and binds them to the page routes.
func registerDashboard(mux *http.ServeMux, cfg *config.Config) {
	log := logger.Get()
	apiClient := client.New(cfg.ResolvedAPIBaseURL(),
		client.WithTimeout(cfg.RequestTimeout()),
		client.WithLogger(log.Named("client")),
	)
	uiLog := dashboard.WithLogger(log.Named("dashboard"))
	renderer := dashboard.NewPNGRenderer(cfg.ChartWidth, cfg.ChartHeight)

	site.Register(mux, site.NewController(
		dashboard.NewFormHandler(apiClient, uiLog),
		dashboard.NewChartBuilder(apiClient, renderer, dashboard.NewCanvas(), uiLog),
		dashboard.NewPerformancePanel(apiClient, uiLog),
		apiClient,
		log.Named("site"),
	))
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes the stored students gauge.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats updates the students gauge as a side effect.
			svc.GetStats(ctx)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
