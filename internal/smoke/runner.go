package smoke

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/studyscore/internal/adapters/http/client"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/logger"
)

// Run executes the complete smoke test against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting studyscore smoke test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("students", cfg.Students),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
		logger.Bool("verbose", cfg.Verbose))

	api := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log.Named("client")))

	// Step 1: health
	if err := checkServiceHealth(ctx, cfg); err != nil {
		return err
	}

	// Step 2: predictions
	students := generateStudents(cfg.Students)
	stats.Generated = len(students)
	results, err := submitStudents(ctx, api, cfg, students, stats)
	if err != nil {
		return err
	}
	if err := verifyMonotonic(results); err != nil {
		return err
	}
	log.Info(ctx, "linear predictions are monotonic in study hours")

	// Step 3: performance report
	report, err := api.Performance(ctx)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	if err := verifyPerformance(report); err != nil {
		return err
	}
	for kind, m := range report {
		log.Info(ctx, "model performance",
			logger.String("model_type", kind),
			logger.Float64("r2", m.R2),
			logger.Float64("mse", m.MSE))
	}

	// Step 4: regression curves
	for _, kind := range []string{model.ModelLinear, model.ModelPolynomial} {
		points, err := api.RegressionCurve(ctx, kind)
		if err != nil {
			return fmt.Errorf("regression curve %s: %w", kind, err)
		}
		if err := verifyCurve(kind, points, cfg.CurvePoints); err != nil {
			return err
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	displayFinalStats(stats)
	log.Info(ctx, "smoke test completed successfully")
	return nil
}

// checkServiceHealth verifies the service answers /healthz.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_ = resp.Body.Close()

	// The service answers with Prometheus metrics; any 200 is healthy.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Succeeded) / stats.Duration.Seconds()
	}
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("predictionsPerSecond", perSecond))
}
