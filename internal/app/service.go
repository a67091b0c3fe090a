// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/studyscore/internal/adapters/http/api"
	"github.com/okian/studyscore/internal/adapters/repository"
	"github.com/okian/studyscore/internal/domain/dataset"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/internal/domain/regression"
	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
	"github.com/okian/studyscore/pkg/metrics"
)

// Service trains the regression models at start and serves predictions,
// the dataset and model metrics.
type Service struct {
	mu sync.RWMutex

	// Configuration
	datasetPath  string
	databasePath string
	polyDegree   int
	curveMin     float64
	curveMax     float64
	curvePoints  int

	// Immutable after Start
	data   *dataset.Dataset
	models *regression.Set
	report model.PerformanceReport
	store  repository.Store

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		datasetPath:  "data/StudentPerformanceFactors.csv",
		databasePath: "studyscore.db",
		polyDegree:   2,
		curveMin:     0,
		curveMax:     30,
		curvePoints:  100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset, trains the models and opens the store.
func (s *Service) Start(ctx context.Context) error {
	const op = "service.start"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting prediction service...",
		logger.String("dataset", s.datasetPath))

	data, err := dataset.LoadFile(ctx, s.datasetPath)
	if err != nil {
		return errkind.Wrap(op, ErrStart, err)
	}
	xs, ys, err := data.Pairs(model.ColumnHoursStudied, model.ColumnExamScore)
	if err != nil {
		return errkind.Wrap(op, ErrStart, err)
	}
	models, err := regression.Train(xs, ys, s.polyDegree)
	if err != nil {
		return errkind.Wrap(op, ErrStart, fmt.Errorf("train on %d samples: %w", len(xs), err))
	}
	report, err := models.Report(xs, ys)
	if err != nil {
		return errkind.Wrap(op, ErrStart, err)
	}

	if s.store == nil {
		store, err := repository.Open(ctx, s.databasePath)
		if err != nil {
			return errkind.Wrap(op, ErrStart, err)
		}
		s.store = store
	}

	s.data, s.models, s.report = data, models, report
	s.started = true
	s.startedAt = time.Now()
	metrics.UpdateDatasetShape(data.Len(), len(data.Columns()))

	for _, kind := range models.Kinds() {
		m := report[kind]
		s.logger.Info(ctx, "model trained",
			logger.String("model_type", kind),
			logger.Float64("r2", m.R2),
			logger.Float64("mse", m.MSE))
	}
	s.logger.Info(ctx, "prediction service started",
		logger.Int("rows", data.Len()),
		logger.Int("samples", len(xs)))
	return nil
}

// Stop releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "prediction service stopped")
}

func (s *Service) snapshot() (*dataset.Dataset, *regression.Set, model.PerformanceReport, repository.Store, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.models, s.report, s.store, s.started
}

// Predict scores studyHours with the model for modelType and stores the
// student. Unknown or empty model types use the linear model.
func (s *Service) Predict(ctx context.Context, name string, studyHours float64, modelType string) (model.Student, error) {
	const op = "service.predict"
	_, models, _, store, ok := s.snapshot()
	if !ok {
		return model.Student{}, errkind.New(op, ErrNotStarted)
	}

	m := models.Resolve(modelType)
	student, err := store.Create(ctx, model.Student{
		Name:       name,
		StudyHours: studyHours,
		Score:      m.Predict(studyHours),
		ModelType:  m.Kind(),
	})
	if err != nil {
		return model.Student{}, err
	}
	s.logger.Debug(ctx, "student scored",
		logger.String("id", student.ID),
		logger.String("model_type", student.ModelType),
		logger.Float64("score", student.Score))
	return student, nil
}

// StudentByName returns the first stored prediction for name.
func (s *Service) StudentByName(ctx context.Context, name string) (model.Student, error) {
	const op = "service.student_by_name"
	_, _, _, store, ok := s.snapshot()
	if !ok {
		return model.Student{}, errkind.New(op, ErrNotStarted)
	}
	student, err := store.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Student{}, errkind.Wrap(op, api.ErrNotFound, err)
	}
	return student, err
}

// Rows returns the dataset rows.
func (s *Service) Rows(context.Context) []model.DataRow {
	data, _, _, _, ok := s.snapshot()
	if !ok {
		return nil
	}
	return data.Rows()
}

// Columns returns the dataset columns in file order.
func (s *Service) Columns(context.Context) []string {
	data, _, _, _, ok := s.snapshot()
	if !ok {
		return nil
	}
	return data.Columns()
}

// Performance returns R² and MSE per model type over the full dataset.
func (s *Service) Performance(context.Context) (model.PerformanceReport, error) {
	_, _, report, _, ok := s.snapshot()
	if !ok {
		return nil, errkind.New("service.performance", ErrNotStarted)
	}
	out := make(model.PerformanceReport, len(report))
	for k, v := range report {
		out[k] = v
	}
	return out, nil
}

// RegressionCurve samples the model for modelType over the configured
// hours range. Unknown model types use the linear model.
func (s *Service) RegressionCurve(_ context.Context, modelType string) []model.Point {
	_, models, _, _, ok := s.snapshot()
	if !ok {
		return nil
	}
	return regression.Curve(models.Resolve(modelType), s.curveMin, s.curveMax, s.curvePoints)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	data, models, _, store, started := s.snapshot()

	s.mu.RLock()
	stats := map[string]any{
		"started":           started,
		"dataset_path":      s.datasetPath,
		"polynomial_degree": s.polyDegree,
		"curve_points":      s.curvePoints,
	}
	if started {
		stats["uptime_seconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	s.mu.RUnlock()

	if !started {
		return stats
	}
	stats["rows"] = data.Len()
	stats["columns"] = len(data.Columns())
	stats["models"] = models.Kinds()
	if n, err := store.Count(ctx); err == nil {
		stats["students"] = n
		metrics.UpdateStudentsTotal(int(n))
	}
	return stats
}
