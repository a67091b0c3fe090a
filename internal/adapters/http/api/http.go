// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Predict scores hours with the model for modelType and persists the
	// student. Unknown model types fall back to linear.
	Predict(ctx context.Context, name string, studyHours float64, modelType string) (model.Student, error)

	// StudentByName returns the first stored prediction for name. A miss
	// wraps ErrNotFound.
	StudentByName(ctx context.Context, name string) (model.Student, error)

	// Read operations expose the dataset and the trained models.
	Rows(ctx context.Context) []model.DataRow
	Columns(ctx context.Context) []string
	Performance(ctx context.Context) (model.PerformanceReport, error)
	RegressionCurve(ctx context.Context, modelType string) []model.Point
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	predictHandler *PredictHandler
	dataHandler    *DataHandler
	modelHandler   *ModelHandler
	studentHandler *StudentHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		predictHandler: NewPredictHandler(deps, log.Named("api")),
		dataHandler:    NewDataHandler(deps),
		modelHandler:   NewModelHandler(deps, log.Named("api")),
		studentHandler: NewStudentHandler(deps, log.Named("api")),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("GET /students/{name}", MetricsMiddleware(s.studentHandler.HandleGet, "students"))
	mux.HandleFunc("GET /data", MetricsMiddleware(s.dataHandler.HandleRows, "data"))
	mux.HandleFunc("GET /data/columns", MetricsMiddleware(s.dataHandler.HandleColumns, "data_columns"))
	mux.HandleFunc("GET /model/performance", MetricsMiddleware(s.modelHandler.HandlePerformance, "model_performance"))
	mux.HandleFunc("GET /model/regression-data", MetricsMiddleware(s.modelHandler.HandleRegressionData, "model_regression_data"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, model.ErrorResponse{Detail: detail})
}
