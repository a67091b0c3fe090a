// Package model contains domain models passed between layers.
package model

import "time"

// Model types understood by the prediction service.
const (
	ModelLinear     = "linear"
	ModelPolynomial = "polynomial"
)

// Canonical dataset columns. The regression models map hours to score.
const (
	ColumnHoursStudied = "Hours_Studied"
	ColumnExamScore    = "Exam_Score"
)

// PredictionRequest is the body of POST /predict.
type PredictionRequest struct {
	Name       string  `json:"name"`
	StudyHours float64 `json:"study_hours"`
}

// PredictionResponse is the body returned by a successful POST /predict.
type PredictionResponse struct {
	Name       string  `json:"name"`
	StudyHours float64 `json:"study_hours"`
	Score      float64 `json:"score"`
}

// ErrorResponse is the body of every non-success API response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Student is a persisted prediction.
type Student struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StudyHours float64   `json:"study_hours"`
	Score      float64   `json:"score"`
	ModelType  string    `json:"model_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// Point is one {x, y} sample of a chart or regression curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Metrics holds goodness-of-fit figures for one model.
type Metrics struct {
	R2  float64 `json:"r2"`
	MSE float64 `json:"mse"`
}

// PerformanceReport maps model type to its metrics.
type PerformanceReport map[string]Metrics
