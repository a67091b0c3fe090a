package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
	"github.com/okian/studyscore/pkg/metrics"
)

// maxBodyBytes bounds the size of a prediction request body.
const maxBodyBytes = 1 << 20

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps     Dependencies
	validate *validator.Validate
	log      logger.Logger
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(deps Dependencies, log logger.Logger) *PredictHandler {
	return &PredictHandler{deps: deps, validate: newValidator(), log: log}
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	ctx := r.Context()
	modelType := r.URL.Query().Get("model_type")

	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		metrics.RecordPrediction(modelType, "bad_request")
		writeDetail(w, http.StatusBadRequest, errkind.Wrap(op, ErrBadRequest, err).Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		metrics.RecordPrediction(modelType, "invalid")
		writeDetail(w, http.StatusUnprocessableEntity, describe(err))
		return
	}

	start := time.Now()
	student, err := h.deps.Predict(ctx, req.Name, *req.StudyHours, modelType)
	if err != nil {
		metrics.RecordPrediction(modelType, "error")
		h.log.Error(ctx, "prediction failed",
			logger.String("name", req.Name),
			logger.Float64("study_hours", *req.StudyHours),
			logger.Error(err))
		writeDetail(w, http.StatusInternalServerError, errkind.Wrap(op, ErrInternal, err).Error())
		return
	}
	metrics.RecordPrediction(student.ModelType, "success")
	metrics.RecordPredictionLatency(student.ModelType, float64(time.Since(start).Milliseconds()))

	writeJSON(w, http.StatusOK, model.PredictionResponse{
		Name:       student.Name,
		StudyHours: student.StudyHours,
		Score:      student.Score,
	})
}
