package api

import (
	"net/http"

	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/logger"
)

// ModelHandler serves model metrics and regression curves.
type ModelHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewModelHandler creates a new model handler.
func NewModelHandler(deps Dependencies, log logger.Logger) *ModelHandler {
	return &ModelHandler{deps: deps, log: log}
}

// HandlePerformance handles GET /model/performance requests.
func (h *ModelHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.Performance(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "performance report failed", logger.Error(err))
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleRegressionData handles GET /model/regression-data requests. The
// model_type query parameter defaults to linear.
func (h *ModelHandler) HandleRegressionData(w http.ResponseWriter, r *http.Request) {
	modelType := r.URL.Query().Get("model_type")
	if modelType == "" {
		modelType = model.ModelLinear
	}
	pts := h.deps.RegressionCurve(r.Context(), modelType)
	if pts == nil {
		pts = []model.Point{}
	}
	writeJSON(w, http.StatusOK, pts)
}
