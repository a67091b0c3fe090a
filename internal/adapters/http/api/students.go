package api

import (
	"errors"
	"net/http"

	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
)

// StudentHandler serves stored predictions.
type StudentHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewStudentHandler creates a new student lookup handler.
func NewStudentHandler(deps Dependencies, log logger.Logger) *StudentHandler {
	return &StudentHandler{deps: deps, log: log}
}

// HandleGet handles GET /students/{name} requests.
func (h *StudentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.student"
	ctx := r.Context()
	name := r.PathValue("name")

	student, err := h.deps.StudentByName(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		writeDetail(w, http.StatusNotFound, "student not found")
	case err != nil:
		h.log.Error(ctx, "student lookup failed", logger.String("name", name), logger.Error(err))
		writeDetail(w, http.StatusInternalServerError, errkind.Wrap(op, ErrInternal, err).Error())
	default:
		writeJSON(w, http.StatusOK, student)
	}
}
