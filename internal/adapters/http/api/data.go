package api

import (
	"net/http"

	"github.com/okian/studyscore/internal/domain/model"
)

// DataHandler serves the training dataset.
type DataHandler struct {
	deps Dependencies
}

// NewDataHandler creates a new dataset handler.
func NewDataHandler(deps Dependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

// HandleRows handles GET /data requests. Empty cells are encoded as null.
func (h *DataHandler) HandleRows(w http.ResponseWriter, r *http.Request) {
	rows := h.deps.Rows(r.Context())
	if rows == nil {
		rows = []model.DataRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

type columnsResponse struct {
	Columns []string `json:"columns"`
}

// HandleColumns handles GET /data/columns requests.
func (h *DataHandler) HandleColumns(w http.ResponseWriter, r *http.Request) {
	cols := h.deps.Columns(r.Context())
	if cols == nil {
		cols = []string{}
	}
	writeJSON(w, http.StatusOK, columnsResponse{Columns: cols})
}
