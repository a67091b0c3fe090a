package dashboard

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/studyscore/internal/adapters/http/client"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
	"github.com/okian/studyscore/pkg/metrics"
)

// Messages shown in the result area.
const (
	MsgInvalidInput     = "Please enter valid data."
	MsgPredicting       = "Predicting score..."
	MsgPredictionFailed = "Prediction failed."
	MsgConnectionError  = "Error connecting to server."
)

// FormInput is the raw form state.
type FormInput struct {
	Name       string
	StudyHours string
	ModelType  string
}

// ResultView is the result area of the form.
type ResultView interface {
	Hide()
	ShowLoading(msg string)
	ShowResult(msg string, isError bool)
}

// FormHandler validates form input and submits predictions.
type FormHandler struct {
	api   API
	log   logger.Logger
	state stateCell
}

// NewFormHandler returns a handler submitting through api.
func NewFormHandler(api API, opts ...Option) *FormHandler {
	o := applyOptions(opts)
	return &FormHandler{
		api:   api,
		log:   o.log.Named("form"),
		state: newStateCell("predict"),
	}
}

// State returns the state of the latest submission.
func (h *FormHandler) State() State { return h.state.get() }

// ParseHours parses s as a finite number of hours.
func ParseHours(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// BuildRequest validates in and returns the request body to send.
func BuildRequest(in FormInput) (model.PredictionRequest, error) {
	const op = "dashboard.build_request"
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.PredictionRequest{}, errkind.Wrap(op, ErrValidation, fmt.Errorf("empty name"))
	}
	hours, ok := ParseHours(in.StudyHours)
	if !ok {
		return model.PredictionRequest{}, errkind.Wrap(op, ErrValidation, fmt.Errorf("study hours %q", in.StudyHours))
	}
	return model.PredictionRequest{Name: name, StudyHours: hours}, nil
}

// FormatScore renders a successful prediction.
func FormatScore(score float64, modelType string) string {
	return fmt.Sprintf("Predicted Score: %.2f (%s model)", score, modelType)
}

// Submit runs one form submission and renders its outcome into view.
// Invalid input is reported without contacting the server.
func (h *FormHandler) Submit(ctx context.Context, in FormInput, view ResultView) (model.PredictionResponse, error) {
	const op = "dashboard.submit"
	view.Hide()

	req, err := BuildRequest(in)
	if err != nil {
		h.state.set(StateError)
		view.ShowResult(MsgInvalidInput, true)
		return model.PredictionResponse{}, err
	}

	h.state.set(StateLoading)
	view.ShowLoading(MsgPredicting)

	resp, err := h.api.Predict(ctx, req, in.ModelType)
	if err != nil {
		h.state.set(StateError)
		err = classify(op, err)
		msg := MsgConnectionError
		if errkind.KindOf(err) == ErrRequest {
			msg = MsgPredictionFailed
			if detail := client.DetailOf(err); detail != "" {
				msg = detail
			}
		}
		h.log.Warn(ctx, "prediction failed",
			logger.String("name", req.Name),
			logger.Float64("study_hours", req.StudyHours),
			logger.Error(err))
		metrics.RecordErrorByType("prediction", "warning")
		view.ShowResult(msg, true)
		return model.PredictionResponse{}, err
	}

	h.state.set(StateSuccess)
	view.ShowResult(FormatScore(resp.Score, in.ModelType), false)
	return resp, nil
}
