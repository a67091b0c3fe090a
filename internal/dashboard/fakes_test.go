package dashboard

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/okian/studyscore/internal/domain/model"
)

type fakeAPI struct {
	mu sync.Mutex

	predictCalls []model.PredictionRequest
	predictModel []string
	predictResp  model.PredictionResponse
	predictErr   error

	datasetCalls int
	rows         []model.DataRow
	datasetErr   error

	curveCalls []string
	curve      []model.Point
	curveErr   error

	report    model.PerformanceReport
	reportErr error
}

func (f *fakeAPI) Predict(_ context.Context, req model.PredictionRequest, modelType string) (model.PredictionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.predictCalls = append(f.predictCalls, req)
	f.predictModel = append(f.predictModel, modelType)
	return f.predictResp, f.predictErr
}

func (f *fakeAPI) Dataset(context.Context) ([]model.DataRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.datasetCalls++
	return f.rows, f.datasetErr
}

func (f *fakeAPI) RegressionCurve(_ context.Context, modelType string) ([]model.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.curveCalls = append(f.curveCalls, modelType)
	return f.curve, f.curveErr
}

func (f *fakeAPI) Performance(context.Context) (model.PerformanceReport, error) {
	return f.report, f.reportErr
}

// recordingView implements ResultView and PanelView.
type recordingView struct {
	events  []string
	message string
	isError bool
	cards   []MetricCard
}

func (v *recordingView) Hide() { v.events = append(v.events, "hide") }

func (v *recordingView) ShowLoading(msg string) {
	v.events = append(v.events, "loading")
	v.message = msg
}

func (v *recordingView) ShowResult(msg string, isError bool) {
	v.events = append(v.events, "result")
	v.message, v.isError = msg, isError
}

func (v *recordingView) ShowCards(cards []MetricCard) {
	v.events = append(v.events, "cards")
	v.cards = cards
}

func (v *recordingView) ShowError(msg string) {
	v.events = append(v.events, "error")
	v.message, v.isError = msg, true
}

// stubRenderer records what it was asked to draw.
type stubRenderer struct {
	mu           sync.Mutex
	rendered     []ChartData
	placeholders []string
	err          error
}

var errStubRender = errors.New("stub render failure")

func (r *stubRenderer) Render(w io.Writer, data ChartData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rendered = append(r.rendered, data)
	_, err := w.Write([]byte("chart:" + string(data.Type)))
	return err
}

func (r *stubRenderer) Placeholder(w io.Writer, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placeholders = append(r.placeholders, msg)
	_, err := w.Write([]byte("placeholder:" + msg))
	return err
}

func row(kv ...any) model.DataRow {
	r := model.DataRow{}
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case nil:
			r[key] = model.Null()
		case int:
			r[key] = model.Number(float64(v))
		case float64:
			r[key] = model.Number(v)
		case string:
			r[key] = model.Text(v)
		case bool:
			r[key] = model.Bool(v)
		}
	}
	return r
}
