// Package site serves the dashboard page and binds its controls to the
// form, chart and performance handlers.
package site

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/okian/studyscore/internal/dashboard"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
)

// ColumnSource lists the dataset columns offered as chart axes.
type ColumnSource interface {
	Columns(ctx context.Context) ([]string, error)
}

// Controller bundles the three dashboard handlers behind HTTP routes.
type Controller struct {
	form    *dashboard.FormHandler
	chart   *dashboard.ChartBuilder
	panel   *dashboard.PerformancePanel
	columns ColumnSource
	log     logger.Logger
}

// NewController wires the handlers that back the page.
func NewController(form *dashboard.FormHandler, chart *dashboard.ChartBuilder, panel *dashboard.PerformancePanel, columns ColumnSource, log logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	return &Controller{form: form, chart: chart, panel: panel, columns: columns, log: log.Named("site")}
}

// Register attaches the dashboard routes to mux.
func Register(mux *http.ServeMux, c *Controller) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /{$}", c.HandleIndex)
	mux.HandleFunc("POST /ui/predict", c.HandlePredict)
	mux.HandleFunc("GET /ui/chart.png", c.HandleChart)
	mux.HandleFunc("GET /ui/performance", c.HandlePerformance)
}

type pageData struct {
	Columns      []string
	ModelTypes   []string
	ChartTypes   []string
	DefaultX     string
	DefaultY     string
	InitialChart string
}

// HandleIndex renders the page. The initial chart plots hours studied
// against exam score.
func (c *Controller) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cols, err := c.columns.Columns(ctx)
	if err != nil {
		// The page still renders; the chart shows its own failure.
		c.log.Warn(ctx, "columns unavailable", logger.Error(err))
	}

	q := url.Values{}
	q.Set("x_axis", model.ColumnHoursStudied)
	q.Set("y_axis", model.ColumnExamScore)
	q.Set("chart_type", string(dashboard.ChartScatter))
	q.Set("model_type", model.ModelLinear)

	data := pageData{
		Columns:      cols,
		ModelTypes:   []string{model.ModelLinear, model.ModelPolynomial},
		ChartTypes:   []string{string(dashboard.ChartScatter), string(dashboard.ChartBar), string(dashboard.ChartLine)},
		DefaultX:     model.ColumnHoursStudied,
		DefaultY:     model.ColumnExamScore,
		InitialChart: "/ui/chart.png?" + q.Encode(),
	}
	c.render(w, r, http.StatusOK, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return pageTmpl.Execute(buf, data)
	})
}

// HandlePredict submits the form and returns the result fragment.
func (c *Controller) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in := dashboard.FormInput{
		Name:       r.PostForm.Get("name"),
		StudyHours: r.PostForm.Get("study_hours"),
		ModelType:  modelTypeOf(r.PostForm),
	}
	view := &resultFragment{}
	// Failures are rendered into the fragment.
	_, _ = c.form.Submit(r.Context(), in, view)
	c.render(w, r, http.StatusOK, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return resultTmpl.Execute(buf, view)
	})
}

// HandleChart rebuilds the chart and returns the canvas as PNG. A failed
// build still answers with the placeholder image.
func (c *Controller) HandleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := dashboard.Selection{
		XAxis:     q.Get("x_axis"),
		YAxis:     q.Get("y_axis"),
		ChartType: q.Get("chart_type"),
		ModelType: modelTypeOf(q),
	}
	if sel.ChartType == "" {
		sel.ChartType = string(dashboard.ChartScatter)
	}

	frame, err := c.chart.UpdateFrame(r.Context(), sel)
	if err != nil {
		w.Header().Set("X-Chart-Status", "error")
	} else {
		w.Header().Set("X-Chart-Status", "ok")
	}
	if len(frame) == 0 {
		http.Error(w, MsgChartUnavailable, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(frame)
}

// MsgChartUnavailable is returned when not even the placeholder could be drawn.
const MsgChartUnavailable = "chart unavailable"

// HandlePerformance renders the performance panel for model_type.
func (c *Controller) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	view := &panelFragment{}
	_, _ = c.panel.Show(r.Context(), modelTypeOf(r.URL.Query()), view)
	c.render(w, r, http.StatusOK, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return panelTmpl.Execute(buf, view)
	})
}

func (c *Controller) render(w http.ResponseWriter, r *http.Request, status int, contentType string, exec func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := exec(&buf); err != nil {
		c.log.Error(r.Context(), "template failed",
			logger.String("path", r.URL.Path),
			logger.Error(errkind.Wrap("site.render", ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func modelTypeOf(v url.Values) string {
	if mt := v.Get("model_type"); mt != "" {
		return mt
	}
	return model.ModelLinear
}
