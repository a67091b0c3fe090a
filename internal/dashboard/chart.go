package dashboard

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
	"github.com/okian/studyscore/pkg/metrics"
)

// MsgChartFailed is drawn on the canvas when a chart cannot be built.
const MsgChartFailed = "Failed to load data for chart."

// Renderer draws chart data and placeholders as images.
type Renderer interface {
	Render(w io.Writer, data ChartData) error
	Placeholder(w io.Writer, msg string) error
}

// Selection is the chart controls' state.
type Selection struct {
	XAxis     string
	YAxis     string
	ChartType string
	ModelType string
}

// Canvas is the drawing surface charts are bound to.
type Canvas struct {
	mu    sync.RWMutex
	frame []byte
	bound int
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas { return &Canvas{} }

// Frame returns the last image drawn on the canvas.
func (c *Canvas) Frame() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

// Bindings returns the number of live charts bound to the canvas.
func (c *Canvas) Bindings() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bound
}

func (c *Canvas) paint(frame []byte) {
	c.mu.Lock()
	c.frame = frame
	c.mu.Unlock()
}

func (c *Canvas) bind(frame []byte) {
	c.mu.Lock()
	c.bound++
	c.frame = frame
	c.mu.Unlock()
}

func (c *Canvas) unbind() {
	c.mu.Lock()
	c.bound--
	c.mu.Unlock()
}

// Chart is a rendered chart bound to a canvas.
type Chart struct {
	id        uint64
	data      ChartData
	frame     []byte
	canvas    *Canvas
	once      sync.Once
	destroyed atomic.Bool
}

// ID returns the chart's sequence number.
func (c *Chart) ID() uint64 { return c.id }

// Data returns the shaped data the chart was drawn from.
func (c *Chart) Data() ChartData { return c.data }

// Frame returns the rendered image.
func (c *Chart) Frame() []byte { return c.frame }

// Destroyed reports whether Destroy was called.
func (c *Chart) Destroyed() bool { return c.destroyed.Load() }

// Destroy unbinds the chart from its canvas. It is idempotent.
func (c *Chart) Destroy() {
	c.once.Do(func() {
		c.destroyed.Store(true)
		c.canvas.unbind()
	})
}

// ChartBuilder owns the single chart slot of a canvas.
type ChartBuilder struct {
	api      API
	renderer Renderer
	canvas   *Canvas
	log      logger.Logger
	state    stateCell

	mu      sync.Mutex
	current *Chart
	seq     atomic.Uint64
}

// NewChartBuilder returns a builder drawing onto canvas.
func NewChartBuilder(api API, r Renderer, canvas *Canvas, opts ...Option) *ChartBuilder {
	o := applyOptions(opts)
	if canvas == nil {
		canvas = NewCanvas()
	}
	return &ChartBuilder{
		api:      api,
		renderer: r,
		canvas:   canvas,
		log:      o.log.Named("chart"),
		state:    newStateCell("chart"),
	}
}

// Canvas returns the builder's canvas.
func (b *ChartBuilder) Canvas() *Canvas { return b.canvas }

// State returns the state of the latest update.
func (b *ChartBuilder) State() State { return b.state.get() }

// Current returns the active chart, or nil.
func (b *ChartBuilder) Current() *Chart {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Update destroys the active chart, then fetches, shapes and draws a new
// one for sel. On failure the canvas shows MsgChartFailed and no chart is
// active.
func (b *ChartBuilder) Update(ctx context.Context, sel Selection) (*Chart, error) {
	chart, _, err := b.update(ctx, sel)
	return chart, err
}

// UpdateFrame is Update returning the image this call drew: the chart on
// success, the placeholder on failure. Unlike Canvas().Frame() it is not
// affected by concurrent updates.
func (b *ChartBuilder) UpdateFrame(ctx context.Context, sel Selection) ([]byte, error) {
	_, frame, err := b.update(ctx, sel)
	return frame, err
}

func (b *ChartBuilder) update(ctx context.Context, sel Selection) (*Chart, []byte, error) {
	const op = "dashboard.update_chart"
	start := time.Now()
	b.state.set(StateLoading)
	b.release()

	data, frame, err := b.build(ctx, sel)
	metrics.RecordChartRenderLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		b.state.set(StateError)
		metrics.RecordChartRender(sel.ChartType, "error")
		b.log.Warn(ctx, "chart update failed",
			logger.String("x_axis", sel.XAxis),
			logger.String("y_axis", sel.YAxis),
			logger.String("chart_type", sel.ChartType),
			logger.Error(err))
		return nil, b.drawPlaceholder(ctx), errkind.Wrap(op, ErrChartRender, err)
	}

	chart := &Chart{
		id:     b.seq.Add(1),
		data:   data,
		frame:  frame,
		canvas: b.canvas,
	}

	b.mu.Lock()
	// A concurrent update may have installed a chart since release.
	if b.current != nil {
		b.current.Destroy()
	}
	b.canvas.bind(frame)
	b.current = chart
	b.mu.Unlock()

	b.state.set(StateSuccess)
	metrics.RecordChartRender(string(data.Type), "success")
	return chart, frame, nil
}

func (b *ChartBuilder) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil {
		b.current.Destroy()
		b.current = nil
	}
}

func (b *ChartBuilder) build(ctx context.Context, sel Selection) (ChartData, []byte, error) {
	ct, err := ParseChartType(sel.ChartType)
	if err != nil {
		return ChartData{}, nil, err
	}

	rows, err := b.api.Dataset(ctx)
	if err != nil {
		return ChartData{}, nil, classify("dashboard.fetch_dataset", err)
	}

	data, err := Shape(rows, sel.XAxis, sel.YAxis, ct)
	if err != nil {
		return ChartData{}, nil, err
	}

	if WantsRegression(sel.XAxis, sel.YAxis) {
		pts, err := b.api.RegressionCurve(ctx, sel.ModelType)
		if err != nil {
			return ChartData{}, nil, classify("dashboard.fetch_curve", err)
		}
		data.Datasets = append(data.Datasets, RegressionDataset(sel.ModelType, pts))
		metrics.RecordChartOverlay(sel.ModelType)
	}

	var buf bytes.Buffer
	if err := b.renderer.Render(&buf, data); err != nil {
		return ChartData{}, nil, err
	}
	return data, buf.Bytes(), nil
}

func (b *ChartBuilder) drawPlaceholder(ctx context.Context) []byte {
	var buf bytes.Buffer
	if err := b.renderer.Placeholder(&buf, MsgChartFailed); err != nil {
		b.log.Error(ctx, "placeholder render failed", logger.Error(err))
		b.canvas.paint(nil)
		return nil
	}
	frame := buf.Bytes()
	b.canvas.paint(frame)
	return frame
}
