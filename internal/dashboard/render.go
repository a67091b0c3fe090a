package dashboard

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default canvas size in pixels.
const (
	DefaultChartWidth  = 900
	DefaultChartHeight = 480
)

var (
	placeholderText = color.RGBA{R: 0x6c, G: 0x75, B: 0x7d, A: 0xff}
)

// PNGRenderer draws charts with go-chart and encodes them as PNG.
type PNGRenderer struct {
	width  int
	height int
}

// NewPNGRenderer returns a renderer for a width x height canvas.
func NewPNGRenderer(width, height int) *PNGRenderer {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}
	return &PNGRenderer{width: width, height: height}
}

// Size returns the canvas size.
func (r *PNGRenderer) Size() (width, height int) { return r.width, r.height }

// Render implements Renderer.
func (r *PNGRenderer) Render(w io.Writer, data ChartData) error {
	return r.graph(data).Render(chart.PNG, w)
}

func (r *PNGRenderer) graph(data ChartData) *chart.Chart {
	var (
		series []chart.Series
		xs, ys bounds
	)
	for _, ds := range data.Datasets {
		s, ok := seriesFor(data, ds, &xs, &ys)
		if ok {
			series = append(series, s)
		}
	}
	empty := len(series) == 0

	xAxis := chart.XAxis{Name: data.XAxis}
	if len(data.Labels) > 0 {
		// Category ticks set the x range, so the outer half-slots carry
		// unlabelled ticks; one category would otherwise give a zero range.
		n := float64(len(data.Labels))
		xs.add(-0.5)
		xs.add(n - 0.5)
		ticks := make([]chart.Tick, 0, len(data.Labels)+2)
		ticks = append(ticks, chart.Tick{Value: -0.5})
		for i, l := range data.Labels {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
		}
		ticks = append(ticks, chart.Tick{Value: n - 0.5})
		xAxis.Ticks = ticks
	}
	xRange, yRange := xs.rangeOf(), ys.rangeOf()
	xAxis.Range = xRange

	if empty {
		// go-chart needs one visible series; an undrawn anchor yields bare axes.
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{xRange.Min, xRange.Max},
			YValues: []float64{yRange.Min, yRange.Max},
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: chart.Disabled},
		})
	}

	graph := &chart.Chart{
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: data.YAxis, Range: yRange},
		Series:     series,
	}
	if !empty {
		graph.Elements = []chart.Renderable{chart.Legend(graph)}
	}
	return graph
}

func seriesFor(data ChartData, ds Dataset, xs, ys *bounds) (chart.Series, bool) {
	stroke := toDrawing(ds.Color, 255)

	if ds.Points != nil {
		if len(ds.Points) == 0 {
			return nil, false
		}
		cs := chart.ContinuousSeries{Name: ds.Label}
		for _, p := range ds.Points {
			cs.XValues = append(cs.XValues, p.X)
			cs.YValues = append(cs.YValues, p.Y)
			xs.add(p.X)
			ys.add(p.Y)
		}
		if ds.ShowLine {
			cs.Style = chart.Style{StrokeColor: stroke, StrokeWidth: 3}
		} else {
			cs.Style = chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    toDrawing(ds.Color, 178),
			}
		}
		return cs, true
	}

	if len(ds.Values) == 0 {
		return nil, false
	}
	cs := chart.ContinuousSeries{Name: ds.Label}
	for i, v := range ds.Values {
		cs.XValues = append(cs.XValues, float64(i))
		cs.YValues = append(cs.YValues, v)
		ys.add(v)
	}

	if data.Type == ChartBar {
		ys.add(0)
		return chart.HistogramSeries{
			Name: ds.Label,
			Style: chart.Style{
				StrokeColor: stroke,
				StrokeWidth: 1,
				FillColor:   toDrawing(ds.Color, 178),
			},
			InnerSeries: cs,
		}, true
	}

	cs.Style = chart.Style{StrokeColor: stroke, StrokeWidth: 2, DotWidth: 3, DotColor: stroke}
	if ds.Fill {
		cs.Style.FillColor = toDrawing(ds.Color, 51)
	}
	return cs, true
}

// bounds tracks the extent of one axis.
type bounds struct {
	min, max float64
	set      bool
}

func (b *bounds) add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !b.set {
		b.min, b.max, b.set = v, v, true
		return
	}
	b.min = math.Min(b.min, v)
	b.max = math.Max(b.max, v)
}

// rangeOf returns the axis range, widened when all values coincide since
// go-chart rejects zero-width ranges.
func (b *bounds) rangeOf() *chart.ContinuousRange {
	if !b.set {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if b.min == b.max {
		return &chart.ContinuousRange{Min: b.min - 1, Max: b.max + 1}
	}
	return &chart.ContinuousRange{Min: b.min, Max: b.max}
}

func toDrawing(c color.RGBA, alpha uint8) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Placeholder implements Renderer. It centers msg on a blank canvas.
func (r *PNGRenderer) Placeholder(w io.Writer, msg string) error {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(placeholderText), Face: face}
	tw := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	x := (r.width - tw) / 2
	y := (r.height + ascent) / 2
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(msg)

	return png.Encode(w, img)
}
