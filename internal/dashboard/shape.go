package dashboard

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
)

// ChartType selects how rows are shaped and drawn.
type ChartType string

// Supported chart types.
const (
	ChartScatter ChartType = "scatter"
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
)

// ParseChartType validates s.
func ParseChartType(s string) (ChartType, error) {
	switch ct := ChartType(strings.ToLower(strings.TrimSpace(s))); ct {
	case ChartScatter, ChartBar, ChartLine:
		return ct, nil
	default:
		return "", errkind.Wrap("dashboard.parse_chart_type", ErrChartType, fmt.Errorf("%q", s))
	}
}

// Dataset colors.
var (
	ColorPrimary    = color.RGBA{R: 67, G: 97, B: 238, A: 255}
	ColorLinear     = color.RGBA{R: 255, G: 99, B: 132, A: 255}
	ColorPolynomial = color.RGBA{R: 75, G: 192, B: 192, A: 255}
)

// Dataset is one drawable series. Points is used by scatter charts and the
// regression overlay; Values aligns with ChartData.Labels for bar and line
// charts.
type Dataset struct {
	Label    string
	Points   []model.Point
	Values   []float64
	Color    color.RGBA
	Fill     bool
	ShowLine bool
	Tension  float64
}

// ChartData is a shaped chart ready to draw.
type ChartData struct {
	Type     ChartType
	XAxis    string
	YAxis    string
	Labels   []string
	Datasets []Dataset
}

// FilterRows keeps rows where both x and y are present and non-null.
func FilterRows(rows []model.DataRow, x, y string) []model.DataRow {
	out := make([]model.DataRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := row.Lookup(x); !ok {
			continue
		}
		if _, ok := row.Lookup(y); !ok {
			continue
		}
		out = append(out, row)
	}
	return out
}

// ScatterPoints maps rows to (x, y) points, dropping rows where either
// value does not parse as a number.
func ScatterPoints(rows []model.DataRow, x, y string) []model.Point {
	pts := make([]model.Point, 0, len(rows))
	for _, row := range rows {
		xv, _ := row.Lookup(x)
		yv, _ := row.Lookup(y)
		px, okX := xv.Float()
		py, okY := yv.Float()
		if !okX || !okY {
			continue
		}
		pts = append(pts, model.Point{X: px, Y: py})
	}
	return pts
}

// GroupMeans groups rows by the literal key of x and averages the numeric
// values of y per group. Groups without a numeric y are omitted. Labels are
// sorted ascending.
func GroupMeans(rows []model.DataRow, x, y string) (labels []string, means []float64) {
	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[string]*acc)
	for _, row := range rows {
		xv, _ := row.Lookup(x)
		yv, _ := row.Lookup(y)
		f, ok := yv.Float()
		if !ok {
			continue
		}
		key := xv.Key()
		g := groups[key]
		if g == nil {
			g = &acc{}
			groups[key] = g
		}
		g.sum += f
		g.count++
	}

	labels = make([]string, 0, len(groups))
	for k := range groups {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	means = make([]float64, len(labels))
	for i, k := range labels {
		means[i] = groups[k].sum / float64(groups[k].count)
	}
	return labels, means
}

// WantsRegression reports whether the regression overlay applies to the
// axis pair. Only hours studied against exam score has a fitted model.
func WantsRegression(x, y string) bool {
	return x == model.ColumnHoursStudied && y == model.ColumnExamScore
}

// Shape turns rows into chart data for the selected axes and chart type.
func Shape(rows []model.DataRow, x, y string, ct ChartType) (ChartData, error) {
	filtered := FilterRows(rows, x, y)
	data := ChartData{Type: ct, XAxis: x, YAxis: y}

	switch ct {
	case ChartScatter:
		data.Datasets = []Dataset{{
			Label:  fmt.Sprintf("%s vs %s", x, y),
			Points: ScatterPoints(filtered, x, y),
			Color:  ColorPrimary,
		}}
	case ChartBar, ChartLine:
		labels, means := GroupMeans(filtered, x, y)
		ds := Dataset{
			Label:  fmt.Sprintf("%s by %s", y, x),
			Values: means,
			Color:  ColorPrimary,
		}
		if ct == ChartLine {
			ds.Fill = true
			ds.ShowLine = true
			ds.Tension = 0.3
		}
		data.Labels = labels
		data.Datasets = []Dataset{ds}
	default:
		return ChartData{}, errkind.Wrap("dashboard.shape", ErrChartType, fmt.Errorf("%q", ct))
	}
	return data, nil
}

// RegressionDataset builds the overlay line for modelType.
func RegressionDataset(modelType string, pts []model.Point) Dataset {
	c := ColorPolynomial
	if modelType == model.ModelLinear {
		c = ColorLinear
	}
	return Dataset{
		Label:    DisplayName(modelType) + " Regression Line",
		Points:   pts,
		Color:    c,
		Fill:     false,
		ShowLine: true,
		Tension:  0.2,
	}
}
