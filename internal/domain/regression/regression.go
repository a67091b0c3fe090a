// Package regression fits and evaluates the polynomial least-squares models
// that predict an exam score from study hours.
package regression

import (
	"fmt"
	"sort"

	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Predictor maps an input to an estimate.
type Predictor interface {
	Predict(x float64) float64
}

// Model is a fitted polynomial y = c0 + c1*x + ... + cd*x^d.
type Model struct {
	kind string
	coef []float64
}

// Fit fits a polynomial of the given degree to (xs, ys) by least squares.
func Fit(kind string, degree int, xs, ys []float64) (*Model, error) {
	const op = "regression.fit"
	switch {
	case degree < 1:
		return nil, errkind.Wrap(op, ErrInvalidInput, fmt.Errorf("degree %d", degree))
	case len(xs) != len(ys):
		return nil, errkind.Wrap(op, ErrInvalidInput, fmt.Errorf("%d inputs for %d targets", len(xs), len(ys)))
	case len(xs) <= degree:
		return nil, errkind.Wrap(op, ErrTooFewSamples, fmt.Errorf("%d samples for degree %d", len(xs), degree))
	}

	cols := degree + 1
	design := mat.NewDense(len(xs), cols, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j < cols; j++ {
			design.Set(i, j, p)
			p *= x
		}
	}
	target := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	var beta mat.VecDense
	// Rank-deficient designs surface as mat.Condition or mat.ErrSingular.
	if err := beta.SolveVec(design, target); err != nil {
		return nil, errkind.Wrap(op, ErrSingular, err)
	}

	coef := make([]float64, cols)
	for j := range coef {
		coef[j] = beta.AtVec(j)
	}
	return &Model{kind: kind, coef: coef}, nil
}

// Kind returns the model type label.
func (m *Model) Kind() string { return m.kind }

// Degree returns the polynomial degree.
func (m *Model) Degree() int { return len(m.coef) - 1 }

// Intercept returns the constant term.
func (m *Model) Intercept() float64 { return m.coef[0] }

// Coef returns a copy of the coefficients, lowest power first.
func (m *Model) Coef() []float64 { return append([]float64(nil), m.coef...) }

// Predict evaluates the polynomial at x.
func (m *Model) Predict(x float64) float64 {
	y := 0.0
	for j := len(m.coef) - 1; j >= 0; j-- {
		y = y*x + m.coef[j]
	}
	return y
}

// Evaluate scores p against (xs, ys) with R² and mean squared error.
func Evaluate(p Predictor, xs, ys []float64) (model.Metrics, error) {
	const op = "regression.evaluate"
	if len(xs) != len(ys) || len(xs) == 0 {
		return model.Metrics{}, errkind.Wrap(op, ErrInvalidInput, fmt.Errorf("%d inputs for %d targets", len(xs), len(ys)))
	}
	estimates := make([]float64, len(xs))
	var sse float64
	for i, x := range xs {
		estimates[i] = p.Predict(x)
		d := ys[i] - estimates[i]
		sse += d * d
	}
	return model.Metrics{
		R2:  stat.RSquaredFrom(estimates, ys, nil),
		MSE: sse / float64(len(xs)),
	}, nil
}

// Curve samples p at n evenly spaced points over [lo, hi], both ends included.
func Curve(p Predictor, lo, hi float64, n int) []model.Point {
	if n < 2 {
		return []model.Point{{X: lo, Y: p.Predict(lo)}}
	}
	step := (hi - lo) / float64(n-1)
	pts := make([]model.Point, n)
	for i := range pts {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		pts[i] = model.Point{X: x, Y: p.Predict(x)}
	}
	return pts
}

// Set holds one fitted model per model type.
type Set struct {
	models   map[string]*Model
	fallback string
}

// Train fits the linear model and a polynomial model of polyDegree.
func Train(xs, ys []float64, polyDegree int) (*Set, error) {
	linear, err := Fit(model.ModelLinear, 1, xs, ys)
	if err != nil {
		return nil, err
	}
	poly, err := Fit(model.ModelPolynomial, polyDegree, xs, ys)
	if err != nil {
		return nil, err
	}
	return &Set{
		models: map[string]*Model{
			model.ModelLinear:     linear,
			model.ModelPolynomial: poly,
		},
		fallback: model.ModelLinear,
	}, nil
}

// Get returns the model for kind.
func (s *Set) Get(kind string) (*Model, bool) {
	m, ok := s.models[kind]
	return m, ok
}

// Resolve returns the model for kind, or the linear model when kind is
// empty or unknown.
func (s *Set) Resolve(kind string) *Model {
	if m, ok := s.models[kind]; ok {
		return m
	}
	return s.models[s.fallback]
}

// Kinds returns the model types in sorted order.
func (s *Set) Kinds() []string {
	kinds := make([]string, 0, len(s.models))
	for k := range s.models {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Report evaluates every model against (xs, ys).
func (s *Set) Report(xs, ys []float64) (model.PerformanceReport, error) {
	report := make(model.PerformanceReport, len(s.models))
	for kind, m := range s.models {
		metrics, err := Evaluate(m, xs, ys)
		if err != nil {
			return nil, err
		}
		report[kind] = metrics
	}
	return report, nil
}
