package smoke

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/studyscore/internal/domain/model"
)

// tolerance absorbs float noise when comparing scores.
const tolerance = 1e-9

// verifyMonotonic checks that linear scores only move one way as study hours
// grow.
func verifyMonotonic(results []Result) error {
	if len(results) < 2 {
		return nil
	}
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Student.StudyHours < sorted[j].Student.StudyHours
	})

	direction := 0
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Student.StudyHours == prev.Student.StudyHours {
			continue
		}
		delta := cur.Score - prev.Score
		if math.Abs(delta) <= tolerance {
			continue
		}
		step := 1
		if delta < 0 {
			step = -1
		}
		if direction == 0 {
			direction = step
			continue
		}
		if step != direction {
			return fmt.Errorf("%w: score %.4f at %.2f hours breaks the trend set before %.2f hours (%.4f)",
				ErrVerification, cur.Score, cur.Student.StudyHours, prev.Student.StudyHours, prev.Score)
		}
	}
	return nil
}

// verifyPerformance checks that both models report finite metrics.
func verifyPerformance(report model.PerformanceReport) error {
	for _, kind := range []string{model.ModelLinear, model.ModelPolynomial} {
		m, ok := report[kind]
		if !ok {
			return fmt.Errorf("%w: performance report lacks %q", ErrVerification, kind)
		}
		if math.IsNaN(m.R2) || math.IsInf(m.R2, 0) || math.IsNaN(m.MSE) || math.IsInf(m.MSE, 0) || m.MSE < 0 {
			return fmt.Errorf("%w: %s metrics are not finite (r2=%v mse=%v)", ErrVerification, kind, m.R2, m.MSE)
		}
	}
	return nil
}

// verifyCurve checks the point count and that x is strictly increasing.
func verifyCurve(kind string, points []model.Point, want int) error {
	if len(points) != want {
		return fmt.Errorf("%w: %s curve has %d points, want %d", ErrVerification, kind, len(points), want)
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return fmt.Errorf("%w: %s curve x is not increasing at %d", ErrVerification, kind, i)
		}
	}
	return nil
}
