package smoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/studyscore/internal/adapters/http/api"
	service "github.com/okian/studyscore/internal/app"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWith(io.Discard, "text"); err != nil {
		panic(err)
	}
}

func result(hours, score float64) Result {
	return Result{Student: Student{Name: fmt.Sprintf("s%.1f", hours), StudyHours: hours}, Score: score}
}

func TestVerifyMonotonic(t *testing.T) {
	Convey("Given predictions", t, func() {
		Convey("When scores rise with hours in any order", func() {
			err := verifyMonotonic([]Result{result(5, 60), result(1, 52), result(9, 68), result(5, 60)})
			So(err, ShouldBeNil)
		})

		Convey("When scores fall with hours", func() {
			err := verifyMonotonic([]Result{result(1, 90), result(2, 80), result(3, 70)})
			So(err, ShouldBeNil)
		})

		Convey("When the trend reverses", func() {
			err := verifyMonotonic([]Result{result(1, 50), result(2, 60), result(3, 55)})
			So(errors.Is(err, ErrVerification), ShouldBeTrue)
		})

		Convey("When there is a single prediction", func() {
			So(verifyMonotonic([]Result{result(1, 50)}), ShouldBeNil)
		})
	})
}

func TestVerifyPerformanceAndCurve(t *testing.T) {
	Convey("Given a performance report", t, func() {
		report := model.PerformanceReport{
			model.ModelLinear:     {R2: 0.7, MSE: 4.2},
			model.ModelPolynomial: {R2: 0.71, MSE: 4.1},
		}
		So(verifyPerformance(report), ShouldBeNil)

		Convey("Then a missing model fails", func() {
			delete(report, model.ModelPolynomial)
			So(errors.Is(verifyPerformance(report), ErrVerification), ShouldBeTrue)
		})
	})

	Convey("Given a curve", t, func() {
		pts := []model.Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}

		Convey("Then the point count is checked", func() {
			So(verifyCurve("linear", pts, 3), ShouldBeNil)
			So(errors.Is(verifyCurve("linear", pts, 100), ErrVerification), ShouldBeTrue)
		})

		Convey("Then x must increase", func() {
			pts[2].X = 1
			So(errors.Is(verifyCurve("linear", pts, 3), ErrVerification), ShouldBeTrue)
		})
	})
}

func TestGenerateStudents(t *testing.T) {
	Convey("Given generated students", t, func() {
		students := generateStudents(50)

		Convey("Then names are unique and hours are within range", func() {
			seen := map[string]bool{}
			for _, st := range students {
				So(seen[st.Name], ShouldBeFalse)
				seen[st.Name] = true
				So(st.StudyHours, ShouldBeGreaterThanOrEqualTo, lightMin)
				So(st.StudyHours, ShouldBeLessThan, heavyMin+heavyRange)
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running service", t, func() {
		var b strings.Builder
		b.WriteString("Hours_Studied,Exam_Score\n")
		for h := 1; h <= 15; h++ {
			fmt.Fprintf(&b, "%d,%d\n", h, 55+h)
		}
		path := filepath.Join(t.TempDir(), "data.csv")
		So(os.WriteFile(path, []byte(b.String()), 0o600), ShouldBeNil)

		svc := service.New(
			service.WithLogger(logger.NewNop()),
			service.WithDatasetPath(path),
			service.WithDatabasePath(":memory:"),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc, logger.NewNop()).Register(mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		cfg := &Config{BaseURL: srv.URL, Students: 25, Workers: 4, Timeout: 5 * time.Second, CurvePoints: 100}

		Convey("Then the smoke run passes and every student is stored", func() {
			So(Run(context.Background(), cfg), ShouldBeNil)
			So(svc.GetStats(context.Background())["students"], ShouldEqual, int64(25))
		})

		Convey("Then a wrong curve size is reported", func() {
			cfg.CurvePoints = 10
			So(errors.Is(Run(context.Background(), cfg), ErrVerification), ShouldBeTrue)
		})
	})

	Convey("Given an unreachable service", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		cfg := &Config{BaseURL: srv.URL, Students: 1, Workers: 1, Timeout: time.Second, CurvePoints: 100}

		Convey("Then the health check fails", func() {
			So(errors.Is(Run(context.Background(), cfg), ErrUnhealthy), ShouldBeTrue)
			srv.Close()
		})
	})
}
