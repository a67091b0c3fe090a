package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/studyscore/internal/adapters/http/api"
	service "github.com/okian/studyscore/internal/app"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWith(os.Stderr, "text"); err != nil {
		panic(err)
	}
}

// writeDataset writes rows following score = 50 + 1.5*hours, plus one row
// with a missing score and one with a text cell.
func writeDataset(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Hours_Studied,Gender,Exam_Score\n")
	for h := 1; h <= 20; h++ {
		gender := "Male"
		if h%2 == 0 {
			gender = "Female"
		}
		fmt.Fprintf(&b, "%d,%s,%g\n", h, gender, 50+1.5*float64(h))
	}
	b.WriteString("7,Male,\n")
	b.WriteString("n/a,Female,60\n")

	path := filepath.Join(t.TempDir(), "students.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func startService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	base := []service.Option{
		service.WithDatasetPath(writeDataset(t)),
		service.WithDatabasePath(":memory:"),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with a dataset", t, func() {
		svc := startService(t)
		ctx := context.Background()

		Convey("Then the dataset is exposed in file order", func() {
			So(svc.Columns(ctx), ShouldResemble, []string{"Hours_Studied", "Gender", "Exam_Score"})
			So(len(svc.Rows(ctx)), ShouldEqual, 22)
		})

		Convey("Then stats report the started service", func() {
			stats := svc.GetStats(ctx)
			So(stats["started"], ShouldEqual, true)
			So(stats["rows"], ShouldEqual, 22)
			So(stats["students"], ShouldEqual, int64(0))
		})

		Convey("Then starting twice is a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})
	})

	Convey("Given a missing dataset", t, func() {
		svc := service.New(service.WithDatasetPath(filepath.Join(t.TempDir(), "none.csv")), service.WithDatabasePath(":memory:"))

		Convey("Then start fails", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrStart), ShouldBeTrue)
		})
	})
}

func TestService_Predict(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t)
		ctx := context.Background()

		Convey("When predicting with the linear model", func() {
			st, err := svc.Predict(ctx, "Ada", 10, model.ModelLinear)

			Convey("Then the score follows the fitted line and is stored", func() {
				So(err, ShouldBeNil)
				So(st.Score, ShouldAlmostEqual, 65, 1e-6)
				So(st.ModelType, ShouldEqual, model.ModelLinear)
				So(st.ID, ShouldNotBeEmpty)
				So(svc.GetStats(ctx)["students"], ShouldEqual, int64(1))
			})

			Convey("Then it can be looked up by name", func() {
				found, err := svc.StudentByName(ctx, "Ada")
				So(err, ShouldBeNil)
				So(found.ID, ShouldEqual, st.ID)
				So(found.Score, ShouldAlmostEqual, 65, 1e-6)
			})
		})

		Convey("When looking up a name that was never scored", func() {
			_, err := svc.StudentByName(ctx, "Nobody")

			Convey("Then the miss is reported as not found", func() {
				So(errors.Is(err, api.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When predicting with an unknown model", func() {
			st, err := svc.Predict(ctx, "Bo", 4, "neural")

			Convey("Then the linear model is used", func() {
				So(err, ShouldBeNil)
				So(st.ModelType, ShouldEqual, model.ModelLinear)
				So(st.Score, ShouldAlmostEqual, 56, 1e-6)
			})
		})

		Convey("When predicting with the polynomial model", func() {
			st, err := svc.Predict(ctx, "Cy", 4, model.ModelPolynomial)

			Convey("Then it matches the line on linear data", func() {
				So(err, ShouldBeNil)
				So(st.ModelType, ShouldEqual, model.ModelPolynomial)
				So(st.Score, ShouldAlmostEqual, 56, 1e-6)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then predictions fail", func() {
			_, err := svc.Predict(context.Background(), "Ada", 1, "")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.Rows(context.Background()), ShouldBeNil)
		})
	})
}

func TestService_Models(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t, service.WithCurve(0, 30, 100))
		ctx := context.Background()

		Convey("Then performance covers both models with a perfect fit", func() {
			report, err := svc.Performance(ctx)
			So(err, ShouldBeNil)
			So(len(report), ShouldEqual, 2)
			So(report[model.ModelLinear].R2, ShouldAlmostEqual, 1, 1e-9)
			So(report[model.ModelLinear].MSE, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Then the curve spans the hours range", func() {
			pts := svc.RegressionCurve(ctx, "")
			So(len(pts), ShouldEqual, 100)
			So(pts[0].X, ShouldEqual, 0)
			So(math.Abs(pts[0].Y-50), ShouldBeLessThan, 1e-6)
			So(pts[99].X, ShouldEqual, 30)
			So(pts[99].Y, ShouldAlmostEqual, 95, 1e-6)
		})
	})
}
