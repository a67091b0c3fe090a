package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/studyscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func chartRows() []model.DataRow {
	return []model.DataRow{
		row(model.ColumnHoursStudied, 5, model.ColumnExamScore, 60, "Gender", "Male"),
		row(model.ColumnHoursStudied, 10, model.ColumnExamScore, 65, "Gender", "Female"),
		row(model.ColumnHoursStudied, nil, model.ColumnExamScore, 70, "Gender", "Male"),
	}
}

func TestChartBuilder_Update(t *testing.T) {
	ctx := context.Background()

	Convey("Given a chart builder", t, func() {
		api := &fakeAPI{rows: chartRows(), curve: []model.Point{{X: 0, Y: 55}, {X: 30, Y: 85}}}
		r := &stubRenderer{}
		b := NewChartBuilder(api, r, NewCanvas())

		Convey("When charting hours studied against exam score", func() {
			chart, err := b.Update(ctx, Selection{
				XAxis: model.ColumnHoursStudied, YAxis: model.ColumnExamScore,
				ChartType: "scatter", ModelType: model.ModelPolynomial,
			})

			Convey("Then the overlay for the selected model is appended", func() {
				So(err, ShouldBeNil)
				So(api.curveCalls, ShouldResemble, []string{model.ModelPolynomial})
				ds := chart.Data().Datasets
				So(len(ds), ShouldEqual, 2)
				So(len(ds[0].Points), ShouldEqual, 2)
				So(ds[1].Label, ShouldEqual, "Polynomial Regression Line")
				So(b.Canvas().Frame(), ShouldResemble, []byte("chart:scatter"))
				So(b.State(), ShouldEqual, StateSuccess)
			})
		})

		Convey("When charting any other axis pair", func() {
			chart, err := b.Update(ctx, Selection{
				XAxis: "Gender", YAxis: model.ColumnExamScore,
				ChartType: "bar", ModelType: model.ModelLinear,
			})

			Convey("Then exactly one dataset is drawn and no curve is fetched", func() {
				So(err, ShouldBeNil)
				So(api.curveCalls, ShouldBeEmpty)
				So(len(chart.Data().Datasets), ShouldEqual, 1)
				So(chart.Data().Labels, ShouldResemble, []string{"Female", "Male"})
			})
		})

		Convey("When updating repeatedly", func() {
			var charts []*Chart
			for _, ct := range []string{"scatter", "bar", "line", "scatter"} {
				c, err := b.Update(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: ct})
				So(err, ShouldBeNil)
				charts = append(charts, c)
			}

			Convey("Then exactly one chart is active", func() {
				So(b.Canvas().Bindings(), ShouldEqual, 1)
				So(b.Current(), ShouldEqual, charts[3])
				for _, c := range charts[:3] {
					So(c.Destroyed(), ShouldBeTrue)
				}
				So(charts[3].Destroyed(), ShouldBeFalse)
			})
		})

		Convey("When updating concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = b.Update(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: "line"})
				}()
			}
			wg.Wait()

			Convey("Then exactly one chart is still active", func() {
				So(b.Canvas().Bindings(), ShouldEqual, 1)
				So(b.Current().Destroyed(), ShouldBeFalse)
			})
		})

		Convey("When the dataset fetch fails after a chart was drawn", func() {
			_, err := b.Update(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: "bar"})
			So(err, ShouldBeNil)
			api.datasetErr = errors.New("connection refused")
			_, err = b.Update(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: "bar"})

			Convey("Then the placeholder replaces the chart", func() {
				So(errors.Is(err, ErrChartRender), ShouldBeTrue)
				So(errors.Is(err, ErrConnectivity), ShouldBeTrue)
				So(b.Current(), ShouldBeNil)
				So(b.Canvas().Bindings(), ShouldEqual, 0)
				So(r.placeholders, ShouldResemble, []string{MsgChartFailed})
				So(string(b.Canvas().Frame()), ShouldEqual, "placeholder:"+MsgChartFailed)
				So(b.State(), ShouldEqual, StateError)
			})
		})

		Convey("When the curve fetch fails", func() {
			api.curveErr = errors.New("timeout")
			_, err := b.Update(ctx, Selection{XAxis: model.ColumnHoursStudied, YAxis: model.ColumnExamScore, ChartType: "scatter", ModelType: "linear"})

			Convey("Then the chart fails as a whole", func() {
				So(errors.Is(err, ErrChartRender), ShouldBeTrue)
				So(r.rendered, ShouldBeEmpty)
			})
		})

		Convey("When drawing fails", func() {
			r.err = errStubRender
			_, err := b.Update(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: "line"})

			Convey("Then the placeholder is shown", func() {
				So(errors.Is(err, ErrChartRender), ShouldBeTrue)
				So(errors.Is(err, errStubRender), ShouldBeTrue)
				So(len(r.placeholders), ShouldEqual, 1)
			})
		})

		Convey("When the chart type is unsupported", func() {
			_, err := b.Update(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: "pie"})

			Convey("Then nothing is fetched", func() {
				So(errors.Is(err, ErrChartType), ShouldBeTrue)
				So(api.datasetCalls, ShouldEqual, 0)
			})
		})
	})
}

func TestChartBuilder_UpdateFrame(t *testing.T) {
	ctx := context.Background()

	Convey("Given a failed update followed by a successful one", t, func() {
		api := &fakeAPI{rows: chartRows()}
		b := NewChartBuilder(api, &stubRenderer{}, NewCanvas())

		failed, err := b.UpdateFrame(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: "pie"})
		So(err, ShouldNotBeNil)
		ok, err := b.UpdateFrame(ctx, Selection{XAxis: "Gender", YAxis: model.ColumnExamScore, ChartType: "bar"})
		So(err, ShouldBeNil)

		Convey("Then each call keeps the frame it drew", func() {
			So(string(failed), ShouldEqual, "placeholder:"+MsgChartFailed)
			So(string(ok), ShouldEqual, "chart:bar")
			So(string(b.Canvas().Frame()), ShouldEqual, "chart:bar")
		})
	})
}

func TestChartBuilder_PNG(t *testing.T) {
	ctx := context.Background()

	Convey("Given a builder drawing real PNGs", t, func() {
		api := &fakeAPI{}
		b := NewChartBuilder(api, NewPNGRenderer(320, 200), NewCanvas())

		Convey("When the x axis has a single category", func() {
			api.rows = []model.DataRow{row("x", "Male", "y", 2)}

			Convey("Then bar and line charts are drawn", func() {
				for _, ct := range []string{"bar", "line"} {
					chart, err := b.Update(ctx, Selection{XAxis: "x", YAxis: "y", ChartType: ct})
					So(err, ShouldBeNil)
					So(chart, ShouldNotBeNil)
					So(chart.Data().Labels, ShouldResemble, []string{"Male"})
					So(chart.Data().Datasets[0].Values, ShouldResemble, []float64{2})
					So(b.Canvas().Bindings(), ShouldEqual, 1)
					So(b.State(), ShouldEqual, StateSuccess)
				}
			})
		})

		Convey("When filtering leaves no rows", func() {
			api.rows = []model.DataRow{row("x", nil, "y", 1), row("x", "n/a", "y", 2)}
			chart, err := b.Update(ctx, Selection{XAxis: "x", YAxis: "y", ChartType: "scatter"})

			Convey("Then an empty chart is active", func() {
				So(err, ShouldBeNil)
				So(chart, ShouldNotBeNil)
				So(chart.Data().Datasets[0].Points, ShouldBeEmpty)
				So(b.Canvas().Bindings(), ShouldEqual, 1)
				So(b.State(), ShouldEqual, StateSuccess)
			})
		})
	})
}
