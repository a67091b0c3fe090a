package dashboard

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/okian/studyscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPNGRenderer(t *testing.T) {
	Convey("Given a PNG renderer", t, func() {
		r := NewPNGRenderer(640, 360)

		Convey("When drawing a scatter chart with an overlay", func() {
			data := ChartData{
				Type: ChartScatter, XAxis: model.ColumnHoursStudied, YAxis: model.ColumnExamScore,
				Datasets: []Dataset{
					{Label: "points", Points: []model.Point{{X: 1, Y: 60}, {X: 10, Y: 70}, {X: 20, Y: 78}}, Color: ColorPrimary},
					RegressionDataset(model.ModelLinear, []model.Point{{X: 0, Y: 58}, {X: 30, Y: 84}}),
				},
			}
			var buf bytes.Buffer
			err := r.Render(&buf, data)

			Convey("Then a PNG of the canvas size is produced", func() {
				So(err, ShouldBeNil)
				cfg, err := png.DecodeConfig(&buf)
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldEqual, 640)
				So(cfg.Height, ShouldEqual, 360)
			})
		})

		Convey("When drawing bar and line charts with a single category", func() {
			rows := []model.DataRow{row("Gender", "Male", model.ColumnExamScore, 67)}

			Convey("Then both render", func() {
				for _, ct := range []ChartType{ChartBar, ChartLine} {
					data, err := Shape(rows, "Gender", model.ColumnExamScore, ct)
					So(err, ShouldBeNil)
					So(data.Labels, ShouldResemble, []string{"Male"})

					var buf bytes.Buffer
					So(r.Render(&buf, data), ShouldBeNil)
					_, err = png.DecodeConfig(&buf)
					So(err, ShouldBeNil)
				}
			})
		})

		Convey("When a scatter dataset has a single point", func() {
			data := ChartData{
				Type: ChartScatter, XAxis: "x", YAxis: "y",
				Datasets: []Dataset{{Label: "points", Points: []model.Point{{X: 3, Y: 4}}, Color: ColorPrimary}},
			}

			Convey("Then it renders", func() {
				So(r.Render(&bytes.Buffer{}, data), ShouldBeNil)
			})
		})

		Convey("When there is nothing to draw", func() {
			var buf bytes.Buffer
			err := r.Render(&buf, ChartData{Type: ChartScatter, XAxis: "x", YAxis: "y", Datasets: []Dataset{{Label: "x vs y", Points: []model.Point{}}}})

			Convey("Then bare axes are drawn", func() {
				So(err, ShouldBeNil)
				cfg, err := png.DecodeConfig(&buf)
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldEqual, 640)
			})
		})

		Convey("When an empty line chart is drawn", func() {
			err := r.Render(&bytes.Buffer{}, ChartData{Type: ChartLine, Datasets: []Dataset{{Label: "empty", Values: []float64{}}}})

			Convey("Then it renders too", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When drawing the placeholder", func() {
			var buf bytes.Buffer
			err := r.Placeholder(&buf, MsgChartFailed)

			Convey("Then a PNG with the placeholder text colour is produced", func() {
				So(err, ShouldBeNil)
				img, err := png.Decode(&buf)
				So(err, ShouldBeNil)
				So(img.Bounds().Dx(), ShouldEqual, 640)

				found := false
				for y := 0; y < 360 && !found; y++ {
					for x := 0; x < 640; x++ {
						cr, cg, cb, _ := img.At(x, y).RGBA()
						if cr>>8 == 0x6c && cg>>8 == 0x75 && cb>>8 == 0x7d {
							found = true
							break
						}
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}
