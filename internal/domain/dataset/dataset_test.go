package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/studyscore/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = `Hours_Studied,Attendance,Parental_Involvement,Exam_Score
23,84,Low,67
19,64,,61
24,98,Medium,74
,89,Low,71
29,89,High,
`

func TestLoad(t *testing.T) {
	Convey("Given a CSV with numeric, categorical and empty cells", t, func() {
		ds, err := dataset.Load(context.Background(), strings.NewReader(sampleCSV))
		So(err, ShouldBeNil)

		Convey("Then columns keep file order", func() {
			So(ds.Columns(), ShouldResemble, []string{"Hours_Studied", "Attendance", "Parental_Involvement", "Exam_Score"})
			So(ds.Len(), ShouldEqual, 5)
		})

		Convey("And empty cells are null", func() {
			_, ok := ds.Rows()[1].Lookup("Parental_Involvement")
			So(ok, ShouldBeFalse)
		})

		Convey("And numeric cells are numbers while categories stay text", func() {
			v, ok := ds.Rows()[0].Lookup("Hours_Studied")
			So(ok, ShouldBeTrue)
			f, ok := v.Float()
			So(ok, ShouldBeTrue)
			So(f, ShouldEqual, 23)

			c, _ := ds.Rows()[0].Lookup("Parental_Involvement")
			_, ok = c.Float()
			So(ok, ShouldBeFalse)
			So(c.Key(), ShouldEqual, "Low")
		})

		Convey("When pairing hours with scores", func() {
			xs, ys, err := ds.Pairs("Hours_Studied", "Exam_Score")

			Convey("Then rows missing either side are skipped", func() {
				So(err, ShouldBeNil)
				So(xs, ShouldResemble, []float64{23, 19, 24})
				So(ys, ShouldResemble, []float64{67, 61, 74})
			})
		})

		Convey("When pairing an unknown column", func() {
			_, _, err := ds.Pairs("Hours_Studied", "Motivation")

			Convey("Then it fails with ErrUnknownColumn", func() {
				So(errors.Is(err, dataset.ErrUnknownColumn), ShouldBeTrue)
			})
		})
	})

	Convey("Given malformed input", t, func() {
		Convey("Then an empty reader is ErrEmpty", func() {
			_, err := dataset.Load(context.Background(), strings.NewReader(""))
			So(errors.Is(err, dataset.ErrEmpty), ShouldBeTrue)
		})

		Convey("Then a ragged row is ErrParse", func() {
			_, err := dataset.Load(context.Background(), strings.NewReader("a,b\n1,2,3\n"))
			So(errors.Is(err, dataset.ErrParse), ShouldBeTrue)
		})

		Convey("Then duplicate columns are ErrParse", func() {
			_, err := dataset.Load(context.Background(), strings.NewReader("a,a\n1,2\n"))
			So(errors.Is(err, dataset.ErrParse), ShouldBeTrue)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a CSV file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "students.csv")
		So(os.WriteFile(path, []byte(sampleCSV), 0o600), ShouldBeNil)

		Convey("Then LoadFile reads it", func() {
			ds, err := dataset.LoadFile(context.Background(), path)
			So(err, ShouldBeNil)
			So(ds.Len(), ShouldEqual, 5)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := dataset.LoadFile(context.Background(), "/non/existent.csv")

		Convey("Then it fails with ErrOpen", func() {
			So(errors.Is(err, dataset.ErrOpen), ShouldBeTrue)
		})
	})
}
