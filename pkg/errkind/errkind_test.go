package errkind_test

import (
	"errors"
	"testing"

	"github.com/okian/studyscore/pkg/errkind"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	errKindA = errors.New("kind a")
	errKindB = errors.New("kind b")
)

func TestWrap(t *testing.T) {
	Convey("Given a wrapped error", t, func() {
		cause := errors.New("boom")
		err := errkind.Wrap("pkg.op", errKindA, cause)

		Convey("Then it matches its kind and its cause", func() {
			So(errors.Is(err, errKindA), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(errors.Is(err, errKindB), ShouldBeFalse)
		})

		Convey("And the message carries the operation", func() {
			So(err.Error(), ShouldEqual, "pkg.op: kind a: boom")
		})

		Convey("And KindOf returns the kind through further wrapping", func() {
			outer := errors.Join(errors.New("outer"), err)
			So(errkind.KindOf(outer), ShouldEqual, errKindA)
		})
	})

	Convey("Given a kind-only error", t, func() {
		err := errkind.New("pkg.op", errKindB)

		Convey("Then the message omits the cause", func() {
			So(err.Error(), ShouldEqual, "pkg.op: kind b")
			So(errors.Unwrap(err), ShouldBeNil)
		})
	})

	Convey("Given a plain error", t, func() {
		Convey("Then KindOf is nil", func() {
			So(errkind.KindOf(errors.New("plain")), ShouldBeNil)
		})
	})
}
