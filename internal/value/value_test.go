package value

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRender(t *testing.T) {

	Convey("Render formats each kind for a Table frame cell", t, func() {
		So(NewNull().Render(), ShouldEqual, "")
		So(NewString("Elliot").Render(), ShouldEqual, "Elliot")
		So(NewBoolean(true).Render(), ShouldEqual, "true")
		So(NewNumber(16).Render(), ShouldEqual, "16")
		So(NewNumber(3.5).Render(), ShouldEqual, "3.5")
	})
}

func TestEqual(t *testing.T) {

	Convey("Values of different kinds are never equal", t, func() {
		So(NewNumber(1).Equal(NewString("1")), ShouldBeFalse)
	})

	Convey("Two nulls are never equal, even to each other", t, func() {
		So(NewNull().Equal(NewNull()), ShouldBeFalse)
	})

	Convey("Same-kind values compare by underlying data", t, func() {
		So(NewString("a").Equal(NewString("a")), ShouldBeTrue)
		So(NewString("a").Equal(NewString("b")), ShouldBeFalse)
		So(NewNumber(1).Equal(NewNumber(1)), ShouldBeTrue)
		So(NewBoolean(true).Equal(NewBoolean(false)), ShouldBeFalse)
	})
}

func TestCompare(t *testing.T) {

	Convey("Numbers compare numerically", t, func() {
		So(NewNumber(1).Compare(NewNumber(2)), ShouldEqual, -1)
		So(NewNumber(2).Compare(NewNumber(1)), ShouldEqual, 1)
		So(NewNumber(1).Compare(NewNumber(1)), ShouldEqual, 0)
	})

	Convey("Strings compare lexicographically", t, func() {
		So(NewString("a").Compare(NewString("b")), ShouldEqual, -1)
	})

	Convey("Comparing mismatched kinds panics", t, func() {
		So(func() { NewNumber(1).Compare(NewString("1")) }, ShouldPanic)
	})
}
