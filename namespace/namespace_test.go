package namespace

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNamespace(t *testing.T) {
	Convey("Given an empty namespace", t, func() {
		ns := New()
		probe := ns.Probe("youtube")

		So(ns.Has("youtube"), ShouldBeFalse)
		So(probe(), ShouldBeFalse)

		Convey("Defining a symbol makes it visible to probes", func() {
			ns.Define("youtube", 1)
			So(probe(), ShouldBeTrue)

			v, ok := ns.Lookup("youtube")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 1)
		})

		Convey("Names are sorted", func() {
			ns.Define("youtube", nil)
			ns.Define("module", nil)
			So(ns.Names(), ShouldResemble, []string{"module", "youtube"})
		})
	})
}
