package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should accept a prepared backend", func() {
			fs := afero.NewMemMapFs()
			So(afero.WriteFile(fs, "/plan.toml", []byte("duration = 1"), 0o644), ShouldBeNil)
			Set(fs)
			ok, err := API().Exists("/plan.toml")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("GacheFs writes through the active backend", func() {
			SetMemMapFs()
			So(GacheFs{}.MkdirAll("/cache", 0o755), ShouldBeNil)
			f, err := GacheFs{}.OpenFile("/cache/entry.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			ok, _ := API().Exists("/cache/entry.json")
			So(ok, ShouldBeTrue)
		})
	})
}
