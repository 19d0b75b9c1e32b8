package util

import (
	"regexp"
	"testing"

	"github.com/mediaspawn/mediaspawn/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		So(SanitizeFilename("intro clip?.toml"), ShouldEqual, "intro_clip_.toml")
		So(SanitizeFilename("a__b"), ShouldEqual, "a_b")
		So(SanitizeFilename("-plan-"), ShouldEqual, "plan")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "spawn", "spawns"), ShouldEqual, "1 spawn")
		So(Quantify(3, "spawn", "spawns"), ShouldEqual, "3 spawns")
	})
}

func TestReGroups(t *testing.T) {
	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?P<host>\w+)\.com`)
		So(ReGroups(re, "www.youtube.com")["host"], ShouldEqual, "youtube")
		So(ReGroups(re, "video.mp4"), ShouldBeEmpty)
	})
}

func TestNumbers(t *testing.T) {
	Convey("Max and Clamp", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Clamp(12, 0, 10), ShouldEqual, 10)
		So(Clamp(-1, 0, 10), ShouldEqual, 0)
		So(Clamp(4, 0, 10), ShouldEqual, 4)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete removes directories recursively", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/scripts/nested", 0o755), ShouldBeNil)
		So(fs.WriteFile("/scripts/nested/youtube.lua", []byte("--"), 0o644), ShouldBeNil)

		So(Delete("/scripts"), ShouldBeNil)
		ok, _ := fs.Exists("/scripts/nested/youtube.lua")
		So(ok, ShouldBeFalse)
	})
}
