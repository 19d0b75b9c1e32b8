package media

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Resolve", t, func() {
		Convey("YouTube links resolve to youtube", func() {
			for _, src := range []string{
				"https://www.youtube.com/watch?v=abc",
				"http://www.youtube.com/watch?v=bUB1L3zGVvc",
				"http://youtu.be/abc",
				"youtu.be/abc",
				"www.youtube.com/embed/abc",
			} {
				got, err := Resolve(src)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, YouTube)
				So(got, ShouldNotEqual, Type("youtu"))
			}
		})

		Convey("Sources without a marker resolve to html", func() {
			for _, src := range []string{"video.mp4", "/media/clip.webm", "https://cdn.example.org/a.ogv"} {
				got, err := Resolve(src)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, HTML)
			}
		})

		Convey("vimeo and soundcloud are rejected", func() {
			for src, want := range map[string]Type{
				"http://vimeo.com/12345":             Vimeo,
				"https://soundcloud.com/artist/song": SoundCloud,
				"www.vimeo.com/1":                    Vimeo,
			} {
				got, err := Resolve(src)
				So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
				So(got, ShouldEqual, want)
			}
		})

		Convey("The generic player marker resolves to the module", func() {
			got, err := Resolve("baseplayer")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, Module)
			So(got.NeedsImplementation(), ShouldBeFalse)
		})

		Convey("An empty source is an error", func() {
			_, err := Resolve("  ")
			So(err, ShouldEqual, ErrNoSource)
		})

		Convey("A marker in the middle of a word is not a match", func() {
			got, err := Resolve("myyoutubeclip.mp4")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, HTML)
		})
	})
}

func TestNeedsImplementation(t *testing.T) {
	Convey("Only third party players need an implementation script", t, func() {
		So(YouTube.NeedsImplementation(), ShouldBeTrue)
		So(HTML.NeedsImplementation(), ShouldBeFalse)
		So(Module.NeedsImplementation(), ShouldBeFalse)
	})
}
