package history

import (
	"testing"
	"time"

	"github.com/mediaspawn/mediaspawn/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	filesystem.SetMemMapFs()
	m.Run()
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		records, err := Get()
		So(err, ShouldBeNil)
		for path := range records {
			So(Remove(path), ShouldBeNil)
		}
		So(Last().IsPresent(), ShouldBeFalse)

		Convey("Saving a run records it", func() {
			So(Save("/plans/talk.toml", "talk", 0), ShouldBeNil)

			last, ok := Last().Get()
			So(ok, ShouldBeTrue)
			So(last.Path, ShouldEqual, "/plans/talk.toml")
			So(last.Runs, ShouldEqual, 1)

			Convey("Saving it again counts the run and keeps the latest failures", func() {
				So(Save("/plans/talk.toml", "talk", 2), ShouldBeNil)

				records, err := Get()
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records["/plans/talk.toml"].Runs, ShouldEqual, 2)
				So(records["/plans/talk.toml"].Failures, ShouldEqual, 2)
			})

			Convey("The latest plan comes first", func() {
				time.Sleep(time.Millisecond)
				So(Save("/plans/demo.toml", "demo", 0), ShouldBeNil)

				recent, err := Recent()
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 2)
				So(recent[0].Name, ShouldEqual, "demo")
			})

			Convey("Search matches names fuzzily, most played first", func() {
				So(Save("/plans/talk.toml", "talk", 0), ShouldBeNil)
				So(Save("/plans/tutorial.toml", "tutorial", 0), ShouldBeNil)

				found, err := Search("tl")
				So(err, ShouldBeNil)
				So(found, ShouldHaveLength, 2)
				So(found[0].Name, ShouldEqual, "talk")

				found, err = Search("demo")
				So(err, ShouldBeNil)
				So(found, ShouldBeEmpty)
			})

			Convey("Remove forgets a plan", func() {
				So(Remove("/plans/talk.toml"), ShouldBeNil)
				So(Last().IsPresent(), ShouldBeFalse)
			})
		})
	})
}
