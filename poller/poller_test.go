package poller

import (
	"testing"
	"time"

	"github.com/mediaspawn/mediaspawn/loop"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAwaitReady(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		s := loop.NewManual()
		ready := false
		probe := func() bool { return ready }

		Convey("A true probe fires immediately without scheduling", func() {
			ready = true
			fired := 0
			w := AwaitReady(s, probe, func() { fired++ })
			So(fired, ShouldEqual, 1)
			So(w.Attempts(), ShouldEqual, 1)
			So(s.Pending(), ShouldEqual, 0)
		})

		Convey("A false probe is retried every interval", func() {
			fired := 0
			w := AwaitReady(s, probe, func() { fired++ }, WithInterval(300*time.Millisecond))
			So(fired, ShouldEqual, 0)
			So(s.Pending(), ShouldEqual, 1)

			s.Advance(900 * time.Millisecond)
			So(w.Attempts(), ShouldEqual, 4)
			So(fired, ShouldEqual, 0)

			ready = true
			s.Advance(300 * time.Millisecond)
			So(fired, ShouldEqual, 1)
			So(s.Pending(), ShouldEqual, 0)

			Convey("And onReady never fires twice", func() {
				s.Advance(time.Minute)
				So(fired, ShouldEqual, 1)
			})
		})

		Convey("Independent waits on one probe each fire", func() {
			a, b := 0, 0
			AwaitReady(s, probe, func() { a++ })
			s.Advance(100 * time.Millisecond)
			AwaitReady(s, probe, func() { b++ })

			ready = true
			s.Advance(time.Second)
			So(a, ShouldEqual, 1)
			So(b, ShouldEqual, 1)
		})

		Convey("A bounded wait times out", func() {
			var got error
			fired := false
			w := AwaitReady(s, probe, func() { fired = true },
				WithInterval(100*time.Millisecond),
				WithTimeout(time.Second, func(err error) { got = err }),
			)

			s.Advance(900 * time.Millisecond)
			So(got, ShouldBeNil)

			s.Advance(100 * time.Millisecond)
			So(got, ShouldEqual, ErrTimeout)
			So(fired, ShouldBeFalse)
			So(w.Attempts(), ShouldEqual, 11)

			select {
			case <-w.Done():
			default:
				So("done not closed", ShouldBeEmpty)
			}
		})

		Convey("A cancelled wait stops polling", func() {
			fired := false
			w := AwaitReady(s, probe, func() { fired = true })
			So(w.Cancel(), ShouldBeTrue)
			So(w.Cancel(), ShouldBeFalse)
			So(s.Pending(), ShouldEqual, 0)

			ready = true
			s.Advance(time.Minute)
			So(fired, ShouldBeFalse)
		})
	})
}
