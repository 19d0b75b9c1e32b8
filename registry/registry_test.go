package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mediaspawn/mediaspawn/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		r := New()

		Convey("Unreferenced types are not requested", func() {
			So(r.State(media.YouTube), ShouldEqual, NotRequested)
			So(r.IsLoaded(media.YouTube), ShouldBeFalse)
			So(r.Snapshot(), ShouldBeEmpty)
		})

		Convey("The first claim wins", func() {
			So(r.TryClaim(media.YouTube), ShouldBeTrue)
			So(r.State(media.YouTube), ShouldEqual, Pending)

			Convey("And later claims lose", func() {
				So(r.TryClaim(media.YouTube), ShouldBeFalse)
			})

			Convey("And other types are unaffected", func() {
				So(r.TryClaim(media.Module), ShouldBeTrue)
			})
		})

		Convey("MarkLoaded is idempotent", func() {
			r.TryClaim(media.YouTube)
			r.MarkLoaded(media.YouTube)
			r.MarkLoaded(media.YouTube)
			So(r.State(media.YouTube), ShouldEqual, Loaded)

			Convey("And a claim after loading returns false", func() {
				So(r.TryClaim(media.YouTube), ShouldBeFalse)
			})
		})

		Convey("Ready is closed by MarkLoaded", func() {
			ready := r.Ready(media.Module)
			closed := func() bool {
				select {
				case <-ready:
					return true
				default:
					return false
				}
			}
			So(closed(), ShouldBeFalse)

			r.MarkLoaded(media.Module)
			So(closed(), ShouldBeTrue)
		})

		Convey("Concurrent claims produce exactly one winner", func() {
			var (
				wg   sync.WaitGroup
				wins atomic.Int32
			)
			for i := 0; i < 64; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if r.TryClaim(media.YouTube) {
						wins.Add(1)
					}
				}()
			}
			wg.Wait()
			So(wins.Load(), ShouldEqual, 1)
		})

		Convey("Snapshot reports every referenced type", func() {
			r.TryClaim(media.YouTube)
			r.MarkLoaded(media.Module)
			So(r.Snapshot(), ShouldResemble, map[media.Type]State{
				media.YouTube: Pending,
				media.Module:  Loaded,
			})
		})
	})
}
