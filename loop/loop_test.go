package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func start(l *Loop) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Run(ctx)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func TestLoop(t *testing.T) {
	Convey("Given a running loop", t, func() {
		l := New()
		stop := start(l)
		defer stop()
		ctx := context.Background()

		Convey("Posted tasks run in order", func() {
			var got []int
			for i := 0; i < 5; i++ {
				i := i
				l.Post(func() { got = append(got, i) })
			}
			So(l.Do(ctx, func() {}), ShouldBeNil)
			So(got, ShouldResemble, []int{0, 1, 2, 3, 4})
		})

		Convey("Delayed tasks run on the loop", func() {
			fired := make(chan struct{})
			l.After(5*time.Millisecond, func() { close(fired) })

			select {
			case <-fired:
			case <-time.After(time.Second):
				So("timer never fired", ShouldBeEmpty)
			}
		})

		Convey("A stopped timer never runs", func() {
			ran := false
			timer := l.After(20*time.Millisecond, func() { ran = true })
			So(timer.Stop(), ShouldBeTrue)
			So(timer.Stop(), ShouldBeFalse)

			time.Sleep(40 * time.Millisecond)
			So(l.Do(ctx, func() {}), ShouldBeNil)
			So(ran, ShouldBeFalse)
		})

		Convey("A panicking task does not stop the loop", func() {
			l.Post(func() { panic("boom") })
			ran := false
			So(l.Do(ctx, func() { ran = true }), ShouldBeNil)
			So(ran, ShouldBeTrue)
		})
	})

	Convey("Given a closed loop", t, func() {
		l := New()
		stop := start(l)
		l.Close()
		l.Close()
		stop()

		Convey("Do reports it", func() {
			So(l.Do(context.Background(), func() {}), ShouldEqual, ErrClosed)
		})
	})
}

func TestManual(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		m := NewManual()
		var got []string

		Convey("Posted tasks wait for Flush", func() {
			m.Post(func() { got = append(got, "a") })
			So(got, ShouldBeEmpty)
			m.Flush()
			So(got, ShouldResemble, []string{"a"})
		})

		Convey("Timers fire in due order as the clock advances", func() {
			m.After(300*time.Millisecond, func() { got = append(got, "late") })
			m.After(100*time.Millisecond, func() { got = append(got, "early") })
			m.After(100*time.Millisecond, func() { got = append(got, "early-2") })

			m.Advance(99 * time.Millisecond)
			So(got, ShouldBeEmpty)

			m.Advance(time.Millisecond)
			So(got, ShouldResemble, []string{"early", "early-2"})
			So(m.Pending(), ShouldEqual, 1)

			m.Advance(time.Second)
			So(got, ShouldResemble, []string{"early", "early-2", "late"})
			So(m.Now(), ShouldEqual, 1100*time.Millisecond)
		})

		Convey("Timers scheduled by timers fire within the same Advance", func() {
			var tick func()
			tick = func() {
				got = append(got, "tick")
				if len(got) < 3 {
					m.After(100*time.Millisecond, tick)
				}
			}
			m.After(100*time.Millisecond, tick)
			m.Advance(time.Second)
			So(len(got), ShouldEqual, 3)
		})

		Convey("Stopped timers are removed", func() {
			timer := m.After(time.Millisecond, func() { got = append(got, "x") })
			So(timer.Stop(), ShouldBeTrue)
			So(timer.Stop(), ShouldBeFalse)
			m.Advance(time.Second)
			So(got, ShouldBeEmpty)
		})
	})
}
