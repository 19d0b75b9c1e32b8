package version

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mediaspawn/mediaspawn/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	filesystem.SetMemMapFs()
	m.Run()
}

func TestCompare(t *testing.T) {
	Convey("Compare orders versions numerically", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"1.0.0", "1.0.0", 0},
			{"v1.2.0", "1.2", 0},
			{"0.10.0", "0.9.9", 1},
			{"1.0.0-rc.1", "1.0.1", -1},
		}

		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		_, err := Compare("one", "1.0.0")
		So(err, ShouldNotBeNil)
	})
}

func TestChecker(t *testing.T) {
	Convey("Given a release feed", t, func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(`{"tag_name":"v0.3.1"}`))
		}))
		defer srv.Close()

		Convey("Latest strips the prefix and caches the answer", func() {
			c := NewChecker(srv.Client(), srv.URL, time.Hour)

			latest, err := c.Latest()
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.3.1")

			_, err = c.Latest()
			So(err, ShouldBeNil)
			So(hits.Load(), ShouldEqual, 1)
		})

		Convey("Newer compares with the running version", func() {
			c := NewChecker(srv.Client(), srv.URL, 0)

			latest, newer, err := c.Newer("0.1.0")
			So(err, ShouldBeNil)
			So(newer, ShouldBeTrue)
			So(latest, ShouldEqual, "0.3.1")

			_, newer, err = c.Newer("0.3.1")
			So(err, ShouldBeNil)
			So(newer, ShouldBeFalse)
		})
	})
}
