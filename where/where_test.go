package where

import (
	"path/filepath"
	"testing"

	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		for name, fn := range map[string]func() string{
			"Config":  Config,
			"Cache":   Cache,
			"Logs":    Logs,
			"Scripts": Scripts,
			"Plans":   Plans,
		} {
			Convey(name+"()", func() {
				path := fn()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("Scripts lives under the cache", func() {
			So(filepath.Dir(Scripts()), ShouldEqual, Cache())
		})

		Convey("Config honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/config")
			So(Config(), ShouldEqual, "/custom/config")
		})
	})
}
