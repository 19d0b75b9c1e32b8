package config

import (
	"testing"
	"time"

	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every default", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("spawner.poll_interval"), ShouldEqual, "spawner_poll_interval")
		})

		Convey("Field env names carry the application prefix", func() {
			f := Default[key.SpawnerLoadTimeout]
			So(f.Env(), ShouldEqual, "MEDIASPAWN_SPAWNER_LOAD_TIMEOUT")
		})
	})
}

func TestDurations(t *testing.T) {
	Convey("Given the spawner timing keys", t, func() {
		_ = Setup()

		Convey("Defaults match the Popcorn.js plugin cadence", func() {
			So(PollInterval(), ShouldEqual, 300*time.Millisecond)
			So(LoadTimeout(), ShouldEqual, 30*time.Second)
		})

		Convey("A zero timeout means waiting forever", func() {
			viper.Set(key.SpawnerLoadTimeout, 0)
			So(LoadTimeout(), ShouldEqual, time.Duration(0))
			viper.Set(key.SpawnerLoadTimeout, 30)
		})

		Convey("A non positive poll interval falls back to the default", func() {
			viper.Set(key.SpawnerPollInterval, 0)
			So(PollInterval(), ShouldEqual, 300*time.Millisecond)
			viper.Set(key.SpawnerPollInterval, 300)
		})
	})
}
