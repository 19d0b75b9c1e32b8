package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/mediaspawn/mediaspawn/key"
	"github.com/mediaspawn/mediaspawn/where"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Values are parsed as the type of their default", t, func() {
		v, err := parseValue(key.SpawnerLoadTimeout, []string{"10"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 10)

		v, err = parseValue(key.FetchTLSFingerprint, []string{"true"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, true)

		v, err = parseValue(key.PlayerBackend, []string{"mpv"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "mpv")

		_, err = parseValue(key.SpawnerPollInterval, []string{"fast"})
		So(err, ShouldNotBeNil)
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Unknown keys suggest the closest one", t, func() {
		err := errUnknownKey("spawner.load_timout")
		So(err.Error(), ShouldContainSubstring, key.SpawnerLoadTimeout)
	})
}

func TestEnvVariables(t *testing.T) {
	Convey("Every config key has a prefixed variable", t, func() {
		names := envVariables()
		So(names, ShouldContain, "MEDIASPAWN_SPAWNER_LOAD_TIMEOUT")
		So(names, ShouldContain, where.EnvConfigPath)

		for _, name := range names {
			So(strings.HasPrefix(name, "MEDIASPAWN_"), ShouldBeTrue)
		}
	})
}

func TestFormatOffset(t *testing.T) {
	Convey("Offsets are printed in seconds", t, func() {
		So(formatOffset(1500*time.Millisecond), ShouldEqual, "   1.50s")
	})
}
