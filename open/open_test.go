package open

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Each platform has its own handler", t, func() {
		cases := map[string]string{
			darwin:  "open",
			linux:   "xdg-open",
			android: "termux-open",
		}

		for goos, name := range cases {
			cmd, err := command(goos, "plan.toml")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{name, "plan.toml"})
		}

		cmd, err := command(windows, "https://example.com/?a=1&b=2")
		So(err, ShouldBeNil)
		So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", "https://example.com/?a=1&b=2"})
	})

	Convey("Unknown platforms are rejected", t, func() {
		_, err := command("plan9", "plan.toml")
		So(errors.Is(err, ErrUnsupportedOS), ShouldBeTrue)
	})
}

func TestFirstEnv(t *testing.T) {
	Convey("firstEnv returns the first variable set", t, func() {
		t.Setenv("VISUAL", "")
		t.Setenv("EDITOR", "vi")
		So(firstEnv("VISUAL", "EDITOR"), ShouldEqual, "vi")

		t.Setenv("EDITOR", "")
		So(firstEnv("VISUAL", "EDITOR"), ShouldBeEmpty)
	})
}
