package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"time"

	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/key"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/mediaspawn/mediaspawn/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
	versionCmd.Flags().BoolP("check", "c", false, "Check whether a newer release is available")
	lo.Must0(viper.BindPFlag(key.CliVersionCheck, versionCmd.Flags().Lookup("check")))
}

// versionCmd prints the version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Long:  "Display the version, build revision, platform and embedded player scripts.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		versionInfo := struct {
			Version  string
			OS       string
			Arch     string
			BuiltAt  string
			BuiltBy  string
			Revision string
			App      string
			Backend  string
			Scripts  []string
		}{
			Version:  constant.Version,
			App:      constant.Mediaspawn,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Revision: constant.Revision,
			Backend:  viper.GetString(key.PlayerBackend),
			Scripts:  script.Builtins(),
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(color.Purple),
			"green":   style.Fg(color.Green),
			"join":    strings.Join,
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Backend" }}         {{ green .Backend }}
  {{ faint "Scripts" }}         {{ join .Scripts ", " }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))

		if viper.GetBool(key.CliVersionCheck) {
			notifyNewer(cmd)
		}
	},
}

func notifyNewer(cmd *cobra.Command) {
	latest, newer, err := version.NewChecker(nil, version.ReleasesURL, 48*time.Hour).Newer(constant.Version)
	if err != nil {
		cmd.Printf("\n%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), style.Faint("could not check for updates: "+err.Error()))
		return
	}

	if !newer {
		cmd.Printf("\n%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Faint("up to date"))
		return
	}

	cmd.Printf(
		"\n%s New version is available %s %s\n%s\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint("(you are on "+constant.Version+")"),
		style.Faint("https://github.com/mediaspawn/mediaspawn/releases/tag/v"+latest),
	)
}
