package cmd

import (
	"os"

	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolP("url", "u", false, "Also print the script each source needs")
	resolveCmd.SetOut(os.Stdout)
}

// resolveCmd prints the media type of each source, or why it would be rejected.
var resolveCmd = &cobra.Command{
	Use:     "resolve <source...>",
	Short:   "Print the media type a source resolves to",
	Args:    cobra.MinimumNArgs(1),
	Example: "  mediaspawn resolve https://youtu.be/dQw4w9WgXcQ intro.mp4",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			withURL  = lo.Must(cmd.Flags().GetBool("url"))
			settings = spawner.SettingsFromConfig()
			failed   bool
		)

		for _, source := range args {
			t, err := media.Resolve(source)
			if err != nil {
				failed = true
				cmd.Printf("%s %s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), source, style.Fg(color.Red)(err.Error()))
				continue
			}

			cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), source, style.Fg(color.Purple)(t.String()))
			if !withURL {
				continue
			}

			cmd.Printf("  %s %s\n", style.Faint("module"), settings.ModuleURL)
			if t.NeedsImplementation() {
				cmd.Printf("  %s %s\n", style.Faint(t.String()), settings.ImplementationURL(t))
			}
		}

		if failed {
			os.Exit(1)
		}
	},
}
