package cmd

import (
	"os"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(typesCmd)
	typesCmd.Flags().BoolP("supported", "s", false, "List only types a player exists for")
	typesCmd.SetOut(os.Stdout)
}

// typesCmd lists media types, optionally fuzzy filtered.
var typesCmd = &cobra.Command{
	Use:   "types [filter]",
	Short: "List the media types sources resolve to",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		types := media.Types()

		if len(args) == 1 {
			types = lo.Filter(types, func(t media.Type, _ int) bool {
				return fuzzy.MatchFold(args[0], t.String())
			})
		}

		if lo.Must(cmd.Flags().GetBool("supported")) {
			types = lo.Filter(types, func(t media.Type, _ int) bool {
				return t.Supported()
			})
		}

		for _, t := range types {
			mark := style.Fg(color.Green)(icon.Get(icon.Success))
			if !t.Supported() {
				mark = style.Fg(color.Red)(icon.Get(icon.Fail))
			}

			line := mark + " " + style.Fg(color.Purple)(t.String())
			if t.NeedsImplementation() {
				line += " " + style.Faint("(fetches a player script)")
			}
			cmd.Println(line)
		}
	},
}
