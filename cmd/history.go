package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/history"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("remove", "r", "", "Forget the plan at the given path")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists played plans.
var historyCmd = &cobra.Command{
	Use:   "history [filter]",
	Short: "List played plans, most recent first",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if path := lo.Must(cmd.Flags().GetString("remove")); path != "" {
			handleErr(history.Remove(path))
			fmt.Printf("%s forgot %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
			return
		}

		var (
			records []*history.Record
			err     error
		)
		if len(args) == 1 {
			records, err = history.Search(args[0])
		} else {
			records, err = history.Recent()
		}
		handleErr(err)

		if len(records) == 0 {
			cmd.Println(style.Faint("no plans played yet"))
			return
		}

		for _, r := range records {
			mark := style.Fg(color.Green)(icon.Get(icon.Success))
			if r.Failures > 0 {
				mark = style.Fg(color.Red)(icon.Get(icon.Fail))
			}

			cmd.Printf(
				"%s %s %s %s\n  %s\n",
				mark,
				style.Fg(color.Purple)(r.Name),
				style.Faint(util.Quantify(r.Runs, "run", "runs")),
				style.Faint(r.LastRun.Format(time.DateTime)),
				r.Path,
			)
		}
	},
}
