package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/mediaspawn/mediaspawn/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scriptsCmd)
}

// scriptsCmd manages player scripts.
var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage builtin and downloaded player scripts",
}

func init() {
	scriptsCmd.AddCommand(scriptsListCmd)
	scriptsListCmd.Flags().BoolP("builtin", "b", false, "List only the scripts shipped with the binary")
	scriptsListCmd.Flags().BoolP("cached", "c", false, "List only downloaded scripts")
	scriptsListCmd.MarkFlagsMutuallyExclusive("builtin", "cached")
	scriptsListCmd.SetOut(os.Stdout)
}

// scriptsListCmd lists known player scripts.
var scriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtin and cached player scripts",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			builtinOnly = lo.Must(cmd.Flags().GetBool("builtin"))
			cachedOnly  = lo.Must(cmd.Flags().GetBool("cached"))
			headerStyle = style.New().Bold(true).Foreground(color.HiPurple).Render
		)

		if !cachedOnly {
			cmd.Println(headerStyle("Builtin"))
			for _, url := range script.Builtins() {
				cmd.Println(url)
			}
		}

		if builtinOnly {
			return
		}

		cached, err := script.Cached()
		handleErr(err)

		if !cachedOnly {
			cmd.Println()
		}
		cmd.Printf("%s %s\n", headerStyle("Cached"), style.Faint(where.Scripts()))
		for _, path := range cached {
			cmd.Println(filepath.Base(path))
		}
		if len(cached) == 0 {
			cmd.Println(style.Faint("none"))
		}
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsClearCmd)
}

// scriptsClearCmd drops every downloaded script.
var scriptsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove downloaded player scripts",
	Run: func(cmd *cobra.Command, args []string) {
		cached, err := script.Cached()
		handleErr(err)
		handleErr(script.ClearCache())

		fmt.Printf(
			"%s cleared %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(cached), "script", "scripts"),
		)
	},
}
