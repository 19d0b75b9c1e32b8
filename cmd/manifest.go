package cmd

import (
	"encoding/json"
	"os"

	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/manifest"
	"github.com/mediaspawn/mediaspawn/open"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().BoolP("json", "j", false, "Print the manifest as JSON")
	manifestCmd.Flags().Bool("schema", false, "Print the JSON Schema of a spawn")
	manifestCmd.Flags().Bool("plan", false, "With --schema, describe a whole plan file")
	manifestCmd.Flags().BoolP("open", "o", false, "Open the plugin website")
	manifestCmd.SetOut(os.Stdout)
}

// manifestCmd describes the plugin and the options a spawn takes.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Describe the spawn options of the plugin",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			schema = lo.Must(cmd.Flags().GetBool("schema"))
			whole  = lo.Must(cmd.Flags().GetBool("plan"))
		)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		if schema {
			handleErr(encoder.Encode(manifest.Schema(whole)))
			return
		}

		m := manifest.Get()
		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(m.About.Website))
			return
		}

		if asJson {
			handleErr(encoder.Encode(m))
			return
		}

		cmd.Printf("%s %s\n", style.Bold(m.About.Name), style.Faint(m.About.Version))
		cmd.Println(style.Fg(color.Blue)(m.About.Website))
		cmd.Println()

		required := m.Required()
		for _, o := range m.Options {
			name := style.Fg(color.Purple)(o.Name)
			if lo.Contains(required, o.Name) {
				name += style.Fg(color.Red)("*")
			}

			cmd.Printf("%s %s %s", name, o.Label, style.Faint(o.Elem+"/"+o.Type))
			if o.Default != nil {
				cmd.Printf(" %s %v", style.Faint("default"), o.Default)
			}
			cmd.Println()
		}
	},
}
