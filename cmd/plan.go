package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/open"
	"github.com/mediaspawn/mediaspawn/plan"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/mediaspawn/mediaspawn/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(planCmd)
}

// planCmd groups plan file helpers.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create and inspect plan files",
}

func init() {
	planCmd.AddCommand(planGenCmd)

	planGenCmd.Flags().StringP("name", "n", "", "Plan name, also used as the file name")
	planGenCmd.Flags().StringP("output", "o", "", "Output path, defaults to the plans directory")
	planGenCmd.Flags().StringP("source", "s", "", "Media source of the first spawn, prompts for everything when unset")
	planGenCmd.Flags().StringP("target", "t", "mediaspawner-container", "Target container id")
	planGenCmd.Flags().Float64("start", 0, "Start of the spawn in seconds")
	planGenCmd.Flags().Float64("end", 10, "End of the spawn in seconds")
	planGenCmd.Flags().String("caption", "", "Caption shown while the spawn is inside its interval")
	planGenCmd.Flags().Bool("autoplay", false, "Play the media on enter")
	planGenCmd.Flags().BoolP("edit", "e", false, "Open the plan in an editor once written")
	planGenCmd.Flags().BoolP("force", "f", false, "Overwrite an existing plan")
}

// planGenCmd writes a new plan with one container and one spawn.
var planGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a plan file",
	Example: "  mediaspawn plan gen\n" +
		"  mediaspawn plan gen -n talk -s https://youtu.be/dQw4w9WgXcQ --start 5 --end 30",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name   = lo.Must(cmd.Flags().GetString("name"))
			output = lo.Must(cmd.Flags().GetString("output"))
			force  = lo.Must(cmd.Flags().GetBool("force"))
			spawn  = plan.Spawn{
				Source:   lo.Must(cmd.Flags().GetString("source")),
				Target:   lo.Must(cmd.Flags().GetString("target")),
				Start:    lo.Must(cmd.Flags().GetFloat64("start")),
				End:      lo.Must(cmd.Flags().GetFloat64("end")),
				Caption:  lo.Must(cmd.Flags().GetString("caption")),
				Autoplay: lo.Must(cmd.Flags().GetBool("autoplay")),
			}
		)

		if spawn.Source == "" {
			handleErr(askSpawn(&name, &spawn))
		}

		if name == "" {
			name = "untitled"
		}

		p := &plan.Plan{
			Name:       name,
			Author:     os.Getenv("USER"),
			Duration:   spawn.End,
			Containers: []plan.Container{{ID: spawn.Target, Width: constant.FallbackWidth * 2, Height: constant.FallbackHeight * 2}},
			Spawns:     []plan.Spawn{spawn},
		}
		handleErr(p.Validate())

		if output == "" {
			output = filepath.Join(where.Plans(), util.SanitizeFilename(name)+".toml")
		}

		if exists := lo.Must(filesystem.API().Exists(output)); exists && !force {
			handleErr(fmt.Errorf("%s already exists, use --force to overwrite it", output))
		}

		handleErr(plan.Write(output, p))
		fmt.Printf("%s wrote plan to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), output)

		if lo.Must(cmd.Flags().GetBool("edit")) {
			handleErr(open.Edit(output, ""))
		}
	},
}

func askSpawn(name *string, spawn *plan.Spawn) error {
	validSource := func(ans any) error {
		_, err := media.Resolve(ans.(string))
		return err
	}

	validSeconds := func(ans any) error {
		if _, err := strconv.ParseFloat(ans.(string), 64); err != nil {
			return errors.New("seconds must be a number")
		}
		return nil
	}

	var answers struct {
		Name     string
		Source   string
		Target   string
		Start    string
		End      string
		Caption  string
		Autoplay bool
	}

	questions := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Plan name", Default: lo.Ternary(*name == "", "untitled", *name)}},
		{Name: "source", Prompt: &survey.Input{Message: "Media source", Help: "A media file or a YouTube link"}, Validate: survey.ComposeValidators(survey.Required, validSource)},
		{Name: "target", Prompt: &survey.Input{Message: "Target container", Default: spawn.Target}, Validate: survey.Required},
		{Name: "start", Prompt: &survey.Input{Message: "Start (seconds)", Default: strconv.FormatFloat(spawn.Start, 'f', -1, 64)}, Validate: validSeconds},
		{Name: "end", Prompt: &survey.Input{Message: "End (seconds)", Default: strconv.FormatFloat(spawn.End, 'f', -1, 64)}, Validate: validSeconds},
		{Name: "caption", Prompt: &survey.Input{Message: "Caption"}},
		{Name: "autoplay", Prompt: &survey.Confirm{Message: "Autoplay?", Default: spawn.Autoplay}},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	*name = answers.Name
	spawn.Source = answers.Source
	spawn.Target = answers.Target
	spawn.Start = lo.Must(strconv.ParseFloat(answers.Start, 64))
	spawn.End = lo.Must(strconv.ParseFloat(answers.End, 64))
	spawn.Caption = answers.Caption
	spawn.Autoplay = answers.Autoplay
	return nil
}

func init() {
	planCmd.AddCommand(planCheckCmd)
	planCheckCmd.SetOut(os.Stdout)
}

// planCheckCmd validates plan files without playing them.
var planCheckCmd = &cobra.Command{
	Use:   "check <plan...>",
	Short: "Validate plan files and resolve their sources",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var failed bool

		for _, path := range args {
			p, err := plan.Load(path)
			if err == nil {
				err = p.Validate()
			}

			if err == nil {
				err = errors.Join(lo.FilterMap(p.Spawns, func(s plan.Spawn, i int) (error, bool) {
					_, err := media.Resolve(s.Source)
					if err != nil {
						return fmt.Errorf("spawn %d: %w", i, err), true
					}
					return nil, false
				})...)
			}

			if err != nil {
				failed = true
				cmd.Printf("%s %s\n%s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), path, style.Fg(color.Red)(err.Error()))
				continue
			}

			cmd.Printf(
				"%s %s %s, %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				path,
				style.Faint(util.Quantify(len(p.Spawns), "spawn", "spawns")),
				style.Faint(p.TotalDuration().String()),
			)
		}

		if failed {
			os.Exit(1)
		}
	},
}
