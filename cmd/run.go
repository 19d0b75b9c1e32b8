package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/history"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/plan"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/mediaspawn/mediaspawn/stage"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/mediaspawn/mediaspawn/timeline"
	"github.com/mediaspawn/mediaspawn/tui"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("tui", "t", false, "Show the stage view instead of printing lifecycle events")
	runCmd.Flags().Float64P("rate", "r", 1, "Playback rate of the timeline clock")
	runCmd.Flags().BoolP("strict", "s", false, "Exit with an error when any spawn failed")
	runCmd.Flags().BoolP("continue", "c", false, "Play the most recently played plan again")

	runCmd.SetOut(os.Stdout)
}

// runCmd plays a plan file.
var runCmd = &cobra.Command{
	Use:     "run <plan>",
	Short:   "Play a plan and spawn its media along the timeline",
	Args:    cobra.MaximumNArgs(1),
	Example: "  mediaspawn run ./talk.toml --tui",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			withTUI = lo.Must(cmd.Flags().GetBool("tui"))
			rate    = lo.Must(cmd.Flags().GetFloat64("rate"))
			strict  = lo.Must(cmd.Flags().GetBool("strict"))
		)

		path, err := planPath(cmd, args)
		handleErr(err)

		p, err := plan.Load(path)
		handleErr(err)
		handleErr(p.Validate())

		options := stage.FromConfig()
		if !withTUI {
			printer := &eventPrinter{cmd: cmd}
			options.OnEvent = printer.event
			options.OnState = printer.state
		}

		s := stage.New(p, options)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var views []func(context.Context) error
		if withTUI {
			views = append(views, func(ctx context.Context) error {
				return tui.Run(ctx, &tui.Options{
					Title:    p.Name,
					Timeline: s.Timeline,
					Post:     s.Loop.Post,
				})
			})
		}

		handleErr(s.Run(ctx, rate, views...))

		errs := s.Errors.All()
		if err := history.Save(path, p.Name, len(errs)); err != nil {
			log.Warn(err)
		}

		for _, err := range errs {
			cmd.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), err)
		}

		if strict && len(errs) > 0 {
			handleErr(fmt.Errorf("%s failed", util.Quantify(len(errs), "spawn", "spawns")))
		}
	},
}

func planPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	if !lo.Must(cmd.Flags().GetBool("continue")) {
		return "", errors.New("a plan is required, or --continue to replay the last one")
	}

	last, ok := history.Last().Get()
	if !ok {
		return "", errors.New("no plan was played yet")
	}
	return last.Path, nil
}

// eventPrinter prints lifecycle events as they happen on the loop.
type eventPrinter struct {
	cmd *cobra.Command
}

func (p *eventPrinter) event(e timeline.Event) {
	i := icon.Enter
	if e.Kind == timeline.Exit {
		i = icon.Exit
	}

	p.cmd.Printf(
		"%s %s %s entry %d\n",
		style.Faint(formatOffset(e.At)),
		style.Fg(color.Cyan)(icon.Get(i)),
		e.Kind,
		e.Entry,
	)
}

func (p *eventPrinter) state(inst *spawner.Instance, s spawner.State) {
	var (
		i     = icon.Progress
		paint = style.Fg(color.Yellow)
	)

	switch s {
	case spawner.Ready:
		i, paint = icon.Success, style.Fg(color.Green)
	case spawner.Failed:
		i, paint = icon.Fail, style.Fg(color.Red)
	case spawner.TornDown:
		i, paint = icon.Exit, style.Faint
	}

	p.cmd.Printf(
		"%s %s %s %s\n",
		paint(icon.Get(i)),
		style.Fg(color.Purple)(inst.ContainerID()),
		paint(util.Capitalize(s.String())),
		style.Faint(inst.Options().Source),
	)
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%7.2fs", d.Seconds())
}
