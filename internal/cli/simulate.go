package cli

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/config"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/headless"
	"github.com/spf13/cobra"
)

type simulateOpts struct {
	show     time.Duration // headless element show duration
	hide     time.Duration // headless element hide duration
	provider time.Duration // lazy instantiate delay
}

func (c *CLI) simulateCommand() *cobra.Command {
	var opts simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate <layout.toml> [steps...]",
		Short: "Replay open/close steps against a headless controller",
		Long: `Builds the layout with headless panels, opens the init panels and runs each step in order.

Steps:
  open:<name>             open a panel and wait for it
  close:<name>            close a panel and wait for it
  close-top               close the top panel
  close-top-except-init   close the top panel unless it is an init panel
  close-all               close everything above the init panels
  wait:<duration>         sleep, e.g. wait:250ms`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := ParseSteps(args[1:])
			if err != nil {
				return err
			}
			return c.simulate(cmd, args[0], steps, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.show, "show", 0, "duration of each element's show transition")
	cmd.Flags().DurationVar(&opts.hide, "hide", 0, "duration of each element's hide transition")
	cmd.Flags().DurationVar(&opts.provider, "provider-delay", 0, "delay of each lazy panel instantiation")

	return cmd
}

func (c *CLI) simulate(cmd *cobra.Command, path string, steps []Step, opts simulateOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	l, err := config.Load(path)
	if err != nil {
		return err
	}

	binder := &headless.Binder{
		ShowDuration:  opts.show,
		HideDuration:  opts.hide,
		ProviderDelay: opts.provider,
	}
	ctrl, err := config.Build(l, binder, config.BuildOptions{Logger: c.slogger()})
	if err != nil {
		for _, p := range splitErrors(err) {
			c.Logger.Warn("Skipping panel", "error", p)
		}
	}
	defer ctrl.Close()

	start := time.Now()
	if err := ctrl.InitAllPanels(ctx); err != nil {
		c.Logger.Warn("Init reported problems", "error", err)
	}
	if err := settled(ctx, ctrl); err != nil {
		return err
	}
	fmt.Fprintln(out, styleTitle.Render("init"))
	fmt.Fprintln(out, renderStack(ctrl))

	for _, step := range steps {
		c.Logger.Debug("Running step", "step", step)
		if err := step.Run(ctx, ctrl); err != nil {
			printError(out, "%s: %v", step, err)
		} else if err := settled(ctx, ctrl); err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, styleTitle.Render(iconArrow+" "+step.String()))
		fmt.Fprintln(out, renderStack(ctrl))
	}

	c.Logger.Info(fmt.Sprintf("Simulated %d steps (%s)", len(steps), time.Since(start).Round(time.Millisecond)))
	return nil
}
