package cli

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/config"
	"github.com/spf13/cobra"
)

var errInvalidLayout = errors.New("layout is invalid")

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <layout.toml>",
		Short: "Check a layout file and report every misconfigured panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			l, err := config.Load(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("Loaded layout", "path", args[0], "panels", len(l.Panels))

			problems := splitErrors(l.Validate())
			if len(problems) == 0 {
				printSuccess(out, "%s: %d panels", args[0], len(l.Panels))
				return nil
			}

			fmt.Fprintln(out, styleTitle.Render(args[0]))
			for _, p := range problems {
				printError(out, "%s", p)
			}
			return fmt.Errorf("%w: %d problems", errInvalidLayout, len(problems))
		},
	}
}

// splitErrors flattens an errors.Join result.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
