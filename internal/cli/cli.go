// Package cli implements the panelctl command-line interface.
//
// panelctl loads panel layout files and exercises them without a display:
//   - validate: report every misconfigured panel of a layout
//   - simulate: drive a headless controller through a list of steps and
//     print the panel stack after each one
//   - version: print build information
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// slogger hands the CLI logger to the library as an slog handler.
func (c *CLI) slogger() *slog.Logger {
	return slog.New(c.Logger)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "panelctl",
		Short:        "panelctl validates and simulates uipanel layouts",
		Long:         `panelctl loads uipanel layout files, reports configuration problems and replays open/close sequences against a headless controller.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(versionTemplate())

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.versionCommand())

	return root
}
