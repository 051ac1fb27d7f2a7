// Package cli implements the layoutbench command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	layout "github.com/grindlemire/go-layout"
)

const appName = "layoutbench"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Exercise the incremental layout scheduler on synthetic trees",
		Long: `layoutbench builds synthetic element trees, mutates them at random and drains
each one through its own scheduler and dispatcher, then reports pass statistics.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.runCommand())
	root.AddCommand(c.configCommand())
	return root
}

// loadConfig returns the scheduler config from path, or the defaults when
// path is empty.
func loadConfig(path string) (layout.Config, error) {
	if path == "" {
		return layout.DefaultConfig(), nil
	}
	cfg, err := layout.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
