package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runCommand creates the run command that drives synthetic trees.
func (c *CLI) runCommand() *cobra.Command {
	var configPath string
	opts := benchOptions{
		Depth:     4,
		Fanout:    4,
		Mutations: 200,
		Trees:     4,
		Seed:      1,
		Width:     120,
		Height:    40,
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build, mutate and drain synthetic trees",
		Long: `Build --trees independent trees of the given --depth and --fanout, apply
--mutations random changes to each (resizes, visibility toggles, child
insertions and removals) and drain every tree to quiescence.

Trees run in parallel, one scheduler and dispatcher per goroutine. The same
--seed always produces the same trees and mutations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			c.Logger.Debug("starting run", "trees", opts.Trees, "depth", opts.Depth, "fanout", opts.Fanout, "seed", opts.Seed)

			results, err := runBench(cmd.Context(), opts, cfg, c.Logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderResults(results))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Depth, "depth", opts.Depth, "tree depth, root included")
	cmd.Flags().IntVar(&opts.Fanout, "fanout", opts.Fanout, "children per interior node")
	cmd.Flags().IntVar(&opts.Mutations, "mutations", opts.Mutations, "random mutations per tree")
	cmd.Flags().IntVar(&opts.Trees, "trees", opts.Trees, "independent trees to run in parallel")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "viewport width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "viewport height")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scheduler config file (.toml, .yaml)")

	return cmd
}
