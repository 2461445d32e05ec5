package main

import (
	"context"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/adapters/input"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [values...]",
	Short: "Export the tree as a Mermaid diagram",
	Long:  `Builds the tree without animation and prints a Mermaid diagram (graph TD). With --traverse, the nodes of the last traversal are marked visited.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shapeName, _ := cmd.Flags().GetString("shape")
		traversals, _ := cmd.Flags().GetStringSlice("traverse")
		seed, _ := cmd.Flags().GetUint64("seed")

		return cli.RunBuild(context.Background(), cmd.OutOrStdout(), cfg, logger, cli.BuildOptions{
			Source:     input.Text(cli.JoinArgs(args)),
			Shape:      shapeName,
			Traversals: traversals,
			Instant:    true,
			Seed:       seed,
			Mermaid:    true,
			Graph:      true,
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("shape", "", "Insertion strategy: binary, avl, complete or balanced")
	graphCmd.Flags().StringSlice("traverse", nil, "Traversals to run before exporting")
	graphCmd.Flags().Uint64("seed", 0, "Seed for the binary shape shuffle")
}
