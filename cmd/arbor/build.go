package main

import (
	"context"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/adapters/input"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [values...]",
	Short: "Animate building a tree, then optional traversals",
	Long: `Inserts the values one by one into a fresh binary search tree, drawing the
tree after every insertion. Values may be separated by commas or spaces;
use "-" to read them from standard input.`,
	Example: `  arbor build 50 30 70 20 40 --traverse in,pre
  arbor build 1,2,3,4,5,6,7 --shape balanced --instant --mermaid
  seq 1 15 | arbor build - --shape complete`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shapeName, _ := cmd.Flags().GetString("shape")
		traversals, _ := cmd.Flags().GetStringSlice("traverse")
		instant, _ := cmd.Flags().GetBool("instant")
		seed, _ := cmd.Flags().GetUint64("seed")
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		headless, _ := cmd.Flags().GetBool("headless")

		var src ports.InputSource = input.Text(cli.JoinArgs(args))
		if len(args) == 1 && args[0] == "-" {
			src = input.NewReader(os.Stdin)
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err := cli.RunBuild(sigCtx, cmd.OutOrStdout(), cfg, logger, cli.BuildOptions{
			Source:     src,
			Shape:      shapeName,
			Traversals: traversals,
			Instant:    instant,
			Seed:       seed,
			Mermaid:    mermaid,
			Headless:   headless,
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("shape", "", "Insertion strategy: binary, avl, complete or balanced")
	buildCmd.Flags().StringSlice("traverse", nil, "Traversals to animate after the build (in, pre, post)")
	buildCmd.Flags().Bool("instant", false, "Skip every pause")
	buildCmd.Flags().Uint64("seed", 0, "Seed for the binary shape shuffle (0 picks one at random)")
	buildCmd.Flags().Bool("mermaid", false, "Print the final tree as a Mermaid diagram")
	buildCmd.Flags().Bool("headless", false, "Print results only, without drawing")
}
