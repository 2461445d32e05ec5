package main

import (
	"context"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive session",
	Long:  `Opens a prompt where trees can be built, traversed and cleared repeatedly. Type "help" for commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		instant, _ := cmd.Flags().GetBool("instant")
		seed, _ := cmd.Flags().GetUint64("seed")
		out := cmd.OutOrStdout()

		if cli.IsTerminal(out) {
			tui.PrintBanner(out, arbor.Version)
		}

		opts := cli.VisualizerOptions(cfg, logger, instant, seed)
		opts = append(opts, cli.NewDisplay(out, cfg, logger).Options()...)
		v := arbor.New(opts...)

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		loopCtx, stop := context.WithCancel(sigCtx)
		defer stop()
		go func() { _ = v.Run(loopCtx) }()

		err := cli.NewREPL(v, cmd.InOrStdin(), out).Run(sigCtx)
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("instant", false, "Skip every pause")
	runCmd.Flags().Uint64("seed", 0, "Seed for the binary shape shuffle (0 picks one at random)")
}
