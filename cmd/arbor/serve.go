package main

import (
	"context"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the JSON API, the live event stream (SSE) and Prometheus metrics.
When redis.addr is configured, every event is also published on redis.channel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		echo, _ := cmd.Flags().GetBool("echo")
		if redisAddr, _ := cmd.Flags().GetString("redis"); redisAddr != "" {
			cfg.Redis.Addr = redisAddr
		}

		opts := cli.ServeOptions{Addr: addr}
		if echo {
			opts.Echo = cmd.OutOrStdout()
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.HandleExecutionError(cli.RunServe(sigCtx, cfg, logger, opts))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Address to listen on (default server.addr, :8080)")
	serveCmd.Flags().String("redis", "", "Redis address for event publishing")
	serveCmd.Flags().Bool("echo", false, "Also draw the animation on this terminal")
}
