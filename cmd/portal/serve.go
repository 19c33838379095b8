package main

import (
	"context"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simars/portal"
)

var (
	serveAddr    string
	serveWatch   bool
	serveMetrics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Loads the markdown posts into the SQLite mirror and serves the home,
blog, about, and post pages along with the RSS feed and sitemap. With
--watch the posts directory is reloaded whenever a file changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		if cmd.Flags().Changed("watch") {
			cfg.Watch = serveWatch
		}
		if cmd.Flags().Changed("metrics") {
			cfg.MetricsEnabled = serveMetrics
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app := portal.New(cfg)
		defer func() {
			if err := app.Close(); err != nil {
				log.Warnf("close: %v", err)
			}
		}()
		return app.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":3000", "listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload posts when files change")
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", false, "serve Prometheus metrics on /metrics")
}
