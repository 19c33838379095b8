package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simars/portal"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `Renders every page, post, the RSS feed and the sitemap into the
output directory (default ./public_html), replacing its contents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if buildOut != "" {
			cfg.OutputDir = buildOut
		}
		// The mirror of a one-off build never outlives the process.
		cfg.DatabasePath = ":memory:"

		ctx := context.Background()
		app := portal.New(cfg)
		defer func() {
			if err := app.Close(); err != nil {
				log.Warnf("close: %v", err)
			}
		}()
		if err := app.Open(ctx); err != nil {
			return err
		}
		stats, err := app.Export(ctx, app.Config.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %d pages and %d posts into %s\n", stats.Pages, stats.Posts, app.Config.OutputDir)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (overrides output_dir)")
}
