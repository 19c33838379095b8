// Command portal serves, exports, and scaffolds a portal site.
package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simars/portal"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile   string
	appConfig portal.SiteConfig
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "portal - a personal portfolio and blog",
	Long: `portal renders a portfolio landing page and a blog from markdown
posts with front-matter. It can serve the site, export it as static
files, and scaffold new sites and posts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := portal.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		logCloser = portal.SetupLogging(cfg.LoggerParams())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the portal version",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "portal %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.AddCommand(serveCmd, buildCmd, newCmd, initCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
