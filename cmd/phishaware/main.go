// phishaware orchestrates phishing-awareness campaigns against a Gophish
// server: it launches campaigns from a YAML config behind an explicit
// safety gate, and reports open/click metrics with optional CSV export.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ignite/gophish-awareness/internal/pkg/logger"
)

var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phishaware",
	Short: "Gophish awareness simulator - controlled phishing awareness tool",
	Long: `phishaware drives phishing-awareness campaigns through the Gophish API.

It resolves the group, template, landing page, and sending profile named in
the config file to their server-side IDs, creates the campaign, and reports
open/click metrics as recipients interact with it.

Live sends are gated: they require allow_live_send in the config AND an
explicit --confirm phrase. The default is a dry run that only prints the
plan.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logger.ParseLevel(logLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config",
		filepath.Join("config", "sample_config.yaml"), "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
