package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignite/gophish-awareness/internal/config"
	"github.com/ignite/gophish-awareness/internal/gophish"
	"github.com/ignite/gophish-awareness/internal/reporting"
)

var (
	reportCampaignID int64
	reportCSVOut     string
	reportInterval   int
	reportCount      int
)

// reportCmd fetches campaign results and prints metrics, optionally polling.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch campaign results and compute open/click metrics",
	Long: `Fetch a campaign's results, print an engagement report, and optionally
write per-recipient rows to CSV.

With --poll-interval the report refreshes repeatedly: --poll-count polls in
total, or until the campaign is Completed when --poll-count is 0. The CSV
file is overwritten on every refresh.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Int64Var(&reportCampaignID, "campaign-id", 0,
		"Campaign ID to report on (required)")
	reportCmd.Flags().StringVar(&reportCSVOut, "csv-out", "",
		"Write per-recipient results to a CSV file")
	reportCmd.Flags().IntVar(&reportInterval, "poll-interval", 0,
		"Seconds between report refreshes; 0 reports once")
	reportCmd.Flags().IntVar(&reportCount, "poll-count", 1,
		"Number of polls when using --poll-interval; 0 means until completed")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportCampaignID == 0 {
		return errors.New("--campaign-id is required")
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gophish.NewClient(gophish.Config{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout(),
		VerifyTLS: cfg.VerifyTLS,
	})

	interval := reportInterval
	if interval < 0 {
		interval = 0
	}

	poller := &reporting.Poller{
		Fetcher:      client,
		CampaignID:   reportCampaignID,
		Interval:     time.Duration(interval) * time.Second,
		Count:        reportCount,
		CSVPath:      reportCSVOut,
		UniqueOpens:  cfg.Reporting.UniqueOpensOnly,
		UniqueClicks: cfg.Reporting.UniqueClicksOnly,
		Out:          cmd.OutOrStdout(),
	}

	return poller.Run(ctx)
}
