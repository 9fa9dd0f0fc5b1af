package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ignite/gophish-awareness/internal/campaign"
	"github.com/ignite/gophish-awareness/internal/config"
	"github.com/ignite/gophish-awareness/internal/gophish"
	"github.com/ignite/gophish-awareness/internal/pkg/logger"
)

var (
	launchDryRun  bool
	launchConfirm string
)

// launchCmd resolves resources and creates the campaign (or prints the plan).
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Create an awareness campaign from the config file",
	Long: `Resolve the configured group, template, page, and sending profile to
their Gophish IDs and create the campaign.

Without --confirm ` + campaign.ConfirmPhrase + ` and allow_live_send: true
in the config, this only prints the plan.`,
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().BoolVar(&launchDryRun, "dry-run", false,
		"Validate and print the plan without sending")
	launchCmd.Flags().StringVar(&launchConfirm, "confirm", "",
		fmt.Sprintf("Required confirmation phrase for live sends: %s", campaign.ConfirmPhrase))
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Resolve the safety posture once, before any API call.
	gate := campaign.ResolveSendMode(cfg, campaign.GateOptions{
		DryRun:  launchDryRun,
		Confirm: launchConfirm,
	})
	if gate.Mode == campaign.ModeLiveBlocked {
		return errors.New("safety check failed: " + gate.Reason)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gophish.NewClient(gophish.Config{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout(),
		VerifyTLS: cfg.VerifyTLS,
	})

	payload, err := campaign.BuildPayload(ctx, client, cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve campaign resources: %w", err)
	}

	if gate.Mode == campaign.ModeDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), campaign.FormatPlan(payload))
		return nil
	}

	logger.Info("creating campaign",
		"campaign", payload.Name,
		"mode", gate.Mode.String(),
	)

	created, err := client.CreateCampaign(ctx, *payload)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Campaign created with ID: %d\n", created.ID)
	fmt.Fprintln(cmd.OutOrStdout(), "Use 'phishaware report --campaign-id' to fetch click metrics.")
	return nil
}
