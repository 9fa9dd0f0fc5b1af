package reporting

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ignite/gophish-awareness/internal/gophish"
	"github.com/ignite/gophish-awareness/internal/pkg/logger"
)

// CampaignFetcher is the slice of the Gophish client the poller needs.
type CampaignFetcher interface {
	GetCampaign(ctx context.Context, id int64, includeResults bool) (*gophish.Campaign, error)
}

// Poller repeatedly fetches a campaign, prints its report, and optionally
// rewrites the CSV export, until a termination condition is reached.
//
// Termination policy:
//   - Interval == 0: exactly one cycle, regardless of Count.
//   - Interval > 0, Count > 0: exactly Count cycles, sleeping between them.
//   - Interval > 0, Count == 0: until the campaign status is "Completed",
//     sleeping between attempts.
//
// A single failed fetch or export aborts the whole loop; there is no
// partial-failure recovery.
type Poller struct {
	Fetcher      CampaignFetcher
	CampaignID   int64
	Interval     time.Duration
	Count        int
	CSVPath      string
	UniqueOpens  bool
	UniqueClicks bool

	// Out receives the human-readable report each cycle.
	Out io.Writer

	// Sleep is swappable for tests; nil means time.Sleep via the context-
	// aware wait below.
	Sleep func(d time.Duration)
}

// Run executes the polling loop. The first fetch happens immediately; the
// sleep follows each non-terminal cycle. Context cancellation stops the
// loop at the next cycle boundary or mid-sleep.
func (p *Poller) Run(ctx context.Context) error {
	remaining := p.Count

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		campaign, err := p.Fetcher.GetCampaign(ctx, p.CampaignID, true)
		if err != nil {
			return fmt.Errorf("fetching campaign %d: %w", p.CampaignID, err)
		}

		metrics := ComputeMetrics(campaign, p.UniqueOpens, p.UniqueClicks)
		fmt.Fprintln(p.Out, FormatReport(campaign, metrics))

		// Each cycle overwrites the CSV; the last snapshot is authoritative.
		if p.CSVPath != "" {
			rows := BuildRecipientRows(campaign)
			if err := ExportCSV(rows, p.CSVPath); err != nil {
				return err
			}
			fmt.Fprintf(p.Out, "CSV export updated: %s\n", p.CSVPath)
		}

		logger.Debug("poll cycle complete",
			"campaign_id", campaign.ID,
			"status", campaign.Status,
			"recipients", metrics.TotalRecipients,
		)

		if p.Interval <= 0 {
			return nil
		}

		if p.Count == 0 {
			// Open-ended: poll until the campaign finishes.
			if campaign.Status == gophish.StatusCompleted {
				return nil
			}
		} else {
			remaining--
			if remaining <= 0 {
				return nil
			}
		}

		if err := p.wait(ctx); err != nil {
			return err
		}
	}
}

func (p *Poller) wait(ctx context.Context) error {
	if p.Sleep != nil {
		p.Sleep(p.Interval)
		return nil
	}

	timer := time.NewTimer(p.Interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
