// Package reporting computes campaign engagement metrics from Gophish
// results and exports per-recipient rows to CSV.
package reporting

import (
	"fmt"
	"strings"

	"github.com/ignite/gophish-awareness/internal/gophish"
)

// unknownPlaceholder stands in for campaign fields the API left empty.
const unknownPlaceholder = "<unknown>"

// CampaignMetrics holds aggregate counts and rates for one campaign.
type CampaignMetrics struct {
	TotalRecipients int
	Opened          int
	Clicked         int
	OpenRate        float64
	ClickRate       float64
}

// ComputeMetrics derives open and click metrics from a campaign payload.
// Unique mode counts distinct recipient addresses per event type; raw mode
// counts every occurrence. Rates are percentages of total recipients and
// exactly 0.0 for an empty campaign.
func ComputeMetrics(c *gophish.Campaign, uniqueOpensOnly, uniqueClicksOnly bool) CampaignMetrics {
	totalRecipients := len(c.Results)

	// Flatten events across recipients, keeping per-recipient order.
	var allEvents []gophish.Event
	for _, result := range c.Results {
		allEvents = append(allEvents, result.Events...)
	}

	opened := countEvents(allEvents, gophish.EventOpened, uniqueOpensOnly)
	clicked := countEvents(allEvents, gophish.EventClicked, uniqueClicksOnly)

	var openRate, clickRate float64
	if totalRecipients > 0 {
		openRate = float64(opened) / float64(totalRecipients) * 100
		clickRate = float64(clicked) / float64(totalRecipients) * 100
	}

	return CampaignMetrics{
		TotalRecipients: totalRecipients,
		Opened:          opened,
		Clicked:         clicked,
		OpenRate:        openRate,
		ClickRate:       clickRate,
	}
}

// countEvents counts events of one type, either raw occurrences or distinct
// non-empty recipient addresses. Events without an address never join the
// unique set, so an anonymized event cannot collapse with another.
func countEvents(events []gophish.Event, eventType string, unique bool) int {
	if !unique {
		count := 0
		for _, e := range events {
			if e.Type == eventType {
				count++
			}
		}
		return count
	}

	seen := make(map[string]struct{})
	for _, e := range events {
		if e.Type == eventType && e.Email != "" {
			seen[e.Email] = struct{}{}
		}
	}
	return len(seen)
}

// FormatReport renders a concise five-line report from the metrics.
func FormatReport(c *gophish.Campaign, m CampaignMetrics) string {
	name := c.Name
	if name == "" {
		name = unknownPlaceholder
	}
	status := c.Status
	if status == "" {
		status = unknownPlaceholder
	}

	lines := []string{
		fmt.Sprintf("Campaign: %s", name),
		fmt.Sprintf("Status: %s", status),
		fmt.Sprintf("Recipients: %d", m.TotalRecipients),
		fmt.Sprintf("Opened: %d (%.1f%%)", m.Opened, m.OpenRate),
		fmt.Sprintf("Clicked: %d (%.1f%%)", m.Clicked, m.ClickRate),
	}

	return strings.Join(lines, "\n")
}

// RecipientRow is a flattened per-recipient view of one campaign result,
// shaped for CSV export.
type RecipientRow struct {
	CampaignName    string
	CampaignStatus  string
	RecipientEmail  string
	RecipientStatus string
	OpenCount       int
	ClickCount      int
	FirstOpenTime   string
	FirstClickTime  string
	LastEventType   string
	LastEventTime   string
}

// BuildRecipientRows flattens each campaign result into one export row.
// Rows are recomputed fresh from the payload on every call; nothing is
// carried over between polls.
//
// Counts here are always raw per-recipient totals, even when the aggregate
// metrics run in unique mode. The CSV answers "how often did this person
// engage", which is a different question than the campaign-level rates.
func BuildRecipientRows(c *gophish.Campaign) []RecipientRow {
	campaignName := c.Name
	if campaignName == "" {
		campaignName = unknownPlaceholder
	}
	campaignStatus := c.Status
	if campaignStatus == "" {
		campaignStatus = unknownPlaceholder
	}

	rows := make([]RecipientRow, 0, len(c.Results))
	for _, result := range c.Results {
		openTimes := eventTimes(result.Events, gophish.EventOpened)
		clickTimes := eventTimes(result.Events, gophish.EventClicked)

		row := RecipientRow{
			CampaignName:    campaignName,
			CampaignStatus:  campaignStatus,
			RecipientEmail:  result.Email,
			RecipientStatus: result.Status,
			OpenCount:       len(openTimes),
			ClickCount:      len(clickTimes),
		}
		if len(openTimes) > 0 {
			row.FirstOpenTime = openTimes[0]
		}
		if len(clickTimes) > 0 {
			row.FirstClickTime = clickTimes[0]
		}
		// Last event comes from the full unfiltered sequence, whatever
		// its type.
		if n := len(result.Events); n > 0 {
			row.LastEventType = result.Events[n-1].Type
			row.LastEventTime = result.Events[n-1].Time
		}

		rows = append(rows, row)
	}

	return rows
}

// eventTimes returns ordered timestamps of events of one type, skipping
// events without a time value. Timestamps stay opaque strings end to end.
func eventTimes(events []gophish.Event, eventType string) []string {
	var times []string
	for _, e := range events {
		if e.Type == eventType && e.Time != "" {
			times = append(times, e.Time)
		}
	}
	return times
}
