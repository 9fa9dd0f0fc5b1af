package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// csvHeader is the fixed column order for recipient exports. Repeated
// exports of the same campaign stay column-compatible.
var csvHeader = []string{
	"campaign_name",
	"campaign_status",
	"recipient_email",
	"recipient_status",
	"open_count",
	"click_count",
	"first_open_time",
	"first_click_time",
	"last_event_type",
	"last_event_time",
}

// ExportCSV writes recipient rows to path, overwriting any existing file.
// The header row is always written, even for zero rows. Callers needing
// history must rotate files themselves.
func ExportCSV(rows []RecipientRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.CampaignName,
			row.CampaignStatus,
			row.RecipientEmail,
			row.RecipientStatus,
			strconv.Itoa(row.OpenCount),
			strconv.Itoa(row.ClickCount),
			row.FirstOpenTime,
			row.FirstClickTime,
			row.LastEventType,
			row.LastEventTime,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing CSV file: %w", err)
	}
	return nil
}
