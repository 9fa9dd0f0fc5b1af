package reporting

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportCSVRoundTrip(t *testing.T) {
	rows := []RecipientRow{
		{
			CampaignName:    "Q3 Awareness Test",
			CampaignStatus:  "In progress",
			RecipientEmail:  "jane@example.com",
			RecipientStatus: "Clicked Link",
			OpenCount:       2,
			ClickCount:      1,
			FirstOpenTime:   "2026-08-20T10:00:00.123456Z",
			FirstClickTime:  "2026-08-20T10:05:00Z",
			LastEventType:   "Clicked Link",
			LastEventTime:   "2026-08-20T10:05:00Z",
		},
		{
			CampaignName:    "Q3 Awareness Test",
			CampaignStatus:  "In progress",
			RecipientEmail:  "quiet@example.com",
			RecipientStatus: "Email Sent",
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSV(rows, path))

	records := readCSV(t, path)
	require.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, []string{
		"campaign_name", "campaign_status", "recipient_email", "recipient_status",
		"open_count", "click_count", "first_open_time", "first_click_time",
		"last_event_type", "last_event_time",
	}, records[0])

	assert.Equal(t, []string{
		"Q3 Awareness Test", "In progress", "jane@example.com", "Clicked Link",
		"2", "1", "2026-08-20T10:00:00.123456Z", "2026-08-20T10:05:00Z",
		"Clicked Link", "2026-08-20T10:05:00Z",
	}, records[1])

	assert.Equal(t, []string{
		"Q3 Awareness Test", "In progress", "quiet@example.com", "Email Sent",
		"0", "0", "", "", "", "",
	}, records[2])
}

func TestExportCSVZeroRowsWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, ExportCSV(nil, path))

	records := readCSV(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "campaign_name", records[0][0])
}

func TestExportCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	first := []RecipientRow{
		{CampaignName: "c", CampaignStatus: "s", RecipientEmail: "a@x"},
		{CampaignName: "c", CampaignStatus: "s", RecipientEmail: "b@x"},
	}
	require.NoError(t, ExportCSV(first, path))

	second := []RecipientRow{
		{CampaignName: "c", CampaignStatus: "s", RecipientEmail: "c@x"},
	}
	require.NoError(t, ExportCSV(second, path))

	records := readCSV(t, path)
	require.Len(t, records, 2) // no append: header + 1 row
	assert.Equal(t, "c@x", records[1][2])
}

func TestExportCSVUnwritablePath(t *testing.T) {
	err := ExportCSV(nil, filepath.Join(t.TempDir(), "missing-dir", "out.csv"))
	assert.Error(t, err)
}
