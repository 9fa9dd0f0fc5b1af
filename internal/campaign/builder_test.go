package campaign

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/gophish-awareness/internal/config"
	"github.com/ignite/gophish-awareness/internal/gophish"
)

// fakeLister serves canned resource lists keyed by kind.
type fakeLister struct {
	groups    []gophish.Resource
	templates []gophish.Resource
	pages     []gophish.Resource
	profiles  []gophish.Resource
	err       error
}

func (f *fakeLister) ListGroups(ctx context.Context) ([]gophish.Resource, error) {
	return f.groups, f.err
}
func (f *fakeLister) ListTemplates(ctx context.Context) ([]gophish.Resource, error) {
	return f.templates, f.err
}
func (f *fakeLister) ListPages(ctx context.Context) ([]gophish.Resource, error) {
	return f.pages, f.err
}
func (f *fakeLister) ListSendingProfiles(ctx context.Context) ([]gophish.Resource, error) {
	return f.profiles, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL: "https://gophish.internal:3333",
		APIKey:  "k",
		Campaign: config.CampaignConfig{
			Name:               "Q3 Awareness Test",
			GroupName:          "All Staff",
			TemplateName:       "Password Reset",
			PageName:           "Login Portal",
			SendingProfileName: "Internal SMTP",
			URL:                "https://phish.example.com",
		},
	}
}

func populatedLister() *fakeLister {
	return &fakeLister{
		groups:    []gophish.Resource{{ID: 3, Name: "All Staff"}},
		templates: []gophish.Resource{{ID: 7, Name: "Password Reset"}},
		pages:     []gophish.Resource{{ID: 5, Name: "Login Portal"}},
		profiles:  []gophish.Resource{{ID: 2, Name: "Internal SMTP"}},
	}
}

func TestBuildPayload(t *testing.T) {
	req, err := BuildPayload(context.Background(), populatedLister(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, "Q3 Awareness Test", req.Name)
	assert.Equal(t, gophish.ResourceRef{ID: 7, Name: "Password Reset"}, req.Template)
	assert.Equal(t, gophish.ResourceRef{ID: 5, Name: "Login Portal"}, req.Page)
	assert.Equal(t, gophish.ResourceRef{ID: 2, Name: "Internal SMTP"}, req.SMTP)
	require.Len(t, req.Groups, 1)
	assert.Equal(t, int64(3), req.Groups[0].ID)
	assert.Equal(t, "https://phish.example.com", req.URL)

	// Flat compatibility IDs mirror the nested refs.
	assert.Equal(t, int64(7), req.TemplateID)
	assert.Equal(t, int64(5), req.PageID)
	assert.Equal(t, int64(2), req.SMTPID)
	assert.Equal(t, []int64{3}, req.GroupIDs)

	// No launch date configured, none sent.
	assert.Empty(t, req.LaunchDate)
}

func TestBuildPayloadWithLaunchDate(t *testing.T) {
	cfg := testConfig()
	cfg.Campaign.LaunchDate = "2026-09-01T09:00:00Z"

	req, err := BuildPayload(context.Background(), populatedLister(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01T09:00:00Z", req.LaunchDate)
}

func TestBuildPayloadUnknownTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.Campaign.TemplateName = "Does Not Exist"

	_, err := BuildPayload(context.Background(), populatedLister(), cfg)
	require.Error(t, err)

	var nfErr *gophish.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Contains(t, err.Error(), "Password Reset")
}

func TestBuildPayloadListFailure(t *testing.T) {
	lister := populatedLister()
	lister.err = errors.New("connection refused")

	_, err := BuildPayload(context.Background(), lister, testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving group")
}

func TestFormatPlan(t *testing.T) {
	req, err := BuildPayload(context.Background(), populatedLister(), testConfig())
	require.NoError(t, err)

	plan := FormatPlan(req)
	lines := strings.Split(plan, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Dry run plan:", lines[0])
	assert.Contains(t, plan, "- Campaign name: Q3 Awareness Test")
	assert.Contains(t, plan, "- Template ID: 7")
	assert.Contains(t, plan, "- Group IDs: [3]")
	assert.NotContains(t, plan, "Launch date")
}

func TestFormatPlanWithLaunchDate(t *testing.T) {
	cfg := testConfig()
	cfg.Campaign.LaunchDate = "2026-09-01T09:00:00Z"

	req, err := BuildPayload(context.Background(), populatedLister(), cfg)
	require.NoError(t, err)

	plan := FormatPlan(req)
	assert.Contains(t, plan, "- Launch date: 2026-09-01T09:00:00Z")
}
