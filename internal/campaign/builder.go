// Package campaign builds Gophish campaign creation requests from config
// and gates live sends behind an explicit confirmation.
package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/ignite/gophish-awareness/internal/config"
	"github.com/ignite/gophish-awareness/internal/gophish"
)

// ResourceLister is the slice of the Gophish client the builder needs.
type ResourceLister interface {
	ListGroups(ctx context.Context) ([]gophish.Resource, error)
	ListTemplates(ctx context.Context) ([]gophish.Resource, error)
	ListPages(ctx context.Context) ([]gophish.Resource, error)
	ListSendingProfiles(ctx context.Context) ([]gophish.Resource, error)
}

// BuildPayload resolves the configured resource names to IDs and assembles
// the campaign creation request. Resolution is list+find-by-name; an
// unresolved name aborts with an error listing what the server offers.
func BuildPayload(ctx context.Context, client ResourceLister, cfg *config.Config) (*gophish.CampaignRequest, error) {
	group, err := resolve(ctx, client.ListGroups, cfg.Campaign.GroupName)
	if err != nil {
		return nil, fmt.Errorf("resolving group: %w", err)
	}
	template, err := resolve(ctx, client.ListTemplates, cfg.Campaign.TemplateName)
	if err != nil {
		return nil, fmt.Errorf("resolving template: %w", err)
	}
	page, err := resolve(ctx, client.ListPages, cfg.Campaign.PageName)
	if err != nil {
		return nil, fmt.Errorf("resolving page: %w", err)
	}
	profile, err := resolve(ctx, client.ListSendingProfiles, cfg.Campaign.SendingProfileName)
	if err != nil {
		return nil, fmt.Errorf("resolving sending profile: %w", err)
	}

	req := &gophish.CampaignRequest{
		Name:     cfg.Campaign.Name,
		Template: gophish.ResourceRef{ID: template.ID, Name: template.Name},
		Page:     gophish.ResourceRef{ID: page.ID, Name: page.Name},
		URL:      cfg.Campaign.URL,
		SMTP:     gophish.ResourceRef{ID: profile.ID, Name: profile.Name},
		Groups:   []gophish.ResourceRef{{ID: group.ID, Name: group.Name}},

		// Flat IDs for older Gophish API versions.
		TemplateID: template.ID,
		PageID:     page.ID,
		SMTPID:     profile.ID,
		GroupIDs:   []int64{group.ID},
	}

	// Only include launch_date when the user provides one; an empty value
	// would otherwise schedule the campaign at the zero time.
	if cfg.Campaign.LaunchDate != "" {
		req.LaunchDate = cfg.Campaign.LaunchDate
	}

	return req, nil
}

func resolve(ctx context.Context, list func(context.Context) ([]gophish.Resource, error), name string) (gophish.Resource, error) {
	resources, err := list(ctx)
	if err != nil {
		return gophish.Resource{}, err
	}
	return gophish.FindByName(resources, name)
}

// FormatPlan renders a safe, human-readable plan of what would be sent.
func FormatPlan(req *gophish.CampaignRequest) string {
	groupIDs := make([]string, len(req.Groups))
	for i, g := range req.Groups {
		groupIDs[i] = fmt.Sprintf("%d", g.ID)
	}

	lines := []string{
		"Dry run plan:",
		fmt.Sprintf("- Campaign name: %s", req.Name),
		fmt.Sprintf("- Template ID: %d", req.Template.ID),
		fmt.Sprintf("- Page ID: %d", req.Page.ID),
		fmt.Sprintf("- Sending profile ID: %d", req.SMTP.ID),
		fmt.Sprintf("- Group IDs: [%s]", strings.Join(groupIDs, ", ")),
		fmt.Sprintf("- URL: %s", req.URL),
	}
	if req.LaunchDate != "" {
		lines = append(lines, fmt.Sprintf("- Launch date: %s", req.LaunchDate))
	}

	return strings.Join(lines, "\n")
}
