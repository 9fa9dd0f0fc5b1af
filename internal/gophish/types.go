package gophish

import "fmt"

// Resource is the minimal identity shared by every listable Gophish
// resource (groups, templates, pages, sending profiles, campaigns).
type Resource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Campaign is a campaign payload, optionally including per-recipient results.
// Absent fields decode to zero values; the reporting layer treats those as
// empty rather than failing.
type Campaign struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	URL     string   `json:"url"`
	Results []Result `json:"results"`
}

// Result is one recipient's outcome within a campaign.
type Result struct {
	Email  string  `json:"email"`
	Status string  `json:"status"`
	Events []Event `json:"events"`
}

// Event is a timestamped recipient action. Time is an opaque string straight
// from the API; it is never parsed, so values survive export unchanged
// regardless of the server's timezone formatting.
type Event struct {
	Email   string `json:"email"`
	Type    string `json:"type"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Event types the reporting layer cares about. Other types pass through
// untouched in recipient rows.
const (
	EventOpened  = "Opened Email"
	EventClicked = "Clicked Link"
)

// StatusCompleted is the campaign status that ends an open-ended poll.
const StatusCompleted = "Completed"

// ResourceRef names a resolved resource inside a campaign creation request.
type ResourceRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CampaignRequest is the campaign creation payload. The flat *_id fields
// duplicate the nested refs for compatibility with older Gophish releases.
type CampaignRequest struct {
	Name       string        `json:"name"`
	Template   ResourceRef   `json:"template"`
	Page       ResourceRef   `json:"page"`
	URL        string        `json:"url"`
	SMTP       ResourceRef   `json:"smtp"`
	Groups     []ResourceRef `json:"groups"`
	LaunchDate string        `json:"launch_date,omitempty"`

	TemplateID int64   `json:"template_id"`
	PageID     int64   `json:"page_id"`
	SMTPID     int64   `json:"smtp_id"`
	GroupIDs   []int64 `json:"group_ids"`
}

// APIError is returned for transport failures and non-2xx responses.
// StatusCode is 0 when the request never reached the server.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("gophish request failed: %v", e.Err)
	}
	return fmt.Sprintf("gophish API error (status %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// NotFoundError is returned when a named resource cannot be resolved.
// The message lists the available names so config typos are easy to fix.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	available := "<none>"
	if len(e.Available) > 0 {
		available = ""
		for i, name := range e.Available {
			if i > 0 {
				available += ", "
			}
			available += name
		}
	}
	return fmt.Sprintf("resource %q not found. Available: %s", e.Name, available)
}
