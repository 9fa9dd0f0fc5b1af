// Package gophish is a thin client for the Gophish REST API. Requests are
// deliberately simple and explicit so the tool's behavior stays easy to
// audit in a training environment. There are no automatic retries: a failed
// call surfaces immediately to the caller.
package gophish

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer is the interface for executing HTTP requests. *http.Client
// satisfies it; tests inject fakes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds connection settings for the Gophish API.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	VerifyTLS bool
}

// Client is the Gophish API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
}

// NewClient creates a new Gophish API client. Self-hosted Gophish admin
// servers often run with self-signed certificates, so TLS verification can
// be disabled via config.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if !cfg.VerifyTLS {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// doRequest performs an authenticated request against the Gophish API and
// returns the raw response body. Some endpoints return empty bodies.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	reqURL := fmt.Sprintf("%s/api%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Err: fmt.Errorf("reaching gophish at %s: %w", reqURL, err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func (c *Client) listResources(ctx context.Context, path string) ([]Resource, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if len(respBody) == 0 {
		return nil, nil
	}

	var resources []Resource
	if err := json.Unmarshal(respBody, &resources); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", path, err)
	}
	return resources, nil
}

// ListGroups returns all recipient groups.
func (c *Client) ListGroups(ctx context.Context) ([]Resource, error) {
	return c.listResources(ctx, "/groups/")
}

// ListTemplates returns all email templates.
func (c *Client) ListTemplates(ctx context.Context) ([]Resource, error) {
	return c.listResources(ctx, "/templates/")
}

// ListPages returns all landing pages.
func (c *Client) ListPages(ctx context.Context) ([]Resource, error) {
	return c.listResources(ctx, "/pages/")
}

// ListSendingProfiles returns all sending profiles.
func (c *Client) ListSendingProfiles(ctx context.Context) ([]Resource, error) {
	return c.listResources(ctx, "/smtp/")
}

// ListCampaigns returns all campaigns.
func (c *Client) ListCampaigns(ctx context.Context) ([]Resource, error) {
	return c.listResources(ctx, "/campaigns/")
}

// FindByName finds a resource by exact name. On a miss it returns a
// NotFoundError listing the available names.
func FindByName(resources []Resource, name string) (Resource, error) {
	for _, r := range resources {
		if r.Name == name {
			return r, nil
		}
	}
	available := make([]string, 0, len(resources))
	for _, r := range resources {
		available = append(available, r.Name)
	}
	return Resource{}, &NotFoundError{Name: name, Available: available}
}

// CreateCampaign creates a campaign and returns the server's view of it,
// including the assigned ID.
func (c *Client) CreateCampaign(ctx context.Context, req CampaignRequest) (*Campaign, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/campaigns/", req)
	if err != nil {
		return nil, err
	}

	var created Campaign
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &created); err != nil {
			return nil, fmt.Errorf("parsing create campaign response: %w", err)
		}
	}
	return &created, nil
}

// GetCampaign fetches a campaign by ID, optionally including per-recipient
// results.
func (c *Client) GetCampaign(ctx context.Context, id int64, includeResults bool) (*Campaign, error) {
	path := fmt.Sprintf("/campaigns/%d", id)
	if includeResults {
		path += "?include_results=true"
	}

	respBody, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var campaign Campaign
	if err := json.Unmarshal(respBody, &campaign); err != nil {
		return nil, fmt.Errorf("parsing campaign response: %w", err)
	}
	return &campaign, nil
}
