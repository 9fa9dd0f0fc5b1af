// Package config loads and validates the YAML configuration for the
// awareness tool.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the tool.
type Config struct {
	AllowLiveSend  bool            `yaml:"allow_live_send"`
	DryRun         bool            `yaml:"dry_run"`
	BaseURL        string          `yaml:"base_url"`
	APIKey         string          `yaml:"api_key"`
	VerifyTLS      bool            `yaml:"verify_tls"`
	TimeoutSeconds int             `yaml:"timeout_seconds"`
	Campaign       CampaignConfig  `yaml:"campaign"`
	Reporting      ReportingConfig `yaml:"reporting"`
}

// CampaignConfig holds campaign settings that map to Gophish resources.
// All resources are referenced by name and resolved to IDs at launch time.
type CampaignConfig struct {
	Name               string `yaml:"name"`
	GroupName          string `yaml:"group_name"`
	TemplateName       string `yaml:"template_name"`
	PageName           string `yaml:"page_name"`
	SendingProfileName string `yaml:"sending_profile_name"`
	URL                string `yaml:"url"`
	LaunchDate         string `yaml:"launch_date"`
}

// ReportingConfig controls how aggregate metrics are computed.
type ReportingConfig struct {
	UniqueOpensOnly  bool `yaml:"unique_opens_only"`
	UniqueClicksOnly bool `yaml:"unique_clicks_only"`
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ValidationError is returned when configuration is missing or invalid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// rawConfig mirrors Config but keeps booleans as pointers so absent keys
// can be told apart from explicit false and given safe defaults.
type rawConfig struct {
	AllowLiveSend  bool           `yaml:"allow_live_send"`
	DryRun         *bool          `yaml:"dry_run"`
	BaseURL        string         `yaml:"base_url"`
	APIKey         string         `yaml:"api_key"`
	VerifyTLS      *bool          `yaml:"verify_tls"`
	TimeoutSeconds int            `yaml:"timeout_seconds"`
	Campaign       CampaignConfig `yaml:"campaign"`
	Reporting      struct {
		UniqueOpensOnly  *bool `yaml:"unique_opens_only"`
		UniqueClicksOnly *bool `yaml:"unique_clicks_only"`
	} `yaml:"reporting"`
}

// Load reads a YAML config file and applies defaults. It does not consult
// the environment; use LoadFromEnv for the full resolution order.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := &Config{
		AllowLiveSend:  raw.AllowLiveSend,
		DryRun:         boolOr(raw.DryRun, true),
		BaseURL:        resolvePlaceholder(raw.BaseURL),
		APIKey:         resolvePlaceholder(raw.APIKey),
		VerifyTLS:      boolOr(raw.VerifyTLS, true),
		TimeoutSeconds: raw.TimeoutSeconds,
		Campaign:       raw.Campaign,
		Reporting: ReportingConfig{
			UniqueOpensOnly:  boolOr(raw.Reporting.UniqueOpensOnly, true),
			UniqueClicksOnly: boolOr(raw.Reporting.UniqueClicksOnly, true),
		},
	}

	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 10
	}

	return cfg, nil
}

// LoadFromEnv loads the config file, then applies .env and environment
// variable overrides, then validates. This is the entry point the CLI uses.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env if present; missing files are fine.
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if baseURL := os.Getenv("GOPHISH_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if apiKey := os.Getenv("GOPHISH_API_KEY"); apiKey != "" {
		cfg.APIKey = apiKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field required to talk to Gophish and name a
// campaign is present.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
	}{
		{"base_url", c.BaseURL},
		{"api_key", c.APIKey},
		{"campaign.name", c.Campaign.Name},
		{"campaign.group_name", c.Campaign.GroupName},
		{"campaign.template_name", c.Campaign.TemplateName},
		{"campaign.page_name", c.Campaign.PageName},
		{"campaign.sending_profile_name", c.Campaign.SendingProfileName},
		{"campaign.url", c.Campaign.URL},
	}
	for _, check := range checks {
		if check.value == "" {
			return &ValidationError{Field: check.field, Reason: "is required"}
		}
	}
	return nil
}

// resolvePlaceholder expands a ${ENV_VAR} value from the environment so
// config files can reference secrets without embedding them. Unset
// placeholders pass through unchanged so a failing request shows the
// unresolved name instead of an empty string.
func resolvePlaceholder(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		if env, ok := os.LookupEnv(value[2 : len(value)-1]); ok {
			return env
		}
	}
	return value
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
