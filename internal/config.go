package internal

import (
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Auth   AuthConfig        `yaml:"auth"`
	Notion NotionConfig      `yaml:"notion"`
	Write  WriteConfig       `yaml:"write"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Notion.Validate(); err != nil {
		return err
	}
	return c.Write.Validate()
}

// ApplyEnv overlays environment variables onto the configuration. Set
// variables win over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("NOTION_API_KEY"); v != "" {
		c.Notion.APIKey = v
	}
	if v := os.Getenv("NOTION_PARENT_ID"); v != "" {
		c.Notion.ParentPageID = v
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration. It is only consulted when
// the server runs in HTTP mode.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// AuthConfig holds authentication configuration for the HTTP transport.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NotionConfig holds the Notion API connection settings. APIKey and
// ParentPageID are usually supplied through the NOTION_API_KEY and
// NOTION_PARENT_ID environment variables (see ApplyEnv).
type NotionConfig struct {
	APIKey         string `yaml:"api_key"`
	ParentPageID   string `yaml:"parent_page_id"`
	BaseURL        string `yaml:"base_url"`
	Version        string `yaml:"version"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

// Validate validates the Notion configuration. ParentPageID is optional:
// without it the server still runs, but creating pages requires an
// explicit parent.
func (c *NotionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Version, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1), validation.Max(300)),
		validation.Field(&c.MaxRetries, validation.Min(0), validation.Max(10)),
	)
}

// WriteConfig tunes how content is written to pages.
type WriteConfig struct {
	// BatchSize caps the number of blocks per append call. The Notion API
	// rejects more than 100 children in one request.
	BatchSize int `yaml:"batch_size"`
	// ReplaceClearsExisting makes the replace write mode delete a page's
	// blocks before writing new content. Off, replace appends.
	ReplaceClearsExisting bool `yaml:"replace_clears_existing"`
}

// Validate validates the write configuration.
func (c *WriteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BatchSize, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Notion: NotionConfig{
			BaseURL:        "https://api.notion.com",
			Version:        "2022-06-28",
			TimeoutSeconds: 30,
			MaxRetries:     3,
		},
		Write: WriteConfig{
			BatchSize: 100,
		},
	}
}
