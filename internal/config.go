package internal

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thorcollective/hearth/internal/models"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
	Hub    HubConfig         `yaml:"hub"`
	MCP    MCPConfig         `yaml:"mcp"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Hub.Validate()
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

// HTTPConfig holds HTTP server configuration.
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

// VaultConfig holds the local hunt vault layout. Categories name the
// directories scanned for hunt files; Excluded lists file names skipped
// during a sync (templates, READMEs).
type VaultConfig struct {
	Path       string   `yaml:"path"`
	Categories []string `yaml:"categories"`
	Excluded   []string `yaml:"excluded"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// EffectiveCategories falls back to the canonical category directories
// when the config names none.
func (c *VaultConfig) EffectiveCategories() []string {
	if len(c.Categories) > 0 {
		return c.Categories
	}
	return models.Categories
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
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

// HubConfig identifies the upstream hunt repository used for browsing,
// submissions, and source deep links.
type HubConfig struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`

	// Optional endpoint overrides, mainly for tests and proxies.
	APIBase string `yaml:"api_base"`
	RawBase string `yaml:"raw_base"`
}

// Validate validates the hub configuration.
func (c *HubConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Owner, validation.Required),
		validation.Field(&c.Repo, validation.Required),
		validation.Field(&c.Branch, validation.Required),
	)
}

// RepoURL returns the repository home page URL.
func (c *HubConfig) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", c.Owner, c.Repo)
}

// SourceBaseURL returns the blob-view prefix that hunt file paths are
// appended to for deep links.
func (c *HubConfig) SourceBaseURL() string {
	return fmt.Sprintf("%s/blob/%s", c.RepoURL(), strings.TrimSpace(c.Branch))
}

// MCPConfig controls the optional MCP stdio server.
type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
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
		Vault: VaultConfig{
			Path:       "./vault",
			Categories: models.Categories,
			Excluded:   []string{"README.md", "hunt-template.md"},
		},
		SQLite: SQLiteConfig{
			Path: "./hearth.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Hub: HubConfig{
			Owner:  "THORCollective",
			Repo:   "HEARTH",
			Branch: "main",
		},
	}
}
