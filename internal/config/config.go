package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	apperrors "github.com/alexjbarnes/oauth2-admin-mcp/internal/errors"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for the bridge.
type Config struct {
	// Authorization server base URL. The token endpoint and the admin
	// API are both resolved against it.
	ServerURL string `env:"OAUTH2_SERVER_URL" envDefault:"https://oauth2.cat-herding.net"`

	// Confidential client used for the client-credentials grant.
	ClientID     string `env:"OAUTH2_CLIENT_ID" envDefault:"mcp-admin-client"`
	ClientSecret string `env:"OAUTH2_CLIENT_SECRET"`

	// Space separated scopes requested with every token.
	Scopes string `env:"OAUTH2_SCOPES" envDefault:"admin:read admin:write"`

	// Timeout applied to every outbound HTTP request, token and admin.
	HTTPTimeout time.Duration `env:"OAUTH2_HTTP_TIMEOUT" envDefault:"30s"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// LogLevel overrides the environment's default level when set.
	LogLevel string `env:"LOG_LEVEL"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing the client secret to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
// A missing client secret is reported as ErrMissingClientSecret.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ClientSecret == "" {
		return apperrors.ErrMissingClientSecret
	}

	if c.ClientID == "" {
		return fmt.Errorf("OAUTH2_CLIENT_ID must not be empty")
	}

	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("OAUTH2_SERVER_URL is not a valid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("OAUTH2_SERVER_URL must use http or https, got %q", c.ServerURL)
	}

	if u.Host == "" {
		return fmt.Errorf("OAUTH2_SERVER_URL must include a host, got %q", c.ServerURL)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("OAUTH2_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}

	return nil
}

// ScopeList splits the configured scopes on whitespace. Repeated
// separators are ignored, so "admin:read  admin:write" yields two scopes.
func (c *Config) ScopeList() []string {
	return strings.Fields(c.Scopes)
}

// TokenURL returns the client-credentials token endpoint.
func (c *Config) TokenURL() string {
	return c.ServerURL + "/oauth2/token"
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
