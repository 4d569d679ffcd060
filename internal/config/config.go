package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nmedina/wardload/internal/model"
)

// Config holds all runtime configuration for a wardload run.
type Config struct {
	DSN           string
	FilePath      string
	SourceURL     string
	AdmissionDate string // YYYY-MM-DD; anything else falls back to today
	Site          string
	LogFormat     string // "text" or "json"
	Force         bool   // commit even when validation found errors
	DryRun        bool   // stop after validation

	RowDelay     time.Duration // pause between committed rows
	FetchTimeout time.Duration // HTTP timeout for remote rosters

	StoreAttempts   int           // store calls: tries per operation
	StoreRetryDelay time.Duration // store calls: base backoff delay
	StoreTimeout    time.Duration // store calls: per-attempt timeout
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	DefaultSite string `yaml:"default_site"`
	RowDelayMS  int    `yaml:"row_delay_ms"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// A site set by flag takes precedence over the file's default_site.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.Site == "" && yc.DefaultSite != "" {
		c.Site = yc.DefaultSite
	}
	if yc.RowDelayMS > 0 {
		c.RowDelay = time.Duration(yc.RowDelayMS) * time.Millisecond
	}
	return nil
}

// ResolveSite defaults an empty site and checks membership in the known set.
func (c *Config) ResolveSite() error {
	if c.Site == "" {
		c.Site = model.DefaultSite().Name
		return nil
	}
	if _, ok := model.SiteByName(c.Site); !ok {
		return fmt.Errorf("unknown site %q", c.Site)
	}
	return nil
}

// Validate checks that exactly one roster source is configured.
func (c *Config) Validate() error {
	if c.FilePath == "" && c.SourceURL == "" {
		return fmt.Errorf("--file or --url is required")
	}
	if c.FilePath != "" && c.SourceURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive")
	}
	if c.FilePath != "" {
		if _, err := os.Stat(c.FilePath); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	return c.ResolveSite()
}

// ValidateWithDSN checks both source and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
