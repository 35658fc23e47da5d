// Package config loads the directory service configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultListen          = ":8080"
	DefaultSnapshotTTL     = 30 * time.Second
	DefaultLinkCacheTTL    = 5 * time.Minute
	DefaultDefaultPageSize = 50
)

// Duration wraps time.Duration so YAML values like "30s" parse directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// GCSSource locates a roster or link document in Google Cloud Storage.
type GCSSource struct {
	Bucket          string   `yaml:"bucket"`
	ObjectPath      string   `yaml:"object_path"`
	CredentialsJSON string   `yaml:"credentials_json,omitempty"`
	CheckInterval   Duration `yaml:"check_interval,omitempty"`
}

// Source names exactly one place a document comes from.
type Source struct {
	File string     `yaml:"file,omitempty"`
	GCS  *GCSSource `yaml:"gcs,omitempty"`
}

// Validate checks that a source names exactly one backend.
func (s Source) Validate() error {
	switch {
	case s.File == "" && s.GCS == nil:
		return fmt.Errorf("source must name a file or a GCS object")
	case s.File != "" && s.GCS != nil:
		return fmt.Errorf("source must name a file or a GCS object, not both")
	}
	return nil
}

// Identity configures the corporate link provider.
type Identity struct {
	Source   Source   `yaml:"source"`
	CacheTTL Duration `yaml:"cache_ttl,omitempty"`
}

// Config is the top-level service configuration.
type Config struct {
	Listen          string   `yaml:"listen,omitempty"`
	SnapshotTTL     Duration `yaml:"snapshot_ttl,omitempty"`
	DefaultPageSize int      `yaml:"default_page_size,omitempty"`
	OrgSources      []Source `yaml:"org_sources"`
	Identity        Identity `yaml:"identity"`
}

// Load reads and validates the configuration file at path, applying
// defaults for anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	if len(cfg.OrgSources) == 0 {
		return nil, fmt.Errorf("at least one org source must be configured")
	}
	for i, source := range cfg.OrgSources {
		if err := source.Validate(); err != nil {
			return nil, fmt.Errorf("org source %d: %w", i, err)
		}
	}
	if err := cfg.Identity.Source.Validate(); err != nil {
		return nil, fmt.Errorf("identity source: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.SnapshotTTL == 0 {
		c.SnapshotTTL = Duration(DefaultSnapshotTTL)
	}
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = DefaultDefaultPageSize
	}
	if c.Identity.CacheTTL == 0 {
		c.Identity.CacheTTL = Duration(DefaultLinkCacheTTL)
	}
}
