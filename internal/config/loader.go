package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".scrapesearch"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration.
// Only options affecting external collaborators live here: the database
// backend, logging, and crawl politeness. Per-run inputs (seed URL, depth,
// keywords) come from the CLI.
type File struct {
	// Database selects and parameterizes the store backend.
	Database DatabaseConfig `yaml:"database"`

	// Logging controls log level and destinations.
	Logging LoggingConfig `yaml:"logging"`

	// Crawl holds crawl politeness and policy options.
	Crawl CrawlFileConfig `yaml:"crawl"`
}

// CrawlFileConfig is the crawl section of the configuration file.
type CrawlFileConfig struct {
	// Policy is the link-filtering policy: "same-host" or "any-http".
	Policy string `yaml:"policy"`

	// Delay is the politeness delay between requests, e.g. "500ms".
	Delay string `yaml:"delay"`

	// MaxPages limits pages fetched per crawl.
	MaxPages int `yaml:"max_pages"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout string `yaml:"timeout"`

	// Concurrency bounds parallel fetches within a depth level.
	Concurrency int `yaml:"concurrency"`
}

// LoadConfigFile loads configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// whether that is fatal based on whether the path was explicitly requested.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .scrapesearch in the current directory
// 3. Look for .scrapesearch in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges file options into the config. CLI flags are applied after
// this, so flags win over the file and the file wins over defaults.
func (c *Config) Apply(cf *File) error {
	if cf == nil {
		return nil
	}

	if cf.Database.Type != "" {
		c.Database.Type = cf.Database.Type
	}
	if cf.Database.Path != "" {
		c.Database.Path = cf.Database.Path
	}
	if cf.Database.DSN != "" {
		c.Database.DSN = cf.Database.DSN
	}

	if cf.Logging.Level != "" {
		c.Logging.Level = cf.Logging.Level
	}
	if len(cf.Logging.Handlers) > 0 {
		c.Logging.Handlers = cf.Logging.Handlers
	}
	if cf.Logging.File != "" {
		c.Logging.File = cf.Logging.File
	}

	if cf.Crawl.Policy != "" {
		c.LinkPolicy = cf.Crawl.Policy
	}
	if cf.Crawl.MaxPages > 0 {
		c.MaxPages = cf.Crawl.MaxPages
	}
	if cf.Crawl.UserAgent != "" {
		c.UserAgent = cf.Crawl.UserAgent
	}
	if cf.Crawl.Concurrency > 0 {
		c.Concurrency = cf.Crawl.Concurrency
	}
	if cf.Crawl.Delay != "" {
		d, err := parseDuration(cf.Crawl.Delay)
		if err != nil {
			return err
		}
		c.CrawlDelay = d
	}
	if cf.Crawl.Timeout != "" {
		d, err := parseDuration(cf.Crawl.Timeout)
		if err != nil {
			return err
		}
		c.Timeout = d
	}

	return nil
}

// parseDuration parses a duration string from the config file.
func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q in config file: %w", s, err)
	}
	return d, nil
}
