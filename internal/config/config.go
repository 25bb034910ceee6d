package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the original ScrapeSearch defaults where applicable and are
// otherwise chosen to be polite toward crawled hosts.
const (
	// DefaultMaxDepth caps crawl recursion. The search depth is bounded to
	// keep the frontier blow-up manageable: branching^depth pages.
	DefaultMaxDepth = 1

	// MaxAllowedDepth is the hard upper bound accepted from user input.
	// Depth 2 already means "pages linked from pages linked from the seed",
	// which is plenty for relevance ranking.
	MaxAllowedDepth = 2

	// DefaultMaxPages limits the total number of pages fetched per crawl.
	// This prevents runaway crawling on large or infinitely-generating sites.
	DefaultMaxPages = 100

	// DefaultCrawlDelay is the politeness delay between requests to the
	// same host within a depth level.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency bounds parallel fetches within a depth level.
	// Higher values speed up wide frontiers but hammer the target host.
	DefaultConcurrency = 4

	// DefaultMaxBodySize limits the response body size read per page.
	// 5MB is sufficient for HTML while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies ScrapeSearch in HTTP requests.
	DefaultUserAgent = "ScrapeSearch/1.0 (+https://github.com/LexTOliver/web-scraping)"

	// AppName is the application name used for XDG directory paths.
	AppName = "scrapesearch"
)

// Database backend identifiers accepted in the configuration file.
const (
	// DBTypeSQLite selects the embedded SQLite store (default).
	DBTypeSQLite = "sqlite"

	// DBTypeMySQL selects the MySQL store.
	DBTypeMySQL = "mysql"
)

// LinkPolicy identifiers for crawl link filtering.
const (
	// PolicySameHost follows only links on the seed's host.
	PolicySameHost = "same-host"

	// PolicyAnyHTTP follows any absolute http(s) link regardless of host.
	PolicyAnyHTTP = "any-http"
)

// Config holds all runtime options for ScrapeSearch.
// It is populated from defaults, then the YAML config file, then CLI flags,
// and passed through the application via dependency injection rather than
// global state.
type Config struct {
	// SeedURL is the URL the crawl starts from.
	SeedURL string

	// MaxDepth is the maximum link distance from the seed (0..MaxAllowedDepth).
	// Depth 0 fetches only the seed page.
	MaxDepth int

	// Keywords are the two search terms to rank documents against.
	Keywords [2]string

	// LinkPolicy selects which discovered links are followed
	// (PolicySameHost or PolicyAnyHTTP).
	LinkPolicy string

	// MaxPages limits the total number of pages fetched per crawl.
	MaxPages int

	// CrawlDelay is the politeness delay between requests.
	CrawlDelay time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Concurrency bounds parallel fetches within one depth level.
	Concurrency int

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Database configures the document store backend.
	Database DatabaseConfig

	// Logging configures log level and destinations.
	Logging LoggingConfig

	// Verbose enables debug-level logging regardless of Logging.Level.
	Verbose bool

	// ConfigFilePath is an explicitly requested config file path.
	// Empty means search the default locations.
	ConfigFilePath string
}

// DatabaseConfig selects and parameterizes the document store backend.
// The crawl and analysis code never depends on which backend is active;
// it only sees the database.Store interface.
type DatabaseConfig struct {
	// Type is the backend type: DBTypeSQLite or DBTypeMySQL.
	Type string `yaml:"type"`

	// Path is the SQLite database directory. Empty means the XDG data dir.
	Path string `yaml:"path"`

	// DSN is the MySQL data source name, e.g.
	// "user:pass@tcp(127.0.0.1:3306)/scrapesearch?parseTime=true".
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string `yaml:"level"`

	// Handlers lists enabled destinations: "console", "file".
	// Empty means console only.
	Handlers []string `yaml:"handlers"`

	// File is the log file path used by the "file" handler.
	File string `yaml:"file"`
}

// NewConfig creates a Config with default values.
// Many defaults are non-zero, so we use a constructor instead of relying on
// zero values; this also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		MaxDepth:    DefaultMaxDepth,
		LinkPolicy:  PolicySameHost,
		MaxPages:    DefaultMaxPages,
		CrawlDelay:  DefaultCrawlDelay,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Database: DatabaseConfig{
			Type: DBTypeSQLite,
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Handlers: []string{"console"},
		},
	}
}

// XDGDataDir returns the XDG data directory for ScrapeSearch.
// On Linux: ~/.local/share/scrapesearch
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag and file parsing, before any network work,
// so invalid input fails fast with a clear message.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 || c.MaxDepth > MaxAllowedDepth {
		return ErrInvalidDepth
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	switch c.LinkPolicy {
	case PolicySameHost, PolicyAnyHTTP:
	default:
		return ErrInvalidLinkPolicy
	}

	switch c.Database.Type {
	case DBTypeSQLite:
	case DBTypeMySQL:
		if c.Database.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return ErrInvalidDBType
	}

	return nil
}
