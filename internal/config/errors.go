package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name exactly what is wrong.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic handling while still providing human-readable messages.
var (
	// ErrInvalidDepth is returned when the crawl depth is outside 0..MaxAllowedDepth.
	ErrInvalidDepth = errors.New("invalid depth: must be between 0 and 2")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the fetch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the body size cap is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidMaxPages is returned when the page cap is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidLinkPolicy is returned for an unknown link policy name.
	ErrInvalidLinkPolicy = errors.New(`invalid link policy: must be "same-host" or "any-http"`)

	// ErrInvalidDBType is returned for an unsupported database backend.
	ErrInvalidDBType = errors.New(`invalid database type: must be "sqlite" or "mysql"`)

	// ErrMissingDSN is returned when the MySQL backend is selected without
	// a data source name.
	ErrMissingDSN = errors.New("database dsn required for mysql backend")
)
