package model

import "time"

// Document represents a crawled web page as persisted in the document store.
//
// A document is created by the crawler on a successful fetch and is owned by
// the store afterwards. Its URL is unique within a crawl session; re-crawling
// the same URL updates the stored row rather than duplicating it.
type Document struct {
	// ID is the database identifier. Zero until the document is stored.
	ID int64 `json:"id,omitempty"`

	// SessionID identifies the crawl session the document belongs to.
	SessionID string `json:"session_id"`

	// URL is the fetched URL, unique within the session.
	URL string `json:"url"`

	// Title is the page title from the <title> tag, empty for non-HTML.
	Title string `json:"title,omitempty"`

	// Text is the visible text content of the page with markup stripped.
	Text string `json:"text"`

	// Depth is the number of link hops from the seed URL.
	Depth int `json:"depth"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// FetchedAt is when the page was retrieved.
	FetchedAt time.Time `json:"fetched_at"`
}

// MaxTextSize is the maximum size of stored page text in bytes.
// Larger pages are truncated to keep rows and analysis bounded.
const MaxTextSize = 512 * 1024 // 512 KB

// TruncateText enforces MaxTextSize on the document text.
// Call this after setting Text.
func (d *Document) TruncateText() {
	if len(d.Text) > MaxTextSize {
		d.Text = d.Text[:MaxTextSize]
	}
}

// CrawlTarget is a URL queued for fetching at a given depth.
// Targets are created when a link is discovered and consumed exactly once;
// they are never mutated after creation.
type CrawlTarget struct {
	// URL is the absolute URL to fetch.
	URL string

	// Depth is the link distance from the seed (seed itself is 0).
	Depth int
}

// Session describes one crawl run over a seed URL.
type Session struct {
	// ID is the session identifier (UUID).
	ID string `json:"id"`

	// SeedURL is the URL the crawl started from.
	SeedURL string `json:"seed_url"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`
}
