// Package crawler provides breadth-first web crawling for ScrapeSearch.
//
// # Architecture
//
//   - Spider: coordinates the depth-bounded traversal from a seed URL
//   - Parser: extracts the title, visible text, and outbound links from HTML
//
// The traversal is level-synchronized: all frontier URLs at one depth are
// fetched (concurrently, bounded by the configured limit) before the next
// depth begins. A visited set keyed by normalized URL prevents re-fetching;
// combined with the depth bound this guarantees termination.
//
// Successfully fetched pages are persisted through the DocumentWriter as
// they are obtained, so downstream analysis can run on whatever was
// collected even if the crawl is interrupted.
//
// # Politeness
//
//   - Configurable delay before each request
//   - Bounded concurrency per depth level
//   - Page and body-size caps
package crawler
