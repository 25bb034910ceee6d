// Package model defines the core data structures used throughout ScrapeSearch.
//
// This package contains the following main types:
//   - Document: A crawled page as persisted in the document store
//   - CrawlTarget: A URL queued for fetching at a given depth
//   - Keyword: A search term with its normalized matching form
//   - ScoredDocument: The ranked result of analyzing one document
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (crawler, database, analyzer, report) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
