// Package database provides persistent storage for crawl sessions,
// documents, and analysis results.
//
// This package implements the Store interface over two backends:
//   - SQLite (via modernc.org/sqlite), the default: a single file, no
//     external dependencies, CGO-free
//   - MySQL (via go-sql-driver/mysql) for shared or remote storage
//
// Both backends share one schema and one implementation; the small
// syntactic differences (auto-increment columns, upsert statements) live
// in a per-backend dialect. Callers pick the backend through
// config.DatabaseConfig and never see which one is active.
package database
