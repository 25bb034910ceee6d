// Package log provides structured logging setup for ScrapeSearch.
//
// The application logs through log/slog. This package translates the
// logging section of the configuration (level, handlers, file) into a
// *slog.Logger, fanning records out to multiple destinations through
// MultiHandler when both console and file logging are enabled.
package log
