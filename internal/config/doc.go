// Package config provides configuration structures and utilities for
// ScrapeSearch. It defines options for the crawl (depth, politeness, link
// policy), the document store backend (SQLite or MySQL), and logging, and
// loads the optional .scrapesearch YAML file.
package config
