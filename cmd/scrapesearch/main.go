// Package main provides the entry point for the ScrapeSearch CLI.
//
// ScrapeSearch crawls the web from a seed URL and ranks the collected
// pages by relevance to a pair of keywords.
//
// Usage:
//
//	scrapesearch search <seed-url> <keyword> <keyword>
//	scrapesearch crawl <seed-url>
//	scrapesearch analyze <session-id> <keyword> <keyword>
//
// See --help for all available options.
package main

// main is the entry point for ScrapeSearch.
func main() {
	Execute()
}
