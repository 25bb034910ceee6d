// Package pipeline orchestrates the search workflow as a sequence of
// steps: crawl (or load a stored session), analyze, and persist the
// analysis. Each step mutates a shared model.SearchRun; the cmd layer
// assembles the steps a command needs and renders the finished run.
package pipeline
