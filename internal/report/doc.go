// Package report renders finished search runs for human and machine
// consumption. Three formats are supported: plain text for the terminal,
// JSON for tool integration, and Markdown for documentation. All writers
// share one interface so output can go to stdout, files, or both at once.
package report
