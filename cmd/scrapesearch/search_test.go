package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
)

// newTestServer serves a seed page linking to two children, one about
// each topic.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	page := func(title, body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprintf(w, "<html><head><title>%s</title></head><body>%s</body></html>", title, body)
		}
	}
	mux.HandleFunc("/", page("Home", `<a href="/python">Python</a> <a href="/other">Other</a> python tutorial index`))
	mux.HandleFunc("/python", page("Python", "python tutorial with many python examples"))
	mux.HandleFunc("/other", page("Other", "nothing relevant on this page"))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// runCommand executes the CLI with the given arguments and returns its
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// TestNewSearchCmd tests the search command structure.
func TestNewSearchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSearchCmd()

	t.Run("requires exactly three arguments", func(t *testing.T) {
		t.Parallel()

		for _, args := range [][]string{
			{},
			{"https://example.com"},
			{"https://example.com", "python"},
			{"https://example.com", "python", "code", "extra"},
		} {
			if err := cmd.Args(cmd, args); err == nil {
				t.Errorf("expected error for %d args", len(args))
			}
		}
		if err := cmd.Args(cmd, []string{"https://example.com", "python", "code"}); err != nil {
			t.Errorf("unexpected error for three args: %v", err)
		}
	})

	t.Run("has crawl and report flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"depth", "max-pages", "delay", "timeout", "concurrency",
			"policy", "user-agent", "json", "markdown", "output", "top"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestSearchCommand runs the full search workflow against a test server.
func TestSearchCommand(t *testing.T) {
	t.Parallel()

	t.Run("ranks matching pages", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t)
		out, err := runCommand(t,
			"search", server.URL, "python", "tutorial",
			"--db-path", t.TempDir(),
			"--delay", "0",
			"--depth", "1",
		)
		if err != nil {
			t.Fatalf("search failed: %v\n%s", err, out)
		}

		if !strings.Contains(out, "SCRAPESEARCH RESULTS") {
			t.Errorf("output missing report header:\n%s", out)
		}
		if !strings.Contains(out, server.URL+"/python") {
			t.Errorf("output missing matching page:\n%s", out)
		}
		if strings.Contains(out, server.URL+"/other") {
			t.Errorf("non-matching page should be excluded:\n%s", out)
		}
	})

	t.Run("json output round-trips", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t)
		reportFile := filepath.Join(t.TempDir(), "reports", "run.json")
		out, err := runCommand(t,
			"search", server.URL, "python", "tutorial",
			"--db-path", t.TempDir(),
			"--delay", "0",
			"--json",
			"--output", reportFile,
		)
		if err != nil {
			t.Fatalf("search failed: %v\n%s", err, out)
		}

		data, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var decoded struct {
			SessionID string `json:"session_id"`
			Results   []struct {
				URL       string  `json:"url"`
				Composite float64 `json:"composite"`
			} `json:"results"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if decoded.SessionID == "" {
			t.Error("report missing session ID")
		}
		if len(decoded.Results) == 0 {
			t.Error("report has no results")
		}
	})

	t.Run("rejects invalid depth", func(t *testing.T) {
		t.Parallel()

		_, err := runCommand(t,
			"search", "https://example.com", "python", "tutorial",
			"--db-path", t.TempDir(),
			"--depth", "5",
		)
		if err == nil {
			t.Error("expected configuration error for depth 5")
		}
	})

	t.Run("rejects unusable keywords before fetching", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fetches.Add(1)
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, `<html><body><a href="/a">a</a> python tutorial</body></html>`)
		}))
		t.Cleanup(server.Close)

		_, err := runCommand(t,
			"search", server.URL, "!!!", "python",
			"--db-path", t.TempDir(),
			"--delay", "0",
			"--depth", "1",
		)
		if err == nil {
			t.Fatal("expected error for keyword with no indexable form")
		}
		if got := fetches.Load(); got != 0 {
			t.Errorf("expected no fetches before keyword rejection, got %d", got)
		}
	})

	t.Run("rejects identical keywords", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t)
		_, err := runCommand(t,
			"search", server.URL, "Python", "python",
			"--db-path", t.TempDir(),
			"--delay", "0",
		)
		if err == nil {
			t.Error("expected error for identical keywords")
		}
	})
}

// TestCrawlConfigFile verifies that the crawl section of the config file
// takes effect when the matching flags are not set, and that a set flag
// still wins over the file.
func TestCrawlConfigFile(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgContent := "crawl:\n  max_pages: 1\n  delay: 0s\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, err := runCommand(t,
		"crawl", server.URL,
		"--config", cfgPath,
		"--db-path", t.TempDir(),
		"--depth", "1",
	)
	if err != nil {
		t.Fatalf("crawl failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Pages Crawled: 1") {
		t.Errorf("expected the file's max_pages to cap the crawl at 1 page:\n%s", out)
	}

	out, err = runCommand(t,
		"crawl", server.URL,
		"--config", cfgPath,
		"--db-path", t.TempDir(),
		"--depth", "1",
		"--max-pages", "2",
	)
	if err != nil {
		t.Fatalf("crawl failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Pages Crawled: 2") {
		t.Errorf("expected the max-pages flag to win over the file:\n%s", out)
	}
}

// TestCrawlAndAnalyzeCommands crawls once and re-analyzes the stored
// session.
func TestCrawlAndAnalyzeCommands(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	dbDir := t.TempDir()

	out, err := runCommand(t,
		"crawl", server.URL,
		"--db-path", dbDir,
		"--delay", "0",
		"--depth", "1",
	)
	if err != nil {
		t.Fatalf("crawl failed: %v\n%s", err, out)
	}

	matches := regexp.MustCompile(`Session:\s+(\S+)`).FindStringSubmatch(out)
	if matches == nil {
		t.Fatalf("crawl output missing session ID:\n%s", out)
	}
	sessionID := matches[1]

	if !strings.Contains(out, "Pages Crawled: 3") {
		t.Errorf("expected 3 crawled pages:\n%s", out)
	}

	out, err = runCommand(t,
		"analyze", sessionID, "python", "tutorial",
		"--db-path", dbDir,
	)
	if err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, server.URL+"/python") {
		t.Errorf("analyze output missing matching page:\n%s", out)
	}

	out, err = runCommand(t, "sessions", "--db-path", dbDir)
	if err != nil {
		t.Fatalf("sessions failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, sessionID) {
		t.Errorf("sessions output missing %s:\n%s", sessionID, out)
	}
	if !strings.Contains(out, server.URL) {
		t.Errorf("sessions output missing seed URL:\n%s", out)
	}

	out, err = runCommand(t,
		"analyze", "no-such-session", "python", "tutorial",
		"--db-path", dbDir,
	)
	if err == nil {
		t.Errorf("expected error for unknown session:\n%s", out)
	}
}
