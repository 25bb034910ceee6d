package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LexTOliver/web-scraping/internal/config"
	"github.com/LexTOliver/web-scraping/internal/model"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) Store {
	t.Helper()

	store, err := Open(config.DatabaseConfig{
		Type: config.DBTypeSQLite,
		Path: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testDocument(sessionID, url string) *model.Document {
	return &model.Document{
		SessionID:  sessionID,
		URL:        url,
		Title:      "Example",
		Text:       "example page text",
		Depth:      1,
		StatusCode: 200,
		FetchedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TestOpen tests store creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "newdir", "subdir")
		store, err := Open(config.DatabaseConfig{Type: config.DBTypeSQLite, Path: dir})
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer store.Close()

		if _, err := os.Stat(filepath.Join(dir, sqliteFile)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		t.Parallel()

		_, err := Open(config.DatabaseConfig{Type: "postgres"})
		if !errors.Is(err, ErrUnknownBackend) {
			t.Errorf("expected ErrUnknownBackend, got %v", err)
		}
	})
}

// TestCreateSession tests session registration.
func TestCreateSession(t *testing.T) {
	t.Parallel()

	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.CreateSession(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty session ID")
	}

	second, err := store.CreateSession(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if first == second {
		t.Error("expected distinct session IDs for separate crawls")
	}

	sessions, err := store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for _, session := range sessions {
		if session.SeedURL != "https://example.com" {
			t.Errorf("session seed = %q", session.SeedURL)
		}
		if session.StartedAt.IsZero() {
			t.Error("session StartedAt is zero")
		}
	}
}

// TestPut tests document insertion and upsert behavior.
func TestPut(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves a document", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		ctx := context.Background()

		sessionID, err := store.CreateSession(ctx, "https://example.com")
		if err != nil {
			t.Fatalf("CreateSession() error: %v", err)
		}

		doc := testDocument(sessionID, "https://example.com/page")
		if err := store.Put(ctx, doc); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
		if doc.ID == 0 {
			t.Error("expected document ID to be set after Put")
		}

		got, err := store.GetByURL(ctx, sessionID, "https://example.com/page")
		if err != nil {
			t.Fatalf("GetByURL() error: %v", err)
		}
		if got.Title != doc.Title || got.Text != doc.Text || got.Depth != doc.Depth {
			t.Errorf("GetByURL() = %+v, want %+v", got, doc)
		}
		if !got.FetchedAt.Equal(doc.FetchedAt) {
			t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, doc.FetchedAt)
		}
	})

	t.Run("same URL in one session updates in place", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		ctx := context.Background()

		sessionID, err := store.CreateSession(ctx, "https://example.com")
		if err != nil {
			t.Fatalf("CreateSession() error: %v", err)
		}

		doc := testDocument(sessionID, "https://example.com/page")
		if err := store.Put(ctx, doc); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		updated := testDocument(sessionID, "https://example.com/page")
		updated.Title = "Updated"
		if err := store.Put(ctx, updated); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		docs, err := store.GetAll(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetAll() error: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("expected 1 document after upsert, got %d", len(docs))
		}
		if docs[0].Title != "Updated" {
			t.Errorf("title = %q, want Updated", docs[0].Title)
		}
	})

	t.Run("same URL in different sessions stays separate", func(t *testing.T) {
		t.Parallel()

		store := setupTestStore(t)
		ctx := context.Background()

		first, err := store.CreateSession(ctx, "https://example.com")
		if err != nil {
			t.Fatalf("CreateSession() error: %v", err)
		}
		second, err := store.CreateSession(ctx, "https://example.com")
		if err != nil {
			t.Fatalf("CreateSession() error: %v", err)
		}

		if err := store.Put(ctx, testDocument(first, "https://example.com/page")); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
		if err := store.Put(ctx, testDocument(second, "https://example.com/page")); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		docs, err := store.GetAll(ctx, first)
		if err != nil {
			t.Fatalf("GetAll() error: %v", err)
		}
		if len(docs) != 1 {
			t.Errorf("expected 1 document in first session, got %d", len(docs))
		}
	})
}

// TestGetAll tests session document listing.
func TestGetAll(t *testing.T) {
	t.Parallel()

	store := setupTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	urls := []string{
		"https://example.com/",
		"https://example.com/a",
		"https://example.com/b",
	}
	for _, u := range urls {
		if err := store.Put(ctx, testDocument(sessionID, u)); err != nil {
			t.Fatalf("Put(%s) error: %v", u, err)
		}
	}

	docs, err := store.GetAll(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetAll() error: %v", err)
	}
	if len(docs) != len(urls) {
		t.Fatalf("expected %d documents, got %d", len(urls), len(docs))
	}
	for i, doc := range docs {
		if doc.URL != urls[i] {
			t.Errorf("document %d URL = %q, want %q", i, doc.URL, urls[i])
		}
	}

	empty, err := store.GetAll(ctx, "no-such-session")
	if err != nil {
		t.Fatalf("GetAll() error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no documents for unknown session, got %d", len(empty))
	}
}

// TestGetByURL tests single-document lookup.
func TestGetByURL(t *testing.T) {
	t.Parallel()

	store := setupTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	_, err = store.GetByURL(ctx, sessionID, "https://example.com/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestSaveAnalysis tests persisting keyword positions.
func TestSaveAnalysis(t *testing.T) {
	t.Parallel()

	store := setupTestStore(t)
	ctx := context.Background()

	sessionID, err := store.CreateSession(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if err := store.Put(ctx, testDocument(sessionID, "https://example.com/page")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	scored := []model.ScoredDocument{{
		URL: "https://example.com/page",
		KeywordPositions: map[string][]int{
			"python":      {0, 5},
			"programacao": {3},
		},
	}}

	if err := store.SaveAnalysis(ctx, sessionID, scored); err != nil {
		t.Fatalf("SaveAnalysis() error: %v", err)
	}

	// Saving again must replace, not duplicate, the positions.
	if err := store.SaveAnalysis(ctx, sessionID, scored); err != nil {
		t.Fatalf("SaveAnalysis() error on re-run: %v", err)
	}

	raw := store.(*sqlStore)
	var locations int
	if err := raw.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM word_locations`,
	).Scan(&locations); err != nil {
		t.Fatalf("failed to count locations: %v", err)
	}
	if locations != 3 {
		t.Errorf("expected 3 word locations, got %d", locations)
	}

	var words int
	if err := raw.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words`,
	).Scan(&words); err != nil {
		t.Fatalf("failed to count words: %v", err)
	}
	if words != 2 {
		t.Errorf("expected 2 distinct words, got %d", words)
	}

	t.Run("unknown document fails", func(t *testing.T) {
		missing := []model.ScoredDocument{{
			URL:              "https://example.com/missing",
			KeywordPositions: map[string][]int{"python": {0}},
		}}
		if err := store.SaveAnalysis(ctx, sessionID, missing); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
