package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LexTOliver/web-scraping/internal/config"
	"github.com/LexTOliver/web-scraping/internal/model"
)

// Store errors.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownBackend is returned when the configured database type is
	// not one of the supported backends.
	ErrUnknownBackend = errors.New("unknown database backend")
)

// Store persists crawl sessions, their documents, and keyword analysis
// results. Implementations are safe for use from a single crawl at a
// time; the spider serializes writes.
type Store interface {
	// CreateSession registers a new crawl session for the given seed URL
	// and returns its identifier.
	CreateSession(ctx context.Context, seedURL string) (string, error)

	// Put inserts a document, replacing any earlier fetch of the same URL
	// within the same session. On success doc.ID is set.
	Put(ctx context.Context, doc *model.Document) error

	// GetAll returns every document of a session in insertion order.
	GetAll(ctx context.Context, sessionID string) ([]model.Document, error)

	// GetByURL returns one document of a session by its URL.
	// It returns ErrNotFound when no such document exists.
	GetByURL(ctx context.Context, sessionID, url string) (*model.Document, error)

	// ListSessions returns all crawl sessions, most recent first.
	ListSessions(ctx context.Context) ([]model.Session, error)

	// SaveAnalysis persists the keyword occurrence positions of scored
	// documents. Re-analyzing a session replaces its earlier positions.
	SaveAnalysis(ctx context.Context, sessionID string, docs []model.ScoredDocument) error

	// Close releases the underlying database connection.
	Close() error
}

// Open creates a Store for the configured backend.
func Open(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Type {
	case config.DBTypeSQLite:
		return openSQLite(cfg.Path)
	case config.DBTypeMySQL:
		return openMySQL(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Type)
	}
}

// dialect holds the per-backend SQL fragments. Everything else is shared
// between SQLite and MySQL.
type dialect struct {
	// name is the backend name, for error messages.
	name string

	// schema is the DDL executed on open, one statement per entry.
	schema []string

	// upsertDocument inserts a document or updates the existing row with
	// the same (session_id, url).
	upsertDocument string

	// insertWord inserts a word, ignoring duplicates.
	insertWord string
}

// sqlStore is the shared Store implementation over database/sql.
type sqlStore struct {
	db *sql.DB
	d  dialect
}

// Timestamps are stored as text so both backends scan identically.
const timeLayout = "2006-01-02 15:04:05"

func (s *sqlStore) createTables() error {
	for _, stmt := range s.d.schema {
		if _, err := s.db.ExecContext(context.Background(), stmt); err != nil {
			return fmt.Errorf("failed to create %s schema: %w", s.d.name, err)
		}
	}
	return nil
}

// CreateSession registers a new crawl session and returns its UUID.
func (s *sqlStore) CreateSession(ctx context.Context, seedURL string) (string, error) {
	id := uuid.NewString()

	query := `INSERT INTO sessions (id, seed_url, started_at) VALUES (?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, id, seedURL, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// Put inserts or updates a document within its session.
func (s *sqlStore) Put(ctx context.Context, doc *model.Document) error {
	result, err := s.db.ExecContext(ctx, s.d.upsertDocument,
		doc.SessionID,
		doc.URL,
		doc.Title,
		doc.Text,
		doc.Depth,
		doc.StatusCode,
		doc.FetchedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to store document %s: %w", doc.URL, err)
	}

	if id, err := result.LastInsertId(); err == nil && id > 0 {
		doc.ID = id
	}

	return nil
}

// GetAll returns every document of a session in insertion order.
func (s *sqlStore) GetAll(ctx context.Context, sessionID string) ([]model.Document, error) {
	query := `
	SELECT id, session_id, url, title, text, depth, status_code, fetched_at
	FROM documents
	WHERE session_id = ?
	ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	return docs, rows.Err()
}

// GetByURL returns one document of a session by URL.
func (s *sqlStore) GetByURL(ctx context.Context, sessionID, url string) (*model.Document, error) {
	query := `
	SELECT id, session_id, url, title, text, depth, status_code, fetched_at
	FROM documents
	WHERE session_id = ? AND url = ?
	`

	row := s.db.QueryRowContext(ctx, query, sessionID, url)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: document %s in session %s", ErrNotFound, url, sessionID)
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListSessions returns all crawl sessions, most recent first.
func (s *sqlStore) ListSessions(ctx context.Context) ([]model.Session, error) {
	query := `
	SELECT id, seed_url, started_at
	FROM sessions
	ORDER BY started_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var session model.Session
		var startedAt string

		if err := rows.Scan(&session.ID, &session.SeedURL, &startedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		session.StartedAt = parseTimestamp(startedAt)
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// SaveAnalysis persists keyword occurrence positions for the scored
// documents of a session. Positions from an earlier analysis of the same
// documents are replaced.
func (s *sqlStore) SaveAnalysis(ctx context.Context, sessionID string, docs []model.ScoredDocument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin analysis transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, doc := range docs {
		var docID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM documents WHERE session_id = ? AND url = ?`,
			sessionID, doc.URL,
		).Scan(&docID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: document %s in session %s", ErrNotFound, doc.URL, sessionID)
		}
		if err != nil {
			return fmt.Errorf("failed to look up document %s: %w", doc.URL, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM word_locations WHERE document_id = ?`, docID,
		); err != nil {
			return fmt.Errorf("failed to clear earlier analysis: %w", err)
		}

		for word, positions := range doc.KeywordPositions {
			wordID, err := upsertWord(ctx, tx, s.d.insertWord, word)
			if err != nil {
				return err
			}
			for _, position := range positions {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO word_locations (document_id, word_id, position) VALUES (?, ?, ?)`,
					docID, wordID, position,
				); err != nil {
					return fmt.Errorf("failed to store word location: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// upsertWord inserts a word if missing and returns its id either way.
func upsertWord(ctx context.Context, tx *sql.Tx, insertWord, word string) (int64, error) {
	if _, err := tx.ExecContext(ctx, insertWord, word); err != nil {
		return 0, fmt.Errorf("failed to store word %q: %w", word, err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM words WHERE word = ?`, word).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up word %q: %w", word, err)
	}

	return id, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var doc model.Document
	var fetchedAt string

	err := row.Scan(
		&doc.ID,
		&doc.SessionID,
		&doc.URL,
		&doc.Title,
		&doc.Text,
		&doc.Depth,
		&doc.StatusCode,
		&fetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.FetchedAt = parseTimestamp(fetchedAt)
	return &doc, nil
}

// timestampFormats contains the timestamp formats a backend may return.
// The order matters: more specific formats come first.
var timestampFormats = []string{
	timeLayout,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. If none matches it returns the zero time rather than failing
// the whole query.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
