package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/LexTOliver/web-scraping/internal/config"
)

// sqliteFile is the database file name inside the data directory.
const sqliteFile = "scrapesearch.db"

var sqliteDialect = dialect{
	name: config.DBTypeSQLite,
	schema: []string{`
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed_url TEXT NOT NULL,
		started_at TEXT NOT NULL
	)`, `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		url TEXT NOT NULL,
		title TEXT,
		text TEXT,
		depth INTEGER NOT NULL,
		status_code INTEGER,
		fetched_at TEXT NOT NULL,
		UNIQUE(session_id, url)
	)`, `
	CREATE INDEX IF NOT EXISTS idx_documents_session ON documents(session_id)`, `
	CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL UNIQUE
	)`, `
	CREATE TABLE IF NOT EXISTS word_locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id INTEGER NOT NULL REFERENCES documents(id),
		word_id INTEGER NOT NULL REFERENCES words(id),
		position INTEGER NOT NULL
	)`, `
	CREATE INDEX IF NOT EXISTS idx_locations_document ON word_locations(document_id)`,
	},
	upsertDocument: `
	INSERT INTO documents (session_id, url, title, text, depth, status_code, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id, url) DO UPDATE SET
		title = excluded.title,
		text = excluded.text,
		depth = excluded.depth,
		status_code = excluded.status_code,
		fetched_at = excluded.fetched_at
	`,
	insertWord: `INSERT INTO words (word) VALUES (?) ON CONFLICT(word) DO NOTHING`,
}

// openSQLite opens or creates the SQLite store under dir. An empty dir
// means the XDG data directory for the application.
func openSQLite(dir string) (Store, error) {
	if dir == "" {
		dir = config.XDGDataDir()
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbPath := filepath.Join(dir, sqliteFile)
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &sqlStore{db: db, d: sqliteDialect}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}
