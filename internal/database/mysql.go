package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/LexTOliver/web-scraping/internal/config"
)

var mysqlDialect = dialect{
	name: config.DBTypeMySQL,
	schema: []string{`
	CREATE TABLE IF NOT EXISTS sessions (
		id VARCHAR(36) PRIMARY KEY,
		seed_url TEXT NOT NULL,
		started_at VARCHAR(35) NOT NULL
	)`, `
	CREATE TABLE IF NOT EXISTS documents (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		session_id VARCHAR(36) NOT NULL,
		url VARCHAR(768) NOT NULL,
		title TEXT,
		text MEDIUMTEXT,
		depth INT NOT NULL,
		status_code INT,
		fetched_at VARCHAR(35) NOT NULL,
		UNIQUE KEY uniq_session_url (session_id, url),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	)`, `
	CREATE TABLE IF NOT EXISTS words (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		word VARCHAR(255) NOT NULL UNIQUE
	)`, `
	CREATE TABLE IF NOT EXISTS word_locations (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		document_id BIGINT NOT NULL,
		word_id BIGINT NOT NULL,
		position INT NOT NULL,
		FOREIGN KEY (document_id) REFERENCES documents(id),
		FOREIGN KEY (word_id) REFERENCES words(id),
		INDEX idx_locations_document (document_id)
	)`,
	},
	upsertDocument: `
	INSERT INTO documents (session_id, url, title, text, depth, status_code, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		title = VALUES(title),
		text = VALUES(text),
		depth = VALUES(depth),
		status_code = VALUES(status_code),
		fetched_at = VALUES(fetched_at)
	`,
	insertWord: `INSERT IGNORE INTO words (word) VALUES (?)`,
}

// openMySQL connects to a MySQL server using the given DSN, e.g.
// "user:pass@tcp(127.0.0.1:3306)/scrapesearch".
func openMySQL(dsn string) (Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach mysql server: %w", err)
	}

	s := &sqlStore{db: db, d: mysqlDialect}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}
