// Package index provides the SQLite-backed hunts index. The index is the
// generated data source the catalog snapshot is loaded from: a vault sync
// parses hunt Markdown files and upserts one row per file, and Snapshot
// reads every row back into memory.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/thorcollective/hearth/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS hunts (
	file_path      TEXT PRIMARY KEY,
	hunt_id        TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	title          TEXT NOT NULL DEFAULT '',
	tactic         TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	why            TEXT NOT NULL DEFAULT '',
	refs           TEXT NOT NULL DEFAULT '',
	tags           TEXT NOT NULL DEFAULT '[]',
	submitter_name TEXT NOT NULL DEFAULT '',
	submitter_link TEXT NOT NULL DEFAULT '',
	checksum       TEXT NOT NULL DEFAULT '',
	updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_hunts_hunt_id ON hunts(hunt_id);
CREATE INDEX IF NOT EXISTS idx_hunts_category ON hunts(category);
`

// HuntIndex defines the interface for hunt indexing operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with fakes.
type HuntIndex interface {
	Upsert(filePath, checksum string, h *models.Hunt) error
	Delete(filePath string) error
	AllChecksums() (map[string]string, error)
	Snapshot() ([]models.Hunt, error)
	Close() error
}

// Verify *DB satisfies HuntIndex at compile time.
var _ HuntIndex = (*DB)(nil)

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
