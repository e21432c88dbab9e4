package prefs

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores preferences in a SQLite database, one row per
// (visitor, key).
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path, ensuring the data
// directory exists and the schema is in place.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL plus a busy timeout so writers wait instead of returning SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	b := &SQLiteBackend{db: db}
	if err := b.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

// Close closes the underlying database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) ensureSchema() error {
	_, err := b.db.Exec(`
CREATE TABLE IF NOT EXISTS prefs (
    visitor TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (visitor, key)
);
`)
	return err
}

// Scope returns the KV of one visitor.
func (b *SQLiteBackend) Scope(visitor string) KV {
	return &sqliteKV{db: b.db, visitor: visitor}
}

type sqliteKV struct {
	db      *sql.DB
	visitor string
}

func (s *sqliteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE visitor = ? AND key = ?`, s.visitor, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *sqliteKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO prefs (visitor, key, value, updated_at) VALUES (?, ?, ?, datetime('now'))
ON CONFLICT(visitor, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, s.visitor, key, value)
	return err
}
