package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the sqlite database at path, creating parent directories as
// needed. Foreign keys are enforced and writers wait out brief lock
// contention rather than failing on SQLITE_BUSY.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // single writer, sqlite serializes anyway
	db.SetConnMaxLifetime(0)
	return db, nil
}

// WithTx runs fn in one transaction, rolling back if fn returns an error.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Now returns UTC time truncated to whole seconds, the precision the
// TIMESTAMP columns round-trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
