// Package sqlite stores the timeline slot as a row in a SQLite key-value
// table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"timeline/model"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Slot reads and writes one row of the slots table.
type Slot struct {
	sqlDB *sql.DB
	key   string
}

// Open opens the database at path and ensures the schema exists.
func Open(path, key string) (*Slot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("slot key is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Slot{sqlDB: sqlDB, key: key}, nil
}

// Close closes the SQLite handle.
func (s *Slot) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return payload, nil
}

func (s *Slot) Write(ctx context.Context, payload []byte) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, payload, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}
