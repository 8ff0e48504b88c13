package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS overrides (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLite persists the override mapping in a single-table SQLite database.
// Values are stored as JSON scalar text so integer and floating-point
// overrides keep their kinds across reloads.
type SQLite struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (or creates) the database at path and ensures the overrides
// table exists. Operational failures after construction degrade to absence.
func NewSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init sqlite schema: %w", err)
	}
	return &SQLite{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM overrides WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("override read failed, treating as absent", "key", key, "error", err)
		return nil, false
	}
	value, ok := decodeScalar(raw)
	if !ok {
		s.logger.Warn("override value corrupt, treating as absent", "key", key)
		return nil, false
	}
	return value, true
}

func (s *SQLite) GetAll() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[string]any{}
	rows, err := s.db.Query(`SELECT key, value FROM overrides`)
	if err != nil {
		s.logger.Warn("override scan failed, treating as empty", "error", err)
		return entries
	}
	defer rows.Close()

	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			s.logger.Warn("override row unreadable, skipping", "error", err)
			continue
		}
		if value, ok := decodeScalar(raw); ok {
			entries[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("override scan interrupted", "error", err)
	}
	return entries
}

func (s *SQLite) SetAll(entries map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Warn("override transaction failed, dropping write", "error", err)
		return
	}
	if _, err := tx.Exec(`DELETE FROM overrides`); err != nil {
		tx.Rollback()
		s.logger.Warn("override reset failed, dropping write", "error", err)
		return
	}
	for key, value := range entries {
		raw, err := json.Marshal(value)
		if err != nil {
			tx.Rollback()
			s.logger.Warn("override value not serializable, dropping write", "key", key, "error", err)
			return
		}
		if _, err := tx.Exec(`INSERT INTO overrides (key, value) VALUES (?, ?)`, key, string(raw)); err != nil {
			tx.Rollback()
			s.logger.Warn("override insert failed, dropping write", "key", key, "error", err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		s.logger.Warn("override commit failed, dropping write", "error", err)
	}
}

func (s *SQLite) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM overrides`); err != nil {
		s.logger.Warn("override clear failed", "error", err)
	}
}

func decodeScalar(raw string) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	return value, true
}
