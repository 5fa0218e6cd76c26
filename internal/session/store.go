// Package session holds the working state of one comment-writing session and
// persists it to SQLite so work survives restarts.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"commentgen/internal/logging"
)

// Persistence keys. Values are JSON except for plain scalars.
const (
	keyStep        = "step"
	keyFilename    = "filename"
	keyRoster      = "roster"
	keyStyles      = "style_samples"
	keyFlags       = "criterion_flags"
	keyTraits      = "traits"
	keyHistory     = "history"
	keyFinals      = "finals"
	keyDraft       = "draft"
	keyCurrentID   = "current_student"
)

// Store is a small key/value table over SQLite. All values are strings; the
// session layer serializes structured state to JSON before writing.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens (or creates) the session database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create session table: %w", err)
	}
	return nil
}

// Put writes a value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO session_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Get reads the value under key. The second return is false when the key is
// absent.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Delete removes the value under key. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM session_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// PutJSON marshals v and stores it under key.
func (s *Store) PutJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.Put(key, string(data))
}

// GetJSON reads key and unmarshals into dest. A missing key returns false
// with dest untouched. A corrupt value is logged and treated as missing so a
// damaged session file degrades to defaults instead of wedging startup.
func (s *Store) GetJSON(key string, dest any) (bool, error) {
	value, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		logging.SessionWarn("corrupt session value for %s, ignoring: %v", key, err)
		return false, nil
	}
	return true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
