// Package sqlite persists the override document as a JSON snapshot in an
// embedded sqlite database. The editing surface writes the snapshot; the
// engine reads it once per session at merge time.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"clogen/pkg/domain"
)

var _ domain.OverrideStore = (*Store)(nil)

// Store is a sqlite-backed override document store.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if necessary) the sqlite database at path and
// ensures the snapshot table exists.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "clogen.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS override_document (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create override table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Load returns the persisted override document, reporting absence when no
// snapshot has been saved. A present-but-undecodable snapshot is surfaced as
// a domain.OverrideParseError so callers can fall back to the base document.
func (s *Store) Load(ctx context.Context) (domain.OverrideDocument, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM override_document WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.OverrideDocument{}, false, nil
	}
	if err != nil {
		return domain.OverrideDocument{}, false, fmt.Errorf("select override: %w", err)
	}
	var doc domain.OverrideDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.OverrideDocument{}, false, domain.OverrideParseError{Err: err}
	}
	return doc, true, nil
}

// Save replaces the persisted override snapshot.
func (s *Store) Save(ctx context.Context, doc domain.OverrideDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode override: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO override_document (id, payload, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
