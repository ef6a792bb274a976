// Package postgres persists the override document as a JSONB snapshot in a
// PostgreSQL table, mirroring the sqlite store for shared deployments.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"clogen/pkg/domain"
)

var _ domain.OverrideStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/clogen?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store is a postgres-backed override document store.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a postgres-backed store using the provided DSN (falls back
// to defaultDSN) and ensures the snapshot table exists.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS override_document (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return nil, fmt.Errorf("create override table: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the persisted override document, reporting absence when no
// snapshot exists. An undecodable snapshot surfaces as
// domain.OverrideParseError.
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
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`, payload)
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
