// Package sqlite implements a storage backend that keeps every project's
// records in a single SQLite database. It satisfies the same key-value
// contract as the flat-file backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// DefaultFileName is the database file created under the projects root
// when no explicit path is configured.
const DefaultFileName = "reqmaster.db"

var errClosed = errors.New("backend is closed")

var (
	_ types.Backend   = (*Backend)(nil)
	_ types.Namespace = (*namespace)(nil)
)

// Backend stores projects and records in SQLite.
type Backend struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Backend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", types.ErrIO, filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", types.ErrIO, path, err)
	}
	// One connection keeps PRAGMA state and serializes writes.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: apply schema: %w", types.ErrIO, err)
		}
	}

	return &Backend{db: db, path: path}, nil
}

// Path returns the database file path.
func (b *Backend) Path() string { return b.path }

// conn returns the open database or errClosed. The caller must hold b.mu.
func (b *Backend) conn() (*sql.DB, error) {
	if b.db == nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, errClosed)
	}
	return b.db, nil
}

// CreateNamespace inserts a project row. Returns ErrAlreadyExists if the
// project is present.
func (b *Backend) CreateNamespace(name string) (types.Namespace, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	exists, err := b.projectExists(db, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrAlreadyExists
	}

	if _, err := db.Exec(
		"INSERT INTO projects (name, created_at) VALUES (?, ?)",
		name, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return nil, fmt.Errorf("%w: inserting project: %w", types.ErrIO, err)
	}
	return &namespace{backend: b, project: name}, nil
}

// OpenNamespace returns the namespace for an existing project.
func (b *Backend) OpenNamespace(name string) (types.Namespace, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	exists, err := b.projectExists(db, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, types.ErrProjectNotFound
	}
	return &namespace{backend: b, project: name}, nil
}

func (b *Backend) projectExists(db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRow("SELECT 1 FROM projects WHERE name = ?", name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: checking project: %w", types.ErrIO, err)
	}
	return true, nil
}

// Namespaces lists project names in sorted order.
func (b *Backend) Namespaces() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	return queryStrings(db, "SELECT name FROM projects ORDER BY name")
}

// Close closes the database. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("%w: close %s: %w", types.ErrIO, b.path, err)
	}
	return nil
}

func queryStrings(db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", types.ErrIO, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", types.ErrIO, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate: %w", types.ErrIO, err)
	}
	return out, nil
}

// namespace is one project's rows in the records table.
type namespace struct {
	backend *Backend
	project string
}

func (n *namespace) Get(key string) ([]byte, error) {
	n.backend.mu.RLock()
	defer n.backend.mu.RUnlock()

	db, err := n.backend.conn()
	if err != nil {
		return nil, err
	}
	var doc string
	err = db.QueryRow(
		"SELECT doc FROM records WHERE project = ? AND record_id = ?", n.project, key,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, types.ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading record %s: %w", types.ErrIO, key, err)
	}
	return []byte(doc), nil
}

// Put upserts the record in a single statement.
func (n *namespace) Put(key string, data []byte) error {
	n.backend.mu.Lock()
	defer n.backend.mu.Unlock()

	db, err := n.backend.conn()
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO records (project, record_id, doc, updated_at) VALUES (?, ?, ?, ?)
         ON CONFLICT (project, record_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		n.project, key, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: writing record %s: %w", types.ErrIO, key, err)
	}
	return nil
}

func (n *namespace) Exists(key string) (bool, error) {
	n.backend.mu.RLock()
	defer n.backend.mu.RUnlock()

	db, err := n.backend.conn()
	if err != nil {
		return false, err
	}
	var one int
	err = db.QueryRow(
		"SELECT 1 FROM records WHERE project = ? AND record_id = ?", n.project, key,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: checking record %s: %w", types.ErrIO, key, err)
	}
	return true, nil
}

func (n *namespace) Keys() ([]string, error) {
	n.backend.mu.RLock()
	defer n.backend.mu.RUnlock()

	db, err := n.backend.conn()
	if err != nil {
		return nil, err
	}
	return queryStrings(db, "SELECT record_id FROM records WHERE project = ? ORDER BY record_id", n.project)
}
