// Package store persists SADL architecture documents in SQLite.
//
// Documents are stored as source text under a generated ID and a unique
// name. Stored documents can include each other by name: the store exposes
// a dsl.Resolver that serves other documents' source, so a shared schema
// library can live in one document and be included from many.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/riolet/sadl/dsl"
)

// ErrNotFound is returned when no document matches the given ID or name.
var ErrNotFound = errors.New("store: document not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	source     TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Document is a stored architecture description.
type Document struct {
	ID        string
	Name      string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed document store. Use ":memory:" as the path for
// an ephemeral store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a document under the given name, assigning a fresh ID for
// new names and keeping the existing ID on update. The source must parse;
// includes are resolved against other stored documents by name.
func (s *Store) Save(name, source string) (*Document, error) {
	if _, err := dsl.ParseWithOptions(source, &dsl.Options{
		Resolver: s.Resolver(),
		Path:     name,
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	existing, err := s.GetByName(name)
	switch {
	case err == nil:
		_, err = s.db.Exec(`UPDATE documents SET source = ?, updated_at = ? WHERE id = ?`,
			source, now.Unix(), existing.ID)
		if err != nil {
			return nil, fmt.Errorf("store: update %q: %w", name, err)
		}
		existing.Source = source
		existing.UpdatedAt = now
		return existing, nil
	case errors.Is(err, ErrNotFound):
		doc := &Document{
			ID:        uuid.New().String(),
			Name:      name,
			Source:    source,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err = s.db.Exec(`INSERT INTO documents (id, name, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			doc.ID, doc.Name, doc.Source, now.Unix(), now.Unix())
		if err != nil {
			return nil, fmt.Errorf("store: insert %q: %w", name, err)
		}
		return doc, nil
	default:
		return nil, err
	}
}

// Get retrieves a document by ID.
func (s *Store) Get(id string) (*Document, error) {
	return s.scanOne(`SELECT id, name, source, created_at, updated_at FROM documents WHERE id = ?`, id)
}

// GetByName retrieves a document by name.
func (s *Store) GetByName(name string) (*Document, error) {
	return s.scanOne(`SELECT id, name, source, created_at, updated_at FROM documents WHERE name = ?`, name)
}

// List returns all documents ordered by name.
func (s *Store) List() ([]*Document, error) {
	rows, err := s.db.Query(`SELECT id, name, source, created_at, updated_at FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes a document by ID. Returns ErrNotFound if no document has
// that ID.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AST parses the identified document, resolving includes against other
// stored documents.
func (s *Store) AST(id string) (*dsl.AST, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return dsl.ParseWithOptions(doc.Source, &dsl.Options{
		Resolver: s.Resolver(),
		Path:     doc.Name,
	})
}

// Resolver returns a dsl.Resolver serving stored documents by name, for
// use as the include resolver of parses performed by the host.
func (s *Store) Resolver() dsl.Resolver {
	return func(path, fromPath string) (string, error) {
		doc, err := s.GetByName(path)
		if err != nil {
			return "", err
		}
		return doc.Source, nil
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanOne(query string, arg any) (*Document, error) {
	row := s.db.QueryRow(query, arg)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return doc, err
}

func scanDocument(row scanner) (*Document, error) {
	var doc Document
	var created, updated int64
	if err := row.Scan(&doc.ID, &doc.Name, &doc.Source, &created, &updated); err != nil {
		return nil, err
	}
	doc.CreatedAt = time.Unix(created, 0)
	doc.UpdatedAt = time.Unix(updated, 0)
	return &doc, nil
}
