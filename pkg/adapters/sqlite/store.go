// Package sqlite implements core.Store over a SQLite database. It
// keeps the same whole-collection contract as the file store: Load
// reads every row, Save replaces them all in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/jotvault/jot/pkg/core"
)

// Store is a SQLite-backed core.Store.
type Store struct {
	conn *sql.DB
}

// New opens (or creates) the database at path and runs migrations.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'General',
		updated_at INTEGER NOT NULL DEFAULT 0,
		favorite BOOLEAN NOT NULL DEFAULT FALSE
	)`

	if _, err := s.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Load reads the full collection.
func (s *Store) Load(ctx context.Context) ([]core.Note, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, title, content, category, updated_at, favorite FROM notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var n core.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.UpdatedAt, &n.Favorite); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Save replaces the persisted collection wholesale in one transaction.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO notes (id, title, content, category, updated_at, favorite) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range notes {
		if _, err := stmt.ExecContext(ctx, n.ID, n.Title, n.Content, string(n.Category), n.UpdatedAt, n.Favorite); err != nil {
			return err
		}
	}

	return tx.Commit()
}

var _ core.Store = (*Store)(nil)
