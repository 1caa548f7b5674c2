// Package store persists decks as JSON documents in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/VantageDataChat/GoDeck/deck"
)

// ErrNotFound is returned when no deck has the requested id.
var ErrNotFound = errors.New("deck not found")

const schema = `
CREATE TABLE IF NOT EXISTS decks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	data       TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Summary describes a stored deck without its content.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SQLiteStore keeps decks in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
// ":memory:" opens a private in-memory database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps writers serialized and an in-memory database alive
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveDeck inserts or replaces d and returns its id. A deck without an id
// is stored under a new UUID; d itself is not modified.
func (s *SQLiteStore) SaveDeck(ctx context.Context, d *deck.Deck) (string, error) {
	if d == nil {
		return "", fmt.Errorf("deck is nil")
	}
	saved := *d
	if saved.ID.IsBlank() {
		saved.ID = deck.Text(uuid.New().String())
	}
	id := saved.ID.Trimmed()
	saved.ID = deck.Text(id)

	data, err := json.Marshal(&saved)
	if err != nil {
		return "", fmt.Errorf("failed to serialize deck: %w", err)
	}

	now := time.Now().UnixMilli()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decks (id, title, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, data = excluded.data, updated_at = excluded.updated_at`,
		id, saved.Title.Trimmed(), string(data), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to save deck: %w", err)
	}
	return id, nil
}

// GetDeck loads the deck stored under id.
func (s *SQLiteStore) GetDeck(ctx context.Context, id string) (*deck.Deck, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM decks WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	d, err := deck.Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored deck %s: %w", id, err)
	}
	return d, nil
}

// ListDecks returns every stored deck, most recently updated first.
func (s *SQLiteStore) ListDecks(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, created_at, updated_at FROM decks ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	list := make([]Summary, 0)
	for rows.Next() {
		var sum Summary
		var created, updated int64
		if err := rows.Scan(&sum.ID, &sum.Title, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		sum.CreatedAt = time.UnixMilli(created)
		sum.UpdatedAt = time.UnixMilli(updated)
		list = append(list, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return list, nil
}

// DeleteDeck removes the deck stored under id.
func (s *SQLiteStore) DeleteDeck(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
