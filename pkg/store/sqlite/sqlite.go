// Package sqlite provides a SQLite-backed store driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/recall/pkg/store"
)

const schema = `CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	session_id TEXT NOT NULL,
	repo TEXT NOT NULL DEFAULT ''
);`

// Driver implements store.Driver using SQLite via the
// github.com/mattn/go-sqlite3 driver (registered as "sqlite3").
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed store.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite-specific pragmas: bounded waits on contended writes,
	// WAL so reads stay consistent alongside writers.
	if _, err := db.Exec("PRAGMA busy_timeout = 10000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Driver{db: db}, nil
}

// Create persists a message in a single transaction and returns it with its
// assigned ID.
func (d *Driver) Create(ctx context.Context, msg store.Message) (*store.Message, error) {
	prepared, err := store.PrepareCreate(msg, time.Now())
	if err != nil {
		return nil, err
	}

	res, err := d.db.ExecContext(ctx,
		`INSERT INTO messages (type, content, timestamp, session_id, repo) VALUES (?, ?, ?, ?, ?)`,
		prepared.Type, prepared.Content, prepared.Timestamp, prepared.SessionID, prepared.Repo,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	prepared.ID = id
	return &prepared, nil
}

// List returns up to limit messages ordered newest-first by ID.
func (d *Driver) List(ctx context.Context, limit, offset int) ([]*store.Message, error) {
	limit, err := store.ClampLimit(limit)
	if err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT id, type, content, timestamp, session_id, repo
		 FROM messages ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	result := make([]*store.Message, 0, limit)
	for rows.Next() {
		var m store.Message
		if err := rows.Scan(&m.ID, &m.Type, &m.Content, &m.Timestamp, &m.SessionID, &m.Repo); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		result = append(result, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return result, nil
}

// Delete removes the message with the given ID, reporting whether a row went.
func (d *Driver) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// Clear removes all messages and returns the number removed.
func (d *Driver) Clear(ctx context.Context) (int64, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM messages`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear messages: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected, nil
}

// Close closes the underlying database.
func (d *Driver) Close() error {
	return d.db.Close()
}
