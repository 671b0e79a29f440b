// Package store defines the message store abstraction for the recall system.
// All mutation of the insight table funnels through a Driver; nothing else
// touches the underlying storage.
package store

import (
	"context"
	"strings"
	"time"
)

const (
	// DefaultSessionID is recorded when a producer does not identify its session.
	DefaultSessionID = "unknown"

	// MaxListLimit bounds a single List response.
	MaxListLimit = 1000

	// TimeFormat is the stored timestamp layout: RFC3339, UTC, second precision.
	TimeFormat = time.RFC3339
)

// Message is a single persisted insight record. Messages are immutable after
// creation; the only lifecycle transitions are Create and Delete/Clear.
type Message struct {
	// ID is assigned by the store on creation, monotonically increasing,
	// never reused or mutated.
	ID int64 `json:"id"`

	// Type is a short tag. Conventionally one of insight, decision, or
	// observation, but stored verbatim without validation.
	Type string `json:"type"`

	// Content is the insight text. Required; must contain at least one
	// non-whitespace character.
	Content string `json:"content"`

	// Timestamp is the creation time in TimeFormat. Producers may supply it;
	// the store fills it at insert time when absent.
	Timestamp string `json:"timestamp"`

	// SessionID identifies the producing session, DefaultSessionID if unknown.
	SessionID string `json:"session_id"`

	// Repo identifies the originating project (e.g. a git remote). May be empty.
	Repo string `json:"repo,omitempty"`
}

// Driver is the interface for persisting and retrieving messages in a
// storage backend. Implementations must be safe for concurrent use and
// every mutating operation must be durable before returning.
type Driver interface {
	// Create persists a new message and returns it with its assigned ID.
	// Missing timestamp/session_id fields are filled with defaults.
	// Returns a ValidationError when content is empty or whitespace-only.
	Create(ctx context.Context, msg Message) (*Message, error)

	// List returns up to limit messages ordered newest-first by ID,
	// skipping offset rows. Returns a ValidationError when limit <= 0;
	// limits above MaxListLimit are clamped.
	List(ctx context.Context, limit, offset int) ([]*Message, error)

	// Delete removes the message with the given ID and reports whether a
	// row was removed. Deleting a non-existent ID is not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// Clear removes all messages and returns the number removed.
	Clear(ctx context.Context) (int64, error)

	// Close closes the store and releases any resources.
	Close() error
}

// PrepareCreate validates msg for insertion and fills defaulted fields.
// Shared by every driver so defaulting never drifts between backends.
// Whitespace-only content counts as empty; accepted content is stored
// verbatim, untrimmed.
func PrepareCreate(msg Message, now time.Time) (Message, error) {
	if strings.TrimSpace(msg.Content) == "" {
		return Message{}, ValidationError{Field: "content", Reason: "must not be empty"}
	}

	if msg.Timestamp == "" {
		msg.Timestamp = now.UTC().Truncate(time.Second).Format(TimeFormat)
	}

	if msg.SessionID == "" {
		msg.SessionID = DefaultSessionID
	}

	return msg, nil
}

// ClampLimit validates a List limit and clamps it to MaxListLimit.
func ClampLimit(limit int) (int, error) {
	if limit <= 0 {
		return 0, ValidationError{Field: "limit", Reason: "must be a positive integer"}
	}

	if limit > MaxListLimit {
		return MaxListLimit, nil
	}

	return limit, nil
}
