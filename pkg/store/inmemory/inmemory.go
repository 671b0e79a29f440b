// Package inmemory provides an in-process implementation of store.Driver.
// It backs tests and is the default when no persistent path is configured.
package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/papercomputeco/recall/pkg/store"
)

// Driver implements store.Driver using an in-memory slice.
type Driver struct {
	// mu guards messages and nextID.
	mu sync.RWMutex

	// messages holds rows in insertion order (oldest first).
	messages []*store.Message

	// nextID is the next ID to assign. IDs are never reused, even after
	// Delete or Clear.
	nextID int64
}

// NewDriver creates a new in-memory store.
func NewDriver() *Driver {
	return &Driver{nextID: 1}
}

// Create persists a message and assigns it a fresh ID.
func (d *Driver) Create(_ context.Context, msg store.Message) (*store.Message, error) {
	prepared, err := store.PrepareCreate(msg, time.Now())
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	prepared.ID = d.nextID
	d.nextID++

	d.messages = append(d.messages, &prepared)

	out := prepared
	return &out, nil
}

// List returns up to limit messages, newest first by ID.
func (d *Driver) List(_ context.Context, limit, offset int) ([]*store.Message, error) {
	limit, err := store.ClampLimit(limit)
	if err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]*store.Message, 0, limit)
	for i := len(d.messages) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		m := *d.messages[i]
		result = append(result, &m)
	}

	return result, nil
}

// Delete removes the message with the given ID, reporting whether it existed.
func (d *Driver) Delete(_ context.Context, id int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, m := range d.messages {
		if m.ID == id {
			d.messages = append(d.messages[:i], d.messages[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

// Clear removes all messages and returns the number removed.
func (d *Driver) Clear(_ context.Context) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := int64(len(d.messages))
	d.messages = nil

	return count, nil
}

// Close is a no-op for the in-memory driver.
func (d *Driver) Close() error {
	return nil
}
