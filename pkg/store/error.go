package store

import "fmt"

// ValidationError is returned when a store operation receives a bad or
// missing required field. The API layer maps it to a client error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input"
	}

	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned when a message ID doesn't exist in the store.
// Delete reports absence as a bool rather than surfacing this to callers;
// the type exists for internal lookups.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	if e.ID == 0 {
		return "message not found"
	}

	return fmt.Sprintf("message not found: %d", e.ID)
}
