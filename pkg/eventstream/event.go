package eventstream

import (
	"time"

	"github.com/papercomputeco/recall/pkg/store"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeInsightStored is emitted after an insight message is persisted.
	EventTypeInsightStored = "recall.insight.stored"
)

// InsightStoredEvent is a transport-neutral event payload for a stored insight.
type InsightStoredEvent struct {
	SchemaVersion int           `json:"schema_version"`
	EventType     string        `json:"event_type"`
	EventID       string        `json:"event_id"`
	EmittedAt     time.Time     `json:"emitted_at"`
	Source        EventSource   `json:"source"`
	Message       store.Message `json:"message"`
}

// EventSource identifies where the insight originated.
type EventSource struct {
	SessionID string `json:"session_id,omitempty"`
	Repo      string `json:"repo,omitempty"`
}
