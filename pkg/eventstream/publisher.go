package eventstream

import "context"

// Publisher publishes insight events to an event stream backend.
// Publishing is fire-and-forget from the API's perspective: the server logs
// failures and never surfaces them to the HTTP caller.
type Publisher interface {
	PublishInsight(ctx context.Context, event *InsightStoredEvent) error
	Close() error
}
