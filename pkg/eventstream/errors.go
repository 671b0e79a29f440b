package eventstream

import "errors"

// ErrNilInsightEvent indicates a nil insight event payload was provided to a publisher.
var ErrNilInsightEvent = errors.New("nil insight event")
