// Package contextblock renders stored insights into a single text block
// suitable for injection as contextual preamble for a new session.
package contextblock

import (
	"strings"

	"github.com/papercomputeco/recall/pkg/store"
)

// Format renders messages one per line as
//
//	- [timestamp] (type) [repo] content
//
// omitting the (type) segment when type is empty and the [repo] segment when
// repo is empty. Order is preserved (callers pass newest-first). Empty input
// yields an empty string; callers must then suppress the block entirely
// rather than emit a bare header.
func Format(messages []*store.Message) string {
	if len(messages) == 0 {
		return ""
	}

	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString("- [")
		b.WriteString(m.Timestamp)
		b.WriteString("]")

		if m.Type != "" {
			b.WriteString(" (")
			b.WriteString(m.Type)
			b.WriteString(")")
		}

		if m.Repo != "" {
			b.WriteString(" [")
			b.WriteString(m.Repo)
			b.WriteString("]")
		}

		b.WriteString(" ")
		b.WriteString(m.Content)
	}

	return b.String()
}
