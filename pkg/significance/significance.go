// Package significance decides whether free text from an assistant turn is
// worth persisting as an insight. It is a noise gate, not a correctness
// check: false positives and negatives are acceptable.
package significance

import "strings"

// signalWords is the fixed vocabulary that marks a message as postable.
// Matching is case-insensitive substring containment.
var signalWords = []string{
	"found",
	"discovered",
	"decision",
	"because",
	"insight",
	"important",
	"note",
	"learned",
	"realized",
	"notice",
	"issue",
	"problem",
	"solution",
	"fix",
	"root cause",
	"key point",
	"takeaway",
}

// IsSignificant reports whether text contains at least one signal word.
// Empty or whitespace-only text is never significant.
func IsSignificant(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	lowered := strings.ToLower(text)
	for _, word := range signalWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
