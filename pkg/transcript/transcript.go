// Package transcript extracts assistant-authored text from session
// transcript logs (JSONL, one event per line).
//
// Transcripts come from whatever agent produced the session, so parsing is
// deliberately tolerant: unparseable lines are skipped, and both the nested
// event shape ({"message": {"role": ..., "content": [...]}}) and the flat
// shape ({"role": ..., "content": "..."}) are accepted.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// maxLineSize bounds a single transcript line (tool results can be large).
const maxLineSize = 10 * 1024 * 1024

// LatestAssistantText returns the text of the most recent assistant-authored
// message in the transcript, or "" when none exists. Callers treat "" as
// "nothing to persist".
func LatestAssistantText(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var latest string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !gjson.Valid(line) {
			continue
		}

		if text := assistantText(line); text != "" {
			latest = text
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scanning transcript: %w", err)
	}

	return latest, nil
}

// LatestAssistantTextFile opens path and extracts the latest assistant text.
func LatestAssistantTextFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	return LatestAssistantText(f)
}

// assistantText extracts assistant text from a single transcript event, or
// returns "" when the event is not an assistant message.
func assistantText(line string) string {
	// Nested event shape: {"message": {"role": "assistant", "content": ...}}
	if msg := gjson.Get(line, "message"); msg.Exists() {
		if msg.Get("role").String() != "assistant" {
			return ""
		}
		return contentText(msg.Get("content"))
	}

	// Flat shape: {"role": "assistant", "content": ...}
	if gjson.Get(line, "role").String() != "assistant" {
		return ""
	}

	return contentText(gjson.Get(line, "content"))
}

// contentText flattens a content value: either a plain string or an array of
// content blocks whose text parts are joined by newlines.
func contentText(content gjson.Result) string {
	if content.Type == gjson.String {
		return content.String()
	}

	if !content.IsArray() {
		return ""
	}

	var parts []string
	for _, block := range content.Array() {
		if block.Get("type").String() != "text" {
			continue
		}
		if text := block.Get("text").String(); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n")
}
