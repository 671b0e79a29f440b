// Package client provides a thin HTTP client for the recall API server.
//
// Insight logging is auxiliary to the caller's primary task, so every call
// is bounded by a short timeout and hook commands discard errors rather than
// letting a dead server delay or abort the session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papercomputeco/recall/pkg/store"
)

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 3 * time.Second

// Client talks to a running recall API server.
type Client struct {
	target string
	http   *http.Client
}

// New creates a client for the given target (scheme + host + port, e.g.
// "http://localhost:8765").
func New(target string) *Client {
	return &Client{
		target: strings.TrimRight(target, "/"),
		http:   &http.Client{Timeout: DefaultTimeout},
	}
}

// errorResponse mirrors the API's error body.
type errorResponse struct {
	Error string `json:"error"`
}

// listResponse is the enveloped list shape. The API may also return a bare
// array; Recent accepts both.
type listResponse struct {
	Messages []*store.Message `json:"messages"`
	Count    int              `json:"count"`
}

// Post persists a message and returns it with its assigned ID.
func (c *Client) Post(ctx context.Context, msg store.Message) (*store.Message, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshaling message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.target+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var created store.Message
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &created, nil
}

// Recent fetches up to limit messages, newest first. Both the enveloped
// {"messages": [...]} shape and a bare JSON array are accepted.
func (c *Client) Recent(ctx context.Context, limit int) ([]*store.Message, error) {
	url := fmt.Sprintf("%s/messages?limit=%d", c.target, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var messages []*store.Message
		if err := json.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		return messages, nil
	}

	var list listResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return list.Messages, nil
}

// Delete removes a single message. Absence of the row is still success.
func (c *Client) Delete(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/messages/%d", c.target, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// Clear removes all messages and returns the removed count.
func (c *Client) Clear(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.target+"/messages", nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("clearing messages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apiError(resp)
	}

	var result struct {
		DeletedCount int64 `json:"deleted_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}

	return result.DeletedCount, nil
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.target+"/ping", nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pinging server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

// apiError turns a non-2xx response into an error carrying the server's message.
func apiError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}

	return fmt.Errorf("server returned %d", resp.StatusCode)
}
