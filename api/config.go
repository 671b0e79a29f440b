// Package api provides the HTTP API server for storing and retrieving
// insight messages.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8765")
	ListenAddr string
}
