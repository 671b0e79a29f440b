package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config represents the persistent recall configuration stored as config.toml
// in the .recall/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	Client  ClientConfig  `toml:"client"`
	Hooks   HooksConfig   `toml:"hooks"`
	Events  EventsConfig  `toml:"events"`
}

// StorageConfig holds storage backend settings for the API server.
type StorageConfig struct {
	// Provider selects the store driver: "inmemory", "sqlite", or "postgres".
	Provider string `toml:"provider,omitempty"`

	// SQLitePath is the SQLite database file. When empty the serve command
	// resolves it to messages.db inside the .recall/ directory.
	SQLitePath string `toml:"sqlite_path,omitempty"`

	// PostgresDSN is the connection string used when Provider is "postgres".
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// API server (e.g. recall post, recall context, recall clear).
type ClientConfig struct {
	// APITarget is a full URL (scheme + host + port).
	APITarget string `toml:"api_target,omitempty"`
}

// HooksConfig holds settings for the producer/consumer hook commands.
type HooksConfig struct {
	// ContextLimit is how many recent insights the context command fetches.
	ContextLimit int `toml:"context_limit,omitempty"`

	// MaxContentLength caps posted content length in runes. Truncation
	// happens on the producer side; the store never rejects long content.
	MaxContentLength int `toml:"max_content_length,omitempty"`
}

// EventsConfig holds event stream settings.
type EventsConfig struct {
	// Provider selects the publisher: "nop" or "kafka".
	Provider string `toml:"provider,omitempty"`

	// Brokers is the comma-separated Kafka bootstrap broker list.
	Brokers string `toml:"brokers,omitempty"`

	// Topic is the Kafka topic insight events are written to.
	Topic string `toml:"topic,omitempty"`
}

// BrokerList splits the configured broker string into addresses.
func (e EventsConfig) BrokerList() []string {
	if e.Brokers == "" {
		return nil
	}

	parts := strings.Split(e.Brokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}

	return brokers
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.provider": {
		get: func(c *Config) string { return c.Storage.Provider },
		set: func(c *Config, v string) error { c.Storage.Provider = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_dsn": {
		get: func(c *Config) string { return c.Storage.PostgresDSN },
		set: func(c *Config, v string) error { c.Storage.PostgresDSN = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"hooks.context_limit": {
		get: func(c *Config) string {
			if c.Hooks.ContextLimit == 0 {
				return ""
			}
			return strconv.Itoa(c.Hooks.ContextLimit)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for hooks.context_limit: %w", err)
			}
			c.Hooks.ContextLimit = n
			return nil
		},
	},
	"hooks.max_content_length": {
		get: func(c *Config) string {
			if c.Hooks.MaxContentLength == 0 {
				return ""
			}
			return strconv.Itoa(c.Hooks.MaxContentLength)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for hooks.max_content_length: %w", err)
			}
			c.Hooks.MaxContentLength = n
			return nil
		},
	},
	"events.provider": {
		get: func(c *Config) string { return c.Events.Provider },
		set: func(c *Config, v string) error { c.Events.Provider = v; return nil },
	},
	"events.brokers": {
		get: func(c *Config) string { return c.Events.Brokers },
		set: func(c *Config, v string) error { c.Events.Brokers = v; return nil },
	},
	"events.topic": {
		get: func(c *Config) string { return c.Events.Topic },
		set: func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
}
