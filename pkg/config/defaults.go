package config

const (
	defaultStorageProvider = "sqlite"
	defaultAPIListen       = ":8765"

	defaultClientAPITarget = "http://localhost:8765"

	defaultContextLimit     = 20
	defaultMaxContentLength = 2000

	defaultEventsProvider = "nop"
	defaultEventsTopic    = "recall.insights"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Provider: defaultStorageProvider,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		Hooks: HooksConfig{
			ContextLimit:     defaultContextLimit,
			MaxContentLength: defaultMaxContentLength,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Topic:    defaultEventsTopic,
		},
	}
}
