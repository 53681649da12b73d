package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4173,
			Host: "localhost",
		},
		Engine: EngineConfig{
			URL: "http://localhost:8000",
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
			MaxEntries: 256,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/ivy",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
