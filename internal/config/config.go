package config

import (
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// DemoMemberID is the acting member assumed when a request carries no
	// X-Member-ID header. There is no real authentication; the host
	// supplies the acting member's identity.
	DemoMemberID   string
	DemoMemberName string

	// MaterializeInterval is how often due recurring templates are turned
	// into concrete expenses. Zero disables the background ticker.
	MaterializeInterval time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DemoMemberID:        getEnv("DEMO_MEMBER_ID", "demo-user"),
		DemoMemberName:      getEnv("DEMO_MEMBER_NAME", "Demo User"),
		MaterializeInterval: getDuration("MATERIALIZE_INTERVAL", time.Hour),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
