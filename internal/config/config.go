package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	CORS     CORSConfig
	Yahoo    YahooConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration.
// The default ":memory:" path keeps the session cache in process memory so
// fetched history never survives a restart.
type DatabaseConfig struct {
	Path string
}

// SessionConfig holds session lifecycle configuration.
// FernetKey is the base64 key used to mint session tokens; when empty a
// fresh key is generated at startup, which invalidates tokens from previous
// runs along with the sessions they named.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	FernetKey     string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// YahooConfig holds the market-data source configuration.
// BaseURL is overridable so tests can point the client at a local server.
type YahooConfig struct {
	BaseURL string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("SESSION_SWEEP_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", ":memory:"),
		},
		Session: SessionConfig{
			TTL:           sessionTTL,
			SweepInterval: sweepInterval,
			FernetKey:     os.Getenv("SESSION_FERNET_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Yahoo: YahooConfig{
			BaseURL: os.Getenv("YAHOO_BASE_URL"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
