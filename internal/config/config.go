// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Antles/FinalCS340/internal/core/docdb"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	DocDB   DocDBConfig
	Vault   VaultConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host             string
	Port             int
	GinMode          string
	ShutdownTimeout  time.Duration
	// CORSAllowOrigins enables CORS for the listed origins when non-empty.
	CORSAllowOrigins []string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type       string
	User       string
	Host       string
	Port       int
	Database   string
	Collection string
	// PasswordSecret is the vault URI the password is resolved from.
	PasswordSecret string
	ConnectTimeout time.Duration
	AppName        string
}

// ConnectionParams combines the configuration with a resolved password.
func (c DocDBConfig) ConnectionParams(password string) docdb.ConnectionParams {
	return docdb.ConnectionParams{
		User:       c.User,
		Password:   password,
		Host:       c.Host,
		Port:       c.Port,
		Database:   c.Database,
		Collection: c.Collection,
	}
}

// VaultConfig holds vault configuration.
type VaultConfig struct {
	Type string
	// EnvFiles are extra dotenv files consulted by the dotenv vault.
	EnvFiles []string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig holds Prometheus configuration.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:             getEnv("SERVER_HOST", "0.0.0.0"),
			Port:             getEnvAsInt("SERVER_PORT", 8080),
			GinMode:          getEnv("GIN_MODE", "release"),
			ShutdownTimeout:  time.Duration(getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
			CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS"),
		},
		DocDB: DocDBConfig{
			Type:           getEnv("DOCDB_TYPE", "mongodb"),
			User:           getEnv("MONGODB_USER", ""),
			Host:           getEnv("MONGODB_HOST", "localhost"),
			Port:           getEnvAsInt("MONGODB_PORT", 27017),
			Database:       getEnv("MONGODB_DATABASE", "AAC"),
			Collection:     getEnv("MONGODB_COLLECTION", "animals"),
			PasswordSecret: getEnv("MONGODB_PASSWORD_SECRET", "dotenv://MONGODB_PASSWORD"),
			ConnectTimeout: time.Duration(getEnvAsInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
			AppName:        getEnv("MONGODB_APP_NAME", "animal-shelter"),
		},
		Vault: VaultConfig{
			Type:     getEnv("VAULT_TYPE", "dotenv"),
			EnvFiles: getEnvAsList("VAULT_ENV_FILES"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled:   getEnvAsBool("METRICS_ENABLED", true),
			Namespace: getEnv("METRICS_NAMESPACE", "animal_shelter"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	if c.DocDB.Host == "" {
		return fmt.Errorf("MONGODB_HOST is required")
	}
	if c.DocDB.Port <= 0 || c.DocDB.Port > 65535 {
		return fmt.Errorf("invalid MONGODB_PORT: %d", c.DocDB.Port)
	}
	if c.DocDB.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}
	if c.DocDB.Collection == "" {
		return fmt.Errorf("MONGODB_COLLECTION is required")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as a boolean with a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated environment variable.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
