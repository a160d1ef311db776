// ABOUTME: This file handles configuration management for feed-sync-engine
// ABOUTME: Loads environment variables and validates configuration for the sync engine

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the feed-sync-engine service
type Config struct {
	// Service configuration
	ServiceName string
	LogLevel    string

	// Sync database configuration (ledger + change tokens)
	Database DatabaseConfig

	// Remote zone configuration
	Zones ZoneConfig

	// Sync behavior configuration
	Sync SyncConfig
}

// DatabaseConfig holds sync database settings
type DatabaseConfig struct {
	Path string
}

// ZoneConfig holds remote zone settings
type ZoneConfig struct {
	AccountZone  string
	ArticlesZone string
	BatchLimit   int
}

// SyncConfig holds sync behavior settings
type SyncConfig struct {
	PushBatchSize  int
	Concurrency    int
	SyncInterval   time.Duration
	ResyncInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnvOrDefault("SERVICE_NAME", "feed-sync-engine"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),

		Database: DatabaseConfig{
			Path: getEnvOrDefault("SYNC_DB_PATH", "sync.db"),
		},

		Zones: ZoneConfig{
			AccountZone:  getEnvOrDefault("ACCOUNT_ZONE", "account"),
			ArticlesZone: getEnvOrDefault("ARTICLES_ZONE", "articles"),
		},
	}

	cfg.Zones.BatchLimit = getEnvIntOrDefault("ZONE_BATCH_LIMIT", 300)
	cfg.Sync.PushBatchSize = getEnvIntOrDefault("PUSH_BATCH_SIZE", 150)
	cfg.Sync.Concurrency = getEnvIntOrDefault("SYNC_CONCURRENCY", 4)

	cfg.Sync.SyncInterval = getEnvDurationOrDefault("SYNC_INTERVAL", 30*time.Minute)
	cfg.Sync.ResyncInterval = getEnvDurationOrDefault("RESYNC_INTERVAL", 24*time.Hour)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("SYNC_DB_PATH is required")
	}

	if c.Zones.AccountZone == "" {
		return fmt.Errorf("ACCOUNT_ZONE is required")
	}

	if c.Zones.ArticlesZone == "" {
		return fmt.Errorf("ARTICLES_ZONE is required")
	}

	if c.Zones.AccountZone == c.Zones.ArticlesZone {
		return fmt.Errorf("ACCOUNT_ZONE and ARTICLES_ZONE must be distinct")
	}

	if c.Zones.BatchLimit <= 0 {
		return fmt.Errorf("ZONE_BATCH_LIMIT must be positive")
	}

	if c.Sync.PushBatchSize <= 0 {
		return fmt.Errorf("PUSH_BATCH_SIZE must be positive")
	}

	if c.Sync.Concurrency <= 0 {
		return fmt.Errorf("SYNC_CONCURRENCY must be positive")
	}

	if c.Sync.SyncInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive")
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns an integer environment variable or default if
// not set or unparseable
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault returns a duration environment variable or default
// if not set or unparseable
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
