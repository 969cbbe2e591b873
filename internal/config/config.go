// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the runs database (always absolute)
	LogLevel string
	Port     int
	DevMode  bool // Dev mode runs the preset simulations at startup
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory:
	// 1. QBIND_DATA_DIR environment variable
	// 2. Fallback to ./data
	// Always resolved to an absolute path, created if missing.
	dataDir := getEnv("QBIND_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory to absolute path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port, err := strconv.Atoi(getEnv("QBIND_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid QBIND_PORT: %w", err)
	}

	return &Config{
		DataDir:  absDataDir,
		LogLevel: getEnv("QBIND_LOG_LEVEL", "info"),
		Port:     port,
		DevMode:  getEnv("QBIND_DEV_MODE", "false") == "true",
	}, nil
}

// RunsDBPath returns the path of the runs database inside the data directory.
func (c *Config) RunsDBPath() string {
	return filepath.Join(c.DataDir, "runs.db")
}

// getEnv retrieves an environment variable value, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
