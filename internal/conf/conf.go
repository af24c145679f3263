package conf

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config represents application configuration
type Config struct {
	// API configuration
	API APIConfig

	// Draft store configuration
	Draft DraftConfig

	// Catalog configuration (loaded from YAML)
	Catalog *CatalogConfig

	// Countdown refresh interval in seconds
	RefreshSeconds int

	// Timezone override; empty means use the server profile zone
	Timezone string

	// Debug mode
	Debug bool
}

// APIConfig contains the remote service settings
type APIConfig struct {
	BaseURL string
	Token   string
}

// DraftConfig contains local draft store settings
type DraftConfig struct {
	DBPath string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Draft DB path
	draftDBPath := os.Getenv("CRONPOST_DRAFT_DB_PATH")
	if draftDBPath == "" {
		homeDir, _ := os.UserHomeDir()
		draftDBPath = filepath.Join(homeDir, ".cronpost", "drafts.db")
	}

	// Countdown refresh interval
	refreshSeconds := 1
	if val := os.Getenv("CRONPOST_REFRESH_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			refreshSeconds = parsed
		}
	}

	baseURL := os.Getenv("CRONPOST_API_URL")
	if baseURL == "" {
		baseURL = "https://api.cronpost.com"
	}

	// Load locale catalog from YAML
	catalogPath := os.Getenv("CRONPOST_CATALOG_PATH")
	catalog, _ := LoadCatalogConfig(catalogPath)

	return &Config{
		API: APIConfig{
			BaseURL: baseURL,
			Token:   os.Getenv("CRONPOST_API_TOKEN"),
		},
		Draft: DraftConfig{
			DBPath: draftDBPath,
		},
		Catalog:        catalog,
		RefreshSeconds: refreshSeconds,
		Timezone:       os.Getenv("CRONPOST_TIMEZONE"),
		Debug:          os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return &ConfigError{Field: "CRONPOST_API_TOKEN", Message: "required"}
	}
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "CRONPOST_API_URL", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
