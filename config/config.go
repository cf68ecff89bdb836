package config

import (
	"encoding/json"
	"fmt"
	"json-modal/log"
	"os"
	"path/filepath"
)

const (
	ConfigFileName = "config.json"
	defaultTheme   = "github-dark"
	defaultFormat  = "terminal"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".json-modal"), nil
}

// Config represents the application configuration
type Config struct {
	// Theme is the chroma style used for highlighting.
	Theme string `json:"theme"`
	// DefaultFormat is the markup dialect of the render command: "terminal" or "html".
	DefaultFormat string `json:"default_format"`
	// HighlightTimeoutMs bounds a single highlight call. Zero means no bound.
	HighlightTimeoutMs int `json:"highlight_timeout_ms"`
	// SampleFile is a JSON file shown instead of the built-in sample when no file is given.
	SampleFile string `json:"sample_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Theme:              defaultTheme,
		DefaultFormat:      defaultFormat,
		HighlightTimeoutMs: 0,
	}
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	// Merge with defaults for missing fields to handle config file migration
	defaults := DefaultConfig()
	if config.Theme == "" {
		config.Theme = defaults.Theme
	}
	if config.DefaultFormat == "" {
		config.DefaultFormat = defaults.DefaultFormat
	}
	if config.HighlightTimeoutMs < 0 {
		config.HighlightTimeoutMs = 0
	}

	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
