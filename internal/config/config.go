package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/burrow/internal/logger"
)

const (
	defaultErrorLogCapacity = 20
	minErrorLogCapacity     = 1
	maxErrorLogCapacity     = 500
)

// Dir sorting values accepted in the config file and on the command line.
const (
	DirSortingUnsorted = "unsorted"
	DirSortingStart    = "start"
	DirSortingEnd      = "end"
)

// Config holds all burrow configuration
type Config struct {
	ShowHidden       bool     `json:"show_hidden"`
	DirSorting       string   `json:"dir_sorting"`        // "unsorted", "start" or "end"
	ErrorLogCapacity int      `json:"error_log_capacity"` // Number of failures kept in the error panel
	HidePatterns     []string `json:"hide_patterns"`      // Glob patterns treated like dotfiles (e.g. "*.pyc")
	UseTrash         bool     `json:"use_trash"`
	StartDir         string   `json:"start_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ShowHidden:       false,
		DirSorting:       DirSortingStart,
		ErrorLogCapacity: defaultErrorLogCapacity,
		HidePatterns:     []string{},
		UseTrash:         false,
		StartDir:         "",
	}
}

// Load reads config from ~/.config/burrow/burrow-config.json
func Load() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return Default()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", filepath.Dir(configPath), err)
	}

	defaultConfig := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Save default config and return it
		if err := Save(defaultConfig); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return defaultConfig
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return defaultConfig
	}

	config.normalize()
	return config
}

// normalize replaces missing or out-of-range values with defaults.
func (c *Config) normalize() {
	if c.HidePatterns == nil {
		c.HidePatterns = []string{}
	}

	switch c.DirSorting {
	case DirSortingUnsorted, DirSortingStart, DirSortingEnd:
	case "":
		c.DirSorting = DirSortingStart
	default:
		logger.Warn("Unknown dir_sorting %q, using %q", c.DirSorting, DirSortingStart)
		c.DirSorting = DirSortingStart
	}

	if c.ErrorLogCapacity == 0 {
		c.ErrorLogCapacity = defaultErrorLogCapacity
	} else if c.ErrorLogCapacity < minErrorLogCapacity {
		logger.Warn("ErrorLogCapacity too low (%d), using minimum of %d", c.ErrorLogCapacity, minErrorLogCapacity)
		c.ErrorLogCapacity = minErrorLogCapacity
	} else if c.ErrorLogCapacity > maxErrorLogCapacity {
		logger.Warn("ErrorLogCapacity too high (%d), using maximum of %d", c.ErrorLogCapacity, maxErrorLogCapacity)
		c.ErrorLogCapacity = maxErrorLogCapacity
	}
}

// Save writes config to ~/.config/burrow/burrow-config.json
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return fmt.Errorf("cannot get home directory: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "burrow", "burrow-config.json"), nil
}
