// Package config provides configuration management for the palettize CLI.
//
// Configuration is loaded from an optional JSON file at
// ~/.config/palettize/config.json. Every field has a usable default; unlike
// a tool that wraps an external executable, nothing here is mandatory.
//
// Example config file:
//
//	{
//	  "palette_size": 16,
//	  "color_space": "srgb",
//	  "dither": true,
//	  "kmeans_iterations": 5,
//	  "log_level": "info"
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI-level defaults for the quantization pipeline.
type Config struct {
	// PaletteSize is the default target palette size. Defaults to 16.
	PaletteSize int `json:"palette_size"`

	// ColorSpace is the default working color space for palette
	// construction: "srgb", "cieluv", or "ictcp". Defaults to "srgb".
	ColorSpace string `json:"color_space"`

	// Dither enables Riemersma dithering by default. Defaults to false.
	Dither bool `json:"dither"`

	// KMeansIterations is the default refinement pass count; <= 0
	// disables refinement. Defaults to 0.
	KMeansIterations int `json:"kmeans_iterations"`

	// LogLevel is the default CLI logging verbosity: "debug", "info",
	// "warn", or "error". Defaults to "info".
	LogLevel string `json:"log_level"`
}

// Default configuration values applied when fields are not specified in
// the config file.
const (
	DefaultPaletteSize = 16
	DefaultColorSpace  = "srgb"
	DefaultLogLevel    = "info"
)

// Load loads configuration from the default config file location,
// applying defaults for anything unset. A missing config file is not an
// error: Load returns pure defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	data, err := os.ReadFile(getConfigFilePath())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// setDefaults fills in any field left at its zero value.
func (c *Config) setDefaults() {
	if c.PaletteSize == 0 {
		c.PaletteSize = DefaultPaletteSize
	}
	if c.ColorSpace == "" {
		c.ColorSpace = DefaultColorSpace
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.PaletteSize < 1 {
		return fmt.Errorf("palette_size must be >= 1, got %d", c.PaletteSize)
	}

	validSpaces := map[string]bool{"srgb": true, "cieluv": true, "ictcp": true}
	if !validSpaces[c.ColorSpace] {
		return fmt.Errorf("invalid color_space: %s (valid: srgb, cieluv, ictcp)", c.ColorSpace)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	if c.KMeansIterations < 0 {
		return fmt.Errorf("kmeans_iterations must be >= 0, got %d", c.KMeansIterations)
	}

	return nil
}

// getConfigFilePath is a function variable that returns the default config
// file path. Can be overridden in tests.
var getConfigFilePath = func() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "palettize", "config.json")
}
