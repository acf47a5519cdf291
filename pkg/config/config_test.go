package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: &Config{PaletteSize: 16, ColorSpace: "srgb", LogLevel: "info"},
		},
		{
			name:    "palette size zero",
			config:  &Config{PaletteSize: 0, ColorSpace: "srgb", LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "invalid color space",
			config:  &Config{PaletteSize: 8, ColorSpace: "lab", LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			config:  &Config{PaletteSize: 8, ColorSpace: "srgb", LogLevel: "verbose"},
			wantErr: true,
		},
		{
			name:    "negative kmeans iterations",
			config:  &Config{PaletteSize: 8, ColorSpace: "srgb", LogLevel: "info", KMeansIterations: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()

	if cfg.PaletteSize != DefaultPaletteSize {
		t.Errorf("PaletteSize = %d, want %d", cfg.PaletteSize, DefaultPaletteSize)
	}
	if cfg.ColorSpace != DefaultColorSpace {
		t.Errorf("ColorSpace = %s, want %s", cfg.ColorSpace, DefaultColorSpace)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	orig := getConfigFilePath
	getConfigFilePath = func() string { return filepath.Join(dir, "does-not-exist.json") }
	defer func() { getConfigFilePath = orig }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with missing file: %v", err)
	}
	if cfg.PaletteSize != DefaultPaletteSize {
		t.Errorf("PaletteSize = %d, want default %d", cfg.PaletteSize, DefaultPaletteSize)
	}
}

func TestLoadReadsFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data, _ := json.Marshal(&Config{PaletteSize: 32, ColorSpace: "ictcp", Dither: true, LogLevel: "debug"})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	orig := getConfigFilePath
	getConfigFilePath = func() string { return path }
	defer func() { getConfigFilePath = orig }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.PaletteSize != 32 || cfg.ColorSpace != "ictcp" || !cfg.Dither || cfg.LogLevel != "debug" {
		t.Errorf("Load() = %+v, did not reflect file contents", cfg)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"palette_size": -1}`), 0644); err != nil {
		t.Fatal(err)
	}

	orig := getConfigFilePath
	getConfigFilePath = func() string { return path }
	defer func() { getConfigFilePath = orig }()

	if _, err := Load(); err == nil {
		t.Fatal("Load() with palette_size=-1 should fail validation")
	}
}
