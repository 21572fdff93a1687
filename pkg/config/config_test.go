package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero canvas", func(c *Config) { c.Canvas.Width = 0 }},
		{"negative margin", func(c *Config) { c.Canvas.Margin = -1 }},
		{"margin too large", func(c *Config) { c.Canvas.Margin = c.Canvas.Width / 2 }},
		{"base below min", func(c *Config) { c.Layout.TitleBaseSize = c.Layout.TitleMinSize - 1 }},
		{"zero width step", func(c *Config) { c.Layout.TitleWidthStep = 0 }},
		{"zero max lines", func(c *Config) { c.Layout.MaxTitleLines = 0 }},
		{"bad fill threshold", func(c *Config) { c.Layout.FillThreshold = 1.5 }},
		{"bad top bias", func(c *Config) { c.Layout.TopBias = 1 }},
		{"unknown format", func(c *Config) { c.Output.Format = "bmp" }},
		{"bad quality", func(c *Config) { c.Output.Quality = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Canvas.Width = 1080
	cfg.Output.Username = "someone_else"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if loaded.Canvas.Width != 1080 {
		t.Errorf("Canvas.Width = %d, want 1080", loaded.Canvas.Width)
	}
	if loaded.Output.Username != "someone_else" {
		t.Errorf("Output.Username = %q", loaded.Output.Username)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("round-tripped config invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}
