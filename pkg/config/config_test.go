package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Width != 400 || cfg.Render.Height != 400 {
		t.Errorf("expected 400x400, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.MaxDepth != 3 {
		t.Errorf("expected max depth 3, got %d", cfg.Render.MaxDepth)
	}
	if cfg.Render.ViewportSize != 1.0 || cfg.Render.ProjectionPlaneD != 1.0 {
		t.Errorf("expected unit viewport and projection distance, got %g and %g",
			cfg.Render.ViewportSize, cfg.Render.ProjectionPlaneD)
	}
	if cfg.Output.Format != "png" {
		t.Errorf("expected png output, got %s", cfg.Output.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "raytracer.yaml")

	yamlContent := `
render:
  scene: mirror
  width: 200
  max_depth: 0

output:
  format: webp
  scale: 2

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Render.Scene != "mirror" {
		t.Errorf("expected scene mirror, got %s", cfg.Render.Scene)
	}
	if cfg.Render.Width != 200 {
		t.Errorf("expected width 200, got %d", cfg.Render.Width)
	}
	if cfg.Render.MaxDepth != 0 {
		t.Errorf("expected max depth 0, got %d", cfg.Render.MaxDepth)
	}
	if cfg.Output.Format != "webp" || cfg.Output.Scale != 2 {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}

	// Unspecified values keep defaults
	if cfg.Render.Height != 400 {
		t.Errorf("expected default height 400, got %d", cfg.Render.Height)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := Default()
	cfg.Apply(Flags{
		Scene:    "lighting",
		Width:    640,
		MaxDepth: 0,
		Format:   "tga",
		LogLevel: "warn",
		Port:     9090,
	})

	if cfg.Render.Scene != "lighting" {
		t.Errorf("expected scene lighting, got %s", cfg.Render.Scene)
	}
	if cfg.Render.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 400 {
		t.Errorf("unset height should keep default, got %d", cfg.Render.Height)
	}
	if cfg.Render.MaxDepth != 0 {
		t.Errorf("explicit depth 0 should apply, got %d", cfg.Render.MaxDepth)
	}
	if cfg.Output.Format != "tga" {
		t.Errorf("expected tga, got %s", cfg.Output.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn, got %s", cfg.Logging.Level)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

func TestApplyUnsetDepth(t *testing.T) {
	cfg := Default()
	cfg.Apply(Flags{MaxDepth: -1})
	if cfg.Render.MaxDepth != 3 {
		t.Errorf("negative depth flag should leave default, got %d", cfg.Render.MaxDepth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render size"},
		{"negative depth", func(c *Config) { c.Render.MaxDepth = -1 }, "max_depth"},
		{"zero viewport", func(c *Config) { c.Render.ViewportSize = 0 }, "viewport_size"},
		{"zero tile", func(c *Config) { c.Render.TileSize = 0 }, "tile_size"},
		{"empty scene", func(c *Config) { c.Render.Scene = " " }, "scene"},
		{"bad format", func(c *Config) { c.Output.Format = "gif" }, "gif"},
		{"bad scale", func(c *Config) { c.Output.Scale = 0 }, "scale"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Render.Width = -1
	cfg.Output.Scale = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "render size") || !strings.Contains(err.Error(), "scale") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestEffectiveWorkers(t *testing.T) {
	cfg := Default()
	if cfg.EffectiveWorkers() < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.EffectiveWorkers())
	}
	cfg.Render.Workers = 3
	if cfg.EffectiveWorkers() != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.EffectiveWorkers())
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := Default()
	cfg.Render.Width = 123
	cfg.Output.Format = "bmp"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Render.Width != 123 {
		t.Errorf("expected width 123, got %d", loaded.Render.Width)
	}
	if loaded.Output.Format != "bmp" {
		t.Errorf("expected bmp, got %s", loaded.Output.Format)
	}
}

func TestConfigDir(t *testing.T) {
	if ConfigDir() == "" {
		t.Error("expected non-empty config dir")
	}
}
