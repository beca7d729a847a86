// Package config handles render configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/logging"
	"github.com/df07/go-whitted-raytracer/pkg/output"
)

// Config holds all settings for the CLI and the web server.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// RenderConfig holds image and tracing settings.
type RenderConfig struct {
	Scene            string  `yaml:"scene"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	ViewportSize     float64 `yaml:"viewport_size"`
	ProjectionPlaneD float64 `yaml:"projection_plane_d"`
	MaxDepth         int     `yaml:"max_depth"`
	TileSize         int     `yaml:"tile_size"`
	Workers          int     `yaml:"workers"` // 0 = one per CPU
}

// OutputConfig holds image output settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
	Scale  int    `yaml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Scene:            "default",
			Width:            400,
			Height:           400,
			ViewportSize:     1.0,
			ProjectionPlaneD: 1.0,
			MaxDepth:         3,
			TileSize:         64,
			Workers:          0,
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "png",
			Scale:  1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the config untouched.
type Flags struct {
	Scene    string
	Width    int
	Height   int
	MaxDepth int // Negative means unset; 0 is a valid depth
	Workers  int
	Format   string
	Scale    int
	Output   string
	LogLevel string
	LogFile  string
	Port     int
}

// Apply overrides config values with any flags that were set.
func (c *Config) Apply(flags Flags) {
	if flags.Scene != "" {
		c.Render.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Render.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Render.Height = flags.Height
	}
	if flags.MaxDepth >= 0 {
		c.Render.MaxDepth = flags.MaxDepth
	}
	if flags.Workers > 0 {
		c.Render.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Output.Format = flags.Format
	}
	if flags.Scale > 0 {
		c.Output.Scale = flags.Scale
	}
	if flags.Output != "" {
		c.Output.Dir = flags.Output
	}
	if flags.LogLevel != "" {
		c.Logging.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.Logging.LogFile = flags.LogFile
	}
	if flags.Port > 0 {
		c.Server.Port = flags.Port
	}
}

// EffectiveWorkers returns the worker count with 0 resolved to the CPU count.
func (c *Config) EffectiveWorkers() int {
	if c.Render.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Render.Workers
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.ViewportSize <= 0 {
		errs = append(errs, fmt.Errorf("viewport_size must be positive, got %g", c.Render.ViewportSize))
	}
	if c.Render.ProjectionPlaneD <= 0 {
		errs = append(errs, fmt.Errorf("projection_plane_d must be positive, got %g", c.Render.ProjectionPlaneD))
	}
	if c.Render.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.Render.MaxDepth))
	}
	if c.Render.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile_size must be positive, got %d", c.Render.TileSize))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Render.Workers))
	}
	if strings.TrimSpace(c.Render.Scene) == "" {
		errs = append(errs, errors.New("scene must be set"))
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Output.Scale < 1 {
		errs = append(errs, fmt.Errorf("output scale must be at least 1, got %d", c.Output.Scale))
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port out of range: %d", c.Server.Port))
	}

	return errors.Join(errs...)
}
