package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/logging"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a YAML config file (default: ./raytracer.yaml or the user config dir)")
	sceneType := flag.String("scene", "", "Scene: built-in name, scenes/<name>.yaml base name, or a YAML path")
	width := flag.Int("width", 0, "Image width in pixels")
	height := flag.Int("height", 0, "Image height in pixels")
	depth := flag.Int("depth", -1, "Maximum reflection depth (0 disables reflections)")
	workers := flag.Int("workers", 0, "Number of render workers (0 = one per CPU)")
	format := flag.String("format", "", "Output format: png, webp, bmp, tiff, tga")
	scale := flag.Int("scale", 0, "Integer upscale factor applied when saving")
	outputDir := flag.String("output", "", "Root output directory")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Also write logs to this file (rotated)")
	writeConfig := flag.String("write-config", "", "Write the effective config to this path and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Apply(config.Flags{
		Scene:    *sceneType,
		Width:    *width,
		Height:   *height,
		MaxDepth: *depth,
		Workers:  *workers,
		Format:   *format,
		Scale:    *scale,
		Output:   *outputDir,
		LogLevel: *logLevel,
		LogFile:  *logFile,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := cfg.SaveTo(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", *writeConfig)
		return
	}

	if err := logging.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	logging.Debug("Effective config",
		zap.String("scene", cfg.Render.Scene),
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height),
		zap.Int("depth", cfg.Render.MaxDepth),
		zap.Int("workers", cfg.EffectiveWorkers()),
		zap.String("format", cfg.Output.Format))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, logging.Sugar)
	stop()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logging.Warn("Render interrupted")
		} else {
			logging.Error("Render failed", zap.Error(err))
		}
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, name := range scene.BuiltinNames() {
		fmt.Printf("  %s\n", name)
	}
	if discovered, err := scene.ListYAMLScenes(); err == nil && len(discovered) > 0 {
		fmt.Println()
		fmt.Println("Scene files:")
		for _, info := range discovered {
			fmt.Printf("  %-16s %s\n", info.Name, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.<format>")
}

// run renders the configured scene and saves the image
func run(ctx context.Context, cfg *config.Config, logger core.Logger) error {
	logger.Infof("Starting Whitted Raytracer...")

	selectedScene, err := createScene(cfg.Render.Scene)
	if err != nil {
		return err
	}
	logger.Infof("Using scene %q (%d primitives, %d lights)",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), len(selectedScene.GetLights()))

	startTime := time.Now()
	img, stats, err := renderScene(ctx, cfg, selectedScene, logger)
	if err != nil {
		return err
	}
	renderTime := time.Since(startTime)

	logger.Infof("Render completed in %v", renderTime)
	logger.Infof("Pixels: %d, primary hit ratio %.1f%%, reflection rays %d, shadow rays %d",
		stats.TotalPixels, stats.HitRatio()*100, stats.ReflectionRays, stats.ShadowRays)
	logger.Infof("Average luminance: %.2f", renderer.CalculateAverageLuminance(img))

	// Create timestamped filename
	dir := createOutputDir(cfg.Output.Dir, cfg.Render.Scene)
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("render_%s.%s", timestamp, strings.ToLower(cfg.Output.Format)))

	if err := output.Save(img, filename, output.Options{Scale: cfg.Output.Scale}); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}

	logger.Infof("Render saved as %s", filename)
	return nil
}

// renderScene renders a scene in parallel tiles using the render settings from cfg
func renderScene(ctx context.Context, cfg *config.Config, s *scene.Scene, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Width:            cfg.Render.Width,
		Height:           cfg.Render.Height,
		ViewportSize:     cfg.Render.ViewportSize,
		ProjectionPlaneD: cfg.Render.ProjectionPlaneD,
	})
	trace := renderer.TraceConfig{MaxDepth: cfg.Render.MaxDepth}
	parallel := renderer.ParallelConfig{
		TileSize:   cfg.Render.TileSize,
		NumWorkers: cfg.EffectiveWorkers(),
	}

	raytracer := renderer.NewParallelRaytracer(s, camera, trace, parallel, logger)
	return raytracer.Render(ctx, func(tile renderer.TileCompletionResult) {
		logger.Debugf("Tile %d/%d at (%d, %d)", tile.TileNumber, tile.TotalTiles, tile.TileX, tile.TileY)
	})
}

// createScene resolves a scene name into a scene
func createScene(sceneType string) (*scene.Scene, error) {
	if strings.TrimSpace(sceneType) == "" {
		return nil, errors.New("no scene specified")
	}
	s, err := scene.Create(sceneType)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// createOutputDir returns the per-scene output directory under root.
// Scene file paths and "yaml:" IDs use the file's base name.
func createOutputDir(root, sceneType string) string {
	name := strings.TrimPrefix(sceneType, "yaml:")
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "scene"
	}
	return filepath.Join(root, name)
}
