package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ParallelConfig contains configuration for tiled parallel rendering
type ParallelConfig struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile in the full image
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Completion order (1-based)
	TotalTiles int // Total number of tiles in the image
}

// ParallelRaytracer splits the image into tiles and renders them on a worker pool.
// Pixels are independent and the scene is read-only, so workers share one Raytracer.
type ParallelRaytracer struct {
	raytracer *Raytracer
	camera    *Camera
	config    ParallelConfig
	logger    core.Logger
}

// NewParallelRaytracer creates a new parallel raytracer
func NewParallelRaytracer(scene Scene, camera *Camera, trace TraceConfig, config ParallelConfig, logger core.Logger) *ParallelRaytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultParallelConfig().TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &ParallelRaytracer{
		raytracer: NewRaytracer(scene, camera, trace),
		camera:    camera,
		config:    config,
		logger:    logger,
	}
}

// Render renders the full image. tileCallback, when non-nil, is called from the
// calling goroutine once per finished tile. On cancellation the partial image is
// discarded and the context error returned.
func (pr *ParallelRaytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	cfg := pr.camera.GetConfig()
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	tiles := NewTileGrid(cfg.Width, cfg.Height, pr.config.TileSize)

	pool := NewWorkerPool(pr.raytracer, len(tiles), pr.config.NumWorkers)
	pr.logger.Infof("Rendering %dx%d in %d tiles (using %d workers)", cfg.Width, cfg.Height, len(tiles), pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start(ctx)
	defer pool.Stop()

	// Submit all tiles as tasks
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}

	var stats RenderStats
	var renderErr error

	// Collect every result so the pool can drain before Stop
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.Add(result.Stats)
		tile := tiles[result.TaskID]
		pr.logger.Debugf("Tile %d/%d done %v", i+1, len(tiles), tile.Bounds)

		if tileCallback != nil && renderErr == nil {
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / pr.config.TileSize,
				TileY:      tile.Bounds.Min.Y / pr.config.TileSize,
				Bounds:     tile.Bounds,
				TileImage:  extractTileImage(img, tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}

	if renderErr != nil {
		pr.logger.Infof("Rendering cancelled: %v", renderErr)
		return nil, RenderStats{}, renderErr
	}

	pr.logger.Infof("Render completed in %v (%d primary hits, %d reflection rays, %d shadow rays)",
		time.Since(startTime), stats.PrimaryHits, stats.ReflectionRays, stats.ShadowRays)

	return img, stats, nil
}

// extractTileImage copies a tile's pixels out of the full image
func extractTileImage(img *image.RGBA, bounds image.Rectangle) *image.RGBA {
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tileImage.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, img.RGBAAt(x, y))
		}
	}
	return tileImage
}
