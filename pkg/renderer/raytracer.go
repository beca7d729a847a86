package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const (
	// PrimaryTMin is the near bound for camera rays; hits closer than the projection plane are ignored
	PrimaryTMin = 1.0
	// ReflectionEpsilon is the near bound for reflected rays
	ReflectionEpsilon = 0.001
)

// TraceConfig contains the recursion settings of the tracer
type TraceConfig struct {
	MaxDepth int // Maximum number of reflection bounces
}

// DefaultTraceConfig returns the default of three reflection bounces
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{MaxDepth: 3}
}

// Scene interface to avoid circular imports
type Scene interface {
	ClosestHit(ray core.Ray, tMin, tMax float64) (geometry.Hit, bool)
	GetLights() []lights.Light
	GetBackgroundColor() core.Vec3
}

// Raytracer computes pixel colors for a scene. It holds no mutable state shared
// between calls, so one instance may serve any number of goroutines.
type Raytracer struct {
	scene  Scene
	camera *Camera
	config TraceConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, camera *Camera, config TraceConfig) *Raytracer {
	return &Raytracer{
		scene:  scene,
		camera: camera,
		config: config,
	}
}

// TraceRay returns the color seen along ray within (tMin, tMax), following at most
// depth reflection bounces. Channels are clamped to [0,255].
func (rt *Raytracer) TraceRay(ray core.Ray, tMin, tMax float64, depth int) core.Vec3 {
	c, _ := rt.traceRay(ray, tMin, tMax, depth, nil)
	return c
}

// countingOccluder tallies the shadow queries issued during shading
type countingOccluder struct {
	scene Scene
	stats *RenderStats
}

func (c countingOccluder) ClosestHit(ray core.Ray, tMin, tMax float64) (geometry.Hit, bool) {
	c.stats.ShadowRays++
	return c.scene.ClosestHit(ray, tMin, tMax)
}

// traceRay also reports whether the ray hit anything. stats may be nil.
func (rt *Raytracer) traceRay(ray core.Ray, tMin, tMax float64, depth int, stats *RenderStats) (core.Vec3, bool) {
	hit, ok := rt.scene.ClosestHit(ray, tMin, tMax)
	if !ok {
		return rt.scene.GetBackgroundColor(), false
	}

	point := ray.At(hit.T)
	normal := hit.Primitive.NormalAt(point)
	view := ray.Direction.Negate()
	mat := hit.Primitive.GetMaterial()

	var occluder lights.Occluder = rt.scene
	if stats != nil {
		occluder = countingOccluder{scene: rt.scene, stats: stats}
	}
	intensity := lights.ComputeLighting(occluder, rt.scene.GetLights(), point, normal, view, mat.Specular)
	local := mat.Color.Multiply(intensity)

	r := mat.Reflective
	if depth <= 0 || r <= 0 {
		return local.Clamp(0, 255), true
	}

	if stats != nil {
		stats.ReflectionRays++
	}
	reflected, _ := rt.traceRay(core.NewRay(point, core.Reflect(view, normal)), ReflectionEpsilon, math.Inf(1), depth-1, stats)

	return local.Multiply(1-r).Add(reflected.Multiply(r)).Clamp(0, 255), true
}

// PixelColor traces the primary ray for pixel (x, y)
func (rt *Raytracer) PixelColor(x, y int) core.Vec3 {
	c, _ := rt.traceRay(rt.camera.GetRay(x, y), PrimaryTMin, math.Inf(1), rt.config.MaxDepth, nil)
	return c
}

// RenderBounds renders the pixels inside bounds into img
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.RGBA) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel, hit := rt.traceRay(rt.camera.GetRay(x, y), PrimaryTMin, math.Inf(1), rt.config.MaxDepth, &stats)
			if hit {
				stats.PrimaryHits++
			}
			img.SetRGBA(x, y, rt.vec3ToColor(pixel))
		}
	}

	return stats
}

// RenderPass renders the whole image on the calling goroutine
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	cfg := rt.camera.GetConfig()
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	stats := rt.RenderBounds(img.Bounds(), img)
	return img, stats
}

// vec3ToColor converts a color with channels in [0,255] to RGBA, truncating fractions
func (rt *Raytracer) vec3ToColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 255)
	return color.RGBA{
		R: uint8(c.X),
		G: uint8(c.Y),
		B: uint8(c.Z),
		A: 255,
	}
}
