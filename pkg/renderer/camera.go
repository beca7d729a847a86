package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains the viewport parameters of the pinhole camera
type CameraConfig struct {
	Width            int     // Image width in pixels
	Height           int     // Image height in pixels
	ViewportSize     float64 // Viewport extent in world units, used for both axes
	ProjectionPlaneD float64 // Distance from the eye to the projection plane
}

// DefaultCameraConfig returns the classic 400x400 setup with a unit viewport at distance 1
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:            400,
		Height:           400,
		ViewportSize:     1.0,
		ProjectionPlaneD: 1.0,
	}
}

// Camera maps pixels to rays leaving the origin toward +Z
type Camera struct {
	config CameraConfig
	origin core.Vec3
}

// NewCamera creates a camera from the given viewport parameters
func NewCamera(config CameraConfig) *Camera {
	return &Camera{
		config: config,
		origin: core.NewVec3(0, 0, 0),
	}
}

// Direction returns the normalized direction through pixel (x, y).
// Image rows grow downward while world Y grows upward, so Y is flipped.
func (c *Camera) Direction(x, y int) core.Vec3 {
	w := float64(c.config.Width)
	h := float64(c.config.Height)
	return core.NewVec3(
		(float64(x)-w/2)*c.config.ViewportSize/w,
		-(float64(y)-h/2)*c.config.ViewportSize/h,
		c.config.ProjectionPlaneD,
	).Normalize()
}

// GetRay generates the primary ray for pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	return core.NewRay(c.origin, c.Direction(x, y))
}

// GetConfig returns the camera configuration
func (c *Camera) GetConfig() CameraConfig {
	return c.config
}
