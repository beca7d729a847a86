package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Light is one of AmbientLight, PointLight or DirectionalLight
type Light interface {
	isLight()
}

// AmbientLight adds a constant amount of light everywhere
type AmbientLight struct {
	Intensity float64
}

// PointLight emits from a position; its shadow rays stop at the light
type PointLight struct {
	Intensity float64
	Position  core.Vec3
}

// DirectionalLight shines from infinitely far away. Direction points from the
// surface toward the light and is used as given.
type DirectionalLight struct {
	Intensity float64
	Direction core.Vec3
}

// NewAmbientLight creates a new ambient light
func NewAmbientLight(intensity float64) AmbientLight {
	return AmbientLight{Intensity: intensity}
}

// NewPointLight creates a new point light
func NewPointLight(intensity float64, position core.Vec3) PointLight {
	return PointLight{Intensity: intensity, Position: position}
}

// NewDirectionalLight creates a new directional light
func NewDirectionalLight(intensity float64, direction core.Vec3) DirectionalLight {
	return DirectionalLight{Intensity: intensity, Direction: direction}
}

func (AmbientLight) isLight()     {}
func (PointLight) isLight()       {}
func (DirectionalLight) isLight() {}

// GetIntensity returns the intensity of any light variant
func GetIntensity(light Light) float64 {
	switch l := light.(type) {
	case AmbientLight:
		return l.Intensity
	case PointLight:
		return l.Intensity
	case DirectionalLight:
		return l.Intensity
	}
	return 0
}

// TypeName returns the lowercase name used for a light variant in scene files and logs
func TypeName(light Light) string {
	switch light.(type) {
	case AmbientLight:
		return "ambient"
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	}
	return "unknown"
}
