package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Primitive is a renderable surface that a ray can hit
type Primitive interface {
	// Intersect returns the parametric distance of the hit, or +Inf when the ray misses
	Intersect(ray core.Ray) float64
	// NormalAt returns the unit surface normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3
	// GetMaterial returns the surface material
	GetMaterial() material.Material
}

// Hit is the result of a closest-hit query
type Hit struct {
	Primitive Primitive
	T         float64 // Parameter t along the ray
}
