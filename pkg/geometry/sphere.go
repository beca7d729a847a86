package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect solves the ray/sphere quadratic and returns the nearer positive root.
// When the near root is not positive the far root is returned as is, so a ray that
// starts inside the sphere reports its exit point and a sphere behind the ray reports
// a negative t that the caller's interval rejects.
func (s *Sphere) Intersect(ray core.Ray) float64 {
	// Vector from sphere center to ray origin
	co := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * co.Dot(ray.Direction)
	c := co.Dot(co) - s.Radius*s.Radius

	// A zero direction has no quadratic to solve
	if a == 0 {
		return math.Inf(1)
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return math.Inf(1)
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > 0 {
		return t1
	}
	return t2
}

// NormalAt returns the outward unit normal at a point on the sphere
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// GetMaterial returns the sphere material
func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}
