package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB with channels in [0,255].
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1).Multiply(255)
}

// NewSphereGridScene creates a 5x5 grid of small spheres on the ground. Hue
// varies along the grid, the specular exponent grows across each row and
// reflectivity grows toward the back.
func NewSphereGridScene() *Scene {
	s := NewScene("spheregrid")
	s.Description = "A 5x5 grid of spheres sweeping hue, shininess and reflectivity"

	const (
		gridSize = 5
		spacing  = 1.0
		radius   = 0.3
	)
	speculars := []float64{material.NoSpecular, 10, 50, 250, 1000}

	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			center := core.NewVec3(
				(float64(col)-2)*spacing,
				-1+radius,
				4+float64(row)*spacing,
			)
			hue := float64(row*gridSize+col) * 360.0 / float64(gridSize*gridSize)
			color := oklchToRGB(0.7, 0.15, hue)
			reflective := float64(row) * 0.15

			s.AddSphere(geometry.NewSphere(center, radius, material.NewMaterial(color, speculars[col], reflective)))
		}
	}

	addGround(s, material.NoSpecular, 0.2)
	addStandardLights(s)
	return s
}
