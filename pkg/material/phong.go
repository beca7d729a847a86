package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// NoSpecular disables the specular highlight of a material
const NoSpecular = -1.0

// Material describes how a surface responds to light
type Material struct {
	Color      core.Vec3 // Base color, channels in [0,255]
	Specular   float64   // Phong exponent, NoSpecular for a matte surface
	Reflective float64   // Fraction of the final color taken from the mirrored ray, in [0,1]
}

// NewMaterial creates a new material
func NewMaterial(color core.Vec3, specular, reflective float64) Material {
	return Material{
		Color:      color,
		Specular:   specular,
		Reflective: reflective,
	}
}

// NewMatte creates a material with no highlight and no reflection
func NewMatte(color core.Vec3) Material {
	return NewMaterial(color, NoSpecular, 0)
}

// NewMirror creates a perfectly reflective material
func NewMirror(color core.Vec3, specular float64) Material {
	return NewMaterial(color, specular, 1)
}

// HasSpecular reports whether the specular term should be evaluated.
// Every negative exponent is treated like NoSpecular.
func (m Material) HasSpecular() bool {
	return m.Specular >= 0
}

// IsReflective reports whether the surface mirrors any light
func (m Material) IsReflective() bool {
	return m.Reflective > 0
}
