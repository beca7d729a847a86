package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ShadowEpsilon is the lower bound of every shadow query, keeping a surface from shadowing itself
const ShadowEpsilon = 0.001

// Occluder answers shadow queries
type Occluder interface {
	ClosestHit(ray core.Ray, tMin, tMax float64) (geometry.Hit, bool)
}

// ComputeLighting returns the total light intensity reaching point with unit normal
// normal, seen along view. A negative specular exponent skips the highlight term.
// The result is not clamped.
func ComputeLighting(occluder Occluder, lights []Light, point, normal, view core.Vec3, specular float64) float64 {
	intensity := 0.0

	for _, light := range lights {
		var lightVec core.Vec3
		var tMax float64
		var lightIntensity float64

		switch l := light.(type) {
		case AmbientLight:
			intensity += l.Intensity
			continue
		case PointLight:
			lightVec = l.Position.Subtract(point)
			tMax = 1
			lightIntensity = l.Intensity
		case DirectionalLight:
			lightVec = l.Direction
			tMax = math.Inf(1)
			lightIntensity = l.Intensity
		default:
			continue
		}

		// Shadow check
		if _, blocked := occluder.ClosestHit(core.NewRay(point, lightVec), ShadowEpsilon, tMax); blocked {
			continue
		}

		// Diffuse
		nDotL := normal.Dot(lightVec)
		if nDotL > 0 {
			intensity += lightIntensity * nDotL / (normal.Length() * lightVec.Length())
		}

		// Specular
		if specular >= 0 {
			reflected := normal.Multiply(2 * nDotL).Subtract(lightVec)
			rDotV := reflected.Dot(view)
			if rDotV > 0 {
				intensity += lightIntensity * math.Pow(rDotV/(reflected.Length()*view.Length()), specular)
			}
		}
	}

	return intensity
}
