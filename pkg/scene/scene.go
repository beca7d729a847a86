package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering.
// It is built once and must not be modified while a render is running.
type Scene struct {
	Name            string
	Description     string
	World           *geometry.World // Primitives in scan order
	Lights          []lights.Light  // Lights in evaluation order
	BackgroundColor core.Vec3       // Color of rays that hit nothing, channels in [0,255]
}

// NewScene creates an empty scene with a black background
func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		World: geometry.NewWorld(),
	}
}

// ClosestHit finds the nearest primitive along ray inside (tMin, tMax)
func (s *Scene) ClosestHit(ray core.Ray, tMin, tMax float64) (geometry.Hit, bool) {
	return s.World.ClosestHit(ray, tMin, tMax)
}

// GetLights returns the scene lights
func (s *Scene) GetLights() []lights.Light {
	return s.Lights
}

// GetBackgroundColor returns the background color
func (s *Scene) GetBackgroundColor() core.Vec3 {
	return s.BackgroundColor
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(sphere *geometry.Sphere) {
	s.World.AddSphere(sphere)
}

// AddMesh adds a triangle mesh to the scene
func (s *Scene) AddMesh(mesh *geometry.TriangleMesh) {
	s.World.AddMesh(mesh)
}

// AddLight adds a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// GetPrimitiveCount returns the total number of spheres and triangles
func (s *Scene) GetPrimitiveCount() int {
	return s.World.PrimitiveCount()
}
