package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// World holds every primitive in the scene, in insertion order.
// Closest-hit queries scan spheres first and then each mesh's faces in order.
type World struct {
	Spheres []*Sphere
	Meshes  []*TriangleMesh
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// AddSphere appends a sphere to the scan order
func (w *World) AddSphere(s *Sphere) {
	w.Spheres = append(w.Spheres, s)
}

// AddMesh appends a mesh to the scan order
func (w *World) AddMesh(m *TriangleMesh) {
	w.Meshes = append(w.Meshes, m)
}

// ClosestHit returns the primitive with the smallest t strictly inside (tMin, tMax).
// On equal t the primitive scanned first wins.
func (w *World) ClosestHit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	closest := math.Inf(1)
	var hit Hit
	found := false

	for _, s := range w.Spheres {
		t := s.Intersect(ray)
		if t > tMin && t < tMax && t < closest {
			closest = t
			hit = Hit{Primitive: s, T: t}
			found = true
		}
	}

	for _, m := range w.Meshes {
		for i, face := range m.Faces {
			t := IntersectTriangle(ray, m.Vertices[face[0]], m.Vertices[face[1]], m.Vertices[face[2]])
			if t > tMin && t < tMax && t < closest {
				closest = t
				hit = Hit{Primitive: m.Triangle(i), T: t}
				found = true
			}
		}
	}

	return hit, found
}

// PrimitiveCount returns the number of spheres plus the number of mesh triangles
func (w *World) PrimitiveCount() int {
	count := len(w.Spheres)
	for _, m := range w.Meshes {
		count += m.GetTriangleCount()
	}
	return count
}
