package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleEpsilon bounds both the parallel-ray determinant test and the smallest accepted t
const TriangleEpsilon = 1e-6

// MollerTrumbore intersects a ray with the triangle (v0, v1, v2).
// It returns the hit distance and the barycentric coordinates (u, v) of the hit point;
// ok is false when the ray is parallel to the plane, misses the triangle, or the hit
// is not in front of the origin.
func MollerTrumbore(ray core.Ray, v0, v1, v2 core.Vec3) (t, u, v float64, ok bool) {
	// Calculate two edge vectors
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	// Calculate determinant
	p := ray.Direction.Cross(edge2)
	det := edge1.Dot(p)

	// If determinant is near zero, ray lies in plane of triangle
	if det > -TriangleEpsilon && det < TriangleEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Subtract(v0)
	u = tvec.Dot(p) * invDet
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := tvec.Cross(edge1)
	v = ray.Direction.Dot(q) * invDet
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = edge2.Dot(q) * invDet
	if t <= TriangleEpsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// IntersectTriangle returns the Möller–Trumbore hit distance, or +Inf on any rejection
func IntersectTriangle(ray core.Ray, v0, v1, v2 core.Vec3) float64 {
	t, _, _, ok := MollerTrumbore(ray, v0, v1, v2)
	if !ok {
		return math.Inf(1)
	}
	return t
}

// FaceNormal returns the unit normal of the triangle (v0, v1, v2) following its winding
func FaceNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// Triangle is one face of a TriangleMesh. It stores only the mesh and the face index;
// vertex positions stay in the mesh's shared pool.
type Triangle struct {
	mesh  *TriangleMesh
	index int
}

// Vertices resolves the triangle's three vertex positions from the mesh pool
func (t Triangle) Vertices() (v0, v1, v2 core.Vec3) {
	face := t.mesh.Faces[t.index]
	return t.mesh.Vertices[face[0]], t.mesh.Vertices[face[1]], t.mesh.Vertices[face[2]]
}

// Index returns the face index within the mesh
func (t Triangle) Index() int {
	return t.index
}

// Intersect tests the ray against this face
func (t Triangle) Intersect(ray core.Ray) float64 {
	v0, v1, v2 := t.Vertices()
	return IntersectTriangle(ray, v0, v1, v2)
}

// NormalAt returns the flat face normal; it is the same everywhere on the face
func (t Triangle) NormalAt(core.Vec3) core.Vec3 {
	return t.mesh.normals[t.index]
}

// GetMaterial returns the material shared by the whole mesh
func (t Triangle) GetMaterial() material.Material {
	return t.mesh.Material
}
