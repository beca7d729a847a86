package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Face holds the three vertex indices of one triangle, in winding order
type Face [3]int

// TriangleMesh is a set of triangles sharing one vertex pool and one material.
// Triangles are addressed by index so a large mesh stores each vertex once.
type TriangleMesh struct {
	Vertices []core.Vec3
	Faces    []Face
	Material material.Material

	normals []core.Vec3 // Cached face normal per face
}

// NewTriangleMesh creates a new triangle mesh from a vertex pool and index triples.
// Every face index must refer to an existing vertex.
func NewTriangleMesh(vertices []core.Vec3, faces []Face, mat material.Material) (*TriangleMesh, error) {
	for i, face := range faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0,%d)", i, idx, len(vertices))
			}
		}
	}

	normals := make([]core.Vec3, len(faces))
	for i, face := range faces {
		normals[i] = FaceNormal(vertices[face[0]], vertices[face[1]], vertices[face[2]])
	}

	return &TriangleMesh{
		Vertices: vertices,
		Faces:    faces,
		Material: mat,
		normals:  normals,
	}, nil
}

// Triangle returns the i-th face as a primitive
func (m *TriangleMesh) Triangle(i int) Triangle {
	return Triangle{mesh: m, index: i}
}

// GetTriangleCount returns the number of faces in the mesh
func (m *TriangleMesh) GetTriangleCount() int {
	return len(m.Faces)
}
