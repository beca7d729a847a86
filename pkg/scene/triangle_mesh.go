package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry
func NewTriangleMeshScene() *Scene {
	s := NewScene("trianglemesh")
	s.Description = "Box, pyramid and icosahedron meshes on the ground"

	addGround(s, 1000, 0.3)
	addBasicTriangleMeshGeometry(s)
	addStandardLights(s)

	return s
}

// addBasicTriangleMeshGeometry adds simple triangle mesh objects
func addBasicTriangleMeshGeometry(s *Scene) {
	red := material.NewMaterial(core.NewVec3(220, 50, 50), 500, 0.2)
	blue := material.NewMaterial(core.NewVec3(50, 80, 220), material.NoSpecular, 0)
	gold := material.NewMaterial(core.NewVec3(220, 160, 50), 1000, 0.4)

	// Box resting on the ground, turned 30° around Y to show two faces
	s.AddMesh(createBoxMesh(core.NewVec3(-1.6, -0.5, 5), core.NewVec3(1, 1, 1), math.Pi/6, red))

	// Pyramid turned 45° so an edge faces the camera
	s.AddMesh(createPyramidMesh(core.NewVec3(0, -0.25, 4.5), 1.4, 1.5, math.Pi/4, blue))

	s.AddMesh(createIcosahedronMesh(core.NewVec3(1.6, -0.3, 5), 0.7, math.Pi/3, gold))
}

// rotateY rotates v around the vertical axis through center
func rotateY(v, center core.Vec3, angle float64) core.Vec3 {
	if angle == 0 {
		return v
	}
	d := v.Subtract(center)
	cos, sin := math.Cos(angle), math.Sin(angle)
	return center.Add(core.NewVec3(d.X*cos+d.Z*sin, d.Y, -d.X*sin+d.Z*cos))
}

func newRotatedMesh(vertices []core.Vec3, faces []geometry.Face, center core.Vec3, rotationY float64, mat material.Material) *geometry.TriangleMesh {
	for i, v := range vertices {
		vertices[i] = rotateY(v, center, rotationY)
	}
	mesh, err := geometry.NewTriangleMesh(vertices, faces, mat)
	if err != nil {
		// Built-in index tables are fixed
		panic(err)
	}
	return mesh
}

// createBoxMesh creates a triangle mesh representing a box
func createBoxMesh(center, size core.Vec3, rotationY float64, mat material.Material) *geometry.TriangleMesh {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h.X, -h.Y, -h.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+h.X, -h.Y, -h.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+h.X, +h.Y, -h.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-h.X, +h.Y, -h.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-h.X, -h.Y, +h.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+h.X, -h.Y, +h.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+h.X, +h.Y, +h.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-h.X, +h.Y, +h.Z)), // 7: left-top-front
	}

	// 12 triangles, 2 per face, wound so normals point outward
	faces := []geometry.Face{
		{0, 2, 1}, {0, 3, 2}, // Z-
		{4, 5, 6}, {4, 6, 7}, // Z+
		{0, 4, 7}, {0, 7, 3}, // X-
		{1, 2, 6}, {1, 6, 5}, // X+
		{0, 1, 5}, {0, 5, 4}, // Y-
		{3, 7, 6}, {3, 6, 2}, // Y+
	}

	return newRotatedMesh(vertices, faces, center, rotationY, mat)
}

// createPyramidMesh creates a square-based pyramid centered on center
func createPyramidMesh(center core.Vec3, baseSize, height, rotationY float64, mat material.Material) *geometry.TriangleMesh {
	hb := baseSize * 0.5
	hh := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-hb, -hh, -hb)), // 0: left-back
		center.Add(core.NewVec3(+hb, -hh, -hb)), // 1: right-back
		center.Add(core.NewVec3(+hb, -hh, +hb)), // 2: right-front
		center.Add(core.NewVec3(-hb, -hh, +hb)), // 3: left-front
		center.Add(core.NewVec3(0, +hh, 0)),     // 4: apex
	}

	faces := []geometry.Face{
		{0, 1, 2}, {0, 2, 3}, // base
		{0, 4, 1},
		{1, 4, 2},
		{2, 4, 3},
		{3, 4, 0},
	}

	return newRotatedMesh(vertices, faces, center, rotationY, mat)
}

// createIcosahedronMesh creates a regular icosahedron with the given circumradius
func createIcosahedronMesh(center core.Vec3, radius, rotationY float64, mat material.Material) *geometry.TriangleMesh {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	unit := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Vec3, len(unit))
	for i, v := range unit {
		vertices[i] = center.Add(v.Multiply(scale))
	}

	faces := []geometry.Face{
		// 5 faces around vertex 0
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		// 5 adjacent faces
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		// 5 faces around vertex 3
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		// 5 adjacent faces
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	return newRotatedMesh(vertices, faces, center, rotationY, mat)
}
