package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box open toward the camera: five triangle-mesh
// walls, a tall box and a mirror sphere, lit by a point light under the ceiling
func NewCornellScene() *Scene {
	s := NewScene("cornell")
	s.Description = "Cornell box with mesh walls, a tall box and a mirror sphere"

	// Create materials
	white := material.NewMatte(core.NewVec3(186, 186, 186))
	red := material.NewMatte(core.NewVec3(166, 13, 13))
	green := material.NewMatte(core.NewVec3(31, 115, 38))

	// The box spans x, y in [-1.5, 1.5] and z in [2, 5]
	const (
		half  = 1.5
		front = 2.0
		depth = 3.0
	)
	size := 2 * half

	// Each wall is wound so its normal faces into the box
	s.AddMesh(createQuadMesh( // Floor
		core.NewVec3(-half, -half, front), core.NewVec3(0, 0, depth), core.NewVec3(size, 0, 0), white))
	s.AddMesh(createQuadMesh( // Ceiling
		core.NewVec3(-half, half, front), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, depth), white))
	s.AddMesh(createQuadMesh( // Back wall
		core.NewVec3(-half, -half, front+depth), core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0), white))
	s.AddMesh(createQuadMesh( // Left wall (red)
		core.NewVec3(-half, -half, front), core.NewVec3(0, size, 0), core.NewVec3(0, 0, depth), red))
	s.AddMesh(createQuadMesh( // Right wall (green)
		core.NewVec3(half, -half, front), core.NewVec3(0, 0, depth), core.NewVec3(0, size, 0), green))

	// Tall box standing on the floor, turned to show two faces
	tall := material.NewMaterial(core.NewVec3(186, 186, 186), 50, 0)
	s.AddMesh(createBoxMesh(core.NewVec3(-0.6, -0.75, 4.0), core.NewVec3(0.8, 1.5, 0.8), 0.3, tall))

	s.AddSphere(geometry.NewSphere(core.NewVec3(0.6, -1.0, 3.4), 0.5, material.NewMaterial(core.NewVec3(230, 230, 230), 1000, 0.8)))

	s.AddLight(lights.NewAmbientLight(0.15))
	s.AddLight(lights.NewPointLight(0.7, core.NewVec3(0, 1.2, 3.5)))
	return s
}

// createQuadMesh creates the parallelogram corner, corner+u, corner+u+v, corner+v
// as two triangles whose normal follows u × v
func createQuadMesh(corner, u, v core.Vec3, mat material.Material) *geometry.TriangleMesh {
	vertices := []core.Vec3{
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	}
	faces := []geometry.Face{{0, 1, 2}, {0, 2, 3}}
	return newRotatedMesh(vertices, faces, corner, 0, mat)
}
