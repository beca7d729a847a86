package loaders

import "github.com/df07/go-whitted-raytracer/pkg/core"

// MeshData contains triangle geometry read from a mesh file
type MeshData struct {
	Vertices []core.Vec3 // Vertex positions
	Faces    [][3]int    // Zero-based vertex indices, one triple per triangle
}

// Transform scales every vertex about the origin and then translates it
func (d *MeshData) Transform(scale float64, translate core.Vec3) {
	for i, v := range d.Vertices {
		d.Vertices[i] = v.Multiply(scale).Add(translate)
	}
}

// addPolygon appends a polygon as a triangle fan around its first corner
func (d *MeshData) addPolygon(indices []int) {
	for i := 1; i+1 < len(indices); i++ {
		d.Faces = append(d.Faces, [3]int{indices[0], indices[i], indices[i+1]})
	}
}
