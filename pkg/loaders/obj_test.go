package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const testOBJ = `# two triangles forming a quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1 2 3
f 1/1/1 3/1/1 4/1/1
`

func TestParseOBJ(t *testing.T) {
	data, err := ParseOBJ(strings.NewReader(testOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(data.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(data.Vertices))
	}
	if data.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected vertex 2 = (1,1,0), got %v", data.Vertices[2])
	}

	expectedFaces := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(data.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d faces, got %d", len(expectedFaces), len(data.Faces))
	}
	for i, f := range expectedFaces {
		if data.Faces[i] != f {
			t.Errorf("Face %d: expected %v, got %v", i, f, data.Faces[i])
		}
	}
}

func TestParseOBJ_PolygonFanAndNegativeIndices(t *testing.T) {
	input := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f -4 -3 -2 -1
`
	data, err := ParseOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	expectedFaces := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(data.Faces) != 2 {
		t.Fatalf("Expected quad split into 2 triangles, got %d", len(data.Faces))
	}
	for i, f := range expectedFaces {
		if data.Faces[i] != f {
			t.Errorf("Face %d: expected %v, got %v", i, f, data.Faces[i])
		}
	}
}

func TestParseOBJ_ForwardReferences(t *testing.T) {
	input := `f 1 2 3
v 0 0 0
v 1 0 0
v 0 1 0
`
	data, err := ParseOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(data.Faces) != 1 || data.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("Expected face {0 1 2}, got %v", data.Faces)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v 1 two 3\n"},
		{"face too small", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"relative index before first vertex", "v 0 0 0\nv 1 0 0\nf -1 -2 -3\nv 0 1 0\n"},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 x 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestMeshData_Transform(t *testing.T) {
	data := &MeshData{Vertices: []core.Vec3{core.NewVec3(2, 4, -2)}}
	data.Transform(0.5, core.NewVec3(0, -1, 3))

	expected := core.NewVec3(1, 1, 2)
	if data.Vertices[0] != expected {
		t.Errorf("Expected %v after scale then translate, got %v", expected, data.Vertices[0])
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(testOBJ), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	data, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(data.Faces) != 2 {
		t.Errorf("Expected 2 faces, got %d", len(data.Faces))
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}
