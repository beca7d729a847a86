package loaders

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const testSceneYAML = `name: Test Scene
description: Two spheres and a mesh
background: [10, 20, 30]
spheres:
  - center: [0, -1, 3]
    radius: 1
    color: [255, 0, 0]
    specular: 500
    reflective: 0.2
  - center: {x: 0, y: -5001, z: 0}
    radius: 5000
    color: [255, 255, 0]
meshes:
  - name: tri
    vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
    faces: [[0, 1, 2]]
    scale: 2
    translate: [0, 0, 5]
    color: [200, 200, 200]
lights:
  - type: ambient
    intensity: 0.2
  - type: point
    intensity: 0.6
    position: [2, 1, 0]
  - type: directional
    intensity: 0.2
    direction: [-1, -4, -4]
`

func TestParseSceneFile(t *testing.T) {
	desc, err := ParseSceneFile(strings.NewReader(testSceneYAML))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	if desc.Name != "Test Scene" {
		t.Errorf("Expected name 'Test Scene', got %q", desc.Name)
	}
	if desc.Background == nil || desc.Background.Vec() != core.NewVec3(10, 20, 30) {
		t.Errorf("Unexpected background %v", desc.Background)
	}

	if len(desc.Spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(desc.Spheres))
	}
	red := desc.Spheres[0]
	if red.Center.Vec() != core.NewVec3(0, -1, 3) || red.Radius != 1 {
		t.Errorf("Unexpected first sphere %+v", red)
	}
	if red.Specular == nil || *red.Specular != 500 || red.Reflective != 0.2 {
		t.Errorf("Unexpected first sphere material %+v", red.MaterialDescription)
	}
	if desc.Spheres[1].Center.Vec() != core.NewVec3(0, -5001, 0) {
		t.Errorf("Mapping-form vector not decoded: %v", desc.Spheres[1].Center)
	}
	if desc.Spheres[1].Specular != nil {
		t.Error("Expected omitted specular to stay nil")
	}

	if len(desc.Meshes) != 1 {
		t.Fatalf("Expected 1 mesh, got %d", len(desc.Meshes))
	}
	mesh := desc.Meshes[0]
	if len(mesh.Vertices) != 3 || len(mesh.Faces) != 1 || mesh.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("Unexpected mesh geometry %+v", mesh)
	}
	if mesh.Scale == nil || *mesh.Scale != 2 {
		t.Errorf("Expected scale 2, got %v", mesh.Scale)
	}

	if len(desc.Lights) != 3 {
		t.Fatalf("Expected 3 lights, got %d", len(desc.Lights))
	}
	if desc.Lights[2].Type != "directional" || desc.Lights[2].Direction.Vec() != core.NewVec3(-1, -4, -4) {
		t.Errorf("Unexpected directional light %+v", desc.Lights[2])
	}
}

func TestParseSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown key", "name: x\ncolour: [1, 2, 3]\n"},
		{"short vector", "name: x\nbackground: [1, 2]\n"},
		{"scalar vector", "name: x\nbackground: 5\n"},
		{"bad yaml", "name: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSceneFile(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestEncodeSceneFile_RoundTrip(t *testing.T) {
	desc, err := ParseSceneFile(strings.NewReader(testSceneYAML))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeSceneFile(&buf, desc); err != nil {
		t.Fatalf("EncodeSceneFile failed: %v", err)
	}

	again, err := ParseSceneFile(&buf)
	if err != nil {
		t.Fatalf("Re-parse failed: %v\n%s", err, buf.String())
	}
	if len(again.Spheres) != 2 || again.Spheres[0].Center.Vec() != core.NewVec3(0, -1, 3) {
		t.Errorf("Round trip lost sphere data: %+v", again.Spheres)
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testSceneYAML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	desc, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if len(desc.Lights) != 3 {
		t.Errorf("Expected 3 lights, got %d", len(desc.Lights))
	}
}
