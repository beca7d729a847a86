package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SceneDescription is the YAML form of a scene
type SceneDescription struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Group       string              `yaml:"group,omitempty"`
	Background  *Vec3               `yaml:"background,omitempty"`
	Spheres     []SphereDescription `yaml:"spheres,omitempty"`
	Meshes      []MeshDescription   `yaml:"meshes,omitempty"`
	Lights      []LightDescription  `yaml:"lights,omitempty"`
}

// MaterialDescription holds the surface attributes shared by spheres and meshes.
// A missing specular exponent means no highlight.
type MaterialDescription struct {
	Color      Vec3     `yaml:"color"`
	Specular   *float64 `yaml:"specular,omitempty"`
	Reflective float64  `yaml:"reflective,omitempty"`
}

// SphereDescription describes one sphere
type SphereDescription struct {
	Center              Vec3    `yaml:"center"`
	Radius              float64 `yaml:"radius"`
	MaterialDescription `yaml:",inline"`
}

// MeshDescription describes a triangle mesh, given either inline or as an OBJ or
// PLY file relative to the scene file. Scale and translation are applied in that order.
type MeshDescription struct {
	Name                string   `yaml:"name,omitempty"`
	OBJ                 string   `yaml:"obj,omitempty"`
	PLY                 string   `yaml:"ply,omitempty"`
	Vertices            []Vec3   `yaml:"vertices,omitempty"`
	Faces               [][3]int `yaml:"faces,omitempty"`
	Scale               *float64 `yaml:"scale,omitempty"`
	Translate           Vec3     `yaml:"translate,omitempty"`
	MaterialDescription `yaml:",inline"`
}

// LightDescription describes a light; Type is ambient, point or directional
type LightDescription struct {
	Type      string  `yaml:"type"`
	Intensity float64 `yaml:"intensity"`
	Position  *Vec3   `yaml:"position,omitempty"`
	Direction *Vec3   `yaml:"direction,omitempty"`
}

// Vec3 is a vector written as [x, y, z] or {x: .., y: .., z: ..}
type Vec3 core.Vec3

// UnmarshalYAML accepts both the sequence and the mapping form
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(node.Content))
		}
		var arr [3]float64
		if err := node.Decode(&arr); err != nil {
			return err
		}
		*v = Vec3{X: arr[0], Y: arr[1], Z: arr[2]}
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
			Z float64 `yaml:"z"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*v = Vec3{X: m.X, Y: m.Y, Z: m.Z}
		return nil
	}
	return fmt.Errorf("line %d: vector must be a list or a mapping", node.Line)
}

// MarshalYAML writes the compact sequence form
func (v Vec3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range []float64{v.X, v.Y, v.Z} {
		var item yaml.Node
		if err := item.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &item)
	}
	return node, nil
}

// Vec converts to the core vector type
func (v Vec3) Vec() core.Vec3 {
	return core.Vec3(v)
}

// LoadSceneFile reads a YAML scene description from disk
func LoadSceneFile(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// ParseSceneFile decodes a YAML scene description. Unknown keys are rejected.
func ParseSceneFile(r io.Reader) (*SceneDescription, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	return &desc, nil
}

// EncodeSceneFile writes a scene description as YAML
func EncodeSceneFile(w io.Writer, desc *SceneDescription) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(desc); err != nil {
		return fmt.Errorf("failed to encode scene file: %w", err)
	}
	return encoder.Close()
}
