package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LoadFromFile reads a YAML scene file and builds the scene.
// OBJ paths inside the file are resolved relative to the file's directory.
func LoadFromFile(path string) (*Scene, error) {
	desc, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}

	s, err := FromDescription(desc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// FromDescription validates a scene description and builds the scene.
// Spheres and meshes keep their file order.
func FromDescription(desc *loaders.SceneDescription, baseDir string) (*Scene, error) {
	s := NewScene(desc.Name)
	s.Description = desc.Description

	if desc.Background != nil {
		bg := desc.Background.Vec()
		if err := validateColor(bg); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.BackgroundColor = bg
	}

	for i, sd := range desc.Spheres {
		if sd.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, sd.Radius)
		}
		mat, err := buildMaterial(sd.MaterialDescription)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(geometry.NewSphere(sd.Center.Vec(), sd.Radius, mat))
	}

	for i, md := range desc.Meshes {
		mesh, err := buildMesh(md, baseDir)
		if err != nil {
			label := md.Name
			if label == "" {
				label = fmt.Sprintf("%d", i)
			}
			return nil, fmt.Errorf("mesh %s: %w", label, err)
		}
		s.AddMesh(mesh)
	}

	for i, ld := range desc.Lights {
		light, err := buildLight(ld)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	return s, nil
}

func buildMaterial(md loaders.MaterialDescription) (material.Material, error) {
	color := md.Color.Vec()
	if err := validateColor(color); err != nil {
		return material.Material{}, err
	}
	if md.Reflective < 0 || md.Reflective > 1 {
		return material.Material{}, fmt.Errorf("reflective must be in [0,1], got %g", md.Reflective)
	}

	specular := material.NoSpecular
	if md.Specular != nil {
		specular = *md.Specular
	}
	return material.NewMaterial(color, specular, md.Reflective), nil
}

func buildMesh(md loaders.MeshDescription, baseDir string) (*geometry.TriangleMesh, error) {
	mat, err := buildMaterial(md.MaterialDescription)
	if err != nil {
		return nil, err
	}

	sources := 0
	for _, set := range []bool{md.OBJ != "", md.PLY != "", len(md.Vertices) > 0} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("use only one of obj, ply or inline vertices")
	}

	var data *loaders.MeshData
	switch {
	case md.OBJ != "":
		data, err = loaders.LoadOBJ(resolvePath(baseDir, md.OBJ))
	case md.PLY != "":
		data, err = loaders.LoadPLY(resolvePath(baseDir, md.PLY))
	default:
		data = &loaders.MeshData{Faces: md.Faces}
		for _, v := range md.Vertices {
			data.Vertices = append(data.Vertices, v.Vec())
		}
	}
	if err != nil {
		return nil, err
	}

	scale := 1.0
	if md.Scale != nil {
		scale = *md.Scale
	}
	data.Transform(scale, md.Translate.Vec())

	faces := make([]geometry.Face, len(data.Faces))
	for i, f := range data.Faces {
		faces[i] = geometry.Face(f)
	}
	return geometry.NewTriangleMesh(data.Vertices, faces, mat)
}

// resolvePath makes a mesh path relative to the scene file's directory
func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func buildLight(ld loaders.LightDescription) (lights.Light, error) {
	if ld.Intensity < 0 {
		return nil, fmt.Errorf("intensity must not be negative, got %g", ld.Intensity)
	}

	switch strings.ToLower(ld.Type) {
	case "ambient":
		return lights.NewAmbientLight(ld.Intensity), nil
	case "point":
		if ld.Position == nil {
			return nil, fmt.Errorf("point light needs a position")
		}
		return lights.NewPointLight(ld.Intensity, ld.Position.Vec()), nil
	case "directional":
		if ld.Direction == nil || ld.Direction.Vec() == (core.Vec3{}) {
			return nil, fmt.Errorf("directional light needs a non-zero direction")
		}
		return lights.NewDirectionalLight(ld.Intensity, ld.Direction.Vec()), nil
	}
	return nil, fmt.Errorf("unknown light type %q", ld.Type)
}

func validateColor(c core.Vec3) error {
	for _, ch := range []float64{c.X, c.Y, c.Z} {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("color channels must be in [0,255], got %v", c)
		}
	}
	return nil
}
