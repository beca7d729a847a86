package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the classic scene: three reflective spheres on a huge
// yellow ground sphere, lit by ambient, point and directional lights
func NewDefaultScene() *Scene {
	s := NewScene("default")
	s.Description = "Three reflective spheres on a yellow ground"

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -1, 3), 1, material.NewMaterial(core.NewVec3(255, 0, 0), 500, 0.2)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(2, 0, 4), 1, material.NewMaterial(core.NewVec3(0, 0, 255), 500, 0.3)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-2, 0, 4), 1, material.NewMaterial(core.NewVec3(0, 255, 0), 10, 0.4)))
	addGround(s, 1000, 0.5)

	addStandardLights(s)
	return s
}

// NewLightingScene creates the same spheres without reflections on a white
// background, with a matte ground
func NewLightingScene() *Scene {
	s := NewScene("lighting")
	s.Description = "Diffuse and specular shading with shadows, no reflections"
	s.BackgroundColor = core.NewVec3(255, 255, 255)

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -1, 3), 1, material.NewMaterial(core.NewVec3(255, 0, 0), 500, 0)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(2, 0, 4), 1, material.NewMaterial(core.NewVec3(0, 0, 255), 500, 0)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-2, 0, 4), 1, material.NewMaterial(core.NewVec3(0, 255, 0), 10, 0)))
	addGround(s, material.NoSpecular, 0)

	addStandardLights(s)
	return s
}

// NewMirrorScene creates a fully reflective sphere surrounded by colored spheres
func NewMirrorScene() *Scene {
	s := NewScene("mirror")
	s.Description = "A perfect mirror sphere among colored spheres"

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 4), 1, material.NewMirror(core.NewVec3(255, 255, 255), 1000)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-1.5, -0.5, 2.5), 0.5, material.NewMaterial(core.NewVec3(255, 0, 0), 500, 0)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(1.5, -0.5, 2.5), 0.5, material.NewMaterial(core.NewVec3(0, 0, 255), 500, 0)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 1.5, 2), 0.4, material.NewMaterial(core.NewVec3(0, 255, 0), 10, 0)))
	addGround(s, 1000, 0.3)

	addStandardLights(s)
	return s
}

// NewEmptyScene creates a scene with nothing in it
func NewEmptyScene() *Scene {
	s := NewScene("empty")
	s.Description = "No primitives; every pixel shows the background"
	return s
}

// addGround adds the large yellow sphere whose top sits at y = -1
func addGround(s *Scene, specular, reflective float64) {
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -5001, 0), 5000, material.NewMaterial(core.NewVec3(255, 255, 0), specular, reflective)))
}

func addStandardLights(s *Scene) {
	s.AddLight(lights.NewAmbientLight(0.2))
	s.AddLight(lights.NewPointLight(0.6, core.NewVec3(2, 1, 0)))
	s.AddLight(lights.NewDirectionalLight(0.2, core.NewVec3(-1, -4, -4)))
}
