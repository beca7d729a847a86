package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Traced pixel color
	Material     *MaterialInfo          `json:"material,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// MaterialInfo describes the material of the inspected surface
type MaterialInfo struct {
	Color       [3]float64 `json:"color"`
	Hex         string     `json:"hex"`
	Specular    float64    `json:"specular"`
	HasSpecular bool       `json:"hasSpecular"`
	Reflective  float64    `json:"reflective"`
}

func extractMaterialInfo(mat material.Material) *MaterialInfo {
	c := mat.Color.Clamp(0, 255)
	return &MaterialInfo{
		Color:       vecArray(mat.Color),
		Hex:         fmt.Sprintf("#%02x%02x%02x", int(c.X), int(c.Y), int(c.Z)),
		Specular:    mat.Specular,
		HasSpecular: mat.HasSpecular(),
		Reflective:  mat.Reflective,
	}
}

// extractGeometryInfo names the primitive and lists its shape parameters
func extractGeometryInfo(p geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := p.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(g.Center)
		properties["radius"] = g.Radius
		return "sphere", properties

	case geometry.Triangle:
		v0, v1, v2 := g.Vertices()
		properties["faceIndex"] = g.Index()
		properties["vertices"] = [3][3]float64{vecArray(v0), vecArray(v1), vecArray(v2)}
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through a pixel and describes the first surface it hits
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, depth, x, y int) InspectResponse {
	ray := camera.GetRay(x, y)
	rt := renderer.NewRaytracer(sceneObj, camera, renderer.TraceConfig{MaxDepth: depth})

	resp := InspectResponse{Color: vecArray(rt.PixelColor(x, y))}

	hit, ok := sceneObj.ClosestHit(ray, renderer.PrimaryTMin, math.Inf(1))
	if !ok {
		return resp
	}

	point := ray.At(hit.T)
	resp.Hit = true
	resp.Distance = hit.T
	resp.Point = vecArray(point)
	resp.Normal = vecArray(hit.Primitive.NormalAt(point))
	resp.Material = extractMaterialInfo(hit.Primitive.GetMaterial())
	resp.GeometryType, resp.Properties = extractGeometryInfo(hit.Primitive)
	return resp
}

// handleInspect reports what the primary ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", req.Width/2, 0, req.Width-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := parseIntParam(query, "y", req.Height/2, 0, req.Height-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := scene.CreateListed(req.Scene)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	camera := renderer.NewCamera(s.cameraConfig(req))
	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, camera, req.Depth, x, y))
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
