package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestMollerTrumbore(t *testing.T) {
	// Triangle in the z=1 plane
	v0 := core.NewVec3(0, 0, 1)
	v1 := core.NewVec3(1, 0, 1)
	v2 := core.NewVec3(0, 1, 1)

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle interior",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, 0), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray from the back side still hits",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 2), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Triangle behind ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 2), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tHit, u, v, ok := MollerTrumbore(tt.ray, v0, v1, v2)
			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, ok)
			}

			got := IntersectTriangle(tt.ray, v0, v1, v2)
			if !tt.shouldHit {
				if !math.IsInf(got, 1) {
					t.Errorf("Expected +Inf on rejection, got %f", got)
				}
				return
			}

			if math.Abs(tHit-tt.expectedT) > 1e-9 || math.Abs(got-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f / %f", tt.expectedT, tHit, got)
			}
			if u < 0 || v < 0 || u+v > 1 {
				t.Errorf("Barycentric coordinates out of range: u=%f v=%f", u, v)
			}
		})
	}
}

func TestFaceNormal_FollowsWinding(t *testing.T) {
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)

	if n := FaceNormal(v0, v1, v2); n != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected +Z normal for counter-clockwise winding, got %v", n)
	}
	if n := FaceNormal(v0, v2, v1); n != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected -Z normal for clockwise winding, got %v", n)
	}
}
