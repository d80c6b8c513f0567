package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestBoxIntersectAndNormal(t *testing.T) {
	box := NewUnitBox()

	tests := []struct {
		name       string
		origin     core.Vec3
		direction  core.Vec3
		wantT      float64
		wantNormal core.Vec3
	}{
		{"front", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 4, core.NewVec3(0, 0, -1)},
		{"top", core.NewVec3(0.2, 5, 0.3), core.NewVec3(0, -1, 0), 4, core.NewVec3(0, 1, 0)},
		{"right", core.NewVec3(5, 0.5, 0.5), core.NewVec3(-1, 0, 0), 4, core.NewVec3(1, 0, 0)},
		{"inside exits back", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			tHit, ok := box.Intersect(ray, 0, math.Inf(1))
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(tHit-tt.wantT) > 1e-9 {
				t.Errorf("t = %f, want %f", tHit, tt.wantT)
			}
			n := box.SurfaceNormal(ray, tHit)
			if n != tt.wantNormal {
				t.Errorf("Normal = %v, want %v", n, tt.wantNormal)
			}
			uv := box.TextureCoordinates(ray, tHit)
			if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
				t.Errorf("UV %v out of range", uv)
			}
		})
	}
}

func TestBoxMiss(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3))
	ray := core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(1, 0, 0))
	if _, ok := box.Intersect(ray, 0, math.Inf(1)); ok {
		t.Error("Expected miss")
	}
	if box.Bounds().(AABB).Max != core.NewVec3(1, 2, 3) {
		t.Error("Box bounds should match its extent")
	}
}
