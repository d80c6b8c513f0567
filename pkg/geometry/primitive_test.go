package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

type stubMaterial struct{}

func (stubMaterial) Compute(isect *Intersection, sampler core.Sampler) (Result, bool) {
	return Result{}, false
}

func TestNewPrimitiveErrors(t *testing.T) {
	if _, err := NewPrimitive(nil, stubMaterial{}, nil); !errors.Is(err, ErrNilShape) {
		t.Errorf("Expected ErrNilShape, got %v", err)
	}
	if _, err := NewPrimitive(NewUnitBox(), nil, nil); !errors.Is(err, ErrNilMaterial) {
		t.Errorf("Expected ErrNilMaterial, got %v", err)
	}

	singular := NewTransform(core.Vec3{}, core.IdentityQuaternion(), core.NewVec3(0, 1, 1))
	if _, err := NewPrimitive(NewUnitBox(), stubMaterial{}, singular); !errors.Is(err, core.ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
}

func TestPrimitiveIdentityIntersect(t *testing.T) {
	p, err := NewPrimitive(NewSphere(core.Vec3{}, 5), stubMaterial{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	isect, ok := p.Intersect(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(isect.WorldT()-5) > 1e-9 {
		t.Errorf("WorldT = %f, want 5", isect.WorldT())
	}
	if isect.Point().Subtract(core.NewVec3(0, 0, -5)).Length() > 1e-9 {
		t.Errorf("Point = %v", isect.Point())
	}
	if isect.Material() != (stubMaterial{}) {
		t.Error("Material should come from the primitive")
	}
	if isect.ShadingNormal().Dot(ray.Direction) >= 0 {
		t.Error("Shading normal should face the incoming ray")
	}
}

func TestPrimitiveScaledTransform(t *testing.T) {
	// A unit sphere scaled by 3 and moved to z=10 behaves like a radius 3 sphere
	tr := NewTransform(core.NewVec3(0, 0, 10), core.IdentityQuaternion(), core.NewVec3(3, 3, 3))
	p, err := NewPrimitive(NewSphere(core.Vec3{}, 1), stubMaterial{}, tr)
	if err != nil {
		t.Fatal(err)
	}

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	isect, ok := p.Intersect(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(isect.WorldT()-7) > 1e-9 {
		t.Errorf("WorldT = %f, want 7", isect.WorldT())
	}
	// The object ray starts at z=-10/3 with unit speed and meets z=-1
	if math.Abs(isect.T()-7.0/3.0) > 1e-9 {
		t.Errorf("Object space t = %f, want 7/3", isect.T())
	}
	n := isect.SurfaceNormal()
	if n.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Normal = %v, want (0,0,-1)", n)
	}

	// A world space tMax before the surface must reject the hit
	if _, ok := p.Intersect(ray, 1e-4, 6.9); ok {
		t.Error("Expected tMax to exclude hit")
	}
	// A tMin past the near surface must pick the far one
	isect, ok = p.Intersect(ray, 7.5, math.Inf(1))
	if !ok || math.Abs(isect.WorldT()-13) > 1e-9 {
		t.Errorf("Expected far hit at 13, got ok=%t", ok)
	}
}

func TestPrimitiveNonUniformScaleNormal(t *testing.T) {
	// Stretching a unit sphere along x; the normal at the +x tip stays +x
	tr := NewTransform(core.Vec3{}, core.IdentityQuaternion(), core.NewVec3(4, 1, 1))
	p, err := NewPrimitive(NewSphere(core.Vec3{}, 1), stubMaterial{}, tr)
	if err != nil {
		t.Fatal(err)
	}

	ray := core.NewRay(core.NewVec3(10, 0, 0), core.NewVec3(-1, 0, 0))
	isect, ok := p.Intersect(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(isect.WorldT()-6) > 1e-9 {
		t.Errorf("WorldT = %f, want 6", isect.WorldT())
	}
	if isect.SurfaceNormal().Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Normal = %v, want (1,0,0)", isect.SurfaceNormal())
	}

	// Off-axis point: the world normal must be perpendicular to the surface tangent
	ray = core.NewRay(core.NewVec3(2, 10, 0), core.NewVec3(0, -1, 0))
	isect, ok = p.Intersect(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	obj := isect.ObjectPoint()
	tangent := core.NewVec3(-obj.Y*4, obj.X, 0) // d/dθ of (4cosθ, sinθ, 0)
	if math.Abs(isect.SurfaceNormal().Dot(tangent.Normalize())) > 1e-9 {
		t.Error("Normal not perpendicular to surface")
	}
}

func TestPrimitiveBoundRejectsMiss(t *testing.T) {
	p, err := NewPrimitive(NewUnitBox(), stubMaterial{}, NewTransform(core.NewVec3(0, 0, 20), core.IdentityQuaternion(), core.NewVec3(1, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))
	if _, ok := p.Intersect(ray, 1e-4, math.Inf(1)); ok {
		t.Error("Expected miss")
	}
}
