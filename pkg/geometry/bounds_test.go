package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewAABBFromPoints(t *testing.T) {
	points := []core.Vec3{
		core.NewVec3(1, 2, 3),
		core.NewVec3(-1, 5, 0),
		core.NewVec3(4, -2, 7),
	}
	box, err := NewAABBFromPoints(points...)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if box.Min != core.NewVec3(-1, -2, 0) || box.Max != core.NewVec3(4, 5, 7) {
		t.Errorf("Unexpected bounds: %+v", box)
	}

	for _, p := range points {
		if !box.Contains(p) {
			t.Errorf("Box should contain construction point %v", p)
		}
	}
	for _, c := range box.Corners() {
		if !box.Contains(c) {
			t.Errorf("Box should contain corner %v", c)
		}
	}

	outside := []core.Vec3{
		core.NewVec3(-1.001, 0, 1),
		core.NewVec3(0, 5.001, 1),
		core.NewVec3(0, 0, 7.5),
	}
	for _, p := range outside {
		if box.Contains(p) {
			t.Errorf("Box should not contain %v", p)
		}
	}
}

func TestNewAABBFromPointsEmpty(t *testing.T) {
	if _, err := NewAABBFromPoints(); !errors.Is(err, ErrEmptyPoints) {
		t.Errorf("Expected ErrEmptyPoints, got %v", err)
	}
}

func TestAABBIntersect(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	tests := []struct {
		name   string
		ray    core.Ray
		tMin   float64
		tMax   float64
		wantOK bool
		wantT  float64
	}{
		{"hit from outside", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), 0, math.Inf(1), true, 4},
		{"exit from inside", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0, math.Inf(1), true, 1},
		{"miss parallel outside slab", core.NewRay(core.NewVec3(2, 0, -5), core.NewVec3(0, 0, 1)), 0, math.Inf(1), false, 0},
		{"axis-aligned along boundary slab", core.NewRay(core.NewVec3(1, 0, -5), core.NewVec3(0, 0, 1)), 0, math.Inf(1), true, 4},
		{"behind origin", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)), 0, math.Inf(1), false, 0},
		{"beyond tMax", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), 0, 3, false, 0},
		{"diagonal", core.NewRay(core.NewVec3(-5, -5, -5), core.NewVec3(1, 1, 1)), 0, math.Inf(1), true, 4 * math.Sqrt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := box.Intersect(tt.ray, tt.tMin, tt.tMax)
			if ok != tt.wantOK {
				t.Fatalf("ok = %t, want %t", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.wantT) > 1e-9 {
				t.Errorf("t = %f, want %f", got, tt.wantT)
			}
		})
	}
}

func TestBoundingSphereContains(t *testing.T) {
	s := NewBoundingSphere(core.NewVec3(1, 2, 3), 2)

	surface := []core.Vec3{
		core.NewVec3(3, 2, 3),
		core.NewVec3(1, 0, 3),
		core.NewVec3(1, 2, 5),
		core.NewVec3(1, 2, 3).Add(core.NewVec3(1, 1, 1).Normalize().Multiply(2)),
	}
	for _, p := range surface {
		if !s.Contains(p) {
			t.Errorf("Sphere should contain surface point %v", p)
		}
	}
	if !s.Contains(core.NewVec3(1, 2, 3)) {
		t.Error("Sphere should contain its center")
	}
	if s.Contains(core.NewVec3(3.01, 2, 3)) {
		t.Error("Sphere should not contain point outside radius")
	}
}

func TestInfiniteBound(t *testing.T) {
	var b BoundingVolume = Infinite{}
	if !b.Contains(core.NewVec3(1e300, -1e300, 0)) {
		t.Error("Infinite bound should contain every point")
	}
	if _, ok := b.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), 0, 1); !ok {
		t.Error("Infinite bound should never reject a ray")
	}
	if _, ok := b.Transform(core.Scale4(core.NewVec3(2, 2, 2))).(Infinite); !ok {
		t.Error("Transformed infinite bound should stay infinite")
	}
}

func aabbClose(a, b AABB, tol float64) bool {
	return a.Min.Subtract(b.Min).Length() < tol && a.Max.Subtract(b.Max).Length() < tol
}

func TestAABBTransformRoundTrip(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, 0, 2), core.NewVec3(3, 4, 5))
	matrices := []core.Mat4{
		core.Translate4(core.NewVec3(10, -3, 7)),
		core.Scale4(core.NewVec3(2, 0.5, 3)),
		core.Translate4(core.NewVec3(1, 2, 3)).Mul(core.Scale4(core.NewVec3(-2, 4, 1))),
	}

	for _, m := range matrices {
		inv, err := m.Inverse()
		if err != nil {
			t.Fatal(err)
		}
		back := box.Transform(m).Transform(inv).(AABB)
		if !aabbClose(back, box, 1e-9) {
			t.Errorf("Round trip mismatch: got %+v, want %+v", back, box)
		}
	}
}

func TestAABBTransformComposition(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(2, 3, 4))
	m1 := core.Scale4(core.NewVec3(2, 3, 0.5))
	m2 := core.Translate4(core.NewVec3(5, -1, 2))

	twice := box.Transform(m1).Transform(m2).(AABB)
	once := box.Transform(m2.Mul(m1)).(AABB)
	if !aabbClose(twice, once, 1e-9) {
		t.Errorf("Composition mismatch: %+v vs %+v", twice, once)
	}
}

// encloses reports whether outer contains inner up to tol
func encloses(outer, inner AABB, tol float64) bool {
	return outer.Min.X <= inner.Min.X+tol && outer.Min.Y <= inner.Min.Y+tol && outer.Min.Z <= inner.Min.Z+tol &&
		outer.Max.X >= inner.Max.X-tol && outer.Max.Y >= inner.Max.Y-tol && outer.Max.Z >= inner.Max.Z-tol
}

func TestAABBTransformRotatedIsConservative(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, 0, 2), core.NewVec3(3, 4, 5))
	m := core.Translate4(core.NewVec3(1, -2, 3)).
		Mul(core.NewQuaternionAxisAngle(core.NewVec3(0, 1, 0), math.Pi/4).Mat4())
	inv, err := m.Inverse()
	if err != nil {
		t.Fatal(err)
	}

	back := box.Transform(m).Transform(inv).(AABB)
	if !encloses(back, box, 1e-9) {
		t.Errorf("Round trip %+v should contain %+v", back, box)
	}
	if aabbClose(back, box, 1e-6) {
		t.Errorf("A 45 degree rotation should loosen the box, got %+v", back)
	}

	twice := box.Transform(m).Transform(m).(AABB)
	once := box.Transform(m.Mul(m)).(AABB)
	if !encloses(twice, once, 1e-9) {
		t.Errorf("Composed bound %+v should contain direct bound %+v", twice, once)
	}
}

func TestBoundingSphereTransformRoundTrip(t *testing.T) {
	s := NewBoundingSphere(core.NewVec3(1, -2, 3), 1.5)
	m := core.Translate4(core.NewVec3(4, 5, 6)).
		Mul(core.NewQuaternionAxisAngle(core.NewVec3(1, 1, 0), 0.7).Mat4()).
		Mul(core.Scale4(core.NewVec3(3, 3, 3)))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatal(err)
	}

	back := s.Transform(m).Transform(inv).(BoundingSphere)
	if back.Center.Subtract(s.Center).Length() > 1e-9 || math.Abs(back.Radius-s.Radius) > 1e-9 {
		t.Errorf("Round trip mismatch: got %+v, want %+v", back, s)
	}

	m1 := core.Scale4(core.NewVec3(2, 2, 2))
	twice := s.Transform(m1).Transform(m).(BoundingSphere)
	once := s.Transform(m.Mul(m1)).(BoundingSphere)
	if twice.Center.Subtract(once.Center).Length() > 1e-9 || math.Abs(twice.Radius-once.Radius) > 1e-9 {
		t.Errorf("Composition mismatch: %+v vs %+v", twice, once)
	}
}

func TestBoundingSphereIntersectAgreesWithContains(t *testing.T) {
	s := NewBoundingSphere(core.NewVec3(0, 0, 10), 5)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

	tHit, ok := s.Intersect(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if !s.Contains(ray.At(tHit)) {
		t.Error("Surface point at hit should be contained")
	}
	if !s.Contains(ray.At(tHit + 0.5)) {
		t.Error("Point just past entry should be inside")
	}
	if s.Contains(ray.At(tHit - 0.5)) {
		t.Error("Point before entry should be outside")
	}
}
