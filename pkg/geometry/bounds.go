package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrEmptyPoints is returned when a bounding box is built from no points
var ErrEmptyPoints = errors.New("bounding box requires at least one point")

// BoundingVolume is a conservative bound used to reject rays before the exact
// shape test. Implementations: AABB, BoundingSphere, Infinite.
type BoundingVolume interface {
	// Contains reports whether p lies inside or on the bound
	Contains(p core.Vec3) bool
	// Intersect returns the entry distance if it lies in (tMin, tMax),
	// otherwise the exit distance if that does
	Intersect(ray core.Ray, tMin, tMax float64) (float64, bool)
	// Transform returns a bound enclosing this one after applying m
	Transform(m core.Mat4) BoundingVolume
}

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min core.Vec3 // Minimum corner
	Max core.Vec3 // Maximum corner
}

// NewAABB creates an AABB from two opposite corners in any order
func NewAABB(a, b core.Vec3) AABB {
	return AABB{
		Min: core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...core.Vec3) (AABB, error) {
	if len(points) == 0 {
		return AABB{}, ErrEmptyPoints
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = core.NewVec3(math.Min(box.Min.X, p.X), math.Min(box.Min.Y, p.Y), math.Min(box.Min.Z, p.Z))
		box.Max = core.NewVec3(math.Max(box.Max.X, p.X), math.Max(box.Max.Y, p.Y), math.Max(box.Max.Z, p.Z))
	}
	return box, nil
}

// Contains reports whether p lies inside or on the box
func (b AABB) Contains(p core.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersect tests the ray against the box using the slab method
func (b AABB) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	t0 := math.Inf(-1)
	t1 := math.Inf(1)

	mins := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	maxs := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	direction := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		// A ray parallel to the slab spans (-inf, inf) if it starts between the
		// planes; handling it here avoids 0·inf producing NaN
		if direction[axis] == 0 {
			if origin[axis] < mins[axis] || origin[axis] > maxs[axis] {
				return 0, false
			}
			continue
		}

		invDirection := 1.0 / direction[axis]
		near := (mins[axis] - origin[axis]) * invDirection
		far := (maxs[axis] - origin[axis]) * invDirection
		if near > far {
			near, far = far, near
		}

		t0 = math.Max(t0, near)
		t1 = math.Min(t1, far)
	}

	if t0 > t1 {
		return 0, false
	}
	if t0 > tMin && t0 < tMax {
		return t0, true
	}
	if t1 > tMin && t1 < tMax {
		return t1, true
	}
	return 0, false
}

// Transform returns the box enclosing all eight transformed corners
func (b AABB) Transform(m core.Mat4) BoundingVolume {
	corners := b.Corners()
	for i := range corners {
		corners[i] = m.TransformPoint(corners[i])
	}
	box, _ := NewAABBFromPoints(corners[:]...)
	return box
}

// Corners returns the eight corner points of the box
func (b AABB) Corners() [8]core.Vec3 {
	return [8]core.Vec3{
		core.NewVec3(b.Min.X, b.Min.Y, b.Min.Z),
		core.NewVec3(b.Max.X, b.Min.Y, b.Min.Z),
		core.NewVec3(b.Min.X, b.Max.Y, b.Min.Z),
		core.NewVec3(b.Max.X, b.Max.Y, b.Min.Z),
		core.NewVec3(b.Min.X, b.Min.Y, b.Max.Z),
		core.NewVec3(b.Max.X, b.Min.Y, b.Max.Z),
		core.NewVec3(b.Min.X, b.Max.Y, b.Max.Z),
		core.NewVec3(b.Max.X, b.Max.Y, b.Max.Z),
	}
}

// Center returns the center point of the AABB
func (b AABB) Center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (b AABB) Size() core.Vec3 {
	return b.Max.Subtract(b.Min)
}

// BoundingSphere is a spherical bound
type BoundingSphere struct {
	Center core.Vec3
	Radius float64
}

// NewBoundingSphere creates a spherical bound
func NewBoundingSphere(center core.Vec3, radius float64) BoundingSphere {
	return BoundingSphere{Center: center, Radius: math.Abs(radius)}
}

// Contains reports whether p lies inside or on the sphere.
// The tolerance keeps points computed on the surface inside.
func (s BoundingSphere) Contains(p core.Vec3) bool {
	r := s.Radius * (1 + 1e-9)
	return p.Subtract(s.Center).LengthSquared() <= r*r
}

// Intersect returns the nearest crossing of the sphere surface in range
func (s BoundingSphere) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	return intersectSphere(s.Center, s.Radius, ray, tMin, tMax)
}

// Transform moves the center and grows the radius by the largest axis scale
func (s BoundingSphere) Transform(m core.Mat4) BoundingVolume {
	return BoundingSphere{
		Center: m.TransformPoint(s.Center),
		Radius: s.Radius * m.MaxScale(),
	}
}

// Infinite bounds all of space; it never rejects a ray
type Infinite struct{}

// Contains always returns true
func (Infinite) Contains(p core.Vec3) bool {
	return true
}

// Intersect reports a hit for every ray: the ray starts inside the bound
func (Infinite) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	return tMin, true
}

// Transform returns the infinite bound unchanged
func (i Infinite) Transform(m core.Mat4) BoundingVolume {
	return i
}

// intersectSphere returns the smallest root of the ray/sphere equation
// strictly inside (tMin, tMax)
func intersectSphere(center core.Vec3, radius float64, ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(center)

	a := ray.Direction.LengthSquared()
	b := 2 * ray.Direction.Dot(oc)
	c := oc.LengthSquared() - radius*radius

	t0, t1, ok := core.SolveQuadratic(a, b, c)
	if !ok {
		return 0, false
	}
	if t0 > tMin && t0 < tMax {
		return t0, true
	}
	if t1 > tMin && t1 < tMax {
		return t1, true
	}
	return 0, false
}
