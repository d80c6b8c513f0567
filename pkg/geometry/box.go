package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Box is an axis-aligned box in object space. Rotated boxes are expressed by
// the owning primitive's transform.
type Box struct {
	bounds AABB
}

// NewBox creates a box spanning the two opposite corners
func NewBox(a, b core.Vec3) *Box {
	return &Box{bounds: NewAABB(a, b)}
}

// NewUnitBox creates the box [-1,1]³
func NewUnitBox() *Box {
	return NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}

// Intersect uses the slab test of the box's own extent
func (b *Box) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	return b.bounds.Intersect(ray, tMin, tMax)
}

// SurfaceNormal returns the normal of the face nearest to the hit point
func (b *Box) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	axis, sign := b.face(ray.At(t))
	switch axis {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}

// TextureCoordinates maps each face to [0,1]² using its two in-plane axes
func (b *Box) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	p := ray.At(t)
	size := b.bounds.Size()
	local := p.Subtract(b.bounds.Min)

	axis, _ := b.face(p)
	switch axis {
	case 0:
		return core.NewVec2(safeDiv(local.Z, size.Z), safeDiv(local.Y, size.Y))
	case 1:
		return core.NewVec2(safeDiv(local.X, size.X), safeDiv(local.Z, size.Z))
	default:
		return core.NewVec2(safeDiv(local.X, size.X), safeDiv(local.Y, size.Y))
	}
}

// Bounds returns the box itself
func (b *Box) Bounds() BoundingVolume {
	return b.bounds
}

// face finds which face p lies on by the largest normalized offset from the center
func (b *Box) face(p core.Vec3) (axis int, sign float64) {
	center := b.bounds.Center()
	half := b.bounds.Size().Multiply(0.5)
	d := p.Subtract(center)

	offsets := [3]float64{safeDiv(d.X, half.X), safeDiv(d.Y, half.Y), safeDiv(d.Z, half.Z)}
	best := 0
	for i := 1; i < 3; i++ {
		if math.Abs(offsets[i]) > math.Abs(offsets[best]) {
			best = i
		}
	}
	if offsets[best] < 0 {
		return best, -1
	}
	return best, 1
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
