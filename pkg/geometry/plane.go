package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
	basis  core.ONB
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	return &Plane{
		Point:  point,
		Normal: n,
		basis:  core.NewONB(n),
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-12 {
		return 0, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin || t >= tMax || math.IsNaN(t) {
		return 0, false
	}
	return t, true
}

// SurfaceNormal returns the plane normal
func (p *Plane) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	return p.Normal
}

// TextureCoordinates returns the in-plane coordinates of the hit point.
// They are unbounded; textures wrap them.
func (p *Plane) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	local := p.basis.ToLocal(ray.At(t).Subtract(p.Point))
	return core.NewVec2(local.X, local.Y)
}

// Bounds returns the infinite bound
func (p *Plane) Bounds() BoundingVolume {
	return Infinite{}
}
