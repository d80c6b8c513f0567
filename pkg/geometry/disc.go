package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Unit normal
	Radius float64
	basis  core.ONB // In-plane axes for texture coordinates
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64) *Disc {
	n := normal.Normalize()
	return &Disc{
		Center: center,
		Normal: n,
		Radius: math.Abs(radius),
		basis:  core.NewONB(n),
	}
}

// Intersect hits the disc's plane and keeps points within the radius
func (d *Disc) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return 0, false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t <= tMin || t >= tMax || math.IsNaN(t) {
		return 0, false
	}

	if ray.At(t).Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return 0, false
	}
	return t, true
}

// SurfaceNormal returns the disc normal
func (d *Disc) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	return d.Normal
}

// TextureCoordinates returns (radius fraction, angle / 2π)
func (d *Disc) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	local := d.basis.ToLocal(ray.At(t).Subtract(d.Center))
	r := math.Hypot(local.X, local.Y)
	phi := math.Atan2(local.Y, local.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	u := 0.0
	if d.Radius > 0 {
		u = r / d.Radius
	}
	return core.NewVec2(u, phi/(2*math.Pi))
}

// Bounds returns the sphere circumscribing the disc
func (d *Disc) Bounds() BoundingVolume {
	return NewBoundingSphere(d.Center, d.Radius)
}
