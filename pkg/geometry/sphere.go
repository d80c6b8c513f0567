package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: math.Abs(radius),
	}
}

// Intersect solves |O + tD - C|² = r² and returns the nearest root in range
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	return intersectSphere(s.Center, s.Radius, ray, tMin, tMax)
}

// SurfaceNormal returns the outward normal (from center to hit point)
func (s *Sphere) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	return ray.At(t).Subtract(s.Center).Normalize()
}

// TextureCoordinates maps the hit point to longitude/latitude in [0,1]².
// v runs from 0 at the south pole to 1 at the north pole.
func (s *Sphere) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	d := s.SurfaceNormal(ray, t)
	u := 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	v := 0.5 + math.Asin(max(-1, min(1, d.Y)))/math.Pi
	return core.NewVec2(u, v)
}

// Bounds returns a bounding sphere coincident with the shape
func (s *Sphere) Bounds() BoundingVolume {
	return NewBoundingSphere(s.Center, s.Radius)
}
