package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// Shape is a geometric form defined in its own object space. Normal and
// texture coordinates are derived from (ray, t) on demand rather than stored.
type Shape interface {
	// Intersect returns the smallest t in (tMin, tMax) where the ray meets the shape
	Intersect(ray core.Ray, tMin, tMax float64) (float64, bool)
	// SurfaceNormal returns the outward unit normal at ray.At(t)
	SurfaceNormal(ray core.Ray, t float64) core.Vec3
	// TextureCoordinates returns the surface parameterization at ray.At(t)
	TextureCoordinates(ray core.Ray, t float64) core.Vec2
	// Bounds returns the object space bounding volume
	Bounds() BoundingVolume
}
