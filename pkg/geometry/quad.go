package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Unit normal (U × V)
	d      float64   // Plane equation constant: n·p = d
	w      core.Vec3 // n / (n·(U × V)), used for the in-plane coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		d:      normal.Dot(corner),
		w:      normal.Multiply(1.0 / normal.Dot(cross)),
	}
}

// Intersect hits the quad's plane and keeps the hit if both edge
// coordinates fall in [0,1]
func (q *Quad) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if t <= tMin || t >= tMax || math.IsNaN(t) {
		return 0, false
	}

	alpha, beta := q.coordinates(ray.At(t))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, false
	}
	return t, true
}

// SurfaceNormal returns the quad normal
func (q *Quad) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	return q.Normal
}

// TextureCoordinates returns the edge coordinates of the hit point
func (q *Quad) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	alpha, beta := q.coordinates(ray.At(t))
	return core.NewVec2(alpha, beta)
}

// Bounds returns the sphere through the parallelogram's farthest corners
func (q *Quad) Bounds() BoundingVolume {
	center := q.Corner.Add(q.U.Multiply(0.5)).Add(q.V.Multiply(0.5))
	radius := math.Max(q.U.Add(q.V).Length(), q.U.Subtract(q.V).Length()) * 0.5
	return NewBoundingSphere(center, radius)
}

func (q *Quad) coordinates(p core.Vec3) (alpha, beta float64) {
	hit := p.Subtract(q.Corner)
	return q.w.Dot(hit.Cross(q.V)), q.w.Dot(q.U.Cross(hit))
}
