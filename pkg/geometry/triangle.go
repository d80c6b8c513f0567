package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	normal     core.Vec3 // Cached normal vector
}

// NewTriangle creates a new triangle; the normal follows the
// counter-clockwise winding V0, V1, V2
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
	}
}

// Intersect uses the Möller-Trumbore algorithm
func (tr *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	t, _, _, ok := tr.barycentric(ray)
	if !ok || t <= tMin || t >= tMax {
		return 0, false
	}
	return t, true
}

// SurfaceNormal returns the face normal
func (tr *Triangle) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	return tr.normal
}

// TextureCoordinates returns the barycentric weights of V1 and V2
func (tr *Triangle) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	_, u, v, _ := tr.barycentric(ray)
	return core.NewVec2(u, v)
}

// Bounds returns a sphere centered on the centroid that reaches every vertex
func (tr *Triangle) Bounds() BoundingVolume {
	centroid := tr.V0.Add(tr.V1).Add(tr.V2).Multiply(1.0 / 3.0)
	radius := math.Max(centroid.Subtract(tr.V0).Length(),
		math.Max(centroid.Subtract(tr.V1).Length(), centroid.Subtract(tr.V2).Length()))
	return NewBoundingSphere(centroid, radius)
}

// Normal returns the triangle's normal vector
func (tr *Triangle) Normal() core.Vec3 {
	return tr.normal
}

func (tr *Triangle) barycentric(ray core.Ray) (t, u, v float64, ok bool) {
	const epsilon = 1e-12

	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(tr.V0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	return f * edge2.Dot(q), u, v, true
}
