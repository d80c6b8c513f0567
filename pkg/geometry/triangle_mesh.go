package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidMesh is returned for face lists that do not describe triangles
var ErrInvalidMesh = errors.New("invalid triangle mesh")

// meshPadding keeps the bound of a planar mesh from collapsing to zero thickness
const meshPadding = 1e-6

// TriangleMesh is a shape made of triangles sharing one material.
// Triangles are tested in order; the nearest hit wins.
type TriangleMesh struct {
	triangles []*Triangle
	bounds    AABB
}

// NewTriangleMesh creates a mesh from vertices and face indices; each group
// of three indices forms a triangle
func NewTriangleMesh(vertices []core.Vec3, faces []int) (*TriangleMesh, error) {
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a positive multiple of 3", ErrInvalidMesh, len(faces))
	}

	triangles := make([]*Triangle, len(faces)/3)
	for i := range triangles {
		var v [3]core.Vec3
		for k := 0; k < 3; k++ {
			index := faces[i*3+k]
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d index %d out of range", ErrInvalidMesh, i, index)
			}
			v[k] = vertices[index]
		}
		triangles[i] = NewTriangle(v[0], v[1], v[2])
	}

	box, err := NewAABBFromPoints(vertices...)
	if err != nil {
		return nil, err
	}
	pad := core.NewVec3(meshPadding, meshPadding, meshPadding)
	box = AABB{Min: box.Min.Subtract(pad), Max: box.Max.Add(pad)}

	return &TriangleMesh{triangles: triangles, bounds: box}, nil
}

// Triangles returns the mesh triangles
func (m *TriangleMesh) Triangles() []*Triangle {
	return m.triangles
}

// Intersect returns the nearest triangle hit
func (m *TriangleMesh) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	_, t, ok := m.nearest(ray, tMin, tMax)
	return t, ok
}

// SurfaceNormal returns the normal of the triangle hit at t
func (m *TriangleMesh) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	if tri := m.triangleAt(ray, t); tri != nil {
		return tri.Normal()
	}
	return m.triangles[0].Normal()
}

// TextureCoordinates returns the barycentric coordinates within the hit triangle
func (m *TriangleMesh) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	if tri := m.triangleAt(ray, t); tri != nil {
		return tri.TextureCoordinates(ray, t)
	}
	return core.Vec2{}
}

// Bounds returns the padded box around all vertices
func (m *TriangleMesh) Bounds() BoundingVolume {
	return m.bounds
}

func (m *TriangleMesh) nearest(ray core.Ray, tMin, tMax float64) (*Triangle, float64, bool) {
	var hit *Triangle
	closest := tMax
	for _, tri := range m.triangles {
		if t, ok := tri.Intersect(ray, tMin, closest); ok {
			hit, closest = tri, t
		}
	}
	return hit, closest, hit != nil
}

// triangleAt finds the triangle the ray meets at distance t
func (m *TriangleMesh) triangleAt(ray core.Ray, t float64) *Triangle {
	tolerance := 1e-9 * math.Max(1, math.Abs(t))
	tri, _, _ := m.nearest(ray, t-tolerance, t+tolerance)
	return tri
}
