package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// ErrNilShape is returned when a primitive is built without a shape
	ErrNilShape = errors.New("primitive requires a shape")
	// ErrNilMaterial is returned when a primitive is built without a material
	ErrNilMaterial = errors.New("primitive requires a material")
)

// Primitive couples a shape, a material and a transform. The world space
// bound is derived once at construction.
type Primitive struct {
	shape     Shape
	material  Material
	transform *Transform
	bounds    BoundingVolume
}

// NewPrimitive creates a primitive. A nil transform means identity.
func NewPrimitive(shape Shape, material Material, transform *Transform) (*Primitive, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	if material == nil {
		return nil, ErrNilMaterial
	}
	if transform == nil {
		transform = NewIdentityTransform()
	}
	if _, err := transform.WorldToObject(); err != nil {
		return nil, err
	}

	return &Primitive{
		shape:     shape,
		material:  material,
		transform: transform,
		bounds:    shape.Bounds().Transform(transform.ObjectToWorld()),
	}, nil
}

// Shape returns the primitive's shape
func (p *Primitive) Shape() Shape { return p.shape }

// Material returns the primitive's material
func (p *Primitive) Material() Material { return p.material }

// Transform returns the primitive's transform
func (p *Primitive) Transform() *Transform { return p.transform }

// Bounds returns the world space bounding volume
func (p *Primitive) Bounds() BoundingVolume { return p.bounds }

// Intersect tests a world space ray against the primitive. The bound is
// checked first; only then is the ray moved into object space and handed to
// the shape.
func (p *Primitive) Intersect(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	if !p.bounds.Contains(ray.Origin) {
		if _, ok := p.bounds.Intersect(ray, tMin, tMax); !ok {
			return nil, false
		}
	}

	worldToObject, err := p.transform.WorldToObject()
	if err != nil {
		return nil, false
	}

	objectRay := core.NewRay(
		worldToObject.TransformPoint(ray.Origin),
		worldToObject.TransformVector(ray.Direction),
	)
	if objectRay.Direction.IsZero() || !objectRay.Origin.IsFinite() {
		return nil, false
	}

	// Scale changes parametric speed, so the range is re-derived in object space
	objectTMin := objectDistance(worldToObject, ray, objectRay, tMin)
	objectTMax := objectDistance(worldToObject, ray, objectRay, tMax)

	t, ok := p.shape.Intersect(objectRay, objectTMin, objectTMax)
	if !ok {
		return nil, false
	}

	return &Intersection{
		primitive: p,
		ray:       ray,
		objectRay: objectRay,
		t:         t,
	}, true
}

// objectDistance converts a world space ray parameter into the parameter
// reaching the same point along the object space ray
func objectDistance(worldToObject core.Mat4, ray, objectRay core.Ray, t float64) float64 {
	if t == 0 || math.IsInf(t, 0) {
		return t
	}
	p := worldToObject.TransformPoint(ray.At(t))
	return p.Subtract(objectRay.Origin).Dot(objectRay.Direction)
}
