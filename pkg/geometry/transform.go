package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Transform places an object in the world as scale, then rotation, then
// translation. The forward and inverse matrices are compiled on first use and
// cached until position, rotation or scale changes.
//
// A Transform is owned by a single Primitive. Mutating it while a render is
// in progress is not safe.
type Transform struct {
	position core.Vec3
	rotation core.Quaternion
	scale    core.Vec3

	valid         bool
	objectToWorld core.Mat4
	worldToObject core.Mat4
	err           error
}

// NewTransform creates a transform from its three components
func NewTransform(position core.Vec3, rotation core.Quaternion, scale core.Vec3) *Transform {
	return &Transform{
		position: position,
		rotation: rotation.Normalize(),
		scale:    scale,
	}
}

// NewIdentityTransform creates a transform that leaves objects unchanged
func NewIdentityTransform() *Transform {
	return NewTransform(core.Vec3{}, core.IdentityQuaternion(), core.NewVec3(1, 1, 1))
}

// Position returns the translation component
func (t *Transform) Position() core.Vec3 { return t.position }

// Rotation returns the rotation component
func (t *Transform) Rotation() core.Quaternion { return t.rotation }

// Scale returns the scale component
func (t *Transform) Scale() core.Vec3 { return t.scale }

// SetPosition replaces the translation and invalidates the cached matrices
func (t *Transform) SetPosition(position core.Vec3) {
	t.position = position
	t.valid = false
}

// SetRotation replaces the rotation and invalidates the cached matrices
func (t *Transform) SetRotation(rotation core.Quaternion) {
	t.rotation = rotation.Normalize()
	t.valid = false
}

// SetScale replaces the scale and invalidates the cached matrices
func (t *Transform) SetScale(scale core.Vec3) {
	t.scale = scale
	t.valid = false
}

// ObjectToWorld returns the matrix taking object space points to world space
func (t *Transform) ObjectToWorld() core.Mat4 {
	t.compile()
	return t.objectToWorld
}

// WorldToObject returns the inverse matrix, or core.ErrSingularMatrix when
// the scale collapses an axis
func (t *Transform) WorldToObject() (core.Mat4, error) {
	t.compile()
	return t.worldToObject, t.err
}

func (t *Transform) compile() {
	if t.valid {
		return
	}

	t.objectToWorld = core.Translate4(t.position).
		Mul(t.rotation.Mat4()).
		Mul(core.Scale4(t.scale))
	t.worldToObject, t.err = t.objectToWorld.Inverse()
	t.valid = true
}
