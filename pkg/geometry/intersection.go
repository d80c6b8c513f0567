package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// Intersection is a confirmed hit. It keeps the object space ray and t so
// that shape queries stay in object space; world space quantities are derived
// on access through the primitive's transform.
type Intersection struct {
	primitive *Primitive
	ray       core.Ray // world space ray that produced the hit
	objectRay core.Ray
	t         float64 // parameter along objectRay
}

// Primitive returns the primitive that was hit
func (i *Intersection) Primitive() *Primitive { return i.primitive }

// Material returns the material of the primitive that was hit
func (i *Intersection) Material() Material { return i.primitive.material }

// Ray returns the incoming world space ray
func (i *Intersection) Ray() core.Ray { return i.ray }

// ObjectRay returns the incoming ray in the primitive's object space
func (i *Intersection) ObjectRay() core.Ray { return i.objectRay }

// T returns the hit parameter along the object space ray
func (i *Intersection) T() float64 { return i.t }

// WorldT returns the hit parameter along the world space ray
func (i *Intersection) WorldT() float64 {
	return i.Point().Subtract(i.ray.Origin).Dot(i.ray.Direction)
}

// ObjectPoint returns the hit point in object space
func (i *Intersection) ObjectPoint() core.Vec3 {
	return i.objectRay.At(i.t)
}

// Point returns the hit point in world space
func (i *Intersection) Point() core.Vec3 {
	return i.primitive.transform.ObjectToWorld().TransformPoint(i.ObjectPoint())
}

// SurfaceNormal returns the outward geometric normal in world space
func (i *Intersection) SurfaceNormal() core.Vec3 {
	n := i.primitive.shape.SurfaceNormal(i.objectRay, i.t)
	worldToObject, err := i.primitive.transform.WorldToObject()
	if err != nil {
		return n
	}
	return worldToObject.TransformNormal(n).Normalize()
}

// ShadingNormal returns the surface normal flipped to face the incoming ray
func (i *Intersection) ShadingNormal() core.Vec3 {
	n := i.SurfaceNormal()
	if n.Dot(i.ray.Direction) < 0 {
		return n
	}
	return n.Negate()
}

// Basis returns an orthonormal shading frame with W along the shading normal
func (i *Intersection) Basis() core.ONB {
	return core.NewONB(i.ShadingNormal())
}

// TextureCoordinates returns the surface parameterization at the hit
func (i *Intersection) TextureCoordinates() core.Vec2 {
	return i.primitive.shape.TextureCoordinates(i.objectRay, i.t)
}
