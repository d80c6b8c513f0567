package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Cylinder represents a finite open-ended cylinder (no caps)
type Cylinder struct {
	BaseCenter core.Vec3
	TopCenter  core.Vec3
	Radius     float64

	axis   core.Vec3 // Unit vector from base to top
	height float64   // Distance between base and top
	basis  core.ONB  // Frame around the axis for the angular coordinate
}

// NewCylinder creates a new cylinder
func NewCylinder(baseCenter, topCenter core.Vec3, radius float64) *Cylinder {
	axisVector := topCenter.Subtract(baseCenter)
	axis := axisVector.Normalize()

	return &Cylinder{
		BaseCenter: baseCenter,
		TopCenter:  topCenter,
		Radius:     math.Abs(radius),
		axis:       axis,
		height:     axisVector.Length(),
		basis:      core.NewONB(axis),
	}
}

// Intersect solves the infinite-cylinder quadratic and keeps the nearest
// root whose height along the axis lies within the cylinder
func (c *Cylinder) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	delta := ray.Origin.Subtract(c.BaseCenter)
	dv := ray.Direction.Dot(c.axis)
	deltaV := delta.Dot(c.axis)

	// a t² + b t + cc = 0 with the axial components removed
	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// Ray parallel to the axis never meets the side
	if math.Abs(a) < 1e-12 {
		return 0, false
	}

	t0, t1, ok := core.SolveQuadratic(a, b, cc)
	if !ok {
		return 0, false
	}
	for _, t := range [2]float64{t0, t1} {
		if t <= tMin || t >= tMax {
			continue
		}
		if h := c.heightAt(ray.At(t)); h >= 0 && h <= c.height {
			return t, true
		}
	}
	return 0, false
}

// SurfaceNormal points radially away from the axis
func (c *Cylinder) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	p := ray.At(t)
	axisPoint := c.BaseCenter.Add(c.axis.Multiply(c.heightAt(p)))
	return p.Subtract(axisPoint).Normalize()
}

// TextureCoordinates returns (angle / 2π, height fraction)
func (c *Cylinder) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	p := ray.At(t)
	local := c.basis.ToLocal(p.Subtract(c.BaseCenter))
	phi := math.Atan2(local.Y, local.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	v := 0.0
	if c.height > 0 {
		v = c.heightAt(p) / c.height
	}
	return core.NewVec2(phi/(2*math.Pi), v)
}

// Bounds returns the box around both end circles
func (c *Cylinder) Bounds() BoundingVolume {
	r := core.NewVec3(c.Radius, c.Radius, c.Radius)
	box, _ := NewAABBFromPoints(
		c.BaseCenter.Subtract(r), c.BaseCenter.Add(r),
		c.TopCenter.Subtract(r), c.TopCenter.Add(r),
	)
	return box
}

func (c *Cylinder) heightAt(p core.Vec3) float64 {
	return p.Subtract(c.BaseCenter).Dot(c.axis)
}
