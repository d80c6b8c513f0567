package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidCone is returned for cone dimensions that do not form a cone or frustum
var ErrInvalidCone = errors.New("invalid cone")

// Cone represents a finite cone or frustum, optionally closed by flat caps
type Cone struct {
	BaseCenter core.Vec3
	BaseRadius float64
	TopCenter  core.Vec3
	TopRadius  float64 // 0 for pointed cone, >0 for frustum
	Capped     bool    // Whether to include circular end cap(s)

	axis     core.Vec3 // Unit vector from base to top
	height   float64   // Distance between base and top
	tanAngle float64   // (BaseRadius - TopRadius) / height
	apex     core.Vec3 // Apex of the infinite cone extended from the frustum
	basis    core.ONB
}

// NewCone creates a cone or frustum. The base must be wider than the top;
// equal radii describe a Cylinder.
func NewCone(baseCenter core.Vec3, baseRadius float64, topCenter core.Vec3, topRadius float64, capped bool) (*Cone, error) {
	if baseRadius <= 0 {
		return nil, fmt.Errorf("%w: base radius %g must be positive", ErrInvalidCone, baseRadius)
	}
	if topRadius < 0 || topRadius >= baseRadius {
		return nil, fmt.Errorf("%w: top radius %g must lie in [0, %g)", ErrInvalidCone, topRadius, baseRadius)
	}

	axisVector := topCenter.Subtract(baseCenter)
	height := axisVector.Length()
	if height <= 0 {
		return nil, fmt.Errorf("%w: base and top centers coincide", ErrInvalidCone)
	}
	axis := axisVector.Multiply(1 / height)

	// The apex lies where the radius shrinks to zero, at or beyond the top
	apex := topCenter.Add(axis.Multiply(topRadius * height / (baseRadius - topRadius)))

	return &Cone{
		BaseCenter: baseCenter,
		BaseRadius: baseRadius,
		TopCenter:  topCenter,
		TopRadius:  topRadius,
		Capped:     capped,
		axis:       axis,
		height:     height,
		tanAngle:   (baseRadius - topRadius) / height,
		apex:       apex,
		basis:      core.NewONB(axis),
	}, nil
}

// Intersect returns the nearest hit on the body or, when capped, the caps
func (c *Cone) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	closest, hit := tMax, false
	if t, ok := c.intersectBody(ray, tMin, closest); ok {
		closest, hit = t, true
	}
	if !c.Capped {
		return closest, hit
	}
	if t, ok := intersectCap(ray, c.BaseCenter, c.axis, c.BaseRadius, tMin, closest); ok {
		closest, hit = t, true
	}
	if c.TopRadius > 0 {
		if t, ok := intersectCap(ray, c.TopCenter, c.axis, c.TopRadius, tMin, closest); ok {
			closest, hit = t, true
		}
	}
	return closest, hit
}

// intersectBody solves |P-A|² = (1+tan²)((P-A)·V)² about the apex A and keeps
// roots between base and top, which also rejects the mirrored nappe
func (c *Cone) intersectBody(ray core.Ray, tMin, tMax float64) (float64, bool) {
	co := ray.Origin.Subtract(c.apex)
	dv := ray.Direction.Dot(c.axis)
	cov := co.Dot(c.axis)
	k := 1 + c.tanAngle*c.tanAngle

	a := ray.Direction.LengthSquared() - k*dv*dv
	b := 2.0 * (ray.Direction.Dot(co) - k*dv*cov)
	cc := co.LengthSquared() - k*cov*cov

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

// intersectCap hits the disc of the given radius in the plane through center
// perpendicular to axis
func intersectCap(ray core.Ray, center, axis core.Vec3, radius, tMin, tMax float64) (float64, bool) {
	denom := ray.Direction.Dot(axis)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t := center.Subtract(ray.Origin).Dot(axis) / denom
	if t <= tMin || t >= tMax {
		return 0, false
	}
	if ray.At(t).Subtract(center).LengthSquared() > radius*radius {
		return 0, false
	}
	return t, true
}

// SurfaceNormal returns the outward normal of the body, or ∓axis on a cap
func (c *Cone) SurfaceNormal(ray core.Ray, t float64) core.Vec3 {
	p := ray.At(t)
	h := c.heightAt(p)
	radial := p.Subtract(c.BaseCenter.Add(c.axis.Multiply(h)))

	if c.Capped && !c.onBody(h, radial.Length()) {
		if h < c.height/2 {
			return c.axis.Negate()
		}
		return c.axis
	}
	if radial.IsZero() {
		return c.axis
	}
	return radial.Normalize().Add(c.axis.Multiply(c.tanAngle)).Normalize()
}

// TextureCoordinates returns (angle / 2π, height fraction); caps map to v=0 and v=1
func (c *Cone) TextureCoordinates(ray core.Ray, t float64) core.Vec2 {
	p := ray.At(t)
	local := c.basis.ToLocal(p.Subtract(c.BaseCenter))
	phi := math.Atan2(local.Y, local.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	v := max(0, min(1, c.heightAt(p)/c.height))
	return core.NewVec2(phi/(2*math.Pi), v)
}

// Bounds returns the box around both end circles
func (c *Cone) Bounds() BoundingVolume {
	rb := core.NewVec3(c.BaseRadius, c.BaseRadius, c.BaseRadius)
	rt := core.NewVec3(c.TopRadius, c.TopRadius, c.TopRadius)
	box, _ := NewAABBFromPoints(
		c.BaseCenter.Subtract(rb), c.BaseCenter.Add(rb),
		c.TopCenter.Subtract(rt), c.TopCenter.Add(rt),
	)
	return box
}

func (c *Cone) heightAt(p core.Vec3) float64 {
	return p.Subtract(c.BaseCenter).Dot(c.axis)
}

// onBody reports whether a point at height h and distance r from the axis
// lies on the slanted surface rather than inside a cap
func (c *Cone) onBody(h, r float64) bool {
	expected := c.BaseRadius - h*c.tanAngle
	return math.Abs(r-expected) <= 1e-7*max(1, c.BaseRadius)
}
