package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Default refractive indices of the two media
const (
	AirIndex   = 1.0
	GlassIndex = 1.5
)

// Glass is a smooth dielectric that either reflects or refracts
type Glass struct {
	Albedo          Texture
	RefractiveIndex float64
}

// NewGlass creates glass with the default index of refraction
func NewGlass(albedo Texture) *Glass {
	return &Glass{Albedo: solidOrBlack(albedo), RefractiveIndex: GlassIndex}
}

// Compute picks reflection with probability 0.25 + 0.5·Fresnel and weights
// each branch by its Fresnel share over its sampling probability
func (g *Glass) Compute(isect *geometry.Intersection, sampler core.Sampler) (geometry.Result, bool) {
	point := isect.Point()
	albedo := g.Albedo.Evaluate(isect.TextureCoordinates(), point)

	d := isect.Ray().Direction
	n := isect.SurfaceNormal()
	nl := isect.ShadingNormal()
	reflected := core.NewRay(point, core.Reflect(d, n))

	into := n.Dot(nl) > 0
	nc, nt := AirIndex, g.RefractiveIndex
	nnt := nt / nc
	if into {
		nnt = nc / nt
	}

	ddn := d.Dot(nl)
	cos2t := 1 - nnt*nnt*(1-ddn*ddn)
	if cos2t < 0 {
		// Total internal reflection
		return geometry.Result{Reflectance: albedo, Ray: reflected}, true
	}

	sign := -1.0
	if into {
		sign = 1.0
	}
	tdir := d.Multiply(nnt).Subtract(n.Multiply(sign * (ddn*nnt + math.Sqrt(cos2t)))).Normalize()

	c := 1 - tdir.Dot(n)
	if into {
		c = 1 + ddn
	}
	re := SchlickReflectance(c, nc, nt)
	tr := 1 - re

	p := 0.25 + 0.5*re
	if sampler.Get1D() < p {
		return geometry.Result{Reflectance: albedo.Multiply(re / p), Ray: reflected}, true
	}
	return geometry.Result{Reflectance: albedo.Multiply(tr / (1 - p)), Ray: core.NewRay(point, tdir)}, true
}

// SchlickReflectance approximates the Fresnel reflectance between media of
// indices n1 and n2. oneMinusCos is 1 - cosθ on the side with the smaller
// angle to the normal.
func SchlickReflectance(oneMinusCos, n1, n2 float64) float64 {
	r0 := (n2 - n1) / (n2 + n1)
	r0 *= r0
	c := max(0, min(1, oneMinusCos))
	return r0 + (1-r0)*c*c*c*c*c
}
