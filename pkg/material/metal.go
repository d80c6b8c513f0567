package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// MetalExponent is the power-cosine exponent of the metal lobe
const MetalExponent = 20.0

// Metal is a glossy reflector: a power-cosine lobe around the mirror direction
type Metal struct {
	Albedo   Texture
	Exponent float64
}

// NewMetal creates a metal with the default lobe exponent
func NewMetal(albedo Texture) *Metal {
	return &Metal{Albedo: solidOrBlack(albedo), Exponent: MetalExponent}
}

// Compute samples the lobe about the reflected direction
func (m *Metal) Compute(isect *geometry.Intersection, sampler core.Sampler) (geometry.Result, bool) {
	point := isect.Point()
	normal := isect.ShadingNormal()
	reflected := core.Reflect(isect.Ray().Direction, normal)

	lobe := core.NewONB(reflected)
	direction := lobe.Local(core.SamplePowerCosineHemisphere(m.Exponent, sampler.Get2D()))

	// Samples under the surface are folded back above it
	if d := direction.Dot(normal); d < 0 {
		direction = direction.Subtract(normal.Multiply(2 * d))
	}

	return geometry.Result{
		Reflectance: m.Albedo.Evaluate(isect.TextureCoordinates(), point),
		Ray:         core.NewRay(point, direction),
	}, true
}
