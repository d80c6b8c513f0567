package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Matte is a Lambertian diffuser that may also emit light
type Matte struct {
	Emission Texture
	Albedo   Texture
}

// NewMatte creates a diffuse material. A nil emission means none.
func NewMatte(emission, albedo Texture) *Matte {
	return &Matte{Emission: solidOrBlack(emission), Albedo: solidOrBlack(albedo)}
}

// NewLight creates a matte surface that only emits
func NewLight(emission core.Vec3) *Matte {
	return NewMatte(NewSolidColor(emission), nil)
}

// Compute samples a cosine-weighted direction about the shading normal.
// The cosine and 1/π of the BRDF cancel against the pdf, leaving the albedo.
func (m *Matte) Compute(isect *geometry.Intersection, sampler core.Sampler) (geometry.Result, bool) {
	point := isect.Point()
	uv := isect.TextureCoordinates()

	direction := isect.Basis().Local(core.SampleCosineHemisphere(sampler.Get2D()))

	return geometry.Result{
		Emission:    m.Emission.Evaluate(uv, point),
		Reflectance: m.Albedo.Evaluate(uv, point),
		Ray:         core.NewRay(point, direction),
	}, true
}
