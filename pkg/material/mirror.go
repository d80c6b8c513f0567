package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Mirror is a perfect specular reflector
type Mirror struct {
	Albedo Texture
}

// NewMirror creates a mirror tinted by albedo
func NewMirror(albedo Texture) *Mirror {
	return &Mirror{Albedo: solidOrBlack(albedo)}
}

// Compute reflects the incoming ray about the surface normal
func (m *Mirror) Compute(isect *geometry.Intersection, sampler core.Sampler) (geometry.Result, bool) {
	point := isect.Point()
	direction := core.Reflect(isect.Ray().Direction, isect.ShadingNormal())

	return geometry.Result{
		Reflectance: m.Albedo.Evaluate(isect.TextureCoordinates(), point),
		Ray:         core.NewRay(point, direction),
	}, true
}
