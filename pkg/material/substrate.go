package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

const oneMinusEpsilon = 0x1.fffffffffffffp-1

// Substrate is a glossy coat over a diffuse base: a Fresnel blend of a
// Lambertian-like lobe and a Trowbridge-Reitz specular lobe
type Substrate struct {
	Diffuse      Texture
	Specular     Texture
	distribution TrowbridgeReitz
}

// NewSubstrate creates a substrate. When remap is set, roughness is treated
// as perceptual and converted with RoughnessToAlpha.
func NewSubstrate(diffuse, specular Texture, roughness float64, remap bool) *Substrate {
	alpha := roughness
	if remap {
		alpha = RoughnessToAlpha(roughness)
	}
	return &Substrate{
		Diffuse:      solidOrBlack(diffuse),
		Specular:     solidOrBlack(specular),
		distribution: NewTrowbridgeReitz(alpha),
	}
}

// Alpha returns the microfacet roughness in use
func (s *Substrate) Alpha() float64 { return s.distribution.Alpha }

// Compute samples the diffuse lobe or a visible microfacet normal with equal
// probability and weights by the blended BRDF over the mixture pdf
func (s *Substrate) Compute(isect *geometry.Intersection, sampler core.Sampler) (geometry.Result, bool) {
	point := isect.Point()
	uv := isect.TextureCoordinates()

	kd := s.Diffuse.Evaluate(uv, point)
	ks := s.Specular.Evaluate(uv, point)
	if kd.IsZero() || ks.IsZero() {
		return geometry.Result{}, false
	}

	basis := isect.Basis()
	wo := basis.ToLocal(isect.Ray().Direction.Negate())
	if wo.Z == 0 {
		return geometry.Result{}, false
	}

	wi, ok := s.sample(wo, sampler.Get2D())
	if !ok {
		return geometry.Result{}, false
	}

	pdf := s.PDF(wo, wi)
	if pdf <= 0 || math.IsNaN(pdf) {
		return geometry.Result{}, false
	}

	weight := s.Evaluate(kd, ks, wo, wi).Multiply(math.Abs(wi.Z) / pdf)
	if !weight.IsFinite() {
		return geometry.Result{}, false
	}

	return geometry.Result{
		Reflectance: weight,
		Ray:         core.NewRay(point, basis.Local(wi)),
	}, true
}

// sample draws wi in the local frame. u.X both selects the lobe and is
// reused, rescaled, as the first coordinate of the lobe's own sample.
func (s *Substrate) sample(wo core.Vec3, u core.Vec2) (core.Vec3, bool) {
	if u.X < 0.5 {
		u.X = min(2*u.X, oneMinusEpsilon)
		wi := core.SampleCosineHemisphere(u)
		if wo.Z < 0 {
			wi.Z = -wi.Z
		}
		return wi, true
	}

	u.X = min(2*(u.X-0.5), oneMinusEpsilon)
	wh := s.distribution.SampleVisibleNormal(wo, u)
	wi := core.Reflect(wo.Negate(), wh)
	if wo.Z*wi.Z <= 0 {
		return core.Vec3{}, false
	}
	return wi, true
}

// Evaluate returns the blended BRDF for a pair of local directions
func (s *Substrate) Evaluate(kd, ks, wo, wi core.Vec3) core.Vec3 {
	cosI := math.Abs(wi.Z)
	cosO := math.Abs(wo.Z)
	if cosI == 0 || cosO == 0 {
		return core.Vec3{}
	}

	pow5 := func(v float64) float64 { return v * v * v * v * v }
	diffuseScale := (28.0 / (23.0 * math.Pi)) * (1 - pow5(1-0.5*cosI)) * (1 - pow5(1-0.5*cosO))
	diffuse := kd.MultiplyVec(core.NewVec3(1-ks.X, 1-ks.Y, 1-ks.Z)).Multiply(diffuseScale)

	wh := wi.Add(wo)
	if wh.IsZero() {
		return core.Vec3{}
	}
	wh = wh.Normalize()

	specularScale := s.distribution.D(wh) / (4 * math.Abs(wi.Dot(wh)) * max(cosI, cosO))
	specular := SchlickFresnel(wi.Dot(wh), ks).Multiply(specularScale)

	return diffuse.Add(specular)
}

// PDF is the mixture density of the two sampling strategies
func (s *Substrate) PDF(wo, wi core.Vec3) float64 {
	if wo.Z*wi.Z <= 0 {
		return 0
	}
	wh := wo.Add(wi).Normalize()
	if wh.IsZero() {
		return 0
	}
	diffusePDF := math.Abs(wi.Z) / math.Pi
	specularPDF := s.distribution.PDF(wo, wh) / (4 * wo.Dot(wh))
	return 0.5 * (diffusePDF + specularPDF)
}
