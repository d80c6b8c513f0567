package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// PathTracingIntegrator implements unidirectional path tracing with
// material importance sampling and Russian roulette
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) (*PathTracingIntegrator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PathTracingIntegrator{config: config}, nil
}

// Config returns the termination settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// Radiance traces a path starting with ray. Each hit adds its emission
// scaled by the throughput so far; the material's reflectance then scales
// the throughput for the next bounce.
func (pt *PathTracingIntegrator) Radiance(ray core.Ray, world World, sampler core.Sampler) core.Vec3 {
	var radiance core.Vec3
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; ; depth++ {
		isect, hit := world.Intersect(ray)
		if !hit {
			break
		}

		result, ok := isect.Material().Compute(isect, sampler)
		if !ok {
			break
		}
		if !result.Emission.IsFinite() || !result.Reflectance.IsFinite() {
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(result.Emission))

		weight, cont := pt.ContinueRoulette(depth, result.Reflectance, sampler)
		if !cont {
			break
		}

		throughput = throughput.MultiplyVec(weight)
		if throughput.IsZero() {
			break
		}
		ray = result.Ray
	}

	return radiance
}

// ContinueRoulette decides whether a path continues past a hit at depth.
// Below RouletteDepth the path always continues with weight reflectance.
// From there up to MaxDepth it survives with probability equal to the
// largest reflectance channel (capped at 1), and the weight is divided by
// that probability. At MaxDepth the path always ends.
func (pt *PathTracingIntegrator) ContinueRoulette(depth int, reflectance core.Vec3, sampler core.Sampler) (core.Vec3, bool) {
	if depth >= pt.config.MaxDepth {
		return core.Vec3{}, false
	}
	if depth < pt.config.RouletteDepth {
		return reflectance, true
	}

	p := min(reflectance.MaxComponent(), 1)
	if p <= 0 {
		return core.Vec3{}, false
	}
	if sampler.Get1D() >= p {
		return core.Vec3{}, false
	}
	return reflectance.Multiply(1 / p), true
}
