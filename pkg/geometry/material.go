package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// Result is what a material produces at a hit: light emitted toward the
// viewer, the throughput weight for the sampled direction, and the ray to
// continue the path with.
type Result struct {
	Emission    core.Vec3
	Reflectance core.Vec3
	Ray         core.Ray
}

// Material samples one outgoing direction at an intersection. Returning false
// means the path is absorbed here.
type Material interface {
	Compute(isect *Intersection, sampler core.Sampler) (Result, bool)
}
