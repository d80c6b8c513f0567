package scene

import (
	"errors"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Epsilon is the minimum hit distance; it keeps secondary rays from
// re-hitting the surface they leave
const Epsilon = 1e-4

// ErrNilCamera is returned when a scene is built without a camera
var ErrNilCamera = errors.New("scene requires a camera")

// Scene contains all the elements needed for rendering
type Scene struct {
	camera     *geometry.Camera
	primitives []*geometry.Primitive
	integrator integrator.Integrator
}

// New creates an empty scene traced with the default path integrator
func New(camera *geometry.Camera) (*Scene, error) {
	if camera == nil {
		return nil, ErrNilCamera
	}
	pt, err := integrator.NewPathTracingIntegrator(integrator.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Scene{camera: camera, integrator: pt}, nil
}

// Camera returns the scene camera
func (s *Scene) Camera() *geometry.Camera { return s.camera }

// Primitives returns the scene's primitives in insertion order
func (s *Scene) Primitives() []*geometry.Primitive { return s.primitives }

// Add appends primitives to the scene. Nil entries are ignored.
func (s *Scene) Add(primitives ...*geometry.Primitive) {
	for _, p := range primitives {
		if p != nil {
			s.primitives = append(s.primitives, p)
		}
	}
}

// AddShape wraps shape, material and transform in a primitive and adds it
func (s *Scene) AddShape(shape geometry.Shape, material geometry.Material, transform *geometry.Transform) error {
	p, err := geometry.NewPrimitive(shape, material, transform)
	if err != nil {
		return err
	}
	s.primitives = append(s.primitives, p)
	return nil
}

// SetIntegrator replaces the light transport algorithm
func (s *Scene) SetIntegrator(i integrator.Integrator) {
	if i != nil {
		s.integrator = i
	}
}

// Integrator returns the light transport algorithm in use
func (s *Scene) Integrator() integrator.Integrator { return s.integrator }

// Intersect scans every primitive and returns the nearest hit beyond Epsilon
func (s *Scene) Intersect(ray core.Ray) (*geometry.Intersection, bool) {
	var nearest *geometry.Intersection
	closest := math.Inf(1)

	for _, p := range s.primitives {
		isect, ok := p.Intersect(ray, Epsilon, closest)
		if !ok {
			continue
		}
		t := isect.WorldT()
		if t <= Epsilon || t >= closest || math.IsNaN(t) {
			continue
		}
		nearest = isect
		closest = t
	}

	return nearest, nearest != nil
}

// Radiance estimates the light arriving along ray
func (s *Scene) Radiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return s.integrator.Radiance(ray, s, sampler)
}
