package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// fixedSampler returns the same value for every dimension
type fixedSampler struct {
	value float64
}

func (s fixedSampler) Get1D() float64 { return s.value }
func (s fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}
func (s fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.value, s.value, s.value)
}

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

// hitUnitSphere intersects ray with a unit sphere at the origin carrying m
func hitUnitSphere(t *testing.T, m geometry.Material, ray core.Ray) *geometry.Intersection {
	t.Helper()
	p, err := geometry.NewPrimitive(geometry.NewSphere(core.Vec3{}, 1), m, nil)
	if err != nil {
		t.Fatal(err)
	}
	isect, ok := p.Intersect(ray, 1e-4, math.Inf(1))
	if !ok {
		t.Fatalf("Ray %v should hit the unit sphere", ray)
	}
	return isect
}

func solid(r, g, b float64) Texture {
	return NewSolidColor(core.NewVec3(r, g, b))
}
