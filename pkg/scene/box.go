package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box scene layout. The room spans x∈[1,99], y∈[0,81.6], z∈[0,∞) and is open
// toward the camera.
var (
	BoxEye       = core.NewVec3(50, 52, 295.6)
	BoxDirection = core.NewVec3(0, -0.042612, -1)
	BoxLight     = core.NewVec3(50, 70, 81.6)
)

const (
	wallRadius  = 1e5
	lightRadius = 8.0
)

// NewBoxScene creates the reference room: five diffuse walls made of huge
// spheres, a glossy sphere, a glass sphere and an emissive sphere
func NewBoxScene(aspect float64) (*Scene, error) {
	s, err := newBoxRoom(aspect, true)
	if err != nil {
		return nil, err
	}

	glossy := material.NewSubstrate(
		material.NewSolidColor(core.NewVec3(0.2, 0.6, 0.9)),
		material.NewSolidColor(core.NewVec3(0.04, 0.04, 0.04)),
		0.1, true,
	)
	glass := material.NewGlass(material.NewSolidColor(core.NewVec3(0.999, 0.999, 0.999)))

	spheres := []sphereDef{
		{core.NewVec3(27, 16.5, 47), 16.5, glossy},
		{core.NewVec3(73, 16.5, 78), 16.5, glass},
	}
	if err := s.addSpheres(spheres); err != nil {
		return nil, err
	}

	return s, nil
}

// NewShowcaseScene extends the room with every material and shape: mirror
// and metal spheres, a rotated box and a checkered floor plane
func NewShowcaseScene(aspect float64) (*Scene, error) {
	s, err := newBoxRoom(aspect, false)
	if err != nil {
		return nil, err
	}

	floor := material.NewMatte(nil, &material.Checkerboard{
		Even:  material.NewSolidColor(core.NewVec3(0.75, 0.75, 0.75)),
		Odd:   material.NewSolidColor(core.NewVec3(0.25, 0.25, 0.25)),
		Scale: 0.05,
	})
	glossy := material.NewSubstrate(
		material.NewSolidColor(core.NewVec3(0.8, 0.3, 0.1)),
		material.NewSolidColor(core.NewVec3(0.05, 0.05, 0.05)),
		0.3, true,
	)
	glass := material.NewGlass(material.NewSolidColor(core.NewVec3(0.999, 0.999, 0.999)))
	mirror := material.NewMirror(material.NewSolidColor(core.NewVec3(0.95, 0.95, 0.95)))
	metal := material.NewMetal(material.NewSolidColor(core.NewVec3(0.9, 0.7, 0.3)))
	block := material.NewMatte(nil, material.NewSolidColor(core.NewVec3(0.3, 0.7, 0.3)))

	if err := s.AddShape(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), floor, nil); err != nil {
		return nil, err
	}

	spheres := []sphereDef{
		{core.NewVec3(27, 16.5, 47), 16.5, glossy},
		{core.NewVec3(73, 16.5, 78), 16.5, glass},
		{core.NewVec3(20, 10, 100), 10, mirror},
		{core.NewVec3(80, 10, 110), 10, metal},
	}
	if err := s.addSpheres(spheres); err != nil {
		return nil, err
	}

	blockTransform := geometry.NewTransform(
		core.NewVec3(50, 8, 30),
		core.NewQuaternionAxisAngle(core.NewVec3(0, 1, 0), math.Pi/6),
		core.NewVec3(8, 8, 8),
	)
	if err := s.AddShape(geometry.NewUnitBox(), block, blockTransform); err != nil {
		return nil, err
	}

	return s, nil
}

// newBoxRoom builds the camera, walls and light shared by the box scenes.
// withFloor adds the bottom wall sphere.
func newBoxRoom(aspect float64, withFloor bool) (*Scene, error) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Eye:         BoxEye,
		Direction:   BoxDirection,
		AspectRatio: aspect,
	})

	s, err := New(camera)
	if err != nil {
		return nil, err
	}

	diffuse := func(r, g, b float64) geometry.Material {
		return material.NewMatte(nil, material.NewSolidColor(core.NewVec3(r, g, b)))
	}

	walls := []sphereDef{
		{core.NewVec3(wallRadius+1, 40.8, 81.6), wallRadius, diffuse(0.75, 0.25, 0.25)},   // left
		{core.NewVec3(-wallRadius+99, 40.8, 81.6), wallRadius, diffuse(0.25, 0.25, 0.75)}, // right
		{core.NewVec3(50, 40.8, wallRadius), wallRadius, diffuse(0.75, 0.75, 0.75)},       // back
		{core.NewVec3(50, -wallRadius+81.6, 81.6), wallRadius, diffuse(0.75, 0.75, 0.75)}, // top
		{BoxLight, lightRadius, material.NewLight(core.NewVec3(12, 12, 12))},
	}
	if withFloor {
		walls = append(walls, sphereDef{core.NewVec3(50, wallRadius, 81.6), wallRadius, diffuse(0.75, 0.75, 0.75)})
	}

	if err := s.addSpheres(walls); err != nil {
		return nil, err
	}
	return s, nil
}

type sphereDef struct {
	center core.Vec3
	radius float64
	mat    geometry.Material
}

func (s *Scene) addSpheres(specs []sphereDef) error {
	for _, sp := range specs {
		if err := s.AddShape(geometry.NewSphere(sp.center, sp.radius), sp.mat, nil); err != nil {
			return err
		}
	}
	return nil
}
