package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrUnknownMaterial is returned when a primitive names an undefined material
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrUnknownType is returned for an unrecognized shape, material or texture type
	ErrUnknownType = errors.New("unknown type")
)

// FileConfig is the JSON description of a scene
type FileConfig struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Group       string                  `json:"group,omitempty"`
	Camera      CameraFile              `json:"camera"`
	Integrator  *integrator.Config      `json:"integrator,omitempty"`
	Materials   map[string]MaterialFile `json:"materials"`
	Primitives  []PrimitiveFile         `json:"primitives"`
}

// CameraFile places the camera
type CameraFile struct {
	Eye         [3]float64 `json:"eye"`
	Direction   [3]float64 `json:"direction"`
	FieldOfView float64    `json:"fov,omitempty"`
}

// TextureFile describes a texture: "solid", "checker" or "image"
type TextureFile struct {
	Type   string     `json:"type"`
	Color  [3]float64 `json:"color"`
	Color2 [3]float64 `json:"color2,omitempty"`
	Scale  float64    `json:"scale,omitempty"`
	Path   string     `json:"path,omitempty"`
}

// MaterialFile describes a material: "matte", "mirror", "metal", "glass" or "substrate"
type MaterialFile struct {
	Type      string       `json:"type"`
	Emission  *TextureFile `json:"emission,omitempty"`
	Albedo    *TextureFile `json:"albedo,omitempty"`
	Specular  *TextureFile `json:"specular,omitempty"`
	Roughness float64      `json:"roughness,omitempty"`
	Remap     bool         `json:"remap,omitempty"`
	IOR       float64      `json:"ior,omitempty"`
}

// PrimitiveFile describes one shape: "sphere", "box", "plane", "quad",
// "disc", "triangle", "mesh", "cylinder" or "cone". Center doubles as the
// quad corner and the cylinder or cone base. A mesh takes inline Vertices and Faces, or a PLY
// file in Path resolved like image textures.
type PrimitiveFile struct {
	Shape     string         `json:"shape"`
	Material  string         `json:"material"`
	Center    [3]float64     `json:"center,omitempty"`
	Radius    float64        `json:"radius,omitempty"`
	Min       *[3]float64    `json:"min,omitempty"`
	Max       *[3]float64    `json:"max,omitempty"`
	Normal    *[3]float64    `json:"normal,omitempty"`
	U         [3]float64     `json:"u,omitempty"`
	V         [3]float64     `json:"v,omitempty"`
	Top       [3]float64     `json:"top,omitempty"`
	TopRadius float64        `json:"topRadius,omitempty"`
	Capped    bool           `json:"capped,omitempty"`
	Vertices  [][3]float64   `json:"vertices,omitempty"`
	Faces     []int          `json:"faces,omitempty"`
	Path      string         `json:"path,omitempty"`
	Transform *TransformFile `json:"transform,omitempty"`
}

// TransformFile is a position, axis-angle rotation and scale
type TransformFile struct {
	Position        [3]float64  `json:"position"`
	RotationAxis    [3]float64  `json:"rotationAxis,omitempty"`
	RotationDegrees float64     `json:"rotationDegrees,omitempty"`
	Scale           *[3]float64 `json:"scale,omitempty"`
}

// LoadFile reads a JSON scene file and builds it
func LoadFile(path string, aspect float64) (*Scene, error) {
	config, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := config.Build(aspect, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", path, err)
	}
	return s, nil
}

// ReadFile decodes a JSON scene file without building it
func ReadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	var config FileConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	return &config, nil
}

// Build creates the scene. Relative image texture paths resolve against baseDir.
func (c *FileConfig) Build(aspect float64, baseDir string) (*Scene, error) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Eye:         vec(c.Camera.Eye),
		Direction:   vec(c.Camera.Direction),
		AspectRatio: aspect,
		FieldOfView: c.Camera.FieldOfView,
	})
	if camera.Forward().IsZero() {
		return nil, fmt.Errorf("camera direction must be non-zero")
	}

	s, err := New(camera)
	if err != nil {
		return nil, err
	}

	if c.Integrator != nil {
		pt, err := integrator.NewPathTracingIntegrator(*c.Integrator)
		if err != nil {
			return nil, err
		}
		s.SetIntegrator(pt)
	}

	materials := make(map[string]geometry.Material, len(c.Materials))
	for name, mf := range c.Materials {
		m, err := mf.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	for i, pf := range c.Primitives {
		m, ok := materials[pf.Material]
		if !ok {
			return nil, fmt.Errorf("primitive %d: %w %q", i, ErrUnknownMaterial, pf.Material)
		}
		shape, err := pf.buildShape(baseDir)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		if err := s.AddShape(shape, m, pf.Transform.build()); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
	}

	return s, nil
}

func (m MaterialFile) build(baseDir string) (geometry.Material, error) {
	albedo, err := m.Albedo.build(baseDir)
	if err != nil {
		return nil, err
	}

	switch m.Type {
	case "matte":
		emission, err := m.Emission.build(baseDir)
		if err != nil {
			return nil, err
		}
		return material.NewMatte(emission, albedo), nil
	case "mirror":
		return material.NewMirror(albedo), nil
	case "metal":
		return material.NewMetal(albedo), nil
	case "glass":
		glass := material.NewGlass(albedo)
		if m.IOR > 0 {
			glass.RefractiveIndex = m.IOR
		}
		return glass, nil
	case "substrate":
		specular, err := m.Specular.build(baseDir)
		if err != nil {
			return nil, err
		}
		return material.NewSubstrate(albedo, specular, m.Roughness, m.Remap), nil
	default:
		return nil, fmt.Errorf("%w: material %q", ErrUnknownType, m.Type)
	}
}

// build returns nil for a nil description; materials treat that as black
func (t *TextureFile) build(baseDir string) (material.Texture, error) {
	if t == nil {
		return nil, nil
	}

	switch t.Type {
	case "", "solid":
		return material.NewSolidColor(vec(t.Color)), nil
	case "checker":
		return material.NewCheckerboard(vec(t.Color), vec(t.Color2), t.Scale), nil
	case "image":
		img, err := loaders.LoadImage(resolvePath(baseDir, t.Path))
		if err != nil {
			return nil, err
		}
		return material.NewImageTexture(img.Width, img.Height, img.Pixels), nil
	default:
		return nil, fmt.Errorf("%w: texture %q", ErrUnknownType, t.Type)
	}
}

func (p PrimitiveFile) buildShape(baseDir string) (geometry.Shape, error) {
	switch p.Shape {
	case "sphere":
		if p.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius %g must be positive", p.Radius)
		}
		return geometry.NewSphere(vec(p.Center), p.Radius), nil
	case "box":
		if p.Min == nil || p.Max == nil {
			return geometry.NewUnitBox(), nil
		}
		return geometry.NewBox(vec(*p.Min), vec(*p.Max)), nil
	case "plane":
		normal := core.NewVec3(0, 1, 0)
		if p.Normal != nil {
			normal = vec(*p.Normal)
		}
		if normal.IsZero() {
			return nil, fmt.Errorf("plane normal must be non-zero")
		}
		return geometry.NewPlane(vec(p.Center), normal), nil
	case "quad":
		if vec(p.U).Cross(vec(p.V)).IsZero() {
			return nil, fmt.Errorf("quad edges must span a plane")
		}
		return geometry.NewQuad(vec(p.Center), vec(p.U), vec(p.V)), nil
	case "disc":
		if p.Radius <= 0 || p.Normal == nil || vec(*p.Normal).IsZero() {
			return nil, fmt.Errorf("disc needs a positive radius and a non-zero normal")
		}
		return geometry.NewDisc(vec(p.Center), vec(*p.Normal), p.Radius), nil
	case "triangle":
		if len(p.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(p.Vertices))
		}
		return geometry.NewTriangle(vec(p.Vertices[0]), vec(p.Vertices[1]), vec(p.Vertices[2])), nil
	case "mesh":
		if p.Path != "" {
			ply, err := loaders.LoadPLY(resolvePath(baseDir, p.Path))
			if err != nil {
				return nil, err
			}
			return geometry.NewTriangleMesh(ply.Vertices, ply.Faces)
		}
		vertices := make([]core.Vec3, len(p.Vertices))
		for i, v := range p.Vertices {
			vertices[i] = vec(v)
		}
		return geometry.NewTriangleMesh(vertices, p.Faces)
	case "cylinder":
		if p.Radius <= 0 || vec(p.Top) == vec(p.Center) {
			return nil, fmt.Errorf("cylinder needs a positive radius and distinct base and top")
		}
		return geometry.NewCylinder(vec(p.Center), vec(p.Top), p.Radius), nil
	case "cone":
		return geometry.NewCone(vec(p.Center), p.Radius, vec(p.Top), p.TopRadius, p.Capped)
	default:
		return nil, fmt.Errorf("%w: shape %q", ErrUnknownType, p.Shape)
	}
}

// build returns nil (identity) for a nil description
func (t *TransformFile) build() *geometry.Transform {
	if t == nil {
		return nil
	}

	rotation := core.IdentityQuaternion()
	if t.RotationDegrees != 0 {
		rotation = core.NewQuaternionAxisAngle(vec(t.RotationAxis), t.RotationDegrees*math.Pi/180)
	}
	scale := core.NewVec3(1, 1, 1)
	if t.Scale != nil {
		scale = vec(*t.Scale)
	}
	return geometry.NewTransform(vec(t.Position), rotation, scale)
}

// resolvePath joins a relative path onto baseDir
func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}
