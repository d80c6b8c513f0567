package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultFieldOfView is the full height of the image plane at unit distance
const DefaultFieldOfView = 0.5135

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Eye         core.Vec3 // Eye point; every primary ray starts here
	Direction   core.Vec3 // Viewing direction
	AspectRatio float64   // Width / height
	FieldOfView float64   // Image plane height at unit distance (0 = default)
}

// Camera is a pinhole camera. Pixel footprints are reconstructed with a tent
// filter over a grid of sub-pixels.
type Camera struct {
	eye core.Vec3
	u   core.Vec3 // image plane x axis, scaled by the full width
	v   core.Vec3 // image plane y axis, scaled by the full height
	w   core.Vec3 // forward
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	fov := config.FieldOfView
	if fov <= 0 {
		fov = DefaultFieldOfView
	}
	aspect := config.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}

	w := config.Direction.Normalize()
	up := core.NewVec3(0, 1, 0)
	if math.Abs(w.Dot(up)) > 0.999 {
		up = core.NewVec3(0, 0, 1)
	}
	right := w.Cross(up).Normalize()

	u := right.Multiply(aspect * fov)
	v := right.Cross(w).Normalize().Multiply(fov)

	return &Camera{eye: config.Eye, u: u, v: v, w: w}
}

// Eye returns the camera position
func (c *Camera) Eye() core.Vec3 { return c.eye }

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 { return c.w }

// GeneratePrimaryRay returns the ray for pixel (x, y), counted from the
// bottom-left, through sub-pixel (sx, sy) of a grid×grid subdivision.
// sample jitters the ray inside the sub-pixel with a tent filter.
func (c *Camera) GeneratePrimaryRay(x, y, sx, sy, grid, width, height int, sample core.Vec2) core.Ray {
	dx := core.SampleTent(sample.X)
	dy := core.SampleTent(sample.Y)

	px := ((float64(sx)+0.5+dx)/float64(grid)+float64(x))/float64(width) - 0.5
	py := ((float64(sy)+0.5+dy)/float64(grid)+float64(y))/float64(height) - 0.5

	direction := c.u.Multiply(px).Add(c.v.Multiply(py)).Add(c.w)
	return core.NewRay(c.eye, direction)
}

// Project maps a world point to normalized image coordinates in [0,1]², with
// (0,0) at the bottom-left. ok is false for points behind the camera.
func (c *Camera) Project(point core.Vec3) (px, py float64, ok bool) {
	d := point.Subtract(c.eye)
	along := d.Dot(c.w)
	if along <= 0 {
		return 0, 0, false
	}
	d = d.Multiply(1 / along)
	px = d.Dot(c.u)/c.u.LengthSquared() + 0.5
	py = d.Dot(c.v)/c.v.LengthSquared() + 0.5
	return px, py, true
}
