package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	texture := NewImageTexture(2, 2, []core.Vec3{white, black, black, white})

	tests := []struct {
		uv   core.Vec2
		want core.Vec3
	}{
		{core.NewVec2(0.1, 0.1), black}, // bottom-left
		{core.NewVec2(0.9, 0.1), white}, // bottom-right
		{core.NewVec2(0.1, 0.9), white}, // top-left
		{core.NewVec2(0.9, 0.9), black}, // top-right
		{core.NewVec2(1.1, 0.1), black}, // wraps
		{core.NewVec2(-0.1, 0.1), white},
	}

	for _, tt := range tests {
		if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.want {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.want, got)
		}
	}
}

func TestImageTextureEmpty(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); !got.IsZero() {
		t.Errorf("Empty texture should be black, got %v", got)
	}
}

func TestCheckerboard(t *testing.T) {
	even := core.NewVec3(1, 0, 0)
	odd := core.NewVec3(0, 0, 1)
	checker := NewCheckerboard(even, odd, 2)

	tests := []struct {
		uv   core.Vec2
		want core.Vec3
	}{
		{core.NewVec2(0.1, 0.1), even},
		{core.NewVec2(0.6, 0.1), odd},
		{core.NewVec2(0.6, 0.6), even},
		{core.NewVec2(-0.1, 0.1), odd},
	}
	for _, tt := range tests {
		if got := checker.Evaluate(tt.uv, core.Vec3{}); got != tt.want {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.want, got)
		}
	}
}

func TestSolidColor(t *testing.T) {
	c := core.NewVec3(0.2, 0.4, 0.6)
	if got := NewSolidColor(c).Evaluate(core.NewVec2(3, -7), core.NewVec3(1, 2, 3)); got != c {
		t.Errorf("Got %v, want %v", got, c)
	}
}

func TestImageTextureOnSphere(t *testing.T) {
	// One column: top row red, bottom row blue
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	texture := NewImageTexture(1, 2, []core.Vec3{red, blue})
	m := NewMatte(nil, texture)

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		want   core.Vec3
	}{
		{"north pole samples the top row", core.NewVec3(0.05, 5, 0), core.NewVec3(0, -1, 0), red},
		{"south pole samples the bottom row", core.NewVec3(0.05, -5, 0), core.NewVec3(0, 1, 0), blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isect := hitUnitSphere(t, m, core.NewRay(tt.origin, tt.dir))
			got := texture.Evaluate(isect.TextureCoordinates(), isect.Point())
			if got != tt.want {
				t.Errorf("uv=%v color=%v, want %v", isect.TextureCoordinates(), got, tt.want)
			}
		})
	}
}
