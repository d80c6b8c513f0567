package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ErrInvalidConfig is returned when integrator settings are out of range
var ErrInvalidConfig = errors.New("invalid integrator config")

// World is the geometry a path is traced through
type World interface {
	// Intersect returns the nearest hit along ray, or false on a miss
	Intersect(ray core.Ray) (*geometry.Intersection, bool)
}

// Integrator estimates the radiance arriving along a ray
type Integrator interface {
	Radiance(ray core.Ray, world World, sampler core.Sampler) core.Vec3
}

// Config controls path termination
type Config struct {
	RouletteDepth int // Bounces traced unconditionally before Russian roulette starts
	MaxDepth      int // Hard cutoff; the hit at this depth contributes emission only
}

// DefaultConfig returns the standard three-band termination policy
func DefaultConfig() Config {
	return Config{
		RouletteDepth: 5,
		MaxDepth:      20,
	}
}

// Validate checks that the depths describe a sensible policy
func (c Config) Validate() error {
	if c.RouletteDepth < 0 {
		return fmt.Errorf("%w: roulette depth %d is negative", ErrInvalidConfig, c.RouletteDepth)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d must be positive", ErrInvalidConfig, c.MaxDepth)
	}
	if c.RouletteDepth > c.MaxDepth {
		return fmt.Errorf("%w: roulette depth %d exceeds max depth %d", ErrInvalidConfig, c.RouletteDepth, c.MaxDepth)
	}
	return nil
}
