package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a render configuration cannot be used
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains the fixed parameters of a render
type Config struct {
	Width              int   // Output width in pixels
	Height             int   // Output height in pixels
	SubpixelGrid       int   // Each pixel is split into SubpixelGrid x SubpixelGrid cells
	SamplesPerSubpixel int   // Radiance samples taken per sub-pixel cell
	TileSize           int   // Edge length of a square render tile
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	Seed               int64 // Base seed for the per-tile random generators
}

// DefaultConfig returns sensible default values. Rendering is sequential
// unless NumWorkers is raised; the image does not depend on the worker count.
func DefaultConfig() Config {
	return Config{
		Width:              256,
		Height:             192,
		SubpixelGrid:       2,
		SamplesPerSubpixel: 4,
		TileSize:           32,
		NumWorkers:         1,
		Seed:               42,
	}
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// SamplesPerPixel returns the total number of radiance samples per pixel
func (c Config) SamplesPerPixel() int {
	return c.SubpixelGrid * c.SubpixelGrid * c.SamplesPerSubpixel
}

// Validate reports the first field that makes the config unusable
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SubpixelGrid <= 0:
		return fmt.Errorf("%w: sub-pixel grid %d", ErrInvalidConfig, c.SubpixelGrid)
	case c.SamplesPerSubpixel <= 0:
		return fmt.Errorf("%w: samples per sub-pixel %d", ErrInvalidConfig, c.SamplesPerSubpixel)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}
