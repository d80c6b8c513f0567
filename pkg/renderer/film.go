package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DisplayGamma is the gamma applied when converting the film to 8-bit color
const DisplayGamma = 2.2

// Film is a linear RGB pixel buffer stored in raster order: index 0 is the
// top-left pixel of the final image.
type Film struct {
	width, height int
	pixels        []core.Vec3
}

// NewFilm creates a black film of the given resolution
func NewFilm(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the film width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the film height in pixels
func (f *Film) Height() int { return f.height }

// Index maps a camera pixel, with y counted from the bottom row, to its
// linear buffer index.
func (f *Film) Index(x, y int) int {
	return (f.height-1-y)*f.width + x
}

// Set stores a linear color at a buffer index. Values above 1 are kept
// until conversion.
func (f *Film) Set(index int, c core.Vec3) {
	f.pixels[index] = c
}

// At returns the linear color at image coordinates (x, y), y counted from the top
func (f *Film) At(x, y int) core.Vec3 {
	return f.pixels[y*f.width+x]
}

// Image converts the film to 8-bit sRGB-ish color with alpha fixed at 255
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for i, c := range f.pixels {
		img.SetRGBA(i%f.width, i/f.width, toRGBA(c))
	}
	return img
}

// AverageLuminance returns the mean luminance of the linear film
func (f *Film) AverageLuminance() float64 {
	if len(f.pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range f.pixels {
		total += c.Luminance()
	}
	return total / float64(len(f.pixels))
}

func toRGBA(c core.Vec3) color.RGBA {
	g := c.Clamp(0, 1).GammaCorrect(DisplayGamma)
	return color.RGBA{
		R: uint8(g.X*255 + 0.5),
		G: uint8(g.Y*255 + 0.5),
		B: uint8(g.Z*255 + 0.5),
		A: 255,
	}
}
