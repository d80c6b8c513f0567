package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestFilmIndexIsBottomUp(t *testing.T) {
	film := NewFilm(4, 3)

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 8},  // bottom-left pixel lands on the last image row
		{3, 0, 11}, // bottom-right
		{0, 2, 0},  // top-left
		{2, 1, 6},
	}
	for _, tt := range tests {
		if got := film.Index(tt.x, tt.y); got != tt.want {
			t.Errorf("Index(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFilmImageConversion(t *testing.T) {
	film := NewFilm(2, 2)
	film.Set(film.Index(0, 1), core.NewVec3(1, 0, 0.5)) // top-left
	film.Set(film.Index(1, 1), core.NewVec3(7, -2, 1))  // top-right, out of range
	film.Set(film.Index(0, 0), core.NewVec3(0.25, 0.25, 0.25))

	img := film.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected image bounds %v", img.Bounds())
	}

	half := uint8(math.Pow(0.5, 1/2.2)*255 + 0.5)
	quarter := uint8(math.Pow(0.25, 1/2.2)*255 + 0.5)

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"gamma and full channels", 0, 0, color.RGBA{255, 0, half, 255}},
		{"saturated", 1, 0, color.RGBA{255, 0, 255, 255}},
		{"bottom row", 0, 1, color.RGBA{quarter, quarter, quarter, 255}},
		{"untouched is black", 1, 1, color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("Pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFilmAtUsesImageRows(t *testing.T) {
	film := NewFilm(3, 2)
	c := core.NewVec3(0.1, 0.2, 0.3)
	film.Set(film.Index(2, 1), c)
	if got := film.At(2, 0); got != c {
		t.Errorf("At(2,0) = %v, want %v", got, c)
	}
}

func TestFilmAverageLuminance(t *testing.T) {
	film := NewFilm(2, 2)
	film.Set(0, core.NewVec3(1, 0, 0))
	film.Set(1, core.NewVec3(0, 1, 0))
	film.Set(2, core.NewVec3(0, 0, 1))

	// Red, green and blue sum to white; the black pixel makes it a quarter
	want := core.NewVec3(1, 1, 1).Luminance() / 4
	if got := film.AverageLuminance(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected average luminance %f, got %f", want, got)
	}

	if got := NewFilm(0, 0).AverageLuminance(); got != 0 {
		t.Errorf("Empty film should have zero luminance, got %f", got)
	}
}
