package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Scene is what the renderer needs from a scene: a camera and a radiance estimate
type Scene interface {
	Camera() *geometry.Camera
	Radiance(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Tile represents a rectangular region of the image to be rendered.
// Bounds are camera pixel coordinates with y counted from the bottom row.
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a tile whose random generator is derived from seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer estimates the pixels of individual tiles
type TileRenderer struct {
	scene  Scene
	config Config
}

// NewTileRenderer creates a tile renderer for the given scene and config
func NewTileRenderer(scene Scene, config Config) *TileRenderer {
	return &TileRenderer{scene: scene, config: config}
}

// RenderTile renders every pixel in the tile bounds into film, bottom row
// first. Tiles never share pixels, so concurrent calls on disjoint tiles are
// safe. Cancellation is checked between pixels.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, film *Film) (RenderStats, error) {
	sampler := core.NewRandomSampler(tile.Random)
	stats := RenderStats{SamplesPerPixel: tr.config.SamplesPerPixel()}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return stats, fmt.Errorf("tile %d: %w", tile.ID, err)
			}
			film.Set(film.Index(x, y), tr.RenderPixel(x, y, sampler))
			stats.TotalPixels++
			stats.TotalSamples += stats.SamplesPerPixel
		}
	}

	stats.TilesCompleted = 1
	return stats, nil
}

// RenderPixel estimates pixel (x, y): samples are averaged within each
// sub-pixel cell and the cells are averaged over the grid.
func (tr *TileRenderer) RenderPixel(x, y int, sampler core.Sampler) core.Vec3 {
	camera := tr.scene.Camera()
	grid := tr.config.SubpixelGrid
	samples := tr.config.SamplesPerSubpixel

	pixel := core.Vec3{}
	for sy := 0; sy < grid; sy++ {
		for sx := 0; sx < grid; sx++ {
			cell := core.Vec3{}
			for s := 0; s < samples; s++ {
				ray := camera.GeneratePrimaryRay(x, y, sx, sy, grid, tr.config.Width, tr.config.Height, sampler.Get2D())
				cell = cell.Add(tr.scene.Radiance(ray, sampler).Multiply(1.0 / float64(samples)))
			}
			pixel = pixel.Add(cell.Multiply(1.0 / float64(grid*grid)))
		}
	}
	return pixel
}
