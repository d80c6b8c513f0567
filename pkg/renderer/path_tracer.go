package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrNilScene is returned when a path tracer is built without a scene
var ErrNilScene = errors.New("renderer: nil scene")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// PathTracer drives a full render: every pixel, every sub-pixel cell and
// every sample goes through the scene's radiance estimate.
type PathTracer struct {
	scene  Scene
	config Config
	logger core.Logger
}

// NewPathTracer validates config and creates a path tracer. A nil logger
// discards output.
func NewPathTracer(scene Scene, config Config, logger core.Logger) (*PathTracer, error) {
	if scene == nil || scene.Camera() == nil {
		return nil, ErrNilScene
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &PathTracer{scene: scene, config: config, logger: logger}, nil
}

// Config returns the render configuration
func (pt *PathTracer) Config() Config { return pt.config }

// Render renders the whole image. On cancellation the partially filled film
// is returned together with the context error.
func (pt *PathTracer) Render(ctx context.Context) (*Film, RenderStats, error) {
	start := time.Now()
	film := NewFilm(pt.config.Width, pt.config.Height)
	tiles := NewTileGrid(pt.config.Width, pt.config.Height, pt.config.TileSize, pt.config.Seed)

	pool := NewWorkerPool(NewTileRenderer(pt.scene, pt.config), len(tiles), pt.config.NumWorkers)
	pt.logger.Printf("Rendering %dx%d, %dx%d sub-pixels x %d samples (%d tiles, %d workers)...\n",
		pt.config.Width, pt.config.Height, pt.config.SubpixelGrid, pt.config.SubpixelGrid,
		pt.config.SamplesPerSubpixel, len(tiles), pool.NumWorkers())

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Film: film})
	}

	stats := RenderStats{SamplesPerPixel: pt.config.SamplesPerPixel()}
	var renderErr error
	step := max(1, len(tiles)/4)
	for done := 1; done <= len(tiles); done++ {
		result, _ := pool.GetResult()
		stats.merge(result.Stats)
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
		if renderErr == nil && (done%step == 0 || done == len(tiles)) {
			pt.logger.Printf("Tiles %d/%d complete\n", done, len(tiles))
		}
	}
	pool.Stop()

	stats.Elapsed = time.Since(start)
	if renderErr != nil {
		pt.logger.Printf("Rendering cancelled after %d/%d tiles\n", stats.TilesCompleted, len(tiles))
		return film, stats, renderErr
	}

	pt.logger.Printf("Render completed in %v (%d samples/pixel, mean luminance %.4f)\n",
		stats.Elapsed, stats.SamplesPerPixel, film.AverageLuminance())
	return film, stats, nil
}
