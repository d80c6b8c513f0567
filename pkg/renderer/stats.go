package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of radiance samples taken
	SamplesPerPixel int           // Radiance samples per fully rendered pixel
	TilesCompleted  int           // Tiles that finished without cancellation
	Elapsed         time.Duration // Wall-clock time of the render
}

// AverageSamples returns samples per rendered pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// merge folds per-tile counters into the render totals
func (s *RenderStats) merge(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.TilesCompleted += tile.TilesCompleted
}
