package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName  string
	scenesDir  string
	configPath string
	outPath    string
	list       bool
	help       bool
	config     renderer.Config
	usage      func()
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printHelp(opts)
		return
	}
	if opts.list {
		if err := listScenes(os.Stdout, opts.scenesDir); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseOptions reads flags on top of an optional JSON render config file.
// Flags given explicitly on the command line win over the file.
func parseOptions(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	defaults := renderer.DefaultConfig()
	opts := options{usage: fs.PrintDefaults}
	fs.StringVar(&opts.sceneName, "scene", "box", "Scene: built-in name, name of a file in -scenes, or path to a .json scene")
	fs.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory searched for JSON scene files")
	fs.StringVar(&opts.configPath, "config", "", "JSON file with render settings (Width, Height, SubpixelGrid, ...)")
	fs.StringVar(&opts.outPath, "out", "", "Output image path (.png, .jpg); default output/<scene>/render_<timestamp>.png")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	height := fs.Int("height", defaults.Height, "Image height in pixels")
	grid := fs.Int("grid", defaults.SubpixelGrid, "Sub-pixel grid resolution (grid x grid cells per pixel)")
	samples := fs.Int("samples", defaults.SamplesPerSubpixel, "Samples per sub-pixel cell")
	tileSize := fs.Int("tile", defaults.TileSize, "Tile size in pixels")
	workers := fs.Int("workers", defaults.NumWorkers, "Number of parallel workers (0 = use CPU count)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.config = defaults
	if opts.configPath != "" {
		config, err := readRenderConfig(opts.configPath, defaults)
		if err != nil {
			return opts, err
		}
		opts.config = config
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			opts.config.Width = *width
		case "height":
			opts.config.Height = *height
		case "grid":
			opts.config.SubpixelGrid = *grid
		case "samples":
			opts.config.SamplesPerSubpixel = *samples
		case "tile":
			opts.config.TileSize = *tileSize
		case "workers":
			opts.config.NumWorkers = *workers
		case "seed":
			opts.config.Seed = *seed
		}
	})

	return opts, opts.config.Validate()
}

// readRenderConfig overlays a JSON render config onto base
func readRenderConfig(path string, base renderer.Config) (renderer.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read render config: %w", err)
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("failed to parse render config %s: %w", path, err)
	}
	return base, nil
}

// createScene resolves a built-in scene, a JSON path, or a JSON file by name in scenesDir
func createScene(name, scenesDir string, aspect float64) (*scene.Scene, error) {
	s, err := scene.Load(name, aspect)
	if err == nil || !errors.Is(err, scene.ErrUnknownScene) {
		return s, err
	}

	path := filepath.Join(scenesDir, name+".json")
	if _, statErr := os.Stat(path); name != "" && statErr == nil {
		return scene.LoadFile(path, aspect)
	}
	return nil, err
}

// outputPath returns output/<scene>/render_<timestamp>.png, where <scene> is
// the scene name stripped of any directory and extension
func outputPath(sceneName string, now time.Time) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func run(ctx context.Context, opts options) error {
	fmt.Println("Starting Path Tracer...")

	s, err := createScene(opts.sceneName, opts.scenesDir, opts.config.AspectRatio())
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene (%d primitives)...\n", opts.sceneName, len(s.Primitives()))

	pt, err := renderer.NewPathTracer(s, opts.config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	film, stats, err := pt.Render(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Samples per pixel: %.1f over %d pixels\n", stats.AverageSamples(), stats.TotalPixels)

	filename := opts.outPath
	if filename == "" {
		filename = outputPath(opts.sceneName, time.Now())
	}
	if err := loaders.SaveImage(filename, film.Image()); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

func listScenes(w io.Writer, scenesDir string) error {
	groups, skipped, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			id := info.ID
			if info.Type == scene.TypeFile {
				id = info.FilePath
			}
			fmt.Fprintf(w, "  %-28s %s\n", id, info.Description)
		}
	}
	for _, err := range skipped {
		fmt.Fprintf(w, "Warning: skipped scene file: %v\n", err)
	}
	return nil
}

func printHelp(opts options) {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	opts.usage()
	fmt.Println()
	fmt.Println("Available scenes:")
	if err := listScenes(os.Stdout, opts.scenesDir); err != nil {
		fmt.Printf("  (could not list %s: %v)\n", opts.scenesDir, err)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}
