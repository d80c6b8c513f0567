package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		// Built-in scenes
		{"box scene", "box", false},
		{"showcase scene", "showcase", false},

		// Scene files
		{"file by name", "glass-room", false},
		{"file by path", "scenes/glass-room.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing file path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneName, "scenes", 4.0/3.0)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.sceneName)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s'", tt.sceneName)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.sceneName, err)
			}
			if s == nil || s.Camera() == nil || len(s.Primitives()) == 0 {
				t.Errorf("Scene '%s' should have a camera and primitives", tt.sceneName)
			}
		})
	}
}

func TestCreateSceneUnknownIsTyped(t *testing.T) {
	_, err := createScene("nonexistent", t.TempDir(), 1)
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name      string
		sceneName string
		want      string
	}{
		{"built-in scene", "box", filepath.Join("output", "box", "render_20240309_140507.png")},
		{"scene file path", "scenes/glass-room.json", filepath.Join("output", "glass-room", "render_20240309_140507.png")},
		{"nested path", "scenes/sub/my-scene.json", filepath.Join("output", "my-scene", "render_20240309_140507.png")},
		{"empty name", "", filepath.Join("output", "scene", "render_20240309_140507.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.sceneName, now); got != tt.want {
				t.Errorf("outputPath(%q) = %q, want %q", tt.sceneName, got, tt.want)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if opts.sceneName != "box" || opts.config != renderer.DefaultConfig() {
		t.Errorf("Unexpected defaults: %+v", opts)
	}

	opts, err = parseOptions([]string{"-scene", "showcase", "-width", "40", "-height", "30", "-grid", "1", "-samples", "2", "-seed", "9"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	want := renderer.DefaultConfig()
	want.Width, want.Height, want.SubpixelGrid, want.SamplesPerSubpixel, want.Seed = 40, 30, 1, 2, 9
	if opts.sceneName != "showcase" || opts.config != want {
		t.Errorf("Flags not applied: %+v", opts.config)
	}

	if _, err := parseOptions([]string{"-samples", "0"}, &bytes.Buffer{}); !errors.Is(err, renderer.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := parseOptions([]string{"-bogus"}, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}

func TestParseOptionsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.json")
	if err := os.WriteFile(path, []byte(`{"Width": 80, "Height": 60, "SamplesPerSubpixel": 8}`), 0644); err != nil {
		t.Fatal(err)
	}

	// The file overrides defaults and explicit flags override the file
	opts, err := parseOptions([]string{"-config", path, "-height", "50"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if opts.config.Width != 80 || opts.config.Height != 50 || opts.config.SamplesPerSubpixel != 8 {
		t.Errorf("Unexpected config %+v", opts.config)
	}
	if opts.config.SubpixelGrid != renderer.DefaultConfig().SubpixelGrid {
		t.Errorf("Unset fields should keep defaults, got grid %d", opts.config.SubpixelGrid)
	}

	if _, err := parseOptions([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, &bytes.Buffer{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestListScenes(t *testing.T) {
	var out bytes.Buffer
	if err := listScenes(&out, "scenes"); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{"Built-in Scenes:", "box", "showcase", filepath.Join("scenes", "glass-room.json")} {
		if !strings.Contains(text, want) {
			t.Errorf("Listing should mention %q:\n%s", want, text)
		}
	}
}

func TestListScenesReportsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := listScenes(&out, dir); err != nil {
		t.Fatalf("A broken scene file should not fail the listing: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Built-in Scenes:") || !strings.Contains(text, "Warning: skipped scene file") {
		t.Errorf("Expected built-ins and a warning:\n%s", text)
	}
}

func TestRunWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "render.png")
	opts := options{
		sceneName: "box",
		scenesDir: "scenes",
		outPath:   out,
		config: renderer.Config{
			Width:              16,
			Height:             12,
			SubpixelGrid:       1,
			SamplesPerSubpixel: 1,
			TileSize:           8,
			NumWorkers:         2,
			Seed:               1,
		},
	}
	if err := run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("Unexpected image size %v", b)
	}
}
