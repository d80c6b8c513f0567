package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

const asciiSquarePLY = `ply
format ascii 1.0
comment unit square as one quad plus a triangle
element vertex 5
property float x
property float y
property float z
property uchar red
element face 2
property uchar flags
property list uchar int vertex_indices
element edge 1
property int vertex1
property int vertex2
end_header
0 0 0 255
1 0 0 255
1 1 0 255
0 1 0 255
0.5 0.5 1 0
7 4 0 1 2 3
0 3 0 1 4
0 1
`

func TestDecodePLYASCII(t *testing.T) {
	data, err := DecodePLY(strings.NewReader(asciiSquarePLY))
	if err != nil {
		t.Fatalf("DecodePLY failed: %v", err)
	}

	if len(data.Vertices) != 5 {
		t.Fatalf("Expected 5 vertices, got %d", len(data.Vertices))
	}
	if data.Vertices[4] != core.NewVec3(0.5, 0.5, 1) {
		t.Errorf("Unexpected vertex 4: %v", data.Vertices[4])
	}

	// The quad splits into a fan of two triangles
	want := []int{0, 1, 2, 0, 2, 3, 0, 1, 4}
	if data.TriangleCount() != 3 {
		t.Fatalf("Expected 3 triangles, got %d", data.TriangleCount())
	}
	for i := range want {
		if data.Faces[i] != want[i] {
			t.Fatalf("Faces = %v, want %v", data.Faces, want)
		}
	}
}

// binaryTrianglePLY encodes one triangle with float32 positions, a double
// per-vertex property and int32 indices
func binaryTrianglePLY(t *testing.T, format string, order binary.ByteOrder) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("ply\nformat " + format + " 1.0\n" +
		"element vertex 3\nproperty float x\nproperty float y\nproperty float z\nproperty double quality\n" +
		"element face 1\nproperty list uchar int vertex_indices\nend_header\n")

	vertices := [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 3, -1}}
	for _, v := range vertices {
		if err := binary.Write(&buf, order, v); err != nil {
			t.Fatal(err)
		}
		if err := binary.Write(&buf, order, float64(0.5)); err != nil {
			t.Fatal(err)
		}
	}
	buf.WriteByte(3)
	if err := binary.Write(&buf, order, [3]int32{2, 1, 0}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodePLYBinary(t *testing.T) {
	tests := []struct {
		format string
		order  binary.ByteOrder
	}{
		{PLYLittleEndian, binary.LittleEndian},
		{PLYBigEndian, binary.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := DecodePLY(bytes.NewReader(binaryTrianglePLY(t, tt.format, tt.order)))
			if err != nil {
				t.Fatalf("DecodePLY failed: %v", err)
			}
			if len(data.Vertices) != 3 || data.Vertices[2] != core.NewVec3(0, 3, -1) {
				t.Errorf("Unexpected vertices %v", data.Vertices)
			}
			if len(data.Faces) != 3 || data.Faces[0] != 2 || data.Faces[2] != 0 {
				t.Errorf("Unexpected faces %v", data.Faces)
			}
		})
	}
}

func TestDecodePLYErrors(t *testing.T) {
	truncated := binaryTrianglePLY(t, PLYLittleEndian, binary.LittleEndian)
	truncated = truncated[:len(truncated)-5]

	tests := []struct {
		name  string
		input string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"no end_header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"missing format", "ply\nelement vertex 0\nend_header\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"property before element", "ply\nformat ascii 1.0\nproperty float x\nend_header\n"},
		{"bad element count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\n" +
			"element face 1\nproperty list uchar int vertex_indices\nend_header\n0\n1\n2\n3 0 1 3\n"},
		{"degenerate face", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\n" +
			"element face 1\nproperty list uchar int vertex_indices\nend_header\n0\n1\n2 0 1\n"},
		{"short ascii body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nend_header\n0 0\n1\n"},
		{"truncated binary body", string(truncated)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePLY(strings.NewReader(tt.input)); !errors.Is(err, ErrInvalidPLY) {
				t.Errorf("Expected ErrInvalidPLY, got %v", err)
			}
		})
	}
}

func TestLoadPLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.ply")
	if err := os.WriteFile(path, []byte(asciiSquarePLY), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	if data.TriangleCount() != 3 {
		t.Errorf("Expected 3 triangles, got %d", data.TriangleCount())
	}

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}
