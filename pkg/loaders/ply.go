package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidPLY is returned for PLY input that cannot be decoded
var ErrInvalidPLY = errors.New("invalid PLY data")

// PLY formats
const (
	PLYASCII        = "ascii"
	PLYLittleEndian = "binary_little_endian"
	PLYBigEndian    = "binary_big_endian"
)

// PLYHeader represents the parsed header of a PLY file
type PLYHeader struct {
	Format   string // PLYASCII, PLYLittleEndian or PLYBigEndian
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block ("vertex", "face", ...) in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData holds the mesh read from a PLY file. Polygons are split into
// triangle fans, so Faces always holds three indices per triangle.
type PLYData struct {
	Vertices []core.Vec3
	Faces    []int
}

// TriangleCount returns the number of triangles in Faces
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY mesh file
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := DecodePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// DecodePLY reads a PLY mesh in any of the three standard formats.
// Elements other than vertex and face are skipped.
func DecodePLY(r io.Reader) (*PLYData, error) {
	br := bufio.NewReader(r)
	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.Format {
	case PLYASCII:
		values = newASCIIValueReader(br)
	case PLYLittleEndian:
		values = &binaryValueReader{r: br, order: binary.LittleEndian}
	case PLYBigEndian:
		values = &binaryValueReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	data := &PLYData{}
	for _, elem := range header.Elements {
		for i := 0; i < elem.Count; i++ {
			var err error
			switch elem.Name {
			case "vertex":
				err = data.readVertex(values, elem.Properties)
			case "face":
				err = data.readFace(values, elem.Properties)
			default:
				err = skipElement(values, elem.Properties)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %s %d: %v", ErrInvalidPLY, elem.Name, i, err)
			}
		}
	}

	for _, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, fmt.Errorf("%w: face index %d out of range (%d vertices)", ErrInvalidPLY, index, len(data.Vertices))
		}
	}
	return data, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	current := -1

	for lineNum := 0; ; lineNum++ {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("%w: header ended before end_header", ErrInvalidPLY)
		}
		parts := strings.Fields(line)

		if lineNum == 0 {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
			}
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("%w: missing format line", ErrInvalidPLY)
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: malformed format line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: malformed element line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = len(header.Elements) - 1
		case "property":
			if current < 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			header.Elements[current].Properties = append(header.Elements[current].Properties, prop)
		}
	}
}

// parsePLYProperty parses the fields after "property"
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func (d *PLYData) readVertex(values plyValueReader, props []PLYProperty) error {
	var p [3]float64
	for _, prop := range props {
		if prop.IsList {
			if err := skipList(values, prop); err != nil {
				return err
			}
			continue
		}
		v, err := values.Read(prop.Type)
		if err != nil {
			return err
		}
		switch prop.Name {
		case "x":
			p[0] = v
		case "y":
			p[1] = v
		case "z":
			p[2] = v
		}
	}
	d.Vertices = append(d.Vertices, core.NewVec3(p[0], p[1], p[2]))
	return nil
}

func (d *PLYData) readFace(values plyValueReader, props []PLYProperty) error {
	for _, prop := range props {
		if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
			continue
		}

		count, err := readCount(values, prop.ListType)
		if err != nil {
			return err
		}
		if count < 3 {
			return fmt.Errorf("face has %d vertices", count)
		}
		indices := make([]int, count)
		for k := range indices {
			v, err := values.Read(prop.DataType)
			if err != nil {
				return err
			}
			indices[k] = int(v)
		}
		for k := 1; k+1 < count; k++ {
			d.Faces = append(d.Faces, indices[0], indices[k], indices[k+1])
		}
	}
	return nil
}

func skipElement(values plyValueReader, props []PLYProperty) error {
	for _, prop := range props {
		if err := skipProperty(values, prop); err != nil {
			return err
		}
	}
	return nil
}

func skipProperty(values plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.Read(prop.Type)
	return err
}

func skipList(values plyValueReader, prop PLYProperty) error {
	count, err := readCount(values, prop.ListType)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if _, err := values.Read(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

func readCount(values plyValueReader, listType string) (int, error) {
	v, err := values.Read(listType)
	if err != nil {
		return 0, err
	}
	if v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("invalid list count %g", v)
	}
	return int(v), nil
}

// plyValueReader reads one scalar of a PLY data type
type plyValueReader interface {
	Read(dataType string) (float64, error)
}

// asciiValueReader reads whitespace-separated values; line breaks carry no meaning
type asciiValueReader struct {
	scanner *bufio.Scanner
}

func newASCIIValueReader(r io.Reader) *asciiValueReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &asciiValueReader{scanner: scanner}
}

func (a *asciiValueReader) Read(dataType string) (float64, error) {
	if typeSize(dataType) == 0 {
		return 0, fmt.Errorf("unsupported data type %q", dataType)
	}
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

// binaryValueReader reads fixed-size values in the given byte order
type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) Read(dataType string) (float64, error) {
	size := typeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type %q", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

// typeSize returns the size in bytes of a PLY data type, or 0 if unknown
func typeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
