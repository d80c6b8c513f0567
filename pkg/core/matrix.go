package core

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularMatrix is returned when a non-invertible matrix is inverted
var ErrSingularMatrix = errors.New("matrix is singular")

// Mat4 is a row-major 4x4 affine transformation matrix
type Mat4 [16]float64

// Identity4 returns the identity matrix
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate4 returns a translation matrix
func Translate4(offset Vec3) Mat4 {
	return Mat4{
		1, 0, 0, offset.X,
		0, 1, 0, offset.Y,
		0, 0, 1, offset.Z,
		0, 0, 0, 1,
	}
}

// Scale4 returns a non-uniform scale matrix
func Scale4(scale Vec3) Mat4 {
	return Mat4{
		scale.X, 0, 0, 0,
		0, scale.Y, 0, 0,
		0, 0, scale.Z, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column
func (m Mat4) At(row, col int) float64 {
	return m[row*4+col]
}

// Mul returns the matrix product m·other
func (m Mat4) Mul(other Mat4) Mat4 {
	var product mat.Dense
	product.Mul(m.dense(), other.dense())
	return fromDense(&product)
}

// Inverse returns the inverse matrix, or ErrSingularMatrix
func (m Mat4) Inverse() (Mat4, error) {
	a := m.dense()
	if det := mat.Det(a); det == 0 || math.IsNaN(det) {
		return Mat4{}, ErrSingularMatrix
	}

	var inverse mat.Dense
	if err := inverse.Inverse(a); err != nil {
		return Mat4{}, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	return fromDense(&inverse), nil
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			t[col*4+row] = m[row*4+col]
		}
	}
	return t
}

// TransformPoint applies the full affine transform, dividing by w
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w == 1 || w == 0 {
		return Vec3{X: x, Y: y, Z: z}
	}
	return Vec3{X: x / w, Y: y / w, Z: z / w}
}

// TransformVector applies the linear part only (no translation, no divide)
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// TransformNormal transforms a surface normal. m must be the inverse of the
// matrix that transforms points, since normals transform by its transpose.
func (m Mat4) TransformNormal(n Vec3) Vec3 {
	return Vec3{
		X: m[0]*n.X + m[4]*n.Y + m[8]*n.Z,
		Y: m[1]*n.X + m[5]*n.Y + m[9]*n.Z,
		Z: m[2]*n.X + m[6]*n.Y + m[10]*n.Z,
	}
}

// MaxScale returns the largest column length of the linear part, which bounds
// how much the matrix can stretch any direction when there is no shear.
func (m Mat4) MaxScale() float64 {
	sx := NewVec3(m[0], m[4], m[8]).Length()
	sy := NewVec3(m[1], m[5], m[9]).Length()
	sz := NewVec3(m[2], m[6], m[10]).Length()
	return max(sx, sy, sz)
}

func (m Mat4) dense() *mat.Dense {
	data := make([]float64, 16)
	copy(data, m[:])
	return mat.NewDense(4, 4, data)
}

func fromDense(d mat.Matrix) Mat4 {
	var m Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[row*4+col] = d.At(row, col)
		}
	}
	return m
}
