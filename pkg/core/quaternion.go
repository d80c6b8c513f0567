package core

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Quaternion is a rotation quaternion backed by gonum's quat.Number
type Quaternion quat.Number

// IdentityQuaternion returns the rotation that leaves vectors unchanged
func IdentityQuaternion() Quaternion {
	return Quaternion{Real: 1}
}

// NewQuaternionAxisAngle creates a rotation of angle radians about axis
func NewQuaternionAxisAngle(axis Vec3, angle float64) Quaternion {
	if angle == 0 || axis.LengthSquared() == 0 {
		return IdentityQuaternion()
	}
	return Quaternion(r3.NewRotation(angle, r3.Vec(axis)))
}

// Mul composes two rotations: the result applies other first, then q
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(q), quat.Number(other)))
}

// Normalize returns the unit quaternion; the zero quaternion becomes identity
func (q Quaternion) Normalize() Quaternion {
	n := quat.Abs(quat.Number(q))
	if n == 0 {
		return IdentityQuaternion()
	}
	return Quaternion(quat.Scale(1/n, quat.Number(q)))
}

// Rotate rotates v by the quaternion
func (q Quaternion) Rotate(v Vec3) Vec3 {
	return Vec3(r3.Rotation(q.Normalize()).Rotate(r3.Vec(v)))
}

// Mat4 returns the rotation as a 4x4 matrix
func (q Quaternion) Mat4() Mat4 {
	x := q.Rotate(NewVec3(1, 0, 0))
	y := q.Rotate(NewVec3(0, 1, 0))
	z := q.Rotate(NewVec3(0, 0, 1))
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	}
}
