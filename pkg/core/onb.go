package core

import "math"

// ONB is an orthonormal basis with W as the "up" axis of the local frame
type ONB struct {
	U, V, W Vec3
}

// NewONB builds an orthonormal basis around w, which need not be normalized
func NewONB(w Vec3) ONB {
	w = w.Normalize()

	// Find a vector that is not parallel to w
	var a Vec3
	if math.Abs(w.X) > 0.1 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}

	u := a.Cross(w).Normalize()
	v := w.Cross(u)
	return ONB{U: u, V: v, W: w}
}

// Local converts a vector from the local frame into world space
func (b ONB) Local(a Vec3) Vec3 {
	return b.U.Multiply(a.X).Add(b.V.Multiply(a.Y)).Add(b.W.Multiply(a.Z))
}

// ToLocal converts a world space vector into the local frame
func (b ONB) ToLocal(a Vec3) Vec3 {
	return NewVec3(a.Dot(b.U), a.Dot(b.V), a.Dot(b.W))
}
