package core

import "math"

// SolveQuadratic returns the real roots of a·t² + b·t + c = 0 in ascending order.
// A zero discriminant yields the double root twice. The second root is
// computed as c/q to avoid cancellation between -b and √disc.
func SolveQuadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	if a == 0 {
		if b == 0 {
			return 0, 0, false
		}
		t := -c / b
		return t, t, isFinite(t)
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 || math.IsNaN(discriminant) {
		return 0, 0, false
	}
	if discriminant == 0 {
		t := -0.5 * b / a
		return t, t, isFinite(t)
	}

	sqrtD := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = -0.5 * (b - sqrtD)
	} else {
		q = -0.5 * (b + sqrtD)
	}

	t0 = q / a
	t1 = c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if !isFinite(t0) || !isFinite(t1) {
		return 0, 0, false
	}
	return t0, t1, true
}
