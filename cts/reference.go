package cts

import (
	stdmath "math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Reference computes hypot(x[i], y[i]) in double precision for every lane.
//
// float32 operands squared in float64 can neither overflow nor underflow,
// so the plain magnitude sqrt(x²+y²) is exact to well below a float32 ULP.
// Infinite operands are fixed up to +Inf after the fact, since the
// magnitude of (Inf, NaN) is NaN.
//
// dst, x and y must have equal lengths.
func Reference(dst []float64, x, y []float32) {
	if len(x) != len(dst) || len(y) != len(dst) {
		panic("cts: reference slice length mismatch")
	}
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i := range x {
		xs[i] = float64(x[i])
		ys[i] = float64(y[i])
	}

	vecmath.Magnitude(dst, xs, ys)

	for i := range dst {
		if stdmath.IsInf(xs[i], 0) || stdmath.IsInf(ys[i], 0) {
			dst[i] = stdmath.Inf(1)
		}
	}
}
