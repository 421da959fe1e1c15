package math

import (
	stdmath "math"

	"github.com/ajroetker/rshwy/hwy"
)

// Hypot computes sqrt(x^2 + y^2) for each pair of lanes.
//
// Algorithm: with big = max(|x|, |y|) and small = min(|x|, |y|), the
// result is big * sqrt(1 + r*r) where r = small/big lies in [0, 1], so
// neither the square nor the sum can leave the representable range.
// Lanes where big == 0 produce 0. Infinite operands win over NaN.
//
// The result has min(x.NumLanes(), y.NumLanes()) lanes.
func Hypot[T hwy.Floats](x, y hwy.Vec[T]) hwy.Vec[T] {
	n := min(x.NumLanes(), y.NumLanes())
	zero := hwy.SetN(T(0), n)
	one := hwy.SetN(T(1), n)

	ax := hwy.Abs(x)
	ay := hwy.Abs(y)
	big := hwy.Max(ax, ay)
	small := hwy.Min(ax, ay)

	r := hwy.Div(small, big)
	result := hwy.Mul(big, hwy.Sqrt(hwy.MulAdd(r, r, one)))
	// 0/0 lanes are NaN above; both operands were zero.
	result = hwy.IfThenElseZero(hwy.GreaterThan(big, zero), result)

	nan := hwy.MaskOr(hwy.IsNaN(x), hwy.IsNaN(y))
	result = hwy.IfThenElse(nan, hwy.SetN(T(stdmath.NaN()), n), result)

	inf := hwy.MaskOr(hwy.IsInf(x, 0), hwy.IsInf(y, 0))
	return hwy.IfThenElse(inf, hwy.SetN(T(stdmath.Inf(1)), n), result)
}

// BaseHypot applies stdmath.Hypot to each pair of lanes independently.
// It is the portable fallback and serves as an oracle for Hypot.
func BaseHypot[T hwy.Floats](x, y hwy.Vec[T]) hwy.Vec[T] {
	xData := x.Data()
	yData := y.Data()
	n := min(len(xData), len(yData))
	result := make([]T, n)
	for i := range n {
		result[i] = T(stdmath.Hypot(float64(xData[i]), float64(yData[i])))
	}
	return hwy.Load(result)
}

// HypotSlice writes Hypot(x[i], y[i]) into dst[i] for every i below
// min(len(dst), len(x), len(y)).
func HypotSlice[T hwy.Floats](dst, x, y []T) {
	n := min(len(dst), len(x), len(y))
	lanes := hwy.MaxLanes[T]()

	hwy.ProcessWithTail[T](n,
		func(offset int) {
			end := offset + lanes
			hwy.Store(Hypot(hwy.Load(x[offset:end]), hwy.Load(y[offset:end])), dst[offset:end])
		},
		func(offset, count int) {
			end := offset + count
			hwy.Store(Hypot(hwy.Load(x[offset:end]), hwy.Load(y[offset:end])), dst[offset:end])
		},
	)
}
