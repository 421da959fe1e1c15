package cts

import (
	stdmath "math"
	"math/rand/v2"

	"github.com/ajroetker/rshwy/rs"
)

// Extremes are the special operands mixed into generated inputs.
var Extremes = []float32{
	0,
	float32(stdmath.Copysign(0, -1)),
	float32(stdmath.Inf(1)),
	float32(stdmath.Inf(-1)),
	float32(stdmath.NaN()),
	stdmath.MaxFloat32,
	-stdmath.MaxFloat32,
	stdmath.SmallestNonzeroFloat32,
	-stdmath.SmallestNonzeroFloat32,
	0x1p-126,
	stdmath.Nextafter32(0x1p-126, 0),
	1,
	-1,
	1e30,
	1e-30,
}

// RandomFloats returns n lanes drawn from r. Half the lanes are random
// finite bit patterns covering every binade; the rest are uniform in
// [-1e6, 1e6]. With includeExtremes, Extremes are placed at distinct random
// positions.
func RandomFloats(r *rand.Rand, n int, includeExtremes bool) []float32 {
	out := make([]float32, n)
	for i := range out {
		if r.IntN(2) == 0 {
			out[i] = randomFinite(r)
		} else {
			out[i] = float32((r.Float64()*2 - 1) * 1e6)
		}
	}
	if includeExtremes {
		for i, pos := range r.Perm(n)[:min(n, len(Extremes))] {
			out[pos] = Extremes[i]
		}
	}
	return out
}

func randomFinite(r *rand.Rand) float32 {
	for {
		f := stdmath.Float32frombits(r.Uint32())
		if !stdmath.IsNaN(float64(f)) && !stdmath.IsInf(float64(f), 0) {
			return f
		}
	}
}

// PackLanes groups flat lanes into cells of T. len(lanes) must be a
// multiple of the element's lane count.
func PackLanes[T rs.Vector](lanes []float32) []T {
	w := rs.ElementOf[T]().Lanes()
	out := make([]T, len(lanes)/w)
	for i := range out {
		out[i] = rs.FromLanes[T](lanes[i*w : (i+1)*w])
	}
	return out
}

// FlattenLanes is the inverse of PackLanes.
func FlattenLanes[T rs.Vector](cells []T) []float32 {
	w := rs.ElementOf[T]().Lanes()
	out := make([]float32, 0, len(cells)*w)
	for _, c := range cells {
		out = append(out, rs.LanesOf(c)...)
	}
	return out
}
