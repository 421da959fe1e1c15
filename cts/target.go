package cts

import (
	"fmt"
	stdmath "math"
	"strings"
)

// Precision selects the accuracy contract kernels are checked against.
type Precision int

const (
	// Full is the default IEEE-conformant contract.
	Full Precision = iota
	// Relaxed widens the ULP budget and allows denormal results to flush to zero.
	Relaxed
)

// ULP budgets for hypot.
const (
	HypotULP        = 4
	HypotRelaxedULP = 128
)

func (p Precision) String() string {
	switch p {
	case Full:
		return "full"
	case Relaxed:
		return "relaxed"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision parses "full" or "relaxed".
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return Full, nil
	case "relaxed":
		return Relaxed, nil
	default:
		return Full, fmt.Errorf("cts: unknown precision %q", s)
	}
}

// Target describes how results are compared with the reference.
type Target struct {
	Precision Precision
}

// ULP returns the hypot error budget in float32 ULPs.
func (t Target) ULP() int {
	if t.Precision == Relaxed {
		return HypotRelaxedULP
	}
	return HypotULP
}

// Expect builds the acceptable range around a double-precision reference.
func (t Target) Expect(ref float64) Floaty {
	f := Floaty{Value: ref, ULP: t.ULP(), FlushToZero: t.Precision == Relaxed}
	if stdmath.IsNaN(ref) || stdmath.IsInf(ref, 0) {
		f.Min, f.Max = ref, ref
		return f
	}
	d := float64(f.ULP) * ULP32(ref)
	f.Min, f.Max = ref-d, ref+d
	return f
}

// Floaty is an expected float32 result: a reference value and the closed
// interval of acceptable results around it.
type Floaty struct {
	Value       float64
	Min, Max    float64
	ULP         int
	FlushToZero bool
}

// CouldBe reports whether a is an acceptable result.
func (f Floaty) CouldBe(a float32) bool {
	v := float64(a)
	switch {
	case stdmath.IsNaN(f.Value):
		return stdmath.IsNaN(v)
	case stdmath.IsNaN(v):
		return false
	case stdmath.IsInf(f.Value, 0):
		return v == f.Value
	}
	if v >= f.Min && v <= f.Max {
		return true
	}
	// Overflow to infinity is acceptable when the range leaves float32.
	if stdmath.IsInf(v, 1) && f.Max > stdmath.MaxFloat32 {
		return true
	}
	if stdmath.IsInf(v, -1) && f.Min < -stdmath.MaxFloat32 {
		return true
	}
	return f.FlushToZero && v == 0 && stdmath.Abs(f.Value) < minNormal32
}

func (f Floaty) String() string {
	if stdmath.IsNaN(f.Value) || stdmath.IsInf(f.Value, 0) {
		return fmt.Sprintf("%v", f.Value)
	}
	return fmt.Sprintf("%14.8g within %d ulp [%g, %g]", f.Value, f.ULP, f.Min, f.Max)
}

const (
	minNormal32     = 0x1p-126
	minDenormal32   = 0x1p-149
	float32MantBits = 24
)

// ULP32 returns the spacing of float32 values at the magnitude of v.
// Below the normal range it is the denormal spacing; at or beyond
// MaxFloat32 it is the spacing of the top binade.
func ULP32(v float64) float64 {
	a := stdmath.Abs(v)
	if a < minNormal32 {
		return minDenormal32
	}
	if a > stdmath.MaxFloat32 {
		a = stdmath.MaxFloat32
	}
	_, exp := stdmath.Frexp(a)
	return stdmath.Ldexp(1, exp-float32MantBits)
}

// ULPError returns |a - ref| in float32 ULPs at ref. Disagreements on NaN
// or infinity report +Inf.
func ULPError(ref float64, a float32) float64 {
	v := float64(a)
	switch {
	case stdmath.IsNaN(ref) && stdmath.IsNaN(v):
		return 0
	case stdmath.IsNaN(ref) || stdmath.IsNaN(v):
		return stdmath.Inf(1)
	case stdmath.IsInf(ref, 0) || stdmath.IsInf(v, 0):
		if ref == v {
			return 0
		}
		return stdmath.Inf(1)
	}
	return stdmath.Abs(v-ref) / ULP32(ref)
}
