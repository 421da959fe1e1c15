package math

import (
	stdmath "math"
	"math/rand/v2"
	"testing"

	"github.com/ajroetker/rshwy/hwy"
)

// ulpDiff32 returns the distance in float32 units in the last place.
func ulpDiff32(a, b float32) int64 {
	ia := int64(stdmath.Float32bits(a))
	ib := int64(stdmath.Float32bits(b))
	return max(ia-ib, ib-ia)
}

// randomFinite32 draws a finite float32 from uniformly random bit patterns.
func randomFinite32(r *rand.Rand) float32 {
	for {
		f := stdmath.Float32frombits(r.Uint32())
		if !stdmath.IsNaN(float64(f)) && !stdmath.IsInf(float64(f), 0) {
			return f
		}
	}
}

func TestHypot_F32(t *testing.T) {
	tests := []struct {
		name string
		x    float32
		y    float32
		want float32
	}{
		{"hypot(3, 4) = 5", 3.0, 4.0, 5.0},
		{"hypot(5, 12) = 13", 5.0, 12.0, 13.0},
		{"hypot(8, 15) = 17", 8.0, 15.0, 17.0},
		{"hypot(0, 0) = 0", 0.0, 0.0, 0.0},
		{"hypot(1, 0) = 1", 1.0, 0.0, 1.0},
		{"hypot(0, 1) = 1", 0.0, 1.0, 1.0},
		{"hypot(-3, 4) = 5", -3.0, 4.0, 5.0},
		{"hypot(3, -4) = 5", 3.0, -4.0, 5.0},
		{"hypot(-3, -4) = 5", -3.0, -4.0, 5.0},
		{"hypot(1, 1) = sqrt(2)", 1.0, 1.0, float32(stdmath.Sqrt(2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := hwy.Load([]float32{tt.x, tt.x, tt.x, tt.x})
			y := hwy.Load([]float32{tt.y, tt.y, tt.y, tt.y})
			result := Hypot(x, y)

			for i, got := range result.Data() {
				if ulpDiff32(got, tt.want) > 2 {
					t.Errorf("Hypot(%v, %v) lane %d = %v, want %v", tt.x, tt.y, i, got, tt.want)
				}
			}
		})
	}
}

func TestHypot_F64(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		y    float64
		want float64
	}{
		{"hypot(3, 4) = 5", 3.0, 4.0, 5.0},
		{"hypot(5, 12) = 13", 5.0, 12.0, 13.0},
		{"hypot(7, 24) = 25", 7.0, 24.0, 25.0},
		{"hypot(0, 0) = 0", 0.0, 0.0, 0.0},
		{"hypot(-3, -4) = 5", -3.0, -4.0, 5.0},
		{"hypot(1, 1) = sqrt(2)", 1.0, 1.0, stdmath.Sqrt(2)},
		{"hypot(1e300, 1e300)", 1e300, 1e300, 1e300 * stdmath.Sqrt(2)},
		{"hypot(1e-300, 1e-300)", 1e-300, 1e-300, 1e-300 * stdmath.Sqrt(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := hwy.Load([]float64{tt.x, tt.x})
			y := hwy.Load([]float64{tt.y, tt.y})
			got := Hypot(x, y).Data()[0]

			if stdmath.Abs(got-tt.want) > 1e-15*stdmath.Max(1, tt.want) {
				t.Errorf("Hypot(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHypot_OverflowUnderflow_F32(t *testing.T) {
	tests := []struct {
		name string
		v    float32
	}{
		{"large", 1e30},
		{"max", stdmath.MaxFloat32 / 2},
		{"small", 1e-30},
		{"min normal", 0x1p-126},
		{"denormal", 0x1p-140},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hypot(hwy.Load([]float32{tt.v}), hwy.Load([]float32{tt.v})).Data()[0]
			want := float32(float64(tt.v) * stdmath.Sqrt2)

			if stdmath.IsInf(float64(got), 0) || got == 0 {
				t.Fatalf("Hypot(%g, %g) = %g, want %g", tt.v, tt.v, got, want)
			}
			if ulpDiff32(got, want) > 2 {
				t.Errorf("Hypot(%g, %g) = %g, want %g (%d ulp)", tt.v, tt.v, got, want, ulpDiff32(got, want))
			}
		})
	}
}

func TestHypot_SpecialCases(t *testing.T) {
	nan := stdmath.NaN()
	inf := stdmath.Inf(1)
	tests := []struct {
		name    string
		x       float64
		y       float64
		wantInf bool
		wantNaN bool
	}{
		{"+Inf, any", inf, 5.0, true, false},
		{"any, +Inf", 5.0, inf, true, false},
		{"-Inf, any", -inf, 5.0, true, false},
		{"any, -Inf", 5.0, -inf, true, false},
		{"+Inf, -Inf", inf, -inf, true, false},
		{"+Inf, NaN", inf, nan, true, false},
		{"NaN, -Inf", nan, -inf, true, false},
		{"NaN, finite", nan, 5.0, false, true},
		{"finite, NaN", 5.0, nan, false, true},
		{"NaN, NaN", nan, nan, false, true},
		{"NaN, 0", nan, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hypot(hwy.Load([]float64{tt.x}), hwy.Load([]float64{tt.y})).Data()[0]

			if tt.wantInf && !stdmath.IsInf(got, 1) {
				t.Errorf("Hypot(%v, %v) = %v, want +Inf", tt.x, tt.y, got)
			}
			if tt.wantNaN && !stdmath.IsNaN(got) {
				t.Errorf("Hypot(%v, %v) = %v, want NaN", tt.x, tt.y, got)
			}
		})
	}
}

func TestHypot_MatchesBase(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	lanes := hwy.MaxLanes[float32]()
	xs := make([]float32, lanes)
	ys := make([]float32, lanes)

	for iter := 0; iter < 2000; iter++ {
		for i := range lanes {
			xs[i] = randomFinite32(r)
			ys[i] = randomFinite32(r)
		}
		got := Hypot(hwy.Load(xs), hwy.Load(ys)).Data()
		want := BaseHypot(hwy.Load(xs), hwy.Load(ys)).Data()
		for i := range got {
			if d := ulpDiff32(got[i], want[i]); d > 2 {
				t.Fatalf("Hypot(%g, %g) = %g, BaseHypot = %g (%d ulp)", xs[i], ys[i], got[i], want[i], d)
			}
		}
	}
}

func TestHypot_Symmetry(t *testing.T) {
	xs := []float32{3, -1e30, 1e-30, 0, 7.5}
	ys := []float32{4, 2e-3, -1e10, -0.25, 7.5}

	for i := range xs {
		a := Hypot(hwy.Load(xs[i:i+1]), hwy.Load(ys[i:i+1])).Data()[0]
		b := Hypot(hwy.Load(ys[i:i+1]), hwy.Load(xs[i:i+1])).Data()[0]
		if a != b {
			t.Errorf("Hypot(%g, %g) = %g but Hypot(%g, %g) = %g", xs[i], ys[i], a, ys[i], xs[i], b)
		}
	}
}

func TestHypot_LaneCount(t *testing.T) {
	for n := 1; n <= 4; n++ {
		x := hwy.Load(make([]float32, n))
		y := hwy.Set[float32](1)
		if got := Hypot(x, y).NumLanes(); got != n {
			t.Errorf("Hypot with %d-lane x: got %d lanes", n, got)
		}
	}
}

func TestHypotSlice(t *testing.T) {
	n := hwy.MaxLanes[float32]()*2 + 3
	x := make([]float32, n)
	y := make([]float32, n)
	for i := range n {
		x[i] = float32(3 * (i + 1))
		y[i] = float32(4 * (i + 1))
	}
	dst := make([]float32, n)
	HypotSlice(dst, x, y)

	for i := range n {
		if want := float32(5 * (i + 1)); dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestHypotSlice_ShortDst(t *testing.T) {
	dst := make([]float64, 1)
	HypotSlice(dst, []float64{3, 6}, []float64{4, 8})
	if dst[0] != 5 {
		t.Errorf("dst[0] = %v, want 5", dst[0])
	}
}

func BenchmarkHypot_F32(b *testing.B) {
	x := hwy.Set[float32](3.0)
	y := hwy.Set[float32](4.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Hypot(x, y)
	}
}

func BenchmarkBaseHypot_F32(b *testing.B) {
	x := hwy.Set[float32](3.0)
	y := hwy.Set[float32](4.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BaseHypot(x, y)
	}
}

func BenchmarkHypotSlice_F32(b *testing.B) {
	x := make([]float32, 4096)
	y := make([]float32, 4096)
	dst := make([]float32, 4096)
	for i := range x {
		x[i] = float32(i)
		y[i] = float32(i + 1)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		HypotSlice(dst, x, y)
	}
}
