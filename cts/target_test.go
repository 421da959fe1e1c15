package cts

import (
	stdmath "math"
	"testing"
)

func nextUp(v float32, steps int) float32 {
	for range steps {
		v = stdmath.Nextafter32(v, float32(stdmath.Inf(1)))
	}
	return v
}

func TestULP32(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{1, 0x1p-23},
		{1.5, 0x1p-23},
		{5, 0x1p-21},
		{-5, 0x1p-21},
		{0, 0x1p-149},
		{1e-40, 0x1p-149},
		{0x1p-126, 0x1p-149},
		{stdmath.MaxFloat32, 0x1p104},
		{1e300, 0x1p104},
	}
	for _, tt := range tests {
		if got := ULP32(tt.v); got != tt.want {
			t.Errorf("ULP32(%g) = %g, want %g", tt.v, got, tt.want)
		}
	}
}

func TestFloatyCouldBe(t *testing.T) {
	full := Target{Precision: Full}
	relaxed := Target{Precision: Relaxed}
	inf := float32(stdmath.Inf(1))
	nan := float32(stdmath.NaN())

	tests := []struct {
		name   string
		target Target
		ref    float64
		actual float32
		want   bool
	}{
		{"exact", full, 5, 5, true},
		{"4 ulp", full, 5, nextUp(5, 4), true},
		{"5 ulp", full, 5, nextUp(5, 5), false},
		{"5 ulp relaxed", relaxed, 5, nextUp(5, 5), true},
		{"129 ulp relaxed", relaxed, 5, nextUp(5, 129), false},
		{"nan expected", full, stdmath.NaN(), nan, true},
		{"nan expected, finite actual", full, stdmath.NaN(), 1, false},
		{"nan actual", full, 1, nan, false},
		{"inf expected", full, stdmath.Inf(1), inf, true},
		{"inf expected, max actual", full, stdmath.Inf(1), stdmath.MaxFloat32, false},
		{"overflow to inf", full, stdmath.MaxFloat32 * 1.5, inf, true},
		{"inf for finite", full, 1e30, inf, false},
		{"denormal flushed, full", full, 1e-40, 0, false},
		{"denormal flushed, relaxed", relaxed, 1e-40, 0, true},
		{"normal flushed, relaxed", relaxed, 1e-30, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.target.Expect(tt.ref)
			if got := f.CouldBe(tt.actual); got != tt.want {
				t.Errorf("Expect(%g).CouldBe(%g) = %v, want %v (%s)", tt.ref, tt.actual, got, tt.want, f)
			}
		})
	}
}

func TestULPError(t *testing.T) {
	if got := ULPError(5, nextUp(5, 3)); got != 3 {
		t.Errorf("ULPError(5, 5+3ulp) = %g, want 3", got)
	}
	if got := ULPError(stdmath.NaN(), float32(stdmath.NaN())); got != 0 {
		t.Errorf("ULPError(NaN, NaN) = %g, want 0", got)
	}
	if got := ULPError(stdmath.Inf(1), 1); !stdmath.IsInf(got, 1) {
		t.Errorf("ULPError(Inf, 1) = %g, want +Inf", got)
	}
}

func TestParsePrecision(t *testing.T) {
	tests := []struct {
		in      string
		want    Precision
		wantErr bool
	}{
		{"", Full, false},
		{"full", Full, false},
		{" Relaxed ", Relaxed, false},
		{"fast", Full, true},
	}
	for _, tt := range tests {
		got, err := ParsePrecision(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePrecision(%q) = %v, %v", tt.in, got, err)
		}
	}
	if Full.String() != "full" || Relaxed.String() != "relaxed" {
		t.Errorf("String() = %q, %q", Full, Relaxed)
	}
	if (Target{Precision: Relaxed}).ULP() != HypotRelaxedULP {
		t.Errorf("relaxed ULP = %d", Target{Precision: Relaxed}.ULP())
	}
}
