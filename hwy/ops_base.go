// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import "math"

// This file provides the pure Go (scalar) implementations of the lane
// operations. Binary operations process min(len(a), len(b)) lanes, so a
// vector loaded from a short slice stays short through the whole pipeline.

// Load creates a vector by loading up to MaxLanes[T]() elements from src.
func Load[T Floats](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Floats](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Set creates a vector with all lanes set to the same value.
func Set[T Floats](value T) Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// SetN creates a vector of n lanes (capped at MaxLanes) set to value.
// Use it to build constants that match the width of a short vector.
func SetN[T Floats](value T, n int) Vec[T] {
	n = max(0, min(n, MaxLanes[T]()))
	data := make([]T, n)
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Floats]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

func binary[T Floats](a, b Vec[T], fn func(x, y T) T) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fn(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

func unary[T Floats](v Vec[T], fn func(x T) T) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = fn(x)
	}
	return Vec[T]{data: result}
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x * y })
}

// Div performs element-wise division.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x / y })
}

// MulAdd computes a*b + c per lane. The product is rounded before the add;
// the scalar fallback does not fuse.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	return Add(Mul(a, b), c)
}

// Abs computes absolute value. The sign bit of NaN lanes is cleared too.
func Abs[T Floats](v Vec[T]) Vec[T] {
	return unary(v, func(x T) T { return T(math.Abs(float64(x))) })
}

// Sqrt computes square root. Rounding the float64 root to float32 is
// correctly rounded, so float32 lanes match a native sqrtps.
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	return unary(v, func(x T) T { return T(math.Sqrt(float64(x))) })
}

// Min returns the lane-wise minimum. If either lane is NaN the result is
// the second operand's lane, matching x86 minps.
func Min[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T {
		if x < y {
			return x
		}
		return y
	})
}

// Max returns the lane-wise maximum with the same NaN rule as Min.
func Max[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T {
		if x > y {
			return x
		}
		return y
	})
}

// ReduceMax returns the largest lane. NaN lanes are skipped unless all lanes are NaN.
func ReduceMax[T Floats](v Vec[T]) T {
	if len(v.data) == 0 {
		return 0
	}
	m := v.data[0]
	for _, x := range v.data[1:] {
		if x > m || m != m {
			m = x
		}
	}
	return m
}

func compare[T Floats](a, b Vec[T], fn func(x, y T) bool) Mask[T] {
	n := min(len(a.data), len(b.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = fn(a.data[i], b.data[i])
	}
	return Mask[T]{bits: bits}
}

// Equal performs element-wise equality comparison.
func Equal[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x == y })
}

// LessThan performs element-wise less-than comparison.
func LessThan[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x < y })
}

// GreaterThan performs element-wise greater-than comparison.
func GreaterThan[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x > y })
}

// IsNaN returns a mask indicating which lanes contain NaN values.
func IsNaN[T Floats](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = x != x
	}
	return Mask[T]{bits: bits}
}

// IsInf returns a mask indicating which lanes contain infinity.
// The sign parameter: 0 = either, > 0 = +Inf only, < 0 = -Inf only.
func IsInf[T Floats](v Vec[T], sign int) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = math.IsInf(float64(x), sign)
	}
	return Mask[T]{bits: bits}
}

// IsFinite returns a mask indicating which lanes are neither NaN nor infinity.
func IsFinite[T Floats](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		f := float64(x)
		bits[i] = !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return Mask[T]{bits: bits}
}

// MaskOr returns the lane-wise union of two masks.
func MaskOr[T Floats](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.bits[i] || b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// MaskAndNot returns lanes active in b but not in a.
func MaskAndNot[T Floats](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = !a.bits[i] && b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// IfThenElse performs conditional selection.
func IfThenElse[T Floats](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(b.data), min(len(a.data), len(mask.bits)))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// IfThenElseZero returns a where mask is true, zero otherwise.
func IfThenElseZero[T Floats](mask Mask[T], a Vec[T]) Vec[T] {
	n := min(len(a.data), len(mask.bits))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		}
	}
	return Vec[T]{data: result}
}
