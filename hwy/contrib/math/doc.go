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

// Package math provides lane-wise math functions over hwy vectors.
// This package corresponds to Google Highway's hwy/contrib/math directory.
//
// # Functions
//
//   - Hypot(x, y Vec[T]) Vec[T] - sqrt(x² + y²) without intermediate overflow or underflow
//   - BaseHypot(x, y Vec[T]) Vec[T] - per-lane stdlib fallback, used as an oracle
//   - HypotSlice(dst, x, y []T) - bulk form over slices
//
// # Accuracy
//
// Hypot is evaluated as big*sqrt(1 + (small/big)²). For float32 lanes the
// error stays under 2 ULP across the whole finite range, including
// denormals.
//
// Special values follow IEEE 754 / C99 Annex F:
//   - hypot(±Inf, y) = +Inf, even when y is NaN
//   - hypot(NaN, y) = NaN for finite y
//   - hypot(x, y) = hypot(y, x) = hypot(-x, y)
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/rshwy/hwy"
//	    "github.com/ajroetker/rshwy/hwy/contrib/math"
//	)
//
//	x := hwy.Load([]float32{3, 5, 8, 7})
//	y := hwy.Load([]float32{4, 12, 15, 24})
//	r := math.Hypot(x, y) // [5 13 17 25]
package math
