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

// Package hwy provides portable float vector operations with runtime CPU
// detection.
//
// It is the lane engine under the rs compute runtime: every kernel lane
// computation goes through a Vec handle, so the same kernel body serves
// 1, 2, 3 and 4 lane element types.
//
// Basic usage:
//
//	import "github.com/ajroetker/rshwy/hwy"
//
//	// Load data into vectors
//	a := hwy.Load(data1)
//	b := hwy.Load(data2)
//
//	// Perform lane-wise operations
//	result := hwy.Add(a, b)
//
//	// Store results
//	hwy.Store(result, output)
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// Vec is a portable vector handle. In base (scalar) mode it wraps a slice
// of at most MaxLanes[T]() elements.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Floats] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	Store(v, dst)
}

// Mask represents the result of a comparison operation.
// It can be used with IfThenElse to perform conditional selection.
type Mask[T Floats] struct {
	// bit i is set if lane i is active.
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}
