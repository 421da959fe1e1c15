package rs

import "fmt"

// AnyAllocation is the type-erased view of an Allocation, used where the
// element type is only known at dispatch time (Global bindings).
type AnyAllocation interface {
	Element() Element
	Len() int
}

// Allocation is a host buffer of n cells of type T.
//
// Cells are read and written by index without locking. Concurrent writers
// must touch distinct indices, which is what ForEach guarantees.
type Allocation[T Vector] struct {
	elem Element
	data []T
}

// NewAllocation creates a zeroed allocation of n cells.
func NewAllocation[T Vector](n int) (*Allocation[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return &Allocation[T]{elem: ElementOf[T](), data: make([]T, n)}, nil
}

// NewAllocationFrom creates an allocation holding a copy of src.
func NewAllocationFrom[T Vector](src []T) *Allocation[T] {
	a := &Allocation[T]{elem: ElementOf[T](), data: make([]T, len(src))}
	copy(a.data, src)
	return a
}

// Element returns the cell type.
func (a *Allocation[T]) Element() Element {
	return a.elem
}

// Len returns the number of cells.
func (a *Allocation[T]) Len() int {
	return len(a.data)
}

// ElementAt returns cell x. It does not check bounds beyond the Go slice
// check; an out-of-range x panics.
func (a *Allocation[T]) ElementAt(x uint32) T {
	return a.data[x]
}

// SetElementAt stores v at cell x.
func (a *Allocation[T]) SetElementAt(x uint32, v T) {
	a.data[x] = v
}

// Slice returns the backing cells. The slice aliases the allocation.
func (a *Allocation[T]) Slice() []T {
	return a.data
}

// CopyFrom replaces the contents with src, which must have exactly Len cells.
func (a *Allocation[T]) CopyFrom(src []T) error {
	if len(src) != len(a.data) {
		return fmt.Errorf("%w: copy of %d cells into %s allocation of %d", ErrSizeMismatch, len(src), a.elem, len(a.data))
	}
	copy(a.data, src)
	return nil
}

// CopyTo copies the contents into dst, which must have exactly Len cells.
func (a *Allocation[T]) CopyTo(dst []T) error {
	if len(dst) != len(a.data) {
		return fmt.Errorf("%w: copy of %s allocation of %d into %d cells", ErrSizeMismatch, a.elem, len(a.data), len(dst))
	}
	copy(dst, a.data)
	return nil
}

// CopyFromFloats fills the allocation from a flat lane array laid out with
// Element().StrideLanes() lanes per cell. Padding lanes are ignored.
func (a *Allocation[T]) CopyFromFloats(src []float32) error {
	stride := a.elem.StrideLanes()
	if len(src) != len(a.data)*stride {
		return fmt.Errorf("%w: %d floats for %d %s cells (stride %d)", ErrSizeMismatch, len(src), len(a.data), a.elem, stride)
	}
	for i := range a.data {
		a.data[i] = FromLanes[T](src[i*stride : (i+1)*stride])
	}
	return nil
}

// CopyToFloats writes the allocation into a flat lane array laid out with
// Element().StrideLanes() lanes per cell. Padding lanes are set to zero.
func (a *Allocation[T]) CopyToFloats(dst []float32) error {
	stride := a.elem.StrideLanes()
	if len(dst) != len(a.data)*stride {
		return fmt.Errorf("%w: %d floats for %d %s cells (stride %d)", ErrSizeMismatch, len(dst), len(a.data), a.elem, stride)
	}
	for i, v := range a.data {
		cell := dst[i*stride : (i+1)*stride]
		n := copy(cell, LanesOf(v))
		clear(cell[n:])
	}
	return nil
}
