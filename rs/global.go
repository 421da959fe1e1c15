package rs

import (
	"fmt"
	"sync/atomic"
)

// Global is a script-level buffer handle that kernels read by index.
// The host binds an allocation before dispatch; kernels never write
// through it. Bind and reads are safe to call concurrently.
type Global struct {
	bound atomic.Pointer[binding]
}

type binding struct {
	alloc AnyAllocation
}

// Bind attaches a, replacing any previous binding. Bind(nil) unbinds.
func (g *Global) Bind(a AnyAllocation) {
	if a == nil {
		g.bound.Store(nil)
		return
	}
	g.bound.Store(&binding{alloc: a})
}

// Unbind drops the current binding.
func (g *Global) Unbind() {
	g.bound.Store(nil)
}

// Allocation returns the bound allocation, or nil.
func (g *Global) Allocation() AnyAllocation {
	if b := g.bound.Load(); b != nil {
		return b.alloc
	}
	return nil
}

// Check verifies that g is bound to a buffer of elem with at least n cells.
func (g *Global) Check(elem Element, n int) error {
	a := g.Allocation()
	if a == nil {
		return ErrNotBound
	}
	if a.Element() != elem {
		return fmt.Errorf("%w: bound %s, kernel reads %s", ErrElementMismatch, a.Element(), elem)
	}
	if a.Len() < n {
		return fmt.Errorf("%w: bound allocation has %d cells, launch needs %d", ErrSizeMismatch, a.Len(), n)
	}
	return nil
}

// ElementAt reads cell x of the allocation bound to g as a T.
//
// Like a device-side buffer read it performs no validation of its own: an
// unbound handle, a different element type, or an out-of-range x panics.
// Hosts call Check before dispatch.
func ElementAt[T Vector](g *Global, x uint32) T {
	return g.bound.Load().alloc.(*Allocation[T]).data[x]
}
