package rs

import "errors"

var (
	// ErrClosed is returned when launching on a closed Context.
	ErrClosed = errors.New("rs: context closed")

	// ErrNilKernel is returned when a launch has no kernel function.
	ErrNilKernel = errors.New("rs: nil kernel")

	// ErrNilAllocation is returned when a launch or binding is missing a buffer.
	ErrNilAllocation = errors.New("rs: nil allocation")

	// ErrSizeMismatch is returned when buffer element counts disagree.
	ErrSizeMismatch = errors.New("rs: allocation size mismatch")

	// ErrElementMismatch is returned when a buffer's element type does not
	// match what the kernel reads.
	ErrElementMismatch = errors.New("rs: element type mismatch")

	// ErrNotBound is returned when a kernel's global buffer has no binding.
	ErrNotBound = errors.New("rs: global not bound")

	// ErrKernelPanic is returned by a launch whose kernel panicked.
	ErrKernelPanic = errors.New("rs: kernel panicked")

	// ErrInvalidSize is returned for negative allocation sizes.
	ErrInvalidSize = errors.New("rs: invalid allocation size")
)
