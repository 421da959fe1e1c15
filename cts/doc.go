// Package cts holds the hypot conformance kernels and the harness that
// checks them.
//
// HypotScript carries the four kernel entry points, one per vector width.
// Each reads its second operand from the AllocInY buffer handle at the
// invocation index and returns hypot(inX, inY) lane by lane. Run generates
// inputs, dispatches every kernel on an rs.Context, and compares each lane
// against a double-precision reference within the ULP budget of the
// selected precision.
package cts
