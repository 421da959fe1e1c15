// Package rs is a CPU host runtime for data-parallel float kernels.
//
// It models the pieces a compute script needs from its host: typed
// element buffers (Allocation), buffer handles a kernel reads by index
// (Global), and a Context that dispatches a kernel once per element over a
// persistent worker pool.
//
//	ctx := rs.NewContext()
//	defer ctx.Close()
//
//	in, _ := rs.NewAllocation[rs.Float4](n)
//	out, _ := rs.NewAllocation[rs.Float4](n)
//	err := rs.ForEach(ctx, kernel, in, out)
//
// Kernel invocations are independent and may run in any order on any
// worker. A kernel must only read shared state; the runtime writes each
// return value to out[x].
package rs
