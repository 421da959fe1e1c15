package cts

import (
	"fmt"

	"github.com/ajroetker/rshwy/hwy"
	"github.com/ajroetker/rshwy/hwy/contrib/math"
	"github.com/ajroetker/rshwy/rs"
)

// HypotScript is the hypot kernel set. AllocInY must be bound to an
// allocation of the kernel's element type before dispatch.
type HypotScript struct {
	AllocInY rs.Global
}

// HypotLanes is the kernel body with the buffer read replaced by an
// argument: result[i] = hypot(x[i], y[i]) for every lane of T.
func HypotLanes[T rs.Vector](x, y T) T {
	r := math.Hypot(hwy.Load(rs.LanesOf(x)), hwy.Load(rs.LanesOf(y)))
	return rs.FromLanes[T](r.Data())
}

// TestHypotFloatFloatFloat reads inY = AllocInY[x] and returns hypot(inX, inY).
func (s *HypotScript) TestHypotFloatFloatFloat(inX float32, x uint32) float32 {
	inY := rs.ElementAt[float32](&s.AllocInY, x)
	return HypotLanes(inX, inY)
}

// TestHypotFloat2Float2Float2 reads inY = AllocInY[x] and returns the
// lane-wise hypot(inX, inY).
func (s *HypotScript) TestHypotFloat2Float2Float2(inX rs.Float2, x uint32) rs.Float2 {
	inY := rs.ElementAt[rs.Float2](&s.AllocInY, x)
	return HypotLanes(inX, inY)
}

// TestHypotFloat3Float3Float3 is the three-lane TestHypotFloat2Float2Float2.
func (s *HypotScript) TestHypotFloat3Float3Float3(inX rs.Float3, x uint32) rs.Float3 {
	inY := rs.ElementAt[rs.Float3](&s.AllocInY, x)
	return HypotLanes(inX, inY)
}

// TestHypotFloat4Float4Float4 is the four-lane TestHypotFloat2Float2Float2.
func (s *HypotScript) TestHypotFloat4Float4Float4(inX rs.Float4, x uint32) rs.Float4 {
	inY := rs.ElementAt[rs.Float4](&s.AllocInY, x)
	return HypotLanes(inX, inY)
}

// Kernel returns the entry point of s for element type T.
func Kernel[T rs.Vector](s *HypotScript) rs.Kernel[T] {
	var k any
	switch any(*new(T)).(type) {
	case float32:
		k = rs.Kernel[float32](s.TestHypotFloatFloatFloat)
	case rs.Float2:
		k = rs.Kernel[rs.Float2](s.TestHypotFloat2Float2Float2)
	case rs.Float3:
		k = rs.Kernel[rs.Float3](s.TestHypotFloat3Float3Float3)
	case rs.Float4:
		k = rs.Kernel[rs.Float4](s.TestHypotFloat4Float4Float4)
	}
	return k.(rs.Kernel[T])
}

// KernelName returns the script-level name of the entry point for T.
func KernelName[T rs.Vector]() string {
	switch rs.ElementOf[T]().VectorSize {
	case 2:
		return "testHypotFloat2Float2Float2"
	case 3:
		return "testHypotFloat3Float3Float3"
	case 4:
		return "testHypotFloat4Float4Float4"
	default:
		return "testHypotFloatFloatFloat"
	}
}

// ForEach checks the AllocInY binding against the launch and runs the
// T-width kernel over in, writing out.
func ForEach[T rs.Vector](ctx *rs.Context, s *HypotScript, in, out *rs.Allocation[T]) error {
	if out != nil {
		if err := s.AllocInY.Check(rs.ElementOf[T](), out.Len()); err != nil {
			return fmt.Errorf("cts: %s: gAllocInY: %w", KernelName[T](), err)
		}
	}
	if err := rs.ForEach(ctx, Kernel[T](s), in, out); err != nil {
		return fmt.Errorf("cts: %s: %w", KernelName[T](), err)
	}
	return nil
}
