package rs

// Float2 is a two-lane float vector.
type Float2 [2]float32

// Float3 is a three-lane float vector. In flat buffers it occupies four
// lanes; see Element.StrideLanes.
type Float3 [3]float32

// Float4 is a four-lane float vector.
type Float4 [4]float32

// Vector is the set of cell types a kernel can consume and produce.
type Vector interface {
	float32 | Float2 | Float3 | Float4
}

// ElementOf returns the Element describing T.
func ElementOf[T Vector]() Element {
	var zero T
	switch any(zero).(type) {
	case Float2:
		return F32_2
	case Float3:
		return F32_3
	case Float4:
		return F32_4
	default:
		return F32
	}
}

// LanesOf returns the lanes of v as a new slice.
func LanesOf[T Vector](v T) []float32 {
	switch x := any(v).(type) {
	case float32:
		return []float32{x}
	case Float2:
		return x[:]
	case Float3:
		return x[:]
	case Float4:
		return x[:]
	}
	return nil
}

// FromLanes builds a T from the first lanes of src. Missing lanes are zero.
func FromLanes[T Vector](src []float32) T {
	var v T
	switch p := any(&v).(type) {
	case *float32:
		if len(src) > 0 {
			*p = src[0]
		}
	case *Float2:
		copy(p[:], src)
	case *Float3:
		copy(p[:], src)
	case *Float4:
		copy(p[:], src)
	}
	return v
}
