package rs

import "fmt"

// DataType is the scalar type of one lane.
type DataType int

const (
	// Float32 is an IEEE 754 single-precision lane.
	Float32 DataType = iota
)

func (d DataType) String() string {
	switch d {
	case Float32:
		return "float"
	default:
		return fmt.Sprintf("DataType(%d)", int(d))
	}
}

// Element describes the type of one allocation cell.
type Element struct {
	Type       DataType
	VectorSize int
}

// Predefined elements for the supported vector widths.
var (
	F32   = Element{Type: Float32, VectorSize: 1}
	F32_2 = Element{Type: Float32, VectorSize: 2}
	F32_3 = Element{Type: Float32, VectorSize: 3}
	F32_4 = Element{Type: Float32, VectorSize: 4}
)

// String returns the script-level type name, e.g. "float" or "float3".
func (e Element) String() string {
	if e.VectorSize <= 1 {
		return e.Type.String()
	}
	return fmt.Sprintf("%s%d", e.Type, e.VectorSize)
}

// Lanes returns the number of meaningful lanes.
func (e Element) Lanes() int {
	return max(e.VectorSize, 1)
}

// StrideLanes returns the number of lanes one cell occupies in memory.
// 3-vectors are padded to 4 lanes.
func (e Element) StrideLanes() int {
	if e.VectorSize == 3 {
		return 4
	}
	return e.Lanes()
}

// SizeBytes returns the in-memory size of one cell.
func (e Element) SizeBytes() int {
	return e.StrideLanes() * 4
}

// ElementFor returns the element for a vector width in [1, 4].
func ElementFor(width int) (Element, error) {
	switch width {
	case 1:
		return F32, nil
	case 2:
		return F32_2, nil
	case 3:
		return F32_3, nil
	case 4:
		return F32_4, nil
	default:
		return Element{}, fmt.Errorf("rs: unsupported vector width %d", width)
	}
}
