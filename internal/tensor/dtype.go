// Package tensor provides the dense tensor buffers consumed by the loss kernels.
package tensor

import "fmt"

// Float is a constraint for supported tensor element types.
// Kernels are instantiated once per precision.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType converts a precision name ("float32", "f32", "float64", "f64")
// into a DataType.
func ParseDataType(name string) (DataType, error) {
	switch name {
	case "float32", "f32", "single":
		return Float32, nil
	case "float64", "f64", "double":
		return Float64, nil
	default:
		return 0, fmt.Errorf("unsupported precision %q (want float32 or float64)", name)
	}
}

// DataTypeOf infers the DataType from a generic type T.
func DataTypeOf[T Float]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	}
	// Named types over float32/float64 land here.
	if isSinglePrecision(dummy) {
		return Float32
	}
	return Float64
}

// isSinglePrecision reports whether T loses precision past 2^24.
func isSinglePrecision[T Float](_ T) bool {
	const big = 1 << 24
	v := T(big) + 1
	return v == T(big)
}
