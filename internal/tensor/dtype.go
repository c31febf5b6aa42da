// Package tensor provides the core types of the gradtape library: shapes,
// element types, device-owned storage buffers, the Tensor handle, and the
// gradient tape consumed by the backward pass.
package tensor

// DType is the constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | ~bool
}

// Float is the constraint for element types that support differentiation.
type Float interface {
	~float32 | ~float64
}

// DataType is the runtime tag for a tensor's element type.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
	Bool
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	case Bool:
		return 1
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
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type supports gradient computation.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// inferDataType infers the runtime DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case bool:
		return Bool
	default:
		panic("unsupported element type")
	}
}
