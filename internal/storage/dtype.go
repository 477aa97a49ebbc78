// Package storage provides fixed-length typed buffers for numio file I/O.
package storage

// Elem is a constraint for supported storage element types.
// It uses Go generics to ensure compile-time type safety.
type Elem interface {
	~int8 | ~uint8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// DataType represents runtime type information for storages.
type DataType int

// Supported element types for storages.
const (
	Int8 DataType = iota
	Uint8
	Int16
	Int32
	Int64
	Float32
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Int8, Uint8:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType converts a string name back to a DataType.
func ParseDataType(s string) (DataType, bool) {
	switch s {
	case "int8":
		return Int8, true
	case "uint8":
		return Uint8, true
	case "int16":
		return Int16, true
	case "int32":
		return Int32, true
	case "int64":
		return Int64, true
	case "float32":
		return Float32, true
	case "float64":
		return Float64, true
	default:
		return 0, false
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T Elem](dummy T) DataType {
	switch any(dummy).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}
