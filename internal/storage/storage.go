package storage

import (
	"fmt"
	"unsafe"
)

// Storage is a caller-owned, densely packed, fixed-length sequence of one
// element type. The file layer reads into and writes out of a Storage but
// never resizes it or retains a reference after a call returns.
type Storage struct {
	data  []byte
	dtype DataType
	n     int
}

// New creates a zero-filled Storage of n elements of the given type.
func New(dtype DataType, n int) (*Storage, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid storage length: %d", n)
	}
	return &Storage{
		data:  make([]byte, n*dtype.Size()),
		dtype: dtype,
		n:     n,
	}, nil
}

// Of creates a Storage holding a copy of the given values.
func Of[T Elem](values ...T) *Storage {
	var dummy T
	dtype := inferDataType(dummy)
	s := &Storage{
		data:  make([]byte, len(values)*dtype.Size()),
		dtype: dtype,
		n:     len(values),
	}
	if len(values) > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(s.data))
		copy(s.data, src)
	}
	return s
}

// DType returns the storage's element type.
func (s *Storage) DType() DataType {
	return s.dtype
}

// Len returns the number of elements.
func (s *Storage) Len() int {
	return s.n
}

// ByteSize returns the total memory size in bytes.
func (s *Storage) ByteSize() int {
	return s.n * s.dtype.Size()
}

// Bytes returns the raw byte slice backing the storage.
// WARNING: Direct access to underlying memory. Use with caution.
func (s *Storage) Bytes() []byte {
	return s.data
}

// AsInt8 interprets the data as []int8.
// Panics if the storage's dtype is not Int8.
func (s *Storage) AsInt8() []int8 {
	if s.dtype != Int8 {
		panic(fmt.Sprintf("storage dtype is %s, not int8", s.dtype))
	}
	if s.n == 0 {
		return nil
	}
	return unsafe.Slice((*int8)(unsafe.Pointer(&s.data[0])), s.n)
}

// AsUint8 interprets the data as []uint8.
// Panics if the storage's dtype is not Uint8.
func (s *Storage) AsUint8() []uint8 {
	if s.dtype != Uint8 {
		panic(fmt.Sprintf("storage dtype is %s, not uint8", s.dtype))
	}
	return s.data // Already []byte = []uint8
}

// AsInt16 interprets the data as []int16.
// Panics if the storage's dtype is not Int16.
func (s *Storage) AsInt16() []int16 {
	if s.dtype != Int16 {
		panic(fmt.Sprintf("storage dtype is %s, not int16", s.dtype))
	}
	if s.n == 0 {
		return nil
	}
	return unsafe.Slice((*int16)(unsafe.Pointer(&s.data[0])), s.n)
}

// AsInt32 interprets the data as []int32.
// Panics if the storage's dtype is not Int32.
func (s *Storage) AsInt32() []int32 {
	if s.dtype != Int32 {
		panic(fmt.Sprintf("storage dtype is %s, not int32", s.dtype))
	}
	if s.n == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&s.data[0])), s.n)
}

// AsInt64 interprets the data as []int64.
// Panics if the storage's dtype is not Int64.
func (s *Storage) AsInt64() []int64 {
	if s.dtype != Int64 {
		panic(fmt.Sprintf("storage dtype is %s, not int64", s.dtype))
	}
	if s.n == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&s.data[0])), s.n)
}

// AsFloat32 interprets the data as []float32.
// Panics if the storage's dtype is not Float32.
func (s *Storage) AsFloat32() []float32 {
	if s.dtype != Float32 {
		panic(fmt.Sprintf("storage dtype is %s, not float32", s.dtype))
	}
	if s.n == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&s.data[0])), s.n)
}

// AsFloat64 interprets the data as []float64.
// Panics if the storage's dtype is not Float64.
func (s *Storage) AsFloat64() []float64 {
	if s.dtype != Float64 {
		panic(fmt.Sprintf("storage dtype is %s, not float64", s.dtype))
	}
	if s.n == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&s.data[0])), s.n)
}

// Clone returns a deep copy of the storage.
func (s *Storage) Clone() *Storage {
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return &Storage{
		data:  data,
		dtype: s.dtype,
		n:     s.n,
	}
}
