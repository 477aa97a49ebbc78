// Copyright 2025 The Numio Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package storage provides the public API for numio typed buffers.
//
// A Storage is a caller-owned, fixed-length, densely packed sequence of one
// element type. The diskfile layer transfers Storage contents to and from
// disk without ever resizing the buffer or retaining a reference.
//
// Example:
//
//	s := storage.Of[float32](1.5, 2.5, 3.5)
//	data := s.AsFloat32() // Type-safe access
package storage

import (
	"github.com/numio-ml/numio/internal/storage"
)

// Type aliases for public API

// Elem is a constraint for storage element types.
// Supported types: int8, uint8, int16, int32, int64, float32, float64.
type Elem = storage.Elem

// DataType represents the element type of a storage.
type DataType = storage.DataType

// Element type constants.
const (
	Int8    DataType = storage.Int8
	Uint8   DataType = storage.Uint8
	Int16   DataType = storage.Int16
	Int32   DataType = storage.Int32
	Int64   DataType = storage.Int64
	Float32 DataType = storage.Float32
	Float64 DataType = storage.Float64
)

// Storage is a fixed-length typed buffer.
type Storage = storage.Storage

// New creates a zero-filled Storage of n elements of the given type.
func New(dtype DataType, n int) (*Storage, error) {
	return storage.New(dtype, n)
}

// Of creates a Storage holding a copy of the given values.
func Of[T Elem](values ...T) *Storage {
	return storage.Of(values...)
}

// ParseDataType converts a string name ("int32", "float64", ...) back to a
// DataType.
func ParseDataType(s string) (DataType, bool) {
	return storage.ParseDataType(s)
}
