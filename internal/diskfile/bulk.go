package diskfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"github.com/numio-ml/numio/internal/storage"
)

// writeBulk writes count contiguous elements held in src (native byte
// order) at the current position. The caller's bytes are never mutated:
// when the selected order differs from native, elements are re-encoded
// into a scratch buffer first.
func (f *File) writeBulk(src []byte, dtype storage.DataType, count int) error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	if !f.mode.CanWrite {
		return ErrNotWritable
	}

	width := dtype.Size()

	if !f.mode.Binary {
		err := f.unquieted(func() error {
			for i := 0; i < count; i++ {
				bits := decodeScalar(src[i*width:(i+1)*width], dtype, binary.NativeEndian)
				if err := f.writeValue(dtype, bits); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return f.transferErr(err)
		}
		return nil
	}

	raw := src[:count*width]
	if width > 1 && f.order != binary.ByteOrder(binary.NativeEndian) {
		scratch := make([]byte, len(raw))
		copy(scratch, raw)
		encodeElements(scratch, dtype, f.order, count)
		raw = scratch
	}
	if _, err := f.write(raw); err != nil {
		return f.transferErr(err)
	}
	return nil
}

// readBulk reads up to count whole elements into dst at the current
// position, returning the number actually read. A clean short read at end
// of stream is not an error; trailing partial-element bytes are backed out
// so the position always advances by a whole number of elements.
func (f *File) readBulk(dst []byte, dtype storage.DataType, count int) (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	if !f.mode.CanRead {
		return 0, ErrNotReadable
	}

	width := dtype.Size()

	if !f.mode.Binary {
		actual := 0
		err := f.unquieted(func() error {
			for actual < count {
				bits, err := f.readValue(dtype)
				if err != nil {
					return err
				}
				encodeScalar(dst[actual*width:(actual+1)*width], dtype, binary.NativeEndian, bits)
				actual++
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				if f.quiet {
					f.lastErr = err
				}
				return actual, nil
			}
			return actual, f.transferErr(err)
		}
		return actual, nil
	}

	raw := dst[:count*width]
	n, err := f.readFull(raw)
	actual := n / width
	if rem := n % width; rem > 0 {
		f.rewind(rem)
	}
	if err != nil {
		return actual, f.transferErr(err)
	}
	decodeElements(raw[:actual*width], dtype, f.order, actual)
	if actual < count && f.quiet {
		f.lastErr = fmt.Errorf("%w: read %d of %d elements", ErrEndOfStream, actual, count)
	}
	return actual, nil
}

// unquieted runs op with quiet mode suspended so that element-wise loops
// see the underlying errors; the caller applies the quiet policy once to
// the aggregate outcome.
func (f *File) unquieted(op func() error) error {
	quiet := f.quiet
	f.quiet = false
	err := op()
	f.quiet = quiet
	return err
}

// sliceBytes views a typed slice as its backing bytes without copying.
func sliceBytes[T storage.Elem](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	var dummy T
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(dummy)))
}

// WriteBytes writes all elements of the slice at the current position.
func (f *File) WriteBytes(values []uint8) error {
	return f.writeBulk(values, storage.Uint8, len(values))
}

// ReadBytes reads up to len(values) elements into the slice, returning the
// number actually read.
func (f *File) ReadBytes(values []uint8) (int, error) {
	return f.readBulk(values, storage.Uint8, len(values))
}

// WriteChars writes all elements of the slice at the current position.
func (f *File) WriteChars(values []int8) error {
	return f.writeBulk(sliceBytes(values), storage.Int8, len(values))
}

// ReadChars reads up to len(values) elements into the slice, returning the
// number actually read.
func (f *File) ReadChars(values []int8) (int, error) {
	return f.readBulk(sliceBytes(values), storage.Int8, len(values))
}

// WriteShorts writes all elements of the slice at the current position.
func (f *File) WriteShorts(values []int16) error {
	return f.writeBulk(sliceBytes(values), storage.Int16, len(values))
}

// ReadShorts reads up to len(values) elements into the slice, returning
// the number actually read.
func (f *File) ReadShorts(values []int16) (int, error) {
	return f.readBulk(sliceBytes(values), storage.Int16, len(values))
}

// WriteInts writes all elements of the slice at the current position.
func (f *File) WriteInts(values []int32) error {
	return f.writeBulk(sliceBytes(values), storage.Int32, len(values))
}

// ReadInts reads up to len(values) elements into the slice, returning the
// number actually read.
func (f *File) ReadInts(values []int32) (int, error) {
	return f.readBulk(sliceBytes(values), storage.Int32, len(values))
}

// WriteLongs writes all elements of the slice at the current position.
func (f *File) WriteLongs(values []int64) error {
	return f.writeBulk(sliceBytes(values), storage.Int64, len(values))
}

// ReadLongs reads up to len(values) elements into the slice, returning the
// number actually read.
func (f *File) ReadLongs(values []int64) (int, error) {
	return f.readBulk(sliceBytes(values), storage.Int64, len(values))
}

// WriteFloats writes all elements of the slice at the current position.
func (f *File) WriteFloats(values []float32) error {
	return f.writeBulk(sliceBytes(values), storage.Float32, len(values))
}

// ReadFloats reads up to len(values) elements into the slice, returning
// the number actually read.
func (f *File) ReadFloats(values []float32) (int, error) {
	return f.readBulk(sliceBytes(values), storage.Float32, len(values))
}

// WriteDoubles writes all elements of the slice at the current position.
func (f *File) WriteDoubles(values []float64) error {
	return f.writeBulk(sliceBytes(values), storage.Float64, len(values))
}

// ReadDoubles reads up to len(values) elements into the slice, returning
// the number actually read.
func (f *File) ReadDoubles(values []float64) (int, error) {
	return f.readBulk(sliceBytes(values), storage.Float64, len(values))
}

// WriteStorage writes all elements of the storage at the current position.
func (f *File) WriteStorage(s *storage.Storage) error {
	return f.writeBulk(s.Bytes(), s.DType(), s.Len())
}

// WriteStorageN writes the first count elements of the storage.
func (f *File) WriteStorageN(s *storage.Storage, count int) error {
	if count < 0 || count > s.Len() {
		return fmt.Errorf("invalid element count %d for storage of length %d", count, s.Len())
	}
	return f.writeBulk(s.Bytes(), s.DType(), count)
}

// ReadStorage reads up to s.Len() elements into the storage starting at
// index 0, returning the number actually read.
func (f *File) ReadStorage(s *storage.Storage) (int, error) {
	return f.readBulk(s.Bytes(), s.DType(), s.Len())
}

// ReadStorageN reads up to count elements into the storage starting at
// index 0, returning the number actually read.
func (f *File) ReadStorageN(s *storage.Storage, count int) (int, error) {
	if count < 0 || count > s.Len() {
		return 0, fmt.Errorf("invalid element count %d for storage of length %d", count, s.Len())
	}
	return f.readBulk(s.Bytes(), s.DType(), count)
}
