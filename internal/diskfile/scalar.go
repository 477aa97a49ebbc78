package diskfile

import (
	"fmt"
	"strconv"

	"github.com/numio-ml/numio/internal/storage"
)

// separator is the single whitespace byte used by the text-mode spacing
// policy. The on-read side consumes exactly one occurrence per value; no
// further framing is inferred.
const separator = ' '

// writeValue writes one scalar of the given type, carried as its bit
// pattern widened to uint64. Binary mode encodes through the byte-order
// codec; text mode formats a decimal token and applies the spacing policy.
func (f *File) writeValue(dtype storage.DataType, bits uint64) error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	if !f.mode.CanWrite {
		return ErrNotWritable
	}

	if f.mode.Binary {
		var buf [8]byte
		width := dtype.Size()
		encodeScalar(buf[:width], dtype, f.order, bits)
		if _, err := f.write(buf[:width]); err != nil {
			return f.transferErr(err)
		}
		return nil
	}

	token := formatValue(dtype, bits)
	if f.spacing {
		token = append(token, separator)
	}
	if _, err := f.write(token); err != nil {
		return f.transferErr(err)
	}
	return nil
}

// readValue reads one scalar of the given type, returning its bit pattern
// widened to uint64. A read that cannot complete fails with ErrEndOfStream
// and a text token that does not parse fails with ErrInvalidToken (either
// is recorded under quiet mode, returning zero).
func (f *File) readValue(dtype storage.DataType) (uint64, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	if !f.mode.CanRead {
		return 0, ErrNotReadable
	}

	if f.mode.Binary {
		var buf [8]byte
		width := dtype.Size()
		n, err := f.readFull(buf[:width])
		if err != nil {
			return 0, f.transferErr(err)
		}
		if n < width {
			f.rewind(n)
			return 0, f.transferErr(fmt.Errorf("%w: need %d bytes, have %d", ErrEndOfStream, width, n))
		}
		return decodeScalar(buf[:width], dtype, f.order), nil
	}

	token, err := f.readToken()
	if err != nil {
		return 0, f.transferErr(err)
	}
	bits, err := parseValue(dtype, token)
	if err != nil {
		return 0, f.transferErr(err)
	}
	return bits, nil
}

// readToken reads text-mode bytes up to the next separator or end of
// stream. When auto-spacing is enabled the terminating separator is
// consumed and discarded; otherwise it is left in place for the caller.
func (f *File) readToken() ([]byte, error) {
	var token []byte
	var b [1]byte
	for {
		n, err := f.readFull(b[:])
		if err != nil {
			return nil, err
		}
		if n == 0 {
			if len(token) == 0 {
				return nil, fmt.Errorf("%w: no value to read", ErrEndOfStream)
			}
			return token, nil
		}
		if b[0] == separator || b[0] == '\n' || b[0] == '\t' {
			if !f.spacing {
				f.rewind(1)
				if len(token) == 0 {
					return nil, fmt.Errorf("%w: separator where a value was expected", ErrEndOfStream)
				}
				return token, nil
			}
			if len(token) == 0 {
				// Leading separator left behind by a non-spacing reader.
				continue
			}
			return token, nil
		}
		token = append(token, b[0])
	}
}

// formatValue renders one scalar as a decimal text token.
func formatValue(dtype storage.DataType, bits uint64) []byte {
	switch dtype {
	case storage.Int8:
		return strconv.AppendInt(nil, int64(int8(bits)), 10)
	case storage.Uint8:
		return strconv.AppendUint(nil, bits&0xff, 10)
	case storage.Int16:
		return strconv.AppendInt(nil, int64(int16(bits)), 10)
	case storage.Int32:
		return strconv.AppendInt(nil, int64(int32(bits)), 10)
	case storage.Int64:
		return strconv.AppendInt(nil, int64(bits), 10)
	case storage.Float32:
		return strconv.AppendFloat(nil, float64(bitsFloat32(bits)), 'g', -1, 32)
	case storage.Float64:
		return strconv.AppendFloat(nil, bitsFloat64(bits), 'g', -1, 64)
	default:
		panic("unknown data type")
	}
}

// parseValue parses a decimal text token back into a scalar bit pattern.
func parseValue(dtype storage.DataType, token []byte) (uint64, error) {
	s := string(token)
	switch dtype {
	case storage.Int8, storage.Int16, storage.Int32, storage.Int64:
		v, err := strconv.ParseInt(s, 10, dtype.Size()*8)
		if err != nil {
			return 0, fmt.Errorf("%w: bad %s token %q", ErrInvalidToken, dtype, s)
		}
		return uint64(v) & widthMask(dtype), nil
	case storage.Uint8:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: bad uint8 token %q", ErrInvalidToken, s)
		}
		return v, nil
	case storage.Float32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: bad float32 token %q", ErrInvalidToken, s)
		}
		return float32Bits(float32(v)), nil
	case storage.Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad float64 token %q", ErrInvalidToken, s)
		}
		return float64Bits(v), nil
	default:
		panic("unknown data type")
	}
}

func widthMask(dtype storage.DataType) uint64 {
	if dtype.Size() == 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (dtype.Size() * 8)) - 1
}

// WriteByte writes one uint8 at the current position. Single bytes have no
// byte-order ambiguity, so the codec is bypassed.
func (f *File) WriteByte(v byte) error {
	return f.writeValue(storage.Uint8, uint64(v))
}

// ReadByte reads one uint8 at the current position.
func (f *File) ReadByte() (byte, error) {
	bits, err := f.readValue(storage.Uint8)
	return byte(bits), err
}

// WriteChar writes one int8 at the current position.
func (f *File) WriteChar(v int8) error {
	return f.writeValue(storage.Int8, uint64(uint8(v)))
}

// ReadChar reads one int8 at the current position.
func (f *File) ReadChar() (int8, error) {
	bits, err := f.readValue(storage.Int8)
	return int8(bits), err
}

// WriteShort writes one int16 at the current position.
func (f *File) WriteShort(v int16) error {
	return f.writeValue(storage.Int16, uint64(uint16(v)))
}

// ReadShort reads one int16 at the current position.
func (f *File) ReadShort() (int16, error) {
	bits, err := f.readValue(storage.Int16)
	return int16(bits), err
}

// WriteInt writes one int32 at the current position.
func (f *File) WriteInt(v int32) error {
	return f.writeValue(storage.Int32, uint64(uint32(v)))
}

// ReadInt reads one int32 at the current position.
func (f *File) ReadInt() (int32, error) {
	bits, err := f.readValue(storage.Int32)
	return int32(bits), err
}

// WriteLong writes one int64 at the current position.
func (f *File) WriteLong(v int64) error {
	return f.writeValue(storage.Int64, uint64(v))
}

// ReadLong reads one int64 at the current position.
func (f *File) ReadLong() (int64, error) {
	bits, err := f.readValue(storage.Int64)
	return int64(bits), err
}

// WriteFloat writes one float32 at the current position.
func (f *File) WriteFloat(v float32) error {
	return f.writeValue(storage.Float32, float32Bits(v))
}

// ReadFloat reads one float32 at the current position.
func (f *File) ReadFloat() (float32, error) {
	bits, err := f.readValue(storage.Float32)
	return bitsFloat32(bits), err
}

// WriteDouble writes one float64 at the current position.
func (f *File) WriteDouble(v float64) error {
	return f.writeValue(storage.Float64, float64Bits(v))
}

// ReadDouble reads one float64 at the current position.
func (f *File) ReadDouble() (float64, error) {
	bits, err := f.readValue(storage.Float64)
	return bitsFloat64(bits), err
}

// WriteString writes the raw bytes of s at the current position. No length
// prefix or terminator is added; higher layers define any framing.
func (f *File) WriteString(s string) error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	if !f.mode.CanWrite {
		return ErrNotWritable
	}
	if _, err := f.write([]byte(s)); err != nil {
		return f.transferErr(err)
	}
	return nil
}

// ReadString reads exactly n raw bytes at the current position.
func (f *File) ReadString(n int) (string, error) {
	if err := f.ensureOpen(); err != nil {
		return "", err
	}
	if !f.mode.CanRead {
		return "", ErrNotReadable
	}
	if n < 0 {
		return "", fmt.Errorf("invalid byte count %d", n)
	}
	buf := make([]byte, n)
	got, err := f.readFull(buf)
	if err != nil {
		return "", f.transferErr(err)
	}
	if got < n {
		f.rewind(got)
		return "", f.transferErr(fmt.Errorf("%w: need %d bytes, have %d", ErrEndOfStream, n, got))
	}
	return string(buf), nil
}
