package diskfile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	require.NoError(t, f.WriteByte(0xA7))
	require.NoError(t, f.WriteChar(-100))
	require.NoError(t, f.WriteShort(-30000))
	require.NoError(t, f.WriteInt(-2000000000))
	require.NoError(t, f.WriteLong(-9000000000000000000))
	require.NoError(t, f.WriteFloat(3.25))
	require.NoError(t, f.WriteDouble(-1.5e300))

	assert.Equal(t, int64(1+1+2+4+8+4+8), f.Position())

	require.NoError(t, f.Seek(0))

	b, err := f.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xA7), b)

	c, err := f.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, int8(-100), c)

	s, err := f.ReadShort()
	require.NoError(t, err)
	assert.Equal(t, int16(-30000), s)

	i, err := f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-2000000000), i)

	l, err := f.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(-9000000000000000000), l)

	fl, err := f.ReadFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(3.25), fl)

	d, err := f.ReadDouble()
	require.NoError(t, err)
	assert.Equal(t, -1.5e300, d)
}

func TestScalarRoundTripSpecialFloats(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	require.NoError(t, f.WriteFloat(float32(math.Inf(-1))))
	require.NoError(t, f.WriteDouble(math.NaN()))
	require.NoError(t, f.Seek(0))

	fl, err := f.ReadFloat()
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(fl), -1))

	d, err := f.ReadDouble()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d))
}

func TestScalarPositionAdvance(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	require.NoError(t, f.WriteInt(1))
	require.NoError(t, f.WriteInt(2))
	require.NoError(t, f.WriteInt(3))
	assert.Equal(t, int64(12), f.Position())

	require.NoError(t, f.Seek(0))
	_, err = f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.Position())
}

func TestBigEndianEncoding(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	f.BigEndianEncoding()
	require.NoError(t, f.WriteShort(0x0102))

	assert.Equal(t, []byte{0x01, 0x02}, f.Bytes())

	// On a little-endian host the same bytes decode differently in native
	// order when the value is not byte-symmetric.
	if nativeIsLittleEndian() {
		f.NativeEndianEncoding()
		require.NoError(t, f.Seek(0))
		v, err := f.ReadShort()
		require.NoError(t, err)
		assert.Equal(t, int16(0x0201), v)
	}

	f.BigEndianEncoding()
	require.NoError(t, f.Seek(0))
	v, err := f.ReadShort()
	require.NoError(t, err)
	assert.Equal(t, int16(0x0102), v)
}

func TestLittleEndianEncoding(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	f.LittleEndianEncoding()
	require.NoError(t, f.WriteInt(0x01020304))

	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, f.Bytes())
}

func TestOrderSwitchIsNotRetroactive(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	f.LittleEndianEncoding()
	require.NoError(t, f.WriteShort(0x0102))
	f.BigEndianEncoding()
	require.NoError(t, f.WriteShort(0x0102))

	assert.Equal(t, []byte{0x02, 0x01, 0x01, 0x02}, f.Bytes())
}

func TestScalarEndOfStream(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	require.NoError(t, f.WriteByte(1))
	require.NoError(t, f.Seek(1))

	_, err = f.ReadInt()
	assert.ErrorIs(t, err, ErrEndOfStream)
	assert.Equal(t, int64(1), f.Position(), "failed scalar read must not advance")
}

func TestScalarEndOfStreamPartial(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	require.NoError(t, f.WriteBytes([]byte{1, 2}))
	require.NoError(t, f.Seek(0))

	_, err = f.ReadInt()
	assert.ErrorIs(t, err, ErrEndOfStream)
	assert.Equal(t, int64(0), f.Position(), "partial bytes are backed out")
}

func TestScalarQuietMode(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)
	f.SetQuiet(true)

	v, err := f.ReadInt()
	assert.NoError(t, err, "quiet mode returns the zero value instead of an error")
	assert.Equal(t, int32(0), v)
	assert.True(t, f.HasError())

	f.ClearError()
	assert.False(t, f.HasError())
}

func TestQuietModeDoesNotSuppressClosed(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)
	f.SetQuiet(true)
	require.NoError(t, f.Close())

	_, err = f.ReadInt()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestTextModeRoundTrip(t *testing.T) {
	f, err := NewMemoryFile("rw")
	require.NoError(t, err)

	require.NoError(t, f.WriteInt(42))
	require.NoError(t, f.WriteInt(-7))
	require.NoError(t, f.WriteDouble(3.5))
	require.NoError(t, f.WriteByte(255))

	assert.Equal(t, "42 -7 3.5 255 ", string(f.Bytes()))

	require.NoError(t, f.Seek(0))

	i, err := f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(42), i)

	i, err = f.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-7), i)

	d, err := f.ReadDouble()
	require.NoError(t, err)
	assert.Equal(t, 3.5, d)

	b, err := f.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(255), b)

	_, err = f.ReadInt()
	assert.ErrorIs(t, err, ErrEndOfStream)
}

func TestTextModeMalformedToken(t *testing.T) {
	f, err := NewMemoryFile("rw")
	require.NoError(t, err)

	require.NoError(t, f.WriteString("garbage "))
	require.NoError(t, f.Seek(0))

	_, err = f.ReadInt()
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NotErrorIs(t, err, ErrEndOfStream, "corruption is distinct from end of stream")
}

func TestTextModeNoAutoSpacing(t *testing.T) {
	f, err := NewMemoryFile("rw")
	require.NoError(t, err)
	f.SetAutoSpacing(false)

	require.NoError(t, f.WriteInt(1))
	require.NoError(t, f.WriteInt(2))

	assert.Equal(t, "12", string(f.Bytes()))
}

func TestAutoSpacingIgnoredInBinaryMode(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	require.NoError(t, f.WriteByte(7))
	assert.Equal(t, []byte{7}, f.Bytes(), "no separator in binary mode")
}

func TestStringRoundTrip(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	require.NoError(t, f.WriteString("hello"))
	require.NoError(t, f.Seek(0))

	s, err := f.ReadString(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = f.ReadString(1)
	assert.ErrorIs(t, err, ErrEndOfStream)
}

func TestReadStringNegativeCount(t *testing.T) {
	f, err := NewMemoryFile("rwb")
	require.NoError(t, err)

	_, err = f.ReadString(-1)
	assert.Error(t, err)
	assert.Equal(t, int64(0), f.Position())
}
