package diskfile

import (
	"encoding/binary"
	"math"

	"github.com/numio-ml/numio/internal/storage"
)

// encodeScalar writes one value of the given type into buf (which must be at
// least dtype.Size() bytes) using the given byte order. Encoding then
// decoding with the same order and type is the identity on the bit pattern.
func encodeScalar(buf []byte, dtype storage.DataType, order binary.ByteOrder, v uint64) {
	switch dtype.Size() {
	case 1:
		buf[0] = byte(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, v)
	}
}

// decodeScalar reads one value of the given type from buf using the given
// byte order, returning its bit pattern widened to uint64.
func decodeScalar(buf []byte, dtype storage.DataType, order binary.ByteOrder) uint64 {
	switch dtype.Size() {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	default:
		return order.Uint64(buf)
	}
}

// encodeElements re-encodes count contiguous elements from native byte order
// into the given order, in place. A no-op for 1-byte types and when the
// order is already native.
func encodeElements(buf []byte, dtype storage.DataType, order binary.ByteOrder, count int) {
	swapElements(buf, dtype, order, count)
}

// decodeElements converts count contiguous elements from the given byte
// order into native order, in place.
func decodeElements(buf []byte, dtype storage.DataType, order binary.ByteOrder, count int) {
	swapElements(buf, dtype, order, count)
}

func swapElements(buf []byte, dtype storage.DataType, order binary.ByteOrder, count int) {
	width := dtype.Size()
	if width == 1 || order == binary.ByteOrder(binary.NativeEndian) {
		return // single bytes have no order; native order is already on-disk layout
	}
	for i := 0; i < count; i++ {
		el := buf[i*width : (i+1)*width]
		bits := decodeScalar(el, dtype, binary.NativeEndian)
		encodeScalar(el, dtype, order, bits)
	}
}

// float32Bits and friends bridge float values to the bit patterns the codec
// moves around.

func float32Bits(v float32) uint64 { return uint64(math.Float32bits(v)) }
func float64Bits(v float64) uint64 { return math.Float64bits(v) }
func bitsFloat32(b uint64) float32 { return math.Float32frombits(uint32(b)) }
func bitsFloat64(b uint64) float64 { return math.Float64frombits(b) }

// defaultOrder is the byte order of a freshly opened File.
func defaultOrder() binary.ByteOrder {
	return binary.NativeEndian
}

// nativeIsLittleEndian reports whether the host CPU is little-endian.
func nativeIsLittleEndian() bool {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0x0102)
	return probe[0] == 0x02
}
