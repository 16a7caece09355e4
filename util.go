package bytepack

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
)

// LengthPrefixSize is the width of the element/byte count written in front of
// SizedVec and Text, and in front of stream frames. The count is big-endian.
const LengthPrefixSize = 4

func Ptr[T any](v T) *T { return &v } // Ptr is a helper function to create a pointer to a value, making test setup cleaner.

// putInt writes the low `width` bytes of v in the given order.
func putInt[I constraints.Integer](buf []byte, order binary.ByteOrder, width int, v I) {
	switch width {
	case 1:
		buf[0] = byte(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, uint64(v))
	}
}

// getInt reads `width` bytes in the given order into an integer of type I.
func getInt[I constraints.Integer](buf []byte, order binary.ByteOrder, width int) I {
	switch width {
	case 1:
		return I(buf[0])
	case 2:
		return I(order.Uint16(buf))
	case 4:
		return I(order.Uint32(buf))
	default:
		return I(order.Uint64(buf))
	}
}

// packInt is the shared Pack body of the fixed-width integer types.
func packInt[T constraints.Integer](buf []byte, order binary.ByteOrder, v T) error {
	width := intWidth[T]()
	if err := checkPack[T](buf, width); err != nil {
		return err
	}
	putInt(buf, order, width, v)
	return nil
}

// unpackInt is the shared Unpack body of the fixed-width integer types.
func unpackInt[T constraints.Integer](buf []byte, order binary.ByteOrder) (T, error) {
	width := intWidth[T]()
	if err := checkUnpack[T](buf, width); err != nil {
		return 0, err
	}
	return getInt[T](buf, order, width), nil
}

func intWidth[T constraints.Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// checkLength rejects counts that do not fit the LengthPrefixSize prefix.
func checkLength[T any](n int) error {
	if uint64(n) > math.MaxUint32 {
		return &Error{
			Kind:   KindInvalidState,
			Op:     "pack",
			Type:   typeName[T](),
			Detail: "count " + strconv.Itoa(n) + " does not fit a 4-byte length prefix",
		}
	}
	return nil
}

// putLength writes a LengthPrefixSize count prefix. The caller has checked
// the count with checkLength.
func putLength(buf []byte, n int) {
	BE.PutUint32(buf, uint32(n))
}

// getLength reads a LengthPrefixSize count prefix. The caller checks bounds.
func getLength(buf []byte) int {
	return int(BE.Uint32(buf))
}

// CheckBufferNotZeros verifies that every byte of a trailing region is zero.
// A non-zero byte after a decoded value usually means the wrong type was used
// to parse the payload.
func CheckBufferNotZeros(trailing []byte) error {
	for i, b := range trailing {
		if b != 0 {
			return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingData, b, i)
		}
	}
	return nil
}
