package bytepack

import "math/big"

// U128 is an unsigned 128-bit integer split into two 64-bit halves.
type U128 struct {
	Hi, Lo uint64
}

// I128 is a two's complement signed 128-bit integer. The sign lives in Hi.
type I128 struct {
	Hi int64
	Lo uint64
}

// LEU128 and LEI128 are the little-endian forms of U128 and I128.
type (
	LEU128 U128
	LEI128 I128
)

var (
	_ ConstElem[U128]   = U128{}
	_ ConstElem[LEI128] = LEI128{}
)

const size128 = 16

func put128(buf []byte, little bool, hi, lo uint64) {
	if little {
		LE.PutUint64(buf[:8], lo)
		LE.PutUint64(buf[8:16], hi)
		return
	}
	BE.PutUint64(buf[:8], hi)
	BE.PutUint64(buf[8:16], lo)
}

func get128(buf []byte, little bool) (hi, lo uint64) {
	if little {
		return LE.Uint64(buf[8:16]), LE.Uint64(buf[:8])
	}
	return BE.Uint64(buf[:8]), BE.Uint64(buf[8:16])
}

func pack128[T any](buf []byte, little bool, hi, lo uint64) error {
	if err := checkPack[T](buf, size128); err != nil {
		return err
	}
	put128(buf, little, hi, lo)
	return nil
}

func unpack128[T any](buf []byte, little bool) (hi, lo uint64, err error) {
	if err := checkUnpack[T](buf, size128); err != nil {
		return 0, 0, err
	}
	hi, lo = get128(buf, little)
	return hi, lo, nil
}

func (U128) Size() int               { return size128 }
func (U128) ConstSize() int          { return size128 }
func (v U128) Pack(buf []byte) error { return pack128[U128](buf, false, v.Hi, v.Lo) }
func (U128) Unpack(buf []byte) (U128, error) {
	hi, lo, err := unpack128[U128](buf, false)
	return U128{Hi: hi, Lo: lo}, err
}

func (I128) Size() int               { return size128 }
func (I128) ConstSize() int          { return size128 }
func (v I128) Pack(buf []byte) error { return pack128[I128](buf, false, uint64(v.Hi), v.Lo) }
func (I128) Unpack(buf []byte) (I128, error) {
	hi, lo, err := unpack128[I128](buf, false)
	return I128{Hi: int64(hi), Lo: lo}, err
}

func (LEU128) Size() int               { return size128 }
func (LEU128) ConstSize() int          { return size128 }
func (v LEU128) Pack(buf []byte) error { return pack128[LEU128](buf, true, v.Hi, v.Lo) }
func (LEU128) Unpack(buf []byte) (LEU128, error) {
	hi, lo, err := unpack128[LEU128](buf, true)
	return LEU128{Hi: hi, Lo: lo}, err
}

func (LEI128) Size() int               { return size128 }
func (LEI128) ConstSize() int          { return size128 }
func (v LEI128) Pack(buf []byte) error { return pack128[LEI128](buf, true, uint64(v.Hi), v.Lo) }
func (LEI128) Unpack(buf []byte) (LEI128, error) {
	hi, lo, err := unpack128[LEI128](buf, true)
	return LEI128{Hi: int64(hi), Lo: lo}, err
}

var two64 = new(big.Int).Lsh(big.NewInt(1), 64)

// Big returns v as a big.Int.
func (v U128) Big() *big.Int {
	n := new(big.Int).SetUint64(v.Hi)
	n.Mul(n, two64)
	return n.Add(n, new(big.Int).SetUint64(v.Lo))
}

// U128FromBig truncates n to its low 128 bits.
func U128FromBig(n *big.Int) U128 {
	var b [size128]byte
	m := new(big.Int).And(n, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))
	m.FillBytes(b[:])
	return U128{Hi: BE.Uint64(b[:8]), Lo: BE.Uint64(b[8:])}
}
