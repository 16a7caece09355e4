package bytepack

// Fixed-width integers. Unqualified types are big-endian ("network" order);
// the LE-prefixed variants carry the same value in little-endian order.
type (
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64

	I8  int8
	I16 int16
	I32 int32
	I64 int64

	LEU16 uint16
	LEU32 uint32
	LEU64 uint64

	LEI16 int16
	LEI32 int32
	LEI64 int64
)

var (
	_ ConstElem[U16]   = U16(0)
	_ ConstElem[LEU64] = LEU64(0)
	_ ConstElem[I32]   = I32(0)
)

func (U8) Size() int                     { return 1 }
func (U8) ConstSize() int                { return 1 }
func (v U8) Pack(buf []byte) error       { return packInt(buf, BE, v) }
func (U8) Unpack(buf []byte) (U8, error) { return unpackInt[U8](buf, BE) }

func (U16) Size() int                      { return 2 }
func (U16) ConstSize() int                 { return 2 }
func (v U16) Pack(buf []byte) error        { return packInt(buf, BE, v) }
func (U16) Unpack(buf []byte) (U16, error) { return unpackInt[U16](buf, BE) }

func (U32) Size() int                      { return 4 }
func (U32) ConstSize() int                 { return 4 }
func (v U32) Pack(buf []byte) error        { return packInt(buf, BE, v) }
func (U32) Unpack(buf []byte) (U32, error) { return unpackInt[U32](buf, BE) }

func (U64) Size() int                      { return 8 }
func (U64) ConstSize() int                 { return 8 }
func (v U64) Pack(buf []byte) error        { return packInt(buf, BE, v) }
func (U64) Unpack(buf []byte) (U64, error) { return unpackInt[U64](buf, BE) }

func (I8) Size() int                     { return 1 }
func (I8) ConstSize() int                { return 1 }
func (v I8) Pack(buf []byte) error       { return packInt(buf, BE, v) }
func (I8) Unpack(buf []byte) (I8, error) { return unpackInt[I8](buf, BE) }

func (I16) Size() int                      { return 2 }
func (I16) ConstSize() int                 { return 2 }
func (v I16) Pack(buf []byte) error        { return packInt(buf, BE, v) }
func (I16) Unpack(buf []byte) (I16, error) { return unpackInt[I16](buf, BE) }

func (I32) Size() int                      { return 4 }
func (I32) ConstSize() int                 { return 4 }
func (v I32) Pack(buf []byte) error        { return packInt(buf, BE, v) }
func (I32) Unpack(buf []byte) (I32, error) { return unpackInt[I32](buf, BE) }

func (I64) Size() int                      { return 8 }
func (I64) ConstSize() int                 { return 8 }
func (v I64) Pack(buf []byte) error        { return packInt(buf, BE, v) }
func (I64) Unpack(buf []byte) (I64, error) { return unpackInt[I64](buf, BE) }

func (LEU16) Size() int                        { return 2 }
func (LEU16) ConstSize() int                   { return 2 }
func (v LEU16) Pack(buf []byte) error          { return packInt(buf, LE, v) }
func (LEU16) Unpack(buf []byte) (LEU16, error) { return unpackInt[LEU16](buf, LE) }

func (LEU32) Size() int                        { return 4 }
func (LEU32) ConstSize() int                   { return 4 }
func (v LEU32) Pack(buf []byte) error          { return packInt(buf, LE, v) }
func (LEU32) Unpack(buf []byte) (LEU32, error) { return unpackInt[LEU32](buf, LE) }

func (LEU64) Size() int                        { return 8 }
func (LEU64) ConstSize() int                   { return 8 }
func (v LEU64) Pack(buf []byte) error          { return packInt(buf, LE, v) }
func (LEU64) Unpack(buf []byte) (LEU64, error) { return unpackInt[LEU64](buf, LE) }

func (LEI16) Size() int                        { return 2 }
func (LEI16) ConstSize() int                   { return 2 }
func (v LEI16) Pack(buf []byte) error          { return packInt(buf, LE, v) }
func (LEI16) Unpack(buf []byte) (LEI16, error) { return unpackInt[LEI16](buf, LE) }

func (LEI32) Size() int                        { return 4 }
func (LEI32) ConstSize() int                   { return 4 }
func (v LEI32) Pack(buf []byte) error          { return packInt(buf, LE, v) }
func (LEI32) Unpack(buf []byte) (LEI32, error) { return unpackInt[LEI32](buf, LE) }

func (LEI64) Size() int                        { return 8 }
func (LEI64) ConstSize() int                   { return 8 }
func (v LEI64) Pack(buf []byte) error          { return packInt(buf, LE, v) }
func (LEI64) Unpack(buf []byte) (LEI64, error) { return unpackInt[LEI64](buf, LE) }
