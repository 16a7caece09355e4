// Package bytepack converts structured values into flat, byte-exact layouts
// and back. Every type states its own size, writes exactly that many bytes and
// reads them back, so composite layouts can be built field by field without
// padding or runtime metadata.
package bytepack

// Sizer is an interface for types that can report their binary size.
// Size never fails and depends only on the in-memory shape of the value.
type Sizer interface {
	// Size returns the number of bytes the value occupies when packed.
	Size() int
}

// ConstSizer is implemented by types whose packed size is fixed by the type
// alone. ConstSize is called on the zero value and must ignore the receiver.
type ConstSizer interface {
	ConstSize() int
}

// Packer writes a value into the front of a caller supplied region.
type Packer interface {
	Sizer

	// Pack writes exactly Size() bytes into the front of buf.
	// It fails with ErrBufferTooSmall when len(buf) < Size() and never
	// touches bytes past Size().
	Pack(buf []byte) error
}

// Unpacker parses a T from the front of a region. Unpack is called on the
// zero value of T, which acts as the factory, so that a type can name itself
// as its own decoder: `func (U16) Unpack(buf []byte) (U16, error)`.
//
// The number of bytes consumed is the Size() of the result, except for drain
// framing which consumes the whole region.
type Unpacker[T any] interface {
	Sizer
	Unpack(buf []byte) (T, error)
}

// Elem is the element constraint of every container in this package.
type Elem[T any] interface {
	Packer
	Unpacker[T]
}

// ConstElem is an Elem with a type-level size.
type ConstElem[T any] interface {
	Elem[T]
	ConstSizer
}

// Len carries a compile-time count as a type, since Go generics have no
// constant parameters. Len is called on the zero value.
type Len interface {
	Len() int
}

// Predeclared counts. Declare your own with a struct{} and a Len method.
type (
	N1  struct{}
	N2  struct{}
	N3  struct{}
	N4  struct{}
	N5  struct{}
	N6  struct{}
	N7  struct{}
	N8  struct{}
	N16 struct{}
	N20 struct{}
	N32 struct{}
	N64 struct{}
)

func (N1) Len() int  { return 1 }
func (N2) Len() int  { return 2 }
func (N3) Len() int  { return 3 }
func (N4) Len() int  { return 4 }
func (N5) Len() int  { return 5 }
func (N6) Len() int  { return 6 }
func (N7) Len() int  { return 7 }
func (N8) Len() int  { return 8 }
func (N16) Len() int { return 16 }
func (N20) Len() int { return 20 }
func (N32) Len() int { return 32 }
func (N64) Len() int { return 64 }

// lenOf returns the count carried by N.
func lenOf[N Len]() int {
	var n N
	return n.Len()
}

// constSizeOf reports the type-level size of T, if it has one.
// A negative ConstSize means the type has none.
func constSizeOf[T any]() (int, bool) {
	var zero T
	if cs, ok := any(zero).(ConstSizer); ok {
		if size := cs.ConstSize(); size >= 0 {
			return size, true
		}
	}
	return 0, false
}
