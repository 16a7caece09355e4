package bytepack

import "strconv"

// SplatVec is a variable-length sequence packed with no length field.
// It is pack-only: the element count is not on the wire, so decoding needs
// an externally known count, see UnpackSplat.
type SplatVec[T Packer] []T

var _ Packer = SplatVec[U8](nil)

func (v SplatVec[T]) Size() int { return sumSizes(v) }

func (v SplatVec[T]) Pack(buf []byte) error {
	if err := checkPack[SplatVec[T]](buf, v.Size()); err != nil {
		return err
	}
	return packSeq(buf, v)
}

// UnpackSplat decodes n splat-packed elements from the front of buf.
func UnpackSplat[T Elem[T]](buf []byte, n int) (SplatVec[T], error) {
	if n < 0 {
		return nil, &Error{
			Kind:   KindInvalidState,
			Op:     "unpack",
			Type:   typeName[SplatVec[T]](),
			Detail: "negative element count " + strconv.Itoa(n),
		}
	}
	if size, ok := constSizeOf[T](); ok {
		if err := checkUnpack[SplatVec[T]](buf, size*n); err != nil {
			return nil, err
		}
	}
	items, _, err := unpackSeq[T](buf, n)
	if err != nil {
		return nil, err
	}
	return SplatVec[T](items), nil
}

// drainer marks drain framed types: they consume the rest of their input and
// are only valid as the last field of a record.
type drainer interface {
	drains()
}

// DrainVec is a sequence that consumes the rest of the input when unpacked.
// It must be the last field of any layout it is part of.
type DrainVec[T Elem[T]] []T

var _ Elem[DrainVec[U16]] = DrainVec[U16](nil)

func (DrainVec[T]) drains() {}

// Size is the sum of the element sizes, so that a DrainVec in last position
// packs to exactly the bytes it unpacks from.
func (v DrainVec[T]) Size() int { return sumSizes(v) }

func (v DrainVec[T]) Pack(buf []byte) error {
	if err := checkPack[DrainVec[T]](buf, v.Size()); err != nil {
		return err
	}
	return packSeq(buf, v)
}

// Unpack parses elements until buf is exhausted. A trailing partial element
// fails with ErrTruncated.
func (DrainVec[T]) Unpack(buf []byte) (DrainVec[T], error) {
	items, err := drain[T](buf)
	if err != nil {
		return nil, err
	}
	return DrainVec[T](items), nil
}

func drain[T Unpacker[T]](buf []byte) ([]T, error) {
	var (
		zero  T
		items []T
	)
	if size, ok := constSizeOf[T](); ok && size > 0 {
		if rem := len(buf) % size; rem != 0 {
			return nil, &Error{
				Kind:   KindTruncated,
				Op:     "unpack",
				Type:   typeName[T](),
				Need:   size,
				Have:   rem,
				Detail: "partial trailing element",
			}
		}
		items = make([]T, 0, len(buf)/size)
	}
	for i := 0; len(buf) > 0; i++ {
		item, err := zero.Unpack(buf)
		if err != nil {
			return nil, withPath(err, "["+strconv.Itoa(i)+"]")
		}
		size := item.Size()
		if size <= 0 {
			return nil, &Error{
				Kind:   KindInvalidEncoding,
				Op:     "unpack",
				Type:   typeName[T](),
				Detail: "zero-size element cannot be drained",
			}
		}
		if size > len(buf) {
			return nil, errTruncated[T](size, len(buf))
		}
		items = append(items, item)
		buf = buf[size:]
	}
	return items, nil
}

// SplatDrain is a sequence with two states. A value built with Splat packs
// like a SplatVec; a value produced by Unpack is in drain state, holds every
// element up to the end of the input and cannot be packed again.
type SplatDrain[T Elem[T]] struct {
	items   []T
	drained bool
}

var _ Elem[SplatDrain[U16]] = SplatDrain[U16]{}

// Splat returns a SplatDrain in splat state.
func Splat[T Elem[T]](items ...T) SplatDrain[T] {
	return SplatDrain[T]{items: items}
}

func (SplatDrain[T]) drains() {}

// Items returns the elements in either state.
func (v SplatDrain[T]) Items() []T { return v.items }

// Drained reports whether v was produced by Unpack.
func (v SplatDrain[T]) Drained() bool { return v.drained }

func (v SplatDrain[T]) Size() int { return sumSizes(v.items) }

// Pack fails with ErrInvalidState for a drain state value.
func (v SplatDrain[T]) Pack(buf []byte) error {
	if v.drained {
		return &Error{
			Kind:   KindInvalidState,
			Op:     "pack",
			Type:   typeName[SplatDrain[T]](),
			Detail: "cannot pack a drain state value",
		}
	}
	if err := checkPack[SplatDrain[T]](buf, v.Size()); err != nil {
		return err
	}
	return packSeq(buf, v.items)
}

// Unpack reads to the end of buf and returns a drain state value.
func (SplatDrain[T]) Unpack(buf []byte) (SplatDrain[T], error) {
	items, err := drain[T](buf)
	if err != nil {
		return SplatDrain[T]{}, err
	}
	return SplatDrain[T]{items: items, drained: true}, nil
}

// SizedVec is a sequence preceded by its element count, written as a
// LengthPrefixSize byte big-endian unsigned integer.
type SizedVec[T Elem[T]] []T

var _ Elem[SizedVec[U8]] = SizedVec[U8](nil)

func (SizedVec[T]) elemDrains() bool { return drainFramed[T]() }

func (v SizedVec[T]) Size() int { return LengthPrefixSize + sumSizes(v) }

func (v SizedVec[T]) Pack(buf []byte) error {
	if err := checkLength[SizedVec[T]](len(v)); err != nil {
		return err
	}
	if err := checkPack[SizedVec[T]](buf, v.Size()); err != nil {
		return err
	}
	putLength(buf, len(v))
	return packSeq(buf[LengthPrefixSize:], v)
}

// Unpack reads the count, then exactly that many elements. Counts above
// Limits.MaxElements are rejected; a count whose elements cannot fit in the
// input fails with ErrTruncated before anything is allocated.
func (SizedVec[T]) Unpack(buf []byte) (SizedVec[T], error) {
	if err := checkUnpack[SizedVec[T]](buf, LengthPrefixSize); err != nil {
		return nil, err
	}
	n := getLength(buf)
	if limit := CurrentLimits().MaxElements; n > limit {
		return nil, &Error{
			Kind:   KindInvalidEncoding,
			Op:     "unpack",
			Type:   typeName[SizedVec[T]](),
			Detail: "element count " + strconv.Itoa(n) + " exceeds limit " + strconv.Itoa(limit),
		}
	}
	body := buf[LengthPrefixSize:]
	if size, ok := constSizeOf[T](); ok {
		if err := checkUnpack[SizedVec[T]](buf, LengthPrefixSize+n*size); err != nil {
			return nil, err
		}
	}
	items, _, err := unpackSeq[T](body, n)
	if err != nil {
		return nil, err
	}
	return SizedVec[T](items), nil
}
