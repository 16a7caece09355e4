package bytepack

import "strconv"

// Array is a fixed-count sequence of N elements with no length field and no
// separators. The count is part of the type: Array[U32, N3] always occupies
// three U32 encodings.
type Array[T Elem[T], N Len] []T

var _ ConstElem[Array[U32, N3]] = Array[U32, N3](nil)

// Size is N*ConstSize(T) for constant-size elements, otherwise the sum of the
// element sizes.
func (a Array[T, N]) Size() int {
	if size, ok := a.stride(); ok {
		return size
	}
	return sumSizes(a)
}

// ConstSize is N*ConstSize(T). Arrays of variable-size elements have no
// type-level size and report -1.
func (a Array[T, N]) ConstSize() int {
	if size, ok := a.stride(); ok {
		return size
	}
	return -1
}

func (Array[T, N]) elemDrains() bool { return drainFramed[T]() }

func (Array[T, N]) stride() (int, bool) {
	elem, ok := constSizeOf[T]()
	if !ok {
		return 0, false
	}
	return elem * lenOf[N](), true
}

// Pack writes the N elements in index order. A value holding a different
// number of elements than N is rejected.
func (a Array[T, N]) Pack(buf []byte) error {
	if n := lenOf[N](); len(a) != n {
		return &Error{
			Kind:   KindInvalidState,
			Op:     "pack",
			Type:   typeName[Array[T, N]](),
			Detail: "array holds " + strconv.Itoa(len(a)) + " elements, type declares " + strconv.Itoa(n),
		}
	}
	if err := checkPack[Array[T, N]](buf, a.Size()); err != nil {
		return err
	}
	return packSeq(buf, a)
}

// Unpack reads exactly N elements. For constant-size elements the whole
// stride is checked before any element is parsed.
func (a Array[T, N]) Unpack(buf []byte) (Array[T, N], error) {
	if size, ok := a.stride(); ok {
		if err := checkUnpack[Array[T, N]](buf, size); err != nil {
			return nil, err
		}
	}
	items, _, err := unpackSeq[T](buf, lenOf[N]())
	if err != nil {
		return nil, err
	}
	return Array[T, N](items), nil
}

func sumSizes[T Sizer](items []T) int {
	total := 0
	for _, item := range items {
		total += item.Size()
	}
	return total
}

// packSeq writes items back to back, each into the sub-region that starts
// where the previous one ended. The caller has checked the total size.
func packSeq[T Packer](buf []byte, items []T) error {
	for i, item := range items {
		if err := item.Pack(buf); err != nil {
			return withPath(err, "["+strconv.Itoa(i)+"]")
		}
		buf = buf[item.Size():]
	}
	return nil
}

// unpackSeq parses n elements back to back and reports the bytes consumed.
func unpackSeq[T Unpacker[T]](buf []byte, n int) ([]T, int, error) {
	var zero T
	items := make([]T, 0, n)
	consumed := 0
	for i := 0; i < n; i++ {
		item, err := zero.Unpack(buf[consumed:])
		if err != nil {
			return nil, consumed, withPath(err, "["+strconv.Itoa(i)+"]")
		}
		consumed += item.Size()
		if consumed > len(buf) {
			return nil, consumed, errTruncated[T](consumed, len(buf))
		}
		items = append(items, item)
	}
	return items, consumed, nil
}
