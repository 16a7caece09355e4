package bytepack

// Throw reserves N*ConstSize(T) bytes without materializing their content.
// Pack writes nothing, leaving the region as the caller prepared it (Pack
// allocates it zeroed), and Unpack skips it. Use it for padding and reserved
// regions of a fixed layout.
type Throw[T ConstElem[T], N Len] struct{}

var _ ConstElem[Throw[U32, N2]] = Throw[U32, N2]{}

func (Throw[T, N]) ConstSize() int {
	size, _ := constSizeOf[T]()
	return size * lenOf[N]()
}

func (t Throw[T, N]) Size() int { return t.ConstSize() }

func (t Throw[T, N]) Pack(buf []byte) error {
	return checkPack[Throw[T, N]](buf, t.Size())
}

func (t Throw[T, N]) Unpack(buf []byte) (Throw[T, N], error) {
	return Throw[T, N]{}, checkUnpack[Throw[T, N]](buf, t.Size())
}
