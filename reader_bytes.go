package bytepack

// BytesReader unpacks values back to back from a byte slice. After each value
// it advances by that value's own Size(), so variable-length fields need no
// precomputed offsets. The first error is latched and later reads are no-ops.
type BytesReader struct {
	B   []byte // source slice
	N   int    // current read position
	err error
}

// NewBytesReader creates a new BytesReader.
func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{B: b}
}

// Next unpacks a T at the reader's position into dst and advances past it.
// dst is left untouched on error.
func Next[T Unpacker[T]](r *BytesReader, dst *T) {
	if r.err != nil {
		return
	}
	var zero T
	v, err := zero.Unpack(r.B[r.N:])
	if err != nil {
		r.err = err
		return
	}
	if !r.advance(v.Size()) {
		return
	}
	*dst = v
}

// NextField is Next with the field name recorded in the error path.
func NextField[T Unpacker[T]](r *BytesReader, name string, dst *T) {
	if r.err != nil {
		return
	}
	Next(r, dst)
	if r.err != nil {
		r.err = withPath(r.err, name)
	}
}

func (r *BytesReader) advance(n int) bool {
	if n > r.Available() {
		r.err = &Error{Kind: KindTruncated, Op: "unpack", Need: n, Have: r.Available()}
		return false
	}
	r.N += n
	return true
}

// Skip advances the position by n bytes.
func (r *BytesReader) Skip(n int) {
	if r.err == nil {
		r.advance(n)
	}
}

// Rest returns the unread part of the slice.
func (r *BytesReader) Rest() []byte { return r.B[r.N:] }

func (r *BytesReader) Err() error { return r.err }

// Result returns the number of bytes consumed and the latched error.
func (r *BytesReader) Result() (int, error) { return r.N, r.err }

// Reset allows the underlying byte slice to be reused.
func (r *BytesReader) Reset() { r.N, r.err = 0, nil }

// Len returns the number of bytes read.
func (r *BytesReader) Len() int { return r.N }

// Size returns the size of the underlying byte slice.
func (r *BytesReader) Size() int { return len(r.B) }

// Available returns the number of bytes available for reading.
func (r *BytesReader) Available() int { return len(r.B) - r.N }
