package bytepack

// BytesWriter packs values back to back into a pre-allocated byte slice.
// It never grows the slice. The first error is latched and every later Put
// becomes a no-op, so a sequence of fields needs a single error check.
type BytesWriter struct {
	B   []byte // destination slice
	N   int    // current write position
	err error
}

// NewBytesWriter creates a new BytesWriter.
func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p}
}

// Put packs p at the current position and advances by p.Size().
func (w *BytesWriter) Put(p Packer) {
	if w.err != nil {
		return
	}
	if err := p.Pack(w.B[w.N:]); err != nil {
		w.err = err
		return
	}
	w.N += p.Size()
}

// PutField is Put with the field name recorded in the error path.
func (w *BytesWriter) PutField(name string, p Packer) {
	if w.err != nil {
		return
	}
	w.Put(p)
	if w.err != nil {
		w.err = withPath(w.err, name)
	}
}

// Skip advances the position by n bytes without writing them.
func (w *BytesWriter) Skip(n int) {
	if w.err != nil {
		return
	}
	if n > w.Available() {
		w.err = &Error{Kind: KindBufferTooSmall, Op: "pack", Need: n, Have: w.Available()}
		return
	}
	w.N += n
}

func (w *BytesWriter) Err() error { return w.err }

// Result returns the number of bytes written and the latched error.
func (w *BytesWriter) Result() (int, error) { return w.N, w.err }

// Reset allows the underlying byte slice to be reused.
func (w *BytesWriter) Reset() { w.N, w.err = 0, nil }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return w.N }

// Available returns the number of bytes available for writing.
func (w *BytesWriter) Available() int { return len(w.B) - w.N }

// Bytes returns a slice view of the written data.
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }
