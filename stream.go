package bytepack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// frame prefixes a value with its packed size.
type frame struct {
	v Packer
}

func (f frame) Size() int { return LengthPrefixSize + f.v.Size() }

func (f frame) Pack(buf []byte) error {
	n := f.v.Size()
	if limit := CurrentLimits().MaxFrameBytes; n > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, n, limit)
	}
	if err := checkLength[frame](n); err != nil {
		return err
	}
	if err := checkPack[frame](buf, LengthPrefixSize+n); err != nil {
		return err
	}
	putLength(buf, n)
	return f.v.Pack(buf[LengthPrefixSize:])
}

// Writer packs values onto an io.Writer. It tracks the first error that
// occurs; after an error, all subsequent writes become no-ops.
type Writer struct {
	w     *bufio.Writer
	count int64 // total bytes written
	err   error // first error encountered
}

// NewWriter wraps w in a buffered Writer. A *bufio.Writer is used as is to
// prevent double-buffering.
func NewWriter(w io.Writer) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	if bw, ok := w.(*bufio.Writer); ok {
		return &Writer{w: bw}, nil
	}
	return &Writer{w: bufio.NewWriter(w)}, nil
}

// Put packs v and writes its bytes.
func (w *Writer) Put(v Packer) {
	if w.err != nil {
		return
	}
	w.setError(packPooled(v, w.write))
}

// PutFrame writes v preceded by its size as a 4-byte big-endian length.
func (w *Writer) PutFrame(v Packer) {
	if w.err != nil {
		return
	}
	w.setError(packPooled(frame{v: v}, w.write))
}

func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	w.count += int64(n)
	return err
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.setError(w.w.Flush())
	return w.err
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Reader unpacks values from an io.Reader and tracks the first error.
// Subsequent reads become no-ops.
type Reader struct {
	r     *bufio.Reader
	count int64 // total bytes read
	err   error // first error encountered
}

// NewReader wraps r in a buffered Reader. A *bufio.Reader is used as is.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}, nil
	}
	return &Reader{r: bufio.NewReader(r)}, nil
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }

// IsEOF reports whether the stream ended cleanly on a value boundary.
func (r *Reader) IsEOF() bool { return r.err == io.EOF }

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// readFull reads exactly n bytes. A clean end of stream before the first byte
// is io.EOF; a partial read is io.ErrUnexpectedEOF.
func (r *Reader) readFull(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.count += int64(read)
	if err != nil {
		r.setError(err)
		return nil
	}
	return buf
}

// streamSize is the number of bytes to read for one T. Types whose
// ConstSize is negative, such as arrays of variable-size elements, cannot be
// read without framing.
func streamSize[T any]() (int, error) {
	size, ok := constSizeOf[T]()
	if !ok {
		return 0, &Error{
			Kind:   KindInvalidLayout,
			Op:     "unpack",
			Type:   typeName[T](),
			Detail: "type has no constant size, read it as a frame",
		}
	}
	return size, nil
}

// Read reads one constant-size T into dst.
func Read[T ConstElem[T]](r *Reader, dst *T) {
	if r.err != nil {
		return
	}
	size, err := streamSize[T]()
	if err != nil {
		r.setError(err)
		return
	}
	buf := r.readFull(size)
	if r.err != nil {
		return
	}
	var zero T
	v, err := zero.Unpack(buf)
	if err != nil {
		r.setError(err)
		return
	}
	*dst = v
}

// ReadFramed reads one frame written by PutFrame and unpacks it into dst.
// The value must account for every byte of the frame.
func ReadFramed[T Unpacker[T]](r *Reader, dst *T) {
	head := r.readFull(LengthPrefixSize)
	if r.err != nil {
		return
	}
	n := getLength(head)
	if limit := CurrentLimits().MaxFrameBytes; n > limit {
		r.setError(fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, n, limit))
		return
	}
	body := r.readFull(n)
	if r.err != nil {
		if r.err == io.EOF {
			r.err = io.ErrUnexpectedEOF
		}
		return
	}
	var zero T
	v, err := zero.Unpack(body)
	if err != nil {
		r.setError(err)
		return
	}
	if size := v.Size(); size != n {
		r.setError(fmt.Errorf("%w: frame of %d bytes holds a %d byte value", ErrTrailingData, n, size))
		return
	}
	*dst = v
}

// WriteValue packs v and writes it to w unbuffered.
func WriteValue(w io.Writer, v Packer) (int, error) {
	if w == nil {
		return 0, ErrNilIO
	}
	var n int
	err := packPooled(v, func(b []byte) error {
		var err error
		n, err = w.Write(b)
		return err
	})
	return n, err
}

// WriteFrame writes v to w as a length-prefixed frame.
func WriteFrame(w io.Writer, v Packer) (int, error) {
	return WriteValue(w, frame{v: v})
}

// ReadValue reads exactly ConstSize bytes from r and unpacks a T. It does not
// read ahead, so r stays positioned after the value.
func ReadValue[T ConstElem[T]](r io.Reader) (T, error) {
	var zero T
	if r == nil {
		return zero, ErrNilIO
	}
	size, err := streamSize[T]()
	if err != nil {
		return zero, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return zero, err
	}
	return zero.Unpack(buf)
}

// ReadFrame reads one length-prefixed frame from r and unpacks a T from it.
// It does not read past the frame.
func ReadFrame[T Unpacker[T]](r io.Reader) (T, error) {
	var zero T
	if r == nil {
		return zero, ErrNilIO
	}
	var head [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return zero, err
	}
	n := getLength(head[:])
	if limit := CurrentLimits().MaxFrameBytes; n > limit {
		return zero, fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, n, limit)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return zero, err
	}
	v, err := zero.Unpack(body)
	if err != nil {
		return zero, err
	}
	if size := v.Size(); size != n {
		return zero, fmt.Errorf("%w: frame of %d bytes holds a %d byte value", ErrTrailingData, n, size)
	}
	return v, nil
}
