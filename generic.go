package bytepack

import "fmt"

// Pack allocates exactly v.Size() zeroed bytes and packs v into them.
func Pack[T Packer](v T) ([]byte, error) {
	buf := make([]byte, v.Size())
	if err := v.Pack(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PackTo packs v into the front of buf and returns the number of bytes
// written. This is the allocation-free option for hot paths.
func PackTo[T Packer](v T, buf []byte) (int, error) {
	if err := v.Pack(buf); err != nil {
		return 0, err
	}
	return v.Size(), nil
}

// Unpack parses a T from the front of data. Bytes after the value are
// ignored.
func Unpack[T Unpacker[T]](data []byte) (T, error) {
	var zero T
	return zero.Unpack(data)
}

// UnpackStrict is Unpack with a check for unexpected trailing data: every
// byte past the decoded value must be zero. This catches payloads parsed with
// the wrong type, which would otherwise decode silently.
func UnpackStrict[T Unpacker[T]](data []byte) (T, error) {
	v, err := Unpack[T](data)
	if err != nil {
		return v, err
	}
	size := v.Size()
	if size > len(data) {
		// Robustness check: the value claims more bytes than it was parsed from.
		var zero T
		return zero, fmt.Errorf("%w: expected at least %d bytes, but read %d", ErrTruncated, size, len(data))
	}
	if err := CheckBufferNotZeros(data[size:]); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
