package bytepack

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a codec failure.
type Kind string

const (
	// KindBufferTooSmall: a write target has fewer bytes than the value's size.
	KindBufferTooSmall Kind = "buffer_too_small"
	// KindTruncated: a read source has fewer bytes than the type requires.
	KindTruncated Kind = "truncated"
	// KindInvalidEncoding: decoded bytes are not a valid value (e.g. bad UTF-8).
	KindInvalidEncoding Kind = "invalid_encoding"
	// KindInvalidState: the value cannot be written through its framing.
	KindInvalidState Kind = "invalid_state"
	// KindLastFieldOnly: a drain framed field is not the last field of a record.
	KindLastFieldOnly Kind = "last_field_only"
	// KindInvalidLayout: a record type cannot be compiled into a layout.
	KindInvalidLayout Kind = "invalid_layout"
)

// Error is the structured error returned by every codec operation.
// errors.Is matches on Kind, so callers test against the sentinels below.
type Error struct {
	Kind   Kind
	Op     string   // "pack" or "unpack" or "compile"
	Type   string   // Go type being processed
	Path   []string // field path inside composite values, outermost first
	Need   int      // bytes required, when known
	Have   int      // bytes available, when known
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("bytepack: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteByte(' ')
	}
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(" (")
		b.WriteString(e.Type)
		b.WriteByte(')')
	}
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Need > 0 || e.Have > 0 {
		fmt.Fprintf(&b, ": need %d bytes, have %d", e.Need, e.Have)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind && (t.Detail == "" || t.Detail == e.Detail)
	}
	return false
}

var (
	ErrBufferTooSmall  = &Error{Kind: KindBufferTooSmall}
	ErrTruncated       = &Error{Kind: KindTruncated}
	ErrInvalidEncoding = &Error{Kind: KindInvalidEncoding}
	ErrInvalidState    = &Error{Kind: KindInvalidState}
	ErrLastFieldOnly   = &Error{Kind: KindLastFieldOnly}
	ErrInvalidLayout   = &Error{Kind: KindInvalidLayout}

	// ErrNoFields indicates a record type declares no fields.
	ErrNoFields = &Error{Kind: KindInvalidLayout, Detail: "record has no fields"}
	// ErrUnnamedField indicates an embedded or unexported record field.
	ErrUnnamedField = &Error{Kind: KindInvalidLayout, Detail: "record field is embedded or unexported"}
	// ErrPackOnly indicates a record holds a field that cannot be unpacked
	// without an external count, such as a SplatVec.
	ErrPackOnly = &Error{Kind: KindInvalidState, Detail: "record is pack-only"}
)

var (
	// ErrNilIO indicates a stream helper was called with a nil io.Reader/io.Writer.
	ErrNilIO = errors.New("bytepack: called with a nil io.Reader/io.Writer")

	// ErrTrailingData is returned by UnpackStrict when non-zero bytes are found
	// after the decoded value.
	ErrTrailingData = errors.New("bytepack: non-zero trailing data found after decoding")

	// ErrFrameTooLarge indicates a frame header announces more bytes than Limits allow.
	ErrFrameTooLarge = errors.New("bytepack: frame exceeds configured limit")
)

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

func errTooSmall[T any](need, have int) error {
	return &Error{Kind: KindBufferTooSmall, Op: "pack", Type: typeName[T](), Need: need, Have: have}
}

func errTruncated[T any](need, have int) error {
	return &Error{Kind: KindTruncated, Op: "unpack", Type: typeName[T](), Need: need, Have: have}
}

// withPath prefixes the field path of a codec error, leaving other errors as is.
func withPath(err error, field string) error {
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		cp.Path = append([]string{field}, e.Path...)
		return &cp
	}
	return fmt.Errorf("%s: %w", field, err)
}

// checkPack is the bounds check every Pack implementation starts with.
func checkPack[T any](buf []byte, size int) error {
	if len(buf) < size {
		return errTooSmall[T](size, len(buf))
	}
	return nil
}

// checkUnpack is the bounds check for reads of a known minimum size.
func checkUnpack[T any](buf []byte, size int) error {
	if len(buf) < size {
		return errTruncated[T](size, len(buf))
	}
	return nil
}
