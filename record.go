package bytepack

import (
	"encoding"
	"reflect"
	"strconv"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
)

// layoutCache avoids compiling a record layout through reflection on every
// call. Using a concurrent map makes Record safe to use from many goroutines.
var layoutCache = xsync.NewMap[reflect.Type, *layout]()

var (
	packerType   = reflect.TypeFor[Packer]()
	errorType    = reflect.TypeFor[error]()
	byteSliceTyp = reflect.TypeFor[[]byte]()
)

// Record provides an Elem implementation for any struct Payload whose fields
// are themselves packable, eliminating hand-written composition code.
//
// Fields are laid out in declaration order with no padding. Rules, checked
// once per type when the layout is compiled:
//   - the struct must declare at least one field;
//   - fields must be exported and not embedded; blank (_) fields of a
//     constant-size type are reserved regions, packed from their zero value
//     and skipped on unpack;
//   - field types must implement Packer, or be a Go array of, or pointer to,
//     such a type (a nil pointer packs as the zero value);
//   - a drain framed field (DrainVec, SplatDrain, or a Record ending in one)
//     must be the last field;
//   - a field without an Unpack method (SplatVec) makes the record pack-only.
type Record[Payload any] struct {
	Payload Payload
}

// Statically assert that Record implements the codec interfaces.
var (
	_ Elem[Record[struct{ A U8 }]] = Record[struct{ A U8 }]{}
	_ encoding.BinaryMarshaler     = Record[struct{ A U8 }]{}
	_ encoding.BinaryUnmarshaler   = (*Record[struct{ A U8 }])(nil)
)

// CompileRecord checks that Payload can be laid out as a record. Calling it at
// start-up surfaces layout errors before the first Pack or Unpack.
func CompileRecord[Payload any]() error {
	_, err := compile(reflect.TypeFor[Payload]())
	return err
}

// Size returns the packed size of the payload. A payload whose layout does
// not compile has size 0; Pack and Unpack report the layout error.
func (r Record[Payload]) Size() int {
	l, err := compile(reflect.TypeFor[Payload]())
	if err != nil {
		return 0
	}
	return l.size(reflect.ValueOf(&r.Payload).Elem())
}

// Pack writes the payload fields in declaration order.
func (r Record[Payload]) Pack(buf []byte) error {
	l, err := compile(reflect.TypeFor[Payload]())
	if err != nil {
		return err
	}
	return l.pack(reflect.ValueOf(&r.Payload).Elem(), buf)
}

// Unpack parses the payload fields in declaration order, advancing by each
// parsed field's own size.
func (Record[Payload]) Unpack(buf []byte) (Record[Payload], error) {
	var r Record[Payload]
	l, err := compile(reflect.TypeFor[Payload]())
	if err != nil {
		return r, err
	}
	if _, err := l.unpack(buf, reflect.ValueOf(&r.Payload).Elem()); err != nil {
		return Record[Payload]{}, err
	}
	return r, nil
}

// MarshalBinary implements the standard `encoding.BinaryMarshaler` interface.
// Note: This method allocates a new byte slice. For performance-critical paths,
// use `PackTo` instead.
func (r Record[Payload]) MarshalBinary() ([]byte, error) {
	return Pack(r)
}

// UnmarshalBinary implements the standard `encoding.BinaryUnmarshaler` interface.
// It rejects non-zero trailing bytes, see UnpackStrict.
func (r *Record[Payload]) UnmarshalBinary(data []byte) error {
	v, err := UnpackStrict[Record[Payload]](data)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// tailDrains reports whether the record ends in a drain framed field, which
// makes the record itself drain framed.
func (Record[Payload]) tailDrains() bool {
	l, err := compile(reflect.TypeFor[Payload]())
	return err == nil && l.drains
}

type tailDrainer interface {
	tailDrains() bool
}

// elemDrainer is implemented by wrappers and containers whose element type
// may be drain framed.
type elemDrainer interface {
	elemDrains() bool
}

// isDrainFramed reports whether v, or the element it wraps, consumes the rest
// of its input.
func isDrainFramed(v any) bool {
	switch d := v.(type) {
	case drainer:
		return true
	case tailDrainer:
		return d.tailDrains()
	case elemDrainer:
		return d.elemDrains()
	}
	return false
}

// drainFramed is isDrainFramed for the zero value of T.
func drainFramed[T any]() bool {
	var zero T
	return isDrainFramed(zero)
}

// --- layout compilation ---

type layout struct {
	typ      reflect.Type
	fields   []field
	packOnly string // first field that cannot be unpacked, if any
	drains   bool
	err      error
}

type field struct {
	name  string
	index int
	blank bool
	codec valueCodec
}

// valueCodec packs and unpacks one field value through reflection.
type valueCodec interface {
	size(v reflect.Value) int
	pack(v reflect.Value, buf []byte) error
	// unpack parses into dst and returns the bytes consumed.
	unpack(buf []byte, dst reflect.Value) (int, error)
	canUnpack() bool
	drains() bool
}

func compile(t reflect.Type) (*layout, error) {
	// Attempt to load from the concurrent-safe cache first for performance.
	if l, ok := layoutCache.Load(t); ok {
		return l, l.err
	}

	// If not cached, perform the expensive reflection-based compilation.
	l := compileLayout(t)
	if l.err != nil {
		Logger().Warn("rejected record layout", zap.Stringer("type", t), zap.Error(l.err))
	} else {
		Logger().Debug("compiled record layout",
			zap.Stringer("type", t),
			zap.Int("fields", len(l.fields)),
			zap.String("pack_only", l.packOnly),
			zap.Bool("drains", l.drains))
	}

	// Store the result for subsequent calls.
	layoutCache.Store(t, l)
	return l, l.err
}

func layoutError(sentinel *Error, t reflect.Type, path []string, detail string) error {
	e := *sentinel
	e.Op = "compile"
	e.Type = t.String()
	e.Path = path
	if detail != "" && e.Detail == "" {
		e.Detail = detail
	}
	return &e
}

func compileLayout(t reflect.Type) *layout {
	l := &layout{typ: t}
	if t.Kind() != reflect.Struct {
		l.err = layoutError(ErrInvalidLayout, t, nil, "record payload must be a struct, got "+t.Kind().String())
		return l
	}
	if t.NumField() == 0 {
		l.err = layoutError(ErrNoFields, t, nil, "")
		return l
	}

	last := t.NumField() - 1
	for i := 0; i <= last; i++ {
		sf := t.Field(i)
		if sf.Anonymous || (!sf.IsExported() && sf.Name != "_") {
			l.err = layoutError(ErrUnnamedField, t, []string{sf.Name}, "")
			return l
		}
		vc, err := compileValue(sf.Type, []string{sf.Name})
		if err != nil {
			l.err = err
			return l
		}
		if vc.drains() {
			if i != last {
				l.err = layoutError(ErrLastFieldOnly, t, []string{sf.Name},
					"drain framed field must be the last field")
				return l
			}
			l.drains = true
		}
		blank := sf.Name == "_"
		if blank && !hasConstSize(sf.Type) {
			l.err = layoutError(ErrInvalidLayout, t, []string{sf.Name}, "blank field must have a constant size")
			return l
		}
		if !vc.canUnpack() && l.packOnly == "" {
			l.packOnly = sf.Name
		}
		l.fields = append(l.fields, field{name: sf.Name, index: i, blank: blank, codec: vc})
	}
	return l
}

func hasConstSize(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return false
	}
	cs, ok := reflect.Zero(t).Interface().(ConstSizer)
	return ok && cs.ConstSize() >= 0
}

func compileValue(t reflect.Type, path []string) (valueCodec, error) {
	switch t.Kind() {
	case reflect.Pointer:
		inner, err := compileValue(t.Elem(), path)
		if err != nil {
			return nil, err
		}
		return &pointerCodec{typ: t.Elem(), elem: inner}, nil
	case reflect.Interface:
		return nil, layoutError(ErrInvalidLayout, t, path, "field of interface type has no static layout")
	}
	if t.Implements(packerType) {
		return compileElem(t), nil
	}
	switch t.Kind() {
	case reflect.Array:
		inner, err := compileValue(t.Elem(), append(path, "[]"))
		if err != nil {
			return nil, err
		}
		if inner.drains() {
			return nil, layoutError(ErrLastFieldOnly, t, path, "array of drain framed elements")
		}
		return &arrayCodec{n: t.Len(), elem: inner}, nil
	}
	return nil, layoutError(ErrInvalidLayout, t, path, "field type does not implement Packer")
}

func compileElem(t reflect.Type) *elemCodec {
	c := &elemCodec{typ: t}
	if m, ok := t.MethodByName("Unpack"); ok {
		mt := m.Type // includes the receiver
		if mt.NumIn() == 2 && mt.In(1) == byteSliceTyp &&
			mt.NumOut() == 2 && mt.Out(0) == t && mt.Out(1) == errorType {
			c.unpackFn = m.Func
		}
	}
	c.drain = isDrainFramed(reflect.Zero(t).Interface())
	return c
}

// --- record layout operations ---

func (l *layout) size(v reflect.Value) int {
	total := 0
	for _, f := range l.fields {
		total += f.codec.size(l.fieldValue(v, f))
	}
	return total
}

func (l *layout) fieldValue(v reflect.Value, f field) reflect.Value {
	if f.blank {
		return reflect.Zero(v.Type().Field(f.index).Type)
	}
	return v.Field(f.index)
}

func (l *layout) pack(v reflect.Value, buf []byte) error {
	if size := l.size(v); len(buf) < size {
		return &Error{Kind: KindBufferTooSmall, Op: "pack", Type: l.typ.String(), Need: size, Have: len(buf)}
	}
	off := 0
	for _, f := range l.fields {
		fv := l.fieldValue(v, f)
		if err := f.codec.pack(fv, buf[off:]); err != nil {
			return withPath(err, f.name)
		}
		off += f.codec.size(fv)
	}
	return nil
}

func (l *layout) unpack(buf []byte, dst reflect.Value) (int, error) {
	if l.packOnly != "" {
		e := *ErrPackOnly
		e.Op = "unpack"
		e.Type = l.typ.String()
		e.Path = []string{l.packOnly}
		return 0, &e
	}
	off := 0
	for _, f := range l.fields {
		target := reflect.New(dst.Type().Field(f.index).Type).Elem()
		n, err := f.codec.unpack(buf[off:], target)
		if err != nil {
			return 0, withPath(err, f.name)
		}
		if !f.blank {
			dst.Field(f.index).Set(target)
		}
		off += n
	}
	return off, nil
}

// elemCodec handles a type that implements Packer itself.
type elemCodec struct {
	typ      reflect.Type
	unpackFn reflect.Value // method expression func(T, []byte) (T, error)
	drain    bool
}

func (c *elemCodec) size(v reflect.Value) int {
	return v.Interface().(Sizer).Size()
}

func (c *elemCodec) pack(v reflect.Value, buf []byte) error {
	return v.Interface().(Packer).Pack(buf)
}

func (c *elemCodec) unpack(buf []byte, dst reflect.Value) (int, error) {
	out := c.unpackFn.Call([]reflect.Value{reflect.Zero(c.typ), reflect.ValueOf(buf)})
	if err, _ := out[1].Interface().(error); err != nil {
		return 0, err
	}
	n := out[0].Interface().(Sizer).Size()
	if n > len(buf) {
		return 0, &Error{Kind: KindTruncated, Op: "unpack", Type: c.typ.String(), Need: n, Have: len(buf)}
	}
	dst.Set(out[0])
	return n, nil
}

func (c *elemCodec) canUnpack() bool { return c.unpackFn.IsValid() }
func (c *elemCodec) drains() bool    { return c.drain }

// arrayCodec handles a Go array [N]E of packable elements.
type arrayCodec struct {
	n    int
	elem valueCodec
}

func (c *arrayCodec) size(v reflect.Value) int {
	total := 0
	for i := 0; i < c.n; i++ {
		total += c.elem.size(v.Index(i))
	}
	return total
}

func (c *arrayCodec) pack(v reflect.Value, buf []byte) error {
	off := 0
	for i := 0; i < c.n; i++ {
		ev := v.Index(i)
		if err := c.elem.pack(ev, buf[off:]); err != nil {
			return withPath(err, "["+strconv.Itoa(i)+"]")
		}
		off += c.elem.size(ev)
	}
	return nil
}

func (c *arrayCodec) unpack(buf []byte, dst reflect.Value) (int, error) {
	off := 0
	for i := 0; i < c.n; i++ {
		n, err := c.elem.unpack(buf[off:], dst.Index(i))
		if err != nil {
			return 0, withPath(err, "["+strconv.Itoa(i)+"]")
		}
		off += n
	}
	return off, nil
}

func (c *arrayCodec) canUnpack() bool { return c.elem.canUnpack() }
func (c *arrayCodec) drains() bool    { return false }

// pointerCodec handles *E. A nil pointer packs as the zero E; unpack
// allocates a new E.
type pointerCodec struct {
	typ  reflect.Type
	elem valueCodec
}

func (c *pointerCodec) deref(v reflect.Value) reflect.Value {
	if v.IsNil() {
		return reflect.Zero(c.typ)
	}
	return v.Elem()
}

func (c *pointerCodec) size(v reflect.Value) int { return c.elem.size(c.deref(v)) }

func (c *pointerCodec) pack(v reflect.Value, buf []byte) error {
	return c.elem.pack(c.deref(v), buf)
}

func (c *pointerCodec) unpack(buf []byte, dst reflect.Value) (int, error) {
	p := reflect.New(c.typ)
	n, err := c.elem.unpack(buf, p.Elem())
	if err != nil {
		return 0, err
	}
	dst.Set(p)
	return n, nil
}

func (c *pointerCodec) canUnpack() bool { return c.elem.canUnpack() }
func (c *pointerCodec) drains() bool    { return c.elem.drains() }
