package bytepack

import (
	"sync"
	"sync/atomic"
)

// Ownership wrappers annotate how a value is held. They add no framing:
// Size, Pack and Unpack of a wrapper are exactly those of the wrapped value.
// A wrapper holding nothing encodes as the zero value of T.

// holder is the single delegate behind every ownership wrapper.
type holder[T any] interface {
	load() T
}

func delegateSize[T Elem[T], H holder[T]](h H) int {
	return h.load().Size()
}

func delegatePack[T Elem[T], H holder[T]](h H, buf []byte) error {
	return h.load().Pack(buf)
}

func delegateUnpack[T Elem[T]](buf []byte) (T, error) {
	var zero T
	return zero.Unpack(buf)
}

// Box exclusively owns a heap allocated T.
type Box[T Elem[T]] struct {
	V *T
}

var _ Elem[Box[U32]] = Box[U32]{}

func NewBox[T Elem[T]](v T) Box[T] { return Box[T]{V: &v} }

func (b Box[T]) load() T {
	if b.V == nil {
		var zero T
		return zero
	}
	return *b.V
}

func (Box[T]) elemDrains() bool { return drainFramed[T]() }

func (b Box[T]) Size() int             { return delegateSize[T](b) }
func (b Box[T]) Pack(buf []byte) error { return delegatePack[T](b, buf) }
func (Box[T]) Unpack(buf []byte) (Box[T], error) {
	v, err := delegateUnpack[T](buf)
	if err != nil {
		return Box[T]{}, err
	}
	return Box[T]{V: &v}, nil
}

// Shared is a handle to a T that copies of the handle share.
type Shared[T Elem[T]] struct {
	p *T
}

var _ Elem[Shared[U32]] = Shared[U32]{}

func NewShared[T Elem[T]](v T) Shared[T] { return Shared[T]{p: &v} }

// Get returns the shared value; every copy of the handle sees the same one.
func (s Shared[T]) Get() *T { return s.p }

func (s Shared[T]) load() T {
	if s.p == nil {
		var zero T
		return zero
	}
	return *s.p
}

func (Shared[T]) elemDrains() bool { return drainFramed[T]() }

func (s Shared[T]) Size() int             { return delegateSize[T](s) }
func (s Shared[T]) Pack(buf []byte) error { return delegatePack[T](s, buf) }
func (Shared[T]) Unpack(buf []byte) (Shared[T], error) {
	v, err := delegateUnpack[T](buf)
	if err != nil {
		return Shared[T]{}, err
	}
	return NewShared(v), nil
}

// Cell holds a T that may be replaced through any copy of the handle.
// Reads and writes are guarded by a mutex.
type Cell[T Elem[T]] struct {
	c *cell[T]
}

type cell[T any] struct {
	mu sync.RWMutex
	v  T
}

var _ Elem[Cell[U32]] = Cell[U32]{}

func NewCell[T Elem[T]](v T) Cell[T] { return Cell[T]{c: &cell[T]{v: v}} }

func (c Cell[T]) Get() T { return c.load() }

// Set replaces the held value. It panics on a zero Cell; use NewCell.
func (c Cell[T]) Set(v T) {
	c.c.mu.Lock()
	c.c.v = v
	c.c.mu.Unlock()
}

func (c Cell[T]) load() T {
	if c.c == nil {
		var zero T
		return zero
	}
	c.c.mu.RLock()
	defer c.c.mu.RUnlock()
	return c.c.v
}

func (Cell[T]) elemDrains() bool { return drainFramed[T]() }

func (c Cell[T]) Size() int             { return delegateSize[T](c) }
func (c Cell[T]) Pack(buf []byte) error { return delegatePack[T](c, buf) }
func (Cell[T]) Unpack(buf []byte) (Cell[T], error) {
	v, err := delegateUnpack[T](buf)
	if err != nil {
		return Cell[T]{}, err
	}
	return NewCell(v), nil
}

// Atomic is a handle to a T that is swapped atomically and can be shared
// between goroutines.
type Atomic[T Elem[T]] struct {
	p *atomic.Pointer[T]
}

var _ Elem[Atomic[U32]] = Atomic[U32]{}

func NewAtomic[T Elem[T]](v T) Atomic[T] {
	a := Atomic[T]{p: new(atomic.Pointer[T])}
	a.p.Store(&v)
	return a
}

func (a Atomic[T]) Load() T { return a.load() }

// Store replaces the held value. It panics on a zero Atomic; use NewAtomic.
func (a Atomic[T]) Store(v T) { a.p.Store(&v) }

func (a Atomic[T]) load() T {
	if a.p == nil {
		var zero T
		return zero
	}
	if v := a.p.Load(); v != nil {
		return *v
	}
	var zero T
	return zero
}

func (Atomic[T]) elemDrains() bool { return drainFramed[T]() }

func (a Atomic[T]) Size() int             { return delegateSize[T](a) }
func (a Atomic[T]) Pack(buf []byte) error { return delegatePack[T](a, buf) }
func (Atomic[T]) Unpack(buf []byte) (Atomic[T], error) {
	v, err := delegateUnpack[T](buf)
	if err != nil {
		return Atomic[T]{}, err
	}
	return NewAtomic(v), nil
}
