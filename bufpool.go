package bytepack

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses buffers for packing values onto streams.
// This reduces GC pressure by avoiding an allocation per written value.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default avoids re-allocations for common record sizes.
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// maxPooledBuffer keeps one oversized frame from pinning memory in the pool.
const maxPooledBuffer = 64 << 10

// packPooled packs v into a pooled buffer and hands the bytes to fn.
// The slice must not be retained after fn returns.
func packPooled(v Packer, fn func([]byte) error) error {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			bytesBufPool.Put(buf)
		}
	}()

	size := v.Size()
	buf.Reset()
	buf.Grow(size)
	b := buf.AvailableBuffer()[:size]
	// Reserved regions are left as found, so they must start zeroed.
	clear(b)
	if err := v.Pack(b); err != nil {
		return err
	}
	return fn(b)
}
