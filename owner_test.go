package bytepack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipWrappersAreTransparent(t *testing.T) {
	plain, err := Pack(U32(0x01020304))
	require.NoError(t, err)

	wrapped := []Packer{
		NewBox(U32(0x01020304)),
		NewShared(U32(0x01020304)),
		NewCell(U32(0x01020304)),
		NewAtomic(U32(0x01020304)),
	}
	for _, w := range wrapped {
		assert.Equal(t, 4, w.Size())
		got, err := Pack(w)
		require.NoError(t, err)
		assert.Equal(t, plain, got, "%T", w)
	}
}

func TestOwnershipWrappersUnpack(t *testing.T) {
	data := []byte{0, 5}

	box, err := Unpack[Box[U16]](data)
	require.NoError(t, err)
	require.NotNil(t, box.V)
	assert.Equal(t, U16(5), *box.V)

	shared, err := Unpack[Shared[U16]](data)
	require.NoError(t, err)
	assert.Equal(t, U16(5), *shared.Get())

	c, err := Unpack[Cell[U16]](data)
	require.NoError(t, err)
	assert.Equal(t, U16(5), c.Get())

	a, err := Unpack[Atomic[U16]](data)
	require.NoError(t, err)
	assert.Equal(t, U16(5), a.Load())

	_, err = Unpack[Box[U16]](data[:1])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestOwnershipWrappersZeroValue(t *testing.T) {
	got, err := Pack(Box[U16]{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, got)

	got, err = Pack(Atomic[U16]{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, got)
}

func TestSharedHandlesSeeUpdates(t *testing.T) {
	cell := NewCell(U16(1))
	copyOfCell := cell
	copyOfCell.Set(2)

	got, err := Pack(cell)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 2}, got)

	shared := NewShared(U16(1))
	*shared.Get() = 3
	got, err = Pack(shared)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 3}, got)
}

func TestAtomicConcurrentUse(t *testing.T) {
	a := NewAtomic(U32(0))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a.Store(U32(i))
			buf := make([]byte, 4)
			assert.NoError(t, a.Pack(buf))
		}(i)
	}
	wg.Wait()
	assert.Less(t, uint32(a.Load()), uint32(8))
}
