package bytepack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizedVec(t *testing.T) {
	t.Run("Pack", func(t *testing.T) {
		v := SizedVec[U8]{1, 2, 0xFF}
		assert.Equal(t, 7, v.Size())

		got, err := Pack(v)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 3, 1, 2, 0xFF}, got)
	})

	t.Run("Unpack", func(t *testing.T) {
		v, err := Unpack[SizedVec[U8]]([]byte{0, 0, 0, 3, 1, 2, 0xFF})
		require.NoError(t, err)
		assert.Equal(t, SizedVec[U8]{1, 2, 0xFF}, v)
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := Pack(SizedVec[U32]{})
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 0}, got)

		v, err := Unpack[SizedVec[U32]](got)
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Unpack[SizedVec[U8]]([]byte{0, 0, 0, 3, 1})
		assert.ErrorIs(t, err, ErrTruncated)

		_, err = Unpack[SizedVec[U8]]([]byte{0, 0, 0})
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("VariableElements", func(t *testing.T) {
		v := SizedVec[Text]{"a", "bc"}
		got, err := Pack(v)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 2, 0, 0, 0, 1, 'a', 0, 0, 0, 2, 'b', 'c'}, got)

		back, err := Unpack[SizedVec[Text]](got)
		require.NoError(t, err)
		assert.Equal(t, v, back)

		_, err = Unpack[SizedVec[Text]](got[:len(got)-1])
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("CountAboveLimit", func(t *testing.T) {
		withLimits(t, Limits{MaxElements: 2})
		_, err := Unpack[SizedVec[U8]]([]byte{0, 0, 0, 3, 1, 2, 3})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("BufferTooSmall", func(t *testing.T) {
		buf := make([]byte, 5)
		err := SizedVec[U16]{1, 2}.Pack(buf)
		assert.ErrorIs(t, err, ErrBufferTooSmall)
		assert.Equal(t, make([]byte, 5), buf)
	})
}

func TestDrainVec(t *testing.T) {
	t.Run("ConsumesRest", func(t *testing.T) {
		v, err := Unpack[DrainVec[U16]]([]byte{1, 2, 0xFF, 0})
		require.NoError(t, err)
		assert.Equal(t, DrainVec[U16]{0x0102, 0xFF00}, v)
		assert.Equal(t, 4, v.Size())
	})

	t.Run("EmptyInput", func(t *testing.T) {
		v, err := Unpack[DrainVec[U16]](nil)
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("PartialTrailingElement", func(t *testing.T) {
		_, err := Unpack[DrainVec[U16]]([]byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("PackWritesElements", func(t *testing.T) {
		got, err := Pack(DrainVec[U16]{0x0102, 0xFF00})
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 0xFF, 0}, got)
	})

	t.Run("VariableElements", func(t *testing.T) {
		v, err := Unpack[DrainVec[Text]]([]byte{0, 0, 0, 1, 'x', 0, 0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, DrainVec[Text]{"x", ""}, v)
	})
}

func TestSplatVec(t *testing.T) {
	got, err := Pack(SplatVec[U16]{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0, 2}, got)

	v, err := UnpackSplat[U16](got, 2)
	require.NoError(t, err)
	assert.Equal(t, SplatVec[U16]{1, 2}, v)

	_, err = UnpackSplat[U16](got, 3)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = UnpackSplat[U16](got, -1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSplatDrain(t *testing.T) {
	t.Run("SplatStatePacks", func(t *testing.T) {
		v := Splat[U8](1, 2, 3)
		assert.False(t, v.Drained())
		got, err := Pack(v)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, got)
	})

	t.Run("DrainStateCannotPack", func(t *testing.T) {
		v, err := Unpack[SplatDrain[U8]]([]byte{1, 2, 3})
		require.NoError(t, err)
		assert.True(t, v.Drained())
		assert.Equal(t, []U8{1, 2, 3}, v.Items())

		err = v.Pack(make([]byte, 3))
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}
