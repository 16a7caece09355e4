package bytepack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	t.Run("Pack", func(t *testing.T) {
		got, err := Pack(Text("ab"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 2, 0x61, 0x62}, got)
	})

	t.Run("Unpack", func(t *testing.T) {
		v, err := Unpack[Text]([]byte{0, 0, 0, 2, 0x61, 0x62})
		require.NoError(t, err)
		assert.Equal(t, Text("ab"), v)
		assert.Equal(t, 6, v.Size())
	})

	t.Run("MultiByte", func(t *testing.T) {
		got, err := Pack(Text("é"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 2, 0xC3, 0xA9}, got)
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		_, err := Unpack[Text]([]byte{0, 0, 0, 2, 0xFF, 0xFE})
		assert.ErrorIs(t, err, ErrInvalidEncoding)

		err = Text("\xff").Pack(make([]byte, 5))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Unpack[Text]([]byte{0, 0, 0, 3, 'a'})
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("LengthAboveLimit", func(t *testing.T) {
		withLimits(t, Limits{MaxTextBytes: 1})
		_, err := Unpack[Text]([]byte{0, 0, 0, 2, 'a', 'b'})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}
