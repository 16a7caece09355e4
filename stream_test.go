package bytepack

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// shortWriter accepts at most limit bytes and then fails.
type shortWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if room := w.limit - w.buf.Len(); len(p) > room {
		w.buf.Write(p[:room])
		return room, io.ErrShortWrite
	}
	return w.buf.Write(p)
}

// --- Writer Test Suite ---

type WriterTestSuite struct {
	suite.Suite
	buf    *bytes.Buffer
	writer *Writer
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *WriterTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.writer, _ = NewWriter(s.buf)
}

func (s *WriterTestSuite) TestConstructors() {
	_, err := NewWriter(nil)
	s.ErrorIs(err, ErrNilIO)
}

func (s *WriterTestSuite) TestBasicWrites() {
	s.writer.Put(U8(0xAA))
	s.writer.Put(U16(0xBBCC))
	s.writer.Put(LEU32(0xDDEEFF00))
	s.writer.PutFrame(Text("hi"))

	n, err := s.writer.Result()
	s.Require().NoError(err)
	s.EqualValues(1+2+4+4+6, n)
	s.EqualValues(s.buf.Len(), s.writer.Count())

	expected := []byte{
		0xAA,
		0xBB, 0xCC,
		0x00, 0xFF, 0xEE, 0xDD,
		0, 0, 0, 6, 0, 0, 0, 2, 'h', 'i',
	}
	s.Equal(expected, s.buf.Bytes())
}

func (s *WriterTestSuite) TestNothingWrittenBeforeFlush() {
	s.writer.Put(U32(1))
	s.Zero(s.buf.Len())
	s.Require().NoError(s.writer.Flush())
	s.Equal(4, s.buf.Len())
}

func (s *WriterTestSuite) TestErrorHandling() {
	s.Run("PackErrorIsLatched", func() {
		w, _ := NewWriter(&bytes.Buffer{})
		w.Put(Text("\xff"))
		w.Put(U8(1))

		n, err := w.Result()
		s.ErrorIs(err, ErrInvalidEncoding)
		s.Zero(n)
	})

	s.Run("ShortWrite", func() {
		sw := &shortWriter{limit: 5}
		w, _ := NewWriter(sw)
		w.Put(U32(0x11223344))
		w.Put(U32(0xAABBCCDD))

		_, err := w.Result()
		s.Require().Error(err)
		s.ErrorIs(err, io.ErrShortWrite)

		// Subsequent writes are no-ops once an error is latched.
		w.Put(U8(0xFF))
		s.ErrorIs(w.Flush(), io.ErrShortWrite)
		s.Equal(5, sw.buf.Len())
	})
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

// --- Reader Test Suite ---

type ReaderTestSuite struct {
	suite.Suite
}

func (s *ReaderTestSuite) TestConstructors() {
	_, err := NewReader(nil)
	s.ErrorIs(err, ErrNilIO)
}

func (s *ReaderTestSuite) TestReadSequence() {
	var src bytes.Buffer
	w, err := NewWriter(&src)
	s.Require().NoError(err)
	w.Put(U16(7))
	w.PutFrame(SizedVec[U8]{1, 2})
	w.Put(LEI64(-1))
	_, err = w.Result()
	s.Require().NoError(err)

	r, err := NewReader(&src)
	s.Require().NoError(err)

	var (
		a U16
		b SizedVec[U8]
		c LEI64
	)
	Read(r, &a)
	ReadFramed(r, &b)
	Read(r, &c)
	s.Require().NoError(r.Err())
	s.Equal(U16(7), a)
	s.Equal(SizedVec[U8]{1, 2}, b)
	s.Equal(LEI64(-1), c)
	s.EqualValues(2+4+6+8, r.Count())

	// A clean end of stream on a value boundary.
	Read(r, &a)
	s.True(r.IsEOF())
}

func (s *ReaderTestSuite) TestPartialValue() {
	r, _ := NewReader(bytes.NewReader([]byte{0, 0, 1}))
	var v U32
	Read(r, &v)
	s.ErrorIs(r.Err(), io.ErrUnexpectedEOF)
	s.False(r.IsEOF())
}

func (s *ReaderTestSuite) TestFrameErrors() {
	s.Run("TooLarge", func() {
		withLimits(s.T(), Limits{MaxFrameBytes: 4})
		r, _ := NewReader(bytes.NewReader([]byte{0, 0, 0, 5, 1, 2, 3, 4, 5}))
		var v DrainVec[U8]
		ReadFramed(r, &v)
		s.ErrorIs(r.Err(), ErrFrameTooLarge)
	})

	s.Run("TruncatedBody", func() {
		r, _ := NewReader(bytes.NewReader([]byte{0, 0, 0, 4, 1}))
		var v U32
		ReadFramed(r, &v)
		s.ErrorIs(r.Err(), io.ErrUnexpectedEOF)
	})

	s.Run("ValueShorterThanFrame", func() {
		r, _ := NewReader(bytes.NewReader([]byte{0, 0, 0, 3, 0, 1, 2}))
		var v U16
		ReadFramed(r, &v)
		s.ErrorIs(r.Err(), ErrTrailingData)
	})
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderTestSuite))
}

func TestWriteReadValue(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteValue(&buf, U32(0x01020304))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = WriteFrame(&buf, Text("ok"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	v, err := ReadValue[U32](&buf)
	require.NoError(t, err)
	assert.Equal(t, U32(0x01020304), v)

	txt, err := ReadFrame[Text](&buf)
	require.NoError(t, err)
	assert.Equal(t, Text("ok"), txt)

	_, err = ReadValue[U32](&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamHelpersRejectNilIO(t *testing.T) {
	_, err := WriteValue(nil, U8(1))
	assert.ErrorIs(t, err, ErrNilIO)
	_, err = WriteFrame(nil, U8(1))
	assert.ErrorIs(t, err, ErrNilIO)
	_, err = ReadValue[U8](nil)
	assert.ErrorIs(t, err, ErrNilIO)
	_, err = ReadFrame[U8](nil)
	assert.ErrorIs(t, err, ErrNilIO)
}

func TestWriteFrameLimit(t *testing.T) {
	withLimits(t, Limits{MaxFrameBytes: 2})
	var buf bytes.Buffer
	_, err := WriteFrame(&buf, U32(1))
	assert.True(t, errors.Is(err, ErrFrameTooLarge))
	assert.Zero(t, buf.Len())
}

func TestWriteValueLargeBuffer(t *testing.T) {
	big := make(DrainVec[U8], maxPooledBuffer+1)
	var buf bytes.Buffer
	n, err := WriteValue(&buf, big)
	require.NoError(t, err)
	assert.Equal(t, len(big), n)
}

func TestReadVariableSizeArrayIsRejected(t *testing.T) {
	_, err := ReadValue[Array[Text, N2]](bytes.NewReader(make([]byte, 8)))
	assert.ErrorIs(t, err, ErrInvalidLayout)

	r, err := NewReader(bytes.NewReader(make([]byte, 8)))
	require.NoError(t, err)
	var v Array[Text, N2]
	Read(r, &v)
	assert.ErrorIs(t, r.Err(), ErrInvalidLayout)
	assert.Zero(t, r.Count())
}
