package nbt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireKind(t *testing.T, err error, k ErrorKind) *Error {
	t.Helper()
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, k, e.Kind, "error: %v", err)
	return e
}

func TestDecode_EveryPrefixTruncated(t *testing.T) {
	for i := 0; i < len(sampleBytes); i++ {
		c, err := Unmarshal(sampleBytes[:i])
		require.Nil(t, c, "prefix %d", i)
		requireKind(t, err, ErrTruncated)
	}
}

func TestDecode_InvalidTagID(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x0D, 0x00, 0x01, 'x', 0x00}
	e := requireKind(t, func() error { _, err := Unmarshal(data); return err }(), ErrInvalidTagID)
	require.Equal(t, byte(0x0D), e.TagID)
	require.Equal(t, int64(3), e.Offset)
}

func TestDecode_InvalidListElementID(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x20, 0, 0, 0, 0, 0x00}
	_, err := Unmarshal(data)
	e := requireKind(t, err, ErrInvalidTagID)
	require.Equal(t, byte(0x20), e.TagID)
}

func TestDecode_Root(t *testing.T) {
	_, err := Unmarshal([]byte{0x01})
	requireKind(t, err, ErrMalformedRoot)

	_, err = Unmarshal([]byte{0xFF})
	e := requireKind(t, err, ErrInvalidTagID)
	require.Equal(t, byte(0xFF), e.TagID)

	// an End byte is a valid id but not a root
	_, err = Unmarshal([]byte{0x00})
	requireKind(t, err, ErrMalformedRoot)

	_, err = Unmarshal(nil)
	requireKind(t, err, ErrTruncated)
}

func TestDecode_EndListWithElements(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x00, 0, 0, 0, 1, 0x00}
	_, err := Unmarshal(data)
	requireKind(t, err, ErrInvalidTagID)
}

func TestDecode_NegativeCounts(t *testing.T) {
	for _, k := range []byte{0x07, 0x0B, 0x0C} {
		data := []byte{0x0A, 0x00, 0x00, k, 0x00, 0x01, 'a', 0xFF, 0xFF, 0xFF, 0xFE, 0x00}
		_, err := Unmarshal(data)
		requireKind(t, err, ErrLengthOverflow)
	}
	data := []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x01, 0x80, 0, 0, 0, 0x00}
	_, err := Unmarshal(data)
	requireKind(t, err, ErrLengthOverflow)
}

func TestDecode_HugeCountShortInput(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x0C, 0x00, 0x01, 'a', 0x7F, 0xFF, 0xFF, 0xFF, 0x01, 0x02}
	_, err := Unmarshal(data)
	requireKind(t, err, ErrTruncated)
}

func TestDecode_TrailingData(t *testing.T) {
	data := append(bytes.Clone(sampleBytes), 0x00)
	_, err := Unmarshal(data)
	requireKind(t, err, ErrTrailingData)
}

func TestDecoder_Stream(t *testing.T) {
	first := []byte{0x0A, 0x00, 0x01, 'a', 0x00}
	second := []byte{0x0A, 0x00, 0x01, 'b', 0x00}
	dec := NewDecoder(bytes.NewReader(append(bytes.Clone(first), second...)))

	c, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, "a", c.Name)
	require.Equal(t, int64(len(first)), dec.Offset())

	c, err = dec.Decode()
	require.NoError(t, err)
	require.Equal(t, "b", c.Name)

	_, err = dec.Decode()
	requireKind(t, err, ErrTruncated)
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestDecode_SourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	dec := NewDecoder(&failingReader{data: sampleBytes[:20], err: boom})
	_, err := dec.Decode()
	requireKind(t, err, ErrIO)
	require.ErrorIs(t, err, boom)
	require.False(t, errors.Is(err, io.EOF))
}
