package internal

import (
	"io"
	"math"
)

// chunk bounds a single allocation made on behalf of a declared count, so
// a bogus count on a short input runs out of bytes before it runs out of
// memory.
const chunk = 64 << 10

// Reader reads big-endian wire primitives and tracks the number of bytes
// consumed. Errors are returned unclassified: io.EOF and
// io.ErrUnexpectedEOF mean the input ended early.
type Reader struct {
	r   io.Reader
	off int64
	buf [8]byte
}

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.off }

// ReadFull fills buf, reporting io.ErrUnexpectedEOF on a partial read.
func (r *Reader) ReadFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.off += int64(n)
	return err
}

func (r *Reader) ReadByte() (byte, error) {
	if err := r.ReadFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func (r *Reader) ReadI16() (int16, error) {
	if err := r.ReadFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return int16(be.Uint16(r.buf[:2])), nil
}

func (r *Reader) ReadI32() (int32, error) {
	if err := r.ReadFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return int32(be.Uint32(r.buf[:4])), nil
}

func (r *Reader) ReadI64() (int64, error) {
	if err := r.ReadFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return int64(be.Uint64(r.buf[:8])), nil
}

func (r *Reader) ReadF32() (float32, error) {
	if err := r.ReadFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(be.Uint32(r.buf[:4])), nil
}

func (r *Reader) ReadF64() (float64, error) {
	if err := r.ReadFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(be.Uint64(r.buf[:8])), nil
}

// ReadString reads a 16-bit length-prefixed string. The bytes are copied
// out as-is; no UTF-8 validation is done.
func (r *Reader) ReadString() (string, error) {
	if err := r.ReadFull(r.buf[:2]); err != nil {
		return "", err
	}
	n := int(be.Uint16(r.buf[:2]))
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	if err := r.ReadFull(b); err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadCount reads a signed 32-bit count and rejects negative values.
func (r *Reader) ReadCount() (int, error) {
	n, err := r.ReadI32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNegativeCount
	}
	return int(n), nil
}

// ReadI8s reads n raw bytes.
func (r *Reader) ReadI8s(n int) ([]int8, error) {
	out := make([]int8, 0, InitialCap(0x01, n))
	b := make([]byte, min(n, chunk))
	for len(out) < n {
		part := b[:min(n-len(out), len(b))]
		if err := r.ReadFull(part); err != nil {
			return nil, err
		}
		for _, c := range part {
			out = append(out, int8(c))
		}
	}
	return out, nil
}

// ReadI32s reads n 4-byte big-endian integers.
func (r *Reader) ReadI32s(n int) ([]int32, error) {
	out := make([]int32, 0, InitialCap(0x03, n))
	for len(out) < n {
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadI64s reads n 8-byte big-endian integers.
func (r *Reader) ReadI64s(n int) ([]int64, error) {
	out := make([]int64, 0, InitialCap(0x04, n))
	for len(out) < n {
		v, err := r.ReadI64()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
