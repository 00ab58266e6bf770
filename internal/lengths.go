package internal

import (
	"errors"
	"io"
	"math"
)

// Length prefixes: names and string values carry an unsigned 16-bit
// length, arrays and lists a signed 32-bit count.

const (
	MaxStringLen = math.MaxUint16
	MaxCount     = math.MaxInt32
)

var (
	ErrStringTooLong = errors.New("string exceeds 65535 bytes")
	ErrCountTooLarge = errors.New("count exceeds 2^31-1")
	ErrNegativeCount = errors.New("negative count")
)

// WriteString writes a 16-bit length followed by the raw bytes of s.
// Lengths that do not fit are rejected rather than wrapped.
func WriteString(w io.Writer, s string) error {
	if len(s) > MaxStringLen {
		return ErrStringTooLong
	}
	var b [2]byte
	be.PutUint16(b[:], uint16(len(s)))
	if _, err := w.Write(b[:]); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := io.WriteString(w, s)
	return err
}

// WriteCount writes a signed 32-bit element count.
func WriteCount(w io.Writer, n int) error {
	if n < 0 || n > MaxCount {
		return ErrCountTooLarge
	}
	return WriteI32(w, int32(n))
}
