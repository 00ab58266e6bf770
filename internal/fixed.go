package internal

import (
	"encoding/binary"
	"io"
	"math"
)

var be = binary.BigEndian

// FixedSize returns the number of payload bytes for a fixed-width type ID.
// It returns (0, true) for End and (0, false) for varsize/unknown types.
func FixedSize(t byte) (int, bool) {
	switch t {
	case 0x00: // End
		return 0, true
	case 0x01: // Byte
		return 1, true
	case 0x02: // Short
		return 2, true
	case 0x03: // Int
		return 4, true
	case 0x04: // Long
		return 8, true
	case 0x05: // Float
		return 4, true
	case 0x06: // Double
		return 8, true
	default:
		return 0, false
	}
}

// InitialCap bounds the slice capacity reserved for n elements of type t
// to one read chunk of payload, so a forged count allocates no more than
// the input can back. Variable-width elements get a flat cap.
func InitialCap(t byte, n int) int {
	size, ok := FixedSize(t)
	if !ok || size == 0 {
		return min(n, 1024)
	}
	return min(n, chunk/size)
}

// WriteType writes a single type ID byte.
func WriteType(w io.Writer, t byte) error {
	_, err := w.Write([]byte{t})
	return err
}

func WriteI8(w io.Writer, v int8) error {
	_, err := w.Write([]byte{byte(v)})
	return err
}

func WriteI16(w io.Writer, v int16) error {
	var b [2]byte
	be.PutUint16(b[:], uint16(v))
	_, err := w.Write(b[:])
	return err
}

func WriteI32(w io.Writer, v int32) error {
	var b [4]byte
	// two's complement bytes via the unsigned conversion
	be.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return err
}

func WriteI64(w io.Writer, v int64) error {
	var b [8]byte
	be.PutUint64(b[:], uint64(v))
	_, err := w.Write(b[:])
	return err
}

func WriteF32(w io.Writer, v float32) error {
	var b [4]byte
	be.PutUint32(b[:], math.Float32bits(v))
	_, err := w.Write(b[:])
	return err
}

func WriteF64(w io.Writer, v float64) error {
	var b [8]byte
	be.PutUint64(b[:], math.Float64bits(v))
	_, err := w.Write(b[:])
	return err
}

// WriteI32s writes each element as a 4-byte big-endian integer in a
// single Write call.
func WriteI32s(w io.Writer, vs []int32) error {
	if len(vs) == 0 {
		return nil
	}
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		be.PutUint32(b[4*i:], uint32(v))
	}
	_, err := w.Write(b)
	return err
}

// WriteI64s writes each element as an 8-byte big-endian integer.
func WriteI64s(w io.Writer, vs []int64) error {
	if len(vs) == 0 {
		return nil
	}
	b := make([]byte, 8*len(vs))
	for i, v := range vs {
		be.PutUint64(b[8*i:], uint64(v))
	}
	_, err := w.Write(b)
	return err
}

// WriteI8s writes the raw bytes of vs.
func WriteI8s(w io.Writer, vs []int8) error {
	if len(vs) == 0 {
		return nil
	}
	b := make([]byte, len(vs))
	for i, v := range vs {
		b[i] = byte(v)
	}
	_, err := w.Write(b)
	return err
}
