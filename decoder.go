package nbt

import (
	"errors"
	"fmt"
	"io"

	intr "github.com/dadrian/nbt/internal"
)

// Decoder reads NBT-encoded compounds from an io.Reader.
type Decoder struct {
	r *intr.Reader
}

// NewDecoder creates a new streaming decoder.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: intr.NewReader(r)} }

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 { return d.r.Offset() }

// Decode reads one root compound. Bytes after the root's closing End
// marker are left unread.
func (d *Decoder) Decode() (*Compound, error) {
	id, err := d.r.ReadByte()
	if err != nil {
		return nil, d.fail(err, "root type")
	}
	if _, err := d.kind(id); err != nil {
		return nil, err
	}
	if Kind(id) != KindCompound {
		return nil, &Error{Offset: d.r.Offset() - 1, Kind: ErrMalformedRoot, Detail: fmt.Sprintf("root is %v, want Compound", Kind(id)), TagID: id}
	}
	name, err := d.r.ReadString()
	if err != nil {
		return nil, d.fail(err, "root name")
	}
	return d.readCompound(name)
}

func (d *Decoder) readCompound(name string) (*Compound, error) {
	c := NewCompound(name)
	for {
		id, err := d.r.ReadByte()
		if err != nil {
			return nil, d.fail(err, "tag type")
		}
		k, err := d.kind(id)
		if err != nil {
			return nil, err
		}
		if k == KindEnd {
			return c, nil
		}
		entry, err := d.r.ReadString()
		if err != nil {
			return nil, d.fail(err, "tag name")
		}
		t, err := d.readPayload(k, entry)
		if err != nil {
			return nil, err
		}
		// duplicate names: last one wins
		c.set(t)
	}
}

func (d *Decoder) readPayload(k Kind, name string) (Tag, error) {
	switch k {
	case KindByte:
		v, err := d.r.ReadI8()
		if err != nil {
			return nil, d.fail(err, "Byte")
		}
		return NewByte(name, v), nil
	case KindShort:
		v, err := d.r.ReadI16()
		if err != nil {
			return nil, d.fail(err, "Short")
		}
		return NewShort(name, v), nil
	case KindInt:
		v, err := d.r.ReadI32()
		if err != nil {
			return nil, d.fail(err, "Int")
		}
		return NewInt(name, v), nil
	case KindLong:
		v, err := d.r.ReadI64()
		if err != nil {
			return nil, d.fail(err, "Long")
		}
		return NewLong(name, v), nil
	case KindFloat:
		v, err := d.r.ReadF32()
		if err != nil {
			return nil, d.fail(err, "Float")
		}
		return NewFloat(name, v), nil
	case KindDouble:
		v, err := d.r.ReadF64()
		if err != nil {
			return nil, d.fail(err, "Double")
		}
		return NewDouble(name, v), nil
	case KindByteArray:
		n, err := d.r.ReadCount()
		if err != nil {
			return nil, d.fail(err, "ByteArray length")
		}
		vs, err := d.r.ReadI8s(n)
		if err != nil {
			return nil, d.fail(err, "ByteArray")
		}
		return NewByteArray(name, vs), nil
	case KindString:
		v, err := d.r.ReadString()
		if err != nil {
			return nil, d.fail(err, "String")
		}
		return NewString(name, v), nil
	case KindList:
		return d.readList(name)
	case KindCompound:
		return d.readCompound(name)
	case KindIntArray:
		n, err := d.r.ReadCount()
		if err != nil {
			return nil, d.fail(err, "IntArray length")
		}
		vs, err := d.r.ReadI32s(n)
		if err != nil {
			return nil, d.fail(err, "IntArray")
		}
		return NewIntArray(name, vs), nil
	case KindLongArray:
		n, err := d.r.ReadCount()
		if err != nil {
			return nil, d.fail(err, "LongArray length")
		}
		vs, err := d.r.ReadI64s(n)
		if err != nil {
			return nil, d.fail(err, "LongArray")
		}
		return NewLongArray(name, vs), nil
	default:
		// End has no payload and only terminates compounds.
		return nil, &Error{Offset: d.r.Offset(), Kind: ErrInvalidTagID, Detail: "End tag outside compound terminator", TagID: byte(k)}
	}
}

func (d *Decoder) readList(name string) (*List, error) {
	id, err := d.r.ReadByte()
	if err != nil {
		return nil, d.fail(err, "list element type")
	}
	ek, err := d.kind(id)
	if err != nil {
		return nil, err
	}
	n, err := d.r.ReadCount()
	if err != nil {
		return nil, d.fail(err, "list count")
	}
	if ek == KindEnd && n > 0 {
		return nil, &Error{Offset: d.r.Offset(), Kind: ErrInvalidTagID, Detail: fmt.Sprintf("list of End with %d elements", n), TagID: id}
	}
	l := &List{Name: name, elemKind: ek, elems: make([]Tag, 0, intr.InitialCap(id, n))}
	for i := 0; i < n; i++ {
		t, err := d.readPayload(ek, "")
		if err != nil {
			return nil, err
		}
		l.elems = append(l.elems, t)
	}
	return l, nil
}

// kind validates a type byte read just before the current offset.
func (d *Decoder) kind(id byte) (Kind, error) {
	k, err := KindFromID(id)
	if err != nil {
		e := err.(*Error)
		e.Offset = d.r.Offset() - 1
		return 0, e
	}
	return k, nil
}

// fail classifies a reader error: a short read is truncation, negative
// counts overflow, anything else comes from the source itself.
func (d *Decoder) fail(err error, what string) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Offset: d.r.Offset(), Kind: ErrTruncated, Detail: "reading " + what, Err: err}
	case errors.Is(err, intr.ErrNegativeCount):
		return &Error{Offset: d.r.Offset(), Kind: ErrLengthOverflow, Detail: what, Err: err}
	default:
		return &Error{Offset: d.r.Offset(), Kind: ErrIO, Detail: "reading " + what, Err: err}
	}
}
