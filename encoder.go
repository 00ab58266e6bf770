package nbt

import (
	"errors"
	"io"

	intr "github.com/dadrian/nbt/internal"
)

// Encoder writes NBT-encoded compounds to an io.Writer.
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a new streaming encoder.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Encode writes c as a root compound: type byte, name, then the body.
func (e *Encoder) Encode(c *Compound) error {
	if c == nil {
		return &Error{Kind: ErrInvalidTree, Detail: "nil root compound"}
	}
	if err := intr.WriteType(e.w, KindCompound.ID()); err != nil {
		return wrapWriteErr(err, "root type")
	}
	if err := intr.WriteString(e.w, c.Name); err != nil {
		return wrapWriteErr(err, "root name")
	}
	return e.writeCompound(c)
}

func (e *Encoder) writeCompound(c *Compound) error {
	for _, k := range c.keys {
		if err := e.writeTag(c.index[k], k, true); err != nil {
			return err
		}
	}
	return wrapWriteErr(intr.WriteType(e.w, KindEnd.ID()), "compound end")
}

// writeTag writes the type byte, the name when named is set, then the
// payload. List elements go through writePayload directly.
func (e *Encoder) writeTag(t Tag, name string, named bool) error {
	if err := intr.WriteType(e.w, t.Kind().ID()); err != nil {
		return wrapWriteErr(err, "tag type")
	}
	if named {
		if err := intr.WriteString(e.w, name); err != nil {
			return wrapWriteErr(err, "tag name")
		}
	}
	return e.writePayload(t)
}

func (e *Encoder) writePayload(t Tag) error {
	var err error
	switch x := t.(type) {
	case *Byte:
		err = intr.WriteI8(e.w, x.Value)
	case *Short:
		err = intr.WriteI16(e.w, x.Value)
	case *Int:
		err = intr.WriteI32(e.w, x.Value)
	case *Long:
		err = intr.WriteI64(e.w, x.Value)
	case *Float:
		err = intr.WriteF32(e.w, x.Value)
	case *Double:
		err = intr.WriteF64(e.w, x.Value)
	case *ByteArray:
		if err = intr.WriteCount(e.w, len(x.Values)); err == nil {
			err = intr.WriteI8s(e.w, x.Values)
		}
	case *String:
		err = intr.WriteString(e.w, x.Value)
	case *List:
		return e.writeList(x)
	case *Compound:
		return e.writeCompound(x)
	case *IntArray:
		if err = intr.WriteCount(e.w, len(x.Values)); err == nil {
			err = intr.WriteI32s(e.w, x.Values)
		}
	case *LongArray:
		if err = intr.WriteCount(e.w, len(x.Values)); err == nil {
			err = intr.WriteI64s(e.w, x.Values)
		}
	}
	return wrapWriteErr(err, t.Kind().String())
}

func (e *Encoder) writeList(l *List) error {
	if err := intr.WriteType(e.w, l.elemKind.ID()); err != nil {
		return wrapWriteErr(err, "list element type")
	}
	if err := intr.WriteCount(e.w, len(l.elems)); err != nil {
		return wrapWriteErr(err, "list count")
	}
	for _, el := range l.elems {
		// elements are unnamed and carry no type byte of their own
		if err := e.writePayload(el); err != nil {
			return err
		}
	}
	return nil
}

func wrapWriteErr(err error, what string) error {
	if err == nil {
		return nil
	}
	var ne *Error
	if errors.As(err, &ne) {
		return err
	}
	if errors.Is(err, intr.ErrStringTooLong) || errors.Is(err, intr.ErrCountTooLarge) {
		return &Error{Kind: ErrLengthOverflow, Detail: what, Err: err}
	}
	return &Error{Kind: ErrIO, Detail: "writing " + what, Err: err}
}
