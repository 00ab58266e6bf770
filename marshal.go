package nbt

import (
	"bytes"

	intr "github.com/dadrian/nbt/internal"
)

// Marshal encodes c into a byte slice holding exactly one root compound.
func Marshal(c *Compound) ([]byte, error) {
	buf := intr.GetBuffer()
	defer intr.PutBuffer(buf)
	if err := NewEncoder(buf).Encode(c); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// Unmarshal decodes data, which must hold exactly one root compound and
// nothing after it.
func Unmarshal(data []byte) (*Compound, error) {
	br := bytes.NewReader(data)
	dec := NewDecoder(br)
	c, err := dec.Decode()
	if err != nil {
		return nil, err
	}
	if br.Len() != 0 {
		return nil, &Error{Offset: dec.Offset(), Kind: ErrTrailingData, Detail: "bytes after root compound"}
	}
	return c, nil
}
