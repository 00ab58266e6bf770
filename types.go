package nbt

import (
	"fmt"
	"strings"
)

// Kind identifies an NBT tag type. The numeric values are part of the
// wire format and must never be renumbered.
type Kind byte

const (
	KindEnd       Kind = 0x00
	KindByte      Kind = 0x01
	KindShort     Kind = 0x02
	KindInt       Kind = 0x03
	KindLong      Kind = 0x04
	KindFloat     Kind = 0x05
	KindDouble    Kind = 0x06
	KindByteArray Kind = 0x07
	KindString    Kind = 0x08
	KindList      Kind = 0x09
	KindCompound  Kind = 0x0A
	KindIntArray  Kind = 0x0B
	KindLongArray Kind = 0x0C
)

var kindNames = [...]string{
	KindEnd:       "End",
	KindByte:      "Byte",
	KindShort:     "Short",
	KindInt:       "Int",
	KindLong:      "Long",
	KindFloat:     "Float",
	KindDouble:    "Double",
	KindByteArray: "ByteArray",
	KindString:    "String",
	KindList:      "List",
	KindCompound:  "Compound",
	KindIntArray:  "IntArray",
	KindLongArray: "LongArray",
}

// Valid reports whether k is one of the 13 defined kinds.
func (k Kind) Valid() bool { return int(k) < len(kindNames) }

// ID returns the wire identifier of k.
func (k Kind) ID() byte { return byte(k) }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
	return kindNames[k]
}

// KindFromID maps a wire identifier to its Kind. Identifiers above 12
// yield an ErrInvalidTagID error.
func KindFromID(id byte) (Kind, error) {
	k := Kind(id)
	if !k.Valid() {
		return 0, &Error{Kind: ErrInvalidTagID, Detail: fmt.Sprintf("tag id %d", id), TagID: id}
	}
	return k, nil
}

// ParseKind maps a kind name as returned by Kind.String back to the Kind.
// Matching is case-insensitive.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), true
		}
	}
	return 0, false
}
