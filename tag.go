package nbt

import (
	"fmt"
	"reflect"

	"github.com/samber/mo"
)

// Tag is one typed node of an NBT tree. The set of implementations is
// closed: *Byte, *Short, *Int, *Long, *Float, *Double, *ByteArray,
// *String, *List, *Compound, *IntArray and *LongArray.
type Tag interface {
	Kind() Kind
	// TagName returns the tag's name; list elements have an empty name.
	TagName() string
	isTag()
}

type Byte struct {
	Name  string
	Value int8
}

type Short struct {
	Name  string
	Value int16
}

type Int struct {
	Name  string
	Value int32
}

type Long struct {
	Name  string
	Value int64
}

type Float struct {
	Name  string
	Value float32
}

type Double struct {
	Name  string
	Value float64
}

type ByteArray struct {
	Name   string
	Values []int8
}

type String struct {
	Name  string
	Value string
}

type IntArray struct {
	Name   string
	Values []int32
}

type LongArray struct {
	Name   string
	Values []int64
}

// List is an ordered sequence of unnamed tags that all share the list's
// element kind. The element kind is fixed at construction.
type List struct {
	Name     string
	elemKind Kind
	elems    []Tag
}

func NewByte(name string, v int8) *Byte               { return &Byte{Name: name, Value: v} }
func NewShort(name string, v int16) *Short            { return &Short{Name: name, Value: v} }
func NewInt(name string, v int32) *Int                { return &Int{Name: name, Value: v} }
func NewLong(name string, v int64) *Long              { return &Long{Name: name, Value: v} }
func NewFloat(name string, v float32) *Float          { return &Float{Name: name, Value: v} }
func NewDouble(name string, v float64) *Double        { return &Double{Name: name, Value: v} }
func NewString(name, v string) *String                { return &String{Name: name, Value: v} }
func NewByteArray(name string, vs []int8) *ByteArray  { return &ByteArray{Name: name, Values: vs} }
func NewIntArray(name string, vs []int32) *IntArray   { return &IntArray{Name: name, Values: vs} }
func NewLongArray(name string, vs []int64) *LongArray { return &LongArray{Name: name, Values: vs} }

// NewList builds a list of elemKind. Every element must be unnamed and
// report elemKind; End lists must be empty.
func NewList(name string, elemKind Kind, elems ...Tag) (*List, error) {
	if !elemKind.Valid() {
		return nil, &Error{Kind: ErrInvalidTagID, Detail: fmt.Sprintf("list element tag id %d", byte(elemKind)), TagID: byte(elemKind)}
	}
	l := &List{Name: name, elemKind: elemKind, elems: make([]Tag, 0, len(elems))}
	for _, e := range elems {
		if err := l.Append(e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append adds t to the end of the list. t must be unnamed, of the list's
// element kind, and must not already contain l.
func (l *List) Append(t Tag) error {
	if isNil(t) {
		return &Error{Kind: ErrInvalidTree, Detail: "nil list element"}
	}
	if t.Kind() != l.elemKind {
		return &Error{Kind: ErrListKindMismatch, Detail: fmt.Sprintf("%v element in list of %v", t.Kind(), l.elemKind)}
	}
	if name := t.TagName(); name != "" {
		return &Error{Kind: ErrInvalidTree, Detail: fmt.Sprintf("list element named %q, elements are unnamed", name)}
	}
	if reaches(t, l) {
		return &Error{Kind: ErrInvalidTree, Detail: fmt.Sprintf("list %q would contain itself", l.Name)}
	}
	l.elems = append(l.elems, t)
	return nil
}

func (l *List) ElemKind() Kind { return l.elemKind }
func (l *List) Len() int       { return len(l.elems) }
func (l *List) At(i int) Tag   { return l.elems[i] }

// Elems returns a copy of the element slice.
func (l *List) Elems() []Tag {
	out := make([]Tag, len(l.elems))
	copy(out, l.elems)
	return out
}

func (*Byte) Kind() Kind      { return KindByte }
func (*Short) Kind() Kind     { return KindShort }
func (*Int) Kind() Kind       { return KindInt }
func (*Long) Kind() Kind      { return KindLong }
func (*Float) Kind() Kind     { return KindFloat }
func (*Double) Kind() Kind    { return KindDouble }
func (*ByteArray) Kind() Kind { return KindByteArray }
func (*String) Kind() Kind    { return KindString }
func (*List) Kind() Kind      { return KindList }
func (*Compound) Kind() Kind  { return KindCompound }
func (*IntArray) Kind() Kind  { return KindIntArray }
func (*LongArray) Kind() Kind { return KindLongArray }

func (t *Byte) TagName() string      { return t.Name }
func (t *Short) TagName() string     { return t.Name }
func (t *Int) TagName() string       { return t.Name }
func (t *Long) TagName() string      { return t.Name }
func (t *Float) TagName() string     { return t.Name }
func (t *Double) TagName() string    { return t.Name }
func (t *ByteArray) TagName() string { return t.Name }
func (t *String) TagName() string    { return t.Name }
func (t *List) TagName() string      { return t.Name }
func (t *Compound) TagName() string  { return t.Name }
func (t *IntArray) TagName() string  { return t.Name }
func (t *LongArray) TagName() string { return t.Name }

func (*Byte) isTag()      {}
func (*Short) isTag()     {}
func (*Int) isTag()       {}
func (*Long) isTag()      {}
func (*Float) isTag()     {}
func (*Double) isTag()    {}
func (*ByteArray) isTag() {}
func (*String) isTag()    {}
func (*List) isTag()      {}
func (*Compound) isTag()  {}
func (*IntArray) isTag()  {}
func (*LongArray) isTag() {}

// Narrowing accessors. Each returns the payload when t has the requested
// kind and mo.None otherwise.

func AsByte(t Tag) mo.Option[int8] {
	if x, ok := t.(*Byte); ok {
		return mo.Some(x.Value)
	}
	return mo.None[int8]()
}

func AsShort(t Tag) mo.Option[int16] {
	if x, ok := t.(*Short); ok {
		return mo.Some(x.Value)
	}
	return mo.None[int16]()
}

func AsInt(t Tag) mo.Option[int32] {
	if x, ok := t.(*Int); ok {
		return mo.Some(x.Value)
	}
	return mo.None[int32]()
}

func AsLong(t Tag) mo.Option[int64] {
	if x, ok := t.(*Long); ok {
		return mo.Some(x.Value)
	}
	return mo.None[int64]()
}

func AsFloat(t Tag) mo.Option[float32] {
	if x, ok := t.(*Float); ok {
		return mo.Some(x.Value)
	}
	return mo.None[float32]()
}

func AsDouble(t Tag) mo.Option[float64] {
	if x, ok := t.(*Double); ok {
		return mo.Some(x.Value)
	}
	return mo.None[float64]()
}

func AsByteArray(t Tag) mo.Option[[]int8] {
	if x, ok := t.(*ByteArray); ok {
		return mo.Some(x.Values)
	}
	return mo.None[[]int8]()
}

func AsString(t Tag) mo.Option[string] {
	if x, ok := t.(*String); ok {
		return mo.Some(x.Value)
	}
	return mo.None[string]()
}

func AsList(t Tag) mo.Option[*List] {
	if x, ok := t.(*List); ok {
		return mo.Some(x)
	}
	return mo.None[*List]()
}

func AsCompound(t Tag) mo.Option[*Compound] {
	if x, ok := t.(*Compound); ok {
		return mo.Some(x)
	}
	return mo.None[*Compound]()
}

func AsIntArray(t Tag) mo.Option[[]int32] {
	if x, ok := t.(*IntArray); ok {
		return mo.Some(x.Values)
	}
	return mo.None[[]int32]()
}

func AsLongArray(t Tag) mo.Option[[]int64] {
	if x, ok := t.(*LongArray); ok {
		return mo.Some(x.Values)
	}
	return mo.None[[]int64]()
}

func isNil(t Tag) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// reaches reports whether target is t or sits anywhere below it.
func reaches(t, target Tag) bool {
	if t == target {
		return true
	}
	switch x := t.(type) {
	case *Compound:
		for _, k := range x.keys {
			if reaches(x.index[k], target) {
				return true
			}
		}
	case *List:
		for _, e := range x.elems {
			if reaches(e, target) {
				return true
			}
		}
	}
	return false
}
