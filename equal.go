package nbt

import (
	"math"
	"slices"
)

// Equal reports whether a and b are structurally equal: same kind, name
// and payload, recursively. Compound entries are compared as a mapping,
// without regard to order. Floats are compared by bit pattern, so a NaN
// equals itself.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.TagName() != b.TagName() {
		return false
	}
	switch x := a.(type) {
	case *Byte:
		return x.Value == b.(*Byte).Value
	case *Short:
		return x.Value == b.(*Short).Value
	case *Int:
		return x.Value == b.(*Int).Value
	case *Long:
		return x.Value == b.(*Long).Value
	case *Float:
		return math.Float32bits(x.Value) == math.Float32bits(b.(*Float).Value)
	case *Double:
		return math.Float64bits(x.Value) == math.Float64bits(b.(*Double).Value)
	case *ByteArray:
		return slices.Equal(x.Values, b.(*ByteArray).Values)
	case *String:
		return x.Value == b.(*String).Value
	case *IntArray:
		return slices.Equal(x.Values, b.(*IntArray).Values)
	case *LongArray:
		return slices.Equal(x.Values, b.(*LongArray).Values)
	case *List:
		y := b.(*List)
		if x.elemKind != y.elemKind || len(x.elems) != len(y.elems) {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}
		return true
	case *Compound:
		return equalEntries(x, b.(*Compound))
	default:
		return false
	}
}

func equalEntries(x, y *Compound) bool {
	if x.Len() != y.Len() {
		return false
	}
	for k, v := range x.index {
		w, ok := y.index[k]
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}
