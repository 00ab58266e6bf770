package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// assertRoundtrip decodes b and compares it with expected, then encodes
// expected and compares the bytes with b.
func assertRoundtrip(t *testing.T, expected *Compound, b []byte) {
	t.Helper()

	got, err := Unmarshal(b)
	require.NoError(t, err, "decode")
	require.True(t, Equal(expected, got), "decoded value mismatch:\n got: %#v\nwant: %#v", got, expected)

	enc, err := Marshal(expected)
	require.NoError(t, err, "encode")
	require.Equal(t, b, enc, "encoded bytes mismatch")
}

func mustList(t *testing.T, name string, k Kind, elems ...Tag) *List {
	t.Helper()
	l, err := NewList(name, k, elems...)
	require.NoError(t, err)
	return l
}

func Test_SingleInt(t *testing.T) {
	c := NewCompound("")
	require.NoError(t, c.Set(NewInt("x", 42)))
	assertRoundtrip(t, c, []byte{0x0A, 0x00, 0x00, 0x03, 0x00, 0x01, 'x', 0x00, 0x00, 0x00, 0x2A, 0x00})
}

func Test_EmptyCompound(t *testing.T) {
	assertRoundtrip(t, NewCompound("root"), []byte{0x0A, 0x00, 0x04, 'r', 'o', 'o', 't', 0x00})

	got, err := Unmarshal([]byte{0x0A, 0x00, 0x04, 'r', 'o', 'o', 't', 0x00})
	require.NoError(t, err)
	require.Equal(t, "root", got.Name)
	require.Zero(t, got.Len())
}

// sampleCompound holds one tag of every kind; sampleBytes is its encoding.
func sampleCompound(t *testing.T) *Compound {
	c := NewCompound("")
	require.NoError(t, c.Set(NewByte("b", -1)))
	require.NoError(t, c.Set(NewShort("s", 0x0102)))
	require.NoError(t, c.Set(NewLong("l", 1)))
	require.NoError(t, c.Set(NewFloat("f", 1.5)))
	require.NoError(t, c.Set(NewDouble("d", 2.5)))
	require.NoError(t, c.Set(NewByteArray("ba", []int8{1, -2})))
	require.NoError(t, c.Set(NewString("str", "hi")))
	require.NoError(t, c.Set(mustList(t, "li", KindInt, NewInt("", 1), NewInt("", 2))))
	inner := NewCompound("c")
	require.NoError(t, inner.Set(NewByte("z", 0)))
	require.NoError(t, c.Set(inner))
	require.NoError(t, c.Set(NewIntArray("ia", []int32{-1})))
	require.NoError(t, c.Set(NewLongArray("la", []int64{2})))
	require.NoError(t, c.Set(mustList(t, "e", KindEnd)))
	return c
}

var sampleBytes = []byte{
	0x0A, 0x00, 0x00,
	0x01, 0x00, 0x01, 'b', 0xFF,
	0x02, 0x00, 0x01, 's', 0x01, 0x02,
	0x04, 0x00, 0x01, 'l', 0, 0, 0, 0, 0, 0, 0, 1,
	0x05, 0x00, 0x01, 'f', 0x3F, 0xC0, 0x00, 0x00,
	0x06, 0x00, 0x01, 'd', 0x40, 0x04, 0, 0, 0, 0, 0, 0,
	0x07, 0x00, 0x02, 'b', 'a', 0, 0, 0, 2, 0x01, 0xFE,
	0x08, 0x00, 0x03, 's', 't', 'r', 0x00, 0x02, 'h', 'i',
	0x09, 0x00, 0x02, 'l', 'i', 0x03, 0, 0, 0, 2, 0, 0, 0, 1, 0, 0, 0, 2,
	0x0A, 0x00, 0x01, 'c', 0x01, 0x00, 0x01, 'z', 0x00, 0x00,
	0x0B, 0x00, 0x02, 'i', 'a', 0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF,
	0x0C, 0x00, 0x02, 'l', 'a', 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 2,
	0x09, 0x00, 0x01, 'e', 0x00, 0, 0, 0, 0,
	0x00,
}

func Test_AllKinds(t *testing.T) {
	assertRoundtrip(t, sampleCompound(t), sampleBytes)
}

func Test_NestedContainers(t *testing.T) {
	pos := NewCompound("")
	require.NoError(t, pos.Set(NewDouble("x", -12.25)))
	require.NoError(t, pos.Set(NewDouble("y", 64)))
	other := NewCompound("")
	require.NoError(t, other.Set(NewString("id", "minecraft:stone")))

	root := NewCompound("Level")
	require.NoError(t, root.Set(mustList(t, "Entities", KindCompound, pos, other)))
	require.NoError(t, root.Set(mustList(t, "Matrix", KindList,
		mustList(t, "", KindShort, NewShort("", 1), NewShort("", 2)),
		mustList(t, "", KindShort),
	)))
	deep := NewCompound("a")
	b := NewCompound("b")
	require.NoError(t, b.Set(NewLongArray("states", []int64{-1, 0, 1 << 40})))
	require.NoError(t, deep.Set(b))
	require.NoError(t, root.Set(deep))

	enc, err := Marshal(root)
	require.NoError(t, err)
	got, err := Unmarshal(enc)
	require.NoError(t, err)
	require.True(t, Equal(root, got))

	// second encode is byte-identical; the tree is not mutated
	again, err := Marshal(got)
	require.NoError(t, err)
	require.Equal(t, enc, again)
}

func Test_DuplicateNamesLastWins(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x00,
		0x03, 0x00, 0x01, 'x', 0, 0, 0, 1,
		0x08, 0x00, 0x01, 'y', 0x00, 0x00,
		0x03, 0x00, 0x01, 'x', 0, 0, 0, 2,
		0x00,
	}
	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	require.Equal(t, int32(2), AsInt(got.Get("x").MustGet()).MustGet())
	require.Equal(t, []string{"x", "y"}, got.Keys())
}

func Test_ListHomogeneity(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'l', 0x02, 0, 0, 0, 3, 0, 1, 0, 2, 0, 3,
		0x09, 0x00, 0x01, 'm', 0x01, 0, 0, 0, 0,
		0x00,
	}
	got, err := Unmarshal(data)
	require.NoError(t, err)

	l := AsList(got.Get("l").MustGet()).MustGet()
	require.Equal(t, KindShort, l.ElemKind())
	require.Equal(t, 3, l.Len())
	for i, e := range l.Elems() {
		require.Equal(t, KindShort, e.Kind())
		require.Equal(t, "", e.TagName())
		require.Equal(t, int16(i+1), AsShort(e).MustGet())
	}

	m := AsList(got.Get("m").MustGet()).MustGet()
	require.Equal(t, KindByte, m.ElemKind())
	require.Zero(t, m.Len())
}

func Test_UnvalidatedText(t *testing.T) {
	c := NewCompound("\xff")
	require.NoError(t, c.Set(NewString("\xc3\x28", "\xed\xa0\x80")))
	enc, err := Marshal(c)
	require.NoError(t, err)
	got, err := Unmarshal(enc)
	require.NoError(t, err)
	require.True(t, Equal(c, got))
	require.Equal(t, "\xed\xa0\x80", AsString(got.Get("\xc3\x28").MustGet()).MustGet())
}
