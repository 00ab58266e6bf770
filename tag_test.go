package nbt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsReportKind(t *testing.T) {
	cases := []struct {
		tag  Tag
		kind Kind
	}{
		{NewByte("a", 1), KindByte},
		{NewShort("a", 1), KindShort},
		{NewInt("a", 1), KindInt},
		{NewLong("a", 1), KindLong},
		{NewFloat("a", 1), KindFloat},
		{NewDouble("a", 1), KindDouble},
		{NewByteArray("a", nil), KindByteArray},
		{NewString("a", ""), KindString},
		{mustList(t, "a", KindEnd), KindList},
		{NewCompound("a"), KindCompound},
		{NewIntArray("a", nil), KindIntArray},
		{NewLongArray("a", nil), KindLongArray},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.tag.Kind())
		assert.Equal(t, "a", tc.tag.TagName())
	}
}

func TestNarrowing(t *testing.T) {
	i := NewInt("i", 7)
	v, ok := AsInt(i).Get()
	require.True(t, ok)
	require.Equal(t, int32(7), v)

	// mismatches are absent values, not errors
	assert.True(t, AsLong(i).IsAbsent())
	assert.True(t, AsByte(i).IsAbsent())
	assert.True(t, AsShort(i).IsAbsent())
	assert.True(t, AsFloat(i).IsAbsent())
	assert.True(t, AsDouble(i).IsAbsent())
	assert.True(t, AsString(i).IsAbsent())
	assert.True(t, AsByteArray(i).IsAbsent())
	assert.True(t, AsIntArray(i).IsAbsent())
	assert.True(t, AsLongArray(i).IsAbsent())
	assert.True(t, AsList(i).IsAbsent())
	assert.True(t, AsCompound(i).IsAbsent())

	assert.Equal(t, int8(-3), AsByte(NewByte("", -3)).MustGet())
	assert.Equal(t, int16(300), AsShort(NewShort("", 300)).MustGet())
	assert.Equal(t, int64(1<<40), AsLong(NewLong("", 1<<40)).MustGet())
	assert.Equal(t, float32(0.5), AsFloat(NewFloat("", 0.5)).MustGet())
	assert.Equal(t, 0.25, AsDouble(NewDouble("", 0.25)).MustGet())
	assert.Equal(t, "s", AsString(NewString("", "s")).MustGet())
	assert.Equal(t, []int8{1}, AsByteArray(NewByteArray("", []int8{1})).MustGet())
	assert.Equal(t, []int32{2}, AsIntArray(NewIntArray("", []int32{2})).MustGet())
	assert.Equal(t, []int64{3}, AsLongArray(NewLongArray("", []int64{3})).MustGet())
	assert.Equal(t, "c", AsCompound(NewCompound("c")).MustGet().Name)
	assert.Equal(t, KindEnd, AsList(mustList(t, "", KindEnd)).MustGet().ElemKind())
	assert.Equal(t, int32(0), AsInt(NewString("", "x")).OrElse(0))
}

func TestNewListRejectsMixedKinds(t *testing.T) {
	_, err := NewList("l", KindInt, NewInt("", 1), NewLong("", 2))
	requireKind(t, err, ErrListKindMismatch)

	_, err = NewList("l", KindEnd, NewInt("", 1))
	requireKind(t, err, ErrListKindMismatch)

	_, err = NewList("l", Kind(13))
	requireKind(t, err, ErrInvalidTagID)

	l := mustList(t, "l", KindString)
	require.NoError(t, l.Append(NewString("", "a")))
	requireKind(t, l.Append(NewInt("", 1)), ErrListKindMismatch)
	requireKind(t, l.Append(nil), ErrInvalidTree)
	requireKind(t, l.Append((*String)(nil)), ErrInvalidTree)
	require.Equal(t, 1, l.Len())
	require.Equal(t, "a", AsString(l.At(0)).MustGet())

	// Elems is a copy
	elems := l.Elems()
	elems[0] = NewString("", "b")
	require.Equal(t, "a", AsString(l.At(0)).MustGet())
}

func TestListElementsAreUnnamed(t *testing.T) {
	_, err := NewList("l", KindInt, NewInt("named", 1))
	requireKind(t, err, ErrInvalidTree)

	l := mustList(t, "l", KindCompound)
	requireKind(t, l.Append(NewCompound("named")), ErrInvalidTree)
	require.Zero(t, l.Len())

	// every list that can be built survives the wire unchanged
	require.NoError(t, l.Append(NewCompound("")))
	c := NewCompound("")
	require.NoError(t, c.Set(l))
	require.NoError(t, c.Set(mustList(t, "ints", KindInt, NewInt("", 1), NewInt("", 2))))
	b, err := Marshal(c)
	require.NoError(t, err)
	got, err := Unmarshal(b)
	require.NoError(t, err)
	require.True(t, Equal(c, got))
}

func TestListRejectsCycles(t *testing.T) {
	l := mustList(t, "", KindList)
	requireKind(t, l.Append(l), ErrInvalidTree)

	// through a compound element
	outer := mustList(t, "outer", KindCompound)
	holder := NewCompound("")
	require.NoError(t, outer.Append(holder))
	require.NoError(t, holder.Set(mustList(t, "inner", KindEnd)))
	c := NewCompound("")
	require.NoError(t, c.Set(outer))
	requireKind(t, holder.Set(outer), ErrInvalidTree)

	// list -> list -> compound -> list
	nested := mustList(t, "", KindCompound)
	lists := mustList(t, "lists", KindList, nested)
	comp := NewCompound("")
	require.NoError(t, comp.Set(lists))
	requireKind(t, nested.Append(comp), ErrInvalidTree)
	require.Zero(t, nested.Len())
}

func TestEqual(t *testing.T) {
	nan := math.Float32frombits(0x7FC00001)
	assert.True(t, Equal(NewFloat("f", nan), NewFloat("f", nan)))
	assert.False(t, Equal(NewFloat("f", nan), NewFloat("f", math.Float32frombits(0x7FC00002))))
	assert.False(t, Equal(NewDouble("d", 0), NewDouble("d", math.Copysign(0, -1))))
	assert.False(t, Equal(NewInt("a", 1), NewInt("b", 1)))
	assert.False(t, Equal(NewInt("a", 1), NewLong("a", 1)))
	assert.True(t, Equal(NewByteArray("a", nil), NewByteArray("a", []int8{})))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(NewInt("a", 1), nil))

	assert.False(t, Equal(mustList(t, "", KindInt), mustList(t, "", KindLong)))
	assert.False(t, Equal(mustList(t, "", KindInt, NewInt("", 1)), mustList(t, "", KindInt, NewInt("", 2))))

	a := NewCompound("c")
	require.NoError(t, a.Set(NewInt("x", 1)))
	require.NoError(t, a.Set(NewInt("y", 2)))
	b := NewCompound("c")
	require.NoError(t, b.Set(NewInt("y", 2)))
	require.NoError(t, b.Set(NewInt("x", 1)))
	assert.True(t, Equal(a, b), "compound order is not significant")
	require.NoError(t, b.Set(NewInt("x", 3)))
	assert.False(t, Equal(a, b))
	b.Delete("x")
	assert.False(t, Equal(a, b))
}
