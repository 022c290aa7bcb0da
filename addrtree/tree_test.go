package addrtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeInsertSearch(t *testing.T) {
	tree := &Tree[uint32, string]{}
	tree.Insert(0x100, "a")
	tree.Insert(0x300, "c")
	tree.Insert(0x200, "b")

	assert.Equal(t, 3, tree.Size())

	it := tree.Search(0x200)
	require.False(t, it.End())
	assert.Equal(t, "b", it.Value())

	assert.True(t, tree.Search(0x250).End())

	// inserting an existing key replaces its value
	tree.Insert(0x200, "b2")
	assert.Equal(t, 3, tree.Size())
	assert.Equal(t, "b2", tree.Search(0x200).Value())
}

func TestTreeFloorCeil(t *testing.T) {
	tree := &Tree[uint32, string]{}
	for _, k := range []uint32{0x100, 0x200, 0x300} {
		tree.Insert(k, "x")
	}

	floor, ceil := tree.FloorCeil(0x250)
	require.False(t, floor.End())
	require.False(t, ceil.End())
	assert.Equal(t, uint32(0x200), floor.Key())
	assert.Equal(t, uint32(0x300), ceil.Key())

	// an exact hit is both floor and ceil
	floor, ceil = tree.FloorCeil(0x200)
	assert.Equal(t, uint32(0x200), floor.Key())
	assert.Equal(t, uint32(0x200), ceil.Key())

	assert.True(t, tree.Floor(0x50).End())
	assert.True(t, tree.Ceil(0x400).End())
}

func TestTreeIteration(t *testing.T) {
	tree := &Tree[uint32, int]{}
	keys := []uint32{5, 1, 4, 2, 3}
	for _, k := range keys {
		tree.Insert(k, int(k)*10)
	}

	var got []uint32
	for it := tree.Min(); !it.End(); it = it.Next() {
		got = append(got, it.Key())
	}
	assert.Equal(t, []uint32{1, 2, 3, 4, 5}, got)

	got = got[:0]
	for it := tree.Max(); !it.End(); it = it.Prev() {
		got = append(got, it.Key())
	}
	assert.Equal(t, []uint32{5, 4, 3, 2, 1}, got)

	sum := 0
	tree.Each(func(_ uint32, v int) { sum += v })
	assert.Equal(t, 150, sum)
}

func TestTreeEmpty(t *testing.T) {
	tree := &Tree[uint32, int]{}
	assert.Equal(t, 0, tree.Size())
	assert.True(t, tree.Min().End())
	assert.True(t, tree.Max().End())
	assert.True(t, tree.Search(1).End())
}
