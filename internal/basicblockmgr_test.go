package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBBCreate(t *testing.T) {
	bbmanager := NewBasicBlockManager(nil)

	addr := uint32(0x800001)
	bb := bbmanager.Create(addr)
	bb.LastAddress = addr
	assert.NotNil(t, bb)

	bb2 := bbmanager.Create(addr)
	assert.Nil(t, bb2)
}

func TestBBGet(t *testing.T) {
	bbmanager := NewBasicBlockManager(nil)

	bb := bbmanager.Create(0x800020)
	bb.LastAddress = 0x80002d

	bb = bbmanager.Create(0x800010)
	bb.LastAddress = 0x80001d

	bb = bbmanager.Get(0x800000)
	assert.Nil(t, bb)

	bb = bbmanager.Get(0x800010)
	assert.NotNil(t, bb)
	assert.Equal(t, uint32(0x800010), bb.Address)

	bb = bbmanager.Get(0x800018)
	assert.NotNil(t, bb)
	assert.Equal(t, uint32(0x800010), bb.Address)

	bb = bbmanager.Get(0x800030)
	assert.Nil(t, bb)
}

func TestBBSplitAt(t *testing.T) {
	bbmanager := NewBasicBlockManager(nil)

	// block of mixed length instructions: 2 at 0x800008, 6 at 0x80000a,
	// branch of 4 at 0x800010
	bb := bbmanager.Create(0x800008)
	bb.LastAddress = 0x800010
	bb.BranchAddress = 0x800010

	prev, split := bbmanager.SplitAt(0x800010, 0x80000f)

	assert.Equal(t, uint32(0x800008), prev.Address)
	assert.Equal(t, uint32(0x80000f), prev.LastAddress)
	assert.Equal(t, uint32(0), prev.BranchAddress)

	assert.Equal(t, uint32(0x800010), split.Address)
	assert.Equal(t, uint32(0x800010), split.BranchAddress)
	assert.Equal(t, uint32(0x800010), split.LastAddress)

	// the halves stay connected
	in, out := bbmanager.GetRefs(0x800010)
	assert.Len(t, in, 1)
	assert.True(t, in[0].IsAdjacent)
	assert.Empty(t, out)
}

func TestBBSplitAtExisting(t *testing.T) {
	bbmanager := NewBasicBlockManager(nil)

	bb := bbmanager.Create(0x800008)
	bb.LastAddress = 0x80000f

	prev, split := bbmanager.SplitAt(0x800008, 0)
	assert.Equal(t, bb, prev)
	assert.Equal(t, bb, split)
}

func TestBBReferences(t *testing.T) {
	bbmanager := NewBasicBlockManager(nil)

	ref := bbmanager.CreateReference(0x1000, 0x2000)
	assert.NotNil(t, ref)

	// the same edge is never duplicated
	again := bbmanager.CreateReference(0x1000, 0x2000)
	assert.Same(t, ref, again)

	bbmanager.CreateReference(0x1800, 0x2000).SetLinked(true)

	in, out := bbmanager.GetRefs(0x2000)
	assert.Len(t, in, 2)
	assert.Empty(t, out)

	_, out = bbmanager.GetRefs(0x1000)
	assert.Len(t, out, 1)
}
