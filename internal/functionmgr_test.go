package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNewFunction(t *testing.T) {
	doc := newDocument()

	fun := doc.FunManager.CreateNewFunction(0x1000, 0x20)
	require.NotNil(t, fun)
	assert.Equal(t, "z_un_00001000", fun.Name)
	assert.Equal(t, uint32(0x101f), fun.LastAddress())

	// the synthesized name lands in the symbol map too
	assert.Equal(t, uint32(0x1000), doc.SymMap.GetFunctionStart(0x1010))

	dup := doc.FunManager.CreateNewFunction(0x1000, 0x20)
	assert.Nil(t, dup)
}

func TestCreateNewFunctionNamed(t *testing.T) {
	doc := newDocument()
	doc.SymMap.AddFunction("start", 0x1000, 0x20)

	fun := doc.FunManager.CreateNewFunction(0x1000, 0x20)
	require.NotNil(t, fun)
	assert.Equal(t, "start", fun.Name)

	funs := doc.FunManager.GetByName("start")
	require.Len(t, funs, 1)
	assert.Equal(t, fun, funs[0])
}

func TestFunctionSplitAt(t *testing.T) {
	doc := newDocument()
	doc.SymMap.AddFunction("big", 0x1000, 0x40)
	doc.FunManager.CreateNewFunction(0x1000, 0x40)

	prev, split := doc.FunManager.SplitAt(0x1020, 0x101d)
	require.NotNil(t, prev)
	require.NotNil(t, split)

	assert.Equal(t, uint32(0x1000), prev.Address)
	assert.Equal(t, uint32(0x101d), prev.LastAddress())

	assert.Equal(t, uint32(0x1020), split.Address)
	assert.Equal(t, uint32(0x103f), split.LastAddress())

	assert.Equal(t, prev.Size, doc.SymMap.GetFunctionSize(0x1000))
}

func TestFunctionAddBB(t *testing.T) {
	fun := &Function{Address: 0x1000}
	fun.AddBB(0x1000)
	fun.AddBB(0x1010)
	fun.AddBB(0x1000)

	assert.Equal(t, []uint32{0x1000, 0x1010}, fun.BBAddresses)
}
