package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolMapFunctions(t *testing.T) {
	symmap := NewSymbolMap()
	symmap.AddFunction("init", 0x1000, 0x40)
	symmap.AddFunction("main", 0x1040, 0x100)

	assert.Equal(t, uint32(0x1000), symmap.GetFunctionStart(0x1000))
	assert.Equal(t, uint32(0x1000), symmap.GetFunctionStart(0x103f))
	assert.Equal(t, uint32(0x1040), symmap.GetFunctionStart(0x1080))
	assert.Equal(t, uint32(0), symmap.GetFunctionStart(0x2000))
	assert.Equal(t, uint32(0), symmap.GetFunctionStart(0xfff))

	assert.Equal(t, uint32(0x40), symmap.GetFunctionSize(0x1000))
	symmap.SetFunctionSize(0x1000, 0x20)
	assert.Equal(t, uint32(0x20), symmap.GetFunctionSize(0x1000))

	// shrinking init leaves 0x1020 uncovered
	assert.Equal(t, uint32(0), symmap.GetFunctionStart(0x1030))

	name := symmap.GetLabelName(0x1040)
	require.NotNil(t, name)
	assert.Equal(t, "main", *name)
	assert.Nil(t, symmap.GetLabelName(0x1041))
}

func TestSymbolMapReplace(t *testing.T) {
	symmap := NewSymbolMap()
	symmap.AddFunction("z_un_00001000", 0x1000, 0x10)
	symmap.AddFunction("start", 0x1000, 0x20)

	name := symmap.GetLabelName(0x1000)
	require.NotNil(t, name)
	assert.Equal(t, "start", *name)
	assert.Equal(t, uint32(0x20), symmap.GetFunctionSize(0x1000))
}

func TestSymbolMapModules(t *testing.T) {
	symmap := NewSymbolMap()
	symmap.AddModule("text", 0x1000, 0x1000)

	require.NotNil(t, symmap.GetModule(0x1800))
	assert.Equal(t, "text", symmap.GetModule(0x1800).Name)
	assert.Nil(t, symmap.GetModule(0x2000))
}
