package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firodj/clipperlift/clipper"
)

// testImage is a small program at 0x1000:
//
//	0x1000  loadi  $5,r3
//	0x1004  addw   r1,r2
//	0x1006  bceq   0x1012
//	0x100a  movw   r4,r3
//	0x100c  db     0x1012        delayed, slot below
//	0x1010  addq   $1,r2
//	0x1012  call   sp,0x1018
//	0x1016  ret    sp
//	0x1018  ret    sp
var testImage = []byte{
	0x83, 0x87, 0x05, 0x00,
	0x12, 0x80,
	0x93, 0x49, 0x0c, 0x00,
	0x43, 0x84,
	0x90, 0x51, 0x06, 0x00,
	0x21, 0x82,
	0x9f, 0x45, 0x06, 0x00,
	0x0f, 0x13,
	0x0f, 0x13,
}

const testYaml = `module:
  name: demo
  entry_addr: 0x1000
memory:
  start: 0x1000
  image: memory.bin
regions:
  - name: text
    addr: 0x1000
    size: 0x1a
functions:
  - name: start
    address: 0x1000
    size: 0x18
`

func writeTestDoc(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clipper.yaml"), []byte(testYaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memory.bin"), testImage, 0o644))
	return dir
}

func loadTestDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := NewDocument(writeTestDoc(t))
	require.NoError(t, err)
	return doc
}

func TestNewDocument(t *testing.T) {
	doc := loadTestDoc(t)

	assert.Equal(t, "demo", doc.Name())
	assert.Equal(t, uint32(0x1000), doc.EntryAddr)
	assert.True(t, doc.IsValidAddress(0x1000))
	assert.True(t, doc.IsValidAddress(0x1019))
	assert.False(t, doc.IsValidAddress(0x101a))
	assert.False(t, doc.IsValidAddress(0xfff))

	fun := doc.FunManager.Get(0x1000)
	require.NotNil(t, fun)
	assert.Equal(t, "start", fun.Name)
}

func TestDocumentRead(t *testing.T) {
	doc := loadTestDoc(t)

	data, err := doc.Read(0x1000, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x83, 0x87, 0x05, 0x00}, data)

	// a read at the tail is clamped, not failed
	data, err = doc.Read(0x1018, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0f, 0x13}, data)

	_, err = doc.Read(0x2000, 2)
	assert.Error(t, err)
}

func TestDisasmMemoized(t *testing.T) {
	doc := loadTestDoc(t)

	line := doc.Disasm(0x1000)
	require.NotNil(t, line)
	assert.Equal(t, clipper.Mnemonic("loadi"), line.Instr.Op)
	assert.Equal(t, 4, line.Instr.Length)

	again := doc.Disasm(0x1000)
	assert.Same(t, line, again)

	assert.Nil(t, doc.Disasm(0x2000))
}

func TestProcessBBDelaySlot(t *testing.T) {
	doc := loadTestDoc(t)

	var states []BBAnalState
	count := doc.ProcessBB(0x1000, 0, func(state BBAnalState) {
		states = append(states, state)
	})

	require.Equal(t, 2, count)

	first := states[0]
	assert.Equal(t, uint32(0x1000), first.BBAddr)
	assert.Equal(t, uint32(0x1006), first.BranchAddr)
	assert.Equal(t, uint32(0x1006), first.LastAddr)
	require.Len(t, first.Lines, 3)

	// the delayed branch keeps its slot instruction inside the block
	second := states[1]
	assert.Equal(t, uint32(0x100a), second.BBAddr)
	assert.Equal(t, uint32(0x100c), second.BranchAddr)
	assert.Equal(t, uint32(0x1010), second.LastAddr)
	require.Len(t, second.Lines, 3)
	assert.Equal(t, clipper.OpDB, second.Lines[1].Op)
	assert.Equal(t, clipper.Mnemonic("addq"), second.Lines[2].Op)
}

func TestLiftBBPairsDelaySlot(t *testing.T) {
	doc := loadTestDoc(t)

	var states []BBAnalState
	doc.ProcessBB(0x100a, 0, func(state BBAnalState) {
		states = append(states, state)
	})
	require.Len(t, states, 1)

	ops, err := doc.LiftBB(states[0])
	require.NoError(t, err)

	// movw, then the slot's addq, then the deferred transfer
	require.Len(t, ops, 3)
	assert.Equal(t, "r3 = r4 {cvzn}", ops[0].String())
	assert.Equal(t, "r2 = (r2 + 0x1) {cvzn}", ops[1].String())
	assert.Equal(t, "goto 0x1012", ops[2].String())
}

func TestAnalyzeFrom(t *testing.T) {
	doc := loadTestDoc(t)

	doc.AnalyzeFrom(doc.EntryAddr)

	fun := doc.FunManager.Get(0x1000)
	require.NotNil(t, fun)
	assert.Equal(t, uint32(0x18), fun.Size)
	assert.Contains(t, fun.BBAddresses, uint32(0x1000))
	assert.Contains(t, fun.BBAddresses, uint32(0x100a))
	assert.Contains(t, fun.BBAddresses, uint32(0x1012))

	// the call target became its own function
	callee := doc.FunManager.Get(0x1018)
	require.NotNil(t, callee)
	assert.Equal(t, "z_un_00001018", callee.Name)

	// and a call edge under the entry in the graph
	root := doc.Graph.Root()
	entryID, ok := root.Subs.Get(0x1000)
	require.True(t, ok)
	entryNode := doc.Graph.At(entryID)
	require.NotNil(t, entryNode)
	calleeID, ok := entryNode.Subs.Get(0x1018)
	require.True(t, ok)
	assert.Equal(t, callee, doc.Graph.At(calleeID).Fun)

	// both branches land on 0x1012
	in, _ := doc.BBManager.GetRefs(0x1012)
	assert.Len(t, in, 2)
}

func TestGetLabelName(t *testing.T) {
	doc := loadTestDoc(t)

	assert.Equal(t, "start", doc.GetLabelName(0x1000))
	assert.Equal(t, "start__0x6", doc.GetLabelName(0x1006))
	assert.Equal(t, "loc_0x00002000", doc.GetLabelName(0x2000))
}
