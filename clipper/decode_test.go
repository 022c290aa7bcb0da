package clipper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource serves a contiguous byte image at a base address. Reads past the
// end return the bytes that remain, mirroring a memory region boundary.
type memSource struct {
	base uint32
	data []byte
}

func (m *memSource) Read(addr uint32, n int) ([]byte, error) {
	if addr < m.base || addr >= m.base+uint32(len(m.data)) {
		return nil, fmt.Errorf("address 0x%08x outside image", addr)
	}
	off := int(addr - m.base)
	if off+n > len(m.data) {
		n = len(m.data) - off
	}
	return m.data[off : off+n], nil
}

func srcAt(addr uint32, data ...byte) *memSource {
	return &memSource{base: addr, data: data}
}

func TestDecodeRegisterForm(t *testing.T) {
	// addw r1,r2
	in, err := Decode(0x100, srcAt(0x100, 0x12, 0x80))
	require.NoError(t, err)

	assert.Equal(t, Mnemonic("addw"), in.Op)
	assert.Equal(t, FmtRegister, in.Format)
	assert.Equal(t, 2, in.Length)
	assert.Equal(t, 1, in.R1)
	assert.Equal(t, 2, in.R2)
	assert.Equal(t, []byte{0x12, 0x80}, in.Raw)
	assert.Equal(t, "addw     r1,r2", in.String())
	assert.False(t, in.DelaySlot)
}

func TestDecodeQuickForm(t *testing.T) {
	// addq $3,r5
	in, err := Decode(0, srcAt(0, 0x35, 0x82))
	require.NoError(t, err)

	assert.Equal(t, Mnemonic("addq"), in.Op)
	assert.Equal(t, 3, in.R1)
	assert.Equal(t, 5, in.R2)
	assert.Equal(t, "addq     $0x3,r5", in.String())
}

func TestDecodeImmediateForms(t *testing.T) {
	// loadi $5,r3 with the 16 bit immediate select bit
	in, err := Decode(0, srcAt(0, 0x83, 0x87, 0x05, 0x00))
	require.NoError(t, err)
	assert.Equal(t, Mnemonic("loadi"), in.Op)
	assert.Equal(t, FmtImmVar, in.Format)
	assert.Equal(t, 4, in.Length)
	assert.Equal(t, int32(5), in.Constant)
	assert.Equal(t, 3, in.R2)

	// same opcode, 32 bit immediate
	in, err = Decode(0, srcAt(0, 0x03, 0x87, 0x78, 0x56, 0x34, 0x12))
	require.NoError(t, err)
	assert.Equal(t, 6, in.Length)
	assert.Equal(t, int32(0x12345678), in.Constant)

	// shai $-2,r4 carries a fixed 16 bit immediate
	in, err = Decode(0, srcAt(0, 0x04, 0x38, 0xfe, 0xff))
	require.NoError(t, err)
	assert.Equal(t, Mnemonic("shai"), in.Op)
	assert.Equal(t, FmtImm16, in.Format)
	assert.Equal(t, int32(-2), in.Constant)
	assert.Equal(t, 4, in.R2)
}

func TestDecodeAddressModes(t *testing.T) {
	// loadw (r3),r2: short form keeps the address in r1
	in, err := Decode(0, srcAt(0, 0x32, 0x60))
	require.NoError(t, err)
	assert.Equal(t, ModeRelative, in.Mode)
	assert.Equal(t, 2, in.Length)
	assert.Equal(t, 3, in.R1)
	assert.Equal(t, 2, in.R2)

	// loadw 0x2000(pc),r2 via the 16 bit pc relative mode at 0x1000
	in, err = Decode(0x1000, srcAt(0x1000, 0x92, 0x61, 0x00, 0x10))
	require.NoError(t, err)
	assert.Equal(t, ModePC16, in.Mode)
	assert.Equal(t, 4, in.Length)
	assert.Equal(t, int32(0x1000), in.Constant)
	target, ok := in.StaticTarget()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x2000), target)

	// 32 bit absolute
	in, err = Decode(0, srcAt(0, 0x32, 0x61, 0x00, 0x00, 0x40, 0x00))
	require.NoError(t, err)
	assert.Equal(t, ModeAbs32, in.Mode)
	assert.Equal(t, 6, in.Length)
	assert.Equal(t, int32(0x400000), in.Constant)

	// -8(r1),r2 via the 12 bit relative mode
	in, err = Decode(0, srcAt(0, 0xa1, 0x61, 0x82, 0xff))
	require.NoError(t, err)
	assert.Equal(t, ModeRel12, in.Mode)
	assert.Equal(t, 4, in.Length)
	assert.Equal(t, 1, in.R1)
	assert.Equal(t, 2, in.R2)
	assert.Equal(t, int32(-8), in.Constant)

	// 32 bit relative is the longest encoding
	in, err = Decode(0, srcAt(0, 0x61, 0x61, 0x02, 0x00, 0x10, 0x00, 0x00, 0x00))
	require.NoError(t, err)
	assert.Equal(t, ModeRel32, in.Mode)
	assert.Equal(t, 8, in.Length)
	assert.Equal(t, 1, in.R1)
	assert.Equal(t, 2, in.R2)
	assert.Equal(t, int32(0x10), in.Constant)

	// [r4](r1),r2 indexed
	in, err = Decode(0, srcAt(0, 0xe1, 0x61, 0x42, 0x00))
	require.NoError(t, err)
	assert.Equal(t, ModeRelX, in.Mode)
	assert.Equal(t, 4, in.Length)
	assert.Equal(t, 1, in.R1)
	assert.Equal(t, 2, in.R2)
	assert.Equal(t, 4, in.RX)
}

func TestDecodeBranchCondition(t *testing.T) {
	// bceq 0x2000 at 0x1000
	in, err := Decode(0x1000, srcAt(0x1000, 0x93, 0x49, 0x00, 0x10))
	require.NoError(t, err)
	assert.Equal(t, OpB, in.Op)
	assert.Equal(t, PredEQ, in.Cond)
	assert.True(t, in.Conditional())
	assert.Equal(t, "bceq", in.MnemonicText())

	// unconditional form
	in, err = Decode(0x1000, srcAt(0x1000, 0x90, 0x49, 0x00, 0x10))
	require.NoError(t, err)
	assert.Equal(t, PredAlways, in.Cond)
	assert.False(t, in.Conditional())
	assert.Equal(t, "b", in.MnemonicText())
}

func TestDecodeDelayedBranch(t *testing.T) {
	in, err := Decode(0x1000, srcAt(0x1000, 0x90, 0x51, 0x00, 0x10))
	require.NoError(t, err)
	assert.Equal(t, OpDB, in.Op)
	assert.True(t, in.DelaySlot)
	target, ok := in.StaticTarget()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x2000), target)
}

func TestDecodeMacroForm(t *testing.T) {
	// savew3
	in, err := Decode(0, srcAt(0, 0x03, 0xb4, 0x00, 0x00))
	require.NoError(t, err)
	assert.Equal(t, Mnemonic("savew3"), in.Op)
	assert.Equal(t, FmtMacro, in.Format)
	assert.Equal(t, 4, in.Length)

	// reti sp comes from the second macro page
	in, err = Decode(0, srcAt(0, 0x04, 0xb6, 0xf0, 0x00))
	require.NoError(t, err)
	assert.Equal(t, OpReti, in.Op)
	assert.Equal(t, 15, in.R1)
}

func TestDecodeBadOpcodeDegrades(t *testing.T) {
	// cdb* needs two delay slots and stays undecoded
	in, err := Decode(0x500, srcAt(0x500, 0x90, 0x4b, 0x00, 0x10))
	require.NotNil(t, in)
	assert.ErrorIs(t, err, ErrBadOpcode)
	assert.True(t, in.Unimplemented())
	assert.Equal(t, 1, in.Length)
	assert.Equal(t, uint32(0x500), in.Address)
	assert.Equal(t, []byte{0x90}, in.Raw)
}

func TestDecodeReservedModeDegrades(t *testing.T) {
	// address form with the reserved 0x40 mode nibble
	in, err := Decode(0, srcAt(0, 0x42, 0x61, 0x00, 0x00))
	require.NotNil(t, in)
	assert.ErrorIs(t, err, ErrUnknownAddressingMode)
	assert.True(t, in.Unimplemented())
	assert.Equal(t, 1, in.Length)
}

func TestDecodeTruncatedDegrades(t *testing.T) {
	// a single trailing byte cannot hold a parcel
	in, err := Decode(0x10, srcAt(0x10, 0x80))
	require.NotNil(t, in)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.True(t, in.Unimplemented())
	assert.Equal(t, 1, in.Length)
}

func TestDecodeNilSource(t *testing.T) {
	in, err := Decode(0, nil)
	assert.Nil(t, in)
	assert.ErrorIs(t, err, ErrNilSource)
}

func TestDecodeDeterministic(t *testing.T) {
	src := srcAt(0x100, 0x12, 0x80)
	a, err := Decode(0x100, src)
	require.NoError(t, err)
	b, err := Decode(0x100, src)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClassify(t *testing.T) {
	f, n, err := Classify(NewWindow(0, []byte{0x12, 0x80}))
	require.NoError(t, err)
	assert.Equal(t, FmtRegister, f)
	assert.Equal(t, 2, n)

	f, n, err = Classify(NewWindow(0, []byte{0x61, 0x61, 0x02, 0x00, 0x10, 0x00, 0x00, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, FmtAddress, f)
	assert.Equal(t, 8, n)

	_, _, err = Classify(NewWindow(0, []byte{0x00, 0x15}))
	assert.ErrorIs(t, err, ErrBadOpcode)
}

func TestResolveOperands(t *testing.T) {
	// storw r2,0x40(r1)
	opds, err := Resolve(NewWindow(0, []byte{0xa1, 0x71, 0x02, 0x04}))
	require.NoError(t, err)
	require.Len(t, opds, 2)
	assert.Equal(t, OpdReg, opds[0].Type)
	assert.Equal(t, 2, opds[0].Reg)
	assert.Equal(t, OpdDisp, opds[1].Type)
	assert.Equal(t, 1, opds[1].Reg)
	assert.Equal(t, int32(0x40), opds[1].Value)
}
