package clipper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowLittleEndian(t *testing.T) {
	w := NewWindow(0x1000, []byte{0x34, 0x12, 0x78, 0x56, 0xff, 0xff})

	u16, err := w.U16(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u16, err = w.U16(2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x5678), u16)

	u32, err := w.U32(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x56781234), u32)

	s16, err := w.S16(4)
	require.NoError(t, err)
	assert.Equal(t, int16(-1), s16)

	s32, err := w.S32(2)
	require.NoError(t, err)
	assert.Equal(t, int32(-0xa988), s32)
}

func TestWindowTruncated(t *testing.T) {
	w := NewWindow(0, []byte{0x01, 0x02, 0x03})

	_, err := w.U16(2)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = w.U32(0)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = w.S16(4)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestWindowBytesClamped(t *testing.T) {
	w := NewWindow(0, []byte{0x01, 0x02})
	assert.Equal(t, []byte{0x01, 0x02}, w.Bytes(8))
	assert.Equal(t, []byte{0x01}, w.Bytes(1))
}
