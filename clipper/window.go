package clipper

import (
	"encoding/binary"
	"fmt"
)

// ByteSource supplies raw bytes to the decoder. Read returns the bytes at
// addr; it may return fewer than n bytes near the end of a mapped range. It
// is supplied by a ROM/COFF/disk loader or any raw memory view.
type ByteSource interface {
	Read(addr uint32, n int) ([]byte, error)
}

// Window is an immutable bounds-checked view of bytes at an address. All
// multi-byte reads are little endian, the CLIPPER memory order.
type Window struct {
	Addr uint32
	Data []byte
}

func NewWindow(addr uint32, data []byte) Window {
	return Window{Addr: addr, Data: data}
}

func (w Window) Len() int { return len(w.Data) }

func (w Window) Byte(off int) (byte, error) {
	if off < 0 || off >= len(w.Data) {
		return 0, fmt.Errorf("%w: byte at +%d of %d", ErrTruncated, off, len(w.Data))
	}
	return w.Data[off], nil
}

func (w Window) U16(off int) (uint16, error) {
	if off < 0 || off+2 > len(w.Data) {
		return 0, fmt.Errorf("%w: u16 at +%d of %d", ErrTruncated, off, len(w.Data))
	}
	return binary.LittleEndian.Uint16(w.Data[off:]), nil
}

func (w Window) S16(off int) (int16, error) {
	v, err := w.U16(off)
	return int16(v), err
}

func (w Window) U32(off int) (uint32, error) {
	if off < 0 || off+4 > len(w.Data) {
		return 0, fmt.Errorf("%w: u32 at +%d of %d", ErrTruncated, off, len(w.Data))
	}
	return binary.LittleEndian.Uint32(w.Data[off:]), nil
}

func (w Window) S32(off int) (int32, error) {
	v, err := w.U32(off)
	return int32(v), err
}

// Bytes returns the first n bytes of the window, or as many as are available.
func (w Window) Bytes(n int) []byte {
	if n > len(w.Data) {
		n = len(w.Data)
	}
	return w.Data[:n]
}
