package clipper

import (
	"fmt"
	"strings"

	"github.com/firodj/clipperlift/clipper/il"
)

// MaxInstrLen is the longest CLIPPER encoding (rel32 address form).
const MaxInstrLen = 8

// MinInstrLen is one parcel.
const MinInstrLen = 2

// Instruction is a fully decoded instruction record. It is a value owned by
// the caller; the decoder holds no state.
type Instruction struct {
	Address uint32
	Op      Mnemonic
	Format  Format
	Mode    AddrMode

	// raw encoding fields; -1 when absent
	R1, R2, RX int
	Constant   int32

	Operands  []Operand
	Length    int
	Flags     il.FlagSet
	Cond      Predicate
	DelaySlot bool
	Raw       []byte
}

// Unimplemented reports whether the record is the degraded form produced for
// undecodable bytes.
func (in *Instruction) Unimplemented() bool {
	return in.Op == OpUnimpl
}

// Conditional reports whether the instruction's behavior is guarded by its
// condition field.
func (in *Instruction) Conditional() bool {
	return strings.ContainsRune(string(in.Op), '*') && in.Cond != PredAlways
}

// StaticTarget resolves the instruction's target address when the addressing
// mode names one statically. PC relative displacements resolve against the
// instruction's own address, not the delay slot adjusted one.
func (in *Instruction) StaticTarget() (uint32, bool) {
	switch in.Mode {
	case ModePC16, ModePC32:
		return in.Address + uint32(in.Constant), true
	case ModeAbs16, ModeAbs32:
		return uint32(in.Constant), true
	}
	return 0, false
}

// MnemonicText renders the mnemonic with the condition code name injected
// into conditional branch/set forms.
func (in *Instruction) MnemonicText() string {
	s := string(in.Op)
	if strings.ContainsRune(s, '*') {
		s = strings.ReplaceAll(s, "*", in.Cond.CCName())
	}
	return s
}

func (in *Instruction) String() string {
	parts := make([]string, len(in.Operands))
	for i, o := range in.Operands {
		parts[i] = o.Format(in.Address)
	}
	if len(parts) == 0 {
		return in.MnemonicText()
	}
	return fmt.Sprintf("%-8s %s", in.MnemonicText(), strings.Join(parts, ","))
}

// Classify inspects the leading bytes of a window and reports the encoding
// class and total instruction length. It reads no further than needed to
// disambiguate.
func Classify(w Window) (Format, int, error) {
	parcel0, err := w.U16(0)
	if err != nil {
		return FmtUnknown, 0, err
	}
	def := lookup(parcel0)
	if def == nil {
		return FmtUnknown, 0, fmt.Errorf("%w: 0x%04x", ErrBadOpcode, parcel0)
	}
	f, err := def.decode(parcel0, w)
	if err != nil {
		return def.format, 0, err
	}
	return def.format, f.length, nil
}

// Resolve extracts the operand descriptors of the instruction at the start
// of the window.
func Resolve(w Window) ([]Operand, error) {
	parcel0, err := w.U16(0)
	if err != nil {
		return nil, err
	}
	def := lookup(parcel0)
	if def == nil {
		return nil, fmt.Errorf("%w: 0x%04x", ErrBadOpcode, parcel0)
	}
	f, err := def.decode(parcel0, w)
	if err != nil {
		return nil, err
	}
	return buildOperands(def, f), nil
}

func buildOperands(def *instrDef, f fields) []Operand {
	if len(def.operands) == 0 {
		return nil
	}
	opnds := make([]Operand, 0, len(def.operands))
	for _, kind := range def.operands {
		switch kind {
		case opR1:
			opnds = append(opnds, Operand{Type: OpdReg, Reg: f.r1})
		case opR2:
			opnds = append(opnds, Operand{Type: OpdReg, Reg: f.r2})
		case opF1:
			opnds = append(opnds, Operand{Type: OpdFReg, Reg: f.r1})
		case opF2:
			opnds = append(opnds, Operand{Type: OpdFReg, Reg: f.r2})
		case opQuick:
			opnds = append(opnds, Operand{Type: OpdImm, Value: int32(f.r1), Width: 1})
		case opSR:
			opnds = append(opnds, Operand{Type: OpdSReg, Reg: f.r1})
		case opImm:
			width := 2
			if f.length >= 6 {
				width = 4
			}
			opnds = append(opnds, Operand{Type: OpdImm, Value: f.c, Width: width})
		case opAddr:
			opnds = append(opnds, addrOperand(f))
		}
	}
	return opnds
}

func addrOperand(f fields) Operand {
	switch f.mode {
	case ModeRelative:
		return Operand{Type: OpdDisp, Reg: f.r1}
	case ModeRel12, ModeRel32:
		return Operand{Type: OpdDisp, Reg: f.r1, Value: f.c}
	case ModeAbs16, ModeAbs32:
		return Operand{Type: OpdAbs, Value: f.c}
	case ModePC16, ModePC32:
		return Operand{Type: OpdPCRel, Value: f.c}
	case ModePCX:
		return Operand{Type: OpdIndexed, Index: f.rx, Scale: 1, PC: true}
	case ModeRelX:
		return Operand{Type: OpdIndexed, Reg: f.r1, Index: f.rx, Scale: 1}
	}
	return Operand{}
}

// Decode reads and decodes the instruction at addr. It is pure: identical
// bytes at an identical address always produce an identical record.
//
// Classifier and resolver failures do not abort a linear sweep: the returned
// record is a one byte unimplemented instruction and the typed error reports
// the cause. The error is nil only for a clean decode. A nil source is a
// contract violation and returns no record.
func Decode(addr uint32, src ByteSource) (*Instruction, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	data, err := src.Read(addr, MaxInstrLen)
	if err != nil || len(data) < MinInstrLen {
		raw := data
		if len(raw) > 1 {
			raw = raw[:1]
		}
		if err == nil {
			err = fmt.Errorf("%w: %d bytes at 0x%08x", ErrTruncated, len(data), addr)
		}
		return degraded(addr, raw), err
	}

	w := NewWindow(addr, data)
	parcel0, _ := w.U16(0)

	def := lookup(parcel0)
	if def == nil {
		return degraded(addr, data[:1]), fmt.Errorf("%w: 0x%04x at 0x%08x", ErrBadOpcode, parcel0, addr)
	}

	f, err := def.decode(parcel0, w)
	if err != nil {
		return degraded(addr, data[:1]), fmt.Errorf("[0x%08x] %w", addr, err)
	}

	in := &Instruction{
		Address:   addr,
		Op:        def.name,
		Format:    def.format,
		Mode:      f.mode,
		R1:        f.r1,
		R2:        f.r2,
		RX:        f.rx,
		Constant:  f.c,
		Operands:  buildOperands(def, f),
		Length:    f.length,
		Flags:     FlagsWritten(def.name),
		DelaySlot: def.delaySlot,
		Raw:       append([]byte(nil), w.Bytes(f.length)...),
	}
	if def.name == OpB || def.name == OpDB || def.name == OpS {
		in.Cond = Predicate(f.r2 & 0xf)
	}
	return in, nil
}

// degraded is the conservative one byte unimplemented record that keeps a
// linear sweep progressing past undecodable bytes.
func degraded(addr uint32, raw []byte) *Instruction {
	return &Instruction{
		Address: addr,
		Op:      OpUnimpl,
		Format:  FmtUnknown,
		Mode:    ModeNone,
		R1:      -1, R2: -1, RX: -1,
		Length: 1,
		Raw:    append([]byte(nil), raw...),
	}
}
