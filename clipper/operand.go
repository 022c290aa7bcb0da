package clipper

import "fmt"

// AddrMode is the CLIPPER addressing mode nibble of an address-form
// instruction.
type AddrMode uint8

const (
	ModeRelative AddrMode = 0x00 // relative
	ModePC32     AddrMode = 0x10 // pc relative with 32 bit displacement
	ModeAbs32    AddrMode = 0x30 // 32 bit absolute
	ModeRel32    AddrMode = 0x60 // relative with 32 bit displacement
	ModePC16     AddrMode = 0x90 // pc relative with 16 bit displacement
	ModeRel12    AddrMode = 0xa0 // relative with 12 bit displacement
	ModeAbs16    AddrMode = 0xb0 // 16 bit absolute
	ModePCX      AddrMode = 0xd0 // pc indexed
	ModeRelX     AddrMode = 0xe0 // relative indexed

	ModeNone AddrMode = 0xff // not an address-form instruction
)

var addrModeNames = map[AddrMode]string{
	ModeRelative: "relative",
	ModePC32:     "pc32",
	ModeAbs32:    "abs32",
	ModeRel32:    "rel32",
	ModePC16:     "pc16",
	ModeRel12:    "rel12",
	ModeAbs16:    "abs16",
	ModePCX:      "pcx",
	ModeRelX:     "relx",
	ModeNone:     "none",
}

func (m AddrMode) String() string {
	if s, ok := addrModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(0x%02x)", uint8(m))
}

// OperandType tags the semantic shape of one operand.
type OperandType string

const (
	OpdReg     OperandType = "reg"     // integer register
	OpdFReg    OperandType = "freg"    // floating point register
	OpdSReg    OperandType = "sreg"    // special register
	OpdImm     OperandType = "imm"     // immediate value
	OpdAbs     OperandType = "abs"     // absolute memory address
	OpdDisp    OperandType = "disp"    // base register + displacement
	OpdIndexed OperandType = "indexed" // base register + index register
	OpdPCRel   OperandType = "pcrel"   // pc + displacement
)

// Operand describes how to compute one operand's value or address at lift
// time. It never performs the address arithmetic itself.
type Operand struct {
	Type  OperandType
	Reg   int   // register index, or base register for disp/indexed
	Index int   // index register for indexed modes
	Scale int   // index scale; always 1 on CLIPPER
	Value int32 // immediate, displacement or pc offset
	Width int   // immediate width in bytes
	PC    bool  // indexed/relative to pc rather than a base register
}

// Format renders the operand the way the disassembly listing shows it. addr
// is the instruction's own address, used to resolve pc relative offsets.
func (o Operand) Format(addr uint32) string {
	switch o.Type {
	case OpdReg:
		return IReg[o.Reg&0xf]
	case OpdFReg:
		return FReg[o.Reg&0xf]
	case OpdSReg:
		return SReg[o.Reg&0x3]
	case OpdImm:
		if o.Value < 0 {
			return fmt.Sprintf("$-0x%x", -o.Value)
		}
		return fmt.Sprintf("$0x%x", o.Value)
	case OpdAbs:
		return fmt.Sprintf("0x%x", uint32(o.Value))
	case OpdDisp:
		if o.Value == 0 {
			return fmt.Sprintf("(%s)", IReg[o.Reg&0xf])
		}
		if o.Value < 0 {
			return fmt.Sprintf("-0x%x(%s)", -o.Value, IReg[o.Reg&0xf])
		}
		return fmt.Sprintf("0x%x(%s)", o.Value, IReg[o.Reg&0xf])
	case OpdIndexed:
		base := IReg[o.Reg&0xf]
		if o.PC {
			base = "pc"
		}
		return fmt.Sprintf("[%s](%s)", IReg[o.Index&0xf], base)
	case OpdPCRel:
		return fmt.Sprintf("0x%x", addr+uint32(o.Value))
	}
	return "??"
}
