package clipper

import "fmt"

// Mnemonic tags a decoded instruction. Conditional branch and set
// instructions keep a '*' placeholder that the listing replaces with the
// condition code name.
type Mnemonic string

// Mnemonics referenced outside the tables.
const (
	OpNoop   Mnemonic = "noop"
	OpCall   Mnemonic = "call"
	OpCalls  Mnemonic = "calls"
	OpRet    Mnemonic = "ret"
	OpReti   Mnemonic = "reti"
	OpB      Mnemonic = "b*"
	OpDB     Mnemonic = "db*"
	OpS      Mnemonic = "s*"
	OpUnimpl Mnemonic = "unimplemented"
)

// Format is the encoding class of an instruction.
type Format uint8

const (
	FmtUnknown  Format = iota
	FmtRegister        // two register fields in the first parcel
	FmtControl         // 8 bit control value in the first parcel
	FmtMacro           // 16 bit macro opcode, registers in the second parcel
	FmtImm16           // fixed 16 bit immediate
	FmtImmVar          // 16 or 32 bit immediate selected by a parcel bit
	FmtAddress         // one of the nine addressing modes
)

var formatNames = [...]string{"unknown", "register", "control", "macro", "imm16", "immvar", "address"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "format?"
}

// fields is the raw result of operand resolution: instruction length plus the
// bit fields every lift rule consumes. A register index of -1 means the field
// is absent from the encoding.
type fields struct {
	length int
	r1     int
	r2     int
	rx     int
	c      int32
	mode   AddrMode
}

type formatFunc func(parcel0 uint16, w Window) (fields, error)

func fmtRegister(parcel0 uint16, _ Window) (fields, error) {
	return fields{length: 2, r1: int(parcel0&0xf0) >> 4, r2: int(parcel0 & 0xf), rx: -1, mode: ModeNone}, nil
}

func fmtControl(parcel0 uint16, _ Window) (fields, error) {
	return fields{length: 2, r1: -1, r2: -1, rx: -1, c: int32(parcel0 & 0xff), mode: ModeNone}, nil
}

func fmtMacro(_ uint16, w Window) (fields, error) {
	parcel1, err := w.U16(2)
	if err != nil {
		return fields{}, err
	}
	return fields{length: 4, r1: int(parcel1&0xf0) >> 4, r2: int(parcel1 & 0xf), rx: -1, mode: ModeNone}, nil
}

func fmtImm16(parcel0 uint16, w Window) (fields, error) {
	c, err := w.S16(2)
	if err != nil {
		return fields{}, err
	}
	return fields{length: 4, r1: -1, r2: int(parcel0 & 0xf), rx: -1, c: int32(c), mode: ModeNone}, nil
}

func fmtImmVar(parcel0 uint16, w Window) (fields, error) {
	if parcel0&0x80 != 0 {
		c, err := w.S16(2)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 4, r1: -1, r2: int(parcel0 & 0xf), rx: -1, c: int32(c), mode: ModeNone}, nil
	}
	c, err := w.S32(2)
	if err != nil {
		return fields{}, err
	}
	return fields{length: 6, r1: -1, r2: int(parcel0 & 0xf), rx: -1, c: c, mode: ModeNone}, nil
}

func fmtAddress(parcel0 uint16, w Window) (fields, error) {
	if parcel0&0x100 == 0 {
		// short form: the address is the content of r1
		return fields{length: 2, r1: int(parcel0&0xf0) >> 4, r2: int(parcel0 & 0xf), rx: -1, mode: ModeRelative}, nil
	}

	switch AddrMode(parcel0 & 0xf0) {
	case ModePC32:
		c, err := w.S32(2)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 6, r1: -1, r2: int(parcel0 & 0xf), rx: -1, c: c, mode: ModePC32}, nil
	case ModeAbs32:
		c, err := w.U32(2)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 6, r1: -1, r2: int(parcel0 & 0xf), rx: -1, c: int32(c), mode: ModeAbs32}, nil
	case ModeRel32:
		parcel1, err := w.U16(2)
		if err != nil {
			return fields{}, err
		}
		c, err := w.S32(4)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 8, r1: int(parcel0 & 0xf), r2: int(parcel1 & 0xf), rx: -1, c: c, mode: ModeRel32}, nil
	case ModePC16:
		c, err := w.S16(2)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 4, r1: -1, r2: int(parcel0 & 0xf), rx: -1, c: int32(c), mode: ModePC16}, nil
	case ModeRel12:
		parcel1, err := w.S16(2)
		if err != nil {
			return fields{}, err
		}
		// displacement is the sign extended top 12 bits of the parcel
		return fields{length: 4, r1: int(parcel0 & 0xf), r2: int(parcel1 & 0xf), rx: -1, c: int32(parcel1 >> 4), mode: ModeRel12}, nil
	case ModeAbs16:
		c, err := w.U16(2)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 4, r1: -1, r2: int(parcel0 & 0xf), rx: -1, c: int32(c), mode: ModeAbs16}, nil
	case ModePCX:
		parcel1, err := w.U16(2)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 4, r1: -1, r2: int(parcel1 & 0xf), rx: int(parcel1&0xf0) >> 4, mode: ModePCX}, nil
	case ModeRelX:
		parcel1, err := w.U16(2)
		if err != nil {
			return fields{}, err
		}
		return fields{length: 4, r1: int(parcel0 & 0xf), r2: int(parcel1 & 0xf), rx: int(parcel1&0xf0) >> 4, mode: ModeRelX}, nil
	}
	return fields{}, fmt.Errorf("%w: 0x%02x", ErrUnknownAddressingMode, uint8(parcel0&0xf0))
}

// opndKind selects how one operand descriptor is built from the decoded
// fields.
type opndKind uint8

const (
	opR1 opndKind = iota + 1 // source integer register
	opR2                     // destination integer register
	opF1                     // source floating point register
	opF2                     // destination floating point register
	opQuick                  // 4 bit immediate in the r1 field
	opSR                     // special register in the r1 field
	opImm                    // immediate or control constant
	opAddr                   // address using any of the nine modes
)

type instrDef struct {
	name      Mnemonic
	format    Format
	decode    formatFunc
	operands  []opndKind
	delaySlot bool
}

// instructions is the standard CLIPPER opcode map, keyed by the primary
// opcode byte.
var instructions = map[uint8]*instrDef{
	0x00: {name: OpNoop, format: FmtControl, decode: fmtControl},

	0x10: {name: "movwp", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR2, opSR}},
	0x11: {name: "movpw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opSR, opR2}},
	0x12: {name: OpCalls, format: FmtControl, decode: fmtControl, operands: []opndKind{opImm}},
	0x13: {name: OpRet, format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR2}},
	0x14: {name: "pushw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR2, opR1}},
	0x16: {name: "popw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},

	0x20: {name: "adds", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x21: {name: "subs", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x22: {name: "addd", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x23: {name: "subd", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x24: {name: "movs", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x25: {name: "cmps", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x26: {name: "movd", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x27: {name: "cmpd", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x28: {name: "muls", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x29: {name: "divs", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x2a: {name: "muld", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x2b: {name: "divd", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opF2}},
	0x2c: {name: "movsw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opR2}},
	0x2d: {name: "movws", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opF2}},
	0x2e: {name: "movdl", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opF1, opR2}},
	0x2f: {name: "movld", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opF2}},

	0x30: {name: "shaw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x31: {name: "shal", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x32: {name: "shlw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x33: {name: "shll", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x34: {name: "rotw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x35: {name: "rotl", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x38: {name: "shai", format: FmtImm16, decode: fmtImm16, operands: []opndKind{opImm, opR2}},
	0x39: {name: "shali", format: FmtImm16, decode: fmtImm16, operands: []opndKind{opImm, opR2}},
	0x3a: {name: "shli", format: FmtImm16, decode: fmtImm16, operands: []opndKind{opImm, opR2}},
	0x3b: {name: "shlli", format: FmtImm16, decode: fmtImm16, operands: []opndKind{opImm, opR2}},
	0x3c: {name: "roti", format: FmtImm16, decode: fmtImm16, operands: []opndKind{opImm, opR2}},
	0x3d: {name: "rotli", format: FmtImm16, decode: fmtImm16, operands: []opndKind{opImm, opR2}},

	0x44: {name: OpCall, format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},
	0x45: {name: OpCall, format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},
	0x46: {name: "loadd2", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opF2}},
	0x47: {name: "loadd2", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opF2}},
	0x48: {name: OpB, format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr}},
	0x49: {name: OpB, format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr}},

	// cdb* compare-and-delayed-branch forms need two delay slots and are not
	// decoded; they degrade like any other bad opcode.

	0x50: {name: OpDB, format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr}, delaySlot: true},
	0x51: {name: OpDB, format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr}, delaySlot: true},

	0x60: {name: "loadw", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x61: {name: "loadw", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x62: {name: "loada", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x63: {name: "loada", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x64: {name: "loads", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opF2}},
	0x65: {name: "loads", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opF2}},
	0x66: {name: "loadd", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opF2}},
	0x67: {name: "loadd", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opF2}},
	0x68: {name: "loadb", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x69: {name: "loadb", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x6a: {name: "loadbu", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x6b: {name: "loadbu", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x6c: {name: "loadh", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x6d: {name: "loadh", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x6e: {name: "loadhu", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x6f: {name: "loadhu", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},

	0x70: {name: "storw", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},
	0x71: {name: "storw", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},
	0x72: {name: "tsts", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x73: {name: "tsts", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opAddr, opR2}},
	0x74: {name: "stors", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opF2, opAddr}},
	0x75: {name: "stors", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opF2, opAddr}},
	0x76: {name: "stord", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opF2, opAddr}},
	0x77: {name: "stord", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opF2, opAddr}},
	0x78: {name: "storb", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},
	0x79: {name: "storb", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},
	0x7c: {name: "storh", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},
	0x7d: {name: "storh", format: FmtAddress, decode: fmtAddress, operands: []opndKind{opR2, opAddr}},

	0x80: {name: "addw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x82: {name: "addq", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opQuick, opR2}},
	0x83: {name: "addi", format: FmtImmVar, decode: fmtImmVar, operands: []opndKind{opImm, opR2}},
	0x84: {name: "movw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x86: {name: "loadq", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opQuick, opR2}},
	0x87: {name: "loadi", format: FmtImmVar, decode: fmtImmVar, operands: []opndKind{opImm, opR2}},
	0x88: {name: "andw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x8b: {name: "andi", format: FmtImmVar, decode: fmtImmVar, operands: []opndKind{opImm, opR2}},
	0x8c: {name: "orw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x8f: {name: "ori", format: FmtImmVar, decode: fmtImmVar, operands: []opndKind{opImm, opR2}},

	0x90: {name: "addwc", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x91: {name: "subwc", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x93: {name: "negw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x98: {name: "mulw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x99: {name: "mulwx", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x9a: {name: "mulwu", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x9b: {name: "mulwux", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x9c: {name: "divw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x9d: {name: "modw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x9e: {name: "divwu", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0x9f: {name: "modwu", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},

	0xa0: {name: "subw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0xa2: {name: "subq", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opQuick, opR2}},
	0xa3: {name: "subi", format: FmtImmVar, decode: fmtImmVar, operands: []opndKind{opImm, opR2}},
	0xa4: {name: "cmpw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0xa6: {name: "cmpq", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opQuick, opR2}},
	0xa7: {name: "cmpi", format: FmtImmVar, decode: fmtImmVar, operands: []opndKind{opImm, opR2}},
	0xa8: {name: "xorw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0xab: {name: "xori", format: FmtImmVar, decode: fmtImmVar, operands: []opndKind{opImm, opR2}},
	0xac: {name: "notw", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1, opR2}},
	0xae: {name: "notq", format: FmtRegister, decode: fmtRegister, operands: []opndKind{opQuick, opR2}},

	0xbc: {name: "waitd", format: FmtRegister, decode: fmtRegister},

	0xc0: {name: OpS, format: FmtRegister, decode: fmtRegister, operands: []opndKind{opR1}},
}

// macroInstructions is the macro opcode map, keyed by the full first parcel.
var macroInstructions = map[uint16]*instrDef{
	0xb400: {name: "savew0", format: FmtMacro, decode: fmtMacro},
	0xb401: {name: "savew1", format: FmtMacro, decode: fmtMacro},
	0xb402: {name: "savew2", format: FmtMacro, decode: fmtMacro},
	0xb403: {name: "savew3", format: FmtMacro, decode: fmtMacro},
	0xb404: {name: "savew4", format: FmtMacro, decode: fmtMacro},
	0xb405: {name: "savew5", format: FmtMacro, decode: fmtMacro},
	0xb406: {name: "savew6", format: FmtMacro, decode: fmtMacro},
	0xb407: {name: "savew7", format: FmtMacro, decode: fmtMacro},
	0xb408: {name: "savew8", format: FmtMacro, decode: fmtMacro},
	0xb409: {name: "savew9", format: FmtMacro, decode: fmtMacro},
	0xb40a: {name: "savew10", format: FmtMacro, decode: fmtMacro},
	0xb40b: {name: "savew11", format: FmtMacro, decode: fmtMacro},
	0xb40c: {name: "savew12", format: FmtMacro, decode: fmtMacro},
	0xb40d: {name: "movc", format: FmtMacro, decode: fmtMacro},
	0xb40e: {name: "initc", format: FmtMacro, decode: fmtMacro},
	0xb40f: {name: "cmpc", format: FmtMacro, decode: fmtMacro},

	0xb410: {name: "restw0", format: FmtMacro, decode: fmtMacro},
	0xb411: {name: "restw1", format: FmtMacro, decode: fmtMacro},
	0xb412: {name: "restw2", format: FmtMacro, decode: fmtMacro},
	0xb413: {name: "restw3", format: FmtMacro, decode: fmtMacro},
	0xb414: {name: "restw4", format: FmtMacro, decode: fmtMacro},
	0xb415: {name: "restw5", format: FmtMacro, decode: fmtMacro},
	0xb416: {name: "restw6", format: FmtMacro, decode: fmtMacro},
	0xb417: {name: "restw7", format: FmtMacro, decode: fmtMacro},
	0xb418: {name: "restw8", format: FmtMacro, decode: fmtMacro},
	0xb419: {name: "restw9", format: FmtMacro, decode: fmtMacro},
	0xb41a: {name: "restw10", format: FmtMacro, decode: fmtMacro},
	0xb41b: {name: "restw11", format: FmtMacro, decode: fmtMacro},
	0xb41c: {name: "restw12", format: FmtMacro, decode: fmtMacro},

	0xb420: {name: "saved0", format: FmtMacro, decode: fmtMacro},
	0xb421: {name: "saved1", format: FmtMacro, decode: fmtMacro},
	0xb422: {name: "saved2", format: FmtMacro, decode: fmtMacro},
	0xb423: {name: "saved3", format: FmtMacro, decode: fmtMacro},
	0xb424: {name: "saved4", format: FmtMacro, decode: fmtMacro},
	0xb425: {name: "saved5", format: FmtMacro, decode: fmtMacro},
	0xb426: {name: "saved6", format: FmtMacro, decode: fmtMacro},
	0xb427: {name: "saved7", format: FmtMacro, decode: fmtMacro},
	0xb428: {name: "restd0", format: FmtMacro, decode: fmtMacro},
	0xb429: {name: "restd1", format: FmtMacro, decode: fmtMacro},
	0xb42a: {name: "restd2", format: FmtMacro, decode: fmtMacro},
	0xb42b: {name: "restd3", format: FmtMacro, decode: fmtMacro},
	0xb42c: {name: "restd4", format: FmtMacro, decode: fmtMacro},
	0xb42d: {name: "restd5", format: FmtMacro, decode: fmtMacro},
	0xb42e: {name: "restd6", format: FmtMacro, decode: fmtMacro},
	0xb42f: {name: "restd7", format: FmtMacro, decode: fmtMacro},

	0xb430: {name: "cnvsw", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opR2}},
	0xb431: {name: "cnvrsw", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opR2}},
	0xb432: {name: "cnvtsw", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opR2}},
	0xb433: {name: "cnvws", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1, opF2}},
	0xb434: {name: "cnvdw", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opR2}},
	0xb435: {name: "cnvrdw", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opR2}},
	0xb436: {name: "cnvtdw", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opR2}},
	0xb437: {name: "cnvwd", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1, opF2}},
	0xb438: {name: "cnvsd", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opF2}},
	0xb439: {name: "cnvds", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opF2}},
	0xb43a: {name: "negs", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opF2}},
	0xb43b: {name: "negd", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opF1, opF2}},
	0xb43c: {name: "scalbs", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1, opF2}},
	0xb43d: {name: "scalbd", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1, opF2}},
	0xb43e: {name: "trapfn", format: FmtMacro, decode: fmtMacro},
	0xb43f: {name: "loadfs", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1, opF2}},

	0xb600: {name: "movus", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1, opR2}},
	0xb601: {name: "movsu", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1, opR2}},
	0xb602: {name: "saveur", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1}},
	0xb603: {name: "restur", format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1}},
	0xb604: {name: OpReti, format: FmtMacro, decode: fmtMacro, operands: []opndKind{opR1}},
	0xb605: {name: "wait", format: FmtMacro, decode: fmtMacro},
}

// lookup finds the instruction definition for the first parcel.
func lookup(parcel0 uint16) *instrDef {
	if parcel0&0xfc00 == 0xb400 {
		return macroInstructions[parcel0]
	}
	return instructions[uint8(parcel0>>8)]
}
