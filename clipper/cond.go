package clipper

import "github.com/firodj/clipperlift/clipper/il"

// Predicate is the 4 bit condition field of conditional branch, delayed
// branch and set instructions. CLIPPER condition code names describe a
// reversed operand sequence, so each field value maps to the natural
// (inverted) comparison.
type Predicate uint8

const (
	PredAlways Predicate = iota
	PredSGT              // clt
	PredSGE              // cle
	PredEQ               // ceq
	PredSLT              // cgt
	PredSLE              // cge
	PredNE               // cne
	PredUGT              // cltu
	PredUGE              // cleu
	PredULT              // cgtu
	PredULE              // cgeu
	PredVS               // v
	PredVC               // nv
	PredNeg              // n
	PredPos              // nn
	PredNever            // fn
)

// ccNames are the CLIPPER assembler condition code names, indexed by the raw
// condition field.
var ccNames = [16]string{
	"", "clt", "cle", "ceq", "cgt", "cge", "cne", "cltu",
	"cleu", "cgtu", "cgeu", "v", "nv", "n", "nn", "fn",
}

// CCName returns the assembler spelling of the condition field.
func (p Predicate) CCName() string {
	return ccNames[p&0xf]
}

// Cond returns the boolean flag expression the predicate tests. This is the
// single authoritative mapping between condition fields and flag bits; the
// lifter never derives a predicate from raw opcode bits.
func (p Predicate) Cond() *il.Cond {
	z := il.CFlag(il.FlagZ)
	n := il.CFlag(il.FlagN)
	v := il.CFlag(il.FlagV)
	c := il.CFlag(il.FlagC)

	switch p {
	case PredAlways:
		return nil
	case PredEQ:
		return z
	case PredNE:
		return il.CNot(z)
	case PredSLT:
		return il.CXor(n, v)
	case PredSLE:
		return il.COr(z, il.CXor(n, v))
	case PredSGT:
		return il.CAnd(il.CNot(z), il.CNot(il.CXor(n, v)))
	case PredSGE:
		return il.CNot(il.CXor(n, v))
	case PredULT:
		return c
	case PredULE:
		return il.COr(c, z)
	case PredUGT:
		return il.CAnd(il.CNot(c), il.CNot(z))
	case PredUGE:
		return il.CNot(c)
	case PredVS:
		return v
	case PredVC:
		return il.CNot(v)
	case PredNeg:
		return n
	case PredPos:
		return il.CNot(n)
	}
	return il.Never()
}

// Flags reports the flag bits the predicate reads.
func (p Predicate) Flags() il.FlagSet {
	return p.Cond().Flags()
}

// flagsWritten records, per mnemonic, the flags an instruction may write.
// Both the lifter (flag-setting IL) and the branch guard mapping above draw
// from this table.
var flagsWritten = map[Mnemonic]il.FlagSet{
	"movwp": il.FlagsAll,

	"shaw": il.FlagsAll, "shal": il.FlagsAll,
	"shlw": il.FlagsAll, "shll": il.FlagsAll,
	"rotw": il.FlagsAll, "rotl": il.FlagsAll,
	"shai": il.FlagsAll, "shali": il.FlagsAll,
	"shli": il.FlagsAll, "shlli": il.FlagsAll,
	"roti": il.FlagsAll, "rotli": il.FlagsAll,

	"addw": il.FlagsAll, "addq": il.FlagsAll, "addi": il.FlagsAll,
	"movw": il.FlagsAll, "loadq": il.FlagsAll, "loadi": il.FlagsAll,
	"andw": il.FlagsAll, "andi": il.FlagsAll,
	"orw": il.FlagsAll, "ori": il.FlagsAll,

	"addwc": il.FlagsAll, "subwc": il.FlagsAll, "negw": il.FlagsAll,
	"mulw": il.FlagsAll, "mulwx": il.FlagsAll,
	"mulwu": il.FlagsAll, "mulwux": il.FlagsAll,
	"divw": il.FlagsAll, "modw": il.FlagsAll,
	"divwu": il.FlagsAll, "modwu": il.FlagsAll,

	"subw": il.FlagsAll, "subq": il.FlagsAll, "subi": il.FlagsAll,
	"cmpw": il.FlagsAll, "cmpq": il.FlagsAll, "cmpi": il.FlagsAll,
	"xorw": il.FlagsAll, "xori": il.FlagsAll,
	"notw": il.FlagsAll, "notq": il.FlagsAll,

	"cmpc": il.FlagsAll,
}

// FlagsWritten reports the flag bits an instruction with the given mnemonic
// may write.
func FlagsWritten(m Mnemonic) il.FlagSet {
	return flagsWritten[m]
}
