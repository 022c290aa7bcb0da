// Package clipper decodes CLIPPER machine code and lifts it into the generic
// IL of package il. Decoding is a pure function of the input bytes; the only
// per-stream state is the delayed-branch Coordinator.
package clipper

// Integer register names. r14 and r15 carry their conventional fp/sp roles.
var IReg = [16]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "r13", "fp", "sp",
}

// Floating point register names.
var FReg = [16]string{
	"f0", "f1", "f2", "f3", "f4", "f5", "f6", "f7",
	"f8", "f9", "f10", "f11", "f12", "f13", "f14", "f15",
}

// Special register names. Index 2 is reserved.
var SReg = [4]string{"psw", "ssw", "", "sswf"}

const (
	RegFP = 14
	RegSP = 15
)

// Register bank selectors for name lookup.
const (
	BankInteger = iota
	BankFloat
	BankSpecial
)

// RegName maps a bank and register index to its display name.
func RegName(bank, index int) string {
	switch bank {
	case BankInteger:
		if index >= 0 && index < len(IReg) {
			return IReg[index]
		}
	case BankFloat:
		if index >= 0 && index < len(FReg) {
			return FReg[index]
		}
	case BankSpecial:
		if index >= 0 && index < len(SReg) {
			return SReg[index]
		}
	}
	return ""
}
