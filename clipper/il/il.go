// Package il is the architecture-neutral low level representation emitted by
// the lifter. It mirrors the shape of a host analysis engine's IL: expression
// trees consumed by a flat list of operations, with numeric local labels for
// control flow inside a single lifted instruction.
package il

import (
	"fmt"
	"strings"
)

// FlagSet is a set of condition flag bits.
type FlagSet uint8

const (
	FlagC FlagSet = 1 << iota // carry / borrow
	FlagV                     // overflow
	FlagZ                     // zero
	FlagN                     // negative

	FlagsNone FlagSet = 0
	FlagsAll          = FlagC | FlagV | FlagZ | FlagN
)

func (f FlagSet) Has(bit FlagSet) bool {
	return f&bit != 0
}

func (f FlagSet) String() string {
	var sb strings.Builder
	if f.Has(FlagC) {
		sb.WriteByte('c')
	}
	if f.Has(FlagV) {
		sb.WriteByte('v')
	}
	if f.Has(FlagZ) {
		sb.WriteByte('z')
	}
	if f.Has(FlagN) {
		sb.WriteByte('n')
	}
	return sb.String()
}

// BinOp enumerates binary expression operators.
type BinOp uint8

const (
	Add BinOp = iota
	Sub
	And
	Or
	Xor
	Shl  // logical shift left
	Shr  // logical shift right
	Sar  // arithmetic shift right
	Rol  // rotate left
	Ror  // rotate right
	Mul  // low half product
	MulX // full double precision signed product
	MulUX
	Div // signed
	DivU
	Mod // signed
	ModU
	AddC // add with carry in
	SubB // subtract with borrow in
)

var binOpStrings = map[BinOp]string{
	Add: "+", Sub: "-", And: "&", Or: "|", Xor: "^",
	Shl: "<<", Shr: ">>", Sar: ">>>", Rol: "rol", Ror: "ror",
	Mul: "*", MulX: "*x", MulUX: "*ux", Div: "/", DivU: "/u",
	Mod: "%", ModU: "%u", AddC: "+c", SubB: "-b",
}

// UnOp enumerates unary expression operators.
type UnOp uint8

const (
	Neg UnOp = iota
	Not
	SignExt
)

// Expr is one node of an IL expression tree. Expressions are values; they
// never own memory and are only evaluated by a downstream consumer.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// Reg reads a register.
type Reg struct {
	Name string
	Size int
}

func (Reg) exprNode()        {}
func (e Reg) String() string { return e.Name }

// Const is an immediate value.
type Const struct {
	Value int64
	Size  int
}

func (Const) exprNode() {}
func (e Const) String() string {
	if e.Value < 0 {
		return fmt.Sprintf("-0x%x", -e.Value)
	}
	return fmt.Sprintf("0x%x", e.Value)
}

// Load reads Size bytes of memory at Addr.
type Load struct {
	Size int
	Addr Expr
}

func (Load) exprNode()        {}
func (e Load) String() string { return fmt.Sprintf("load.%d(%s)", e.Size, e.Addr) }

// Pop removes Size bytes from the top of the stack and yields them. The stack
// pointer adjustment is implied, the same convention the host engine uses.
type Pop struct {
	Size int
}

func (Pop) exprNode()        {}
func (e Pop) String() string { return fmt.Sprintf("pop.%d", e.Size) }

// FlagRef reads a single condition flag as a 0/1 value.
type FlagRef struct {
	F FlagSet
}

func (FlagRef) exprNode()        {}
func (e FlagRef) String() string { return e.F.String() }

// Bin applies a binary operator. Carry is only set for AddC/SubB.
type Bin struct {
	Op    BinOp
	Size  int
	L, R  Expr
	Carry Expr
}

func (Bin) exprNode() {}
func (e Bin) String() string {
	op := binOpStrings[e.Op]
	if e.Carry != nil {
		return fmt.Sprintf("(%s %s %s %s %s)", e.L, op, e.R, op[1:], e.Carry)
	}
	switch e.Op {
	case Rol, Ror:
		return fmt.Sprintf("%s(%s, %s)", op, e.L, e.R)
	}
	return fmt.Sprintf("(%s %s %s)", e.L, op, e.R)
}

// Un applies a unary operator. For SignExt, Size is the widened size.
type Un struct {
	Op   UnOp
	Size int
	X    Expr
}

func (Un) exprNode() {}
func (e Un) String() string {
	switch e.Op {
	case Neg:
		return fmt.Sprintf("-%s", e.X)
	case Not:
		return fmt.Sprintf("~%s", e.X)
	case SignExt:
		return fmt.Sprintf("sext.%d(%s)", e.Size, e.X)
	}
	return "?"
}
