package il

import "fmt"

// CondOp enumerates the boolean condition node kinds.
type CondOp uint8

const (
	CondNever CondOp = iota
	CondFlag
	CondNot
	CondAnd
	CondOr
	CondXor
	CondCmpEQ  // X == Y
	CondCmpSGT // X > Y, signed
)

// Cond is a boolean expression over flag bits or value comparisons, used to
// guard BranchIf and If operations. A nil *Cond means "always".
type Cond struct {
	Op   CondOp
	F    FlagSet // CondFlag
	L, R *Cond   // CondNot uses L only
	X, Y Expr    // CondCmp*
}

func Never() *Cond           { return &Cond{Op: CondNever} }
func CFlag(f FlagSet) *Cond  { return &Cond{Op: CondFlag, F: f} }
func CNot(c *Cond) *Cond     { return &Cond{Op: CondNot, L: c} }
func CAnd(l, r *Cond) *Cond  { return &Cond{Op: CondAnd, L: l, R: r} }
func COr(l, r *Cond) *Cond   { return &Cond{Op: CondOr, L: l, R: r} }
func CXor(l, r *Cond) *Cond  { return &Cond{Op: CondXor, L: l, R: r} }
func CmpEQ(x, y Expr) *Cond  { return &Cond{Op: CondCmpEQ, X: x, Y: y} }
func CmpSGT(x, y Expr) *Cond { return &Cond{Op: CondCmpSGT, X: x, Y: y} }

// Flags reports every flag bit the condition reads.
func (c *Cond) Flags() FlagSet {
	if c == nil {
		return FlagsNone
	}
	f := c.F
	if c.L != nil {
		f |= c.L.Flags()
	}
	if c.R != nil {
		f |= c.R.Flags()
	}
	return f
}

func (c *Cond) String() string {
	if c == nil {
		return "true"
	}
	switch c.Op {
	case CondNever:
		return "false"
	case CondFlag:
		return c.F.String()
	case CondNot:
		return fmt.Sprintf("!%s", c.L)
	case CondAnd:
		return fmt.Sprintf("(%s && %s)", c.L, c.R)
	case CondOr:
		return fmt.Sprintf("(%s || %s)", c.L, c.R)
	case CondXor:
		return fmt.Sprintf("(%s ^ %s)", c.L, c.R)
	case CondCmpEQ:
		return fmt.Sprintf("(%s == %s)", c.X, c.Y)
	case CondCmpSGT:
		return fmt.Sprintf("(%s > %s)", c.X, c.Y)
	}
	return "?"
}
