package il

import (
	"fmt"
	"strings"
)

// Op is one lifted IL operation. A decoded instruction lifts to an ordered,
// finite sequence of Ops.
type Op interface {
	fmt.Stringer
	opNode()
}

// SetReg assigns Src to Dst, optionally updating Flags.
type SetReg struct {
	Dst   Reg
	Src   Expr
	Flags FlagSet
}

func (SetReg) opNode() {}
func (o SetReg) String() string {
	return fmt.Sprintf("%s = %s%s", o.Dst, o.Src, flagSuffix(o.Flags))
}

// SetRegPair assigns a double width Src to the Hi:Lo register pair.
type SetRegPair struct {
	Hi, Lo Reg
	Src    Expr
	Flags  FlagSet
}

func (SetRegPair) opNode() {}
func (o SetRegPair) String() string {
	return fmt.Sprintf("%s:%s = %s%s", o.Hi, o.Lo, o.Src, flagSuffix(o.Flags))
}

// Store writes Size bytes of Src to memory at Addr.
type Store struct {
	Size int
	Addr Expr
	Src  Expr
}

func (Store) opNode()          {}
func (o Store) String() string { return fmt.Sprintf("store.%d(%s) = %s", o.Size, o.Addr, o.Src) }

// Push places Src on the stack. The stack pointer adjustment is implied.
type Push struct {
	Size int
	Src  Expr
}

func (Push) opNode()          {}
func (o Push) String() string { return fmt.Sprintf("push.%d(%s)", o.Size, o.Src) }

// Compare computes L - R for its flag effects only.
type Compare struct {
	Size  int
	L, R  Expr
	Flags FlagSet
}

func (Compare) opNode() {}
func (o Compare) String() string {
	return fmt.Sprintf("compare.%d(%s, %s)%s", o.Size, o.L, o.R, flagSuffix(o.Flags))
}

// BranchIf transfers control to Target when Cond holds. A nil Cond is an
// unconditional transfer.
type BranchIf struct {
	Cond   *Cond
	Target Expr
}

func (BranchIf) opNode() {}
func (o BranchIf) String() string {
	if o.Cond == nil {
		return fmt.Sprintf("goto %s", o.Target)
	}
	return fmt.Sprintf("if %s goto %s", o.Cond, o.Target)
}

// Call transfers control to Target, pushing the return address.
type Call struct {
	Target Expr
}

func (Call) opNode()          {}
func (o Call) String() string { return fmt.Sprintf("call %s", o.Target) }

// Ret returns to Target.
type Ret struct {
	Target Expr
}

func (Ret) opNode()          {}
func (o Ret) String() string { return fmt.Sprintf("return %s", o.Target) }

// Syscall enters the system-call handler with the given call number.
type Syscall struct {
	Num int
}

func (Syscall) opNode()          {}
func (o Syscall) String() string { return fmt.Sprintf("syscall 0x%x", o.Num) }

// Nop has no effect.
type Nop struct{}

func (Nop) opNode()          {}
func (o Nop) String() string { return "nop" }

// Unimplemented marks an instruction the lifter does not translate. Raw holds
// the encoded bytes for diagnostic display.
type Unimplemented struct {
	Raw []byte
}

func (Unimplemented) opNode() {}
func (o Unimplemented) String() string {
	parts := make([]string, len(o.Raw))
	for i, b := range o.Raw {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return fmt.Sprintf("unimplemented [%s]", strings.Join(parts, " "))
}

// Label marks a local control-flow target inside one lifted sequence.
type Label struct {
	ID int
}

func (Label) opNode()          {}
func (o Label) String() string { return fmt.Sprintf("L%d:", o.ID) }

// Goto jumps to a local label.
type Goto struct {
	ID int
}

func (Goto) opNode()          {}
func (o Goto) String() string { return fmt.Sprintf("goto L%d", o.ID) }

// If jumps to the Then label when Cond holds, otherwise to Else.
type If struct {
	Cond       *Cond
	Then, Else int
}

func (If) opNode()          {}
func (o If) String() string { return fmt.Sprintf("if %s then L%d else L%d", o.Cond, o.Then, o.Else) }

func flagSuffix(f FlagSet) string {
	if f == FlagsNone {
		return ""
	}
	return " {" + f.String() + "}"
}

// Sequence renders a lifted op list one op per line, for debugging and tests.
func Sequence(ops []Op) string {
	lines := make([]string, len(ops))
	for i, op := range ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}
