package clipper

import (
	"fmt"

	"github.com/firodj/clipperlift/clipper/il"
)

// Coordinator defers the control transfer of a delayed branch until the
// instruction in its delay slot has been lifted. Each disassembly stream must
// own its own instance; sharing one across concurrent streams corrupts
// delay slot pairing.
type Coordinator struct {
	pending *pendingSlot
}

type pendingSlot struct {
	branchAddr uint32
	slotAddr   uint32
	transfer   []il.Op
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Pending reports whether a delay slot is waiting to be consumed.
func (co *Coordinator) Pending() bool {
	return co != nil && co.pending != nil
}

// Lift translates a decoded instruction into IL. The coordinator may be nil,
// in which case delayed branches emit their control transfer immediately.
//
// When the instruction is a delayed branch and a coordinator is supplied, the
// transfer is recorded and the returned sequence is empty; lifting the
// instruction at the delay slot address then yields that instruction's own
// effects followed by the deferred transfer. A delayed branch sitting in a
// delay slot has its marker ignored and is reported as ErrNestedDelayedBranch.
func Lift(in *Instruction, addr uint32, co *Coordinator) ([]il.Op, error) {
	if in == nil {
		return nil, ErrNilInstruction
	}

	ops, err := liftOps(in, addr)
	if co == nil {
		return ops, err
	}

	if co.pending != nil {
		p := co.pending
		co.pending = nil
		if p.slotAddr == addr {
			if in.DelaySlot {
				err = fmt.Errorf("%w: slot of 0x%08x at 0x%08x", ErrNestedDelayedBranch, p.branchAddr, addr)
			}
			return append(ops, p.transfer...), err
		}
		// stream moved away from the slot; the stale pairing is dropped
	}

	if in.DelaySlot && err == nil {
		co.pending = &pendingSlot{
			branchAddr: addr,
			slotAddr:   addr + uint32(in.Length),
			transfer:   ops,
		}
		return nil, nil
	}
	return ops, err
}

func liftOps(in *Instruction, addr uint32) ([]il.Op, error) {
	if in.Unimplemented() {
		return []il.Op{il.Unimplemented{Raw: in.Raw}},
			fmt.Errorf("%w at 0x%08x", ErrUnimplemented, addr)
	}
	rule, ok := liftRules[in.Op]
	if !ok {
		return []il.Op{il.Unimplemented{Raw: in.Raw}},
			fmt.Errorf("%w: %s at 0x%08x", ErrUnimplemented, in.Op, addr)
	}
	ctx := &liftCtx{in: in, addr: addr}
	rule(ctx)
	return ctx.ops, nil
}

const word = 4

type liftCtx struct {
	in     *Instruction
	addr   uint32
	ops    []il.Op
	labels int
}

type liftFunc func(ctx *liftCtx)

func (ctx *liftCtx) emit(ops ...il.Op) {
	ctx.ops = append(ctx.ops, ops...)
}

func (ctx *liftCtx) label() int {
	ctx.labels++
	return ctx.labels
}

func (ctx *liftCtx) ireg(i int) il.Reg {
	return il.Reg{Name: IReg[i&0xf], Size: word}
}

func (ctx *liftCtx) freg(i, size int) il.Reg {
	return il.Reg{Name: FReg[i&0xf], Size: size}
}

// sreg selects psw or ssw the way movwp/movpw encode it.
func (ctx *liftCtx) sreg(r1 int) il.Reg {
	name := "ssw"
	if r1 == 0 {
		name = "psw"
	}
	return il.Reg{Name: name, Size: word}
}

func (ctx *liftCtx) c32(v int32) il.Const {
	return il.Const{Value: int64(v), Size: word}
}

func (ctx *liftCtx) unimpl() {
	ctx.emit(il.Unimplemented{Raw: ctx.in.Raw})
}

// pair64 reads the r:r+1 register pair as one 64 bit value.
func (ctx *liftCtx) pair64(r int) il.Expr {
	return il.Bin{Op: il.Or, Size: 8,
		L: ctx.ireg(r),
		R: il.Bin{Op: il.Shl, Size: 8, L: ctx.ireg(r + 1), R: il.Const{Value: 32, Size: word}},
	}
}

// ea computes the effective address expression for the decoded addressing
// mode. PC relative modes resolve against the instruction's own address.
func (ctx *liftCtx) ea() il.Expr {
	in := ctx.in
	switch in.Mode {
	case ModeRelative:
		return ctx.ireg(in.R1)
	case ModePC16, ModePC32:
		return il.Const{Value: int64(ctx.addr + uint32(in.Constant)), Size: word}
	case ModeAbs16, ModeAbs32:
		return il.Const{Value: int64(uint32(in.Constant)), Size: word}
	case ModeRel12, ModeRel32:
		return il.Bin{Op: il.Add, Size: word, L: ctx.ireg(in.R1), R: ctx.c32(in.Constant)}
	case ModePCX:
		return il.Bin{Op: il.Add, Size: word, L: il.Const{Value: int64(ctx.addr), Size: word}, R: ctx.ireg(in.RX)}
	case ModeRelX:
		return il.Bin{Op: il.Add, Size: word, L: ctx.ireg(in.R1), R: ctx.ireg(in.RX)}
	}
	return il.Const{Size: word}
}

// setR2 is the common "r2 = r2 op x" ALU shape.
func (ctx *liftCtx) setR2(op il.BinOp, rhs il.Expr) {
	r2 := ctx.ireg(ctx.in.R2)
	ctx.emit(il.SetReg{Dst: r2, Src: il.Bin{Op: op, Size: word, L: r2, R: rhs}, Flags: il.FlagsAll})
}

func liftALUReg(op il.BinOp) liftFunc {
	return func(ctx *liftCtx) { ctx.setR2(op, ctx.ireg(ctx.in.R1)) }
}

func liftALUQuick(op il.BinOp) liftFunc {
	return func(ctx *liftCtx) { ctx.setR2(op, ctx.c32(int32(ctx.in.R1))) }
}

func liftALUImm(op il.BinOp) liftFunc {
	return func(ctx *liftCtx) { ctx.setR2(op, ctx.c32(ctx.in.Constant)) }
}

func liftCompare(rhs func(ctx *liftCtx) il.Expr) liftFunc {
	return func(ctx *liftCtx) {
		ctx.emit(il.Compare{Size: word, L: ctx.ireg(ctx.in.R2), R: rhs(ctx), Flags: il.FlagsAll})
	}
}

func liftCarryOp(op il.BinOp) liftFunc {
	return func(ctx *liftCtx) {
		r2 := ctx.ireg(ctx.in.R2)
		ctx.emit(il.SetReg{Dst: r2,
			Src:   il.Bin{Op: op, Size: word, L: r2, R: ctx.ireg(ctx.in.R1), Carry: il.FlagRef{F: il.FlagC}},
			Flags: il.FlagsAll})
	}
}

func liftMulPair(op il.BinOp) liftFunc {
	return func(ctx *liftCtx) {
		in := ctx.in
		ctx.emit(il.SetRegPair{Hi: ctx.ireg(in.R2 + 1), Lo: ctx.ireg(in.R2),
			Src:   il.Bin{Op: op, Size: 8, L: ctx.ireg(in.R2), R: ctx.ireg(in.R1)},
			Flags: il.FlagsAll})
	}
}

func liftLoad(size int, signExtend bool) liftFunc {
	return func(ctx *liftCtx) {
		var src il.Expr = il.Load{Size: size, Addr: ctx.ea()}
		if signExtend {
			src = il.Un{Op: il.SignExt, Size: word, X: src}
		}
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: src})
	}
}

func liftLoadF(size int) liftFunc {
	return func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.freg(ctx.in.R2, 8), Src: il.Load{Size: size, Addr: ctx.ea()}})
	}
}

func liftStore(size int) liftFunc {
	return func(ctx *liftCtx) {
		ctx.emit(il.Store{Size: size, Addr: ctx.ea(), Src: ctx.ireg(ctx.in.R2)})
	}
}

func liftStoreF(size int) liftFunc {
	return func(ctx *liftCtx) {
		ctx.emit(il.Store{Size: size, Addr: ctx.ea(), Src: ctx.freg(ctx.in.R2, size)})
	}
}

// liftShiftReg mirrors the hardware's signed shift count: positive counts
// shift left, negative counts shift the other way.
func liftShiftReg(pos, neg il.BinOp, long bool) liftFunc {
	return func(ctx *liftCtx) {
		in := ctx.in
		left, right, done := ctx.label(), ctx.label(), ctx.label()
		r1 := ctx.ireg(in.R1)

		ctx.emit(il.If{Cond: il.CmpSGT(r1, il.Const{Size: word}), Then: left, Else: right})

		ctx.emit(il.Label{ID: left})
		ctx.emitShift(pos, long, r1)
		ctx.emit(il.Goto{ID: done})

		ctx.emit(il.Label{ID: right})
		ctx.emitShift(neg, long, il.Un{Op: il.Neg, Size: word, X: r1})
		ctx.emit(il.Goto{ID: done})

		ctx.emit(il.Label{ID: done})
	}
}

func (ctx *liftCtx) emitShift(op il.BinOp, long bool, count il.Expr) {
	in := ctx.in
	if long {
		ctx.emit(il.SetRegPair{Hi: ctx.ireg(in.R2 + 1), Lo: ctx.ireg(in.R2),
			Src:   il.Bin{Op: op, Size: 8, L: ctx.pair64(in.R2), R: count},
			Flags: il.FlagsAll})
		return
	}
	r2 := ctx.ireg(in.R2)
	ctx.emit(il.SetReg{Dst: r2,
		Src:   il.Bin{Op: op, Size: word, L: r2, R: count},
		Flags: il.FlagsAll})
}

func liftShiftImm(pos, neg il.BinOp, long bool) liftFunc {
	return func(ctx *liftCtx) {
		op, count := pos, ctx.in.Constant
		if count < 0 {
			op, count = neg, -count
		}
		ctx.emitShift(op, long, ctx.c32(count))
	}
}

func liftSaveW(n int) liftFunc {
	return func(ctx *liftCtx) {
		for i := 14; i >= n; i-- {
			ctx.emit(il.Push{Size: word, Src: ctx.ireg(i)})
		}
	}
}

func liftRestW(n int) liftFunc {
	return func(ctx *liftCtx) {
		for i := n; i <= 14; i++ {
			ctx.emit(il.SetReg{Dst: ctx.ireg(i), Src: il.Pop{Size: word}})
		}
	}
}

func liftBranch(ctx *liftCtx) {
	if ctx.in.Cond == PredNever {
		// fn: a branch that can never be taken
		ctx.emit(il.Nop{})
		return
	}
	ctx.emit(il.BranchIf{Cond: ctx.in.Cond.Cond(), Target: ctx.ea()})
}

func liftSetCond(ctx *liftCtx) {
	r1 := ctx.ireg(ctx.in.R1)
	one := il.Const{Value: 1, Size: word}
	zero := il.Const{Size: word}

	switch ctx.in.Cond {
	case PredAlways:
		ctx.emit(il.SetReg{Dst: r1, Src: one})
		return
	case PredNever:
		ctx.emit(il.SetReg{Dst: r1, Src: zero})
		return
	}

	t, f, done := ctx.label(), ctx.label(), ctx.label()
	ctx.emit(il.If{Cond: ctx.in.Cond.Cond(), Then: t, Else: f})
	ctx.emit(il.Label{ID: t})
	ctx.emit(il.SetReg{Dst: r1, Src: one})
	ctx.emit(il.Goto{ID: done})
	ctx.emit(il.Label{ID: f})
	ctx.emit(il.SetReg{Dst: r1, Src: zero})
	ctx.emit(il.Label{ID: done})
}

// liftStringLoop is the counted loop skeleton shared by movc and initc: while
// r0 != 0, run the body and decrement r0.
func liftStringLoop(body func(ctx *liftCtx)) liftFunc {
	return func(ctx *liftCtx) {
		test, loop, done := ctx.label(), ctx.label(), ctx.label()
		r0 := ctx.ireg(0)

		ctx.emit(il.Goto{ID: test})
		ctx.emit(il.Label{ID: test})
		ctx.emit(il.If{Cond: il.CmpEQ(r0, il.Const{Size: word}), Then: done, Else: loop})
		ctx.emit(il.Label{ID: loop})
		body(ctx)
		ctx.emit(il.SetReg{Dst: r0, Src: il.Bin{Op: il.Sub, Size: word, L: r0, R: il.Const{Value: 1, Size: word}}})
		ctx.emit(il.Goto{ID: test})
		ctx.emit(il.Label{ID: done})
	}
}

func (ctx *liftCtx) incReg(r int) {
	reg := ctx.ireg(r)
	ctx.emit(il.SetReg{Dst: reg, Src: il.Bin{Op: il.Add, Size: word, L: reg, R: il.Const{Value: 1, Size: word}}})
}

// liftCmpc compares r0 bytes at r1 with the bytes at r2, stopping at the
// first mismatch.
func liftCmpc(ctx *liftCtx) {
	test, loop, match, done := ctx.label(), ctx.label(), ctx.label(), ctx.label()
	r0 := ctx.ireg(0)

	ctx.emit(il.Goto{ID: test})
	ctx.emit(il.Label{ID: test})
	ctx.emit(il.If{Cond: il.CmpEQ(r0, il.Const{Size: word}), Then: done, Else: loop})

	ctx.emit(il.Label{ID: loop})
	ctx.emit(il.Compare{Size: 1,
		L:     il.Load{Size: 1, Addr: ctx.ireg(2)},
		R:     il.Load{Size: 1, Addr: ctx.ireg(1)},
		Flags: il.FlagsAll})
	ctx.emit(il.If{Cond: PredNE.Cond(), Then: done, Else: match})

	ctx.emit(il.Label{ID: match})
	ctx.incReg(1)
	ctx.incReg(2)
	ctx.emit(il.SetReg{Dst: r0, Src: il.Bin{Op: il.Sub, Size: word, L: r0, R: il.Const{Value: 1, Size: word}}})
	ctx.emit(il.Goto{ID: test})

	ctx.emit(il.Label{ID: done})
}

func liftNop(ctx *liftCtx) {
	ctx.emit(il.Nop{})
}

// liftRules maps each lifted mnemonic to its translation. Mnemonics the
// architecture defines but the lifter does not translate (floating point
// arithmetic, conversions, FP save/restore) are absent and degrade to an
// Unimplemented marker.
var liftRules = map[Mnemonic]liftFunc{
	OpNoop: liftNop,

	"movwp": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.sreg(ctx.in.R1), Src: ctx.ireg(ctx.in.R2), Flags: il.FlagsAll})
	},
	"movpw": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: ctx.sreg(ctx.in.R1)})
	},
	OpCalls: func(ctx *liftCtx) {
		ctx.emit(il.Syscall{Num: int(ctx.in.Constant) & 0x7f})
	},
	OpRet: func(ctx *liftCtx) {
		// only the conventional stack pointer form has documented semantics
		if ctx.in.R2 == RegSP {
			ctx.emit(il.Ret{Target: il.Pop{Size: word}})
		} else {
			ctx.unimpl()
		}
	},
	"pushw": func(ctx *liftCtx) {
		if ctx.in.R1 == RegSP {
			ctx.emit(il.Push{Size: word, Src: ctx.ireg(ctx.in.R2)})
		} else {
			ctx.unimpl()
		}
	},
	"popw": func(ctx *liftCtx) {
		if ctx.in.R1 == RegSP {
			ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: il.Pop{Size: word}})
		} else {
			ctx.unimpl()
		}
	},

	"movs": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.freg(ctx.in.R2, word), Src: ctx.freg(ctx.in.R1, word)})
	},
	"movd": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.freg(ctx.in.R2, 8), Src: ctx.freg(ctx.in.R1, 8)})
	},
	"movsw": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: ctx.freg(ctx.in.R1, word)})
	},
	"movws": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.freg(ctx.in.R2, 8), Src: ctx.ireg(ctx.in.R1)})
	},
	"movdl": func(ctx *liftCtx) {
		ctx.emit(il.SetRegPair{Hi: ctx.ireg(ctx.in.R2 + 1), Lo: ctx.ireg(ctx.in.R2), Src: ctx.freg(ctx.in.R1, 8)})
	},
	"movld": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.freg(ctx.in.R2, 8), Src: ctx.pair64(ctx.in.R1)})
	},

	"shaw": liftShiftReg(il.Shl, il.Sar, false),
	"shal": liftShiftReg(il.Shl, il.Sar, true),
	"shlw": liftShiftReg(il.Shl, il.Shr, false),
	"shll": liftShiftReg(il.Shl, il.Shr, true),
	"rotw": liftShiftReg(il.Rol, il.Ror, false),
	"rotl": liftShiftReg(il.Rol, il.Ror, true),

	"shai":  liftShiftImm(il.Shl, il.Sar, false),
	"shali": liftShiftImm(il.Shl, il.Sar, true),
	"shli":  liftShiftImm(il.Shl, il.Shr, false),
	"shlli": liftShiftImm(il.Shl, il.Shr, true),
	"roti":  liftShiftImm(il.Rol, il.Ror, false),
	"rotli": liftShiftImm(il.Rol, il.Ror, true),

	OpCall: func(ctx *liftCtx) {
		if ctx.in.R2 == RegSP {
			ctx.emit(il.Call{Target: ctx.ea()})
		} else {
			ctx.unimpl()
		}
	},
	"loadd2": func(ctx *liftCtx) {
		ctx.emit(il.SetRegPair{Hi: ctx.freg(ctx.in.R2+1, 8), Lo: ctx.freg(ctx.in.R2, 8),
			Src: il.Load{Size: 16, Addr: ctx.ea()}})
	},
	OpB:  liftBranch,
	OpDB: liftBranch,

	"loadw": liftLoad(4, false),
	"loada": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: ctx.ea()})
	},
	"loads":  liftLoadF(4),
	"loadd":  liftLoadF(8),
	"loadb":  liftLoad(1, true),
	"loadbu": liftLoad(1, false),
	"loadh":  liftLoad(2, true),
	"loadhu": liftLoad(2, false),

	"storw": liftStore(4),
	"tsts": func(ctx *liftCtx) {
		r2 := ctx.ireg(ctx.in.R2)
		ctx.emit(il.SetReg{Dst: r2, Src: il.Load{Size: word, Addr: ctx.ea()}})
		ctx.emit(il.Store{Size: word, Addr: ctx.ea(),
			Src: il.Bin{Op: il.Or, Size: word, L: r2, R: il.Const{Value: 0x80000000, Size: word}}})
	},
	"stors": liftStoreF(4),
	"stord": liftStoreF(8),
	"storb": liftStore(1),
	"storh": liftStore(2),

	"addw": liftALUReg(il.Add),
	"addq": liftALUQuick(il.Add),
	"addi": liftALUImm(il.Add),
	"movw": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: ctx.ireg(ctx.in.R1), Flags: il.FlagsAll})
	},
	"loadq": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: ctx.c32(int32(ctx.in.R1)), Flags: il.FlagsAll})
	},
	"loadi": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2), Src: ctx.c32(ctx.in.Constant), Flags: il.FlagsAll})
	},
	"andw": liftALUReg(il.And),
	"andi": liftALUImm(il.And),
	"orw":  liftALUReg(il.Or),
	"ori":  liftALUImm(il.Or),

	"addwc": liftCarryOp(il.AddC),
	"subwc": liftCarryOp(il.SubB),
	"negw": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2),
			Src:   il.Un{Op: il.Neg, Size: word, X: ctx.ireg(ctx.in.R1)},
			Flags: il.FlagsAll})
	},
	"mulw":   liftALUReg(il.Mul),
	"mulwx":  liftMulPair(il.MulX),
	"mulwu":  liftALUReg(il.Mul),
	"mulwux": liftMulPair(il.MulUX),
	"divw":   liftALUReg(il.Div),
	"modw":   liftALUReg(il.Mod),
	"divwu":  liftALUReg(il.DivU),
	"modwu":  liftALUReg(il.ModU),

	"subw": liftALUReg(il.Sub),
	"subq": liftALUQuick(il.Sub),
	"subi": liftALUImm(il.Sub),
	"cmpw": liftCompare(func(ctx *liftCtx) il.Expr { return ctx.ireg(ctx.in.R1) }),
	"cmpq": liftCompare(func(ctx *liftCtx) il.Expr { return ctx.c32(int32(ctx.in.R1)) }),
	"cmpi": liftCompare(func(ctx *liftCtx) il.Expr { return ctx.c32(ctx.in.Constant) }),
	"xorw": liftALUReg(il.Xor),
	"xori": liftALUImm(il.Xor),
	"notw": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2),
			Src:   il.Un{Op: il.Not, Size: word, X: ctx.ireg(ctx.in.R1)},
			Flags: il.FlagsAll})
	},
	"notq": func(ctx *liftCtx) {
		ctx.emit(il.SetReg{Dst: ctx.ireg(ctx.in.R2),
			Src:   ctx.c32(^int32(ctx.in.R1)),
			Flags: il.FlagsAll})
	},

	"waitd": liftNop,
	OpS:     liftSetCond,

	"savew0":  liftSaveW(0),
	"savew1":  liftSaveW(1),
	"savew2":  liftSaveW(2),
	"savew3":  liftSaveW(3),
	"savew4":  liftSaveW(4),
	"savew5":  liftSaveW(5),
	"savew6":  liftSaveW(6),
	"savew7":  liftSaveW(7),
	"savew8":  liftSaveW(8),
	"savew9":  liftSaveW(9),
	"savew10": liftSaveW(10),
	"savew11": liftSaveW(11),
	"savew12": liftSaveW(12),

	"restw0":  liftRestW(0),
	"restw1":  liftRestW(1),
	"restw2":  liftRestW(2),
	"restw3":  liftRestW(3),
	"restw4":  liftRestW(4),
	"restw5":  liftRestW(5),
	"restw6":  liftRestW(6),
	"restw7":  liftRestW(7),
	"restw8":  liftRestW(8),
	"restw9":  liftRestW(9),
	"restw10": liftRestW(10),
	"restw11": liftRestW(11),
	"restw12": liftRestW(12),

	"movc": liftStringLoop(func(ctx *liftCtx) {
		ctx.emit(il.Store{Size: 1, Addr: ctx.ireg(2), Src: il.Load{Size: 1, Addr: ctx.ireg(1)}})
		ctx.incReg(1)
		ctx.incReg(2)
	}),
	"initc": liftStringLoop(func(ctx *liftCtx) {
		r2 := ctx.ireg(2)
		ctx.emit(il.Store{Size: 1, Addr: ctx.ireg(1), Src: r2})
		ctx.incReg(1)
		ctx.emit(il.SetReg{Dst: r2, Src: il.Bin{Op: il.Ror, Size: word, L: r2, R: il.Const{Value: 8, Size: word}}})
	}),
	"cmpc": liftCmpc,

	"movus":  liftNop,
	"movsu":  liftNop,
	"saveur": liftNop,
	"restur": liftNop,
	OpReti: func(ctx *liftCtx) {
		if ctx.in.R1 == RegSP {
			ctx.emit(il.SetReg{Dst: il.Reg{Name: SReg[0], Size: word}, Src: il.Pop{Size: word}})
			ctx.emit(il.SetReg{Dst: il.Reg{Name: SReg[1], Size: word}, Src: il.Pop{Size: word}})
			ctx.emit(il.Ret{Target: il.Pop{Size: word}})
		} else {
			ctx.unimpl()
		}
	},
	"wait": liftNop,
}
