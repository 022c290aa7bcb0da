package clipper

// FlowKind classifies how control leaves an instruction.
type FlowKind int

const (
	FlowFallthrough FlowKind = iota
	FlowBranch
	FlowCondBranch
	FlowCall
	FlowReturn
	FlowTrap
	FlowUnknown
)

func (k FlowKind) String() string {
	switch k {
	case FlowFallthrough:
		return "fallthrough"
	case FlowBranch:
		return "branch"
	case FlowCondBranch:
		return "condbranch"
	case FlowCall:
		return "call"
	case FlowReturn:
		return "return"
	case FlowTrap:
		return "trap"
	}
	return "unknown"
}

// Flow is the control flow summary of one instruction. Target is only
// meaningful when HasTarget is set; register indirect transfers have none.
type Flow struct {
	Kind      FlowKind
	Target    uint32
	HasTarget bool
	DelaySlot bool
}

// ClassifyFlow determines the successor shape of a decoded instruction
// without lifting it. Branches whose target cannot be computed statically
// come back as FlowUnknown so a sweep can stop rather than guess.
func ClassifyFlow(in *Instruction) Flow {
	f := Flow{Kind: FlowFallthrough, DelaySlot: in.DelaySlot}

	switch in.Op {
	case OpRet, OpReti:
		f.Kind = FlowReturn

	case OpB, OpDB:
		switch in.Cond {
		case PredNever:
			f.Kind = FlowFallthrough
		case PredAlways:
			f.Kind = FlowBranch
		default:
			f.Kind = FlowCondBranch
		}
		if f.Kind != FlowFallthrough {
			if target, ok := in.StaticTarget(); ok {
				f.Target, f.HasTarget = target, true
			} else {
				f.Kind = FlowUnknown
			}
		}

	case OpCall:
		f.Kind = FlowCall
		if target, ok := in.StaticTarget(); ok {
			f.Target, f.HasTarget = target, true
		}

	case OpCalls:
		f.Kind = FlowTrap

	case OpUnimpl:
		f.Kind = FlowUnknown
	}

	return f
}
