package internal

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/firodj/clipperlift/clipper"
)

// FunctionAnalyzer discovers the basic blocks of one function by chasing
// static branch targets from its entry.
type FunctionAnalyzer struct {
	doc       *Document
	fun       *Function
	bb_visits map[uint32]*BBVisit
	calls     []uint32
	last_addr uint32
}

func NewFunctionAnalyzer(doc *Document, fun *Function) *FunctionAnalyzer {
	return &FunctionAnalyzer{
		doc: doc,
		fun: fun,
	}
}

type BBVisit struct {
	BB      *BasicBlock
	Visited bool
}

// Calls lists the static call targets seen while processing, in discovery
// order.
func (anal *FunctionAnalyzer) Calls() []uint32 {
	return anal.calls
}

func (anal *FunctionAnalyzer) Process() {
	if anal.bb_visits != nil {
		fmt.Printf("WARNING:\tfunction already processed\n")
		return
	}
	anal.bb_visits = make(map[uint32]*BBVisit)

	var bb_queues Queue[uint32]
	bb_queues.Push(anal.fun.Address)

	for bb_queues.Len() > 0 {
		cur_addr := bb_queues.Pop()

		if cur_visit, ok := anal.bb_visits[cur_addr]; ok && cur_visit.Visited {
			continue
		}

		// a branch into the middle of a known block cuts it in two
		if covering := anal.doc.BBManager.Get(cur_addr); covering != nil && covering.Address != cur_addr {
			prev_last := anal.prevInstrLast(covering.Address, cur_addr)
			_, split_bb := anal.doc.BBManager.SplitAt(cur_addr, prev_last)
			if split_bb == nil {
				continue
			}
			anal.touch(split_bb)
			continue
		}

		anal.doc.ProcessBB(cur_addr, 0, func(bbas BBAnalState) {
			anal.acceptBB(bbas, &bb_queues)
		})
	}

	if anal.last_addr >= anal.fun.Address {
		anal.fun.SetLastAddress(anal.last_addr)
		anal.doc.SymMap.SetFunctionSize(anal.fun.Address, anal.fun.Size)
	}
}

func (anal *FunctionAnalyzer) touch(bb *BasicBlock) {
	anal.fun.AddBB(bb.Address)
	anal.bb_visits[bb.Address] = &BBVisit{BB: bb, Visited: true}
}

func (anal *FunctionAnalyzer) acceptBB(bbas BBAnalState, bb_queues *Queue[uint32]) {
	bb := anal.doc.BBManager.Get(bbas.BBAddr)
	if bb == nil {
		bb = anal.doc.BBManager.Create(bbas.BBAddr)
	}
	if bb == nil {
		return
	}
	bb.LastAddress = bbas.LastAddr
	bb.BranchAddress = bbas.BranchAddr
	anal.touch(bb)

	var branch *clipper.Instruction
	var block_end uint32
	for _, instr := range bbas.Lines {
		if instr.Address == bbas.BranchAddr {
			branch = instr
		}
		block_end = instr.Address + uint32(instr.Length) - 1

		flow := clipper.ClassifyFlow(instr)
		if flow.Kind == clipper.FlowCall && flow.HasTarget {
			anal.calls = append(anal.calls, flow.Target)
			anal.doc.BBManager.CreateReference(bbas.BBAddr, flow.Target).SetLinked(true)
		}
	}

	if block_end > anal.last_addr {
		anal.last_addr = block_end
	}

	if branch == nil {
		return
	}

	flow := clipper.ClassifyFlow(branch)
	switch flow.Kind {
	case clipper.FlowBranch, clipper.FlowCondBranch:
		if flow.HasTarget {
			anal.doc.BBManager.CreateReference(bbas.BBAddr, flow.Target)
			bb_queues.Push(flow.Target)
		}
		if flow.Kind == clipper.FlowCondBranch {
			anal.doc.BBManager.CreateReference(bbas.BBAddr, block_end+1).SetAdjacent(true)
			bb_queues.Push(block_end + 1)
		}
	}
}

// prevInstrLast walks decoded instructions from bb_start and returns the last
// byte of the instruction right before target.
func (anal *FunctionAnalyzer) prevInstrLast(bb_start uint32, target uint32) uint32 {
	addr := bb_start
	for addr < target {
		line := anal.doc.Disasm(addr)
		if line == nil {
			break
		}
		next := addr + uint32(line.Instr.Length)
		if next >= target {
			return next - 1
		}
		addr = next
	}
	return target - 1
}

func (anal *FunctionAnalyzer) Debug(cb BBYieldFunc) {
	for _, bb_addr := range anal.fun.BBAddresses {
		v := false
		if cur_visit, ok := anal.bb_visits[bb_addr]; ok {
			v = cur_visit.Visited
		}
		fmt.Printf("bb 0x%x %v\n", bb_addr, v)
		xref_froms, xref_tos := anal.doc.BBManager.GetRefs(bb_addr)
		for _, xref_from := range xref_froms {
			spew.Dump(xref_from)
		}
		for _, xref_to := range xref_tos {
			spew.Dump(xref_to)
		}
		anal.doc.ProcessBB(bb_addr, 0, func(bbas BBAnalState) {
			if cur_visit, ok := anal.bb_visits[bbas.BBAddr]; ok {
				bbas.Visited = cur_visit.Visited
			}
			cb(bbas)
		})
	}
}

// AnalyzeFrom walks functions breadth first from entry, processing each one
// and following its static call targets. The call graph fills in as edges
// are seen.
func (doc *Document) AnalyzeFrom(entry uint32) {
	type workItem struct {
		addr   uint32
		parent CallNodeID
	}

	var fun_queue Queue[workItem]
	fun_queue.Push(workItem{addr: entry, parent: doc.Graph.Root().ID})

	processed := make(map[uint32]bool)

	for fun_queue.Len() > 0 {
		item := fun_queue.Pop()

		node := doc.Graph.AddNode(item.addr, item.parent)

		fun := doc.FunManager.Get(item.addr)
		if fun == nil {
			fun = doc.FunManager.CreateNewFunction(item.addr, 0)
		}
		if fun == nil {
			fmt.Printf("WARNING:\tno function at 0x%08x\n", item.addr)
			continue
		}
		node.Fun = fun

		if processed[item.addr] {
			continue
		}
		processed[item.addr] = true

		anal := NewFunctionAnalyzer(doc, fun)
		anal.Process()

		for _, callee := range anal.Calls() {
			fun_queue.Push(workItem{addr: callee, parent: node.ID})
		}
	}
}
