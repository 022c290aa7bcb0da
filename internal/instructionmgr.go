package internal

import (
	"github.com/firodj/clipperlift/addrtree"
	"github.com/firodj/clipperlift/clipper"
	"github.com/firodj/clipperlift/clipper/il"
)

// Line is one decoded instruction together with its lifted IL. Lifted stays
// nil until LiftAt runs over the address.
type Line struct {
	Instr  *clipper.Instruction
	Lifted []il.Op
}

type InstructionManager struct {
	doc *Document

	instructions addrtree.Tree[uint32, *Line]
}

func NewInstructionManager(doc *Document) *InstructionManager {
	return &InstructionManager{
		doc: doc,
	}
}

func (mgr *InstructionManager) Create(instr *clipper.Instruction) *Line {
	if mgr.Get(instr.Address) != nil {
		return nil
	}
	line := &Line{Instr: instr}
	mgr.instructions.Insert(instr.Address, line)
	return line
}

func (mgr *InstructionManager) Get(addr uint32) *Line {
	it := mgr.instructions.Search(addr)
	if it.End() {
		return nil
	}
	return it.Value()
}

func (mgr *InstructionManager) Each(f func(*Line)) {
	mgr.instructions.Each(func(_ uint32, line *Line) { f(line) })
}
