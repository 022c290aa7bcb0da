package internal

import (
	"fmt"

	"github.com/firodj/clipperlift/addrtree"
)

// BasicBlock is a maximal straight line run of instructions. LastAddress is
// the address of the block's final instruction, not one past it, because
// instruction lengths vary.
type BasicBlock struct {
	Address       uint32 `yaml:"address"`
	LastAddress   uint32 `yaml:"last_address"`
	BranchAddress uint32 `yaml:"branch_address"`
}

type BBRefKey struct {
	From uint32 `yaml:"from"`
	To   uint32 `yaml:"to"`
}

type BBRef struct {
	BBRefKey

	IsDynamic  bool // target known only at run time
	IsAdjacent bool // fallthrough next/prev
	IsLinked   bool // call edge
}

func (ref *BBRef) SetAdjacent(v bool) *BBRef {
	ref.IsAdjacent = v
	return ref
}

func (ref *BBRef) SetLinked(v bool) *BBRef {
	ref.IsLinked = v
	return ref
}

func (ref *BBRef) String() string {
	kind := "jump"
	if ref.IsAdjacent {
		kind = "adjacent"
	} else if ref.IsLinked {
		kind = "call"
	}
	return fmt.Sprintf("0x%08x -> 0x%08x (%s)", ref.From, ref.To, kind)
}

type BasicBlockManager struct {
	doc *Document

	basicBlocks addrtree.Tree[uint32, *BasicBlock]
	refs        map[BBRefKey]*BBRef
	refsToBB    map[uint32][]uint32
	refsFromBB  map[uint32][]uint32
}

func NewBasicBlockManager(doc *Document) *BasicBlockManager {
	return &BasicBlockManager{
		doc:        doc,
		refs:       make(map[BBRefKey]*BBRef),
		refsToBB:   make(map[uint32][]uint32),
		refsFromBB: make(map[uint32][]uint32),
	}
}

// Get finds the block covering addr, if any.
func (bbmanager *BasicBlockManager) Get(addr uint32) (bb *BasicBlock) {
	if addr == 0 {
		return nil
	}

	f, c := bbmanager.basicBlocks.FloorCeil(addr)

	if !c.End() {
		bb = c.Value()

		if addr != bb.Address {
			if !f.End() {
				bb = f.Value()
			} else {
				bb = nil
			}
		}
	} else if !f.End() {
		bb = f.Value()
	}

	if bb != nil && addr > bb.LastAddress {
		bb = nil
	}

	return
}

func (bbmanager *BasicBlockManager) Create(addr uint32) *BasicBlock {
	bb := bbmanager.Get(addr)
	if bb != nil {
		return nil
	}

	bb = &BasicBlock{
		Address: addr,
	}

	bbmanager.basicBlocks.Insert(addr, bb)
	return bb
}

func (bbmanager *BasicBlockManager) CreateReference(from_addr, to_addr uint32) *BBRef {
	key := BBRefKey{
		From: from_addr,
		To:   to_addr,
	}

	if _, ok := bbmanager.refs[key]; ok {
		return bbmanager.refs[key]
	}

	bbref := &BBRef{
		BBRefKey: key,
	}
	bbmanager.refsToBB[to_addr] = append(bbmanager.refsToBB[to_addr], from_addr)
	bbmanager.refsFromBB[from_addr] = append(bbmanager.refsFromBB[from_addr], to_addr)
	bbmanager.refs[key] = bbref

	return bbref
}

// GetRefs returns the edges into and out of the block at addr.
func (bbmanager *BasicBlockManager) GetRefs(addr uint32) (in, out []*BBRef) {
	for _, from := range bbmanager.refsToBB[addr] {
		in = append(in, bbmanager.refs[BBRefKey{From: from, To: addr}])
	}
	for _, to := range bbmanager.refsFromBB[addr] {
		out = append(out, bbmanager.refs[BBRefKey{From: addr, To: to}])
	}
	return
}

func (bbmanager *BasicBlockManager) Each(f func(*BasicBlock)) {
	bbmanager.basicBlocks.Each(func(_ uint32, bb *BasicBlock) { f(bb) })
}

// SplitAt cuts the block covering split_addr in two. prev_last is the address
// of the instruction immediately before the split point; with variable length
// encodings the manager cannot derive it from split_addr alone.
func (bbmanager *BasicBlockManager) SplitAt(split_addr uint32, prev_last uint32) (prev_bb, split_bb *BasicBlock) {
	prev_bb = bbmanager.Get(split_addr)
	if prev_bb == nil {
		return
	} else if prev_bb.Address == split_addr {
		split_bb = prev_bb
		return
	}

	last_addr := prev_bb.LastAddress
	if prev_bb.LastAddress >= split_addr {
		prev_bb.LastAddress = prev_last
	}

	split_bb = bbmanager.Create(split_addr)
	if split_bb == nil {
		prev_bb.LastAddress = last_addr
		fmt.Printf("ERROR:\tunable to create splitted bb at: 0x%08x, possibly exists?\n", split_addr)
		return
	}

	if prev_bb.BranchAddress >= split_bb.Address {
		split_bb.BranchAddress = prev_bb.BranchAddress
		prev_bb.BranchAddress = 0
	}

	split_bb.LastAddress = last_addr
	bbmanager.CreateReference(prev_bb.Address, split_bb.Address).SetAdjacent(true)
	return
}
