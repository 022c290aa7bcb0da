package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/firodj/clipperlift/clipper"
	"github.com/firodj/clipperlift/clipper/il"
)

type Region struct {
	Name string `yaml:"name"`
	Addr uint32 `yaml:"addr"`
	Size uint32 `yaml:"size"`
}

type ModuleInfo struct {
	Name      string `yaml:"name"`
	EntryAddr uint32 `yaml:"entry_addr"`
}

type MemoryInfo struct {
	Start uint32 `yaml:"start"`
	Image string `yaml:"image"`
}

type DocYaml struct {
	Module    ModuleInfo `yaml:"module"`
	Memory    MemoryInfo `yaml:"memory"`
	Regions   []Region   `yaml:"regions"`
	Functions []Function `yaml:"functions"`
}

// Document binds one loaded memory image to the managers that analyze it. It
// is the clipper.ByteSource every decode goes through.
type Document struct {
	yaml DocYaml

	BBManager    *BasicBlockManager
	FunManager   *FunctionManager
	InstrManager *InstructionManager
	SymMap       *SymbolMap
	Graph        *CallGraph

	mem      []byte
	memStart uint32

	EntryAddr uint32
}

func newDocument() *Document {
	doc := &Document{
		SymMap: NewSymbolMap(),
		Graph:  NewCallGraph(),
	}

	doc.BBManager = NewBasicBlockManager(doc)
	doc.FunManager = NewFunctionManager(doc)
	doc.InstrManager = NewInstructionManager(doc)

	return doc
}

// NewDocument loads a document directory: a clipper.yaml describing the
// module plus the raw memory image it names.
func NewDocument(path string) (*Document, error) {
	doc := newDocument()

	err := doc.LoadYaml(filepath.Join(path, "clipper.yaml"))
	if err != nil {
		return nil, err
	}

	image := doc.yaml.Memory.Image
	if image == "" {
		image = "memory.bin"
	}
	err = doc.LoadMemory(filepath.Join(path, image))
	if err != nil {
		return nil, err
	}

	for _, region := range doc.yaml.Regions {
		doc.SymMap.AddModule(region.Name, region.Addr, region.Size)
	}

	for idx := range doc.yaml.Functions {
		fun := &doc.yaml.Functions[idx]
		doc.FunManager.RegisterExistingFunction(fun)
	}

	doc.EntryAddr = doc.yaml.Module.EntryAddr

	return doc, nil
}

func (doc *Document) LoadYaml(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewDecoder(file).Decode(&doc.yaml)
}

func (doc *Document) LoadMemory(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	doc.mem = data
	doc.memStart = doc.yaml.Memory.Start
	return nil
}

func (doc *Document) Name() string {
	return doc.yaml.Module.Name
}

func (doc *Document) IsValidAddress(addr uint32) bool {
	return addr >= doc.memStart && addr < doc.memStart+uint32(len(doc.mem))
}

// Read serves decoder fetches from the loaded image. A read crossing the end
// of the image returns the bytes that remain.
func (doc *Document) Read(addr uint32, n int) ([]byte, error) {
	if !doc.IsValidAddress(addr) {
		return nil, fmt.Errorf("address 0x%08x outside memory image", addr)
	}
	off := int(addr - doc.memStart)
	if off+n > len(doc.mem) {
		n = len(doc.mem) - off
	}
	return doc.mem[off : off+n], nil
}

// Disasm decodes the instruction at address, memoizing the result. Decoding
// the same address twice yields the same record. A failed decode still
// produces a line, holding the one byte degraded record, so a sweep can step
// past it.
func (doc *Document) Disasm(address uint32) *Line {
	if !doc.IsValidAddress(address) {
		return nil
	}
	if line := doc.InstrManager.Get(address); line != nil {
		return line
	}

	instr, err := clipper.Decode(address, doc)
	if err != nil {
		fmt.Printf("WARNING:\tdisasm: %v\n", err)
	}
	if instr == nil {
		return nil
	}
	return doc.InstrManager.Create(instr)
}

// LiftAt lifts the instruction at address through the given delayed branch
// coordinator and memoizes the result on the line.
func (doc *Document) LiftAt(address uint32, co *clipper.Coordinator) (*Line, error) {
	line := doc.Disasm(address)
	if line == nil {
		return nil, fmt.Errorf("no instruction at 0x%08x", address)
	}
	ops, err := clipper.Lift(line.Instr, address, co)
	line.Lifted = ops
	return line, err
}

// ProcessBB sweeps instructions from start_addr, yielding one BBAnalState per
// basic block. A zero last_addr sweeps until control flow stops; otherwise
// the sweep is bounded. The count of yielded blocks is returned.
//
// A delayed branch does not end its block at the branch itself: the delay
// slot instruction still belongs to it, so the yield happens one instruction
// later.
func (doc *Document) ProcessBB(start_addr uint32, last_addr uint32, cb BBYieldFunc) int {
	var bbas BBAnalState
	bbas.Init()

	if bb_exists := doc.BBManager.Get(start_addr); bb_exists != nil {
		last_addr = bb_exists.LastAddress
	}

	pending_slot := false
	pending_cond := false
	prev_addr := start_addr

	for addr := start_addr; last_addr == 0 || addr <= last_addr; {
		line := doc.Disasm(addr)
		if line == nil {
			break
		}
		instr := line.Instr

		bbas.SetBB(addr)
		bbas.Append(instr)
		next := addr + uint32(instr.Length)

		if pending_slot {
			// the slot closes the delayed branch's block
			bbas.Yield(addr, cb)
			stop := last_addr == 0 && !pending_cond
			pending_slot = false
			pending_cond = false
			if stop {
				break
			}
			prev_addr = addr
			addr = next
			continue
		}

		flow := clipper.ClassifyFlow(instr)
		terminal := false
		switch flow.Kind {
		case clipper.FlowBranch, clipper.FlowCondBranch, clipper.FlowReturn:
			terminal = true
		case clipper.FlowUnknown:
			terminal = !instr.Unimplemented()
		}

		if terminal {
			bbas.SetBranch(addr)
			if flow.DelaySlot {
				pending_slot = true
				pending_cond = flow.Kind == clipper.FlowCondBranch
			} else {
				bbas.Yield(addr, cb)
				if last_addr == 0 && flow.Kind != clipper.FlowCondBranch {
					break
				}
			}
		}

		prev_addr = addr
		addr = next
	}

	end := last_addr
	if end == 0 {
		end = prev_addr
	}
	bbas.Yield(end, cb)

	return bbas.Count
}

func (doc *Document) GetRegName(bank int, index int) string {
	return clipper.RegName(bank, index)
}

// GetLabelName names an address after the function containing it, with a
// byte offset suffix when it is not the entry.
func (doc *Document) GetLabelName(addr uint32) string {
	if funTarget := doc.SymMap.GetFunctionStart(addr); funTarget != 0 {
		label := doc.SymMap.GetLabelName(funTarget)
		if label != nil {
			ss := *label
			disp := addr - funTarget
			if disp != 0 {
				ss += fmt.Sprintf("__0x%x", disp)
			}

			return ss
		}
	}
	return fmt.Sprintf("loc_0x%08x", addr)
}

// GetPrintLines renders one block as a listing: address, encoding text, and
// the lifted IL beside each line. Delayed branches show their transfer on the
// slot line, the order the IL actually takes effect.
func (doc *Document) GetPrintLines(state BBAnalState) {
	label := doc.GetLabelName(state.BBAddr)

	fmt.Printf("%s:\t// 0x%08x", label, state.BBAddr)
	if state.Visited {
		fmt.Println("\t(v)")
	} else {
		fmt.Println()
	}

	co := clipper.NewCoordinator()
	for _, instr := range state.Lines {
		if instr.Address == state.BranchAddr {
			fmt.Print("*")
		} else {
			fmt.Print(" ")
		}
		if instr.DelaySlot {
			fmt.Print("D")
		} else {
			fmt.Print(" ")
		}

		fmt.Printf(" 0x%08x\t%s\n", instr.Address, doc.FormatInstr(instr))

		ops, err := clipper.Lift(instr, instr.Address, co)
		if err != nil {
			fmt.Printf("WARNING:\tlift: %v\n", err)
		}
		for _, op := range ops {
			fmt.Printf("\t\t\t; %s\n", op)
		}
	}
}

// FormatInstr renders an instruction, substituting known labels for static
// branch and call targets.
func (doc *Document) FormatInstr(instr *clipper.Instruction) string {
	text := instr.String()
	if target, ok := instr.StaticTarget(); ok {
		if doc.SymMap.GetFunctionStart(target) != 0 {
			text += fmt.Sprintf("\t// %s", doc.GetLabelName(target))
		}
	}
	return text
}

// LiftBB lifts every line of a yielded block in order, sharing one
// coordinator so delay slots pair up.
func (doc *Document) LiftBB(state BBAnalState) ([]il.Op, error) {
	co := clipper.NewCoordinator()
	var ops []il.Op
	var firstErr error
	for _, instr := range state.Lines {
		lifted, err := clipper.Lift(instr, instr.Address, co)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		ops = append(ops, lifted...)
	}
	return ops, firstErr
}
