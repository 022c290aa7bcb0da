package internal

import (
	"fmt"

	"github.com/firodj/clipperlift/addrtree"
)

type Function struct {
	Name        string   `yaml:"name"`
	Address     uint32   `yaml:"address"`
	Size        uint32   `yaml:"size"`
	BBAddresses []uint32 `yaml:"bb_addresses"`
}

// LastAddress is the address of the function's final byte.
func (fun *Function) LastAddress() uint32 {
	return fun.Address + fun.Size - 1
}

func (fun *Function) SetLastAddress(last_addr uint32) {
	fun.Size = last_addr - fun.Address + 1
}

func (fun *Function) AddBB(bb_addr uint32) {
	for _, ex_bb := range fun.BBAddresses {
		if ex_bb == bb_addr {
			return
		}
	}

	fun.BBAddresses = append(fun.BBAddresses, bb_addr)
}

type FunctionManager struct {
	doc           *Document
	functions     addrtree.Tree[uint32, *Function]
	mapNameToFunc map[string][]uint32
}

func NewFunctionManager(doc *Document) *FunctionManager {
	return &FunctionManager{
		doc:           doc,
		mapNameToFunc: make(map[string][]uint32),
	}
}

// RegisterExistingFunction records a function known up front, from the
// document's symbol list.
func (funmgr *FunctionManager) RegisterExistingFunction(fun *Function) {
	funmgr.doc.SymMap.AddFunction(fun.Name, fun.Address, fun.Size)
	funmgr.CreateNewFunction(fun.Address, fun.Size)
}

func (funmgr *FunctionManager) RegisterNameFunction(fun *Function) {
	for _, ex_addr := range funmgr.mapNameToFunc[fun.Name] {
		if ex_addr == fun.Address {
			return
		}
	}

	funmgr.mapNameToFunc[fun.Name] = append(funmgr.mapNameToFunc[fun.Name], fun.Address)
}

func (funmgr *FunctionManager) CreateNewFunction(addr uint32, size uint32) *Function {
	fun := funmgr.Get(addr)
	if fun != nil {
		return nil
	}

	add_sym := false
	name := funmgr.doc.SymMap.GetLabelName(addr)
	if name == nil {
		name = new(string)
		*name = fmt.Sprintf("z_un_%08x", addr)

		add_sym = true
	}

	fun = &Function{
		Address: addr,
		Name:    *name,
		Size:    size,
	}
	funmgr.functions.Insert(addr, fun)
	funmgr.RegisterNameFunction(fun)

	if add_sym {
		funmgr.doc.SymMap.AddFunction(fun.Name, fun.Address, fun.Size)
	}

	return fun
}

func (funmgr *FunctionManager) Get(addr uint32) *Function {
	it := funmgr.functions.Search(addr)
	if it.End() {
		return nil
	}
	return it.Value()
}

func (funmgr *FunctionManager) GetByName(name string) []*Function {
	var funs []*Function
	for _, addr := range funmgr.mapNameToFunc[name] {
		if fun := funmgr.Get(addr); fun != nil {
			funs = append(funs, fun)
		}
	}
	return funs
}

func (funmgr *FunctionManager) Each(f func(*Function)) {
	funmgr.functions.Each(func(_ uint32, fun *Function) { f(fun) })
}

// SplitAt ends the function containing split_addr just before it and starts a
// new function there. prev_last is the last byte of the instruction
// preceding the split point.
func (mgr *FunctionManager) SplitAt(split_addr uint32, prev_last uint32) (prev_func, split_func *Function) {
	fn_start := mgr.doc.SymMap.GetFunctionStart(split_addr)
	if fn_start == 0 {
		return
	}
	funcStart := mgr.Get(fn_start)
	if funcStart == nil {
		return
	}
	if funcStart.Address == split_addr {
		return funcStart, funcStart
	}
	prev_func = funcStart

	last_addr := funcStart.LastAddress()
	if funcStart.LastAddress() >= split_addr {
		funcStart.SetLastAddress(prev_last)
	}

	split_size := last_addr - split_addr + 1
	split_func = mgr.CreateNewFunction(split_addr, split_size)

	if split_func == nil {
		funcStart.SetLastAddress(last_addr)
		fmt.Printf("ERROR:\tunable to create splitted func at 0x%08x\n", split_addr)
		return
	}

	mgr.doc.SymMap.SetFunctionSize(funcStart.Address, funcStart.Size)
	return
}
