package internal

import (
	"fmt"

	"github.com/firodj/clipperlift/addrtree"
)

type Symbol struct {
	Name    string
	Address uint32
	Size    uint32
}

func (sym *Symbol) Contains(addr uint32) bool {
	return addr >= sym.Address && addr < sym.Address+sym.Size
}

type SymModule struct {
	Name    string
	Address uint32
	Size    uint32
}

// SymbolMap tracks named functions and module extents over the address space.
type SymbolMap struct {
	functions *addrtree.Tree[uint32, *Symbol]
	modules   []*SymModule
}

func NewSymbolMap() *SymbolMap {
	return &SymbolMap{
		functions: &addrtree.Tree[uint32, *Symbol]{},
	}
}

func (symmap *SymbolMap) AddModule(name string, address uint32, size uint32) {
	symmap.modules = append(symmap.modules, &SymModule{Name: name, Address: address, Size: size})
}

func (symmap *SymbolMap) GetModule(addr uint32) *SymModule {
	for _, modl := range symmap.modules {
		if addr >= modl.Address && addr < modl.Address+modl.Size {
			return modl
		}
	}
	return nil
}

func (symmap *SymbolMap) AddFunction(name string, address uint32, size uint32) {
	if it := symmap.functions.Search(address); !it.End() {
		sym := it.Value()
		sym.Name = name
		sym.Size = size
		return
	}
	symmap.functions.Insert(address, &Symbol{Name: name, Address: address, Size: size})
}

// GetFunctionStart resolves an address inside a function body to the
// function's entry address. Zero means no function covers the address.
func (symmap *SymbolMap) GetFunctionStart(address uint32) uint32 {
	it := symmap.functions.Floor(address)
	if it.End() {
		return 0
	}
	sym := it.Value()
	if !sym.Contains(address) {
		return 0
	}
	return sym.Address
}

func (symmap *SymbolMap) GetFunctionSize(startAddress uint32) uint32 {
	it := symmap.functions.Search(startAddress)
	if it.End() {
		return 0
	}
	return it.Value().Size
}

func (symmap *SymbolMap) SetFunctionSize(startAddress uint32, size uint32) {
	it := symmap.functions.Search(startAddress)
	if !it.End() {
		it.Value().Size = size
	}
}

func (symmap *SymbolMap) GetLabelName(address uint32) *string {
	it := symmap.functions.Search(address)
	if it.End() {
		return nil
	}
	return &it.Value().Name
}

func (symmap *SymbolMap) Each(f func(*Symbol)) {
	symmap.functions.Each(func(_ uint32, sym *Symbol) { f(sym) })
}

func (symmap *SymbolMap) String() string {
	return fmt.Sprintf("SymbolMap(%d functions, %d modules)", symmap.functions.Size(), len(symmap.modules))
}
