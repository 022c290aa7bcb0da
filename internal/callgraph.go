package internal

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/firodj/clipperlift/addrtree"
)

type CallNodeID int

type CallNode struct {
	ID       CallNodeID
	ParentID CallNodeID
	Subs     *orderedmap.OrderedMap[uint32, CallNodeID]

	Address uint32
	Fun     *Function
	Count   int64
}

// CallGraph records who calls whom, rooted at the entry function. Children
// keep discovery order so dumps read the way the code was traversed.
type CallGraph struct {
	root  *CallNode
	nodes *addrtree.Tree[CallNodeID, *CallNode]
	index CallNodeID
}

func NewCallGraph() *CallGraph {
	g := &CallGraph{
		index: 0,
		root: &CallNode{
			ParentID: -1,
			Subs:     orderedmap.New[uint32, CallNodeID](),
		},
		nodes: &addrtree.Tree[CallNodeID, *CallNode]{},
	}
	g.nodes.Insert(g.root.ID, g.root)
	g.index++

	return g
}

func (g *CallGraph) Root() *CallNode {
	return g.root
}

func (g *CallGraph) At(id CallNodeID) *CallNode {
	it := g.nodes.Search(id)
	if it.End() {
		return nil
	}
	return it.Value()
}

// AddNode records a call to func_addr from the node parent_ID, reusing the
// existing child when the edge repeats.
func (g *CallGraph) AddNode(func_addr uint32, parent_ID CallNodeID) *CallNode {
	items := g.At(parent_ID).Subs

	if item_ID, ok := items.Get(func_addr); ok {
		node := g.At(item_ID)
		node.Count++
		return node
	}

	node := &CallNode{
		ID:       g.index,
		ParentID: parent_ID,
		Subs:     orderedmap.New[uint32, CallNodeID](),
		Address:  func_addr,
		Count:    1,
	}

	g.nodes.Insert(node.ID, node)
	items.Set(func_addr, node.ID)
	g.index++

	return node
}

func (g *CallGraph) Dump() {
	g.DumpNode(0, g.root.ID)
}

func (g *CallGraph) DumpNode(level int, parent_ID CallNodeID) {
	items := g.At(parent_ID).Subs

	for pair := items.Oldest(); pair != nil; pair = pair.Next() {
		node := g.At(pair.Value)
		fmt.Print(strings.Repeat(" ", level))
		fmt.Print("+ ")

		if node.Fun != nil {
			fmt.Printf("%s (%d)", node.Fun.Name, node.Count)
		} else {
			fmt.Printf("0x%08x (%d)", node.Address, node.Count)
		}

		fmt.Println()
		g.DumpNode(level+1, node.ID)
	}
}
