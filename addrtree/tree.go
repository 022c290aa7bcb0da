// Package addrtree provides an ordered map keyed by address, used to index
// decoded instructions, basic blocks and functions by their start address.
package addrtree

import (
	"sync"

	"golang.org/x/exp/constraints"
)

// Node a single node that composes the tree
type Node[K constraints.Ordered, V any] struct {
	key    K
	value  V
	left   *Node[K, V]
	right  *Node[K, V]
	parent *Node[K, V]
}

type Iterator[K constraints.Ordered, V any] struct {
	n *Node[K, V]
}

func (it Iterator[K, V]) Value() V {
	return it.n.value
}

func (it Iterator[K, V]) Key() K {
	return it.n.key
}

func (it Iterator[K, V]) End() bool {
	return it.n == nil
}

func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{n: prevNode(it.n)}
}

func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{n: nextNode(it.n)}
}

// Tree is the ordered key/value tree. The zero value is ready to use. Lookups
// take a read lock so concurrent decode streams can share one index.
type Tree[K constraints.Ordered, V any] struct {
	root *Node[K, V]
	size int
	lock sync.RWMutex
}

// Insert stores value under key, replacing any existing entry.
func (t *Tree[K, V]) Insert(key K, value V) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.root == nil {
		t.root = &Node[K, V]{key: key, value: value}
		t.size++
		return
	}

	n := t.root
	for {
		if key == n.key {
			n.value = value
			return
		}
		if key < n.key {
			if n.left == nil {
				n.left = &Node[K, V]{key: key, value: value, parent: n}
				t.size++
				return
			}
			n = n.left
		} else {
			if n.right == nil {
				n.right = &Node[K, V]{key: key, value: value, parent: n}
				t.size++
				return
			}
			n = n.right
		}
	}
}

// Search finds the exact key; the iterator is End() when absent.
func (t *Tree[K, V]) Search(key K) Iterator[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()

	n := t.root
	for n != nil {
		if key == n.key {
			break
		}
		if key < n.key {
			n = n.left
		} else {
			n = n.right
		}
	}
	return Iterator[K, V]{n: n}
}

// Floor returns the entry with the greatest key <= key.
func (t *Tree[K, V]) Floor(key K) Iterator[K, V] {
	f, _ := t.FloorCeil(key)
	return f
}

// Ceil returns the entry with the smallest key >= key.
func (t *Tree[K, V]) Ceil(key K) Iterator[K, V] {
	_, c := t.FloorCeil(key)
	return c
}

// FloorCeil returns the entries bracketing key: the greatest key <= key and
// the smallest key >= key. Either iterator may be End().
func (t *Tree[K, V]) FloorCeil(key K) (floor, ceil Iterator[K, V]) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	n := t.root
	for n != nil {
		if key == n.key {
			return Iterator[K, V]{n: n}, Iterator[K, V]{n: n}
		}
		if key < n.key {
			ceil = Iterator[K, V]{n: n}
			n = n.left
		} else {
			floor = Iterator[K, V]{n: n}
			n = n.right
		}
	}
	return
}

// Min returns the smallest entry.
func (t *Tree[K, V]) Min() Iterator[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return Iterator[K, V]{n: minNode(t.root)}
}

// Max returns the greatest entry.
func (t *Tree[K, V]) Max() Iterator[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()
	n := t.root
	for n != nil && n.right != nil {
		n = n.right
	}
	return Iterator[K, V]{n: n}
}

func (t *Tree[K, V]) Size() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.size
}

// Each visits all entries in key order.
func (t *Tree[K, V]) Each(f func(K, V)) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	inOrder(t.root, f)
}

func inOrder[K constraints.Ordered, V any](n *Node[K, V], f func(K, V)) {
	if n != nil {
		inOrder(n.left, f)
		f(n.key, n.value)
		inOrder(n.right, f)
	}
}

func minNode[K constraints.Ordered, V any](n *Node[K, V]) *Node[K, V] {
	for n != nil && n.left != nil {
		n = n.left
	}
	return n
}

func prevNode[K constraints.Ordered, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right
		}
		return n
	}
	for n.parent != nil && n.parent.left == n {
		n = n.parent
	}
	return n.parent
}

func nextNode[K constraints.Ordered, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}
	if n.right != nil {
		return minNode(n.right)
	}
	for n.parent != nil && n.parent.right == n {
		n = n.parent
	}
	return n.parent
}
