// Package list provides a circular doubly-linked list anchored on a sentinel
// node. Elements embed a Node and point back to themselves through Val, so a
// node can be moved in O(1) starting from just the element that holds it.
//
// A sentinel never carries a value. An empty list is a sentinel whose next and
// prev both point at itself.
package list

import (
	errors "github.com/pkg/errors"
)

type Node[V any] struct {
	next, prev *Node[V]
	Val        V
}

func (n *Node[V]) Next() *Node[V] { return n.next }
func (n *Node[V]) Prev() *Node[V] { return n.prev }

// Init makes n an empty list.
func (n *Node[V]) Init() {
	n.next = n
	n.prev = n
}

func (n *Node[V]) Empty() bool { return n.next == n }

// Singular reports whether the list headed by n holds exactly one node.
func (n *Node[V]) Singular() bool { return n.next != n && n.next == n.prev }

func link[V any](n, prev, next *Node[V]) {
	next.prev = n
	n.next = next
	n.prev = prev
	prev.next = n
}

func InsertAfter[V any](at, n *Node[V])  { link(n, at, at.next) }
func InsertBefore[V any](at, n *Node[V]) { link(n, at.prev, at) }

// Delete unlinks n from its neighbours. The links of n are cleared and must
// not be followed until n is inserted again.
func (n *Node[V]) Delete() {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
}

// Move unlinks n and reinserts it right after to.
func (n *Node[V]) Move(to *Node[V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	link(n, to, to.next)
}

// MoveTail unlinks n and reinserts it right before to.
func (n *Node[V]) MoveTail(to *Node[V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	link(n, to.prev, to)
}

func splice[V any](from, prev, next *Node[V]) {
	first := from.next
	last := from.prev
	first.prev = prev
	prev.next = first
	last.next = next
	next.prev = last
}

// Splice moves every node of the list headed by from to the front of the list
// headed by to. from is left empty.
func Splice[V any](from, to *Node[V]) {
	if from.Empty() {
		return
	}
	splice(from, to, to.next)
	from.Init()
}

// SpliceTail is Splice but appends at the back of to.
func SpliceTail[V any](from, to *Node[V]) {
	if from.Empty() {
		return
	}
	splice(from, to.prev, to)
	from.Init()
}

// First returns the front node, or nil if the list is empty.
func First[V any](head *Node[V]) *Node[V] {
	if head.Empty() {
		return nil
	}
	return head.next
}

// Last returns the back node, or nil if the list is empty.
func Last[V any](head *Node[V]) *Node[V] {
	if head.Empty() {
		return nil
	}
	return head.prev
}

// Len walks the list; there is no cached count.
func Len[V any](head *Node[V]) int {
	cnt := 0
	for n := head.next; n != head; n = n.next {
		cnt++
	}
	return cnt
}

func Each[V any](head *Node[V], fn func(n *Node[V]) bool) {
	for n := head.next; n != head; n = n.next {
		if !fn(n) {
			return
		}
	}
}

// EachSafe caches the successor before calling fn, so fn may unlink n.
func EachSafe[V any](head *Node[V], fn func(n *Node[V]) bool) {
	for n, safe := head.next, head.next.next; n != head; n, safe = safe, safe.next {
		if !fn(n) {
			return
		}
	}
}

// EachFrom walks forward starting at start (inclusive) up to head.
func EachFrom[V any](head, start *Node[V], fn func(n *Node[V]) bool) {
	for n := start; n != head; n = n.next {
		if !fn(n) {
			return
		}
	}
}

func EachReverse[V any](head *Node[V], fn func(n *Node[V]) bool) {
	for n := head.prev; n != head; n = n.prev {
		if !fn(n) {
			return
		}
	}
}

// Verify checks that the list headed by head is circular and doubly
// consistent. It stops after limit nodes when limit > 0 so a broken cycle
// cannot hang the caller.
func Verify[V any](head *Node[V], limit int) error {
	if head.next == nil || head.prev == nil {
		return errors.New("sentinel is not initialized")
	}
	idx := 0
	for n := head; ; n = n.next {
		if n.next == nil {
			return errors.Errorf("node %d: nil next", idx)
		}
		if n.next.prev != n {
			return errors.Errorf("node %d: next.prev does not point back", idx)
		}
		if n.prev == nil || n.prev.next != n {
			return errors.Errorf("node %d: prev.next does not point back", idx)
		}
		if n.next == head {
			return nil
		}
		idx++
		if limit > 0 && idx > limit {
			return errors.Errorf("no way back to sentinel after %d nodes", limit)
		}
	}
}
