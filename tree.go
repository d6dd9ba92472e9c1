// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"iter"

	"github.com/creachadair/jnode/keypath"
)

// ToNodes returns n followed by all the descendants of n, depth-first in
// document order: each list element or object member is followed by its own
// descendants before its next sibling.
func ToNodes(n Node) []Node {
	var out []Node
	for d := range n.All() {
		out = append(out, d)
	}
	return out
}

// All returns an iterator over n and all its descendants, in the same order
// as ToNodes. Traversal uses an explicit stack, so the depth of the tree is
// not limited by the call stack.
func (n Node) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stk := []Node{n}
		for len(stk) != 0 {
			next := stk[len(stk)-1]
			stk = stk[:len(stk)-1]
			if !yield(next) {
				return
			}

			// N.B. Push in reverse order, so we visit in document order.
			switch t := next.Value.(type) {
			case List:
				for i := len(t) - 1; i >= 0; i-- {
					stk = append(stk, t[i])
				}
			case Object:
				for i := len(t) - 1; i >= 0; i-- {
					stk = append(stk, t[i].Node)
				}
			}
		}
	}
}

// Select returns the nodes of the tree rooted at n for which f reports true,
// in the same order as ToNodes.
func Select(n Node, f func(Node) bool) []Node {
	var out []Node
	for d := range n.All() {
		if f(d) {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the node of the tree rooted at n whose keypath equals kp, and
// reports whether one was found. The keypath of n itself need not be empty:
// kp is compared to the stamped keypaths of the tree. If duplicate object
// keys give several nodes the same keypath, Find returns the last of them in
// document order.
func Find(n Node, kp keypath.Keypath) (Node, bool) {
	var found Node
	var ok bool
	for d := range n.All() {
		if d.Schema.Keypath.Equal(kp) {
			found, ok = d, true
		}
	}
	return found, ok
}
