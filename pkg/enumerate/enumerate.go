// Package enumerate provides drivers that walk the enumeration tree of
// a commutable system.
//
// The sequential driver visits the whole forest depth-first on the
// caller's goroutine. The parallel driver partitions roots across
// workers, each with its own independently constructed engine, since a
// System is single-threaded by contract.
package enumerate

import (
	"github.com/pronte/setwalk/pkg/commutable"
	"github.com/pronte/setwalk/pkg/observability"
)

// Visit walks the enumeration forest of sys depth-first, invoking cb
// once per solution. Roots are visited in ascending seed order; within
// a root, children are visited in the order the walker produces them.
// Enumeration stops as soon as cb returns false: no further callbacks
// are made after a false return.
func Visit(sys *commutable.System, cb func(node *commutable.TreeNode) bool) {
	for i := 0; i < sys.MaxRoots(); i++ {
		cont := true
		sys.GetRoot(i, func(root *commutable.TreeNode) bool {
			observability.Enum().OnRoot(root.Nodes[0], len(root.Nodes))
			cont = descend(sys, root, cb)
			return cont
		})
		if !cont {
			return
		}
	}
}

func descend(sys *commutable.System, node *commutable.TreeNode, cb func(*commutable.TreeNode) bool) bool {
	observability.Enum().OnSolution(len(node.Nodes))
	if !cb(node) {
		return false
	}
	cont := true
	sys.ListChildren(node, func(child *commutable.TreeNode) bool {
		cont = descend(sys, child, cb)
		return cont
	})
	return cont
}

// Count runs a full enumeration and returns the number of solutions.
func Count(sys *commutable.System) int {
	n := 0
	Visit(sys, func(*commutable.TreeNode) bool {
		n++
		return true
	})
	return n
}

// Collect runs a full enumeration and returns every solution item.
// Intended for small instances; large enumerations should stream
// through Visit instead.
func Collect(sys *commutable.System) []commutable.Solution {
	var out []commutable.Solution
	Visit(sys, func(node *commutable.TreeNode) bool {
		out = append(out, sys.NodeToItem(node))
		return true
	})
	return out
}

// Factory builds a fresh engine. The parallel driver calls it once per
// worker; each returned System must be independent of the others.
type Factory func() *commutable.System
