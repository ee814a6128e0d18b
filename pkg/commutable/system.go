package commutable

import "slices"

// Solution is the user-facing item: the node set of an enumerated
// solution, seed first, tail in canonical (level, node) order.
type Solution []int

// TreeNode is a node of the enumeration tree: a canonical solution
// together with the level at which each element was admitted.
// Levels[0] is always 0 (the seed); all other levels are >= 1.
type TreeNode struct {
	Nodes  []int
	Levels []int32
}

// Clone returns a deep copy of the tree node.
func (n *TreeNode) Clone() *TreeNode {
	return &TreeNode{Nodes: slices.Clone(n.Nodes), Levels: slices.Clone(n.Levels)}
}

// System is the enumeration engine for one problem instance.
//
// A System is a pure computational object over mutable local state; it
// performs no I/O and must not be shared between goroutines. Callers
// wanting parallelism partition roots and build one System per worker
// (see pkg/enumerate).
type System struct {
	prob Problem
	size int

	canAdd          func(s []int, aux any, v int) bool
	isSeed          func(v int, s []int) bool
	completeCand    func(ground []int, newElem, stream, idx int) (int, bool)
	restrictedCands func(s []int, level []int32, emit func(v int) bool)
	initAux         func(s []int) any
	updateAux       func(aux any, s []int, pos int)
	restrMultiple   func() bool
}

// New builds an engine around the given problem instance.
//
// Optional capabilities are discovered by type assertion: a problem that
// also implements [CanAdder], [Seeder], [CandStreamer],
// [RestrictedCandser], [AuxProvider] or [MultiRestricter] replaces the
// corresponding default.
func New(p Problem) *System {
	sys := &System{prob: p, size: p.Size()}

	if ca, ok := p.(CanAdder); ok {
		sys.canAdd = ca.CanAdd
	} else {
		sys.canAdd = func(s []int, _ any, v int) bool {
			cnd := make([]int, 0, len(s)+1)
			cnd = append(cnd, s...)
			cnd = append(cnd, v)
			return p.IsGood(cnd)
		}
	}

	if sd, ok := p.(Seeder); ok {
		sys.isSeed = sd.IsSeed
	} else {
		sys.isSeed = func(v int, _ []int) bool {
			return p.IsGood([]int{v})
		}
	}

	if cs, ok := p.(CandStreamer); ok {
		sys.completeCand = cs.CompleteCand
	} else {
		sys.completeCand = func(ground []int, _, _, idx int) (int, bool) {
			if ground == nil {
				if idx < sys.size {
					return idx, true
				}
				return 0, false
			}
			if idx < len(ground) {
				return ground[idx], true
			}
			return 0, false
		}
	}

	if rc, ok := p.(RestrictedCandser); ok {
		sys.restrictedCands = rc.RestrictedCands
	} else {
		sys.restrictedCands = func(s []int, _ []int32, emit func(int) bool) {
			members := slices.Clone(s)
			slices.Sort(members)
			for v := 0; v < sys.size; v++ {
				if _, found := slices.BinarySearch(members, v); found {
					continue
				}
				if !emit(v) {
					return
				}
			}
		}
	}

	if ap, ok := p.(AuxProvider); ok {
		sys.initAux = ap.InitAux
		sys.updateAux = ap.UpdateAux
	} else {
		sys.initAux = func([]int) any { return nil }
		sys.updateAux = func(any, []int, int) {}
	}

	if mr, ok := p.(MultiRestricter); ok {
		sys.restrMultiple = mr.RestrMultiple
	} else {
		sys.restrMultiple = func() bool { return true }
	}

	return sys
}

// MaxRoots returns the ground-set size: root candidates are the nodes
// 0 through MaxRoots()-1.
func (sys *System) MaxRoots() int { return sys.size }

// GetRoot invokes cb with the canonical solution rooted at i, if i is a
// root: i must pass the root seed test and completing {i} must not
// change the seed. Otherwise GetRoot is a no-op.
func (sys *System) GetRoot(i int, cb func(root *TreeNode) bool) {
	if i < 0 || i >= sys.size {
		return
	}
	if !sys.isSeed(i, nil) {
		return
	}
	s, level, ok := sys.Complete([]int{i}, []int32{0}, CompleteOptions{FailOnSeedChange: true})
	if !ok {
		return
	}
	cb(&TreeNode{Nodes: s, Levels: level})
}

// ListChildren invokes cb for each child of node in the enumeration
// tree, stopping early when cb returns false.
func (sys *System) ListChildren(node *TreeNode, cb func(child *TreeNode) bool) {
	sys.children(node.Nodes, node.Levels, func(nodes []int, levels []int32) bool {
		return cb(&TreeNode{Nodes: nodes, Levels: levels})
	})
}

// NodeToItem projects a tree node to the user-facing item: its node
// sequence. The result depends only on the node set.
func (sys *System) NodeToItem(node *TreeNode) Solution {
	return Solution(slices.Clone(node.Nodes))
}
