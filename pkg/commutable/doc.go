// Package commutable enumerates all solutions of a commutable set system
// without repetition.
//
// A problem instance supplies a predicate over subsets of the ground set
// {0, …, N-1} together with a handful of oracles (see [Problem] and the
// optional capability interfaces). The engine builds an implicit
// parent-child tree over the solutions and walks it lazily: every
// solution is emitted exactly once, by construction, with no global
// dedup state.
//
// # Canonical form
//
// Each solution is represented as an ordered node sequence plus a
// parallel level vector. The first node is the seed (the minimum node of
// the solution, level 0); the remaining nodes are sorted by
// (level, node), where a node's level is the generation at which the
// completion procedure first admitted it. Completion is deterministic,
// so re-running it from the bare seed, confined to the solution's own
// node set, reproduces the same sequence - this is what makes the tree
// well-defined. Unconfined, completion from the seed of a non-root
// solution admits smaller nodes and ends at a different solution.
//
// # Walking the tree
//
// The public surface is the root/child protocol:
//
//	sys := commutable.New(problem)
//	for i := 0; i < sys.MaxRoots(); i++ {
//	    sys.GetRoot(i, func(root *commutable.TreeNode) bool {
//	        // root is a canonical solution; descend with ListChildren.
//	        return true
//	    })
//	}
//
// The pkg/enumerate package provides drivers that perform this walk,
// including a parallel one that partitions roots across independent
// engines.
//
// The engine is single-threaded: a System instance must not be used from
// multiple goroutines at once. Callbacks run on the caller's goroutine
// and cancel enumeration cooperatively by returning false.
package commutable
