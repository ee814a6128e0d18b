package commutable

import (
	"fmt"
	"slices"
	"sort"
)

// LevelNode is a (level, node) pair ordered lexicographically.
// It is used as the "discovered earlier" threshold for completions.
type LevelNode struct {
	Level int32
	Node  int
}

// below reports whether (lv, v) sorts strictly before t.
func (t LevelNode) below(lv int32, v int) bool {
	return lv < t.Level || (lv == t.Level && v < t.Node)
}

// CompleteOptions control a single Complete call.
type CompleteOptions struct {
	// Ground restricts candidate streams to the given node set.
	// nil means the whole ground set.
	Ground []int

	// Target makes the completion fail as soon as it would insert a node
	// outside the set. nil means no restriction. The starting solution
	// must already be a subset of Target.
	Target []int

	// FailOnSeedChange makes the completion fail when it admits a node
	// smaller than the current seed.
	FailOnSeedChange bool

	// FailBelow makes the completion fail when it inserts a node whose
	// (level, node) pair sorts strictly before the threshold. A non-nil
	// FailBelow also implies failure on seed change.
	FailBelow *LevelNode
}

// seed-change handling modes for the internal completion loop.
const (
	seedChangeRestart = iota // restart the pass with the new seed
	seedChangeFail           // abort and report failure
	seedChangeIgnore         // keep the old seed in front
)

// Complete extends the non-empty partial solution s to the canonical
// maximal solution containing it, admitting candidates greedily in
// (level, node) order. It returns the canonical node and level
// sequences and whether the completion succeeded.
//
// A false result means an algorithmic non-event (target violation,
// disallowed seed change, or FailBelow threshold hit); the returned
// slices are then unspecified and must be discarded. Passing an empty
// solution is a programmer error and panics.
//
// When the completion admits a node smaller than the current seed and
// no failure flag forbids it, the pass restarts with the new seed.
// Termination is guaranteed because every restart strictly decreases
// the seed.
func (sys *System) Complete(s []int, level []int32, opts CompleteOptions) ([]int, []int32, bool) {
	mode := seedChangeRestart
	if opts.FailOnSeedChange || opts.FailBelow != nil {
		mode = seedChangeFail
	}
	return sys.complete(s, level, opts, mode)
}

// CompleteInside extends s using only candidates drawn from the inside
// set. When changeSeed is true, admitting a node smaller than the seed
// restarts the pass with the new seed; otherwise the old seed stays in
// front. CompleteInside never fails.
func (sys *System) CompleteInside(s []int, level []int32, inside []int, changeSeed bool) ([]int, []int32) {
	mode := seedChangeIgnore
	if changeSeed {
		mode = seedChangeRestart
	}
	s, level, _ = sys.complete(s, level, CompleteOptions{Ground: inside}, mode)
	return s, level
}

func (sys *System) complete(s []int, level []int32, opts CompleteOptions, mode int) ([]int, []int32, bool) {
	if len(s) == 0 {
		panic("commutable: Complete called with an empty solution")
	}
	if len(s) != len(level) {
		panic(fmt.Sprintf("commutable: %d nodes but %d levels", len(s), len(level)))
	}
	inTarget := func(int) bool { return true }
	if opts.Target != nil {
		targetSet := make(map[int]struct{}, len(opts.Target))
		for _, v := range opts.Target {
			targetSet[v] = struct{}{}
		}
		inTarget = func(v int) bool {
			_, ok := targetSet[v]
			return ok
		}
	}

	for {
		aux := sys.initAux(s)
		q := newCandQueue(sys, opts.Ground)
		q.add(s[0], 0)
		startLen := len(s)
		nextInS := 1
		restarted := false

		for {
			v, lv, ok := q.pop()
			if !ok {
				break
			}
			// An element of the starting solution observed at its
			// expected position: open its stream and move on. Elements
			// seen out of position (or re-observed after insertion) are
			// stale duplicates and are dropped. Only the starting
			// prefix participates in matching; elements appended during
			// this pass already opened their streams.
			if nextInS < startLen && v == s[nextInS] {
				nextInS++
				q.add(v, lv)
				continue
			}
			if slices.Contains(s, v) {
				continue
			}
			if !sys.canAdd(s, aux, v) {
				continue
			}
			if !inTarget(v) {
				return s, level, false
			}
			if opts.FailBelow != nil && opts.FailBelow.below(lv, v) {
				return s, level, false
			}
			s = append(s, v)
			level = append(level, lv)
			sys.updateAux(aux, s, len(s)-1)
			if v < s[0] {
				switch mode {
				case seedChangeFail:
					return s, level, false
				case seedChangeRestart:
					last := len(s) - 1
					s[0], s[last] = s[last], s[0]
					restarted = true
				case seedChangeIgnore:
					// The old seed keeps position 0.
				}
				if restarted {
					break
				}
			}
			q.add(v, lv)
		}

		if !restarted {
			sortCanonical(s, level)
			return s, level, true
		}
		// The pass restarts from the new seed: levels are stale with
		// respect to it, so rebuild them before matching resumes.
		s, level = sys.resort(s, s[0])
	}
}

// sortCanonical sorts positions 1..len(s) by (level, node) ascending,
// leaving the seed in place.
func sortCanonical(s []int, level []int32) {
	type pair struct {
		node  int
		level int32
	}
	if len(s) < 3 {
		return
	}
	tail := make([]pair, len(s)-1)
	for i := 1; i < len(s); i++ {
		tail[i-1] = pair{node: s[i], level: level[i]}
	}
	sort.Slice(tail, func(i, j int) bool {
		if tail[i].level != tail[j].level {
			return tail[i].level < tail[j].level
		}
		return tail[i].node < tail[j].node
	})
	for i, p := range tail {
		s[i+1] = p.node
		level[i+1] = p.level
	}
}

// resort recomputes the canonical (node, level) sequence of the node set
// of s with the given seed in front. Levels are rebuilt from scratch by
// re-running completion restricted to exactly the nodes of s, so the
// result is the sequence a bare completion from seed would produce
// within that set. The seed need not be the minimum of s.
//
// A problem whose oracles cannot reconstruct s from the seed violates
// the commutable-system contract; resort panics in that case.
func (sys *System) resort(s []int, seed int) ([]int, []int32) {
	if !slices.Contains(s, seed) {
		panic(fmt.Sprintf("commutable: resort seed %d not in solution", seed))
	}
	inside := slices.Clone(s)
	cs := []int{seed}
	cl := []int32{0}
	aux := sys.initAux(cs)
	q := newCandQueue(sys, inside)
	q.add(seed, 0)
	for len(cs) < len(inside) {
		v, lv, ok := q.pop()
		if !ok {
			break
		}
		if slices.Contains(cs, v) {
			continue
		}
		if !sys.canAdd(cs, aux, v) {
			continue
		}
		cs = append(cs, v)
		cl = append(cl, lv)
		sys.updateAux(aux, cs, len(cs)-1)
		q.add(v, lv)
	}
	if len(cs) < len(inside) {
		panic(fmt.Sprintf("commutable: resort reconstructed %d of %d nodes from seed %d", len(cs), len(inside), seed))
	}
	sortCanonical(cs, cl)
	return cs, cl
}

// getPrefix resorts s by the given seed and truncates it at v inclusive.
// The level vector is computed by the resort from s alone; no level
// vector is taken as input. Panics if v is missing from s (the restricted-problem
// oracle must include the boundary candidate in every solution).
func (sys *System) getPrefix(s []int, seed, v int) ([]int, []int32) {
	s, level := sys.resort(s, seed)
	i := slices.Index(s, v)
	if i < 0 {
		panic(fmt.Sprintf("commutable: restricted solution does not contain boundary candidate %d", v))
	}
	return s[:i+1], level[:i+1]
}
