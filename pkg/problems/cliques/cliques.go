// Package cliques adapts maximal-clique listing to the commutable
// set-system engine.
//
// A solution is a clique of the underlying undirected graph; the engine
// enumerates exactly the maximal ones. The restricted problem for a
// solution s and boundary node v lists the maximal cliques of the
// common neighborhood of (s ∩ N(v)) ∪ {v} that contain it, which is
// where child solutions come from.
package cliques

import (
	"slices"

	"github.com/pronte/setwalk/pkg/commutable"
	"github.com/pronte/setwalk/pkg/graph"
)

// Problem is the maximal-clique instance over a fixed graph.
// It implements every optional capability of the engine except Seeder
// (the engine's default seed test applies): counting aux state for O(1)
// admission checks, neighbor-based candidate streams, and boundary
// candidates limited to nodes with a neighbor in the solution.
type Problem struct {
	g *graph.Graph
}

// New creates a clique problem over g. The graph must not be mutated
// while the problem is in use.
func New(g *graph.Graph) *Problem {
	return &Problem{g: g}
}

// Graph returns the underlying graph.
func (p *Problem) Graph() *graph.Graph { return p.g }

// Size returns the ground-set size.
func (p *Problem) Size() int { return p.g.Size() }

// IsGood reports whether s is a clique.
func (p *Problem) IsGood(s []int) bool { return p.g.IsClique(s) }

// aux counts, for every node, how many members of the current solution
// it is adjacent to. A node extends the clique iff its count equals the
// solution size.
type aux struct {
	counts []int
}

// InitAux builds adjacency counts for the starting solution.
func (p *Problem) InitAux(s []int) any {
	a := &aux{counts: make([]int, p.g.Size())}
	for _, u := range s {
		for _, w := range p.g.Neighbors(u) {
			a.counts[w]++
		}
	}
	return a
}

// UpdateAux accounts for the element just inserted at position pos.
func (p *Problem) UpdateAux(auxState any, s []int, pos int) {
	a := auxState.(*aux)
	for _, w := range p.g.Neighbors(s[pos]) {
		a.counts[w]++
	}
}

// CanAdd reports whether v is adjacent to every member of s.
func (p *Problem) CanAdd(s []int, auxState any, v int) bool {
	a := auxState.(*aux)
	return a.counts[v] == len(s)
}

// CompleteCand yields the idx-th element of the candidate stream opened
// for newElem: the neighbors of newElem in ascending node order,
// filtered by the ground set when one is given. Only neighbors can ever
// join a clique containing newElem, so this prunes the default
// whole-ground stream without losing candidates.
func (p *Problem) CompleteCand(ground []int, newElem, stream, idx int) (int, bool) {
	nbrs := p.g.Neighbors(newElem)
	if ground == nil {
		if idx < len(nbrs) {
			return nbrs[idx], true
		}
		return 0, false
	}
	seen := 0
	for _, v := range nbrs {
		if !slices.Contains(ground, v) {
			continue
		}
		if seen == idx {
			return v, true
		}
		seen++
	}
	return 0, false
}

// RestrictedCands yields the nodes outside s with at least one neighbor
// in s. A boundary node with no neighbor in s cannot produce a child:
// its restricted solutions are disjoint from s, so the walker's parent
// check is guaranteed to reject them.
func (p *Problem) RestrictedCands(s []int, _ []int32, emit func(v int) bool) {
	members := slices.Clone(s)
	slices.Sort(members)
	for v := 0; v < p.g.Size(); v++ {
		if _, found := slices.BinarySearch(members, v); found {
			continue
		}
		touches := false
		for _, u := range s {
			if p.g.Adjacent(u, v) {
				touches = true
				break
			}
		}
		if touches && !emit(v) {
			return
		}
	}
}

// RestrMultiple reports that the restricted problem may return several
// sibling cliques, so the walker runs its disambiguation completion.
func (p *Problem) RestrMultiple() bool { return true }

// RestrictedProblem lists the maximal cliques containing
// base = (s ∩ N(v)) ∪ {v} within base's common neighborhood, emitting
// each as a sorted node list. Enumeration stops when emit returns false.
func (p *Problem) RestrictedProblem(s []int, v int, emit func(sol []int) bool) {
	base := []int{v}
	for _, u := range s {
		if p.g.Adjacent(u, v) {
			base = append(base, u)
		}
	}
	slices.Sort(base)

	cands := p.g.CommonNeighbors(base)
	if len(cands) == 0 {
		emit(slices.Clone(base))
		return
	}

	p.bronKerbosch(nil, cands, nil, func(ext []int) bool {
		sol := make([]int, 0, len(base)+len(ext))
		sol = append(sol, base...)
		sol = append(sol, ext...)
		slices.Sort(sol)
		return emit(sol)
	})
}

// bronKerbosch lists the maximal cliques of the subgraph induced by
// r ∪ cand ∪ excl that contain r, using the classic pivoting recursion.
// Enumeration stops when cb returns false.
func (p *Problem) bronKerbosch(r, cand, excl []int, cb func(clique []int) bool) bool {
	if len(cand) == 0 {
		if len(excl) == 0 {
			return cb(slices.Clone(r))
		}
		return true
	}

	// Pivot on the node covering the most candidates.
	pivot, best := -1, -1
	for _, u := range cand {
		if c := p.coverage(u, cand); c > best {
			pivot, best = u, c
		}
	}
	for _, u := range excl {
		if c := p.coverage(u, cand); c > best {
			pivot, best = u, c
		}
	}

	var branch []int
	for _, u := range cand {
		if !p.g.Adjacent(pivot, u) {
			branch = append(branch, u)
		}
	}

	curCand := slices.Clone(cand)
	curExcl := slices.Clone(excl)
	for _, u := range branch {
		var nextCand, nextExcl []int
		for _, w := range curCand {
			if p.g.Adjacent(u, w) {
				nextCand = append(nextCand, w)
			}
		}
		for _, w := range curExcl {
			if p.g.Adjacent(u, w) {
				nextExcl = append(nextExcl, w)
			}
		}
		nextR := append(slices.Clone(r), u)
		if !p.bronKerbosch(nextR, nextCand, nextExcl, cb) {
			return false
		}
		curCand = slices.DeleteFunc(curCand, func(w int) bool { return w == u })
		curExcl = append(curExcl, u)
	}
	return true
}

func (p *Problem) coverage(u int, cand []int) int {
	covered := 0
	for _, w := range cand {
		if p.g.Adjacent(u, w) {
			covered++
		}
	}
	return covered
}

// Interface conformance checks.
var (
	_ commutable.Problem           = (*Problem)(nil)
	_ commutable.CanAdder          = (*Problem)(nil)
	_ commutable.CandStreamer      = (*Problem)(nil)
	_ commutable.RestrictedCandser = (*Problem)(nil)
	_ commutable.AuxProvider       = (*Problem)(nil)
	_ commutable.MultiRestricter   = (*Problem)(nil)
)
