package commutable

import "slices"

// testProblem is a maximal-clique instance over an adjacency matrix.
// It implements only the required Problem methods, so the engine's
// default CanAdd, IsSeed, candidate streams, RestrictedCands and Aux
// are all exercised by these tests.
type testProblem struct {
	n   int
	adj [][]bool
}

func newTestProblem(n int, edges [][2]int) *testProblem {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, e := range edges {
		adj[e[0]][e[1]] = true
		adj[e[1]][e[0]] = true
	}
	return &testProblem{n: n, adj: adj}
}

func (p *testProblem) Size() int { return p.n }

func (p *testProblem) IsGood(s []int) bool {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if !p.adj[s[i]][s[j]] {
				return false
			}
		}
	}
	return true
}

// RestrictedProblem brute-forces the maximal cliques containing
// (s ∩ N(v)) ∪ {v} within its common neighborhood. Fine for the tiny
// instances these tests use.
func (p *testProblem) RestrictedProblem(s []int, v int, emit func(sol []int) bool) {
	base := []int{v}
	for _, u := range s {
		if p.adj[u][v] {
			base = append(base, u)
		}
	}
	slices.Sort(base)

	var cands []int
	for w := 0; w < p.n; w++ {
		if slices.Contains(base, w) {
			continue
		}
		all := true
		for _, b := range base {
			if !p.adj[w][b] {
				all = false
				break
			}
		}
		if all {
			cands = append(cands, w)
		}
	}

	for mask := 0; mask < 1<<len(cands); mask++ {
		sol := slices.Clone(base)
		for i, w := range cands {
			if mask&(1<<i) != 0 {
				sol = append(sol, w)
			}
		}
		if !p.IsGood(sol) {
			continue
		}
		maximal := true
		for i, w := range cands {
			if mask&(1<<i) != 0 {
				continue
			}
			if p.IsGood(append(slices.Clone(sol), w)) {
				maximal = false
				break
			}
		}
		if !maximal {
			continue
		}
		slices.Sort(sol)
		if !emit(sol) {
			return
		}
	}
}

// Common test graphs.

// triangle returns K_3 on {0,1,2}.
func triangle() *testProblem {
	return newTestProblem(3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
}

// path3 returns the path 0-1-2.
func path3() *testProblem {
	return newTestProblem(3, [][2]int{{0, 1}, {1, 2}})
}

// k4 returns the complete graph on four nodes.
func k4() *testProblem {
	return newTestProblem(4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
}

// cycle4 returns the 4-cycle 0-1-2-3-0.
func cycle4() *testProblem {
	return newTestProblem(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 3}})
}
