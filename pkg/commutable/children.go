package commutable

import "slices"

// validSeeds invokes cb for each element of sol that passes the seed
// test and is strictly smaller than the boundary candidate. The strict
// inequality is what makes every child reachable from exactly one
// (cand, seed) pair; relaxing it would duplicate solutions.
func (sys *System) validSeeds(sol []int, cand int, cb func(seed int) bool) {
	for _, seed := range sol {
		if cand <= seed {
			continue
		}
		if !sys.isSeed(seed, sol) {
			continue
		}
		if !cb(seed) {
			return
		}
	}
}

// children enumerates the children of the canonical solution (s, level)
// and reports whether enumeration ran to completion (false means the
// callback asked to stop).
//
// For every boundary candidate and every restricted-problem solution,
// each admissible seed yields at most one child attempt:
//
//  1. truncate the restricted solution to the prefix ending at the
//     candidate (getPrefix), discarding seeds that are not the minimum
//     of their prefix;
//  2. complete the prefix forward; a seed change or an insertion below
//     the prefix's last (level, node) pair means the same solution is
//     reached from an earlier point in the tree, so the attempt is
//     dropped;
//  3. verify the completion still starts with the prefix;
//  4. verify the parent: completing the prefix minus its last element,
//     confined to s, must reproduce s exactly - this pins the child to
//     exactly one parent;
//  5. when the restricted problem may return siblings, verify this
//     solution is the canonical one by completing the prefix inside
//     the parent solution plus the candidate.
//
// Failed checks are silent skips; only problem-interface bugs surface,
// as panics.
func (sys *System) children(s []int, level []int32, cb func(nodes []int, levels []int32) bool) bool {
	notDone := true
	sys.restrictedCands(s, level, func(cand int) bool {
		sys.prob.RestrictedProblem(s, cand, func(sol []int) bool {
			sys.validSeeds(sol, cand, func(seed int) bool {
				core, clvl := sys.getPrefix(slices.Clone(sol), seed, cand)
				if slices.Min(core) != seed {
					return true
				}

				child := slices.Clone(core)
				lvl := slices.Clone(clvl)
				last := len(core) - 1
				child, lvl, ok := sys.Complete(child, lvl, CompleteOptions{
					FailBelow: &LevelNode{Level: clvl[last], Node: core[last]},
				})
				if !ok {
					return true
				}
				if len(child) < len(core) {
					return true
				}
				if !slices.Equal(child[:len(core)], core) {
					return true
				}

				// Completing the core without its last element, confined
				// to s, must reproduce s itself: both sides are
				// canonical, so plain equality compares the sets.
				p := slices.Clone(core[:last])
				plvl := slices.Clone(clvl[:last])
				p, _, ok = sys.Complete(p, plvl, CompleteOptions{Target: s})
				if !ok || !slices.Equal(p, s) {
					return true
				}

				if sys.restrMultiple() {
					ground := append(p, cand)
					_, _, ok = sys.Complete(slices.Clone(core), slices.Clone(clvl), CompleteOptions{
						Ground: ground,
						Target: sol,
					})
					if !ok {
						return true
					}
				}

				if !cb(child, lvl) {
					notDone = false
				}
				return notDone
			})
			return notDone
		})
		return notDone
	})
	return notDone
}
