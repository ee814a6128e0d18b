package enumerate

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pronte/setwalk/pkg/commutable"
)

// Parallel enumerates every solution using the given number of workers.
// Roots are partitioned round-robin; worker w handles the subtrees of
// roots w, w+workers, w+2·workers, …, each on an engine built by its
// own Factory call. Subtrees are disjoint, so the union of the workers'
// emissions is still duplicate-free.
//
// cb is invoked concurrently from all workers and must be safe for
// concurrent use. Returning false from cb stops every worker at its
// next root or child boundary. Parallel returns when all workers are
// done. It returns an error when workers < 1 or when the context ends
// before the run does.
func Parallel(ctx context.Context, newSystem Factory, workers int, cb func(node *commutable.TreeNode) bool) error {
	if workers < 1 {
		return fmt.Errorf("enumerate: workers must be >= 1, got %d", workers)
	}

	var stopped atomic.Bool
	guard := func(node *commutable.TreeNode) bool {
		if stopped.Load() {
			return false
		}
		if !cb(node) {
			stopped.Store(true)
			return false
		}
		return true
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			sys := newSystem()
			for i := w; i < sys.MaxRoots(); i += workers {
				if stopped.Load() {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				sys.GetRoot(i, func(root *commutable.TreeNode) bool {
					return descend(sys, root, guard)
				})
			}
			return nil
		})
	}
	return g.Wait()
}

// CollectParallel enumerates with Parallel and gathers every solution
// item into a slice. Order is unspecified.
func CollectParallel(ctx context.Context, newSystem Factory, workers int) ([]commutable.Solution, error) {
	var (
		mu  sync.Mutex
		out []commutable.Solution
	)
	err := Parallel(ctx, newSystem, workers, func(node *commutable.TreeNode) bool {
		item := commutable.Solution(slices.Clone(node.Nodes))
		mu.Lock()
		out = append(out, item)
		mu.Unlock()
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
