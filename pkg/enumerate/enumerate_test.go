package enumerate

import (
	"context"
	"slices"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/pronte/setwalk/pkg/commutable"
	"github.com/pronte/setwalk/pkg/graph"
	"github.com/pronte/setwalk/pkg/problems/cliques"
)

// bowtie is two triangles sharing node 2: solutions {0,1,2} and {2,3,4}.
func bowtie() *graph.Graph {
	g := graph.MustNew(5)
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}, {2, 4}, {3, 4}} {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func normalize(sols []commutable.Solution) [][]int {
	out := make([][]int, len(sols))
	for i, s := range sols {
		out[i] = slices.Clone(s)
		slices.Sort(out[i])
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}

func TestVisit_EmitsEverySolutionOnce(t *testing.T) {
	g := bowtie()
	sys := commutable.New(cliques.New(g))

	got := normalize(Collect(sys))

	want := [][]int{{0, 1, 2}, {2, 3, 4}}
	if len(got) != len(want) {
		t.Fatalf("Collect() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("solution %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCount(t *testing.T) {
	sys := commutable.New(cliques.New(bowtie()))

	if got := Count(sys); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestVisit_CancellationIsPrompt(t *testing.T) {
	sys := commutable.New(cliques.New(bowtie()))

	calls := 0
	Visit(sys, func(*commutable.TreeNode) bool {
		calls++
		return calls < 2
	})

	if calls != 2 {
		t.Errorf("callback invoked %d times, want exactly 2", calls)
	}
}

func TestParallel_MatchesSequential(t *testing.T) {
	g := bowtie()
	factory := func() *commutable.System {
		return commutable.New(cliques.New(g))
	}

	sequential := normalize(Collect(factory()))

	for _, workers := range []int{1, 2, 4, 8} {
		parallel, err := CollectParallel(context.Background(), factory, workers)
		if err != nil {
			t.Fatalf("CollectParallel(workers=%d) error: %v", workers, err)
		}
		got := normalize(parallel)
		if len(got) != len(sequential) {
			t.Errorf("workers=%d: got %v, want %v", workers, got, sequential)
			continue
		}
		for i := range sequential {
			if !slices.Equal(got[i], sequential[i]) {
				t.Errorf("workers=%d: solution %d = %v, want %v", workers, i, got[i], sequential[i])
			}
		}
	}
}

func TestParallel_InvalidWorkers(t *testing.T) {
	factory := func() *commutable.System {
		return commutable.New(cliques.New(bowtie()))
	}

	if err := Parallel(context.Background(), factory, 0, func(*commutable.TreeNode) bool { return true }); err == nil {
		t.Error("Parallel(workers=0) = nil error, want failure")
	}
}

func TestParallel_StopsOnCallbackFalse(t *testing.T) {
	// Large enough instance that workers would keep going if the stop
	// signal were ignored: many isolated edges, one solution each.
	g := graph.MustNew(40)
	for i := 0; i < 40; i += 2 {
		g.AddEdge(i, i+1)
	}
	factory := func() *commutable.System {
		return commutable.New(cliques.New(g))
	}

	var calls atomic.Int32
	err := Parallel(context.Background(), factory, 4, func(*commutable.TreeNode) bool {
		calls.Add(1)
		return false
	})
	if err != nil {
		t.Fatalf("Parallel() error: %v", err)
	}

	// Each of the four workers may be mid-callback when the stop lands,
	// so a small overshoot is allowed - but nothing near the full 20.
	if got := calls.Load(); got > 4 {
		t.Errorf("callback invoked %d times after stop, want at most one per worker", got)
	}
}

func TestParallel_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	factory := func() *commutable.System {
		return commutable.New(cliques.New(bowtie()))
	}

	err := Parallel(ctx, factory, 2, func(*commutable.TreeNode) bool { return true })
	if err == nil {
		t.Error("Parallel() with canceled context = nil error, want context error")
	}
}
