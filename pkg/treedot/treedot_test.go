package treedot

import (
	"strings"
	"testing"

	"github.com/pronte/setwalk/pkg/commutable"
	"github.com/pronte/setwalk/pkg/graph"
	"github.com/pronte/setwalk/pkg/problems/cliques"
)

func pathSystem() *commutable.System {
	g := graph.MustNew(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	return commutable.New(cliques.New(g))
}

func TestToDOT_ContainsSolutions(t *testing.T) {
	dot := ToDOT(pathSystem())

	if !strings.HasPrefix(dot, "digraph enumeration {") {
		t.Errorf("DOT output missing header: %q", dot[:40])
	}
	for _, label := range []string{`"{0 1}"`, `"{1 2}"`} {
		if !strings.Contains(dot, label) {
			t.Errorf("DOT output missing label %s:\n%s", label, dot)
		}
	}
}

func TestToDOT_ParentChildEdge(t *testing.T) {
	dot := ToDOT(pathSystem())

	// {1,2} is the single child of the single root {0,1}.
	if !strings.Contains(dot, "n0 -> n1;") {
		t.Errorf("DOT output missing parent-child edge:\n%s", dot)
	}
}

func TestToDOT_ForestWithoutEdges(t *testing.T) {
	g := graph.MustNew(3)
	sys := commutable.New(cliques.New(g))

	dot := ToDOT(sys)

	if strings.Contains(dot, "->") {
		t.Errorf("DOT output of singleton forest contains edges:\n%s", dot)
	}
	for _, label := range []string{`"{0}"`, `"{1}"`, `"{2}"`} {
		if !strings.Contains(dot, label) {
			t.Errorf("DOT output missing root %s:\n%s", label, dot)
		}
	}
}
