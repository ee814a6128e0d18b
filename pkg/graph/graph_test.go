package graph

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestNew_NegativeSize(t *testing.T) {
	_, err := New(-1)
	if !errors.Is(err, ErrNegativeSize) {
		t.Errorf("New(-1) error = %v, want ErrNegativeSize", err)
	}
}

func TestAddEdge_Validation(t *testing.T) {
	g := MustNew(3)

	if err := g.AddEdge(0, 3); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("AddEdge(0, 3) error = %v, want ErrInvalidNode", err)
	}
	if err := g.AddEdge(-1, 0); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("AddEdge(-1, 0) error = %v, want ErrInvalidNode", err)
	}
	if err := g.AddEdge(1, 1); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("AddEdge(1, 1) error = %v, want ErrSelfLoop", err)
	}
}

func TestAddEdge_Idempotent(t *testing.T) {
	g := MustNew(2)
	g.AddEdge(0, 1)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0)

	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
}

func TestNeighbors_Sorted(t *testing.T) {
	g := MustNew(5)
	g.AddEdge(2, 4)
	g.AddEdge(2, 0)
	g.AddEdge(2, 3)

	if got, want := g.Neighbors(2), []int{0, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Neighbors(2) = %v, want %v", got, want)
	}
	if got := g.Neighbors(1); got != nil {
		t.Errorf("Neighbors(1) = %v, want nil", got)
	}
	if got := g.Neighbors(9); got != nil {
		t.Errorf("Neighbors(9) = %v, want nil for out-of-range", got)
	}
}

func TestCommonNeighbors(t *testing.T) {
	g := MustNew(4)
	g.AddEdge(0, 2)
	g.AddEdge(1, 2)
	g.AddEdge(0, 3)
	g.AddEdge(1, 3)
	g.AddEdge(0, 1)

	if got, want := g.CommonNeighbors([]int{0, 1}), []int{2, 3}; !slices.Equal(got, want) {
		t.Errorf("CommonNeighbors(0,1) = %v, want %v", got, want)
	}
	if got := g.CommonNeighbors(nil); got != nil {
		t.Errorf("CommonNeighbors(nil) = %v, want nil", got)
	}
}

func TestIsClique(t *testing.T) {
	g := MustNew(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(0, 2)

	tests := []struct {
		set  []int
		want bool
	}{
		{nil, true},
		{[]int{3}, true},
		{[]int{0, 1}, true},
		{[]int{0, 1, 2}, true},
		{[]int{0, 1, 3}, false},
		{[]int{1, 1}, false}, // duplicates are not cliques
	}
	for _, tc := range tests {
		if got := g.IsClique(tc.set); got != tc.want {
			t.Errorf("IsClique(%v) = %v, want %v", tc.set, got, tc.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := MustNew(4)
	g.AddEdge(0, 1)
	g.AddEdge(2, 3)
	g.AddEdge(1, 2)

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	got, err := Read(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if got.Size() != g.Size() {
		t.Errorf("Size() = %d, want %d", got.Size(), g.Size())
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount() = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
	if !got.Adjacent(1, 2) || !got.Adjacent(0, 1) || !got.Adjacent(2, 3) {
		t.Error("round-tripped graph lost edges")
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	build := func(order [][2]int) []byte {
		g := MustNew(3)
		for _, e := range order {
			g.AddEdge(e[0], e[1])
		}
		data, _ := Marshal(g)
		return data
	}

	a := build([][2]int{{0, 1}, {1, 2}})
	b := build([][2]int{{2, 1}, {1, 0}})

	if string(a) != string(b) {
		t.Error("Marshal() output depends on edge insertion order")
	}
}

func TestReadEdgeList(t *testing.T) {
	input := `# comment
n 6
0 1
1 2

4 3
`
	g, err := ReadEdgeList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadEdgeList() error: %v", err)
	}

	if got := g.Size(); got != 6 {
		t.Errorf("Size() = %d, want 6 from header", got)
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
	if !g.Adjacent(3, 4) {
		t.Error("edge 4 3 missing")
	}
}

func TestReadEdgeList_SizeFromNodes(t *testing.T) {
	g, err := ReadEdgeList(strings.NewReader("0 7\n"))
	if err != nil {
		t.Fatalf("ReadEdgeList() error: %v", err)
	}
	if got := g.Size(); got != 8 {
		t.Errorf("Size() = %d, want 8", got)
	}
}

func TestReadEdgeList_Malformed(t *testing.T) {
	cases := []string{
		"0 1 2\n",
		"a b\n",
		"0\n",
	}
	for _, input := range cases {
		if _, err := ReadEdgeList(strings.NewReader(input)); err == nil {
			t.Errorf("ReadEdgeList(%q) = nil error, want failure", input)
		}
	}
}
