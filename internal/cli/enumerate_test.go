package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pronte/setwalk/pkg/manifest"
)

func writeTempGraph(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write graph: %v", err)
	}
	return path
}

func TestLoadGraph_EdgeList(t *testing.T) {
	path := writeTempGraph(t, "g.edges", "0 1\n1 2\n")

	g, canonical, err := loadGraph(path, "")
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}
	if g.Size() != 3 {
		t.Errorf("Size() = %d, want 3", g.Size())
	}
	if len(canonical) == 0 {
		t.Error("canonical bytes are empty")
	}
}

func TestLoadGraph_JSONByExtension(t *testing.T) {
	path := writeTempGraph(t, "g.json", `{"size": 2, "edges": [[0, 1]]}`)

	g, _, err := loadGraph(path, "")
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}
	if !g.Adjacent(0, 1) {
		t.Error("edge 0-1 missing")
	}
}

func TestLoadGraph_CanonicalBytesMatchAcrossFormats(t *testing.T) {
	edgePath := writeTempGraph(t, "g.edges", "1 0\n")
	jsonPath := writeTempGraph(t, "g.json", `{"size": 2, "edges": [[0, 1]]}`)

	_, a, err := loadGraph(edgePath, "")
	if err != nil {
		t.Fatalf("loadGraph(edges) error: %v", err)
	}
	_, b, err := loadGraph(jsonPath, "")
	if err != nil {
		t.Fatalf("loadGraph(json) error: %v", err)
	}

	if string(a) != string(b) {
		t.Error("the same graph in different formats should canonicalize identically")
	}
}

func TestLoadGraph_UnknownFormat(t *testing.T) {
	path := writeTempGraph(t, "g.edges", "0 1\n")

	if _, _, err := loadGraph(path, "graphml"); err == nil {
		t.Error("loadGraph() = nil error for unknown format")
	}
}

func TestEnumerateAll_Limit(t *testing.T) {
	path := writeTempGraph(t, "g.edges", "0 1\n2 3\n4 5\n")
	g, _, err := loadGraph(path, "")
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}

	res, err := enumerateAll(context.Background(), g, &enumerateOpts{limit: 2})
	if err != nil {
		t.Fatalf("enumerateAll() error: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want limit 2", res.Count)
	}
}

func TestEnumerateAll_SortedOutput(t *testing.T) {
	path := writeTempGraph(t, "g.edges", "4 5\n0 1\n2 3\n")
	g, _, err := loadGraph(path, "")
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}

	res, err := enumerateAll(context.Background(), g, &enumerateOpts{workers: 3})
	if err != nil {
		t.Fatalf("enumerateAll() error: %v", err)
	}

	want := [][]int{{0, 1}, {2, 3}, {4, 5}}
	if len(res.Solutions) != len(want) {
		t.Fatalf("Solutions = %v, want %v", res.Solutions, want)
	}
	for i := range want {
		if !slices.Equal(res.Solutions[i], want[i]) {
			t.Errorf("Solutions[%d] = %v, want %v", i, res.Solutions[i], want[i])
		}
	}
}

func TestWriteResult_JSONFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.json")
	res := &runResult{Count: 1, Solutions: [][]int{{0, 1}}}

	opts := &enumerateOpts{outFormat: manifest.OutputJSON, outPath: outPath}
	if err := writeResult(opts, res); err != nil {
		t.Fatalf("writeResult() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got runResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if got.Count != 1 || len(got.Solutions) != 1 {
		t.Errorf("round-tripped result = %+v, want %+v", got, res)
	}
}

func TestWriteResult_LinesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	res := &runResult{Count: 2, Solutions: [][]int{{0, 1}, {1, 2}}}

	opts := &enumerateOpts{outFormat: manifest.OutputLines, outPath: outPath}
	if err := writeResult(opts, res); err != nil {
		t.Fatalf("writeResult() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "0 1\n1 2\n"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestWriteTree_DOTFile(t *testing.T) {
	graphPath := writeTempGraph(t, "g.edges", "0 1\n1 2\n")
	g, _, err := loadGraph(graphPath, "")
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "tree.dot")
	opts := &enumerateOpts{outFormat: manifest.OutputDOT, outPath: outPath}
	if err := writeTree(context.Background(), g, opts); err != nil {
		t.Fatalf("writeTree() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph enumeration {") {
		t.Errorf("DOT output missing header: %q", dot[:min(len(dot), 40)])
	}
	for _, label := range []string{`"{0 1}"`, `"{1 2}"`} {
		if !strings.Contains(dot, label) {
			t.Errorf("DOT output missing label %s", label)
		}
	}
}

func TestWriteTree_SVGRequiresOutPath(t *testing.T) {
	graphPath := writeTempGraph(t, "g.edges", "0 1\n")
	g, _, err := loadGraph(graphPath, "")
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}

	opts := &enumerateOpts{outFormat: manifest.OutputSVG}
	if err := writeTree(context.Background(), g, opts); err == nil {
		t.Error("writeTree() = nil error for svg without an output path")
	}
}

func TestWriteResult_UnknownFormat(t *testing.T) {
	opts := &enumerateOpts{outFormat: "yaml"}
	if err := writeResult(opts, &runResult{}); err == nil {
		t.Error("writeResult() = nil error for unknown format")
	}
}
