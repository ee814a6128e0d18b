package graph

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// jsonGraph is the wire representation of a graph.
// Edges are stored once per undirected pair with From < To.
type jsonGraph struct {
	Size  int      `json:"size"`
	Edges [][2]int `json:"edges"`
}

// Marshal converts a graph to JSON bytes.
// Edges are sorted with the smaller endpoint first for deterministic output.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *Graph, path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(g, f)
}

// Write writes a graph as JSON to an io.Writer.
func Write(g *Graph, w io.Writer) error {
	return writeTo(g, w)
}

// ReadFile reads a JSON file and returns the decoded graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON graph from an io.Reader.
func Read(r io.Reader) (*Graph, error) {
	return readFrom(r)
}

func writeTo(g *Graph, w io.Writer) error {
	out := jsonGraph{Size: g.Size(), Edges: [][2]int{}}
	for u := 0; u < g.Size(); u++ {
		for _, v := range g.Neighbors(u) {
			if u < v {
				out.Edges = append(out.Edges, [2]int{u, v})
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	g, err := New(data.Size)
	if err != nil {
		return nil, err
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e[0], e[1], err)
		}
	}
	return g, nil
}

// =============================================================================
// Edge-List Format
// =============================================================================

// ReadEdgeList parses the plain text edge-list format: one "u v" pair
// per line, whitespace separated. Lines starting with '#' and blank
// lines are skipped. The ground-set size is 1 + the largest node seen,
// or the size given by an optional leading "n <size>" header line,
// whichever is larger.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	type edge struct{ u, v int }
	var (
		edges   []edge
		size    int
		scanner = bufio.NewScanner(r)
		lineno  = 0
	)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "n" {
			var n int
			if _, err := fmt.Sscanf(fields[1], "%d", &n); err != nil {
				return nil, fmt.Errorf("line %d: bad size header %q", lineno, line)
			}
			if n > size {
				size = n
			}
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"u v\", got %q", lineno, line)
		}
		var u, v int
		if _, err := fmt.Sscanf(fields[0], "%d", &u); err != nil {
			return nil, fmt.Errorf("line %d: bad node %q", lineno, fields[0])
		}
		if _, err := fmt.Sscanf(fields[1], "%d", &v); err != nil {
			return nil, fmt.Errorf("line %d: bad node %q", lineno, fields[1])
		}
		if u >= size {
			size = u + 1
		}
		if v >= size {
			size = v + 1
		}
		edges = append(edges, edge{u, v})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	g, err := New(size)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := g.AddEdge(e.u, e.v); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.u, e.v, err)
		}
	}
	return g, nil
}

// ReadEdgeListFile reads an edge-list file from disk.
func ReadEdgeListFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEdgeList(f)
}
