// Package treedot renders the enumeration tree of a commutable system
// as Graphviz DOT or SVG.
//
// Every solution the engine emits becomes a node labeled with its node
// set; parent-child edges follow the tree walker. The output makes the
// reverse-search structure visible, which is mostly useful for
// documentation and for debugging problem implementations.
package treedot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pronte/setwalk/pkg/commutable"
)

// ToDOT walks the whole enumeration forest of sys and returns it as a
// DOT digraph. Roots have no incoming edge; every other solution has
// exactly one, pointing from its parent.
//
// The node label shows the solution's node sequence only; the level
// vector is not shown.
func ToDOT(sys *commutable.System) string {
	var buf bytes.Buffer
	buf.WriteString("digraph enumeration {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	id := 0
	for i := 0; i < sys.MaxRoots(); i++ {
		sys.GetRoot(i, func(root *commutable.TreeNode) bool {
			id = writeNode(&buf, sys, root, -1, id)
			return true
		})
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeNode emits node and its subtree, connecting it to parentID when
// parentID is non-negative. It returns the next free node id.
func writeNode(buf *bytes.Buffer, sys *commutable.System, node *commutable.TreeNode, parentID, id int) int {
	nodeID := id
	fmt.Fprintf(buf, "  n%d [label=%q];\n", nodeID, label(node))
	if parentID >= 0 {
		fmt.Fprintf(buf, "  n%d -> n%d;\n", parentID, nodeID)
	}
	next := id + 1
	sys.ListChildren(node, func(child *commutable.TreeNode) bool {
		next = writeNode(buf, sys, child, nodeID, next)
		return true
	})
	return next
}

func label(node *commutable.TreeNode) string {
	parts := make([]string, len(node.Nodes))
	for i, v := range node.Nodes {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// RenderSVG renders the enumeration tree as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses
// Graphviz to render it. The returned bytes are a complete SVG document
// suitable for embedding in HTML or saving to a file. Note that the
// whole forest is walked eagerly; use this on instances of drawable
// size.
func RenderSVG(ctx context.Context, sys *commutable.System) ([]byte, error) {
	dot := ToDOT(sys)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
