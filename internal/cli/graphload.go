package cli

import (
	"path/filepath"
	"strings"

	"github.com/pronte/setwalk/pkg/graph"
	"github.com/pronte/setwalk/pkg/manifest"

	swerrors "github.com/pronte/setwalk/pkg/errors"
)

// loadGraph reads a graph file in the given format ("json", "edgelist",
// or "" to infer from the extension) and returns it alongside its
// canonical JSON bytes, which are what cache keys hash. Canonicalizing
// makes the same graph hit the same cache entry regardless of the file
// format it arrived in.
func loadGraph(path, format string) (*graph.Graph, []byte, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			format = manifest.FormatJSON
		} else {
			format = manifest.FormatEdgeList
		}
	}

	var (
		g   *graph.Graph
		err error
	)
	switch format {
	case manifest.FormatJSON:
		g, err = graph.ReadFile(path)
	case manifest.FormatEdgeList:
		g, err = graph.ReadEdgeListFile(path)
	default:
		return nil, nil, swerrors.New(swerrors.ErrCodeInvalidFormat, "unknown graph format %q", format)
	}
	if err != nil {
		return nil, nil, swerrors.Wrap(swerrors.ErrCodeInvalidGraph, err, "load graph %s", path)
	}

	canonical, err := graph.Marshal(g)
	if err != nil {
		return nil, nil, swerrors.Wrap(swerrors.ErrCodeInternal, err, "canonicalize graph %s", path)
	}
	return g, canonical, nil
}
