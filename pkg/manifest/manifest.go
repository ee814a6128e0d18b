// Package manifest loads TOML run manifests for the setwalk CLI.
//
// A manifest bundles everything one enumeration run needs - the input
// graph, the problem, run limits and output options - so runs are
// reproducible without long flag lists:
//
//	[graph]
//	path = "web.edges"
//	format = "edgelist"
//
//	[run]
//	problem = "cliques"
//	workers = 4
//
//	[output]
//	format = "json"
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	swerrors "github.com/pronte/setwalk/pkg/errors"
)

// Graph formats accepted in a manifest.
const (
	FormatJSON     = "json"
	FormatEdgeList = "edgelist"
)

// Output formats accepted in a manifest.
const (
	OutputLines = "lines"
	OutputJSON  = "json"
	OutputDOT   = "dot"
	OutputSVG   = "svg"
)

// Manifest is a complete run description.
type Manifest struct {
	Graph  GraphSource `toml:"graph"`
	Run    RunOptions  `toml:"run"`
	Output Output      `toml:"output"`
}

// GraphSource locates the input graph.
type GraphSource struct {
	// Path is the graph file, relative paths being resolved against the
	// manifest's directory.
	Path string `toml:"path"`

	// Format is "json" or "edgelist". Empty means inferred from the
	// file extension (.json → json, anything else → edgelist).
	Format string `toml:"format"`
}

// RunOptions bound and parallelize the enumeration.
type RunOptions struct {
	// Problem selects the problem instance. Currently "cliques".
	Problem string `toml:"problem"`

	// Workers is the number of parallel workers; 0 or 1 runs
	// sequentially.
	Workers int `toml:"workers"`

	// Limit stops the run after this many solutions; 0 means unlimited.
	Limit int `toml:"limit"`

	// NoCache disables the result cache for this run.
	NoCache bool `toml:"no_cache"`
}

// Output selects how solutions are written.
type Output struct {
	// Format is "lines", "json", "dot" or "svg".
	Format string `toml:"format"`

	// Path writes to a file instead of stdout when non-empty.
	Path string `toml:"path"`
}

// Load reads and validates a manifest file. Relative graph paths are
// resolved against the manifest's directory, and defaults are applied.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, swerrors.Wrap(swerrors.ErrCodeInvalidManifest, err, "parse manifest %s", path)
	}
	if m.Graph.Path == "" {
		return nil, swerrors.New(swerrors.ErrCodeInvalidManifest, "manifest %s: graph.path is required", path)
	}
	if !filepath.IsAbs(m.Graph.Path) {
		m.Graph.Path = filepath.Join(filepath.Dir(path), m.Graph.Path)
	}
	m.applyDefaults()
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Graph.Format == "" {
		if strings.EqualFold(filepath.Ext(m.Graph.Path), ".json") {
			m.Graph.Format = FormatJSON
		} else {
			m.Graph.Format = FormatEdgeList
		}
	}
	if m.Run.Problem == "" {
		m.Run.Problem = "cliques"
	}
	if m.Output.Format == "" {
		m.Output.Format = OutputLines
	}
}

func (m *Manifest) validate() error {
	switch m.Graph.Format {
	case FormatJSON, FormatEdgeList:
	default:
		return swerrors.New(swerrors.ErrCodeInvalidFormat, "unknown graph format %q", m.Graph.Format)
	}
	switch m.Output.Format {
	case OutputLines, OutputJSON, OutputDOT, OutputSVG:
	default:
		return swerrors.New(swerrors.ErrCodeInvalidFormat, "unknown output format %q", m.Output.Format)
	}
	if m.Run.Problem != "cliques" {
		return swerrors.New(swerrors.ErrCodeInvalidProblem, "unknown problem %q", m.Run.Problem)
	}
	if m.Run.Workers < 0 {
		return swerrors.New(swerrors.ErrCodeInvalidInput, "workers must be non-negative, got %d", m.Run.Workers)
	}
	if m.Run.Limit < 0 {
		return swerrors.New(swerrors.ErrCodeInvalidInput, "limit must be non-negative, got %d", m.Run.Limit)
	}
	return nil
}
