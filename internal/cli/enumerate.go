package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pronte/setwalk/pkg/cache"
	"github.com/pronte/setwalk/pkg/commutable"
	"github.com/pronte/setwalk/pkg/enumerate"
	"github.com/pronte/setwalk/pkg/graph"
	"github.com/pronte/setwalk/pkg/manifest"
	"github.com/pronte/setwalk/pkg/problems/cliques"
	"github.com/pronte/setwalk/pkg/treedot"
)

// runResult is the cacheable outcome of an enumeration run.
type runResult struct {
	Count     int     `json:"count"`
	Solutions [][]int `json:"solutions"`
}

// enumerateOpts collects the flags of the enumerate command.
type enumerateOpts struct {
	graphPath   string
	graphFormat string
	manifest    string
	problem     string
	workers     int
	limit       int
	noCache     bool
	cacheTTL    time.Duration
	outFormat   string
	outPath     string
	watch       bool
}

func newEnumerateCmd() *cobra.Command {
	var opts enumerateOpts

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "List all maximal solutions of an instance",
		Long: `Enumerate lists every maximal solution of a set-system instance over a
graph exactly once. Results are cached by graph content and run options;
repeated runs on the same input are served from cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.manifest != "" {
				m, err := manifest.Load(opts.manifest)
				if err != nil {
					return err
				}
				opts.applyManifest(m)
			}
			if opts.graphPath == "" {
				return fmt.Errorf("--graph or --manifest is required")
			}
			return runEnumerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.graphPath, "graph", "g", "", "input graph file")
	cmd.Flags().StringVar(&opts.graphFormat, "graph-format", "", "graph format: json or edgelist (default: by extension)")
	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "TOML run manifest")
	cmd.Flags().StringVar(&opts.problem, "problem", "cliques", "problem instance")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "parallel workers (roots are partitioned)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "stop after this many solutions (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", 24*time.Hour, "result cache time-to-live")
	cmd.Flags().StringVarP(&opts.outFormat, "format", "f", manifest.OutputLines, "output format: lines, json, dot or svg")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "show live progress while enumerating")

	return cmd
}

// applyManifest copies manifest values into the options. Flags the user
// set explicitly are not tracked separately; a manifest simply is the
// run description.
func (o *enumerateOpts) applyManifest(m *manifest.Manifest) {
	o.graphPath = m.Graph.Path
	o.graphFormat = m.Graph.Format
	o.problem = m.Run.Problem
	if m.Run.Workers > 0 {
		o.workers = m.Run.Workers
	}
	if m.Run.Limit > 0 {
		o.limit = m.Run.Limit
	}
	if m.Run.NoCache {
		o.noCache = true
	}
	if m.Output.Format != "" {
		o.outFormat = m.Output.Format
	}
	if m.Output.Path != "" {
		o.outPath = m.Output.Path
	}
}

func runEnumerate(ctx context.Context, opts *enumerateOpts) error {
	logger := loggerFromContext(ctx).With("run", uuid.NewString()[:8])

	g, canonical, err := loadGraph(opts.graphPath, opts.graphFormat)
	if err != nil {
		return err
	}
	logger.Debug("graph loaded", "nodes", g.Size(), "edges", g.EdgeCount())

	if opts.problem != "cliques" {
		return fmt.Errorf("unknown problem %q", opts.problem)
	}

	// Tree formats render the enumeration forest itself; no solution
	// list is produced, so the result cache does not apply.
	if opts.outFormat == manifest.OutputDOT || opts.outFormat == manifest.OutputSVG {
		return writeTree(ctx, g, opts)
	}

	key := cache.ResultKey(cache.GraphHash(canonical), cache.ResultKeyOpts{
		Problem: opts.problem,
		Limit:   opts.limit,
	})

	store := resultCache(opts.noCache, logger)
	defer store.Close()

	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		var res runResult
		if err := json.Unmarshal(data, &res); err == nil {
			logger.Debug("cache hit", "solutions", res.Count)
			if err := writeResult(opts, &res); err != nil {
				return err
			}
			printStats(g.Size(), res.Count, true)
			return nil
		}
	}

	tick := newProgress(logger)
	res, err := enumerateAll(ctx, g, opts)
	if err != nil {
		return err
	}
	tick.done(fmt.Sprintf("Enumerated %d solutions", res.Count))

	if data, err := json.Marshal(res); err == nil {
		if err := store.Set(ctx, key, data, opts.cacheTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	if err := writeResult(opts, res); err != nil {
		return err
	}
	printStats(g.Size(), res.Count, false)
	return nil
}

// enumerateAll runs the actual enumeration, sequentially or across
// workers, honoring the solution limit.
func enumerateAll(ctx context.Context, g *graph.Graph, opts *enumerateOpts) (*runResult, error) {
	newSystem := func() *commutable.System {
		return commutable.New(cliques.New(g))
	}

	var (
		mu        sync.Mutex
		solutions [][]int
	)
	collect := func(node *commutable.TreeNode) bool {
		mu.Lock()
		defer mu.Unlock()
		if opts.limit > 0 && len(solutions) >= opts.limit {
			return false
		}
		solutions = append(solutions, append([]int(nil), node.Nodes...))
		if opts.limit > 0 && len(solutions) >= opts.limit {
			return false
		}
		return true
	}

	var reporter *watchReporter
	cb := collect
	if opts.watch {
		reporter = startWatch(ctx)
		cb = func(node *commutable.TreeNode) bool {
			ok := collect(node)
			reporter.bump()
			return ok
		}
	}

	var err error
	if opts.workers > 1 {
		err = enumerate.Parallel(ctx, newSystem, opts.workers, cb)
	} else {
		enumerate.Visit(newSystem(), cb)
	}
	if reporter != nil {
		reporter.stop()
	}
	if err != nil {
		return nil, err
	}

	// Deterministic output order regardless of worker interleaving.
	sort.Slice(solutions, func(i, j int) bool {
		a, b := solutions[i], solutions[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})

	return &runResult{Count: len(solutions), Solutions: solutions}, nil
}

// writeResult writes the run result in the configured format.
func writeResult(opts *enumerateOpts, res *runResult) error {
	var out strings.Builder
	switch opts.outFormat {
	case manifest.OutputLines:
		for _, sol := range res.Solutions {
			parts := make([]string, len(sol))
			for i, v := range sol {
				parts[i] = fmt.Sprintf("%d", v)
			}
			out.WriteString(strings.Join(parts, " "))
			out.WriteByte('\n')
		}
	case manifest.OutputJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		out.Write(data)
		out.WriteByte('\n')
	default:
		return fmt.Errorf("unknown output format %q (enumerate supports lines, json, dot and svg)", opts.outFormat)
	}

	if opts.outPath != "" {
		if err := os.WriteFile(opts.outPath, []byte(out.String()), 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.outPath, err)
		}
		printFile(opts.outPath)
		return nil
	}
	fmt.Print(out.String())
	return nil
}

// writeTree renders the enumeration tree for the dot and svg output
// formats. DOT goes to the output path or stdout; SVG rendering needs
// a file to write to.
func writeTree(ctx context.Context, g *graph.Graph, opts *enumerateOpts) error {
	sys := commutable.New(cliques.New(g))

	switch opts.outFormat {
	case manifest.OutputDOT:
		dot := treedot.ToDOT(sys)
		if opts.outPath == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(opts.outPath, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.outPath, err)
		}
		printFile(opts.outPath)
		return nil

	case manifest.OutputSVG:
		if opts.outPath == "" {
			return fmt.Errorf("svg output requires --out (or output.path in the manifest)")
		}
		data, err := treedot.RenderSVG(ctx, sys)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.outPath, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.outPath, err)
		}
		printFile(opts.outPath)
		return nil
	}
	return fmt.Errorf("unknown tree format %q", opts.outFormat)
}
