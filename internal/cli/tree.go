package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pronte/setwalk/pkg/commutable"
	"github.com/pronte/setwalk/pkg/problems/cliques"
	"github.com/pronte/setwalk/pkg/treedot"
)

func newTreeCmd() *cobra.Command {
	var (
		graphPath   string
		graphFormat string
		svg         bool
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the enumeration tree as DOT or SVG",
		Long: `Tree walks the whole enumeration forest and renders it: every solution
becomes a node, every parent-child step an edge. DOT goes to stdout by
default; --svg renders via Graphviz and requires --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if graphPath == "" {
				return fmt.Errorf("--graph is required")
			}
			logger := loggerFromContext(cmd.Context())

			g, _, err := loadGraph(graphPath, graphFormat)
			if err != nil {
				return err
			}
			sys := commutable.New(cliques.New(g))

			if !svg {
				dot := treedot.ToDOT(sys)
				if outPath != "" {
					if err := os.WriteFile(outPath, []byte(dot), 0644); err != nil {
						return fmt.Errorf("write %s: %w", outPath, err)
					}
					printFile(outPath)
					return nil
				}
				fmt.Print(dot)
				return nil
			}

			if outPath == "" {
				return fmt.Errorf("--svg requires --out")
			}
			tick := newProgress(logger)
			data, err := treedot.RenderSVG(cmd.Context(), sys)
			if err != nil {
				return err
			}
			tick.done("Rendered enumeration tree")
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			printFile(outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "input graph file")
	cmd.Flags().StringVar(&graphFormat, "graph-format", "", "graph format: json or edgelist (default: by extension)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to file")

	return cmd
}
