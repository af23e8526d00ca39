package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polyfold/polyfold/pkg/polyhedron"
	"github.com/polyfold/polyfold/pkg/skeleton"
)

// skeletonCommand creates the skeleton command.
func (c *CLI) skeletonCommand() *cobra.Command {
	var output, svgOutput string

	cmd := &cobra.Command{
		Use:   "skeleton [polyhedron.json | builtin:name]",
		Short: "Reconstruct vertices and the edge graph of a polyhedron",
		Long: `Reconstruct vertex identity from face adjacency and write the 1-skeleton.

The graph is written in .grh form: one "u v" line per edge, in edge-id order,
0-indexed. Built-in solids can be named as builtin:cube, builtin:tetrahedron
and so on.`,
		Example: `  # Print the skeleton of a cube
  polyfold skeleton builtin:cube

  # Write the edge list and a rendering
  polyfold skeleton prism.json -o prism.grh --svg prism.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePolyhedron,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSkeleton(cmd.Context(), args[0], output, svgOutput)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output .grh file (stdout if empty)")
	cmd.Flags().StringVar(&svgOutput, "svg", "", "also render the skeleton to an SVG file")

	return cmd
}

func (c *CLI) runSkeleton(ctx context.Context, input, output, svgOutput string) error {
	p, err := loadPolyhedron(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Skeleton(ctx, p)
	if err != nil {
		return fmt.Errorf("reconstruct %s: %w", input, err)
	}
	g := res.Reconstruction.Graph

	if err := writeOutput(output, func(w io.Writer) error { return skeleton.WriteGRH(g, w) }); err != nil {
		return fmt.Errorf("write skeleton: %w", err)
	}

	if svgOutput != "" {
		svg, err := g.RenderSVG(ctx, nil)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if err := os.WriteFile(svgOutput, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", svgOutput, err)
		}
	}

	if output == "" {
		return nil
	}
	printSuccess("Reconstructed skeleton")
	printStats(res.CacheHit,
		fmt.Sprintf("%d vertices", g.NumVertices),
		fmt.Sprintf("%d edges", g.NumEdges()),
		fmt.Sprintf("%d faces", p.NumFaces()),
		fmt.Sprintf("χ = %d", res.Reconstruction.EulerCharacteristic()))
	if !p.Closed() {
		printDetail("open surface: %d boundary edges", len(p.BoundaryEdges()))
	}
	printFile(output)
	if svgOutput != "" {
		printFile(svgOutput)
	}
	return nil
}

// loadPolyhedron reads a polyhedron file or resolves builtin:name.
func loadPolyhedron(input string) (*polyhedron.Polyhedron, error) {
	if name, ok := builtinName(input); ok {
		return polyhedron.Builtin(name)
	}
	p, err := polyhedron.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("load polyhedron %s: %w", input, err)
	}
	return p, nil
}

const builtinPrefix = "builtin:"

func builtinName(input string) (string, bool) {
	name, ok := strings.CutPrefix(input, builtinPrefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// completePolyhedron completes the first argument with built-in solid names
// and otherwise falls back to file completion.
func completePolyhedron(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var out []string
	for _, name := range polyhedron.BuiltinNames() {
		if strings.HasPrefix(builtinPrefix+name, toComplete) {
			out = append(out, builtinPrefix+name)
		}
	}
	if len(out) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
