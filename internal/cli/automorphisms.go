package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/polyfold/polyfold/pkg/pipeline"
	"github.com/polyfold/polyfold/pkg/skeleton"
	"github.com/polyfold/polyfold/pkg/symmetry"
)

// automorphismsCommand creates the automorphisms command.
func (c *CLI) automorphismsCommand() *cobra.Command {
	var (
		output  string
		browse  bool
		show    int
		refresh bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "automorphisms [polyhedron.json | graph.grh | builtin:name]",
		Short: "Enumerate the automorphism group of a polyhedron's skeleton",
		Long: `Enumerate every automorphism of the 1-skeleton by backtracking search.

Each automorphism is reported with its induced edge permutation and a zero
flag marking symmetries that fix no spanning tree. The artifact written with
-o is the input of the spanning-tree counter.

Input may be a polyhedron (the skeleton is reconstructed first) or a .grh
edge list.`,
		Example: `  # Summary and the first rows of the table
  polyfold automorphisms builtin:cube

  # Write the artifact for the counter
  polyfold automorphisms prism.json -o automorphisms.json

  # Page through every automorphism
  polyfold automorphisms prism.grh --browse`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePolyhedron,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Refresh = refresh
			return c.runAutomorphisms(cmd.Context(), args[0], opts, output, browse, show)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the automorphism artifact to this file")
	cmd.Flags().BoolVar(&browse, "browse", false, "browse automorphisms interactively")
	cmd.Flags().IntVar(&show, "show", 8, "table rows to print (0 for none)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "search timeout (overrides config; 0 keeps config)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runAutomorphisms(ctx context.Context, input string, flags pipeline.Options, output string, browse bool, show int) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := c.loadGraph(ctx, runner, input)
	if err != nil {
		return err
	}

	opts := c.pipelineOptions()
	opts.Refresh = flags.Refresh
	if flags.Timeout > 0 {
		opts.Timeout = flags.Timeout
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Searching automorphisms of %d vertices...", g.NumVertices))
	opts.Progress = func(done, total, found int) {
		spinner.SetMessage("Searching automorphisms... %d/%d branches, %d found", done, total, found)
	}
	spinner.Start()

	prog := newProgress(c.Logger)
	res, err := runner.Automorphisms(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Automorphism search failed")
		return fmt.Errorf("automorphisms: %w", err)
	}
	spinner.Stop()
	prog.done("automorphism stage finished", "run", res.RunID)

	r := res.Result
	printSuccess("Automorphism group of order %s", StyleHighlight.Render(fmt.Sprint(r.GroupOrder())))
	printStats(res.CacheHit,
		fmt.Sprintf("%d vertices", r.NumVertices),
		fmt.Sprintf("%d edges", r.NumEdges),
		fmt.Sprintf("%d zero-flagged", r.ZeroCount()))
	for _, w := range r.Warnings {
		printWarning("%s", w)
	}

	if output != "" {
		if err := symmetry.WriteArtifactFile(output, r.Artifact()); err != nil {
			return fmt.Errorf("write artifact: %w", err)
		}
		printFile(output)
	}

	if browse {
		_, err := tea.NewProgram(newEntryBrowser(r.Entries), tea.WithContext(ctx)).Run()
		return err
	}
	if show > 0 && len(r.Entries) > 0 {
		fmt.Println(entryTable(r.Entries, firstIDs(min(show, len(r.Entries))), 48, -1).Render())
		if show < len(r.Entries) {
			printDetail("%d more; use --browse to see all", len(r.Entries)-show)
		}
	}
	return nil
}

// loadGraph returns the skeleton of input: .grh files are read directly,
// anything else is reconstructed as a polyhedron.
func (c *CLI) loadGraph(ctx context.Context, runner *pipeline.Runner, input string) (*skeleton.Graph, error) {
	if strings.EqualFold(filepath.Ext(input), ".grh") {
		g, err := skeleton.ReadGRHFile(input)
		if err != nil {
			return nil, fmt.Errorf("load graph %s: %w", input, err)
		}
		return g, nil
	}
	p, err := loadPolyhedron(input)
	if err != nil {
		return nil, err
	}
	sk, err := runner.Skeleton(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: %w", input, err)
	}
	return sk.Reconstruction.Graph, nil
}
