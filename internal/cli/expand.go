package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyfold/polyfold/pkg/pipeline"
	"github.com/polyfold/polyfold/pkg/unfold"
)

// expandCommand creates the expand command.
func (c *CLI) expandCommand() *cobra.Command {
	var output string
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "expand [polyhedron.json | builtin:name] [unfoldings.jsonl]",
		Short: "Expand canonical unfoldings into every isomorphic unfolding",
		Long: `Expand each canonical unfolding record into every isomorphic record.

Each record's face path is encoded as a connectivity sequence, mirrored, and
both sequences are searched on the polyhedron from every start face and
side. Output records carry the source record index and whether they came
from the standard or the flipped sequence. Geometry and exact_overlap are
copied from the source record.`,
		Example: `  # Expand to stdout
  polyfold expand cube.json canonical.jsonl

  # Expand in parallel, dropping repeated paths
  polyfold expand prism.json canonical.jsonl --dedupe --workers 8 -o all.jsonl`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePolyhedron,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExpand(cmd.Context(), args[0], args[1], flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSONL file (stdout if empty)")
	cmd.Flags().BoolVar(&flags.Dedupe, "dedupe", false, "drop repeated face paths within each record's expansion")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "records expanded in parallel (overrides config; 0 keeps config)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "overall timeout (overrides config; 0 keeps config)")
	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runExpand(ctx context.Context, polyInput, recordsInput string, flags pipeline.Options, output string) error {
	p, err := loadPolyhedron(polyInput)
	if err != nil {
		return err
	}
	records, err := unfold.ReadRecordsFile(recordsInput)
	if err != nil {
		return fmt.Errorf("load records %s: %w", recordsInput, err)
	}
	tagInputFile(records, filepath.Base(recordsInput))

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions()
	opts.Dedupe = flags.Dedupe
	opts.Refresh = flags.Refresh
	if flags.Workers > 0 {
		opts.Workers = flags.Workers
	}
	if flags.Timeout > 0 {
		opts.Timeout = flags.Timeout
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Expanding %d records...", len(records)))
	spinner.Start()
	res, err := runner.Expand(ctx, p, records, opts)
	if err != nil {
		spinner.StopWithError("Expansion failed")
		return fmt.Errorf("expand: %w", err)
	}
	spinner.Stop()

	if err := writeOutput(output, func(w io.Writer) error { return unfold.WriteRecords(w, res.Records) }); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	if output == "" {
		return nil
	}

	printSuccess("Expanded %d records into %d", res.Inputs, len(res.Records))
	printStats(res.CacheHits == res.Inputs && res.Inputs > 0,
		fmt.Sprintf("%d cached", res.CacheHits),
		res.Duration.Round(time.Millisecond).String())
	printFile(output)
	return nil
}

// tagInputFile records the input file name on records that carry no
// provenance yet, so expanded records can be traced back to it.
func tagInputFile(records []*unfold.Record, name string) {
	for _, r := range records {
		if r.Source == nil {
			r.Source = &unfold.Source{InputFile: name}
		} else if r.Source.InputFile == "" {
			r.Source.InputFile = name
		}
	}
}
