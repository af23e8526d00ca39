package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/polyfold/polyfold/pkg/unfold"
)

// edgeSetLine is one line of edgesets output.
type edgeSetLine struct {
	Index   int              `json:"index"`
	Edges   []int            `json:"edges"`
	Variant unfold.Chirality `json:"isomorphism_variant,omitempty"`
	Source  *int             `json:"input_record_index,omitempty"`
}

// edgesetsCommand creates the edgesets command.
func (c *CLI) edgesetsCommand() *cobra.Command {
	var output string
	var unique bool

	cmd := &cobra.Command{
		Use:   "edgesets [unfoldings.jsonl]",
		Short: "Extract the spanning-tree edge set of each unfolding record",
		Long: `Extract the sorted set of attaching edges of each record, one JSON line per
record. These are the spanning-tree edges handed to the decision-diagram
stage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := unfold.ReadRecordsFile(args[0])
			if err != nil {
				return fmt.Errorf("load records %s: %w", args[0], err)
			}
			lines := edgeSets(records, unique)
			if err := writeOutput(output, func(w io.Writer) error { return writeEdgeSets(w, lines) }); err != nil {
				return fmt.Errorf("write edge sets: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("extracted edge sets", "records", len(records), "sets", len(lines))
			if output != "" {
				printSuccess("Extracted %d edge sets from %d records", len(lines), len(records))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSONL file (stdout if empty)")
	cmd.Flags().BoolVar(&unique, "unique", false, "emit each distinct edge set once")

	return cmd
}

func edgeSets(records []*unfold.Record, unique bool) []edgeSetLine {
	seen := make(map[string]bool)
	lines := make([]edgeSetLine, 0, len(records))
	for i, r := range records {
		edges := unfold.EdgeSet(r)
		if unique {
			key := fmt.Sprint(edges)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		line := edgeSetLine{Index: i, Edges: edges}
		if r.Source != nil {
			idx := r.Source.InputRecordIndex
			line.Variant = r.Source.Variant
			line.Source = &idx
		}
		lines = append(lines, line)
	}
	return lines
}

func writeEdgeSets(w io.Writer, lines []edgeSetLine) error {
	enc := json.NewEncoder(w)
	for _, l := range lines {
		if err := enc.Encode(l); err != nil {
			return err
		}
	}
	return nil
}
