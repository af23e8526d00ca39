package skeleton

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/polyfold/polyfold/pkg/errors"
)

// WriteGRH writes the graph in the decision-diagram engine's edge-list
// format: one "u v" line per edge in edge-id order, 0-indexed, no header.
func WriteGRH(g *Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e.U, e.V); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteGRHFile writes the graph to path with 0644 permissions.
func WriteGRHFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGRH(g, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadGRH parses an edge list written by WriteGRH. Blank lines are skipped.
// The vertex count is one past the largest endpoint. Pairs are normalized and
// the result is validated as a simple graph.
func ReadGRH(r io.Reader) (*Graph, error) {
	var edges []Pair
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: want 2 vertex ids, got %d fields", line, len(fields))
		}
		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		if u < 0 || v < 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: negative vertex id", line)
		}
		edges = append(edges, Pair{U: u, V: v})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	g := NewGraph(0, edges)
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "edge list")
	}
	return g, nil
}

// ReadGRHFile reads an edge list from path.
func ReadGRHFile(path string) (*Graph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "edge list %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGRH(f)
}
