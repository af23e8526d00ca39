package symmetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/perm"
)

// Artifact is the JSON handed to the spanning-tree counter.
type Artifact struct {
	NumVertices      int     `json:"num_vertices"`
	NumEdges         int     `json:"num_edges"`
	GroupOrder       int     `json:"group_order"`
	EdgePermutations [][]int `json:"edge_permutations"`
	ZeroFlags        []bool  `json:"zero_flags"`
}

// Artifact projects the result onto the counter's input format.
func (r *Result) Artifact() *Artifact {
	a := &Artifact{
		NumVertices:      r.NumVertices,
		NumEdges:         r.NumEdges,
		GroupOrder:       r.GroupOrder(),
		EdgePermutations: make([][]int, len(r.Entries)),
		ZeroFlags:        make([]bool, len(r.Entries)),
	}
	for i, e := range r.Entries {
		a.EdgePermutations[i] = e.Edge
		a.ZeroFlags[i] = e.Zero
	}
	return a
}

// Validate checks the artifact's internal consistency.
func (a *Artifact) Validate() error {
	if a.GroupOrder != len(a.EdgePermutations) {
		return errors.New(errors.ErrCodeInvalidFormat, "group_order %d but %d edge permutations", a.GroupOrder, len(a.EdgePermutations))
	}
	if len(a.ZeroFlags) != len(a.EdgePermutations) {
		return errors.New(errors.ErrCodeInvalidFormat, "%d zero flags for %d edge permutations", len(a.ZeroFlags), len(a.EdgePermutations))
	}
	for i, ep := range a.EdgePermutations {
		if len(ep) != a.NumEdges || !perm.IsValid(ep) {
			return errors.New(errors.ErrCodeInvalidFormat, "edge permutation %d is not a permutation of %d edges", i, a.NumEdges)
		}
	}
	return nil
}

// WriteArtifact encodes a as indented JSON.
func WriteArtifact(w io.Writer, a *Artifact) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	return nil
}

// WriteArtifactFile writes a to path.
func WriteArtifactFile(path string, a *Artifact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteArtifact(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadArtifact decodes and validates an artifact.
func ReadArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode artifact")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
