package symmetry

import (
	"context"
	"fmt"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/perm"
	"github.com/polyfold/polyfold/pkg/skeleton"
)

// Entry is one automorphism with its edge action and zero flag.
type Entry struct {
	Vertex []int `json:"vertex_permutation"`
	Edge   []int `json:"edge_permutation"`
	Zero   bool  `json:"zero"`
}

// Warning is a non-fatal consistency finding.
type Warning struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Code, w.Message) }

func inconsistent(format string, args ...any) Warning {
	return Warning{Code: errors.ErrCodeAutomorphismInconsistent, Message: fmt.Sprintf(format, args...)}
}

// Result is the analyzed automorphism group of a skeleton.
type Result struct {
	NumVertices int
	NumEdges    int
	Entries     []Entry
	Warnings    []Warning
}

// GroupOrder returns the number of usable entries.
func (r *Result) GroupOrder() int { return len(r.Entries) }

// ZeroCount returns the number of zero-flagged entries.
func (r *Result) ZeroCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Zero {
			n++
		}
	}
	return n
}

// Analyze enumerates the automorphisms of g and builds their entries.
func (s Search) Analyze(ctx context.Context, g *skeleton.Graph) (*Result, error) {
	autos, err := s.Automorphisms(ctx, g)
	if err != nil {
		return nil, err
	}
	entries, warnings := Entries(g, autos)
	return &Result{
		NumVertices: g.NumVertices,
		NumEdges:    g.NumEdges(),
		Entries:     entries,
		Warnings:    warnings,
	}, nil
}

// Entries converts vertex permutations of g into entries. A permutation that
// is not a bijection of the vertices, or that maps some edge onto a non-edge,
// is dropped with a warning. A missing identity is also reported.
func Entries(g *skeleton.Graph, vperms [][]int) ([]Entry, []Warning) {
	index := g.EdgeIndex()
	var (
		entries  []Entry
		warnings []Warning
		identity bool
	)
	for i, vp := range vperms {
		if len(vp) != g.NumVertices || !perm.IsValid(vp) {
			warnings = append(warnings, inconsistent("automorphism %d is not a permutation of %d vertices", i, g.NumVertices))
			continue
		}
		ep, err := edgePermutation(g, index, vp)
		if err != nil {
			warnings = append(warnings, inconsistent("automorphism %d: %s", i, errors.UserMessage(err)))
			continue
		}
		if perm.IsIdentity(vp) && perm.IsIdentity(ep) {
			identity = true
		}
		entries = append(entries, Entry{Vertex: vp, Edge: ep, Zero: ZeroFlag(g, vp)})
	}
	if !identity {
		warnings = append(warnings, inconsistent("identity permutation not found among %d automorphisms", len(vperms)))
	}
	return entries, warnings
}

// EdgePermutation returns the edge action of vertex permutation vp: the image
// of edge i = (u,v) is the index of the normalized pair (vp[u], vp[v]). It
// fails with AUTOMORPHISM_INCONSISTENT when a mapped pair is not an edge.
func EdgePermutation(g *skeleton.Graph, vp []int) ([]int, error) {
	return edgePermutation(g, g.EdgeIndex(), vp)
}

func edgePermutation(g *skeleton.Graph, index map[skeleton.Pair]int, vp []int) ([]int, error) {
	ep := make([]int, len(g.Edges))
	for i, e := range g.Edges {
		img := skeleton.NewPair(vp[e.U], vp[e.V])
		j, ok := index[img]
		if !ok {
			return nil, errors.New(errors.ErrCodeAutomorphismInconsistent,
				"edge %d %v maps to %v which is not an edge", i, e, img)
		}
		ep[i] = j
	}
	return ep, nil
}

// InvariantEdges returns ι(g): the number of edges (u,v) with
// {vp[u], vp[v]} = {u, v}.
func InvariantEdges(g *skeleton.Graph, vp []int) int {
	n := 0
	for _, e := range g.Edges {
		if skeleton.NewPair(vp[e.U], vp[e.V]) == skeleton.NewPair(e.U, e.V) {
			n++
		}
	}
	return n
}

// ZeroFlag reports whether the fixed spanning-tree count of vp is known to
// be zero. See the package documentation for the two cases.
func ZeroFlag(g *skeleton.Graph, vp []int) bool {
	if fix := perm.Fixed(vp); len(fix) > 0 {
		return !g.InducedConnected(fix)
	}
	return InvariantEdges(g, vp) == 0
}
