package symmetry

import (
	"context"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/perm"
	"github.com/polyfold/polyfold/pkg/skeleton"
)

// Search enumerates graph automorphisms.
type Search struct {
	// Progress, if set, is called after each image of the first vertex has
	// been explored, with the number explored, the number of candidates and
	// the automorphisms found so far.
	Progress func(done, total, found int)
}

// Automorphisms returns every vertex permutation g of the graph with
// {u,v} an edge iff {g(u),g(v)} is an edge. Each permutation is a slice
// indexed by vertex. The order of the result is deterministic but carries no
// meaning.
//
// The context is checked between images of the first vertex. On
// cancellation the partial result is dropped and a TIMEOUT error returned.
func (s Search) Automorphisms(ctx context.Context, g *skeleton.Graph) ([][]int, error) {
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "invalid graph")
	}
	n := g.NumVertices
	if n == 0 {
		return [][]int{{}}, nil
	}

	b := newBacktracker(g)
	first := b.order[0]
	var candidates []int
	for w := range n {
		if b.deg[w] == b.deg[first] {
			candidates = append(candidates, w)
		}
	}

	for i, w := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "automorphism search stopped after %d of %d branches", i, len(candidates))
		}
		b.assign(first, w)
		b.extend(1)
		b.unassign(first, w)
		if s.Progress != nil {
			s.Progress(i+1, len(candidates), len(b.found))
		}
	}
	return b.found, nil
}

// backtracker holds the partial mapping of one search.
type backtracker struct {
	adj    [][]int
	matrix [][]bool
	deg    []int

	// order is a breadth-first vertex order over all components; anchor[i]
	// is an already-ordered neighbor of order[i], or -1 for component roots.
	order  []int
	anchor []int

	all   []int
	image []int // image[v] = g(v), or -1
	taken []bool
	found [][]int
}

func newBacktracker(g *skeleton.Graph) *backtracker {
	n := g.NumVertices
	b := &backtracker{
		adj:    g.Adjacency(),
		matrix: g.Matrix(),
		deg:    g.Degrees(),
		all:    perm.Seq(n),
		image:  make([]int, n),
		taken:  make([]bool, n),
	}
	for i := range b.image {
		b.image[i] = -1
	}

	seen := make([]bool, n)
	for root := range n {
		if seen[root] {
			continue
		}
		seen[root] = true
		b.order = append(b.order, root)
		b.anchor = append(b.anchor, -1)
		for q := len(b.order) - 1; q < len(b.order); q++ {
			v := b.order[q]
			for _, w := range b.adj[v] {
				if !seen[w] {
					seen[w] = true
					b.order = append(b.order, w)
					b.anchor = append(b.anchor, v)
				}
			}
		}
	}
	return b
}

func (b *backtracker) assign(v, w int) {
	b.image[v] = w
	b.taken[w] = true
}

func (b *backtracker) unassign(v, w int) {
	b.image[v] = -1
	b.taken[w] = false
}

// extend maps order[i:] in every consistent way.
func (b *backtracker) extend(i int) {
	if i == len(b.order) {
		b.found = append(b.found, append([]int(nil), b.image...))
		return
	}
	v := b.order[i]

	candidates := b.all
	if a := b.anchor[i]; a >= 0 {
		candidates = b.adj[b.image[a]]
	}

	for _, w := range candidates {
		if b.taken[w] || b.deg[w] != b.deg[v] || !b.consistent(i, v, w) {
			continue
		}
		b.assign(v, w)
		b.extend(i + 1)
		b.unassign(v, w)
	}
}

// consistent reports whether mapping v to w agrees with every vertex mapped
// before position i.
func (b *backtracker) consistent(i, v, w int) bool {
	for _, u := range b.order[:i] {
		if b.matrix[v][u] != b.matrix[w][b.image[u]] {
			return false
		}
	}
	return true
}
