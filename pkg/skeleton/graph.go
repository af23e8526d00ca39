package skeleton

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfLoop is returned by [Graph.Validate] when an edge has identical
	// endpoints.
	ErrSelfLoop = errors.New("edge has identical endpoints")

	// ErrDuplicateEdge is returned by [Graph.Validate] when two edge ids share
	// an endpoint pair.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrVertexRange is returned by [Graph.Validate] when an endpoint is
	// outside [0, NumVertices).
	ErrVertexRange = errors.New("vertex id out of range")
)

// Pair is an undirected edge with U < V once normalized.
type Pair struct {
	U, V int
}

// NewPair returns the normalized pair of u and v.
func NewPair(u, v int) Pair {
	if u > v {
		u, v = v, u
	}
	return Pair{U: u, V: v}
}

// Has reports whether x is an endpoint of p.
func (p Pair) Has(x int) bool { return p.U == x || p.V == x }

// String returns "(u,v)".
func (p Pair) String() string { return fmt.Sprintf("(%d,%d)", p.U, p.V) }

// Graph is a simple undirected graph with a fixed edge order. Edges[i] is the
// normalized endpoint pair of edge id i.
type Graph struct {
	NumVertices int
	Edges       []Pair
}

// NewGraph builds a graph from an edge list, normalizing every pair.
// NumVertices is at least one past the largest endpoint.
func NewGraph(numVertices int, edges []Pair) *Graph {
	g := &Graph{NumVertices: numVertices, Edges: make([]Pair, len(edges))}
	for i, e := range edges {
		g.Edges[i] = NewPair(e.U, e.V)
		g.NumVertices = max(g.NumVertices, g.Edges[i].V+1)
	}
	return g
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.Edges) }

// Validate checks that the graph is simple and its endpoints are in range.
func (g *Graph) Validate() error {
	seen := make(map[Pair]int, len(g.Edges))
	for i, e := range g.Edges {
		if e.U < 0 || e.V < 0 || e.U >= g.NumVertices || e.V >= g.NumVertices {
			return fmt.Errorf("edge %d %s: %w", i, e, ErrVertexRange)
		}
		if e.U == e.V {
			return fmt.Errorf("edge %d %s: %w", i, e, ErrSelfLoop)
		}
		p := NewPair(e.U, e.V)
		if j, dup := seen[p]; dup {
			return fmt.Errorf("edges %d and %d %s: %w", j, i, p, ErrDuplicateEdge)
		}
		seen[p] = i
	}
	return nil
}

// EdgeIndex returns the lookup from normalized pair to edge id.
func (g *Graph) EdgeIndex() map[Pair]int {
	idx := make(map[Pair]int, len(g.Edges))
	for i, e := range g.Edges {
		idx[NewPair(e.U, e.V)] = i
	}
	return idx
}

// Adjacency returns the neighbor lists of every vertex, in edge order.
func (g *Graph) Adjacency() [][]int {
	adj := make([][]int, g.NumVertices)
	for _, e := range g.Edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	return adj
}

// Matrix returns the adjacency matrix.
func (g *Graph) Matrix() [][]bool {
	m := make([][]bool, g.NumVertices)
	for i := range m {
		m[i] = make([]bool, g.NumVertices)
	}
	for _, e := range g.Edges {
		m[e.U][e.V] = true
		m[e.V][e.U] = true
	}
	return m
}

// Degrees returns the degree of every vertex.
func (g *Graph) Degrees() []int {
	deg := make([]int, g.NumVertices)
	for _, e := range g.Edges {
		deg[e.U]++
		deg[e.V]++
	}
	return deg
}

// EulerCharacteristic returns V - E + faces.
func (g *Graph) EulerCharacteristic(faces int) int {
	return g.NumVertices - len(g.Edges) + faces
}

// InducedConnected reports whether the subgraph induced on the given vertices
// is connected. An empty vertex set is not connected.
func (g *Graph) InducedConnected(vertices []int) bool {
	if len(vertices) == 0 {
		return false
	}
	in := make([]bool, g.NumVertices)
	for _, v := range vertices {
		in[v] = true
	}
	adj := g.Adjacency()
	seen := make([]bool, g.NumVertices)
	stack := []int{vertices[0]}
	seen[vertices[0]] = true
	reached := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range adj[v] {
			if in[w] && !seen[w] {
				seen[w] = true
				reached++
				stack = append(stack, w)
			}
		}
	}
	return reached == len(vertices)
}

// Connected reports whether the whole graph is connected.
func (g *Graph) Connected() bool {
	all := make([]int, g.NumVertices)
	for i := range all {
		all[i] = i
	}
	return g.InducedConnected(all)
}
