package polyhedron

import (
	"fmt"
	"slices"
	"strings"
)

// FromVertexCycles builds a polyhedron from faces given as vertex cycles.
//
// Every cycle lists the corners of one face in boundary order; all faces must
// be oriented consistently, so a directed side (u, v) of one face appears as
// (v, u) on its neighbor. Edge ids are assigned in order of first appearance
// while walking the faces in order. A side with no reversed partner becomes a
// boundary side with neighbor NoFace.
//
// The returned polyhedron has been validated.
func FromVertexCycles(cycles [][]int) (*Polyhedron, error) {
	type side struct{ u, v int }
	owner := make(map[side]int)
	for fi, c := range cycles {
		for i := range c {
			s := side{c[i], c[(i+1)%len(c)]}
			if _, dup := owner[s]; dup {
				return nil, fmt.Errorf("directed side %d->%d appears twice (inconsistent orientation)", s.u, s.v)
			}
			owner[s] = fi
		}
	}

	type undirected struct{ a, b int }
	edgeIDs := make(map[undirected]int)
	p := &Polyhedron{Faces: make([]Face, len(cycles))}
	for fi, c := range cycles {
		face := Face{ID: fi, Gon: len(c), Neighbors: make([]Neighbor, len(c))}
		for i := range c {
			u, v := c[i], c[(i+1)%len(c)]
			key := undirected{min(u, v), max(u, v)}
			id, ok := edgeIDs[key]
			if !ok {
				id = len(edgeIDs)
				edgeIDs[key] = id
			}
			nb := NoFace
			if other, ok := owner[side{v, u}]; ok {
				nb = other
			}
			face.Neighbors[i] = Neighbor{EdgeID: id, FaceID: nb}
		}
		p.Faces[fi] = face
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Vertex cycles of the built-in solids, oriented counterclockwise seen from
// outside.
var builtinCycles = map[string][][]int{
	"tetrahedron": {
		{0, 1, 2}, {0, 3, 1}, {1, 3, 2}, {0, 2, 3},
	},
	"cube": {
		{0, 3, 2, 1}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	},
	"octahedron": {
		{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1},
		{5, 2, 1}, {5, 3, 2}, {5, 4, 3}, {5, 1, 4},
	},
	"square-pyramid": {
		{0, 3, 2, 1},
		{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
	},
	"triangular-prism": {
		{0, 2, 1}, {3, 4, 5},
		{0, 1, 4, 3}, {1, 2, 5, 4}, {2, 0, 3, 5},
	},
	// Cube without its top face; the four rim edges are boundary edges.
	"open-box": {
		{0, 3, 2, 1},
		{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	},
}

// BuiltinNames returns the names accepted by Builtin, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinCycles))
	for name := range builtinCycles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builtin returns a fresh copy of a named built-in solid.
func Builtin(name string) (*Polyhedron, error) {
	cycles, ok := builtinCycles[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown solid %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return FromVertexCycles(cycles)
}

// MustBuiltin is like Builtin but panics on error. Intended for tests and
// examples.
func MustBuiltin(name string) *Polyhedron {
	p, err := Builtin(name)
	if err != nil {
		panic(err)
	}
	return p
}
