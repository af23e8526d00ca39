package skeleton

import (
	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/polyhedron"
)

// VirtualVertex is one corner of one face before merging.
type VirtualVertex struct {
	Face     int
	Position int
}

// Reconstruction is the result of merging face corners into vertices.
type Reconstruction struct {
	// Graph holds the vertex count and the endpoint pair of every edge id.
	Graph *Graph

	// NumFaces is the face count of the source polyhedron.
	NumFaces int

	// Corners maps face id and corner position to the merged vertex id.
	Corners [][]int

	// Members lists the virtual vertices merged into each vertex, ordered by
	// face then position.
	Members [][]VirtualVertex
}

// EulerCharacteristic returns V - E + F for the reconstructed surface.
func (r *Reconstruction) EulerCharacteristic() int {
	return r.Graph.EulerCharacteristic(r.NumFaces)
}

// Reconstruct derives vertex identity from face adjacency.
//
// Side i of a face runs from corner i to corner (i+1) mod gon. For an edge
// owned by faces A and B, A's start corner is merged with B's end corner and
// A's end corner with B's start corner. Boundary edges merge nothing.
//
// The polyhedron's structure is assumed valid (see polyhedron.Validate); the
// ownership checks below are repeated here because they decide whether the
// merge is well defined. Errors are MALFORMED_INPUT.
func Reconstruct(p *polyhedron.Polyhedron) (*Reconstruction, error) {
	offsets := make([]int, len(p.Faces)+1)
	for i, f := range p.Faces {
		if f.ID != i {
			return nil, errors.Malformed("face at index %d has id %d", i, f.ID)
		}
		if len(f.Neighbors) != f.Gon {
			return nil, errors.Malformed("face %d has gon %d but %d neighbors", f.ID, f.Gon, len(f.Neighbors))
		}
		offsets[i+1] = offsets[i] + f.Gon
	}
	corner := func(face, pos int) int {
		gon := p.Faces[face].Gon
		return offsets[face] + ((pos%gon)+gon)%gon
	}

	owners := p.Owners()
	uf := NewUnionFind(offsets[len(p.Faces)])
	for id, own := range owners {
		switch len(own) {
		case 0:
			return nil, errors.Malformed("edge %d has no owning face", id)
		case 1:
			continue
		case 2:
		default:
			return nil, errors.Malformed("edge %d is owned by %d faces", id, len(own))
		}
		a, b := own[0], own[1]
		uf.Union(corner(a.Face, a.Position), corner(b.Face, b.Position+1))
		uf.Union(corner(a.Face, a.Position+1), corner(b.Face, b.Position))
	}

	dense, numVertices := uf.Dense()

	r := &Reconstruction{
		NumFaces: len(p.Faces),
		Corners:  make([][]int, len(p.Faces)),
		Members:  make([][]VirtualVertex, numVertices),
	}
	for fi, f := range p.Faces {
		r.Corners[fi] = make([]int, f.Gon)
		for pos := range f.Gon {
			v := dense[corner(fi, pos)]
			r.Corners[fi][pos] = v
			r.Members[v] = append(r.Members[v], VirtualVertex{Face: fi, Position: pos})
		}
	}

	edges := make([]Pair, len(owners))
	seen := make(map[Pair]int, len(owners))
	for id, own := range owners {
		var pair Pair
		for k, o := range own {
			got := NewPair(r.Corners[o.Face][o.Position], r.Corners[o.Face][(o.Position+1)%p.Faces[o.Face].Gon])
			if k == 0 {
				pair = got
				continue
			}
			if got != pair {
				return nil, errors.Malformed("edge %d: face %d yields %s but face %d yields %s",
					id, own[0].Face, pair, o.Face, got)
			}
		}
		if pair.U == pair.V {
			return nil, errors.Malformed("edge %d collapses to vertex %d", id, pair.U)
		}
		if prev, dup := seen[pair]; dup {
			return nil, errors.Malformed("edges %d and %d both join vertices %s", prev, id, pair)
		}
		seen[pair] = id
		edges[id] = pair
	}

	r.Graph = &Graph{NumVertices: numVertices, Edges: edges}
	return r, nil
}
