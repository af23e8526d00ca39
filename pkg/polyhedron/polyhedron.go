package polyhedron

import (
	"slices"

	"github.com/polyfold/polyfold/pkg/errors"
)

// NoFace is the neighbor id of a side that lies on the boundary of an open
// surface.
const NoFace = -1

// Neighbor is one side of a face: the edge it lies on and the face across it.
type Neighbor struct {
	EdgeID int `json:"edge_id"`
	FaceID int `json:"face_id"`
}

// Face is a polygon of the surface. Neighbors are listed in cyclic order
// around the boundary; side i runs from corner i to corner (i+1) mod Gon.
type Face struct {
	ID        int        `json:"face_id"`
	Gon       int        `json:"gon"`
	Neighbors []Neighbor `json:"neighbors"`
}

// EdgeAt returns the edge id of side i, taken modulo Gon.
func (f Face) EdgeAt(i int) int {
	return f.Neighbors[mod(i, f.Gon)].EdgeID
}

// NeighborAt returns the face across side i, taken modulo Gon.
func (f Face) NeighborAt(i int) int {
	return f.Neighbors[mod(i, f.Gon)].FaceID
}

// EdgePosition returns the side index of edgeID on f, or -1.
func (f Face) EdgePosition(edgeID int) int {
	for i, n := range f.Neighbors {
		if n.EdgeID == edgeID {
			return i
		}
	}
	return -1
}

// Polyhedron is the face-adjacency description of a (possibly open) surface.
// Faces[i].ID == i once the polyhedron has been validated.
type Polyhedron struct {
	Faces []Face `json:"faces"`
}

// Owner is one face side lying on an edge.
type Owner struct {
	Face     int
	Position int
}

// NumFaces returns the number of faces.
func (p *Polyhedron) NumFaces() int { return len(p.Faces) }

// NumEdges returns one past the largest edge id, or 0 with no faces.
func (p *Polyhedron) NumEdges() int {
	n := 0
	for _, f := range p.Faces {
		for _, nb := range f.Neighbors {
			n = max(n, nb.EdgeID+1)
		}
	}
	return n
}

// Gons returns the side count of every face, indexed by face id.
func (p *Polyhedron) Gons() []int {
	gons := make([]int, len(p.Faces))
	for i, f := range p.Faces {
		gons[i] = f.Gon
	}
	return gons
}

// Owners returns, for every edge id in [0, NumEdges()), the face sides lying
// on it in face order. It does not check ownership counts; see Validate.
func (p *Polyhedron) Owners() [][]Owner {
	owners := make([][]Owner, p.NumEdges())
	for _, f := range p.Faces {
		for i, nb := range f.Neighbors {
			if nb.EdgeID < 0 {
				continue
			}
			owners[nb.EdgeID] = append(owners[nb.EdgeID], Owner{Face: f.ID, Position: i})
		}
	}
	return owners
}

// SharedEdges returns the edge ids that faces a and b both list, ascending.
func (p *Polyhedron) SharedEdges(a, b int) []int {
	if a < 0 || b < 0 || a >= len(p.Faces) || b >= len(p.Faces) {
		return nil
	}
	var shared []int
	for _, na := range p.Faces[a].Neighbors {
		if p.Faces[b].EdgePosition(na.EdgeID) >= 0 {
			shared = append(shared, na.EdgeID)
		}
	}
	slices.Sort(shared)
	return slices.Compact(shared)
}

// BoundaryEdges returns the ids of edges owned by exactly one face.
func (p *Polyhedron) BoundaryEdges() []int {
	var boundary []int
	for id, own := range p.Owners() {
		if len(own) == 1 {
			boundary = append(boundary, id)
		}
	}
	return boundary
}

// Closed reports whether every edge is interior.
func (p *Polyhedron) Closed() bool {
	return len(p.BoundaryEdges()) == 0
}

// Validate checks the structural invariants of the description:
//   - face ids are dense: Faces[i].ID == i
//   - every face has Gon >= 3 and exactly Gon neighbors
//   - edge ids are non-negative and a face lists each edge at most once
//   - neighbor face ids are in range or NoFace, and never the face itself
//   - every edge id in [0, E) is owned by one or two faces
//   - for an interior edge each owner names the other as its neighbor
//   - a boundary edge names NoFace as its neighbor
//
// The first violation is returned as a MALFORMED_INPUT error.
func (p *Polyhedron) Validate() error {
	if len(p.Faces) == 0 {
		return errors.Malformed("polyhedron has no faces")
	}
	for i, f := range p.Faces {
		if f.ID != i {
			return errors.Malformed("face at index %d has id %d (ids must be dense and ordered)", i, f.ID)
		}
		if err := errors.ValidateGon(f.Gon); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedInput, err, "face %d", f.ID)
		}
		if len(f.Neighbors) != f.Gon {
			return errors.Malformed("face %d has gon %d but %d neighbors", f.ID, f.Gon, len(f.Neighbors))
		}
		seen := make(map[int]bool, f.Gon)
		for _, nb := range f.Neighbors {
			if nb.EdgeID < 0 {
				return errors.Malformed("face %d lists negative edge id %d", f.ID, nb.EdgeID)
			}
			if seen[nb.EdgeID] {
				return errors.Malformed("face %d lists edge %d twice", f.ID, nb.EdgeID)
			}
			seen[nb.EdgeID] = true
			if nb.FaceID == f.ID {
				return errors.Malformed("face %d is its own neighbor across edge %d", f.ID, nb.EdgeID)
			}
			if nb.FaceID != NoFace && (nb.FaceID < 0 || nb.FaceID >= len(p.Faces)) {
				return errors.Malformed("face %d has out-of-range neighbor %d", f.ID, nb.FaceID)
			}
		}
	}
	return p.validateOwnership()
}

func (p *Polyhedron) validateOwnership() error {
	for id, own := range p.Owners() {
		switch len(own) {
		case 0:
			return errors.Malformed("edge %d has no owning face", id)
		case 1:
			f := p.Faces[own[0].Face]
			if nb := f.Neighbors[own[0].Position].FaceID; nb != NoFace {
				return errors.Malformed("edge %d is owned only by face %d but names neighbor %d", id, f.ID, nb)
			}
		case 2:
			a, b := own[0], own[1]
			if p.Faces[a.Face].Neighbors[a.Position].FaceID != b.Face ||
				p.Faces[b.Face].Neighbors[b.Position].FaceID != a.Face {
				return errors.Malformed("edge %d: owning faces %d and %d do not name each other", id, a.Face, b.Face)
			}
		default:
			return errors.Malformed("edge %d is owned by %d faces", id, len(own))
		}
	}
	return nil
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
