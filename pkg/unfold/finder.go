package unfold

import (
	"context"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/polyhedron"
)

// Finder searches a polyhedron for face paths realizing a sequence.
// A Finder holds no mutable state and is safe for concurrent use.
type Finder struct {
	poly *polyhedron.Polyhedron

	// Progress, if set, is called once per face of the polyhedron, matching
	// or not, with the number of start faces tried so far and the number of
	// paths found.
	Progress func(tried, found int)
}

// NewFinder creates a finder over p. The polyhedron must be valid and must
// not be modified while the finder is in use.
func NewFinder(p *polyhedron.Polyhedron) *Finder {
	return &Finder{poly: p}
}

// Search returns every face path realizing seq, for every start face whose
// gon matches seq[0] and every side of that face as the first outgoing edge.
// Results are ordered by start face, then start side. A path can appear more
// than once when distinct start sides realize it.
//
// A sequence describing a single face yields each matching face once.
//
// The context is checked between start faces; on cancellation Search
// returns a TIMEOUT error and no results.
func (f *Finder) Search(ctx context.Context, seq Sequence) ([]FaceSequence, error) {
	if err := errors.ValidateSequence(seq); err != nil {
		return nil, err
	}

	var found []FaceSequence
	for start, face := range f.poly.Faces {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "search stopped after %d of %d start faces", start, len(f.poly.Faces))
		}
		found = f.searchFrom(found, seq, start, face)
		if f.Progress != nil {
			f.Progress(start+1, len(found))
		}
	}
	return found, nil
}

// searchFrom appends to found every path of seq rooted at start.
func (f *Finder) searchFrom(found []FaceSequence, seq Sequence, start int, face polyhedron.Face) []FaceSequence {
	if face.Gon != seq[0] {
		return found
	}
	if len(seq) == 1 {
		return append(found, FaceSequence{start})
	}
	for side := range face.Gon {
		path, err := f.Match(seq, start, side)
		if err != nil {
			continue
		}
		found = append(found, path)
	}
	return found
}

// Match walks seq from a single candidate: the root is start and the first
// outgoing edge is the root's side at position side. It returns the path or a
// SEQUENCE_MISMATCH error naming the step that failed.
func (f *Finder) Match(seq Sequence, start, side int) (FaceSequence, error) {
	p := f.poly
	if start < 0 || start >= p.NumFaces() || p.Faces[start].Gon != seq[0] {
		return nil, errors.New(errors.ErrCodeSequenceMismatch, "start face %d does not match gon %d", start, seq[0])
	}

	used := make([]bool, p.NumFaces())
	path := make(FaceSequence, 0, seq.Len())

	cur := start
	edge := p.Faces[start].EdgeAt(side)
	next := p.Faces[start].NeighborAt(side)

	for k := 2; k < len(seq); k += 2 {
		path = append(path, cur)
		used[cur] = true

		if next == polyhedron.NoFace {
			return nil, errors.New(errors.ErrCodeSequenceMismatch, "step %d: edge %d is on the boundary", k/2, edge)
		}
		if used[next] {
			return nil, errors.New(errors.ErrCodeSequenceMismatch, "step %d: face %d already visited", k/2, next)
		}
		nf := p.Faces[next]
		if nf.Gon != seq[k] {
			return nil, errors.New(errors.ErrCodeSequenceMismatch, "step %d: face %d has gon %d, want %d", k/2, next, nf.Gon, seq[k])
		}
		pos := nf.EdgePosition(edge)
		if pos < 0 {
			return nil, errors.New(errors.ErrCodeSequenceMismatch, "step %d: edge %d not on face %d", k/2, edge, next)
		}

		cur = next
		if k == len(seq)-1 {
			path = append(path, cur)
			break
		}
		out := pos + seq[k+1]
		edge = nf.EdgeAt(out)
		next = nf.NeighborAt(out)
	}
	return path, nil
}
