package unfold

import (
	"slices"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/polyhedron"
)

// NoEdge marks the missing incoming edge of a path's root face.
const NoEdge = -1

// Sequence is a connectivity sequence [gon0, 0, gon1, o1, ..., gonk].
type Sequence []int

// FaceSequence is a simple path of faces in visiting order.
type FaceSequence []int

// Step is one face of a canonical unfolding and the edge it was attached by.
// The root step has Edge == NoEdge.
type Step struct {
	Face int
	Edge int
}

// Len returns the number of faces the sequence describes.
func (s Sequence) Len() int { return (len(s) + 1) / 2 }

// Gon returns the side count of the i-th face.
func (s Sequence) Gon(i int) int { return s[2*i] }

// Offset returns the offset recorded for the i-th face (0 for the root).
// The last face has no offset and Offset panics for it.
func (s Sequence) Offset(i int) int { return s[2*i+1] }

// Equal reports whether two sequences are identical.
func (s Sequence) Equal(o Sequence) bool { return slices.Equal(s, o) }

// Build encodes a path given as (face, incoming edge) steps.
//
// Every step after the root must be attached by an edge both it and its
// predecessor list, faces must not repeat, and consecutive attaching edges
// must differ. Violations are MALFORMED_INPUT errors.
func Build(p *polyhedron.Polyhedron, steps []Step) (Sequence, error) {
	if len(steps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unfolding has no faces")
	}
	used := make(map[int]bool, len(steps))
	for j, st := range steps {
		if st.Face < 0 || st.Face >= p.NumFaces() {
			return nil, errors.Malformed("step %d: face %d out of range", j, st.Face)
		}
		if used[st.Face] {
			return nil, errors.Malformed("step %d: face %d visited twice", j, st.Face)
		}
		used[st.Face] = true
		if j == 0 {
			continue
		}
		if p.Faces[st.Face].EdgePosition(st.Edge) < 0 || p.Faces[steps[j-1].Face].EdgePosition(st.Edge) < 0 {
			return nil, errors.Malformed("step %d: edge %d does not join faces %d and %d",
				j, st.Edge, steps[j-1].Face, st.Face)
		}
	}

	seq := make(Sequence, 0, 2*len(steps)-1)
	seq = append(seq, p.Faces[steps[0].Face].Gon)
	if len(steps) == 1 {
		return seq, nil
	}
	seq = append(seq, 0)

	for j := 1; j < len(steps); j++ {
		face := p.Faces[steps[j].Face]
		seq = append(seq, face.Gon)
		if j == len(steps)-1 {
			break
		}
		pos := face.EdgePosition(steps[j].Edge)
		next := steps[j+1].Edge
		offset := -1
		for k := 1; k < face.Gon; k++ {
			if face.EdgeAt(pos+k) == next {
				offset = k
				break
			}
		}
		if offset < 0 {
			return nil, errors.Malformed("step %d: face %d is entered and left by edge %d", j, face.ID, next)
		}
		seq = append(seq, offset)
	}
	return seq, nil
}

// BuildFaces encodes a face path, deriving each attaching edge as the unique
// edge shared with the previous face.
func BuildFaces(p *polyhedron.Polyhedron, faces FaceSequence) (Sequence, error) {
	steps, err := StepsOf(p, faces)
	if err != nil {
		return nil, err
	}
	return Build(p, steps)
}

// StepsOf converts a face path into steps using SharedEdge.
func StepsOf(p *polyhedron.Polyhedron, faces FaceSequence) ([]Step, error) {
	steps := make([]Step, len(faces))
	for i, f := range faces {
		steps[i] = Step{Face: f, Edge: NoEdge}
		if i == 0 {
			continue
		}
		e, err := SharedEdge(p, faces[i-1], f)
		if err != nil {
			return nil, err
		}
		steps[i].Edge = e
	}
	return steps, nil
}

// SharedEdge returns the single edge joining faces a and b. It fails when
// the faces are not adjacent or share more than one edge.
func SharedEdge(p *polyhedron.Polyhedron, a, b int) (int, error) {
	shared := p.SharedEdges(a, b)
	switch len(shared) {
	case 1:
		return shared[0], nil
	case 0:
		return NoEdge, errors.Malformed("faces %d and %d share no edge", a, b)
	default:
		return NoEdge, errors.Malformed("faces %d and %d share %d edges %v", a, b, len(shared), shared)
	}
}

// Flip returns the mirror form of a sequence: the first gon and the root's 0
// are kept, every interior pair (gon, o) becomes (gon, gon-o), and the last
// gon carries over. Flip is an involution on well-formed sequences.
func Flip(seq Sequence) Sequence {
	if len(seq) <= 1 {
		return slices.Clone(seq)
	}
	flipped := make(Sequence, 0, len(seq))
	flipped = append(flipped, seq[0], 0)
	for i := 2; i < len(seq)-1; i += 2 {
		flipped = append(flipped, seq[i], seq[i]-seq[i+1])
	}
	return append(flipped, seq[len(seq)-1])
}
