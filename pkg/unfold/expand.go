package unfold

import (
	"context"
	"slices"

	"github.com/polyfold/polyfold/pkg/polyhedron"
)

// Chirality labels which form of the sequence a path realizes.
type Chirality string

const (
	// Standard paths realize the sequence built from the canonical unfolding.
	Standard Chirality = "standard"
	// Flipped paths realize its mirror form.
	Flipped Chirality = "flipped"
)

// Match is one face path found by Expand.
type Match struct {
	Chirality Chirality    `json:"isomorphism_variant"`
	Faces     FaceSequence `json:"faces"`
}

// Expansion holds both sequences and every path realizing them.
type Expansion struct {
	Standard Sequence `json:"standard"`
	Flipped  Sequence `json:"flipped"`
	Matches  []Match  `json:"matches"`
}

// Expand builds the sequence of a canonical unfolding, flips it, and searches
// the polyhedron for both. Standard matches come first.
//
// Results are not deduplicated: a path that realizes both forms, or that is
// reached from several start sides, is reported each time. See Dedupe.
func Expand(ctx context.Context, p *polyhedron.Polyhedron, steps []Step) (*Expansion, error) {
	seq, err := Build(p, steps)
	if err != nil {
		return nil, err
	}
	exp := &Expansion{Standard: seq, Flipped: Flip(seq)}

	finder := NewFinder(p)
	for _, variant := range []struct {
		chirality Chirality
		seq       Sequence
	}{
		{Standard, exp.Standard},
		{Flipped, exp.Flipped},
	} {
		paths, err := finder.Search(ctx, variant.seq)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			exp.Matches = append(exp.Matches, Match{Chirality: variant.chirality, Faces: path})
		}
	}
	return exp, nil
}

// Dedupe drops repeated face paths, keeping the first occurrence (and so its
// chirality label).
func Dedupe(matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if slices.ContainsFunc(out, func(o Match) bool { return slices.Equal(o.Faces, m.Faces) }) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// DedupeRecords drops records whose face path repeats an earlier one.
func DedupeRecords(records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		faces := r.FaceSequence()
		if slices.ContainsFunc(out, func(o *Record) bool { return slices.Equal(o.FaceSequence(), faces) }) {
			continue
		}
		out = append(out, r)
	}
	return out
}
