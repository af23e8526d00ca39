// Package unfold encodes edge unfoldings as connectivity sequences and
// recovers every unfolding that shares a canonical one's connectivity.
//
// # Connectivity Sequences
//
// An unfolding path visits faces f0, f1, ..., fk, each attached to its
// predecessor across a shared edge. Its [Sequence] has length 2k+1:
//
//	[gon(f0), 0, gon(f1), o1, gon(f2), o2, ..., gon(fk)]
//
// where oj counts the steps forward around fj's boundary from the edge it
// was entered by to the edge it leaves by. The root has no incoming edge, so
// its slot is always 0. [Build] derives the sequence from a path and
// [Flip] rewrites it for the mirror image: walking each boundary the other
// way turns an offset o on a gon-sided face into gon - o.
//
// # Isomorphic Search
//
// [Finder.Search] tries every face whose gon matches seq[0] and every side of
// that face as the first outgoing edge, walking the sequence and requiring
// the gon of each reached face to match and no face to repeat. A failed
// candidate is abandoned without affecting the others. [Expand] runs the
// search on the built sequence and on its flip and tags each result with its
// [Chirality].
//
// Any path the search returns encodes back to the sequence it was found
// from: Build(Search(seq)[i]) == seq.
//
// # Records
//
// [Record] is the JSON unfolding record exchanged with the rest of the
// pipeline. Geometry (x, y, angle_deg) and the exact_overlap payload are
// carried through untouched; [Reconstruct] rebuilds a record for a found path
// and [EdgeSet] extracts the spanning-tree edges of a record.
package unfold
