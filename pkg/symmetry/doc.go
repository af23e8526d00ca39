// Package symmetry enumerates the automorphisms of a polyhedron skeleton and
// prepares them for Burnside-lemma counting of spanning trees.
//
// # Automorphisms
//
// [Search.Automorphisms] runs an exhaustive backtracking search over vertex
// bijections. Vertices are mapped in breadth-first order so that every vertex
// after the first of its component already has a mapped neighbor, which
// restricts its candidates to the image's neighborhood. A partial mapping is
// extended only if it preserves adjacency and non-adjacency with every vertex
// mapped so far and keeps degrees equal.
//
// # Entries
//
// Each automorphism g becomes an [Entry]: the vertex permutation, the induced
// edge permutation (edge i = (u,v) maps to the index of the normalized pair
// (g(u), g(v))) and a zero flag. The zero flag marks group elements whose
// fixed spanning-tree count is known to be 0:
//
//   - Fix(g) nonempty: zero when the subgraph induced on Fix(g) is
//     disconnected.
//   - Fix(g) empty: zero when no edge is g-invariant, that is no edge (u,v)
//     has {g(u), g(v)} = {u, v}.
//
// Downstream counters skip zero-flagged entries.
//
// # Warnings
//
// A missing identity or an edge mapped onto a pair that is not an edge are
// reported as [Warning] values with code AUTOMORPHISM_INCONSISTENT. They do
// not stop the analysis; the remaining entries are still usable.
package symmetry
