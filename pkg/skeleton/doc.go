// Package skeleton reconstructs the vertex/edge graph (1-skeleton) of a
// polyhedron given only by face adjacency.
//
// # Reconstruction
//
// Faces carry no vertex ids. [Reconstruct] gives every face corner its own
// virtual vertex, then merges corners with a [UnionFind]: when faces A and B
// share an edge they walk it in opposite directions, so A's start corner is
// B's end corner and vice versa. Boundary edges (one owning face) merge
// nothing. The merged classes are renumbered densely in [0, V) in order of
// their smallest virtual vertex, and each edge id is mapped to its normalized
// endpoint pair.
//
// Every owning face of an edge must produce the same endpoint pair after the
// merge; an edge owned by no face, by more than two faces, with identical
// endpoints, or duplicating another edge's endpoints is reported as a
// MALFORMED_INPUT error.
//
// # Graph
//
// [Graph] is the fixed-order edge list consumed by the symmetry engine and by
// the downstream decision-diagram engine. [WriteGRH] and [ReadGRH] speak the
// engine's plain format: one "u v" line per edge in edge-id order, 0-indexed,
// no header.
//
// For a closed genus-0 surface the reconstruction satisfies Euler's formula
// V - E + F = 2; see [Graph.EulerCharacteristic].
//
// # Concurrency
//
// Reconstruct is a pure function of its input and may run concurrently on
// different polyhedra. A Graph is read-only after construction.
package skeleton
