// Package polyhedron models a polyhedron purely by face adjacency.
//
// # Overview
//
// A [Polyhedron] is a list of [Face] values. Each face knows its side count
// (gon) and the cyclic list of its sides, where every side carries the id of
// the edge it lies on and the id of the face across that edge. No coordinates
// and no vertex ids are stored; vertex identity is derived later by the
// skeleton package.
//
// Edge ids are assigned upstream and must be dense in [0, E). An edge listed
// by two faces is interior, an edge listed by one face is on the boundary of
// an open surface (its neighbor is [NoFace]). Adjacent faces list their shared
// edge in opposite directions, as they do when every face boundary is walked
// counterclockwise seen from outside.
//
// # Input Format
//
// [Read] and [ReadFile] decode the JSON form:
//
//	{"faces": [
//	  {"face_id": 0, "gon": 4, "neighbors": [{"edge_id": 0, "face_id": 1}, ...]},
//	  ...
//	]}
//
// [Polyhedron.Validate] checks structure (dense face ids, side counts,
// neighbor ranges) and edge ownership. Violations are reported as
// MALFORMED_INPUT errors from the errors package.
//
// # Built-in Solids
//
// [FromVertexCycles] builds the adjacency description from oriented vertex
// cycles. [Builtin] exposes a small catalog (tetrahedron, cube, octahedron,
// square pyramid, triangular prism, open box) used by tests and the CLI.
package polyhedron
