// Package pkg provides the core libraries of polyfold.
//
// # Overview
//
// Polyfold works on polyhedra described only by face adjacency: each face
// lists, in cyclic order, the edge on each side and the face across it. From
// that it recovers vertex identity, enumerates the symmetries of the edge
// graph, and expands canonical edge unfoldings into every isomorphic copy.
// The results feed an external spanning-tree counter.
//
// # Architecture
//
// The typical data flow:
//
//	polyhedron JSON
//	     ↓
//	[polyhedron] package (validate adjacency)
//	     ↓
//	[skeleton] package (merge face corners into vertices, build the 1-skeleton)
//	     ↓
//	[symmetry] package (automorphisms, edge permutations, zero flags)
//	     ↓
//	automorphism artifact
//
// and, for unfoldings:
//
//	canonical unfolding records (JSONL)
//	     ↓
//	[unfold] package (connectivity sequence, mirror, search)
//	     ↓
//	every isomorphic record (JSONL)
//
// # Quick Start
//
//	p := polyhedron.MustBuiltin("cube")
//	rec, _ := skeleton.Reconstruct(p)
//	res, _ := symmetry.Search{}.Analyze(ctx, rec.Graph)
//	fmt.Println(res.GroupOrder()) // 48
//
// # Main Packages
//
// ## Domain
//
// [polyhedron] - Face / neighbor model, JSON I/O, structural validation and a
// few built-in solids.
//
// [skeleton] - Union-find vertex reconstruction, the skeleton graph, .grh
// edge lists, Euler characteristic and DOT/SVG rendering.
//
// [unfold] - Connectivity sequences (build, flip), the isomorphic unfolding
// search, and the unfolding record format.
//
// [symmetry] - Backtracking automorphism search, induced edge permutations,
// the zero-flag pre-filter, edge orbits, Burnside averaging and the artifact
// read by the counter.
//
// [perm] - Small permutation helpers shared by the above.
//
// ## Infrastructure
//
// [pipeline] - Runner composing the stages with caching, logging and
// timeouts. Used by both the CLI and the HTTP API.
//
// [cache] - Cache interface with file, redis and null backends, plus
// content-addressed key derivation.
//
// [server] - chi HTTP API over the pipeline.
//
// [observability] - Hook registry for pipeline, cache and server events.
//
// [errors] - Structured error codes shared by every package.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/symmetry/... # Specific package
//	go test -run Example ./... # Examples only
//
// Redis-backed cache tests run when POLYFOLD_TEST_REDIS names a server.
//
// [polyhedron]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/polyhedron
// [skeleton]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/skeleton
// [unfold]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/unfold
// [symmetry]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/symmetry
// [perm]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/perm
// [pipeline]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/cache
// [server]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/server
// [observability]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/observability
// [errors]: https://pkg.go.dev/github.com/polyfold/polyfold/pkg/errors
package pkg
