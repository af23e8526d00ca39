package skeleton

import (
	"bytes"
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/polyhedron"
)

func TestReconstruct_Builtins(t *testing.T) {
	tests := []struct {
		name     string
		vertices int
		edges    int
		euler    int
		degree   int // 0 = mixed
	}{
		{"tetrahedron", 4, 6, 2, 3},
		{"cube", 8, 12, 2, 3},
		{"octahedron", 6, 12, 2, 4},
		{"square-pyramid", 5, 8, 2, 0},
		{"triangular-prism", 6, 9, 2, 3},
		{"open-box", 8, 12, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Reconstruct(polyhedron.MustBuiltin(tt.name))
			if err != nil {
				t.Fatalf("Reconstruct: %v", err)
			}
			g := r.Graph
			if g.NumVertices != tt.vertices {
				t.Errorf("V = %d, want %d", g.NumVertices, tt.vertices)
			}
			if g.NumEdges() != tt.edges {
				t.Errorf("E = %d, want %d", g.NumEdges(), tt.edges)
			}
			if got := r.EulerCharacteristic(); got != tt.euler {
				t.Errorf("V-E+F = %d, want %d", got, tt.euler)
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !g.Connected() {
				t.Error("skeleton should be connected")
			}
			if tt.degree > 0 {
				for v, d := range g.Degrees() {
					if d != tt.degree {
						t.Errorf("deg(%d) = %d, want %d", v, d, tt.degree)
					}
				}
			}
		})
	}
}

func TestReconstruct_DenseIDs(t *testing.T) {
	r, err := Reconstruct(polyhedron.MustBuiltin("cube"))
	if err != nil {
		t.Fatal(err)
	}
	used := make([]bool, r.Graph.NumVertices)
	for _, e := range r.Graph.Edges {
		if e.U >= e.V {
			t.Errorf("edge %s not normalized", e)
		}
		used[e.U], used[e.V] = true, true
	}
	for v, ok := range used {
		if !ok {
			t.Errorf("vertex %d unused", v)
		}
	}
	// Corner 0 of face 0 is the smallest virtual vertex, so it becomes vertex 0.
	if r.Corners[0][0] != 0 {
		t.Errorf("Corners[0][0] = %d, want 0", r.Corners[0][0])
	}
}

func TestReconstruct_OwnersAgree(t *testing.T) {
	p := polyhedron.MustBuiltin("octahedron")
	r, err := Reconstruct(p)
	if err != nil {
		t.Fatal(err)
	}
	for id, own := range p.Owners() {
		for _, o := range own {
			gon := p.Faces[o.Face].Gon
			got := NewPair(r.Corners[o.Face][o.Position], r.Corners[o.Face][(o.Position+1)%gon])
			if got != r.Graph.Edges[id] {
				t.Errorf("edge %d: face %d yields %s, graph has %s", id, o.Face, got, r.Graph.Edges[id])
			}
		}
	}
}

func TestReconstruct_Members(t *testing.T) {
	p := polyhedron.MustBuiltin("cube")
	r, err := Reconstruct(p)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for v, members := range r.Members {
		// Every cube vertex is a corner of exactly three faces.
		if len(members) != 3 {
			t.Errorf("vertex %d has %d corners, want 3", v, len(members))
		}
		for _, m := range members {
			if r.Corners[m.Face][m.Position] != v {
				t.Errorf("member %+v of %d maps to %d", m, v, r.Corners[m.Face][m.Position])
			}
		}
		total += len(members)
	}
	if total != 24 {
		t.Errorf("total corners = %d, want 24", total)
	}
}

func TestReconstruct_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *polyhedron.Polyhedron)
	}{
		{"unowned edge id", func(p *polyhedron.Polyhedron) {
			p.Faces[0].Neighbors[0].EdgeID = 40
			p.Faces[3].Neighbors[2].EdgeID = 40
		}},
		{"three owners", func(p *polyhedron.Polyhedron) {
			p.Faces[2].Neighbors[0].EdgeID = p.Faces[0].Neighbors[0].EdgeID
		}},
		{"id mismatch", func(p *polyhedron.Polyhedron) { p.Faces[1].ID = 3 }},
		{"gon mismatch", func(p *polyhedron.Polyhedron) { p.Faces[1].Gon = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := polyhedron.MustBuiltin("tetrahedron")
			tt.mutate(p)
			_, err := Reconstruct(p)
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("Reconstruct() = %v, want %s", err, errors.ErrCodeMalformedInput)
			}
		})
	}
}

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(6)
	if !uf.Union(0, 1) || !uf.Union(2, 3) || !uf.Union(1, 3) {
		t.Fatal("unions of disjoint sets should report true")
	}
	if uf.Union(0, 2) {
		t.Error("union within one set should report false")
	}
	if !uf.Same(0, 3) || uf.Same(0, 4) {
		t.Error("Same() wrong")
	}
	ids, n := uf.Dense()
	if n != 3 {
		t.Errorf("Dense() sets = %d, want 3", n)
	}
	if want := []int{0, 0, 0, 0, 1, 2}; !slices.Equal(ids, want) {
		t.Errorf("Dense() = %v, want %v", ids, want)
	}
}

func TestUnionFind_LongChain(t *testing.T) {
	const n = 200000
	uf := NewUnionFind(n)
	// Link without rank balancing to build the deepest possible tree.
	for i := 1; i < n; i++ {
		uf.parent[i] = i - 1
	}
	if uf.Find(n-1) != 0 {
		t.Fatal("Find on chain returned wrong root")
	}
	if uf.parent[n-1] != 0 {
		t.Error("Find should compress the walked path")
	}
}

func TestGraphValidate(t *testing.T) {
	tests := []struct {
		name string
		g    *Graph
		want error
	}{
		{"ok", &Graph{NumVertices: 3, Edges: []Pair{{0, 1}, {1, 2}}}, nil},
		{"self loop", &Graph{NumVertices: 3, Edges: []Pair{{1, 1}}}, ErrSelfLoop},
		{"duplicate", &Graph{NumVertices: 3, Edges: []Pair{{0, 1}, {1, 0}}}, ErrDuplicateEdge},
		{"range", &Graph{NumVertices: 2, Edges: []Pair{{0, 2}}}, ErrVertexRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !stderrors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInducedConnected(t *testing.T) {
	// Path 0-1-2-3.
	g := NewGraph(4, []Pair{{0, 1}, {1, 2}, {2, 3}})
	tests := []struct {
		vertices []int
		want     bool
	}{
		{nil, false},
		{[]int{2}, true},
		{[]int{0, 1, 2}, true},
		{[]int{0, 2}, false},
		{[]int{0, 3}, false},
	}
	for _, tt := range tests {
		if got := g.InducedConnected(tt.vertices); got != tt.want {
			t.Errorf("InducedConnected(%v) = %v, want %v", tt.vertices, got, tt.want)
		}
	}
}

func TestGRHRoundTrip(t *testing.T) {
	r, err := Reconstruct(polyhedron.MustBuiltin("square-pyramid"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteGRH(r.Graph, &buf); err != nil {
		t.Fatalf("WriteGRH: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 8 {
		t.Errorf("wrote %d lines, want 8", lines)
	}
	g, err := ReadGRH(&buf)
	if err != nil {
		t.Fatalf("ReadGRH: %v", err)
	}
	if g.NumVertices != r.Graph.NumVertices || !slices.Equal(g.Edges, r.Graph.Edges) {
		t.Errorf("round trip mismatch: got %v, want %v", g.Edges, r.Graph.Edges)
	}
}

func TestReadGRH_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"three fields", "0 1 2\n", errors.ErrCodeInvalidFormat},
		{"not a number", "0 x\n", errors.ErrCodeInvalidFormat},
		{"negative", "0 -1\n", errors.ErrCodeInvalidFormat},
		{"self loop", "0 1\n2 2\n", errors.ErrCodeMalformedInput},
		{"duplicate", "0 1\n1 0\n", errors.ErrCodeMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGRH(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadGRH(%q) = %v, want %s", tt.input, err, tt.code)
			}
		})
	}
}

func TestReadGRH_BlankLines(t *testing.T) {
	g, err := ReadGRH(strings.NewReader("\n0 1\n\n1 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if g.NumVertices != 3 || g.NumEdges() != 2 {
		t.Errorf("got V=%d E=%d, want 3 and 2", g.NumVertices, g.NumEdges())
	}
}

func TestGRHFile(t *testing.T) {
	path := t.TempDir() + "/poly.grh"
	g := NewGraph(0, []Pair{{0, 1}, {1, 2}, {2, 0}})
	if err := WriteGRHFile(g, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadGRHFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.Edges, g.Edges) {
		t.Errorf("edges = %v, want %v", got.Edges, g.Edges)
	}
}

func TestToDOT(t *testing.T) {
	g := NewGraph(0, []Pair{{0, 1}, {1, 2}})
	dot := g.ToDOT(map[int]string{1: "red"})

	if !strings.HasPrefix(dot, "graph Skeleton {") {
		t.Error("ToDOT() should start with 'graph Skeleton {'")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("ToDOT() should end with '}'")
	}
	for _, exp := range []string{"v0 -- v1 [label=\"e0\"]", "v1 -- v2 [label=\"e1\", color=\"red\"", "v2 [label=\"2\"]"} {
		if !strings.Contains(dot, exp) {
			t.Errorf("ToDOT() missing %q", exp)
		}
	}
}
