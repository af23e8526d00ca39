package polyhedron

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/polyfold/polyfold/pkg/errors"
)

func TestBuiltinCounts(t *testing.T) {
	tests := []struct {
		name   string
		faces  int
		edges  int
		closed bool
	}{
		{"tetrahedron", 4, 6, true},
		{"cube", 6, 12, true},
		{"octahedron", 8, 12, true},
		{"square-pyramid", 5, 8, true},
		{"triangular-prism", 5, 9, true},
		{"open-box", 5, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Builtin(tt.name)
			if err != nil {
				t.Fatalf("Builtin(%q): %v", tt.name, err)
			}
			if got := p.NumFaces(); got != tt.faces {
				t.Errorf("NumFaces() = %d, want %d", got, tt.faces)
			}
			if got := p.NumEdges(); got != tt.edges {
				t.Errorf("NumEdges() = %d, want %d", got, tt.edges)
			}
			if got := p.Closed(); got != tt.closed {
				t.Errorf("Closed() = %v, want %v", got, tt.closed)
			}
		})
	}
}

func TestBuiltinUnknown(t *testing.T) {
	if _, err := Builtin("dodecahedron"); err == nil {
		t.Error("expected error for unknown solid")
	}
}

func TestBuiltinNamesSorted(t *testing.T) {
	names := BuiltinNames()
	if !slices.IsSorted(names) {
		t.Errorf("BuiltinNames() not sorted: %v", names)
	}
	if !slices.Contains(names, "cube") {
		t.Errorf("BuiltinNames() missing cube: %v", names)
	}
}

func TestFromVertexCycles_InconsistentOrientation(t *testing.T) {
	// Second face repeats the directed side 0->1.
	_, err := FromVertexCycles([][]int{{0, 1, 2}, {0, 1, 3}})
	if err == nil {
		t.Fatal("expected orientation error")
	}
}

func TestOwners(t *testing.T) {
	p := MustBuiltin("open-box")
	owners := p.Owners()
	if len(owners) != 12 {
		t.Fatalf("len(Owners()) = %d, want 12", len(owners))
	}
	interior, boundary := 0, 0
	for _, own := range owners {
		switch len(own) {
		case 1:
			boundary++
		case 2:
			interior++
		default:
			t.Errorf("unexpected owner count %d", len(own))
		}
	}
	if interior != 8 || boundary != 4 {
		t.Errorf("interior=%d boundary=%d, want 8 and 4", interior, boundary)
	}
	if got := p.BoundaryEdges(); len(got) != 4 {
		t.Errorf("BoundaryEdges() = %v, want 4 edges", got)
	}
}

func TestSharedEdges(t *testing.T) {
	p := MustBuiltin("cube")
	// Bottom (0) and top (1) are opposite.
	if got := p.SharedEdges(0, 1); len(got) != 0 {
		t.Errorf("SharedEdges(0,1) = %v, want none", got)
	}
	got := p.SharedEdges(0, 2)
	if len(got) != 1 {
		t.Fatalf("SharedEdges(0,2) = %v, want one edge", got)
	}
	if p.Faces[0].EdgePosition(got[0]) < 0 || p.Faces[2].EdgePosition(got[0]) < 0 {
		t.Errorf("shared edge %d not listed by both faces", got[0])
	}
	if got := p.SharedEdges(0, 99); got != nil {
		t.Errorf("SharedEdges out of range = %v, want nil", got)
	}
}

func TestFaceAccessors(t *testing.T) {
	f := MustBuiltin("cube").Faces[0]
	if f.EdgeAt(-1) != f.EdgeAt(f.Gon-1) {
		t.Error("EdgeAt should wrap negative positions")
	}
	if f.NeighborAt(f.Gon) != f.NeighborAt(0) {
		t.Error("NeighborAt should wrap positions past gon")
	}
	if f.EdgePosition(f.EdgeAt(2)) != 2 {
		t.Error("EdgePosition should invert EdgeAt")
	}
	if f.EdgePosition(1000) != -1 {
		t.Error("EdgePosition of unknown edge should be -1")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Polyhedron)
	}{
		{"no faces", func(p *Polyhedron) { p.Faces = nil }},
		{"non-dense id", func(p *Polyhedron) { p.Faces[1].ID = 7 }},
		{"small gon", func(p *Polyhedron) {
			p.Faces[0].Gon = 2
			p.Faces[0].Neighbors = p.Faces[0].Neighbors[:2]
		}},
		{"gon mismatch", func(p *Polyhedron) { p.Faces[0].Gon = 5 }},
		{"self neighbor", func(p *Polyhedron) { p.Faces[0].Neighbors[0].FaceID = 0 }},
		{"neighbor out of range", func(p *Polyhedron) { p.Faces[0].Neighbors[0].FaceID = 40 }},
		{"negative edge", func(p *Polyhedron) { p.Faces[0].Neighbors[0].EdgeID = -2 }},
		{"duplicate edge on face", func(p *Polyhedron) {
			p.Faces[0].Neighbors[1].EdgeID = p.Faces[0].Neighbors[0].EdgeID
		}},
		{"edge id gap", func(p *Polyhedron) {
			// Renumber edge 5 to 20 on both owners; ids 5..19 become unowned.
			for fi := range p.Faces {
				for i := range p.Faces[fi].Neighbors {
					if p.Faces[fi].Neighbors[i].EdgeID == 5 {
						p.Faces[fi].Neighbors[i].EdgeID = 20
					}
				}
			}
		}},
		{"neighbors disagree", func(p *Polyhedron) {
			nb := p.Faces[0].Neighbors[0]
			other := (nb.FaceID + 1) % len(p.Faces)
			if other == 0 {
				other = 1
			}
			p.Faces[0].Neighbors[0].FaceID = other
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustBuiltin("cube")
			tt.mutate(p)
			err := p.Validate()
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeMalformedInput)
			}
		})
	}
}

func TestValidate_BoundaryNamesFace(t *testing.T) {
	p := MustBuiltin("open-box")
	b := p.BoundaryEdges()[0]
	own := p.Owners()[b][0]
	p.Faces[own.Face].Neighbors[own.Position].FaceID = (own.Face + 1) % p.NumFaces()
	if err := p.Validate(); !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeMalformedInput)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	p := MustBuiltin("triangular-prism")
	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.NumFaces() != p.NumFaces() || got.NumEdges() != p.NumEdges() {
		t.Errorf("round trip changed shape: %d/%d faces, %d/%d edges",
			got.NumFaces(), p.NumFaces(), got.NumEdges(), p.NumEdges())
	}
	for i := range p.Faces {
		if !slices.Equal(got.Faces[i].Neighbors, p.Faces[i].Neighbors) {
			t.Errorf("face %d neighbors differ", i)
		}
	}
}

func TestRead_Errors(t *testing.T) {
	if _, err := Read(strings.NewReader("{not json")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Read(bad json) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if _, err := Read(strings.NewReader(`{"faces":[]}`)); !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("Read(empty) = %v, want %s", err, errors.ErrCodeMalformedInput)
	}
}

func TestReadFile(t *testing.T) {
	path := t.TempDir() + "/cube.json"
	if err := WriteFile(MustBuiltin("cube"), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p.NumFaces() != 6 {
		t.Errorf("NumFaces() = %d, want 6", p.NumFaces())
	}
	if _, err := ReadFile(t.TempDir() + "/missing.json"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
