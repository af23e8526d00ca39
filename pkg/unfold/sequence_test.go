package unfold

import (
	"testing"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/polyhedron"
)

// Cube edge ids (first appearance over the builtin vertex cycles):
//
//	face 0 (bottom): e0 e1 e2 e3
//	face 2 (front):  e3 e8 e4 e9
//	face 3 (right):  e2 e10 e5 e8
//
// so the path 0 -> 2 enters face 2 at position 0.

func TestBuildFaces(t *testing.T) {
	cube := polyhedron.MustBuiltin("cube")
	tests := []struct {
		name  string
		faces FaceSequence
		want  Sequence
	}{
		{"single", FaceSequence{4}, Sequence{4}},
		{"pair", FaceSequence{0, 2}, Sequence{4, 0, 4}},
		{"turn", FaceSequence{0, 2, 3}, Sequence{4, 0, 4, 1, 4}},
		{"straight", FaceSequence{0, 2, 1}, Sequence{4, 0, 4, 2, 4}},
		{"other turn", FaceSequence{0, 2, 5}, Sequence{4, 0, 4, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildFaces(cube, tt.faces)
			if err != nil {
				t.Fatalf("BuildFaces: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild_Steps(t *testing.T) {
	cube := polyhedron.MustBuiltin("cube")
	got, err := Build(cube, []Step{{0, NoEdge}, {2, 3}, {3, 8}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := (Sequence{4, 0, 4, 1, 4}); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Len() != 3 || got.Gon(2) != 4 || got.Offset(1) != 1 {
		t.Errorf("accessors: Len=%d Gon(2)=%d Offset(1)=%d", got.Len(), got.Gon(2), got.Offset(1))
	}
}

func TestBuild_Errors(t *testing.T) {
	cube := polyhedron.MustBuiltin("cube")
	tests := []struct {
		name  string
		steps []Step
		code  errors.Code
	}{
		{"empty", nil, errors.ErrCodeInvalidInput},
		{"face out of range", []Step{{0, NoEdge}, {9, 3}}, errors.ErrCodeMalformedInput},
		{"repeated face", []Step{{0, NoEdge}, {2, 3}, {0, 3}}, errors.ErrCodeMalformedInput},
		{"edge not on face", []Step{{0, NoEdge}, {2, 8}}, errors.ErrCodeMalformedInput},
		{"edge not shared", []Step{{0, NoEdge}, {1, 3}}, errors.ErrCodeMalformedInput},
		{"edge of earlier face", []Step{{2, NoEdge}, {0, 3}, {3, 3}}, errors.ErrCodeMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(cube, tt.steps)
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSharedEdge(t *testing.T) {
	cube := polyhedron.MustBuiltin("cube")
	if e, err := SharedEdge(cube, 0, 2); err != nil || e != 3 {
		t.Errorf("SharedEdge(0, 2) = %d, %v; want 3", e, err)
	}
	if _, err := SharedEdge(cube, 0, 1); !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("opposite faces: got %v, want MALFORMED_INPUT", err)
	}
	if _, err := BuildFaces(cube, FaceSequence{0, 1}); !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("BuildFaces on non-adjacent faces: got %v", err)
	}
}

func TestFlip(t *testing.T) {
	tests := []struct {
		in, want Sequence
	}{
		{Sequence{4}, Sequence{4}},
		{Sequence{4, 0, 3}, Sequence{4, 0, 3}},
		{Sequence{4, 0, 4, 1, 4}, Sequence{4, 0, 4, 3, 4}},
		{Sequence{4, 0, 4, 2, 4}, Sequence{4, 0, 4, 2, 4}},
		{Sequence{3, 0, 5, 1, 4, 3, 3}, Sequence{3, 0, 5, 4, 4, 1, 3}},
	}
	for _, tt := range tests {
		got := Flip(tt.in)
		if !got.Equal(tt.want) {
			t.Errorf("Flip(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if back := Flip(got); !back.Equal(tt.in) {
			t.Errorf("Flip(Flip(%v)) = %v", tt.in, back)
		}
	}
}

func TestFlip_DoesNotAlias(t *testing.T) {
	in := Sequence{4}
	out := Flip(in)
	out[0] = 9
	if in[0] != 4 {
		t.Error("Flip must return a new slice")
	}
}
