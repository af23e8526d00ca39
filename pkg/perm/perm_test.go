package perm

import (
	"slices"
	"testing"
)

func TestSeq(t *testing.T) {
	if got := Seq(4); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("Seq(4) = %v", got)
	}
	if got := Seq(0); len(got) != 0 {
		t.Errorf("Seq(0) = %v, want empty", got)
	}
	if got := Seq(-3); len(got) != 0 {
		t.Errorf("Seq(-3) = %v, want empty", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		p    []int
		want bool
	}{
		{[]int{}, true},
		{[]int{0}, true},
		{[]int{2, 0, 1}, true},
		{[]int{0, 0, 1}, false},
		{[]int{0, 3, 1}, false},
		{[]int{-1, 0, 1}, false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.p); got != tt.want {
			t.Errorf("IsValid(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestIsIdentity(t *testing.T) {
	if !IsIdentity(Seq(4)) || !IsIdentity([]int{}) {
		t.Error("Seq should be the identity")
	}
	if IsIdentity([]int{0, 2, 1}) {
		t.Error("[0 2 1] is not the identity")
	}
}

func TestCycles(t *testing.T) {
	p := []int{1, 2, 0, 3, 5, 4}
	got := Cycles(p)
	want := [][]int{{0, 1, 2}, {3}, {4, 5}}
	if len(got) != len(want) {
		t.Fatalf("Cycles(%v) = %v, want %v", p, got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("cycle %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFixedAndOrder(t *testing.T) {
	p := []int{1, 2, 0, 3, 5, 4}
	if got := Fixed(p); !slices.Equal(got, []int{3}) {
		t.Errorf("Fixed = %v, want [3]", got)
	}
	if got := Order(p); got != 6 {
		t.Errorf("Order = %d, want 6", got)
	}
	if got := Order(Seq(5)); got != 1 {
		t.Errorf("Order(identity) = %d, want 1", got)
	}
}
