package perm_test

import (
	"fmt"

	"github.com/polyfold/polyfold/pkg/perm"
)

func ExampleCycles() {
	// A quarter turn of a square's corners, written as a permutation.
	fmt.Println(perm.Cycles([]int{1, 2, 3, 0}))
	fmt.Println(perm.Order([]int{1, 2, 3, 0}))
	// Output:
	// [[0 1 2 3]]
	// 4
}

func ExampleFixed() {
	// A reflection of a square through the diagonal 0-2.
	fmt.Println(perm.Fixed([]int{0, 3, 2, 1}))
	// Output:
	// [0 2]
}
