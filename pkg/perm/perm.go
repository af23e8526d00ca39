// Package perm provides helpers for permutations of [0, n).
//
// A permutation is represented as a slice p where p[i] is the image of i.
// Automorphisms of a polyhedron's skeleton are stored in this form both on
// vertices and on edges; the symmetry engine and the CLI's cycle notation
// share these helpers.
package perm

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the identity permutation of n elements.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// IsValid reports whether p is a bijection on [0, len(p)).
func IsValid(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// IsIdentity reports whether p maps every element to itself.
func IsIdentity(p []int) bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// Cycles returns the cycle decomposition of p, fixed points included.
// Each cycle starts at its smallest element and cycles are ordered by that
// element, so the result is canonical.
func Cycles(p []int) [][]int {
	seen := make([]bool, len(p))
	var cycles [][]int
	for start := range p {
		if seen[start] {
			continue
		}
		var c []int
		for x := start; !seen[x]; x = p[x] {
			seen[x] = true
			c = append(c, x)
		}
		cycles = append(cycles, c)
	}
	return cycles
}

// Fixed returns the elements i with p[i] == i, in ascending order.
func Fixed(p []int) []int {
	var fixed []int
	for i, v := range p {
		if i == v {
			fixed = append(fixed, i)
		}
	}
	return fixed
}

// Order returns the order of p in the symmetric group: the least k >= 1 with
// p^k the identity (the lcm of its cycle lengths).
func Order(p []int) int {
	order := 1
	for _, c := range Cycles(p) {
		order = lcm(order, len(c))
	}
	return order
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
