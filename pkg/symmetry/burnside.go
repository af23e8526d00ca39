package symmetry

import (
	"math/big"

	"github.com/polyfold/polyfold/pkg/errors"
	"github.com/polyfold/polyfold/pkg/perm"
)

// EdgeOrbits labels every edge with the index of its non-trivial cycle under
// an edge permutation, or -1 when the edge is fixed. Cycles are numbered in
// order of their smallest edge.
func EdgeOrbits(edgePerm []int) []int {
	orbit := make([]int, len(edgePerm))
	next := 0
	for _, c := range perm.Cycles(edgePerm) {
		if len(c) == 1 {
			orbit[c[0]] = -1
			continue
		}
		for _, e := range c {
			orbit[e] = next
		}
		next++
	}
	return orbit
}

// BurnsideAverage returns the number of spanning-tree classes
// Σ|T_g| / |G| given the fixed-tree counts of each entry. counts[i] belongs
// to entries[i]; counts of zero-flagged entries are ignored and may be nil.
// The sum must be divisible by the group order.
func BurnsideAverage(entries []Entry, counts []*big.Int) (*big.Int, error) {
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty automorphism group")
	}
	if len(counts) != len(entries) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "got %d counts for %d entries", len(counts), len(entries))
	}
	sum := new(big.Int)
	for i, e := range entries {
		if e.Zero {
			continue
		}
		if counts[i] == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "entry %d has no count", i)
		}
		sum.Add(sum, counts[i])
	}
	order := big.NewInt(int64(len(entries)))
	q, r := new(big.Int).QuoRem(sum, order, new(big.Int))
	if r.Sign() != 0 {
		return nil, errors.New(errors.ErrCodeAutomorphismInconsistent,
			"sum of fixed counts %s is not divisible by group order %d", sum, len(entries))
	}
	return q, nil
}
