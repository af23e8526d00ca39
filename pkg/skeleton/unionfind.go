package skeleton

// UnionFind is a disjoint-set forest over the integers [0, n), stored as
// parent and rank arrays. The zero value is empty; use NewUnionFind.
type UnionFind struct {
	parent []int
	rank   []int
}

// NewUnionFind creates n singleton sets.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

// Len returns the number of elements.
func (uf *UnionFind) Len() int { return len(uf.parent) }

// Find returns the representative of x's set. It runs iteratively and
// compresses the path it walked.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

// Union merges the sets containing x and y by rank.
// It reports whether the two were previously disjoint.
func (uf *UnionFind) Union(x, y int) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
	return true
}

// Same reports whether x and y are in the same set.
func (uf *UnionFind) Same(x, y int) bool {
	return uf.Find(x) == uf.Find(y)
}

// Dense maps every element to the index of its set, numbering sets 0, 1, ...
// in order of their smallest element. It returns the mapping and the number
// of sets.
func (uf *UnionFind) Dense() ([]int, int) {
	ids := make([]int, len(uf.parent))
	byRoot := make(map[int]int)
	for x := range uf.parent {
		r := uf.Find(x)
		id, ok := byRoot[r]
		if !ok {
			id = len(byRoot)
			byRoot[r] = id
		}
		ids[x] = id
	}
	return ids, len(byRoot)
}
