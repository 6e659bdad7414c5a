// Package unionfind implements a disjoint-set forest over string ids with
// path compression and union by rank.
//
// Elements are registered lazily: the first Find, Union or Add that mentions
// an id makes it a singleton set with rank 0.
package unionfind

// UnionFind partitions string ids into disjoint sets.
// It is not safe for concurrent use.
type UnionFind struct {
	parent map[string]string
	rank   map[string]int
}

// New creates an empty UnionFind.
func New() *UnionFind {
	return &UnionFind{
		parent: make(map[string]string),
		rank:   make(map[string]int),
	}
}

// Add registers x as a singleton set. Adding an existing element is a no-op.
func (uf *UnionFind) Add(x string) {
	if _, ok := uf.parent[x]; ok {
		return
	}
	uf.parent[x] = x
	uf.rank[x] = 0
}

// Has reports whether x has been registered.
func (uf *UnionFind) Has(x string) bool {
	_, ok := uf.parent[x]
	return ok
}

// Find returns the representative of the set containing x.
// Every element visited on the way is re-pointed directly at the root.
func (uf *UnionFind) Find(x string) string {
	uf.Add(x)

	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}

	for x != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

// Union merges the sets containing x and y and reports whether they were
// separate. The lower-rank root goes under the higher-rank one; on equal rank
// the root of x becomes the parent and its rank grows by one.
func (uf *UnionFind) Union(x, y string) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
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

// Connected reports whether x and y are in the same set.
func (uf *UnionFind) Connected(x, y string) bool {
	return uf.Find(x) == uf.Find(y)
}

// Len returns the number of registered elements.
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

// Sets returns the number of disjoint sets.
func (uf *UnionFind) Sets() int {
	n := 0
	for x, p := range uf.parent {
		if x == p {
			n++
		}
	}
	return n
}

// Rank returns the rank of x's root. Unknown elements report 0.
func (uf *UnionFind) Rank(x string) int {
	if !uf.Has(x) {
		return 0
	}
	return uf.rank[uf.Find(x)]
}
