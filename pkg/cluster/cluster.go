// Package cluster partitions activity-bar rectangles into groups of
// transitively overlapping rectangles.
//
// # Overlap
//
// Two rectangles are linked when their intersection has positive area.
// Rectangles that only touch along an edge or at a corner are not linked.
// A cluster is a connected component of that relation, so two rectangles
// that do not overlap each other still share a cluster when a chain of
// overlapping rectangles connects them:
//
//	R1 ─ overlaps ─ R2 ─ overlaps ─ R3   =>  {R1, R2, R3}
//
// # Determinism
//
// [Group] is deterministic. Clusters are ordered by the input position of
// their first member, and members keep their input order. Every input
// element, including duplicates and zero-area rectangles, lands in exactly
// one cluster.
//
// The components are found with an iterative union-find, so deep chains
// of overlapping bars never grow the goroutine stack.
package cluster

import "github.com/matzehuels/lifeline/pkg/geom"

// Group returns the clusters of rects. An empty input yields an empty
// result.
func Group(rects []geom.Rect) [][]geom.Rect {
	idx := GroupIndices(rects)
	out := make([][]geom.Rect, len(idx))
	for i, members := range idx {
		c := make([]geom.Rect, len(members))
		for j, m := range members {
			c[j] = rects[m]
		}
		out[i] = c
	}
	return out
}

// GroupIndices returns the same partition as [Group], expressed as
// indices into rects. Callers use it to map clusters back to the
// identities of the rectangles.
func GroupIndices(rects []geom.Rect) [][]int {
	n := len(rects)
	if n == 0 {
		return [][]int{}
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rects[i].Overlaps(rects[j]) {
				uf.union(i, j)
			}
		}
	}

	slot := make(map[int]int, n)
	var out [][]int
	for i := 0; i < n; i++ {
		root := uf.find(i)
		k, ok := slot[root]
		if !ok {
			k = len(out)
			slot[root] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], i)
	}
	return out
}

type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// find uses path halving.
func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
