// Package hull builds the orthogonal outline of a cluster of overlapping
// rectangles.
//
// The outline is the orthogonal convex hull (the "staircase" hull) of the
// cluster's corner set: the smallest rectilinear polygon that contains
// every rectangle and is convex along both axes. It is traced as four
// monotone staircase chains, one per quadrant, joined through their inner
// corners:
//
//	   NW ┌──────┐ NE
//	      │      └──┐
//	   ┌──┘         │
//	   │         ┌──┘
//	SW └─────────┘ SE
//
// Output polygons wind clockwise in screen coordinates, start at the
// leftmost of the topmost vertices, contain no consecutive duplicates or
// collinear interior vertices, and are closed.
package hull

import (
	"cmp"
	"slices"

	"github.com/matzehuels/lifeline/pkg/geom"
)

// Build returns the orthogonal hull of cluster. An empty cluster yields
// nil. Zero-area rectangles contribute their coincident corners and may
// yield a degenerate polygon.
func Build(cluster []geom.Rect) geom.Polygon {
	pts := CornerSet(cluster)
	if len(pts) == 0 {
		return nil
	}

	var ring geom.Polygon
	ring = appendChain(ring, northEast(pts), func(a, b geom.Point) geom.Point { return geom.Pt(a.X, b.Y) })
	ring = appendChain(ring, southEast(pts), func(a, b geom.Point) geom.Point { return geom.Pt(b.X, a.Y) })
	ring = appendChain(ring, southWest(pts), func(a, b geom.Point) geom.Point { return geom.Pt(a.X, b.Y) })
	ring = appendChain(ring, northWest(pts), func(a, b geom.Point) geom.Point { return geom.Pt(b.X, a.Y) })

	ring = ring.Close().Simplify().Ring()
	return rotateToTopLeft(ring).Close()
}

// CornerSet returns the four corners of every rectangle in cluster plus
// the four corners of every pairwise positive-area intersection. The
// result is deduplicated and sorted by y, then x.
func CornerSet(cluster []geom.Rect) []geom.Point {
	seen := make(map[geom.Point]struct{}, 4*len(cluster))
	var pts []geom.Point
	add := func(r geom.Rect) {
		for _, c := range r.Corners() {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			pts = append(pts, c)
		}
	}

	for i, r := range cluster {
		add(r)
		for _, o := range cluster[i+1:] {
			if in, ok := r.Intersection(o); ok {
				add(in)
			}
		}
	}

	slices.SortFunc(pts, comparePoints)
	return pts
}

func comparePoints(a, b geom.Point) int {
	return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
}

// appendChain appends chain to ring, inserting the inner corner between
// each pair of consecutive staircase points.
func appendChain(ring geom.Polygon, chain []geom.Point, inner func(a, b geom.Point) geom.Point) geom.Polygon {
	for i, p := range chain {
		ring = append(ring, p)
		if i+1 < len(chain) {
			ring = append(ring, inner(p, chain[i+1]))
		}
	}
	return ring
}

// staircase sweeps pts in the given order and keeps every point that
// improves on all points seen before it.
func staircase(pts []geom.Point, order func(a, b geom.Point) int, better func(y, best int) bool) []geom.Point {
	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, order)

	var chain []geom.Point
	for i, p := range sorted {
		if i == 0 || better(p.Y, chain[len(chain)-1].Y) {
			chain = append(chain, p)
		}
	}
	return chain
}

func less(y, best int) bool    { return y < best }
func greater(y, best int) bool { return y > best }

// northEast runs from the rightmost topmost point down to the topmost
// rightmost point.
func northEast(pts []geom.Point) []geom.Point {
	chain := staircase(pts, func(a, b geom.Point) int {
		return cmp.Or(cmp.Compare(b.X, a.X), cmp.Compare(a.Y, b.Y))
	}, less)
	slices.Reverse(chain)
	return chain
}

// southEast runs from the bottommost rightmost point to the rightmost
// bottommost point.
func southEast(pts []geom.Point) []geom.Point {
	return staircase(pts, func(a, b geom.Point) int {
		return cmp.Or(cmp.Compare(b.X, a.X), cmp.Compare(b.Y, a.Y))
	}, greater)
}

// southWest runs from the leftmost bottommost point to the bottommost
// leftmost point.
func southWest(pts []geom.Point) []geom.Point {
	chain := staircase(pts, func(a, b geom.Point) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(b.Y, a.Y))
	}, greater)
	slices.Reverse(chain)
	return chain
}

// northWest runs from the topmost leftmost point to the leftmost topmost
// point.
func northWest(pts []geom.Point) []geom.Point {
	return staircase(pts, func(a, b geom.Point) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	}, less)
}

func rotateToTopLeft(ring geom.Polygon) geom.Polygon {
	if len(ring) == 0 {
		return ring
	}
	start := 0
	for i, p := range ring {
		if comparePoints(p, ring[start]) < 0 {
			start = i
		}
	}
	out := make(geom.Polygon, 0, len(ring)+1)
	out = append(out, ring[start:]...)
	return append(out, ring[:start]...)
}
