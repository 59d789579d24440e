package geom

import (
	"math"
	"strings"
)

// Polygon is an ordered list of vertices. Engine-produced polygons are
// closed: the last point equals the first.
type Polygon []Point

// IsClosed reports whether the polygon has at least two points and its
// last point equals its first. A single point is not closed.
func (p Polygon) IsClosed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// Close returns p with its first point appended when it is not already
// closed. An empty polygon stays empty and a single point p becomes
// [p p].
func (p Polygon) Close() Polygon {
	if len(p) == 0 || p.IsClosed() {
		return p
	}
	out := make(Polygon, len(p), len(p)+1)
	copy(out, p)
	return append(out, p[0])
}

// Ring returns the vertices without the closing duplicate.
func (p Polygon) Ring() Polygon {
	if len(p) > 1 && p.IsClosed() {
		return p[:len(p)-1]
	}
	return p
}

// Clone returns an independent copy of p.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// String renders the polygon as a space separated list of points.
func (p Polygon) String() string {
	parts := make([]string, len(p))
	for i, pt := range p {
		parts[i] = pt.String()
	}
	return strings.Join(parts, " ")
}

// Bounds returns the bounding rectangle of all vertices.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p[1:] {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IsOrthogonal reports whether every edge is horizontal or vertical.
func (p Polygon) IsOrthogonal() bool {
	for i := 1; i < len(p); i++ {
		if p[i].X != p[i-1].X && p[i].Y != p[i-1].Y {
			return false
		}
	}
	return true
}

// Simplify removes consecutive duplicate vertices and vertices lying
// strictly between their neighbours on a straight line. Spikes (an edge
// walked out and back) are kept. The result is closed when p was closed.
func (p Polygon) Simplify() Polygon {
	closed := p.IsClosed()
	ring := dedupe(p.Ring().Clone(), closed)
	for changed := true; changed && len(ring) > 2; {
		changed = false
		for i := 0; i < len(ring) && len(ring) > 2; i++ {
			prev := ring[(i+len(ring)-1)%len(ring)]
			next := ring[(i+1)%len(ring)]
			if !closed && (i == 0 || i == len(ring)-1) {
				continue
			}
			if strictlyBetween(prev, ring[i], next) {
				ring = append(ring[:i], ring[i+1:]...)
				changed = true
				i--
			}
		}
		ring = dedupe(ring, closed)
	}
	if closed {
		return ring.Close()
	}
	return ring
}

func dedupe(ring Polygon, cyclic bool) Polygon {
	out := ring[:0]
	for _, pt := range ring {
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	for cyclic && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// strictlyBetween reports whether b lies on segment a-c, distinct from
// both ends.
func strictlyBetween(a, b, c Point) bool {
	if b == a || b == c || orient(a, c, b) != 0 {
		return false
	}
	return b.X >= min(a.X, c.X) && b.X <= max(a.X, c.X) &&
		b.Y >= min(a.Y, c.Y) && b.Y <= max(a.Y, c.Y) &&
		(a.X-b.X)*(c.X-b.X)+(a.Y-b.Y)*(c.Y-b.Y) < 0
}

// Contains reports whether pt lies inside p or on its boundary.
// It uses even-odd ray casting, so edges walked twice cancel out.
func (p Polygon) Contains(pt Point) bool {
	ring := p.Close()
	if len(ring) < 2 {
		return false
	}
	inside := false
	for i := 1; i < len(ring); i++ {
		a, b := ring[i-1], ring[i]
		if onSegment(a, b, pt) {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := float64(a.X) + float64(pt.Y-a.Y)*float64(b.X-a.X)/float64(b.Y-a.Y)
			if float64(pt.X) < x {
				inside = !inside
			}
		}
	}
	return inside
}

// NearBoundary reports whether the square of half-size d centred on pt
// touches any edge of p.
func (p Polygon) NearBoundary(pt Point, d int) bool {
	ring := p.Close()
	box := Rect{X: pt.X - d, Y: pt.Y - d, Width: 2 * d, Height: 2 * d}
	for i := 1; i < len(ring); i++ {
		if segmentTouchesRect(ring[i-1], ring[i], box) {
			return true
		}
	}
	return false
}

// Crossing describes two polygon edges that properly cross, by the index
// of their first vertex.
type Crossing struct {
	EdgeA, EdgeB int
}

// ProperCrossings returns every pair of edges whose interiors cross at a
// single point. Collinear overlaps and touching endpoints are not
// crossings.
func (p Polygon) ProperCrossings() []Crossing {
	ring := p.Close()
	var out []Crossing
	for i := 1; i < len(ring); i++ {
		a, b := ring[i-1], ring[i]
		if a == b {
			continue
		}
		for j := i + 1; j < len(ring); j++ {
			c, d := ring[j-1], ring[j]
			if c == d {
				continue
			}
			if properCross(a, b, c, d) {
				out = append(out, Crossing{EdgeA: i - 1, EdgeB: j - 1})
			}
		}
	}
	return out
}

// IsSimple reports whether p has no proper edge crossings.
func (p Polygon) IsSimple() bool {
	return len(p.ProperCrossings()) == 0
}

// Area returns the absolute area enclosed by p using the shoelace formula.
func (p Polygon) Area() float64 {
	ring := p.Close()
	var sum int
	for i := 1; i < len(ring); i++ {
		sum += ring[i-1].X*ring[i].Y - ring[i].X*ring[i-1].Y
	}
	return math.Abs(float64(sum)) / 2
}

func orient(a, b, c Point) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func onSegment(a, b, pt Point) bool {
	if orient(a, b, pt) != 0 {
		return false
	}
	return pt.X >= min(a.X, b.X) && pt.X <= max(a.X, b.X) &&
		pt.Y >= min(a.Y, b.Y) && pt.Y <= max(a.Y, b.Y)
}

func properCross(a, b, c, d Point) bool {
	o1, o2 := orient(a, b, c), orient(a, b, d)
	o3, o4 := orient(c, d, a), orient(c, d, b)
	return o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 && o1 != o2 && o3 != o4
}

func segmentsTouch(a, b, c, d Point) bool {
	if properCross(a, b, c, d) {
		return true
	}
	return onSegment(a, b, c) || onSegment(a, b, d) || onSegment(c, d, a) || onSegment(c, d, b)
}

func segmentTouchesRect(a, b Point, r Rect) bool {
	in := func(pt Point) bool {
		return pt.X >= r.X && pt.X <= r.Right() && pt.Y >= r.Y && pt.Y <= r.Bottom()
	}
	if in(a) || in(b) {
		return true
	}
	c := r.Corners()
	for i := range c {
		if segmentsTouch(a, b, c[i], c[(i+1)%4]) {
			return true
		}
	}
	return false
}
