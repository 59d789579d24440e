// Package geom provides the integer geometry primitives shared by the
// lifeline engine: rectangles, points and closed polygons.
//
// # Coordinates
//
// All coordinates are absolute diagram units. The y axis grows downward, as
// on screen, so a rectangle's Y is its top edge and [Rect.Bottom] is larger.
//
// # Values
//
// [Rect], [Point] and [Polygon] are plain values. Functions in this module
// never mutate a rectangle in place; they return new values instead:
//
//	r := geom.Rect{X: 10, Y: 10, Width: 50, Height: 20}
//	moved := r.WithY(15)
//
// # Overlap
//
// Two rectangles overlap only when their intersection has positive area.
// Rectangles that merely touch along an edge or a corner do not overlap.
// This is the relation used to build clusters of activity bars.
//
// # Polygons
//
// Engine-produced polygons are closed: the first point is repeated at the
// end. [Polygon.ProperCrossings] reports transversal edge crossings, which is
// how simplicity is checked; collinear retracing of an edge (the lifeline
// stem is walked down and back up) is not a crossing.
package geom
