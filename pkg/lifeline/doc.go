// Package lifeline models a sequence-diagram lifeline and composes its
// outline polygon.
//
// # Model
//
// A [Lifeline] owns its bounds, the y-coordinate where its header ends, and
// an ordered list of activity bars ([Bar]). Bars carry absolute
// rectangles in the same coordinate space as the lifeline. Nesting between
// bars is never stored; it follows from their geometry.
//
// # Outline
//
// [Compose] derives two polygons from a lifeline:
//
//   - Attach: the silhouette connections terminate on. It is the header
//     rectangle with a stem descending from the header's centre, bulging
//     around every cluster of overlapping bars.
//   - HitTest: the bare header and stem, with the stem widened by a buffer
//     on both sides, used for pointer tolerance.
//
// The attach polygon walks down the stem visiting each cluster's hull on
// its way, then walks back up visiting the return half of each hull:
//
//	┌──────────┐
//	│  header  │
//	└───┐ ┌────┘
//	    │ │
//	  ┌─┘ └─┐    cluster hull
//	  └─┐ ┌─┘
//	    │ │      stem
//	    └─┘
//
// Clusters whose vertical extents overlap without their bars intersecting
// are merged into one band outlined by its bounding box. This keeps the
// composed polygon simple: the stem never has to pass between two hulls
// that share a y-range.
//
// # Caching
//
// A lifeline caches its composed outline. [Lifeline.Invalidate] is the
// single invalidation point, and every mutator calls it. Queries after an
// invalidation recompute lazily. The cache is not safe for concurrent
// use; distinct lifelines are independent.
package lifeline
