// Package pkg provides the core libraries for lifeline geometry in
// sequence diagrams.
//
// # Overview
//
// A lifeline is a participant's header box with a vertical stem below it.
// Activity bars (execution occurrences) sit on the stem, may overlap and
// may nest. The libraries compute the outline messages attach to, answer
// hit tests, and keep bars from colliding when one is placed, moved or
// deleted. The pkg directory is organized into three main areas:
//
//  1. Geometry: [geom], [cluster], [hull]
//  2. Lifelines: [lifeline], [placement], [verify]
//  3. Support: [config], [errors], [observability], [scene], [buildinfo]
//
// # Architecture
//
// The data flow for an outline query:
//
//	activity-bar rectangles
//	         ↓
//	    [cluster] package (overlap components, union-find)
//	         ↓
//	    [hull] package (orthogonal hull per cluster)
//	         ↓
//	    [lifeline] package (bands, header, stem, cached outline)
//	         ↓
//	    attach polygon, hit-test polygon, ContainsPoint
//
// And for an edit:
//
//	proposal → [placement].Resolve → [placement].Relocate → ApplyMoves
//
// # Quick Start
//
//	l := lifeline.New("server", geom.R(0, 0, 100, 300), 40)
//	r := placement.New(config.Default())
//
//	// Place a bar centred on the stem; siblings it disturbs are moved.
//	rect, moves, _ := r.Place(l, "call-1", placement.Proposal{
//	    Bounds: geom.R(0, 60, -1, 30),
//	    AutoX:  true,
//	})
//
//	outline, _ := l.OutlinePolygon()
//	hit, _ := l.ContainsPoint(50, 120)
//
// # Main Packages
//
// [geom] - Integer points, rectangles and polygons with the predicates the
// engine needs (overlap, containment, proper crossings).
//
// [cluster] - Groups rectangles into transitive overlap components.
//
// [hull] - Builds the closed orthogonal hull of a cluster.
//
// [lifeline] - The lifeline model, outline composition and the per-lifeline
// outline cache.
//
// [placement] - Resolves conflict-free positions for new or moved bars and
// cascades the change through the bars below.
//
// [verify] - Reusable invariant checks used by tests and the CLI.
//
// [scene] - YAML, TOML and JSON fixtures of lifelines.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/placement/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/buildinfo
// [cluster]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/cluster
// [config]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/errors
// [geom]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/geom
// [hull]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/hull
// [lifeline]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/lifeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/observability
// [placement]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/placement
// [scene]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/scene
// [verify]: https://pkg.go.dev/github.com/matzehuels/lifeline/pkg/verify
package pkg
