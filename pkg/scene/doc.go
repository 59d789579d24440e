// Package scene reads and writes scene fixtures: read-only snapshots of
// lifelines and their activity bars.
//
// # Overview
//
// A scene stands in for the diagram editor that owns the figures. The
// CLI loads one, runs the geometry engine over it and, after an edit,
// can write the updated snapshot back out.
//
// # Formats
//
// The format is chosen by file extension:
//
//   - .yaml, .yml: YAML
//   - .toml: TOML
//   - .json: JSON
//
// All three share one shape:
//
//	lifelines:
//	  - id: server
//	    bounds: {x: 0, y: 0, width: 100, height: 300}
//	    header_bottom: 40
//	    bars:
//	      - id: b1
//	        bounds: {x: 45, y: 50, width: 10, height: 16}
//
// Unknown keys are rejected so that typos in a fixture surface as
// INVALID_FORMAT errors instead of silently dropped fields.
//
// # Validation
//
// Decoding checks identifiers and geometry:
//   - lifeline and bar IDs must pass [errors.ValidateID] and be unique
//     (bars within their lifeline)
//   - no rectangle may have a negative width or height
//   - header_bottom must lie within the lifeline's vertical span
//
// Whether every bar starts below the header is left to the outline
// composer, which reports it as INVALID_GEOMETRY when the outline is
// first queried.
package scene
