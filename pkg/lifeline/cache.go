package lifeline

import (
	"time"

	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/observability"
)

// Invalidate drops the cached outline. The next polygon query recomputes
// it.
func (l *Lifeline) Invalidate() {
	l.outline = nil
}

// Cached reports whether an outline is currently cached.
func (l *Lifeline) Cached() bool {
	return l.outline != nil
}

// Outline returns the cached outline, composing it first when needed.
// Errors are not cached.
func (l *Lifeline) Outline() (Outline, error) {
	hooks := observability.Outline()
	if l.outline != nil {
		hooks.OnOutlineCacheHit(l.id)
		return l.outline.clone(), nil
	}
	hooks.OnOutlineCacheMiss(l.id)

	start := time.Now()
	o, err := Compose(l)
	hooks.OnOutlineComputed(l.id, len(l.bars), o.Bands, time.Since(start), err)
	if err != nil {
		return Outline{}, err
	}
	l.outline = &o
	return o.clone(), nil
}

// OutlinePolygon returns the attach polygon.
func (l *Lifeline) OutlinePolygon() (geom.Polygon, error) {
	o, err := l.Outline()
	return o.Attach, err
}

// HitTestPolygon returns the widened hit-test polygon.
func (l *Lifeline) HitTestPolygon() (geom.Polygon, error) {
	o, err := l.Outline()
	return o.HitTest, err
}

// ContainsPoint reports whether (x, y) lies inside the hit-test polygon
// or within the configured fuzz distance of its boundary. Containment in
// child figures is left to the caller.
func (l *Lifeline) ContainsPoint(x, y int) (bool, error) {
	poly, err := l.HitTestPolygon()
	if err != nil {
		return false, err
	}
	p := geom.Pt(x, y)
	return poly.Contains(p) || poly.NearBoundary(p, l.cfg.HitFuzz), nil
}

func (o Outline) clone() Outline {
	return Outline{Attach: o.Attach.Clone(), HitTest: o.HitTest.Clone(), Bands: o.Bands}
}
