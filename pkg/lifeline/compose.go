package lifeline

import (
	"cmp"
	"slices"

	"github.com/matzehuels/lifeline/pkg/cluster"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/hull"
)

// Outline is the pair of polygons derived from a lifeline.
type Outline struct {
	// Attach is the silhouette that connections terminate on.
	Attach geom.Polygon `json:"attach"`
	// HitTest is the widened stem shape used for pointer tolerance.
	HitTest geom.Polygon `json:"hit_test"`
	// Bands is the number of vertically disjoint bar groups the attach
	// polygon bulges around.
	Bands int `json:"bands"`
}

// band is a group of bar clusters sharing a vertical range, together with
// the outline drawn around it.
type band struct {
	box  geom.Rect
	hull geom.Polygon
}

// Compose builds the attach and hit-test polygons of l.
//
// It fails with INVALID_GEOMETRY only when l is nil or a rectangle has a
// negative dimension. A header bottom outside the lifeline or a bar that
// starts above it still composes; verify reports those layouts.
func Compose(l *Lifeline) (Outline, error) {
	if err := validate(l); err != nil {
		return Outline{}, err
	}

	out := Outline{
		HitTest: hitTestShape(l.bounds, l.headerBottom, l.cfg.HitTestBuffer),
	}
	if len(l.bars) == 0 {
		out.Attach = baseShape(l.bounds, l.headerBottom, l.bounds.Bottom())
		return out, nil
	}

	rects := make([]geom.Rect, len(l.bars))
	for i, b := range l.bars {
		rects[i] = b.Bounds
	}
	bands := buildBands(cluster.Group(rects))
	out.Attach = attachShape(l.bounds, l.headerBottom, bands)
	out.Bands = len(bands)
	return out, nil
}

func validate(l *Lifeline) error {
	if l == nil {
		return errors.New(errors.ErrCodeInvalidGeometry, "nil lifeline")
	}
	if err := l.bounds.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "lifeline %s", l.id)
	}
	for _, b := range l.bars {
		if err := b.Bounds.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "lifeline %s: bar %s", l.id, b.ID)
		}
	}
	return nil
}

// baseShape is the header rectangle with the stem walked down to
// stemBottom and back up.
func baseShape(r geom.Rect, headerBottom, stemBottom int) geom.Polygon {
	cx := r.CenterX()
	return geom.Polygon{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: headerBottom},
		{X: cx, Y: headerBottom},
		{X: cx, Y: stemBottom},
		{X: cx, Y: headerBottom},
		{X: r.X, Y: headerBottom},
		{X: r.X, Y: r.Y},
	}
}

func hitTestShape(r geom.Rect, headerBottom, buffer int) geom.Polygon {
	cx := r.CenterX()
	return geom.Polygon{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: headerBottom},
		{X: cx + buffer, Y: headerBottom},
		{X: cx + buffer, Y: r.Bottom()},
		{X: cx - buffer, Y: r.Bottom()},
		{X: cx - buffer, Y: headerBottom},
		{X: r.X, Y: headerBottom},
		{X: r.X, Y: r.Y},
	}
}

// buildBands hulls every cluster, orders the hulls top to bottom (ties:
// leftmost top vertex) and merges hulls whose vertical ranges overlap.
func buildBands(clusters [][]geom.Rect) []band {
	bands := make([]band, len(clusters))
	for i, c := range clusters {
		bands[i] = band{box: geom.Bounds(c), hull: hull.Build(c)}
	}
	slices.SortStableFunc(bands, func(a, b band) int {
		return cmp.Or(cmp.Compare(a.box.Y, b.box.Y), cmp.Compare(a.hull[0].X, b.hull[0].X))
	})

	merged := bands[:0]
	for _, b := range bands {
		if n := len(merged); n > 0 && b.box.Y < merged[n-1].box.Bottom() {
			last := &merged[n-1]
			last.box = last.box.Union(b.box)
			last.hull = hull.Build([]geom.Rect{last.box})
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

func attachShape(r geom.Rect, headerBottom int, bands []band) geom.Polygon {
	cx := r.CenterX()
	stemBottom := max(r.Bottom(), bands[len(bands)-1].box.Bottom())
	base := baseShape(r, headerBottom, stemBottom)

	out := slices.Clone(base[:4])
	last := func() geom.Point { return out[len(out)-1] }

	for _, b := range bands {
		down, _ := splitHull(b.hull)
		out = append(out, geom.Pt(last().X, down[0].Y))
		out = append(out, down...)
		out = append(out, geom.Pt(cx, last().Y))
	}

	out = append(out, geom.Pt(last().X, stemBottom))

	for i := len(bands) - 1; i >= 0; i-- {
		_, up := splitHull(bands[i].hull)
		out = append(out, geom.Pt(last().X, up[0].Y))
		out = append(out, up...)
		out = append(out, geom.Pt(cx, last().Y))
	}

	out = append(out, base[5:]...)
	return dedupe(out)
}

// splitHull divides a closed hull into the path from its first topmost
// vertex to its first bottommost vertex, and the return path. Both paths
// include the shared end vertices.
func splitHull(h geom.Polygon) (down, up []geom.Point) {
	ring := h.Ring()
	top, bottom := 0, 0
	for i, p := range ring {
		if p.Y < ring[top].Y {
			top = i
		}
		if p.Y > ring[bottom].Y {
			bottom = i
		}
	}

	n := len(ring)
	i := top
	for {
		down = append(down, ring[i])
		if i == bottom {
			break
		}
		i = (i + 1) % n
	}
	for {
		up = append(up, ring[i])
		i = (i + 1) % n
		if i == top {
			up = append(up, ring[i])
			break
		}
	}
	return down, up
}

func dedupe(p geom.Polygon) geom.Polygon {
	out := p[:0]
	for _, pt := range p {
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	return out
}
