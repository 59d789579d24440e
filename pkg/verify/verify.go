// Package verify checks geometry invariants of lifelines.
//
// Each check returns a list of [Finding] values, empty when the invariant
// holds:
//
//   - [Partition]: clusters cover every bar exactly once, bars in
//     different clusters do not overlap, and each cluster is connected
//   - [Enclosure]: a hull is a closed orthogonal polygon containing every
//     corner of its cluster
//   - [Simple]: an outline has no proper self-crossing
//   - [Spacing]: overlapping bars keep the minimum top gap, and nested
//     bars start at or right of their parent's midpoint
//   - [Header]: the header ends inside the lifeline and no bar starts
//     above it
//
// [Lifeline] runs all of them against one lifeline and [Lifelines] fans
// out over many.
package verify

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lifeline/pkg/cluster"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/hull"
	"github.com/matzehuels/lifeline/pkg/lifeline"
)

// Check names.
const (
	CheckPartition = "partition"
	CheckEnclosure = "enclosure"
	CheckSimple    = "simple"
	CheckSpacing   = "spacing"
	CheckHeader    = "header"
)

// Finding is a single invariant violation.
type Finding struct {
	Check    string `json:"check"`
	Lifeline string `json:"lifeline,omitempty"`
	Message  string `json:"message"`
}

func (f Finding) String() string {
	if f.Lifeline == "" {
		return fmt.Sprintf("%s: %s", f.Check, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Lifeline, f.Check, f.Message)
}

func finding(check, format string, args ...any) Finding {
	return Finding{Check: check, Message: fmt.Sprintf(format, args...)}
}

// Partition checks that groups, given as indices into rects, are exactly
// the overlap components of rects.
func Partition(rects []geom.Rect, groups [][]int) []Finding {
	var out []Finding
	owner := make([]int, len(rects))
	for i := range owner {
		owner[i] = -1
	}
	for g, members := range groups {
		if len(members) == 0 {
			out = append(out, finding(CheckPartition, "cluster %d is empty", g))
		}
		for _, i := range members {
			switch {
			case i < 0 || i >= len(rects):
				out = append(out, finding(CheckPartition, "cluster %d references bar %d of %d", g, i, len(rects)))
			case owner[i] >= 0:
				out = append(out, finding(CheckPartition, "bar %d is in clusters %d and %d", i, owner[i], g))
			default:
				owner[i] = g
			}
		}
	}
	for i, g := range owner {
		if g < 0 {
			out = append(out, finding(CheckPartition, "bar %d %s is in no cluster", i, rects[i]))
		}
	}

	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if owner[i] >= 0 && owner[j] >= 0 && owner[i] != owner[j] && rects[i].Overlaps(rects[j]) {
				out = append(out, finding(CheckPartition, "overlapping bars %d and %d are in clusters %d and %d", i, j, owner[i], owner[j]))
			}
		}
	}

	for g, members := range groups {
		if !connected(rects, members) {
			out = append(out, finding(CheckPartition, "cluster %d is not connected by overlaps", g))
		}
	}
	return out
}

// connected reports whether the overlap graph over members is connected.
func connected(rects []geom.Rect, members []int) bool {
	valid := slices.DeleteFunc(slices.Clone(members), func(i int) bool { return i < 0 || i >= len(rects) })
	if len(valid) <= 1 {
		return true
	}
	seen := map[int]bool{valid[0]: true}
	queue := []int{valid[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range valid {
			if !seen[next] && rects[cur].Overlaps(rects[next]) {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen) == len(valid)
}

// Enclosure checks that h is a closed orthogonal polygon and that no
// corner of a rectangle in the cluster lies outside it.
func Enclosure(rects []geom.Rect, h geom.Polygon) []Finding {
	if len(rects) == 0 {
		if len(h) != 0 {
			return []Finding{finding(CheckEnclosure, "hull %s for an empty cluster", h)}
		}
		return nil
	}
	var out []Finding
	if !h.IsClosed() {
		out = append(out, finding(CheckEnclosure, "hull is not closed"))
	}
	if !h.IsOrthogonal() {
		out = append(out, finding(CheckEnclosure, "hull has a diagonal edge"))
	}
	for _, r := range rects {
		for _, c := range r.Corners() {
			if !h.Contains(c) {
				out = append(out, finding(CheckEnclosure, "corner %s of %s lies outside the hull", c, r))
			}
		}
	}
	return out
}

// Simple checks that p is closed and has no proper edge crossings.
// Edges walked out and back along the same line are allowed.
func Simple(p geom.Polygon) []Finding {
	if len(p) == 0 {
		return nil
	}
	var out []Finding
	if !p.IsClosed() {
		out = append(out, finding(CheckSimple, "polygon is not closed"))
	}
	for _, c := range p.ProperCrossings() {
		out = append(out, finding(CheckSimple, "edge %d crosses edge %d", c.EdgeA, c.EdgeB))
	}
	return out
}

// Spacing checks every pair of bars whose vertical spans overlap with the
// upper one strictly above: the lower top must be at least topSpacing
// below the upper top, and a lower bar that ends within the upper one
// must start at or right of its midpoint. Bars with equal tops are not
// compared.
func Spacing(rects map[lifeline.BarID]geom.Rect, topSpacing int) []Finding {
	ids := make([]lifeline.BarID, 0, len(rects))
	for id := range rects {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var out []Finding
	for _, upper := range ids {
		s := rects[upper]
		for _, lower := range ids {
			c := rects[lower]
			if upper == lower || c.Y <= s.Y || c.Y >= s.Bottom() {
				continue
			}
			if c.Y < s.Y+topSpacing {
				out = append(out, finding(CheckSpacing, "bar %s starts %d below %s, want at least %d", lower, c.Y-s.Y, upper, topSpacing))
			}
			if c.Bottom() <= s.Bottom() && c.X < s.CenterX() {
				out = append(out, finding(CheckSpacing, "bar %s nested in %s starts at x=%d left of midpoint %d", lower, upper, c.X, s.CenterX()))
			}
		}
	}
	return out
}

// Header checks that headerBottom lies within the vertical span of
// bounds and that no bar starts above it. Bars are reported in ID order.
func Header(bounds geom.Rect, headerBottom int, rects map[lifeline.BarID]geom.Rect) []Finding {
	var out []Finding
	if headerBottom < bounds.Y || headerBottom > bounds.Bottom() {
		out = append(out, finding(CheckHeader, "header bottom %d outside [%d, %d]", headerBottom, bounds.Y, bounds.Bottom()))
	}
	ids := slices.Sorted(maps.Keys(rects))
	for _, id := range ids {
		if r := rects[id]; r.Y < headerBottom {
			out = append(out, finding(CheckHeader, "bar %s starts at y=%d above header bottom %d", id, r.Y, headerBottom))
		}
	}
	return out
}

// Lifeline runs every check against l. The error is non-nil only when
// the outline cannot be composed.
func Lifeline(l *lifeline.Lifeline) ([]Finding, error) {
	bars := l.Bars()
	rects := make([]geom.Rect, len(bars))
	for i, b := range bars {
		rects[i] = b.Bounds
	}

	groups := cluster.GroupIndices(rects)
	out := Partition(rects, groups)
	for _, members := range groups {
		c := make([]geom.Rect, len(members))
		for i, m := range members {
			c[i] = rects[m]
		}
		out = append(out, Enclosure(c, hull.Build(c))...)
	}

	o, err := l.Outline()
	if err != nil {
		return nil, err
	}
	out = append(out, Simple(o.Attach)...)
	out = append(out, Spacing(l.Rects(), l.Config().TopSpacing)...)
	out = append(out, Header(l.Bounds(), l.HeaderBottom(), l.Rects())...)

	for i := range out {
		out[i].Lifeline = l.ID()
	}
	return out, nil
}

// Progress is told about each lifeline once its checks have finished.
// checked counts the lifelines finished so far, including id. Calls are
// serialized but may arrive in any order.
type Progress func(id string, checked, total int)

// Lifelines checks ls concurrently, one goroutine per lifeline, and
// returns the findings in input order. Lifelines must be distinct since
// the outline cache is not safe for concurrent use. progress may be nil.
func Lifelines(ctx context.Context, ls []*lifeline.Lifeline, progress Progress) ([]Finding, error) {
	results := make([][]Finding, len(ls))
	var (
		mu      sync.Mutex
		checked int
	)
	g, ctx := errgroup.WithContext(ctx)
	for i, l := range ls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Lifeline(l)
			if err != nil {
				return fmt.Errorf("check %s: %w", l.ID(), err)
			}
			results[i] = f
			if progress != nil {
				mu.Lock()
				checked++
				progress(l.ID(), checked, len(ls))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

// Format renders findings one per line.
func Format(findings []Finding) string {
	var b strings.Builder
	for _, f := range findings {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}
