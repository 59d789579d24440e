// Package placement resolves conflict-free positions for activity bars and
// cascades a change through the bars that depend on it.
//
// # Resolution
//
// [Resolver.Resolve] starts from a proposed rectangle and walks the
// sibling bars in (y, x, ID) order. For every sibling whose time span
// strictly contains the candidate's top edge:
//
//   - the candidate's top is pushed down to at least TopSpacing below the
//     sibling's top;
//   - when the candidate then ends within the sibling's span it is nested,
//     and its left edge is pushed right to the sibling's midpoint.
//
// Adjustments accumulate, so a later sibling sees the candidate as moved
// by the earlier ones.
//
// # Relocation
//
// [Resolver.Relocate] applies an edit (move, creation or deletion) to a
// working copy of the sibling rectangles and re-resolves every bar in the
// affected band until a full pass changes nothing. Only bars whose
// rectangle differs from the input are returned. The pass count is capped
// at MaxPassFactor × (bars + 1); exceeding it is a defect and yields a
// [errors.DivergedError] with no partial result.
package placement

import (
	"cmp"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/lifeline"
	"github.com/matzehuels/lifeline/pkg/observability"
)

// Proposal is a requested bar rectangle.
type Proposal struct {
	Bounds geom.Rect
	// AutoX centres the bar on the lifeline instead of using Bounds.X.
	AutoX bool
}

// Resolver places bars on a lifeline.
type Resolver struct {
	Config config.Config
	Logger *log.Logger
}

// New returns a resolver for cfg. Zero fields of cfg take their defaults.
func New(cfg config.Config) *Resolver {
	cfg.SetDefaults()
	return &Resolver{
		Config: cfg,
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return r.Logger
}

// Resolve returns the corrected rectangle for p among siblings, ignoring
// the bars named in skip.
//
// A negative proposed width selects the configured default bar width.
// Negative heights, negative sibling dimensions and a nil lifeline are
// rejected with INVALID_GEOMETRY.
func (r *Resolver) Resolve(l *lifeline.Lifeline, p Proposal, siblings map[lifeline.BarID]geom.Rect, skip ...lifeline.BarID) (geom.Rect, error) {
	if l == nil {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidGeometry, "nil lifeline")
	}
	c := r.initial(l, p)
	if err := c.Validate(); err != nil {
		return geom.Rect{}, err
	}
	if err := validateAll(siblings); err != nil {
		return geom.Rect{}, err
	}

	res := r.resolve(c, sortedIDs(siblings), siblings, skip)
	observability.Placement().OnResolve(l.ID(), res != c)
	return res, nil
}

// initial applies the default width and automatic centring.
func (r *Resolver) initial(l *lifeline.Lifeline, p Proposal) geom.Rect {
	c := p.Bounds
	if c.Width < 0 {
		c.Width = r.Config.DefaultBarWidth
	}
	if p.AutoX {
		b := l.Bounds()
		c.X = b.X + b.Width/2 - c.Width/2
	}
	return c
}

// resolve runs the adjustment rules over siblings in the given order.
func (r *Resolver) resolve(c geom.Rect, order []lifeline.BarID, siblings map[lifeline.BarID]geom.Rect, skip []lifeline.BarID) geom.Rect {
	spacing := r.Config.TopSpacing
	for _, id := range order {
		if slices.Contains(skip, id) {
			continue
		}
		s := siblings[id]
		if c.Y <= s.Y || c.Y >= s.Bottom() {
			continue
		}
		if c.Y < s.Y+spacing {
			c.Y = s.Y + spacing
		}
		if c.Bottom() <= s.Bottom() && c.X < s.CenterX() {
			c.X = s.CenterX()
		}
	}
	return c
}

// sortedIDs orders bars by y, then x, then ID.
func sortedIDs(rects map[lifeline.BarID]geom.Rect) []lifeline.BarID {
	ids := make([]lifeline.BarID, 0, len(rects))
	for id := range rects {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b lifeline.BarID) int {
		ra, rb := rects[a], rects[b]
		return cmp.Or(cmp.Compare(ra.Y, rb.Y), cmp.Compare(ra.X, rb.X), cmp.Compare(a, b))
	})
	return ids
}

func validateAll(rects map[lifeline.BarID]geom.Rect) error {
	for _, id := range sortedIDs(rects) {
		if err := rects[id].Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "bar %s", id)
		}
	}
	return nil
}

// Relocate applies the edit of bar initial to all and returns the other
// bars whose rectangles must change to restore a valid layout.
//
// A nil moved deletes the bar. A bar absent from all is being created,
// and moved must then be non-nil.
func (r *Resolver) Relocate(l *lifeline.Lifeline, initial lifeline.BarID, moved *geom.Rect, all map[lifeline.BarID]geom.Rect) (map[lifeline.BarID]geom.Rect, error) {
	start := time.Now()
	changes, passes, err := r.relocate(l, initial, moved, all)
	if l != nil {
		observability.Placement().OnRelocate(l.ID(), string(initial), passes, len(changes), time.Since(start), err)
	}
	return changes, err
}

func (r *Resolver) relocate(l *lifeline.Lifeline, initial lifeline.BarID, moved *geom.Rect, all map[lifeline.BarID]geom.Rect) (map[lifeline.BarID]geom.Rect, int, error) {
	if l == nil {
		return nil, 0, errors.New(errors.ErrCodeInvalidGeometry, "nil lifeline")
	}
	if err := validateAll(all); err != nil {
		return nil, 0, err
	}
	if moved != nil {
		if err := moved.Validate(); err != nil {
			return nil, 0, err
		}
	}

	orig, exists := all[initial]
	switch {
	case !exists && moved == nil:
		return nil, 0, errors.New(errors.ErrCodeNotFound, "lifeline %s has no bar %s", l.ID(), initial)
	case !exists:
		orig = *moved
	}

	yBegin, yEnd, xLeft := orig.Y, orig.Bottom(), orig.X
	if moved != nil {
		yBegin = min(yBegin, moved.Y)
		yEnd = max(yEnd, moved.Bottom())
		xLeft = min(xLeft, moved.X)
	}

	work := make(map[lifeline.BarID]geom.Rect, len(all)+1)
	for id, rect := range all {
		work[id] = rect
	}
	delete(work, initial)
	if moved != nil {
		work[initial] = *moved
	}

	limit := r.Config.MaxPassFactor * (len(work) + 1)
	logger := r.logger()
	passes := 0
	for changed := true; changed; {
		if passes >= limit {
			logger.Error("relocation diverged", "lifeline", l.ID(), "bar", initial, "passes", passes)
			return nil, passes, &errors.DivergedError{Bar: string(initial), Passes: passes, Limit: limit}
		}
		passes++
		changed = false

		for _, id := range sortedIDs(work) {
			if id == initial {
				continue
			}
			cur := work[id]
			if cur.X < xLeft || cur.Y < yBegin || cur.Y > yEnd {
				continue
			}
			next := r.resolve(r.initial(l, Proposal{Bounds: cur, AutoX: true}), sortedIDs(work), work, []lifeline.BarID{id})
			if next == cur {
				continue
			}
			logger.Debug("bar moved", "bar", id, "from", cur, "to", next, "pass", passes)
			work[id] = next
			yEnd = max(yEnd, next.Bottom())
			changed = true
		}
	}

	changes := make(map[lifeline.BarID]geom.Rect)
	for id, rect := range work {
		if id == initial {
			continue
		}
		if all[id] != rect {
			changes[id] = rect
		}
	}
	logger.Debug("relocation settled", "lifeline", l.ID(), "bar", initial, "passes", passes, "changed", len(changes))
	return changes, passes, nil
}

// Apply returns a copy of all with changes merged in.
func Apply(all, changes map[lifeline.BarID]geom.Rect) map[lifeline.BarID]geom.Rect {
	out := make(map[lifeline.BarID]geom.Rect, len(all))
	for id, rect := range all {
		out[id] = rect
	}
	for id, rect := range changes {
		out[id] = rect
	}
	return out
}
