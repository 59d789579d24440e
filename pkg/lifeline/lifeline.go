package lifeline

import (
	"slices"

	"github.com/matzehuels/lifeline/pkg/cluster"
	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
)

// BarID identifies an activity bar within its lifeline.
type BarID string

// Bar is an activity bar (execution occurrence) on a lifeline.
type Bar struct {
	ID     BarID     `json:"id" yaml:"id" toml:"id"`
	Bounds geom.Rect `json:"bounds" yaml:"bounds" toml:"bounds"`
}

// Lifeline is the vertical timeline of one participant together with its
// activity bars.
type Lifeline struct {
	id           string
	bounds       geom.Rect
	headerBottom int
	bars         []Bar
	cfg          config.Config

	outline *Outline
}

// New returns a lifeline without bars using the default configuration.
// Geometry is checked when the outline is composed.
func New(id string, bounds geom.Rect, headerBottom int) *Lifeline {
	return &Lifeline{
		id:           id,
		bounds:       bounds,
		headerBottom: headerBottom,
		cfg:          config.Default(),
	}
}

// ID returns the lifeline identifier.
func (l *Lifeline) ID() string { return l.id }

// Bounds returns the lifeline rectangle.
func (l *Lifeline) Bounds() geom.Rect { return l.bounds }

// HeaderBottom returns the y-coordinate where the header ends and the
// stem begins.
func (l *Lifeline) HeaderBottom() int { return l.headerBottom }

// Config returns the engine settings used by this lifeline.
func (l *Lifeline) Config() config.Config { return l.cfg }

// Len returns the number of bars.
func (l *Lifeline) Len() int { return len(l.bars) }

// Bars returns a copy of the bars in their current order.
func (l *Lifeline) Bars() []Bar { return slices.Clone(l.bars) }

// Bar returns the bar with the given ID.
func (l *Lifeline) Bar(id BarID) (Bar, bool) {
	if i := l.index(id); i >= 0 {
		return l.bars[i], true
	}
	return Bar{}, false
}

// Rects returns a snapshot of the bar rectangles keyed by bar ID.
func (l *Lifeline) Rects() map[BarID]geom.Rect {
	m := make(map[BarID]geom.Rect, len(l.bars))
	for _, b := range l.bars {
		m[b.ID] = b.Bounds
	}
	return m
}

// Clusters groups the bars by transitive overlap, in bar order.
func (l *Lifeline) Clusters() [][]Bar {
	rects := make([]geom.Rect, len(l.bars))
	for i, b := range l.bars {
		rects[i] = b.Bounds
	}
	groups := cluster.GroupIndices(rects)
	out := make([][]Bar, len(groups))
	for i, g := range groups {
		for _, k := range g {
			out[i] = append(out[i], l.bars[k])
		}
	}
	return out
}

// =============================================================================
// Mutators
// =============================================================================

// SetConfig replaces the engine settings.
func (l *Lifeline) SetConfig(cfg config.Config) {
	cfg.SetDefaults()
	l.cfg = cfg
	l.Invalidate()
}

// SetBounds replaces the lifeline rectangle.
func (l *Lifeline) SetBounds(r geom.Rect) {
	l.bounds = r
	l.Invalidate()
}

// SetHeaderBottom moves the boundary between header and stem.
func (l *Lifeline) SetHeaderBottom(y int) {
	l.headerBottom = y
	l.Invalidate()
}

// AddBar appends a bar. IDs must be valid and unique.
func (l *Lifeline) AddBar(b Bar) error {
	if err := errors.ValidateID(string(b.ID)); err != nil {
		return err
	}
	if l.index(b.ID) >= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "lifeline %s already has bar %s", l.id, b.ID)
	}
	l.bars = append(l.bars, b)
	l.Invalidate()
	return nil
}

// RemoveBar deletes the bar with the given ID.
func (l *Lifeline) RemoveBar(id BarID) error {
	i := l.index(id)
	if i < 0 {
		return l.notFound(id)
	}
	l.bars = slices.Delete(l.bars, i, i+1)
	l.Invalidate()
	return nil
}

// MoveBar replaces the rectangle of the bar with the given ID.
func (l *Lifeline) MoveBar(id BarID, r geom.Rect) error {
	i := l.index(id)
	if i < 0 {
		return l.notFound(id)
	}
	l.bars[i].Bounds = r
	l.Invalidate()
	return nil
}

// SetBars replaces all bars. On error the lifeline is unchanged.
func (l *Lifeline) SetBars(bars []Bar) error {
	seen := make(map[BarID]struct{}, len(bars))
	for _, b := range bars {
		if err := errors.ValidateID(string(b.ID)); err != nil {
			return err
		}
		if _, dup := seen[b.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate bar %s on lifeline %s", b.ID, l.id)
		}
		seen[b.ID] = struct{}{}
	}
	l.bars = slices.Clone(bars)
	l.Invalidate()
	return nil
}

// ApplyMoves applies a batch of rectangle changes, such as the result of
// a cascade relocation, with a single invalidation. Every ID must exist;
// on error the lifeline is unchanged.
func (l *Lifeline) ApplyMoves(moves map[BarID]geom.Rect) error {
	for id := range moves {
		if l.index(id) < 0 {
			return l.notFound(id)
		}
	}
	for i, b := range l.bars {
		if r, ok := moves[b.ID]; ok {
			l.bars[i].Bounds = r
		}
	}
	l.Invalidate()
	return nil
}

func (l *Lifeline) index(id BarID) int {
	return slices.IndexFunc(l.bars, func(b Bar) bool { return b.ID == id })
}

func (l *Lifeline) notFound(id BarID) error {
	return errors.New(errors.ErrCodeNotFound, "lifeline %s has no bar %s", l.id, id)
}
