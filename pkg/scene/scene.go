package scene

import (
	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/lifeline"
)

// Scene is a snapshot of lifelines.
type Scene struct {
	Lifelines []Lifeline `json:"lifelines" yaml:"lifelines" toml:"lifelines"`
}

// Lifeline is the serialized form of one lifeline.
type Lifeline struct {
	ID           string         `json:"id" yaml:"id" toml:"id"`
	Bounds       geom.Rect      `json:"bounds" yaml:"bounds" toml:"bounds"`
	HeaderBottom int            `json:"header_bottom" yaml:"header_bottom" toml:"header_bottom"`
	Bars         []lifeline.Bar `json:"bars,omitempty" yaml:"bars,omitempty" toml:"bars,omitempty"`
}

// Validate checks identifiers and rectangles. See the package
// documentation for the rules.
func (s *Scene) Validate() error {
	seen := make(map[string]struct{}, len(s.Lifelines))
	for _, ll := range s.Lifelines {
		if err := errors.ValidateID(ll.ID); err != nil {
			return err
		}
		if _, dup := seen[ll.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate lifeline %s", ll.ID)
		}
		seen[ll.ID] = struct{}{}

		if err := ll.Bounds.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "lifeline %s", ll.ID)
		}
		if ll.HeaderBottom < ll.Bounds.Y || ll.HeaderBottom > ll.Bounds.Bottom() {
			return errors.New(errors.ErrCodeInvalidGeometry,
				"lifeline %s: header_bottom %d outside [%d, %d]", ll.ID, ll.HeaderBottom, ll.Bounds.Y, ll.Bounds.Bottom())
		}

		bars := make(map[lifeline.BarID]struct{}, len(ll.Bars))
		for _, b := range ll.Bars {
			if err := errors.ValidateID(string(b.ID)); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidID, err, "lifeline %s", ll.ID)
			}
			if _, dup := bars[b.ID]; dup {
				return errors.New(errors.ErrCodeInvalidInput, "lifeline %s: duplicate bar %s", ll.ID, b.ID)
			}
			bars[b.ID] = struct{}{}
			if err := b.Bounds.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "lifeline %s: bar %s", ll.ID, b.ID)
			}
		}
	}
	return nil
}

// Build returns engine lifelines in fixture order, each configured with
// cfg.
func (s *Scene) Build(cfg config.Config) ([]*lifeline.Lifeline, error) {
	out := make([]*lifeline.Lifeline, 0, len(s.Lifelines))
	for _, ll := range s.Lifelines {
		l, err := ll.build(cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// BuildLifeline returns the engine lifeline with the given ID.
func (s *Scene) BuildLifeline(id string, cfg config.Config) (*lifeline.Lifeline, error) {
	for _, ll := range s.Lifelines {
		if ll.ID == id {
			return ll.build(cfg)
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "scene has no lifeline %s", id)
}

func (ll Lifeline) build(cfg config.Config) (*lifeline.Lifeline, error) {
	l := lifeline.New(ll.ID, ll.Bounds, ll.HeaderBottom)
	l.SetConfig(cfg)
	if err := l.SetBars(ll.Bars); err != nil {
		return nil, err
	}
	return l, nil
}

// FromLifelines snapshots engine lifelines into a scene.
func FromLifelines(ls []*lifeline.Lifeline) *Scene {
	s := &Scene{Lifelines: make([]Lifeline, len(ls))}
	for i, l := range ls {
		s.Lifelines[i] = Lifeline{
			ID:           l.ID(),
			Bounds:       l.Bounds(),
			HeaderBottom: l.HeaderBottom(),
			Bars:         l.Bars(),
		}
	}
	return s
}

// Replace swaps in the snapshot of l for the lifeline with the same ID.
func (s *Scene) Replace(l *lifeline.Lifeline) error {
	for i, ll := range s.Lifelines {
		if ll.ID == l.ID() {
			s.Lifelines[i] = FromLifelines([]*lifeline.Lifeline{l}).Lifelines[0]
			return nil
		}
	}
	return errors.New(errors.ErrCodeNotFound, "scene has no lifeline %s", l.ID())
}
