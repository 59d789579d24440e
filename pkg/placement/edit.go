package placement

import (
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/lifeline"
)

// Place resolves a new bar against the bars of l, relocates the siblings
// it disturbs and adds it. It returns the bar's resolved rectangle and
// the sibling moves that were applied. On error l is unchanged.
func (r *Resolver) Place(l *lifeline.Lifeline, id lifeline.BarID, p Proposal) (geom.Rect, map[lifeline.BarID]geom.Rect, error) {
	if l == nil {
		return geom.Rect{}, nil, errors.New(errors.ErrCodeInvalidGeometry, "nil lifeline")
	}
	if err := errors.ValidateID(string(id)); err != nil {
		return geom.Rect{}, nil, err
	}
	if _, ok := l.Bar(id); ok {
		return geom.Rect{}, nil, errors.New(errors.ErrCodeInvalidInput, "lifeline %s already has bar %s", l.ID(), id)
	}

	all := l.Rects()
	rect, err := r.Resolve(l, p, all)
	if err != nil {
		return geom.Rect{}, nil, err
	}
	changes, err := r.Relocate(l, id, &rect, all)
	if err != nil {
		return geom.Rect{}, nil, err
	}

	if err := l.AddBar(lifeline.Bar{ID: id, Bounds: rect}); err != nil {
		return geom.Rect{}, nil, err
	}
	if err := l.ApplyMoves(changes); err != nil {
		return geom.Rect{}, nil, err
	}
	return rect, changes, nil
}

// Move resolves bar id at its new rectangle, relocates the siblings it
// disturbs and applies everything to l. A nil to deletes the bar. It
// returns the bar's resolved rectangle (zero on deletion) and the sibling
// moves. On error l is unchanged.
func (r *Resolver) Move(l *lifeline.Lifeline, id lifeline.BarID, to *geom.Rect) (geom.Rect, map[lifeline.BarID]geom.Rect, error) {
	if l == nil {
		return geom.Rect{}, nil, errors.New(errors.ErrCodeInvalidGeometry, "nil lifeline")
	}
	all := l.Rects()
	if _, ok := all[id]; !ok {
		return geom.Rect{}, nil, errors.New(errors.ErrCodeNotFound, "lifeline %s has no bar %s", l.ID(), id)
	}

	var resolved *geom.Rect
	if to != nil {
		rect, err := r.Resolve(l, Proposal{Bounds: *to}, all, id)
		if err != nil {
			return geom.Rect{}, nil, err
		}
		resolved = &rect
	}

	changes, err := r.Relocate(l, id, resolved, all)
	if err != nil {
		return geom.Rect{}, nil, err
	}

	if resolved == nil {
		err = l.RemoveBar(id)
	} else {
		err = l.MoveBar(id, *resolved)
	}
	if err != nil {
		return geom.Rect{}, nil, err
	}
	if err := l.ApplyMoves(changes); err != nil {
		return geom.Rect{}, nil, err
	}

	if resolved == nil {
		return geom.Rect{}, changes, nil
	}
	return *resolved, changes, nil
}
