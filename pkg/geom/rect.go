package geom

import (
	"fmt"

	"github.com/matzehuels/lifeline/pkg/errors"
)

// Point is an integer position in diagram space.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// String returns the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// R is shorthand for Rect{X: x, Y: y, Width: w, Height: h}.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// CenterX returns the horizontal midpoint, rounded toward the left edge.
func (r Rect) CenterX() int { return r.X + r.Width/2 }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Validate rejects rectangles with negative dimensions.
func (r Rect) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "rectangle %s has negative dimensions", r)
	}
	return nil
}

// String returns the rectangle as "(x,y,w,h)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}

// WithX returns a copy of r moved horizontally to x.
func (r Rect) WithX(x int) Rect { r.X = x; return r }

// WithY returns a copy of r moved vertically to y.
func (r Rect) WithY(y int) Rect { r.Y = y; return r }

// Translate returns a copy of r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Intersection returns the overlapping region of r and o and whether it
// has positive area.
func (r Rect) Intersection(o Rect) (Rect, bool) {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= x || bottom <= y {
		return Rect{}, false
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}, true
}

// Overlaps reports whether r and o share a positive area.
// Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	_, ok := r.Intersection(o)
	return ok
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Bottom()},
		{r.X, r.Bottom()},
	}
}

// VerticalOverlap reports whether the open vertical spans of r and o
// intersect.
func (r Rect) VerticalOverlap(o Rect) bool {
	return r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Bounds returns the bounding rectangle of rects. It returns the zero Rect
// for an empty slice.
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	b := rects[0]
	for _, r := range rects[1:] {
		b = b.Union(r)
	}
	return b
}
