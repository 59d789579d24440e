package lifeline

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
)

func newTestLifeline(t *testing.T, bars ...Bar) *Lifeline {
	t.Helper()
	l := New("client", geom.R(0, 0, 100, 300), 40)
	if err := l.SetBars(bars); err != nil {
		t.Fatalf("SetBars() error = %v", err)
	}
	return l
}

func TestCompose_NoBars(t *testing.T) {
	o, err := Compose(newTestLifeline(t))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	wantAttach := geom.Polygon{
		{0, 0}, {100, 0}, {100, 40}, {50, 40}, {50, 300}, {50, 40}, {0, 40}, {0, 0},
	}
	if !reflect.DeepEqual(o.Attach, wantAttach) {
		t.Errorf("Attach = %v, want %v", o.Attach, wantAttach)
	}

	wantHit := geom.Polygon{
		{0, 0}, {100, 0}, {100, 40}, {70, 40}, {70, 300}, {30, 300}, {30, 40}, {0, 40}, {0, 0},
	}
	if !reflect.DeepEqual(o.HitTest, wantHit) {
		t.Errorf("HitTest = %v, want %v", o.HitTest, wantHit)
	}
	if o.Bands != 0 {
		t.Errorf("Bands = %d, want 0", o.Bands)
	}
}

func TestCompose_SingleBar(t *testing.T) {
	o, err := Compose(newTestLifeline(t, Bar{ID: "b1", Bounds: geom.R(45, 100, 10, 50)}))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := geom.Polygon{
		{0, 0}, {100, 0}, {100, 40}, {50, 40},
		{50, 100}, {45, 100}, {55, 100}, {55, 150}, {50, 150},
		{50, 300},
		{50, 150}, {55, 150}, {45, 150}, {45, 100}, {50, 100},
		{50, 40}, {0, 40}, {0, 0},
	}
	if !reflect.DeepEqual(o.Attach, want) {
		t.Errorf("Attach = %v, want %v", o.Attach, want)
	}
	if o.Bands != 1 {
		t.Errorf("Bands = %d, want 1", o.Bands)
	}
}

func TestCompose_ClustersTopToBottom(t *testing.T) {
	// Insert the lower bar first: output order must follow geometry.
	o, err := Compose(newTestLifeline(t,
		Bar{ID: "low", Bounds: geom.R(45, 100, 10, 20)},
		Bar{ID: "high", Bounds: geom.R(45, 60, 10, 20)},
	))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := geom.Polygon{
		{0, 0}, {100, 0}, {100, 40}, {50, 40},
		{50, 60}, {45, 60}, {55, 60}, {55, 80}, {50, 80},
		{50, 100}, {45, 100}, {55, 100}, {55, 120}, {50, 120},
		{50, 300},
		{50, 120}, {55, 120}, {45, 120}, {45, 100}, {50, 100},
		{50, 80}, {55, 80}, {45, 80}, {45, 60}, {50, 60},
		{50, 40}, {0, 40}, {0, 0},
	}
	if !reflect.DeepEqual(o.Attach, want) {
		t.Errorf("Attach = %v, want %v", o.Attach, want)
	}
}

func TestCompose_VerticallyOverlappingClustersMerge(t *testing.T) {
	l := newTestLifeline(t,
		Bar{ID: "left", Bounds: geom.R(40, 60, 10, 30)},
		Bar{ID: "right", Bounds: geom.R(52, 70, 10, 30)},
	)
	if got := len(l.Clusters()); got != 2 {
		t.Fatalf("Clusters() = %d, want 2 disjoint clusters", got)
	}

	o, err := Compose(l)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if o.Bands != 1 {
		t.Errorf("Bands = %d, want 1", o.Bands)
	}
	if x := o.Attach.ProperCrossings(); len(x) > 0 {
		t.Errorf("Attach %v crosses itself at %v", o.Attach, x)
	}
	for _, p := range []geom.Point{{40, 60}, {62, 60}, {62, 100}, {40, 100}, {51, 65}} {
		if !o.Attach.Contains(p) {
			t.Errorf("Attach does not enclose %v", p)
		}
	}
}

func TestCompose_StemReachesLowestBar(t *testing.T) {
	o, err := Compose(newTestLifeline(t, Bar{ID: "deep", Bounds: geom.R(45, 280, 10, 60)}))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if b := o.Attach.Bounds(); b.Bottom() != 340 {
		t.Errorf("Attach bottom = %d, want 340", b.Bottom())
	}
	if x := o.Attach.ProperCrossings(); len(x) > 0 {
		t.Errorf("Attach crosses itself at %v", x)
	}
}

func TestCompose_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		l    *Lifeline
	}{
		{"nil lifeline", nil},
		{"negative width", New("l", geom.R(0, 0, -1, 100), 10)},
		{"negative height", New("l", geom.R(0, 0, 100, -5), 0)},
		{"negative bar height", withBar(New("l", geom.R(0, 0, 100, 300), 40), geom.R(45, 50, 10, -1))},
		{"negative bar width", withBar(New("l", geom.R(0, 0, 100, 300), 40), geom.R(45, 50, -3, 10))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.l)
			if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
				t.Errorf("Compose() error = %v, want %s", err, errors.ErrCodeInvalidGeometry)
			}
		})
	}
}

// Header placement is a layout concern, not a precondition: these
// lifelines have non-negative geometry and must compose.
func TestCompose_HeaderLayouts(t *testing.T) {
	tests := []struct {
		name string
		l    *Lifeline
	}{
		{"header above top", New("l", geom.R(0, 10, 100, 100), 5)},
		{"header below bottom", New("l", geom.R(0, 0, 100, 100), 101)},
		{"bar above header", withBar(New("l", geom.R(0, 0, 100, 300), 40), geom.R(45, 30, 10, 20))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Compose(tt.l)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			if !o.Attach.IsClosed() || !o.HitTest.IsClosed() {
				t.Errorf("Compose() = %v / %v, want closed polygons", o.Attach, o.HitTest)
			}
		})
	}
}

func TestCompose_DegenerateBars(t *testing.T) {
	o, err := Compose(newTestLifeline(t,
		Bar{ID: "flat", Bounds: geom.R(40, 100, 20, 0)},
		Bar{ID: "thin", Bounds: geom.R(50, 120, 0, 30)},
		Bar{ID: "dot", Bounds: geom.R(50, 200, 0, 0)},
	))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !o.Attach.IsClosed() {
		t.Errorf("Attach not closed: %v", o.Attach)
	}
	if x := o.Attach.ProperCrossings(); len(x) > 0 {
		t.Errorf("Attach crosses itself at %v", x)
	}
}

// TestCompose_Simple checks on random lifelines that the attach polygon
// is closed, orthogonal, free of proper self-crossings, and encloses
// every bar corner.
func TestCompose_Simple(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 14))

	for iter := 0; iter < 300; iter++ {
		l := New("l", geom.R(rng.IntN(50), 0, 40+rng.IntN(120), 100+rng.IntN(300)), 10+rng.IntN(30))
		n := rng.IntN(15)
		for i := 0; i < n; i++ {
			r := geom.R(
				l.Bounds().X+rng.IntN(l.Bounds().Width+20)-10,
				l.HeaderBottom()+rng.IntN(l.Bounds().Height),
				rng.IntN(30),
				rng.IntN(60),
			)
			if err := l.AddBar(Bar{ID: BarID(rune('a' + i)), Bounds: r}); err != nil {
				t.Fatal(err)
			}
		}

		o, err := Compose(l)
		if err != nil {
			t.Fatalf("iter %d: Compose() error = %v", iter, err)
		}
		p := o.Attach
		if !p.IsClosed() {
			t.Fatalf("iter %d: not closed: %v", iter, p)
		}
		if !p.IsOrthogonal() {
			t.Fatalf("iter %d: not orthogonal: %v", iter, p)
		}
		if x := p.ProperCrossings(); len(x) > 0 {
			t.Fatalf("iter %d: %v crosses itself at %v (bars %v)", iter, p, x, l.Bars())
		}
		for _, b := range l.Bars() {
			for _, c := range b.Bounds.Corners() {
				if !p.Contains(c) {
					t.Fatalf("iter %d: corner %v of %s outside %v", iter, c, b.ID, p)
				}
			}
		}
	}
}

func withBar(l *Lifeline, r geom.Rect) *Lifeline {
	l.bars = append(l.bars, Bar{ID: "x", Bounds: r})
	return l
}
