package lifeline

import (
	"testing"
	"time"

	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/observability"
)

func TestAddBar(t *testing.T) {
	l := New("client", geom.R(0, 0, 100, 300), 40)

	if err := l.AddBar(Bar{ID: "b1", Bounds: geom.R(45, 50, 10, 20)}); err != nil {
		t.Fatalf("AddBar() error = %v", err)
	}
	if err := l.AddBar(Bar{ID: "b1", Bounds: geom.R(45, 90, 10, 20)}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddBar(duplicate) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if err := l.AddBar(Bar{ID: "", Bounds: geom.R(45, 90, 10, 20)}); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("AddBar(empty id) error = %v, want %s", err, errors.ErrCodeInvalidID)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestRemoveAndMoveBar(t *testing.T) {
	l := newTestLifeline(t,
		Bar{ID: "b1", Bounds: geom.R(45, 50, 10, 20)},
		Bar{ID: "b2", Bounds: geom.R(45, 90, 10, 20)},
	)

	if err := l.MoveBar("b2", geom.R(45, 95, 10, 20)); err != nil {
		t.Fatalf("MoveBar() error = %v", err)
	}
	if b, _ := l.Bar("b2"); b.Bounds != geom.R(45, 95, 10, 20) {
		t.Errorf("Bar(b2) = %v after move", b.Bounds)
	}

	if err := l.RemoveBar("b1"); err != nil {
		t.Fatalf("RemoveBar() error = %v", err)
	}
	if _, ok := l.Bar("b1"); ok {
		t.Error("Bar(b1) still present after RemoveBar")
	}

	if err := l.RemoveBar("b1"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("RemoveBar(missing) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if err := l.MoveBar("nope", geom.R(0, 0, 1, 1)); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("MoveBar(missing) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestSetBarsRejectsDuplicates(t *testing.T) {
	l := newTestLifeline(t, Bar{ID: "keep", Bounds: geom.R(45, 50, 10, 20)})
	err := l.SetBars([]Bar{{ID: "a"}, {ID: "a"}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("SetBars() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, ok := l.Bar("keep"); !ok {
		t.Error("SetBars() modified the lifeline on error")
	}
}

func TestApplyMoves(t *testing.T) {
	l := newTestLifeline(t,
		Bar{ID: "b1", Bounds: geom.R(45, 50, 10, 20)},
		Bar{ID: "b2", Bounds: geom.R(45, 90, 10, 20)},
	)

	err := l.ApplyMoves(map[BarID]geom.Rect{"b1": geom.R(45, 55, 10, 20), "ghost": geom.R(0, 0, 1, 1)})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("ApplyMoves() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if b, _ := l.Bar("b1"); b.Bounds.Y != 50 {
		t.Error("ApplyMoves() applied a partial batch")
	}

	if err := l.ApplyMoves(map[BarID]geom.Rect{"b2": geom.R(45, 100, 10, 20)}); err != nil {
		t.Fatalf("ApplyMoves() error = %v", err)
	}
	if got := l.Rects()["b2"]; got != geom.R(45, 100, 10, 20) {
		t.Errorf("Rects()[b2] = %v", got)
	}
}

func TestBarsReturnsCopy(t *testing.T) {
	l := newTestLifeline(t, Bar{ID: "b1", Bounds: geom.R(45, 50, 10, 20)})
	bars := l.Bars()
	bars[0].Bounds.Y = 999
	if b, _ := l.Bar("b1"); b.Bounds.Y != 50 {
		t.Error("Bars() exposes internal storage")
	}
}

func TestOutlineCache(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetOutlineHooks(rec)
	t.Cleanup(observability.Reset)

	l := newTestLifeline(t, Bar{ID: "b1", Bounds: geom.R(45, 50, 10, 20)})

	first, err := l.OutlinePolygon()
	if err != nil {
		t.Fatalf("OutlinePolygon() error = %v", err)
	}
	if !l.Cached() {
		t.Fatal("outline not cached after first query")
	}
	if _, err := l.HitTestPolygon(); err != nil {
		t.Fatalf("HitTestPolygon() error = %v", err)
	}
	if rec.misses != 1 || rec.hits != 1 || rec.computed != 1 {
		t.Errorf("hooks = %+v, want 1 miss, 1 hit, 1 computed", rec)
	}

	// Mutating a returned polygon must not corrupt the cache.
	first[0] = geom.Pt(-1, -1)
	again, _ := l.OutlinePolygon()
	if again[0] == geom.Pt(-1, -1) {
		t.Error("OutlinePolygon() returned the cached slice")
	}

	mutations := []struct {
		name string
		fn   func()
	}{
		{"SetBounds", func() { l.SetBounds(geom.R(0, 0, 100, 320)) }},
		{"SetHeaderBottom", func() { l.SetHeaderBottom(30) }},
		{"AddBar", func() { _ = l.AddBar(Bar{ID: "b2", Bounds: geom.R(45, 100, 10, 20)}) }},
		{"MoveBar", func() { _ = l.MoveBar("b2", geom.R(45, 110, 10, 20)) }},
		{"RemoveBar", func() { _ = l.RemoveBar("b2") }},
		{"SetConfig", func() { l.SetConfig(config.Config{HitTestBuffer: 5}) }},
		{"Invalidate", func() { l.Invalidate() }},
	}
	for _, m := range mutations {
		if _, err := l.OutlinePolygon(); err != nil {
			t.Fatalf("%s: OutlinePolygon() error = %v", m.name, err)
		}
		m.fn()
		if l.Cached() {
			t.Errorf("%s did not invalidate the outline cache", m.name)
		}
	}
}

func TestOutlineErrorsAreNotCached(t *testing.T) {
	l := New("broken", geom.R(0, 0, 100, -1), 0)
	if _, err := l.OutlinePolygon(); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Fatalf("OutlinePolygon() error = %v, want %s", err, errors.ErrCodeInvalidGeometry)
	}
	if l.Cached() {
		t.Error("failed composition was cached")
	}

	l.SetBounds(geom.R(0, 0, 100, 100))
	if _, err := l.OutlinePolygon(); err != nil {
		t.Errorf("OutlinePolygon() after fix error = %v", err)
	}
}

func TestContainsPoint(t *testing.T) {
	l := newTestLifeline(t, Bar{ID: "b1", Bounds: geom.R(45, 100, 10, 50)})

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"header", 10, 20, true},
		{"stem centre", 50, 200, true},
		{"stem buffer edge", 70, 200, true},
		{"within fuzz", 72, 200, true},
		{"beyond fuzz", 73, 200, false},
		{"beside stem below header", 10, 100, false},
		{"below lifeline", 50, 303, false},
		{"below lifeline within fuzz", 50, 302, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.ContainsPoint(tt.x, tt.y)
			if err != nil {
				t.Fatalf("ContainsPoint() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ContainsPoint(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestContainsPointInvalid(t *testing.T) {
	l := New("broken", geom.R(0, 0, -10, 100), 0)
	if _, err := l.ContainsPoint(0, 0); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("ContainsPoint() error = %v, want %s", err, errors.ErrCodeInvalidGeometry)
	}
}

func TestClusters(t *testing.T) {
	l := newTestLifeline(t,
		Bar{ID: "a", Bounds: geom.R(45, 50, 10, 30)},
		Bar{ID: "far", Bounds: geom.R(45, 200, 10, 10)},
		Bar{ID: "b", Bounds: geom.R(50, 60, 10, 10)},
	)
	got := l.Clusters()
	if len(got) != 2 {
		t.Fatalf("Clusters() = %v, want 2 clusters", got)
	}
	if got[0][0].ID != "a" || got[0][1].ID != "b" || got[1][0].ID != "far" {
		t.Errorf("Clusters() = %v", got)
	}
}

type recordingHooks struct {
	hits, misses, computed int
}

func (r *recordingHooks) OnOutlineCacheHit(string)  { r.hits++ }
func (r *recordingHooks) OnOutlineCacheMiss(string) { r.misses++ }
func (r *recordingHooks) OnOutlineComputed(string, int, int, time.Duration, error) {
	r.computed++
}
