package verify

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/matzehuels/lifeline/pkg/cluster"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/hull"
	"github.com/matzehuels/lifeline/pkg/lifeline"
)

func TestPartition(t *testing.T) {
	rects := []geom.Rect{
		geom.R(0, 0, 10, 10),
		geom.R(5, 5, 10, 10),
		geom.R(100, 100, 5, 5),
	}
	tests := []struct {
		name   string
		groups [][]int
		want   int
	}{
		{"exact", [][]int{{0, 1}, {2}}, 0},
		{"missing bar", [][]int{{0, 1}}, 1},
		{"bar twice", [][]int{{0, 1}, {2}, {2}}, 1},
		{"overlap split", [][]int{{0}, {1}, {2}}, 1},
		{"disconnected", [][]int{{0, 1, 2}}, 1},
		{"out of range", [][]int{{0, 1}, {2, 7}}, 1},
		{"empty cluster", [][]int{{0, 1}, {2}, {}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(rects, tt.groups)
			if len(got) != tt.want {
				t.Errorf("Partition() = %v, want %d findings", got, tt.want)
			}
			for _, f := range got {
				if f.Check != CheckPartition {
					t.Errorf("Check = %q, want %q", f.Check, CheckPartition)
				}
			}
		})
	}
}

func TestPartition_Grouper(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 8))
	for iter := 0; iter < 100; iter++ {
		rects := make([]geom.Rect, rng.IntN(30))
		for i := range rects {
			rects[i] = geom.R(rng.IntN(100), rng.IntN(100), rng.IntN(20), rng.IntN(20))
		}
		if f := Partition(rects, cluster.GroupIndices(rects)); len(f) != 0 {
			t.Fatalf("iter %d: %v", iter, f)
		}
	}
}

func TestEnclosure(t *testing.T) {
	rects := []geom.Rect{geom.R(0, 0, 10, 10), geom.R(5, 5, 10, 10)}

	if f := Enclosure(rects, hull.Build(rects)); len(f) != 0 {
		t.Errorf("Enclosure(hull) = %v, want none", f)
	}

	bbox := geom.Polygon{{0, 0}, {15, 0}, {15, 15}, {0, 15}, {0, 0}}
	if f := Enclosure(rects, bbox); len(f) != 0 {
		t.Errorf("Enclosure(bbox) = %v, want none", f)
	}

	small := geom.Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	if f := Enclosure(rects, small); len(f) != 3 {
		t.Errorf("Enclosure(small) = %v, want 3 corners outside", f)
	}

	open := geom.Polygon{{0, 0}, {15, 15}, {0, 15}}
	f := Enclosure(rects, open)
	if !hasMessage(f, "not closed") || !hasMessage(f, "diagonal") {
		t.Errorf("Enclosure(open) = %v", f)
	}

	if f := Enclosure(nil, nil); len(f) != 0 {
		t.Errorf("Enclosure(nil) = %v", f)
	}
}

func TestSimple(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Polygon
		want int
	}{
		{"empty", nil, 0},
		{"square", geom.Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}, 0},
		{"spike", geom.Polygon{{0, 0}, {10, 0}, {5, 0}, {5, 10}, {5, 0}, {0, 0}}, 0},
		{"bowtie", geom.Polygon{{0, 0}, {10, 10}, {10, 0}, {0, 10}, {0, 0}}, 1},
		{"open", geom.Polygon{{0, 0}, {10, 0}, {10, 10}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simple(tt.p); len(got) != tt.want {
				t.Errorf("Simple() = %v, want %d findings", got, tt.want)
			}
		})
	}
}

func TestSpacing(t *testing.T) {
	tests := []struct {
		name  string
		rects map[lifeline.BarID]geom.Rect
		want  int
	}{
		{
			name: "relocated chain",
			rects: map[lifeline.BarID]geom.Rect{
				"b1": geom.R(45, 60, 10, 16),
				"b2": geom.R(50, 65, 10, 8),
				"b3": geom.R(45, 70, 10, 8),
				"b4": geom.R(45, 75, 10, 8),
				"b5": geom.R(45, 80, 10, 8),
			},
			want: 0,
		},
		{
			name: "top too close",
			rects: map[lifeline.BarID]geom.Rect{
				"a": geom.R(10, 10, 50, 20),
				"b": geom.R(10, 12, 50, 20),
			},
			want: 1,
		},
		{
			name: "nested left of midpoint",
			rects: map[lifeline.BarID]geom.Rect{
				"p": geom.R(100, 0, 40, 200),
				"c": geom.R(100, 50, 20, 30),
			},
			want: 1,
		},
		{
			name: "both rules broken",
			rects: map[lifeline.BarID]geom.Rect{
				"p": geom.R(100, 0, 40, 200),
				"c": geom.R(100, 2, 20, 30),
			},
			want: 2,
		},
		{
			name: "equal tops are not compared",
			rects: map[lifeline.BarID]geom.Rect{
				"a": geom.R(0, 10, 10, 10),
				"b": geom.R(0, 10, 10, 10),
			},
			want: 0,
		},
		{
			name: "touching spans",
			rects: map[lifeline.BarID]geom.Rect{
				"a": geom.R(0, 10, 10, 10),
				"b": geom.R(0, 20, 10, 10),
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Spacing(tt.rects, 5); len(got) != tt.want {
				t.Errorf("Spacing() = %v, want %d findings", got, tt.want)
			}
		})
	}
}

func TestLifeline(t *testing.T) {
	l := lifeline.New("server", geom.R(0, 0, 100, 300), 40)
	for _, b := range []lifeline.Bar{
		{ID: "b1", Bounds: geom.R(45, 60, 10, 16)},
		{ID: "b2", Bounds: geom.R(50, 65, 10, 8)},
		{ID: "b3", Bounds: geom.R(45, 70, 10, 8)},
		{ID: "solo", Bounds: geom.R(45, 200, 10, 30)},
	} {
		if err := l.AddBar(b); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Lifeline(l)
	if err != nil {
		t.Fatalf("Lifeline() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Lifeline() = %v, want none", got)
	}

	if err := l.MoveBar("b2", geom.R(45, 62, 10, 8)); err != nil {
		t.Fatal(err)
	}
	got, err = Lifeline(l)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Lifeline() = %v, want 2 spacing findings", got)
	}
	for _, f := range got {
		if f.Lifeline != "server" || f.Check != CheckSpacing {
			t.Errorf("finding = %+v", f)
		}
	}
}

func TestLifeline_InvalidGeometry(t *testing.T) {
	l := lifeline.New("server", geom.R(0, 0, 100, 300), 40)
	if err := l.AddBar(lifeline.Bar{ID: "inverted", Bounds: geom.R(45, 100, 10, -10)}); err != nil {
		t.Fatal(err)
	}
	if _, err := Lifeline(l); err == nil {
		t.Error("Lifeline() expected error for negative bar height")
	}
}

// Zero-area bars are legal input: their hulls are closed degenerate
// polygons that still enclose every corner.
func TestLifeline_DegenerateBars(t *testing.T) {
	tests := []struct {
		name string
		bars []geom.Rect
	}{
		{"point", []geom.Rect{geom.R(50, 100, 0, 0)}},
		{"flat", []geom.Rect{geom.R(40, 100, 20, 0)}},
		{"thin", []geom.Rect{geom.R(50, 100, 0, 30)}},
		{"point inside bar", []geom.Rect{geom.R(40, 100, 20, 40), geom.R(50, 120, 0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lifeline.New("server", geom.R(0, 0, 100, 300), 40)
			for i, r := range tt.bars {
				if err := l.AddBar(lifeline.Bar{ID: lifeline.BarID(fmt.Sprintf("b%d", i)), Bounds: r}); err != nil {
					t.Fatal(err)
				}
			}
			got, err := Lifeline(l)
			if err != nil {
				t.Fatalf("Lifeline() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Lifeline() = %v, want none", got)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	bounds := geom.R(0, 0, 100, 300)
	tests := []struct {
		name         string
		headerBottom int
		rects        map[lifeline.BarID]geom.Rect
		want         []string
	}{
		{"clean", 40, map[lifeline.BarID]geom.Rect{"a": geom.R(45, 40, 10, 10)}, nil},
		{"header below bottom", 301, nil, []string{"header bottom 301 outside [0, 300]"}},
		{"header above top", -1, nil, []string{"header bottom -1 outside [0, 300]"}},
		{
			"bars above header",
			40,
			map[lifeline.BarID]geom.Rect{"z": geom.R(45, 39, 10, 10), "a": geom.R(45, 0, 10, 10), "ok": geom.R(45, 50, 10, 10)},
			[]string{"bar a starts at y=0 above header bottom 40", "bar z starts at y=39 above header bottom 40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Header(bounds, tt.headerBottom, tt.rects)
			if len(got) != len(tt.want) {
				t.Fatalf("Header() = %v, want %d findings", got, len(tt.want))
			}
			for i, f := range got {
				if f.Check != CheckHeader || f.Message != tt.want[i] {
					t.Errorf("finding %d = %+v, want %q", i, f, tt.want[i])
				}
			}
		})
	}
}

func TestLifeline_BarAboveHeader(t *testing.T) {
	l := lifeline.New("server", geom.R(0, 0, 100, 300), 40)
	if err := l.AddBar(lifeline.Bar{ID: "early", Bounds: geom.R(45, 10, 10, 10)}); err != nil {
		t.Fatal(err)
	}
	got, err := Lifeline(l)
	if err != nil {
		t.Fatalf("Lifeline() error = %v", err)
	}
	if !hasCheck(got, CheckHeader) {
		t.Errorf("Lifeline() = %v, want a header finding", got)
	}
}

func TestLifelines(t *testing.T) {
	var ls []*lifeline.Lifeline
	for i := 0; i < 8; i++ {
		l := lifeline.New(fmt.Sprintf("l%d", i), geom.R(i*120, 0, 100, 300), 40)
		if err := l.AddBar(lifeline.Bar{ID: "a", Bounds: geom.R(i*120+45, 50, 10, 40)}); err != nil {
			t.Fatal(err)
		}
		if i%2 == 1 {
			// Two units below its parent's top.
			if err := l.AddBar(lifeline.Bar{ID: "b", Bounds: geom.R(i*120+50, 52, 10, 10)}); err != nil {
				t.Fatal(err)
			}
		}
		ls = append(ls, l)
	}

	got, err := Lifelines(context.Background(), ls, nil)
	if err != nil {
		t.Fatalf("Lifelines() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Lifelines() = %v, want 4 findings", got)
	}
	for i, f := range got {
		if want := fmt.Sprintf("l%d", 2*i+1); f.Lifeline != want {
			t.Errorf("finding %d on %s, want %s", i, f.Lifeline, want)
		}
	}

	if out := Format(got); strings.Count(out, "\n") != 4 || !strings.HasPrefix(out, "l1: spacing: ") {
		t.Errorf("Format() = %q", out)
	}
}

func TestLifelines_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ls := []*lifeline.Lifeline{lifeline.New("a", geom.R(0, 0, 10, 10), 0)}
	if _, err := Lifelines(ctx, ls, nil); err == nil {
		t.Error("Lifelines() expected context error")
	}
}

func TestLifelines_Progress(t *testing.T) {
	var ls []*lifeline.Lifeline
	for i := 0; i < 5; i++ {
		ls = append(ls, lifeline.New(fmt.Sprintf("l%d", i), geom.R(i*120, 0, 100, 300), 40))
	}

	seen := make(map[string]bool)
	var counts []int
	_, err := Lifelines(context.Background(), ls, func(id string, checked, total int) {
		seen[id] = true
		counts = append(counts, checked)
		if total != len(ls) {
			t.Errorf("total = %d, want %d", total, len(ls))
		}
	})
	if err != nil {
		t.Fatalf("Lifelines() error = %v", err)
	}
	if len(seen) != len(ls) {
		t.Errorf("progress saw %v, want every lifeline", seen)
	}
	for i, c := range counts {
		if c != i+1 {
			t.Errorf("progress counts = %v, want 1..%d", counts, len(ls))
			break
		}
	}
}

func hasCheck(fs []Finding, check string) bool {
	for _, f := range fs {
		if f.Check == check {
			return true
		}
	}
	return false
}

func hasMessage(fs []Finding, sub string) bool {
	for _, f := range fs {
		if strings.Contains(f.Message, sub) {
			return true
		}
	}
	return false
}
