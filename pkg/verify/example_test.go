package verify_test

import (
	"fmt"

	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/lifeline"
	"github.com/matzehuels/lifeline/pkg/verify"
)

func ExampleSpacing() {
	rects := map[lifeline.BarID]geom.Rect{
		"parent": geom.R(40, 100, 20, 60),
		"child":  geom.R(45, 102, 10, 20),
	}
	for _, f := range verify.Spacing(rects, 5) {
		fmt.Println(f)
	}
	// Output:
	// spacing: bar child starts 2 below parent, want at least 5
	// spacing: bar child nested in parent starts at x=45 left of midpoint 50
}

func ExampleSimple() {
	bowtie := geom.Polygon{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: 0}}
	fmt.Print(verify.Format(verify.Simple(bowtie)))
	// Output:
	// simple: edge 0 crosses edge 2
}
