package geom_test

import (
	"fmt"

	"github.com/matzehuels/svgmapper/pkg/geom"
)

func ExampleNearestEdge() {
	room := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100)}

	// A click just below the top edge: the new vertex goes after index 0.
	i, d := geom.NearestEdge(room, geom.Pt(50, 3))
	fmt.Println("edge:", i, "distance:", d)
	// Output:
	// edge: 0 distance: 3
}

func ExampleRemapBounds() {
	room := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}

	// Drag the bottom-right handle out to double the size.
	resized := geom.RemapBounds(room, geom.Bounds(room), geom.R(0, 0, 20, 20))
	fmt.Println(resized)
	// Output:
	// [{0 0} {20 0} {20 20} {0 20}]
}
