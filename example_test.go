package powerstroke_test

import (
	"fmt"

	"honnef.co/go/powerstroke"
)

// printPath prints the path as SVG path data, one element per line.
func printPath(p powerstroke.BezPath) {
	for _, el := range p {
		switch el.Kind {
		case powerstroke.MoveToKind:
			fmt.Printf("M%.2f,%.2f\n", el.P0.X, el.P0.Y)
		case powerstroke.LineToKind:
			fmt.Printf("L%.2f,%.2f\n", el.P0.X, el.P0.Y)
		case powerstroke.CubicToKind:
			fmt.Printf("C%.2f,%.2f %.2f,%.2f %.2f,%.2f\n",
				el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case powerstroke.ClosePathKind:
			fmt.Println("Z")
		}
	}
}

func ExampleStroke() {
	var p powerstroke.BezPath
	p.MoveTo(powerstroke.Pt(0, 0))
	p.LineTo(powerstroke.Pt(100, 0))

	// A constant width of 10 on either side, with butt ends.
	opts := powerstroke.DefaultOptions.
		WithInterpolator(powerstroke.Linear).
		WithCaps(powerstroke.ButtCap)
	outline := powerstroke.Stroke(p, []powerstroke.OffsetSample{{Pos: 0.5, Width: 10}}, opts)
	printPath(outline)

	// Output:
	// M0.00,10.00
	// L50.00,10.00
	// L100.00,10.00
	// L100.00,-10.00
	// L50.00,-10.00
	// L0.00,-10.00
	// L0.00,10.00
	// Z
}

func ExampleStroke_closed() {
	var p powerstroke.BezPath
	p.MoveTo(powerstroke.Pt(0, 0))
	p.LineTo(powerstroke.Pt(100, 0))
	p.LineTo(powerstroke.Pt(100, 100))
	p.LineTo(powerstroke.Pt(0, 100))
	p.ClosePath()

	outline := powerstroke.Stroke(p, []powerstroke.OffsetSample{{Pos: 0, Width: 5}}, powerstroke.DefaultOptions)
	// One loop on either side of the path.
	fmt.Println(outline.SubpathCount())
	bb, _ := outline.BoundingBox()
	fmt.Printf("%.2f %.2f %.2f %.2f\n", bb.X0, bb.Y0, bb.X1, bb.Y1)

	// Output:
	// 2
	// -5.00 -5.00 105.00 105.00
}

func ExampleParseJoinType() {
	j, err := powerstroke.ParseJoinType("extrp_arc")
	fmt.Println(j == powerstroke.ExtrapolatedArcJoin, err)

	_, err = powerstroke.ParseJoinType("mitre")
	fmt.Println(err)

	// Output:
	// true <nil>
	// unknown join type "mitre"
}

func ExampleSamples_Reproject() {
	var before, after powerstroke.BezPath
	before.MoveTo(powerstroke.Pt(0, 0))
	before.LineTo(powerstroke.Pt(100, 0))
	// The edited path is twice as long.
	after.MoveTo(powerstroke.Pt(0, 0))
	after.LineTo(powerstroke.Pt(200, 0))

	from := powerstroke.Normalize(before, powerstroke.DefaultTolerance)[0]
	to := powerstroke.Normalize(after, powerstroke.DefaultTolerance)[0]
	samples := powerstroke.Samples{{Pos: 0.25, Width: 3}, {Pos: 0.75, Width: -3}}
	for _, s := range samples.Reproject(from, to, "1.3") {
		fmt.Printf("(%.3f, %g)\n", s.Pos, s.Width)
	}

	// Output:
	// (0.125, 3)
	// (0.375, -3)
}
