package powerstroke

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, and the points and vectors built from them, up to
// an absolute error.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

func assertNear(t *testing.T, got Point, want Point, epsilon float64) {
	t.Helper()
	if d := got.Sub(want).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

// polyline returns an open path through the points.
func polyline(pts ...Point) BezPath {
	var p BezPath
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	return p
}

// circlePath returns a closed counter-clockwise circle made of four cubics.
func circlePath(center Point, r float64) BezPath {
	const k = 0.5522847498307936
	var p BezPath
	c := func(x, y float64) Point { return Pt(center.X+x*r, center.Y+y*r) }
	p.MoveTo(c(1, 0))
	p.CubicTo(c(1, k), c(k, 1), c(0, 1))
	p.CubicTo(c(-k, 1), c(-1, k), c(-1, 0))
	p.CubicTo(c(-1, -k), c(-k, -1), c(0, -1))
	p.CubicTo(c(k, -1), c(1, -k), c(1, 0))
	p.ClosePath()
	return p
}

// outlineSubpaths splits a stroke result into its subpaths as chains of
// cubics.
func outlineSubpaths(p BezPath) []Piecewise {
	var out []Piecewise
	for _, sp := range p.subpaths() {
		out = append(out, normalizeSubpath(sp, DefaultTolerance))
	}
	return out
}

// pathPoints samples every segment of the path.
func pathPoints(p BezPath, perSegment int) []Point {
	var pts []Point
	for _, pw := range outlineSubpaths(p) {
		for _, c := range pw.Segs {
			for i := range perSegment + 1 {
				pts = append(pts, c.Eval(float64(i)/float64(perSegment)))
			}
		}
	}
	return pts
}
