package powerstroke

import (
	"math"
	"testing"
)

func assertValidOutline(t *testing.T, p BezPath) {
	t.Helper()
	for i, el := range p {
		for _, pt := range []Point{el.P0, el.P1, el.P2} {
			if pt.IsNaN() || pt.IsInf() {
				t.Fatalf("element %d (%s) is invalid", i, el)
			}
		}
	}
	for i, sp := range p.subpaths() {
		if !sp.closed {
			t.Errorf("outline subpath %d is not closed", i)
		}
	}
}

func boundingBox(t *testing.T, p BezPath) Rect {
	t.Helper()
	bb, ok := p.BoundingBox()
	if !ok {
		t.Fatal("outline has no segments")
	}
	return bb
}

func TestStrokeStraightButt(t *testing.T) {
	path := polyline(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	opts := DefaultOptions.WithJoin(RoundJoin).WithCaps(ButtCap)
	got := Stroke(path, []OffsetSample{{0.5, 5}}, opts)
	assertValidOutline(t, got)
	if n := got.SubpathCount(); n != 1 {
		t.Fatalf("got %d subpaths, want 1", n)
	}
	diff(t, Rect{0, -5, 20, 5}, boundingBox(t, got), approx(1e-9))
	diff(t, 200.0, math.Abs(got.SignedArea()), approx(1e-6))
	// Two parallel lines and two caps, nothing else.
	for _, pt := range pathPoints(got, 4) {
		onSide := math.Abs(math.Abs(pt.Y)-5) < 1e-9
		onCap := math.Abs(pt.X) < 1e-9 || math.Abs(pt.X-20) < 1e-9
		if !onSide && !onCap {
			t.Errorf("outline point %s is not on the rectangle", pt)
		}
	}
}

func TestStrokeCircle(t *testing.T) {
	path := circlePath(Pt(0, 0), 10)
	got := Stroke(path, []OffsetSample{{0, 3}, {0.5, 8}}, DefaultOptions.WithInterpolator(Linear))
	assertValidOutline(t, got)
	loops := outlineSubpaths(got)
	if len(loops) != 2 {
		t.Fatalf("got %d loops, want 2", len(loops))
	}

	radii := func(pw Piecewise) (lo, hi float64) {
		lo = math.Inf(1)
		for _, c := range pw.Segs {
			for s := 0.0; s <= 1; s += 0.125 {
				r := Vec2(c.Eval(s)).Hypot()
				lo, hi = min(lo, r), max(hi, r)
			}
		}
		return lo, hi
	}
	// The circle runs counter-clockwise, so positive widths point inwards.
	const slack = 0.05
	lo, hi := radii(loops[0])
	if lo < 2-slack || hi > 7+slack {
		t.Errorf("inner loop spans radii [%g, %g], want within [2, 7]", lo, hi)
	}
	lo, hi = radii(loops[1])
	if lo < 13-slack || hi > 18+slack {
		t.Errorf("outer loop spans radii [%g, %g], want within [13, 18]", lo, hi)
	}

	near := func(pw Piecewise, pt Point) {
		t.Helper()
		if _, d := pw.Nearest(pt, 1e-9); math.Sqrt(d) > slack {
			t.Errorf("outline does not pass through %s", pt)
		}
	}
	// Width 3 at the start, 8 halfway around.
	near(loops[0], Pt(7, 0))
	near(loops[1], Pt(13, 0))
	near(loops[0], Pt(-2, 0))
	near(loops[1], Pt(-18, 0))
}

func TestStrokeMiterLimit(t *testing.T) {
	path := polyline(Pt(0, 0), Pt(10, 0), Pt(10, -10))
	samples := []OffsetSample{{0.5, 2}}
	corner := Pt(10, 0)

	limited := Stroke(path, samples, DefaultOptions.WithJoin(MiterJoin).WithMiterLimit(1).WithCaps(ButtCap))
	assertValidOutline(t, limited)
	for _, pt := range pathPoints(limited, 8) {
		// Only the outside of the corner carries the join.
		if pt.X < 10 || pt.Y < 0 {
			continue
		}
		if d := pt.Distance(corner); d > 2+1e-6 {
			t.Errorf("join point %s is %g from the corner, want at most 2", pt, d)
		}
	}

	mitered := Stroke(path, samples, DefaultOptions.WithJoin(MiterJoin).WithMiterLimit(4).WithCaps(ButtCap))
	found := false
	for _, pt := range pathPoints(mitered, 1) {
		if pt.isNear(Pt(12, 2), 1e-6) {
			found = true
		}
	}
	if !found {
		t.Error("miter tip (12, 2) is missing")
	}
}

func TestStrokeZeroLengthSegment(t *testing.T) {
	path := polyline(Pt(0, 0), Pt(10, 0), Pt(10, 0), Pt(20, 0))
	got := Stroke(path, []OffsetSample{{0.5, 5}}, DefaultOptions.WithCaps(ButtCap))
	assertValidOutline(t, got)
	if n := got.SubpathCount(); n != 1 {
		t.Fatalf("got %d subpaths, want 1", n)
	}
	diff(t, Rect{0, -5, 20, 5}, boundingBox(t, got), approx(1e-6))
}

func TestStrokeSubpathCounts(t *testing.T) {
	path := polyline(Pt(0, 0), Pt(10, 5), Pt(20, 0))
	path = append(path, circlePath(Pt(50, 50), 10)...)
	path = append(path, polyline(Pt(0, 100), Pt(0, 150))...)
	// A subpath without length is dropped.
	path = append(path, polyline(Pt(7, 7), Pt(7, 7))...)

	got := Stroke(path, []OffsetSample{{0.25, 2}, {0.75, 3}}, DefaultOptions)
	assertValidOutline(t, got)
	diff(t, 4, got.SubpathCount())
}

func TestStrokeReturnsInput(t *testing.T) {
	path := polyline(Pt(0, 0), Pt(10, 0))
	diff(t, path, Stroke(path, nil, DefaultOptions))

	degenerate := polyline(Pt(1, 1), Pt(1, 1))
	diff(t, degenerate, Stroke(degenerate, []OffsetSample{{0.5, 1}}, DefaultOptions))

	var empty BezPath
	diff(t, empty, Stroke(empty, []OffsetSample{{0.5, 1}}, DefaultOptions))
}

func TestStrokeParallel(t *testing.T) {
	var path BezPath
	for i := range 8 {
		x := float64(30 * i)
		path = append(path, polyline(Pt(x, 0), Pt(x+10, 10), Pt(x+20, 0))...)
		path = append(path, circlePath(Pt(x+10, 40), 8)...)
	}
	samples := []OffsetSample{{0.1, 1}, {0.6, 3}, {0.9, 2}}
	seq := Stroke(path, samples, DefaultOptions)
	par := Stroke(path, samples, DefaultOptions.WithParallel(true))
	diff(t, seq, par)
	diff(t, 24, par.SubpathCount())
}

func TestStrokeScale(t *testing.T) {
	path := polyline(Pt(0, 0), Pt(10, 0))
	samples := []OffsetSample{{0.5, 1}}
	opts := DefaultOptions.WithCaps(ButtCap)
	diff(t, Rect{0, -1, 10, 1}, boundingBox(t, Stroke(path, samples, opts)), approx(1e-9))
	diff(t, Rect{0, -3, 10, 3}, boundingBox(t, Stroke(path, samples, opts.WithScale(3))), approx(1e-9))
}

func TestStrokeNegativeWidth(t *testing.T) {
	// Negative widths swap the sides of the outline, which covers the same
	// area.
	path := polyline(Pt(0, 0), Pt(10, 0), Pt(20, 5))
	pos := Stroke(path, []OffsetSample{{0.5, 2}}, DefaultOptions)
	neg := Stroke(path, []OffsetSample{{0.5, -2}}, DefaultOptions)
	assertValidOutline(t, neg)
	diff(t, math.Abs(pos.SignedArea()), math.Abs(neg.SignedArea()), approx(1e-3))
}

func TestStrokeLegacyPositions(t *testing.T) {
	// Segments of equal length make time and arc length proportional.
	path := polyline(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	cur := Stroke(path, []OffsetSample{{0.25, 2}, {0.75, 4}}, DefaultOptions.WithInterpolator(Linear))
	legacy := Stroke(path, []OffsetSample{{0.5, 2}, {1.5, 4}}, DefaultOptions.WithInterpolator(Linear).WithFormatVersion("1.2"))
	diff(t, boundingBox(t, cur), boundingBox(t, legacy), approx(1e-5))
	diff(t, cur.SignedArea(), legacy.SignedArea(), approx(1e-4))
}

func TestStrokeSortPoints(t *testing.T) {
	path := polyline(Pt(0, 0), Pt(100, 0))
	samples := []OffsetSample{{0.8, 2}, {0.2, 6}}
	opts := DefaultOptions.WithInterpolator(Linear).WithCaps(ButtCap)

	sorted := Stroke(path, samples, opts)
	// Sorted, the profile runs 6, 6, 2, 2.
	diff(t, Rect{0, -6, 100, 6}, boundingBox(t, sorted), approx(1e-6))

	// In edit order the profile runs 2, 2, 6, 6, doubling back in between,
	// and is clipped where it first reaches the end.
	unsorted := Stroke(path, samples, opts.WithSortPoints(false))
	assertValidOutline(t, unsorted)
	if bb := boundingBox(t, unsorted); bb.Y1 > 6+1e-6 {
		t.Errorf("got bounding box %v", bb)
	}
}

func TestStrokeAllJoinsAndCaps(t *testing.T) {
	// A zigzag with sharp and shallow corners on both sides.
	path := polyline(Pt(0, 0), Pt(20, 15), Pt(25, -10), Pt(50, -8), Pt(40, 20))
	samples := []OffsetSample{{0, 1}, {0.3, 4}, {0.7, 2}, {1, 3}}
	for _, join := range allJoins {
		for _, cap := range []CapType{ZeroWidthCap, RoundCap, SquareCap, ButtCap, PeakCap} {
			for _, ip := range allInterpolators {
				opts := DefaultOptions.WithJoin(join).WithCaps(cap).WithInterpolator(ip)
				got := Stroke(path, samples, opts)
				if sps := got.subpaths(); len(sps) != 1 || !sps[0].closed {
					t.Errorf("%s/%s/%s: got %d subpaths, want one closed outline", join, cap, ip, len(sps))
					continue
				}
				for i, el := range got {
					for _, pt := range []Point{el.P0, el.P1, el.P2} {
						if pt.IsNaN() || pt.IsInf() {
							t.Fatalf("%s/%s/%s: element %d (%s) is invalid", join, cap, ip, i, el)
						}
					}
				}
				// Widths stay below 6 and miters below 4 times that.
				bounds := Rect{-30, -40, 80, 50}
				bb := boundingBox(t, got)
				if !bounds.Contains(Pt(bb.X0, bb.Y0)) || !bounds.Contains(Pt(bb.X1, bb.Y1)) {
					t.Errorf("%s/%s/%s: outline %v strays far from the path", join, cap, ip, bb)
				}
			}
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	diff(t, Options{
		Scale:         1,
		SortPoints:    true,
		Interpolator:  CentripetalCatmullRom,
		Beta:          0.2,
		Join:          RoundJoin,
		MiterLimit:    4,
		StartCap:      ZeroWidthCap,
		EndCap:        ZeroWidthCap,
		FormatVersion: "1.3",
		Tolerance:     DefaultTolerance,
	}, DefaultOptions)

	opts := DefaultOptions.
		WithScale(2).
		WithSortPoints(false).
		WithInterpolator(SpiroInterpolator).
		WithBeta(0.5).
		WithJoin(ExtrapolatedArcJoin).
		WithMiterLimit(10).
		WithStartCap(RoundCap).
		WithEndCap(PeakCap).
		WithFormatVersion("1.0").
		WithTolerance(0.1).
		WithParallel(true)
	diff(t, Options{
		Scale:         2,
		SortPoints:    false,
		Interpolator:  SpiroInterpolator,
		Beta:          0.5,
		Join:          ExtrapolatedArcJoin,
		MiterLimit:    10,
		StartCap:      RoundCap,
		EndCap:        PeakCap,
		FormatVersion: "1.0",
		Tolerance:     0.1,
		Parallel:      true,
	}, opts)
	// The With methods work on copies.
	diff(t, 1.0, DefaultOptions.Scale)

	diff(t, DefaultTolerance, Options{}.tolerance())
	diff(t, SquareCap, DefaultOptions.WithCaps(SquareCap).EndCap)
}
