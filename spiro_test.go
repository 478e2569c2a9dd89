package powerstroke

import (
	"errors"
	"math"
	"testing"
)

func TestSpiroSegStraight(t *testing.T) {
	seg, err := newSpiroSeg(Pt(1, 1), Pt(4, 5), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 5.0, seg.arclen, approx(1e-12))
	diff(t, 0.0, seg.startCurvature(), approx(1e-12))
	assertNear(t, seg.eval(0.5), Pt(2.5, 3), 1e-12)
}

func TestSpiroSegArc(t *testing.T) {
	// Symmetric end angles give a circular arc.
	const th = 0.3
	seg, err := newSpiroSeg(Pt(0, 0), Pt(2, 0), th, -th)
	if err != nil {
		t.Fatal(err)
	}
	wantLen := 2 * th / math.Sin(th)
	diff(t, wantLen, seg.arclen, approx(1e-9))
	k := -2 * th / wantLen
	diff(t, k, seg.startCurvature(), approx(1e-9))
	diff(t, k, seg.endCurvature(), approx(1e-9))

	assertNear(t, seg.eval(0), Pt(0, 0), 1e-12)
	assertNear(t, seg.eval(1), Pt(2, 0), 1e-9)
	diff(t, th, seg.deriv(0).Angle(), approx(1e-12))
	diff(t, -th, seg.deriv(1).Angle(), approx(1e-12))

	// The apex of the arc.
	r := 1 / math.Abs(k)
	assertNear(t, seg.eval(0.5), Pt(1, r-r*math.Cos(th)), 1e-9)
}

func TestSpiroSegCubics(t *testing.T) {
	seg, err := newSpiroSeg(Pt(0, 0), Pt(3, 1), 0.4, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	const tol = 1e-4
	cs := seg.cubics(tol)
	diff(t, Pt(0, 0), cs[0].P0)
	diff(t, Pt(3, 1), cs[len(cs)-1].P3)
	for i := 0; i <= 64; i++ {
		pt := seg.eval(float64(i) / 64)
		best := math.Inf(1)
		for _, c := range cs {
			d, _ := c.Nearest(pt, 1e-9)
			best = min(best, d)
		}
		if math.Sqrt(best) > 2*tol {
			t.Errorf("spiral point %s is %g away from the cubics", pt, math.Sqrt(best))
		}
	}
}

func TestSolveSpiroCurvatureContinuity(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0.5), Pt(2, 0), Pt(3.5, 0.25)}
	segs, err := solveSpiro(pts)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != len(pts)-1 {
		t.Fatalf("got %d segments, want %d", len(segs), len(pts)-1)
	}
	for i, seg := range segs {
		assertNear(t, seg.eval(0), pts[i], 1e-12)
		assertNear(t, seg.eval(1), pts[i+1], 1e-9)
	}
	for i := 1; i < len(segs); i++ {
		diff(t, segs[i-1].deriv(1).Normalize(), segs[i].deriv(0).Normalize(), approx(1e-9))
		diff(t, segs[i-1].endCurvature(), segs[i].startCurvature(), approx(1e-6))
	}
	diff(t, 0.0, segs[0].startCurvature(), approx(1e-6))
	diff(t, 0.0, segs[len(segs)-1].endCurvature(), approx(1e-6))
}

func TestSolveSpiroErrors(t *testing.T) {
	for _, pts := range [][]Point{
		nil,
		{Pt(1, 1)},
		{Pt(0, 0), Pt(1, 1), Pt(1, 1)},
	} {
		if _, err := solveSpiro(pts); !errors.Is(err, errSpiroSolve) {
			t.Errorf("solveSpiro(%v): got error %v, want %v", pts, err, errSpiroSolve)
		}
	}
	if _, err := newSpiroSeg(Pt(1, 1), Pt(1, 1), 0, 0); !errors.Is(err, errSpiroSolve) {
		t.Errorf("got error %v for a zero length chord", err)
	}
}

func TestSolveLinear(t *testing.T) {
	a := [][]float64{
		{0, 2, 1},
		{1, 1, 0},
		{2, 0, 3},
	}
	b := []float64{7, 3, 11}
	x, ok := solveLinear(a, b)
	if !ok {
		t.Fatal("system reported as singular")
	}
	diff(t, []float64{1, 2, 3}, x, approx(1e-12))
	// The inputs are left alone.
	diff(t, []float64{0, 2, 1}, a[0])
	diff(t, []float64{7, 3, 11}, b)

	if _, ok := solveLinear([][]float64{{1, 2}, {2, 4}}, []float64{1, 2}); ok {
		t.Error("singular system was solved")
	}
}
