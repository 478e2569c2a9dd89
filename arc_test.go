package powerstroke

import (
	"math"
	"testing"
)

func TestNewArcFromSVG(t *testing.T) {
	tests := []struct {
		name   string
		params ArcParams
		sweep  float64
		mid    Point
	}{
		{"counter-clockwise", ArcParams{Radii: Vec(1, 1), Sweep: true}, math.Pi, Pt(0, 1)},
		{"clockwise", ArcParams{Radii: Vec(1, 1)}, -math.Pi, Pt(0, -1)},
		// Radii too small to span the points are scaled up.
		{"scaled radii", ArcParams{Radii: Vec(0.5, 0.5), Sweep: true}, math.Pi, Pt(0, 1)},
	}
	from, to := Pt(1, 0), Pt(-1, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arc, ok := NewArcFromSVG(from, to, tt.params)
			if !ok {
				t.Fatal("expected an arc")
			}
			assertNear(t, arc.Center, Pt(0, 0), 1e-9)
			diff(t, tt.sweep, arc.SweepAngle, approx(1e-9))
			assertNear(t, arc.Start(), from, 1e-9)
			assertNear(t, arc.End(), to, 1e-9)

			cs := arc.Cubics(1e-4)
			assertNear(t, cs[0].P0, from, 1e-9)
			assertNear(t, cs[len(cs)-1].P3, to, 1e-9)
			pw := Piecewise{Segs: cs}
			assertNear(t, pw.Eval(float64(len(cs))/2), tt.mid, 1e-3)
		})
	}

	if _, ok := NewArcFromSVG(from, to, ArcParams{Radii: Vec(0, 1)}); ok {
		t.Error("zero radius should not be an arc")
	}
	if _, ok := NewArcFromSVG(from, from, ArcParams{Radii: Vec(1, 1)}); ok {
		t.Error("coincident end points should not be an arc")
	}
}

func TestArcCubicsAccuracy(t *testing.T) {
	arc := Arc{Center: Pt(2, 3), Radii: Vec(10, 5), StartAngle: 0.3, SweepAngle: 2, XRotation: 0.5}
	for _, tol := range []float64{1e-1, 1e-3, 1e-5} {
		for _, c := range arc.Cubics(tol) {
			for i := range 9 {
				p := c.Eval(float64(i) / 8)
				// Map back to the unit circle.
				local := rotateVec(p.Sub(arc.Center), -arc.XRotation)
				r := math.Hypot(local.X/arc.Radii.X, local.Y/arc.Radii.Y)
				if math.Abs(r-1)*arc.Radii.X > 2*tol {
					t.Errorf("tolerance %g: point %s off by %g", tol, p, math.Abs(r-1)*arc.Radii.X)
				}
			}
		}
	}
}
