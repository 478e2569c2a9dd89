package powerstroke

import (
	"errors"
	"math"
	"testing"
)

func TestNewEllipseFromConic(t *testing.T) {
	// x²/4 + y² = 1
	e, err := NewEllipseFromConic(0.25, 0, 1, 0, 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, e.Center, Pt(0, 0), 1e-12)
	for i := range 8 {
		p := e.Eval(float64(i) * math.Pi / 4)
		if v := p.X*p.X/4 + p.Y*p.Y; math.Abs(v-1) > 1e-12 {
			t.Errorf("point %s is not on the ellipse", p)
		}
	}

	// (x-1)² + (y+2)² = 9, rotated conic terms vanish.
	e, err = NewEllipseFromConic(1, 0, 1, -2, 4, -4)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, e.Center, Pt(1, -2), 1e-12)
	diff(t, Vec(3, 3), e.Radii, approx(1e-12))

	for _, conic := range [][6]float64{
		{1, 0, -1, 0, 0, -1}, // hyperbola
		{1, 0, 1, 0, 0, 1},   // imaginary
		{0, 0, 1, 1, 0, 0},   // parabola
	} {
		_, err := NewEllipseFromConic(conic[0], conic[1], conic[2], conic[3], conic[4], conic[5])
		if !errors.Is(err, errEllipseFit) {
			t.Errorf("%v: got error %v, want %v", conic, err, errEllipseFit)
		}
	}
}

func TestFitEllipse(t *testing.T) {
	tests := []struct {
		name    string
		p, q, o Point
		onCurve func(Point) float64
	}{
		{
			"circle",
			Pt(1, 0), Pt(0, 1), Pt(1, 1),
			func(p Point) float64 { return p.X*p.X + p.Y*p.Y - 1 },
		},
		{
			"ellipse",
			Pt(2, 0), Pt(0, 1), Pt(2, 1),
			func(p Point) float64 { return p.X*p.X/4 + p.Y*p.Y - 1 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := fitEllipse(tt.p, tt.q, tt.o)
			if err != nil {
				t.Fatal(err)
			}
			arc := e.arcBetween(tt.p, tt.q)
			assertNear(t, arc.Start(), tt.p, 1e-9)
			assertNear(t, arc.End(), tt.q, 1e-9)
			if math.Abs(arc.SweepAngle) >= math.Pi {
				t.Errorf("got sweep %g, want the shorter arc", arc.SweepAngle)
			}
			for _, c := range arc.Cubics(1e-6) {
				for _, ts := range []float64{0, 0.5, 1} {
					if v := tt.onCurve(c.Eval(ts)); math.Abs(v) > 1e-4 {
						t.Errorf("point %s is off the curve by %g", c.Eval(ts), v)
					}
				}
			}
		})
	}

	if _, err := fitEllipse(Pt(0, 0), Pt(2, 0), Pt(1, 0)); !errors.Is(err, errEllipseFit) {
		t.Errorf("collinear points: got %v, want %v", err, errEllipseFit)
	}
}
