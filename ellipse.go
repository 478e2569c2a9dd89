package powerstroke

import (
	"errors"
	"math"
)

var errEllipseFit = errors.New("conic is not a real ellipse")

// Ellipse is an ellipse with a center, two radii and the rotation of the
// first radius from the x axis.
type Ellipse struct {
	Center   Point
	Radii    Vec2
	Rotation float64
}

// NewEllipseFromConic returns the ellipse described by the implicit conic
//
//	A x² + B xy + C y² + D x + E y + F = 0
//
// It fails for parabolas, hyperbolas, and imaginary or degenerate ellipses.
func NewEllipseFromConic(A, B, C, D, E, F float64) (Ellipse, error) {
	disc := B*B - 4*A*C
	if !(disc < 0) {
		return Ellipse{}, errEllipseFit
	}
	cx := (2*C*D - B*E) / disc
	cy := (2*A*E - B*D) / disc
	// Value of the conic at the center.
	f0 := F + 0.5*(D*cx+E*cy)

	// Eigenvalues of the quadratic form; lmax belongs to the axis at angle th.
	mean := 0.5 * (A + C)
	dev := math.Hypot(0.5*(A-C), 0.5*B)
	lmax := mean + dev
	lmin := mean - dev
	th := 0.5 * math.Atan2(B, A-C)

	r0 := math.Sqrt(-f0 / lmax)
	r1 := math.Sqrt(-f0 / lmin)
	if !(r0 > 0) || !(r1 > 0) || math.IsInf(r0, 0) || math.IsInf(r1, 0) {
		return Ellipse{}, errEllipseFit
	}
	return Ellipse{
		Center:   Pt(cx, cy),
		Radii:    Vec(r0, r1),
		Rotation: th,
	}, nil
}

// affine returns the transform mapping the unit circle onto the ellipse.
func (e Ellipse) affine() Affine {
	return Translate(Vec2(e.Center)).
		Mul(Rotate(e.Rotation)).
		Mul(Scale(e.Radii.X, e.Radii.Y))
}

// Eval returns the point at parametric angle th.
func (e Ellipse) Eval(th float64) Point {
	return e.Center.Translate(sampleEllipse(e.Radii, e.Rotation, th))
}

// angleOf returns the parametric angle of the point of the ellipse closest
// in direction to pt, as seen from the center in the ellipse's own frame.
func (e Ellipse) angleOf(pt Point) float64 {
	return Vec2(pt.Transform(e.affine().Invert())).Angle()
}

// arcBetween returns the shorter arc of the ellipse from p to q. Both points
// are expected to lie on the ellipse.
func (e Ellipse) arcBetween(p, q Point) Arc {
	a0 := e.angleOf(p)
	sweep := math.Remainder(e.angleOf(q)-a0, 2*math.Pi)
	return Arc{
		Center:     e.Center,
		Radii:      e.Radii,
		StartAngle: a0,
		SweepAngle: sweep,
		XRotation:  e.Rotation,
	}
}

// fitEllipse finds the ellipse through p and q that is tangent to the lines
// p-o and q-o at those points. The free parameter of that family is chosen
// so that the result is a circle whenever o is equidistant from p and q.
func fitEllipse(p, q, o Point) (Ellipse, error) {
	pv := p.Sub(o)
	qv := q.Sub(o)
	k := 4 * pv.Dot(qv) / (pv.Hypot2() + qv.Hypot2())
	cross := pv.Y*qv.X - pv.X*qv.Y
	if cross == 0 {
		return Ellipse{}, errEllipseFit
	}

	// (u, v) are the coordinates of a point in the frame spanned by pv and
	// qv with origin o: u = a x + b y + c, v = d x + e y + f.
	a := -qv.Y / cross
	b := qv.X / cross
	c := (o.X*qv.Y - o.Y*qv.X) / cross
	d := pv.Y / cross
	e := -pv.X / cross
	f := (-o.X*pv.Y + o.Y*pv.X) / cross

	// Expand u² + v² + k u v - 2u - 2v + 1 = 0 in x and y.
	A := a*d*k + a*a + d*d
	B := a*e*k + b*d*k + 2*a*b + 2*d*e
	C := b*e*k + b*b + e*e
	D := c*d*k + a*f*k + 2*a*c + 2*d*f - 2*d - 2*a
	E := c*e*k + b*f*k + 2*b*c + 2*e*f - 2*e - 2*b
	F := c*f*k + c*c - 2*c + f*f - 2*f + 1
	return NewEllipseFromConic(A, B, C, D, E, F)
}
