package powerstroke

import "math"

// Circle is a circle with a center and a radius.
type Circle struct {
	Center Point
	Radius float64
}

// osculatingCircle returns the circle of curvature of c at t, or false when
// the curvature is too small to yield a finite circle.
func osculatingCircle(c CubicBez, t float64) (Circle, bool) {
	const minCurvature = 1e-9
	k := c.Curvature(t)
	if math.IsNaN(k) || math.Abs(k) < minCurvature {
		return Circle{}, false
	}
	n := c.Deriv(t).Normalize().Rot90()
	return Circle{
		Center: c.Eval(t).Translate(n.Mul(1 / k)),
		Radius: 1 / math.Abs(k),
	}, true
}

// IntersectCircle returns the intersections of two circles. It returns zero
// points for disjoint, nested or concentric circles.
func (c Circle) IntersectCircle(o Circle) ([2]Point, int) {
	r0, r1 := math.Abs(c.Radius), math.Abs(o.Radius)
	d := o.Center.Sub(c.Center)
	R := d.Hypot()
	if R == 0 || R > r0+r1 || R < math.Abs(r0-r1) {
		return [2]Point{}, 0
	}
	// Distance from c.Center along d to the radical line.
	a := (r0*r0 - r1*r1 + R*R) / (2 * R)
	h2 := r0*r0 - a*a
	mid := c.Center.Translate(d.Mul(a / R))
	if h2 <= 0 {
		return [2]Point{mid}, 1
	}
	off := d.Rot90().Mul(math.Sqrt(h2) / R)
	return [2]Point{mid.Translate(off), mid.Translate(off.Negate())}, 2
}

// IntersectLine returns the intersections of the circle with the infinite
// line through l.
func (c Circle) IntersectLine(l Line) ([2]Point, int) {
	d := l.P1.Sub(l.P0)
	f := l.P0.Sub(c.Center)
	a := d.Dot(d)
	if a == 0 {
		return [2]Point{}, 0
	}
	b := 2 * f.Dot(d)
	cc := f.Dot(f) - c.Radius*c.Radius
	roots, n := SolveQuadratic(cc, b, a)
	var out [2]Point
	for i, t := range roots[:n] {
		out[i] = l.Eval(t)
	}
	return out, n
}
