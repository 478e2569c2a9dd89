package powerstroke

import (
	"fmt"
	"math"
)

// spiroSeg is an Euler spiral segment between two points. Over the
// normalized arc length u ∈ [-1/2, 1/2] its tangent angle, relative to the
// chord, is
//
//	ψ(u) = a + k0 u + k1 u²/2
type spiroSeg struct {
	p0, p1 Point
	chord  float64 // chord angle
	a      float64
	k0, k1 float64
	// arclen is the arc length of the segment.
	arclen float64
}

// newSpiroSeg finds the Euler spiral from p0 to p1 whose tangent angles
// relative to the chord are th0 at the start and th1 at the end.
func newSpiroSeg(p0, p1 Point, th0, th1 float64) (spiroSeg, error) {
	d := p1.Sub(p0)
	L := d.Hypot()
	if L == 0 {
		return spiroSeg{}, fmt.Errorf("zero length chord: %w", errSpiroSolve)
	}
	seg := spiroSeg{p0: p0, p1: p1, chord: d.Angle(), k0: th1 - th0}
	avg := 0.5 * (th0 + th1)
	// With the end angles fixed, k1 = 8 (avg - a). The remaining condition is
	// that the end point lies on the chord.
	residual := func(a float64) float64 {
		seg.a, seg.k1 = a, 8*(avg-a)
		return seg.integral(-0.5, 0.5).Angle()
	}
	a := -0.5 * avg
	for i := 0; ; i++ {
		r := residual(a)
		if math.Abs(r) < 1e-12 {
			break
		}
		if i == 32 || math.IsNaN(r) {
			return spiroSeg{}, fmt.Errorf("chord condition: %w", errSpiroSolve)
		}
		const h = 1e-7
		dr := (residual(a+h) - r) / h
		if dr == 0 {
			return spiroSeg{}, fmt.Errorf("flat chord condition: %w", errSpiroSolve)
		}
		a -= r / dr
	}
	seg.a, seg.k1 = a, 8*(avg-a)
	chordFrac := seg.integral(-0.5, 0.5).Hypot()
	if !(chordFrac > 1e-9) {
		return spiroSeg{}, fmt.Errorf("spiral closes on itself: %w", errSpiroSolve)
	}
	seg.arclen = L / chordFrac
	return seg, nil
}

func (s spiroSeg) psi(u float64) float64 {
	return s.a + s.k0*u + 0.5*s.k1*u*u
}

// integral integrates the unit tangent, relative to the chord, over
// [u0, u1].
func (s spiroSeg) integral(u0, u1 float64) Vec2 {
	// Split so that a single quadrature covers little turning.
	turn := math.Abs(s.k0) + math.Abs(s.k1)
	n := max(1, int(math.Ceil(turn*(u1-u0)/2)))
	var sum Vec2
	step := (u1 - u0) / float64(n)
	for i := range n {
		lo := u0 + float64(i)*step
		sum = sum.Add(integrate(func(u float64) Vec2 {
			return VecFromAngle(s.psi(u))
		}, lo, lo+step))
	}
	return sum
}

// startCurvature and endCurvature return the curvature at the ends.
func (s spiroSeg) startCurvature() float64 { return (s.k0 - 0.5*s.k1) / s.arclen }
func (s spiroSeg) endCurvature() float64   { return (s.k0 + 0.5*s.k1) / s.arclen }

func (s spiroSeg) eval(t float64) Point {
	v := rotateVec(s.integral(-0.5, t-0.5), s.chord)
	return s.p0.Translate(v.Mul(s.arclen))
}

func (s spiroSeg) deriv(t float64) Vec2 {
	return VecFromAngle(s.chord + s.psi(t-0.5)).Mul(s.arclen)
}

// cubics approximates the segment with cubics, ending exactly at its end
// points.
func (s spiroSeg) cubics(tolerance float64) []CubicBez {
	cs := fitHermite(s.eval, s.deriv, 0, 1, tolerance)
	cs[0].P0 = s.p0
	cs[len(cs)-1].P3 = s.p1
	return cs
}

// solveSpiro fits a curvature continuous spline of Euler spirals through
// pts, with zero curvature at both ends.
func solveSpiro(pts []Point) ([]spiroSeg, error) {
	n := len(pts) - 1
	if n < 1 {
		return nil, fmt.Errorf("need two points: %w", errSpiroSolve)
	}
	chords := make([]float64, n)
	for i := range n {
		d := pts[i+1].Sub(pts[i])
		if d.Hypot2() == 0 {
			return nil, fmt.Errorf("coincident points: %w", errSpiroSolve)
		}
		chords[i] = d.Angle()
	}
	if n == 1 {
		seg, err := newSpiroSeg(pts[0], pts[1], 0, 0)
		if err != nil {
			return nil, err
		}
		return []spiroSeg{seg}, nil
	}

	// Unknowns are the absolute tangent angles at every point.
	theta := make([]float64, n+1)
	theta[0] = chords[0]
	theta[n] = chords[n-1]
	for i := 1; i < n; i++ {
		theta[i] = chords[i-1] + 0.5*math.Remainder(chords[i]-chords[i-1], 2*math.Pi)
	}

	build := func(theta []float64) ([]spiroSeg, error) {
		segs := make([]spiroSeg, n)
		for i := range n {
			th0 := math.Remainder(theta[i]-chords[i], 2*math.Pi)
			th1 := math.Remainder(theta[i+1]-chords[i], 2*math.Pi)
			seg, err := newSpiroSeg(pts[i], pts[i+1], th0, th1)
			if err != nil {
				return nil, err
			}
			segs[i] = seg
		}
		return segs, nil
	}
	// Curvature mismatches, made dimensionless by the adjacent arc lengths.
	residuals := func(theta []float64) ([]float64, error) {
		segs, err := build(theta)
		if err != nil {
			return nil, err
		}
		r := make([]float64, n+1)
		r[0] = segs[0].startCurvature() * segs[0].arclen
		for i := 1; i < n; i++ {
			scale := 0.5 * (segs[i-1].arclen + segs[i].arclen)
			r[i] = (segs[i-1].endCurvature() - segs[i].startCurvature()) * scale
		}
		r[n] = segs[n-1].endCurvature() * segs[n-1].arclen
		return r, nil
	}

	const maxIter = 40
	const h = 1e-7
	jac := make([][]float64, n+1)
	for i := range jac {
		jac[i] = make([]float64, n+1)
	}
	for range maxIter {
		r, err := residuals(theta)
		if err != nil {
			return nil, err
		}
		var norm float64
		for _, v := range r {
			norm = max(norm, math.Abs(v))
		}
		if norm < 1e-10 {
			return build(theta)
		}
		for j := range theta {
			old := theta[j]
			theta[j] = old + h
			rh, err := residuals(theta)
			theta[j] = old
			if err != nil {
				return nil, err
			}
			for i := range rh {
				jac[i][j] = (rh[i] - r[i]) / h
			}
		}
		delta, ok := solveLinear(jac, r)
		if !ok {
			return nil, fmt.Errorf("singular jacobian: %w", errSpiroSolve)
		}
		for j := range theta {
			// Limit the step to keep the angles in the basin of the solution.
			theta[j] -= min(max(delta[j], -0.5), 0.5)
		}
	}
	return nil, fmt.Errorf("no convergence after %d iterations: %w", maxIter, errSpiroSolve)
}

// solveLinear solves a x = b by Gaussian elimination with partial pivoting.
// a and b are left unchanged.
func solveLinear(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	m := make([][]float64, n)
	for i := range m {
		m[i] = append(append(make([]float64, 0, n+1), a[i]...), b[i])
	}
	for col := range n {
		piv := col
		for row := col + 1; row < n; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[piv][col]) {
				piv = row
			}
		}
		if math.Abs(m[piv][col]) < 1e-15 {
			return nil, false
		}
		m[col], m[piv] = m[piv], m[col]
		for row := col + 1; row < n; row++ {
			f := m[row][col] / m[col][col]
			for k := col; k <= n; k++ {
				m[row][k] -= f * m[col][k]
			}
		}
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n]
		for k := i + 1; k < n; k++ {
			sum -= m[i][k] * x[k]
		}
		x[i] = sum / m[i][i]
	}
	return x, true
}

// interpolateSpiro fits a spiro spline through pts and converts it to
// cubics.
func interpolateSpiro(pts []Point, tolerance float64) ([]CubicBez, error) {
	segs, err := solveSpiro(pts)
	if err != nil {
		return nil, err
	}
	var out []CubicBez
	for _, seg := range segs {
		out = append(out, seg.cubics(tolerance)...)
	}
	return out, nil
}
