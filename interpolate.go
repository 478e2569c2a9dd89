package powerstroke

import (
	"log/slog"
	"math"
)

// Interpolator selects how the width profile passes through the samples.
type Interpolator int

const (
	// Straight lines between samples.
	Linear Interpolator = iota
	// A natural C2 cubic spline, parameterized by chord length.
	CubicBezierFit
	// Cubics with horizontal handles whose length is controlled by
	// [Options.Beta].
	CubicBezierJohan
	// Cubics with handles along the direction between neighbouring samples,
	// their length controlled by [Options.Beta].
	CubicBezierSmooth
	// A centripetal Catmull-Rom spline.
	CentripetalCatmullRom
	// A spline of Euler spiral segments with continuous curvature.
	SpiroInterpolator
)

var interpolatorNames = []string{
	Linear:                "Linear",
	CubicBezierFit:        "CubicBezierFit",
	CubicBezierJohan:      "CubicBezierJohan",
	CubicBezierSmooth:     "CubicBezierSmooth",
	CentripetalCatmullRom: "CentripetalCatmullRom",
	SpiroInterpolator:     "SpiroInterpolator",
}

func (ip Interpolator) String() string {
	return enumString(interpolatorNames, "Interpolator", ip)
}

// ParseInterpolator parses the attribute spelling of an interpolator, as
// returned by [Interpolator.String].
func ParseInterpolator(s string) (Interpolator, error) {
	return parseEnum[Interpolator](interpolatorNames, "interpolator", s)
}

func (ip Interpolator) MarshalText() ([]byte, error) {
	return []byte(ip.String()), nil
}

func (ip *Interpolator) UnmarshalText(b []byte) error {
	v, err := ParseInterpolator(string(b))
	if err != nil {
		return err
	}
	*ip = v
	return nil
}

// Interpolate returns cubics that pass through every point, in order. The
// points are expected to be ordered along x, as width samples are, but
// nothing breaks if they are not. beta only affects [CubicBezierJohan] and
// [CubicBezierSmooth].
//
// Fewer than two points yield no cubics.
func (ip Interpolator) Interpolate(pts []Point, beta float64) []CubicBez {
	if len(pts) < 2 {
		return nil
	}
	if len(pts) == 2 {
		return []CubicBez{Line{pts[0], pts[1]}.Cubic()}
	}
	switch ip {
	case Linear:
		return interpolateLinear(pts)
	case CubicBezierFit:
		return interpolateNaturalSpline(pts)
	case CubicBezierJohan:
		return interpolateJohan(pts, beta)
	case CubicBezierSmooth:
		return interpolateSmooth(pts, beta)
	case SpiroInterpolator:
		cs, err := interpolateSpiro(pts, DefaultTolerance*DefaultTolerance)
		if err != nil {
			Logger().Debug("spiro interpolation failed, using catmull-rom",
				slog.Int("points", len(pts)), slog.Any("err", err))
			return interpolateCatmullRom(pts)
		}
		return cs
	default:
		return interpolateCatmullRom(pts)
	}
}

func interpolateLinear(pts []Point) []CubicBez {
	out := make([]CubicBez, len(pts)-1)
	for i := range out {
		out[i] = Line{pts[i], pts[i+1]}.Cubic()
	}
	return out
}

// interpolateNaturalSpline fits a natural cubic spline through pts, using
// the chord lengths as knot intervals, and converts every interval to a
// cubic Bézier.
func interpolateNaturalSpline(pts []Point) []CubicBez {
	n := len(pts) - 1
	h := make([]float64, n)
	slope := make([]Vec2, n)
	for i := range n {
		d := pts[i+1].Sub(pts[i])
		h[i] = max(d.Hypot(), 1e-12)
		slope[i] = d.Div(h[i])
	}

	// Second derivatives at the knots, zero at both ends. The tridiagonal
	// system is solved with the Thomas algorithm.
	m := make([]Vec2, n+1)
	if n > 1 {
		diag := make([]float64, n+1)
		rhs := make([]Vec2, n+1)
		for i := 1; i < n; i++ {
			diag[i] = 2 * (h[i-1] + h[i])
			rhs[i] = slope[i].Sub(slope[i-1]).Mul(6)
		}
		for i := 2; i < n; i++ {
			w := h[i-1] / diag[i-1]
			diag[i] -= w * h[i-1]
			rhs[i] = rhs[i].Sub(rhs[i-1].Mul(w))
		}
		m[n-1] = rhs[n-1].Div(diag[n-1])
		for i := n - 2; i >= 1; i-- {
			m[i] = rhs[i].Sub(m[i+1].Mul(h[i])).Div(diag[i])
		}
	}

	out := make([]CubicBez, n)
	for i := range n {
		d0 := slope[i].Sub(m[i].Mul(2).Add(m[i+1]).Mul(h[i] / 6))
		d1 := slope[i].Add(m[i].Add(m[i+1].Mul(2)).Mul(h[i] / 6))
		out[i] = CubicBez{
			pts[i],
			pts[i].Translate(d0.Mul(h[i] / 3)),
			pts[i+1].Translate(d1.Mul(-h[i] / 3)),
			pts[i+1],
		}
	}
	return out
}

func interpolateJohan(pts []Point, beta float64) []CubicBez {
	out := make([]CubicBez, len(pts)-1)
	for i := range out {
		dx := beta * (pts[i+1].X - pts[i].X)
		out[i] = CubicBez{
			pts[i],
			pts[i].Translate(Vec(dx, 0)),
			pts[i+1].Translate(Vec(-dx, 0)),
			pts[i+1],
		}
	}
	return out
}

func interpolateSmooth(pts []Point, beta float64) []CubicBez {
	// Direction of the handles at every point, scaled to unit x-extent.
	dirs := make([]Vec2, len(pts))
	for i := range pts {
		dirs[i] = Vec(1, 0)
		if i == 0 || i == len(pts)-1 {
			continue
		}
		d := pts[i+1].Sub(pts[i-1])
		if d.X > 0 {
			dirs[i] = d.Div(d.X)
		}
	}
	out := make([]CubicBez, len(pts)-1)
	for i := range out {
		dx := beta * (pts[i+1].X - pts[i].X)
		out[i] = CubicBez{
			pts[i],
			pts[i].Translate(dirs[i].Mul(dx)),
			pts[i+1].Translate(dirs[i+1].Mul(-dx)),
			pts[i+1],
		}
	}
	return out
}

// interpolateCatmullRom builds a centripetal Catmull-Rom spline. The end
// points are extended by reflecting their neighbours.
func interpolateCatmullRom(pts []Point) []CubicBez {
	const alpha = 0.5
	const epsilon = 1e-12
	n := len(pts)
	at := func(i int) Point {
		switch {
		case i < 0:
			return pts[0].Translate(pts[0].Sub(pts[1]))
		case i >= n:
			return pts[n-1].Translate(pts[n-1].Sub(pts[n-2]))
		default:
			return pts[i]
		}
	}
	dist := func(a, b Point) float64 {
		return math.Pow(a.DistanceSquared(b), alpha/2)
	}

	out := make([]CubicBez, n-1)
	for i := range out {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		d1, d2, d3 := dist(p0, p1), dist(p1, p2), dist(p2, p3)
		if d2 < epsilon {
			out[i] = Line{p1, p2}.Cubic()
			continue
		}
		b1, b2 := p1, p2
		if d1 >= epsilon {
			v := Vec2(p2).Mul(d1 * d1).
				Sub(Vec2(p0).Mul(d2 * d2)).
				Add(Vec2(p1).Mul(2*d1*d1 + 3*d1*d2 + d2*d2))
			b1 = Point(v.Div(3 * d1 * (d1 + d2)))
		}
		if d3 >= epsilon {
			v := Vec2(p1).Mul(d3 * d3).
				Sub(Vec2(p3).Mul(d2 * d2)).
				Add(Vec2(p2).Mul(2*d3*d3 + 3*d3*d2 + d2*d2))
			b2 = Point(v.Div(3 * d3 * (d3 + d2)))
		}
		out[i] = CubicBez{p1, b1, b2, p2}
	}
	return out
}
