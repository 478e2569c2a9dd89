package powerstroke

// maxFitDepth bounds the recursion of fitHermite. At this depth every cubic
// covers 1/4096 of the range, which is beyond what any real stroke needs.
const maxFitDepth = 12

// fitHermite approximates the parametric curve f over [t0, t1] with cubic
// Béziers. Every cubic is the Hermite interpolant of f and its derivative df
// at the ends of its range; ranges are halved until the interpolant stays
// within tolerance of f at the sample points.
//
// The result is G1 wherever df is continuous, and always contains at least
// one cubic.
func fitHermite(f func(float64) Point, df func(float64) Vec2, t0, t1, tolerance float64) []CubicBez {
	var out []CubicBez
	fitHermiteRec(f, df, t0, t1, f(t0), f(t1), tolerance, 0, &out)
	return out
}

func fitHermiteRec(
	f func(float64) Point,
	df func(float64) Vec2,
	t0, t1 float64,
	p0, p3 Point,
	tolerance float64,
	depth int,
	out *[]CubicBez,
) {
	dt := t1 - t0
	c := CubicBez{
		p0,
		p0.Translate(df(t0).Mul(dt / 3)),
		p3.Translate(df(t1).Mul(-dt / 3)),
		p3,
	}
	if depth >= maxFitDepth || hermiteError(f, c, t0, dt) <= tolerance {
		*out = append(*out, c)
		return
	}
	tm := t0 + 0.5*dt
	pm := f(tm)
	fitHermiteRec(f, df, t0, tm, p0, pm, tolerance, depth+1, out)
	fitHermiteRec(f, df, tm, t1, pm, p3, tolerance, depth+1, out)
}

// hermiteError returns the largest distance between the cubic and the
// source curve at a few interior samples. The cubic's parameter is
// compared against the source's, so the estimate errs on the high side.
func hermiteError(f func(float64) Point, c CubicBez, t0, dt float64) float64 {
	var worst float64
	for _, s := range [...]float64{0.2, 0.5, 0.8} {
		worst = max(worst, c.Eval(s).Distance(f(t0+s*dt)))
	}
	if c.IsNaN() {
		return 0
	}
	return worst
}

// breakCusps splits [t0, t1] at the sign changes of g, which is sampled at
// n points and refined by root finding. The returned parameters include t0
// and t1.
func breakCusps(g func(float64) float64, t0, t1 float64, n int) []float64 {
	ts := []float64{t0}
	step := (t1 - t0) / float64(n)
	prevT, prevG := t0, g(t0)
	for i := 1; i <= n; i++ {
		t := t0 + float64(i)*step
		if i == n {
			t = t1
		}
		gt := g(t)
		if prevG != 0 && gt != 0 && (prevG < 0) != (gt < 0) {
			if r, ok := findRoot(g, prevT, t, prevG, gt, 1e-9*(t1-t0)); ok && r > ts[len(ts)-1] && r < t1 {
				ts = append(ts, r)
			}
		}
		prevT, prevG = t, gt
	}
	return append(ts, t1)
}
