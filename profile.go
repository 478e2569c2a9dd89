package powerstroke

// WidthProfile is the width of a stroke as a function of position along its
// path. It is a chain of cubics in the plane of (path time, width), clipped
// to the domain of the path.
type WidthProfile struct {
	Cubics []CubicBez
	// End is the end of the path's domain, the number of its segments.
	End float64
}

// Eval evaluates the profile at its own parameter u ∈ [0, len(Cubics)]. The
// result's X is path time and its Y the width there.
func (wp WidthProfile) Eval(u float64) Point {
	if len(wp.Cubics) == 0 {
		return Point{}
	}
	k, t := Piecewise{Segs: wp.Cubics}.locate(u)
	return wp.Cubics[k].Eval(t)
}

// At returns the width at path time x. Where the profile doubles back, the
// first width along the profile is returned. It returns false if the profile
// never reaches x.
func (wp WidthProfile) At(x float64) (float64, bool) {
	for _, c := range wp.Cubics {
		if roots, n := c.solveX(x); n > 0 {
			return c.Eval(roots[0]).Y, true
		}
	}
	return 0, false
}

// buildProfile interpolates the width samples, whose positions are already
// in path time, over the domain of pw. The samples are used in the order
// given.
func buildProfile(pw Piecewise, samples Samples, opts Options) WidthProfile {
	n := float64(pw.Len())
	wp := WidthProfile{End: n}
	if len(samples) == 0 || n == 0 {
		return wp
	}
	ts := make([]Point, 0, len(samples)+2)
	for _, s := range samples {
		ts = append(ts, s.point())
	}
	ts = addBoundarySamples(ts, n, pw.Closed, opts)

	// Interpolate in a plane where x is proportional to arc length, so that
	// the curve's shape follows the canvas rather than the segment count.
	scale := 1.0
	if last := ts[len(ts)-1].X; last > 0 {
		if l := pw.Arclen(opts.tolerance() * 1e-3); l > 0 {
			scale = l / last
		}
	}
	for i := range ts {
		ts[i].X *= scale
	}
	cubics := opts.Interpolator.Interpolate(ts, opts.Beta)
	inv := Scale(1/scale, 1)
	for i := range cubics {
		cubics[i] = cubics[i].Transform(inv)
	}
	wp.Cubics = clipProfile(cubics, n)
	return wp
}

// addBoundarySamples adds the samples that pin the profile to the ends of
// the domain [0, n].
func addBoundarySamples(ts []Point, n float64, closed bool, opts Options) []Point {
	first, last := ts[0], ts[len(ts)-1]
	if !closed {
		w0, w1 := first.Y, last.Y
		if opts.StartCap == ZeroWidthCap {
			w0 = 0
		}
		if opts.EndCap == ZeroWidthCap {
			w1 = 0
		}
		out := append([]Point{Pt(0, w0)}, ts...)
		return append(out, Pt(n, w1))
	}

	wrapped := first.Translate(Vec(n, 0))
	if isLegacyBridge(opts.FormatVersion) {
		out := append([]Point{last.Translate(Vec(-n, 0))}, ts...)
		return append(out, wrapped)
	}

	w := first.Y
	if len(ts) > 1 {
		w = bridgeWidth(last, wrapped, n, opts)
	}
	out := append([]Point{Pt(0, w)}, ts...)
	return append(out, Pt(n, w))
}

// bridgeWidth returns the width at the seam of a closed path: the value at
// x = n of the interpolation from the last sample to the first one, shifted
// by one period.
func bridgeWidth(last, wrapped Point, n float64, opts Options) float64 {
	mid := last.Midpoint(wrapped)
	for _, c := range opts.Interpolator.Interpolate([]Point{last, mid, wrapped}, opts.Beta) {
		if roots, k := c.solveX(n); k > 0 {
			return c.Eval(roots[0]).Y
		}
	}
	return mid.Y
}

// clipProfile keeps the part of the profile from the first point where x = 0
// to the first following point where x = n. A profile that starts inside the
// domain is kept from its start, and one that never reaches n up to its end.
func clipProfile(cubics []CubicBez, n float64) []CubicBez {
	if len(cubics) == 0 {
		return nil
	}
	startK, startT, ok := firstCrossing(cubics, 0, 0, -1, 0)
	if !ok {
		startK, startT = 0, 0
	}
	endK, endT, ok := firstCrossing(cubics, n, startK, startK, startT)
	if !ok {
		endK, endT = len(cubics)-1, 1
	}

	var out []CubicBez
	for k := startK; k <= endK; k++ {
		t0, t1 := 0.0, 1.0
		if k == startK {
			t0 = startT
		}
		if k == endK {
			t1 = endT
		}
		if t1 <= t0 {
			continue
		}
		out = append(out, cubics[k].Subsegment(t0, t1))
	}
	return out
}

// firstCrossing returns the first position, starting from cubic k0, at which
// the profile's x equals x. Positions at or before (afterK, afterT) are
// ignored.
func firstCrossing(cubics []CubicBez, x float64, k0, afterK int, afterT float64) (int, float64, bool) {
	for k := k0; k < len(cubics); k++ {
		roots, m := cubics[k].solveX(x)
		for _, r := range roots[:m] {
			if k > afterK || r > afterT {
				return k, r, true
			}
		}
	}
	return 0, 0, false
}
