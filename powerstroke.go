package powerstroke

import (
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options describes how a path is turned into a variable width outline.
type Options struct {
	// Scale multiplies every sample width.
	Scale float64
	// SortPoints orders the samples by position before use. Otherwise they
	// are interpolated in the order given.
	SortPoints bool
	// Interpolator selects the shape of the width profile between samples.
	Interpolator Interpolator
	// Beta is the smoothness of [CubicBezierJohan] and [CubicBezierSmooth],
	// between 0 and 1.
	Beta float64
	// Join is the shape of outside corners.
	Join JoinType
	// MiterLimit bounds the distance of a miter tip from the path, in
	// multiples of the width at the corner.
	MiterLimit float64
	// StartCap is the shape of the start of open subpaths.
	StartCap CapType
	// EndCap is the shape of the end of open subpaths.
	EndCap CapType
	// FormatVersion selects how sample positions are interpreted. Versions
	// before "1.3" use path time, where segment k of a subpath covers
	// [k, k+1]; later versions use fractions of the subpath's arc length.
	// Closed subpaths of versions before "1" wrap the profile around the
	// seam instead of computing a width at the seam. Versions are compared
	// as strings.
	FormatVersion string
	// Tolerance is the accuracy of the outline and the largest gap that is
	// not considered a corner. Zero means [DefaultTolerance].
	Tolerance float64
	// Parallel strokes subpaths concurrently.
	Parallel bool
}

// DefaultOptions are the defaults for variable width strokes.
var DefaultOptions = Options{
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
}

func (o Options) WithScale(scale float64) Options          { o.Scale = scale; return o }
func (o Options) WithSortPoints(sort bool) Options         { o.SortPoints = sort; return o }
func (o Options) WithInterpolator(ip Interpolator) Options { o.Interpolator = ip; return o }
func (o Options) WithBeta(beta float64) Options            { o.Beta = beta; return o }
func (o Options) WithJoin(join JoinType) Options           { o.Join = join; return o }
func (o Options) WithMiterLimit(limit float64) Options     { o.MiterLimit = limit; return o }
func (o Options) WithStartCap(cap CapType) Options         { o.StartCap = cap; return o }
func (o Options) WithEndCap(cap CapType) Options           { o.EndCap = cap; return o }
func (o Options) WithCaps(cap CapType) Options             { o.StartCap, o.EndCap = cap, cap; return o }
func (o Options) WithFormatVersion(v string) Options       { o.FormatVersion = v; return o }
func (o Options) WithTolerance(tolerance float64) Options  { o.Tolerance = tolerance; return o }
func (o Options) WithParallel(parallel bool) Options       { o.Parallel = parallel; return o }

func (o Options) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return DefaultTolerance
}

// Stroke converts every subpath of path into the outline of a stroke whose
// width follows the samples. The same samples apply to every subpath.
//
// An open subpath yields one closed outline. A closed subpath yields two
// closed loops, on the positive and the negative side of the path. Subpaths
// without length are skipped.
//
// Stroke never fails: corners whose join cannot be constructed fall back to
// simpler joins, and if any stage of the computation comes out empty, path
// is returned unchanged.
func Stroke(path BezPath, samples []OffsetSample, opts Options) BezPath {
	return stroke(path, samples, opts, nil)
}

func stroke(path BezPath, samples []OffsetSample, opts Options, cache *Cache) BezPath {
	if len(samples) == 0 {
		Logger().Debug("no width samples, returning path unchanged")
		return path
	}
	sps := path.subpaths()
	if len(sps) == 0 {
		return path
	}
	if cache != nil {
		cache.begin()
		defer cache.end()
	}

	results := make([]BezPath, len(sps))
	do := func(i int) error {
		sp := sps[i]
		if cache != nil {
			if r, ok := cache.get(sp.raw, samples, opts); ok {
				results[i] = r
				return nil
			}
		}
		r, err := strokeSubpath(sp, samples, opts)
		if err != nil {
			return fmt.Errorf("subpath %d: %w", i, err)
		}
		if r == nil {
			Logger().Warn("skipping degenerate subpath", slog.Int("subpath", i))
		}
		if cache != nil {
			cache.put(sp.raw, samples, opts, r)
		}
		results[i] = r
		return nil
	}

	var err error
	if opts.Parallel && len(sps) > 1 {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range sps {
			g.Go(func() error { return do(i) })
		}
		err = g.Wait()
	} else {
		for i := range sps {
			if err = do(i); err != nil {
				break
			}
		}
	}
	if err != nil {
		Logger().Debug("returning path unchanged", slog.Any("err", err))
		return path
	}

	var out BezPath
	for _, r := range results {
		out = append(out, r...)
	}
	if len(out) == 0 {
		Logger().Debug("every subpath was skipped, returning path unchanged")
		return path
	}
	return out
}

// strokeSubpath strokes a single subpath. It returns nil for a subpath
// without length.
func strokeSubpath(sp subpath, samples []OffsetSample, opts Options) (BezPath, error) {
	tol := opts.tolerance()
	pw := normalizeSubpath(sp, tol)
	if pw.IsDegenerate() {
		return nil, nil
	}

	ss := Samples(samples)
	if opts.SortPoints {
		ss = ss.Sorted()
	}
	ss = ss.Scaled(opts.Scale)
	legacy := isLegacyPositions(opts.FormatVersion)
	total := pw.Arclen(DefaultAccuracy)
	for i := range ss {
		ss[i].Pos = positionToTime(pw, ss[i].Pos, legacy, total)
	}

	wp := buildProfile(pw, ss, opts)
	if len(wp.Cubics) == 0 {
		return nil, fmt.Errorf("width profile: %w", errEmptyStage)
	}
	outer, inner := offsetCurves(pw, wp, tol)
	if len(outer) == 0 || len(inner) == 0 {
		return nil, fmt.Errorf("offset curves: %w", errEmptyStage)
	}
	o := fixJoins(outer, pw.Closed, opts)
	in := fixJoins(inner, pw.Closed, opts)
	if len(o) == 0 || len(in) == 0 {
		return nil, fmt.Errorf("joins: %w", errEmptyStage)
	}

	var out BezPath
	if pw.Closed {
		appendLoop(&out, o)
		appendLoop(&out, in)
		return out, nil
	}

	x0 := wp.Eval(0).X
	x1 := wp.Eval(float64(len(wp.Cubics))).X
	loop := append([]CubicBez(nil), o...)
	loop = append(loop, capEnd(opts.EndCap, o[len(o)-1].P3, in[0].P0, pw.UnitTangent(x1), tol)...)
	loop = append(loop, in...)
	loop = append(loop, capEnd(opts.StartCap, in[len(in)-1].P3, o[0].P0, pw.UnitTangent(x0).Negate(), tol)...)
	appendLoop(&out, loop)
	return out, nil
}

// appendLoop appends a closed subpath made of the chain of cubics. Cubics
// that are straight are emitted as lines.
func appendLoop(p *BezPath, cs []CubicBez) {
	p.MoveTo(cs[0].P0)
	for _, c := range cs {
		if isStraight(c) {
			p.LineTo(c.P3)
		} else {
			p.CubicTo(c.P1, c.P2, c.P3)
		}
	}
	p.ClosePath()
}

// isStraight reports whether the control points of c lie on its chord, in
// order.
func isStraight(c CubicBez) bool {
	const epsilon = 1e-9
	chord := Line{c.P0, c.P3}
	d1, t1 := chord.Nearest(c.P1)
	d2, t2 := chord.Nearest(c.P2)
	return d1 <= epsilon*epsilon && d2 <= epsilon*epsilon && t1 <= t2
}
