package powerstroke

import (
	"log/slog"
	"math"
	"sort"
)

const (
	// DefaultTolerance is the default accuracy of every curve conversion,
	// and the distance below which two offset pieces count as connected.
	DefaultTolerance = 0.01

	// degenerateLength is the control polygon length below which a base
	// segment counts as zero length.
	degenerateLength = 1e-9

	// tangentEpsilon is the derivative magnitude below which unit tangents
	// are taken from a chord instead.
	tangentEpsilon = 1e-5
)

// Piecewise is a subpath converted to a chain of cubic Béziers. Segment k
// covers the domain [k, k+1], so the whole curve is defined over
// [0, len(Segs)].
type Piecewise struct {
	Segs   []CubicBez
	Closed bool
}

// Normalize converts every subpath of p into a [Piecewise]. Lines are raised
// to cubics with control points at their thirds, quadratics are raised
// exactly, and arcs are approximated within tolerance. A closed subpath whose
// last point differs from its start gets an explicit closing line.
//
// Subpaths without any segment of non-zero length are logged and skipped.
func Normalize(p BezPath, tolerance float64) []Piecewise {
	var out []Piecewise
	for i, sp := range p.subpaths() {
		pw := normalizeSubpath(sp, tolerance)
		if pw.IsDegenerate() {
			Logger().Warn("skipping degenerate subpath", slog.Int("subpath", i), slog.Int("segments", len(pw.Segs)))
			continue
		}
		out = append(out, pw)
	}
	return out
}

func normalizeSubpath(sp subpath, tolerance float64) Piecewise {
	pw := Piecewise{Closed: sp.closed}
	cur := sp.start
	for _, el := range sp.els {
		switch el.Kind {
		case LineToKind:
			pw.Segs = append(pw.Segs, Line{cur, el.P0}.Cubic())
		case QuadToKind:
			pw.Segs = append(pw.Segs, QuadBez{cur, el.P0, el.P1}.Raise())
		case CubicToKind:
			pw.Segs = append(pw.Segs, CubicBez{cur, el.P0, el.P1, el.P2})
		case ArcToKind:
			pw.Segs = append(pw.Segs, arcCubics(cur, el.P0, el.Arc, tolerance)...)
		}
		cur, _ = el.EndPoint()
	}
	if sp.closed && len(pw.Segs) > 0 && cur != sp.start {
		pw.Segs = append(pw.Segs, Line{cur, sp.start}.Cubic())
	}
	return pw
}

// arcCubics converts an SVG arc to cubics whose end points are exactly from
// and to. Arcs that are straight lines per the SVG rules become a line.
func arcCubics(from, to Point, params ArcParams, tolerance float64) []CubicBez {
	if from == to {
		return nil
	}
	arc, ok := NewArcFromSVG(from, to, params)
	if !ok {
		return []CubicBez{Line{from, to}.Cubic()}
	}
	cs := arc.Cubics(tolerance)
	if len(cs) == 0 {
		return []CubicBez{Line{from, to}.Cubic()}
	}
	cs[0].P0 = from
	cs[len(cs)-1].P3 = to
	return cs
}

// Len returns the number of segments, which is also the end of the domain.
func (pw Piecewise) Len() int {
	return len(pw.Segs)
}

// Domain returns the start and end of the parameter domain.
func (pw Piecewise) Domain() (float64, float64) {
	return 0, float64(len(pw.Segs))
}

// IsDegenerate reports whether the curve has no segment of non-zero length.
func (pw Piecewise) IsDegenerate() bool {
	for _, c := range pw.Segs {
		if !c.isDegenerate(degenerateLength) {
			return false
		}
	}
	return true
}

// locate maps a global parameter to a segment index and a local parameter.
// Parameters outside the domain are clamped.
func (pw Piecewise) locate(t float64) (int, float64) {
	n := len(pw.Segs)
	if t <= 0 {
		return 0, 0
	}
	if t >= float64(n) {
		return n - 1, 1
	}
	k := int(math.Floor(t))
	return k, t - float64(k)
}

// Eval evaluates the curve at global parameter t.
func (pw Piecewise) Eval(t float64) Point {
	k, lt := pw.locate(t)
	return pw.Segs[k].Eval(lt)
}

// Deriv returns the derivative at global parameter t.
func (pw Piecewise) Deriv(t float64) Vec2 {
	k, lt := pw.locate(t)
	return pw.Segs[k].Deriv(lt)
}

// UnitTangent returns the unit tangent at global parameter t.
func (pw Piecewise) UnitTangent(t float64) Vec2 {
	k, lt := pw.locate(t)
	return unitTangent(pw.Segs[k], lt)
}

// Normal returns the unit normal at global parameter t. Positive widths
// offset along it.
func (pw Piecewise) Normal(t float64) Vec2 {
	return pw.UnitTangent(t).Rot90()
}

// unitTangent returns the unit tangent of c at t. Where the derivative
// vanishes, the direction of a short chord around t is used instead.
func unitTangent(c CubicBez, t float64) Vec2 {
	d := c.Deriv(t)
	if d.Hypot() > tangentEpsilon {
		return d.Normalize()
	}
	const h = 1e-4
	a := max(t-h, 0)
	b := min(t+h, 1)
	chord := c.Eval(b).Sub(c.Eval(a))
	if chord.Hypot2() > 0 {
		return chord.Normalize()
	}
	d0, d1 := c.Tangents()
	if t < 0.5 {
		return d0.UnitOr(0, Vec(1, 0))
	}
	return d1.UnitOr(0, Vec(1, 0))
}

// SegmentArclens returns the arc length of every segment.
func (pw Piecewise) SegmentArclens(accuracy float64) []float64 {
	out := make([]float64, len(pw.Segs))
	for i, c := range pw.Segs {
		out[i] = c.Arclen(accuracy)
	}
	return out
}

// Arclen returns the total arc length.
func (pw Piecewise) Arclen(accuracy float64) float64 {
	var sum float64
	for _, c := range pw.Segs {
		sum += c.Arclen(accuracy)
	}
	return sum
}

// ArclenAtTime returns the arc length from the start of the curve to global
// parameter t.
func (pw Piecewise) ArclenAtTime(t float64, accuracy float64) float64 {
	k, lt := pw.locate(t)
	var sum float64
	for _, c := range pw.Segs[:k] {
		sum += c.Arclen(accuracy)
	}
	return sum + pw.Segs[k].Subsegment(0, lt).Arclen(accuracy)
}

// TimeAtArclen returns the global parameter at which the arc length from
// the start of the curve equals s. Values beyond the curve are clamped.
func (pw Piecewise) TimeAtArclen(s float64, accuracy float64) float64 {
	if s <= 0 || len(pw.Segs) == 0 {
		return 0
	}
	lens := pw.SegmentArclens(accuracy)
	cum := make([]float64, len(lens)+1)
	for i, l := range lens {
		cum[i+1] = cum[i] + l
	}
	if s >= cum[len(lens)] {
		return float64(len(lens))
	}
	// First segment whose end lies at or beyond s.
	k := sort.SearchFloat64s(cum[1:], s)
	if lens[k] == 0 {
		return float64(k)
	}
	return float64(k) + pw.Segs[k].SolveForArclen(s-cum[k], accuracy)
}

// Nearest returns the global parameter of the point on the curve nearest to
// pt, and the squared distance to it.
func (pw Piecewise) Nearest(pt Point, accuracy float64) (t, distSq float64) {
	distSq = math.Inf(1)
	for k, c := range pw.Segs {
		if d, lt := c.Nearest(pt, accuracy); d < distSq {
			distSq, t = d, float64(k)+lt
		}
	}
	return t, distSq
}

// BoundingBox returns the tight bounding box of the curve.
func (pw Piecewise) BoundingBox() Rect {
	if len(pw.Segs) == 0 {
		return Rect{}
	}
	r := pw.Segs[0].BoundingBox()
	for _, c := range pw.Segs[1:] {
		r = r.Union(c.BoundingBox())
	}
	return r
}
