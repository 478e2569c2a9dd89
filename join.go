package powerstroke

import (
	"fmt"
	"log/slog"
	"math"
)

// JoinType defines how the offset curves are connected where they separate
// at a corner.
type JoinType int

const (
	// A straight line between the two ends.
	BevelJoin JoinType = iota
	// The arc of an ellipse that is tangent to both ends.
	RoundJoin
	// The tangent lines extended until they meet, limited by
	// [Options.MiterLimit].
	MiterJoin
	// Both curves extrapolated by mirroring them about their ends, until
	// they meet. Limited by [Options.MiterLimit].
	ExtrapolatedMiterJoin
	// A spiro curve that continues both ends smoothly.
	SpiroJoin
	// Both curves extended along their circles of curvature until they meet.
	// Limited by [Options.MiterLimit].
	ExtrapolatedArcJoin
)

var joinNames = []string{
	BevelJoin:             "bevel",
	RoundJoin:             "round",
	MiterJoin:             "miter",
	ExtrapolatedMiterJoin: "extrapolated",
	SpiroJoin:             "spiro",
	ExtrapolatedArcJoin:   "extrp_arc",
}

func (j JoinType) String() string {
	return enumString(joinNames, "JoinType", j)
}

// ParseJoinType parses the attribute spelling of a join type, as returned by
// [JoinType.String].
func ParseJoinType(s string) (JoinType, error) {
	return parseEnum[JoinType](joinNames, "join type", s)
}

func (j JoinType) MarshalText() ([]byte, error) {
	return []byte(j.String()), nil
}

func (j *JoinType) UnmarshalText(b []byte) error {
	v, err := ParseJoinType(string(b))
	if err != nil {
		return err
	}
	*j = v
	return nil
}

// maxJoinRadius is the largest radius of a round join. Larger ellipses are
// numerically unreliable and replaced by a bevel.
const maxJoinRadius = 1e6

// joiner connects the pieces of one offset curve. The most recent piece is
// kept pending until the join after it has been decided, so that an inside
// corner can trim it before it becomes part of the output.
type joiner struct {
	opts    Options
	out     []CubicBez
	pending offsetPiece
	// head is the first piece as committed to out. It is trimmed by the
	// join across the seam of closed paths.
	head          offsetPiece
	headCommitted bool
}

// fixJoins connects the pieces of an offset curve into one chain of cubics.
// For closed paths the end is also joined back to the start, and the result
// ends where it starts.
func fixJoins(pieces []offsetPiece, closed bool, opts Options) []CubicBez {
	if len(pieces) == 0 {
		return nil
	}
	j := &joiner{opts: opts, pending: pieces[0]}
	for _, next := range pieces[1:] {
		j.join(next)
	}
	if closed {
		j.closeSeam()
	} else {
		j.commit()
	}
	return j.out
}

func (j *joiner) commit() {
	if !j.headCommitted {
		j.head = j.pending
		j.headCommitted = true
	}
	j.out = append(j.out, j.pending.cubics...)
}

// join connects the pending piece to next and makes next pending.
func (j *joiner) join(next offsetPiece) {
	bridge, trimmedNext := j.connect(j.pending, next)
	j.commit()
	j.out = append(j.out, bridge...)
	j.pending = trimmedNext
}

// connect decides how prev continues into next. It may trim the end of
// j.pending in place; it returns the cubics bridging the gap and next,
// possibly trimmed.
func (j *joiner) connect(prev, next offsetPiece) ([]CubicBez, offsetPiece) {
	P, Q := prev.end(), next.start()
	if P.isNear(Q, j.opts.tolerance()) {
		next.cubics = cloneCubics(next.cubics)
		next.cubics[0].P0 = P
		return nil, next
	}
	_, tang1 := prev.cubics[len(prev.cubics)-1].Tangents()
	tang2, _ := next.cubics[0].Tangents()
	tang1 = tang1.UnitOr(0, Q.Sub(P).Normalize())
	tang2 = tang2.UnitOr(0, Q.Sub(P).Normalize())

	if tang1.Dot(Q.Sub(P)) >= 0 {
		return j.outsideJoin(prev, next, P, Q, tang1, tang2), next
	}

	xs := innerCrossings(prev, next, intersectChains(prev.cubics, next.cubics, j.opts.tolerance()*1e-2))
	if len(xs) != 1 {
		Logger().Debug("inside corner without single crossing, using bevel",
			slog.Int("crossings", len(xs)), slog.String("at", P.String()))
		return []CubicBez{Line{P, Q}.Cubic()}, next
	}
	x := xs[0]
	cut := cloneCubics(prev.cubics[:x.ia+1])
	cut[x.ia] = cut[x.ia].Subsegment(0, x.ta)
	j.pending.cubics = cut

	rest := cloneCubics(next.cubics[x.ib:])
	rest[0] = rest[0].Subsegment(x.tb, 1)
	rest[0].P0 = cut[x.ia].P3
	next.cubics = rest
	return nil, next
}

// innerCrossings drops crossings at the start of prev or the end of next.
// Those are where the two pieces meet at their other ends, which happens
// across the seam of closed paths.
func innerCrossings(prev, next offsetPiece, xs []pathCrossing) []pathCrossing {
	const epsilon = 1e-9
	out := xs[:0]
	for _, x := range xs {
		if x.ia == 0 && x.ta < epsilon {
			continue
		}
		if x.ib == len(next.cubics)-1 && x.tb > 1-epsilon {
			continue
		}
		out = append(out, x)
	}
	return out
}

// closeSeam joins the pending last piece to the start of the output, and
// commits it.
func (j *joiner) closeSeam() {
	if !j.headCommitted {
		// A single piece joins to its own start.
		piece := j.pending
		P, Q := piece.end(), piece.start()
		switch {
		case P.isNear(Q, j.opts.tolerance()):
			j.pending.cubics = cloneCubics(piece.cubics)
			j.pending.cubics[len(piece.cubics)-1].P3 = Q
			j.commit()
		default:
			j.commit()
			_, tang1 := piece.cubics[len(piece.cubics)-1].Tangents()
			tang1 = tang1.UnitOr(0, Q.Sub(P).Normalize())
			if tang1.Dot(Q.Sub(P)) >= 0 {
				tang2, _ := piece.cubics[0].Tangents()
				tang2 = tang2.UnitOr(0, Q.Sub(P).Normalize())
				j.out = append(j.out, j.outsideJoin(piece, piece, P, Q, tang1, tang2)...)
			} else {
				j.out = append(j.out, Line{P, Q}.Cubic())
			}
		}
		return
	}

	headLen := len(j.head.cubics)
	head := j.head
	head.cubics = j.out[:headLen]
	bridge, trimmed := j.connect(j.pending, head)
	j.commit()
	j.out = append(j.out, bridge...)
	// Replace the head with what is left of it.
	j.out = append(cloneCubics(trimmed.cubics), j.out[headLen:]...)
	if n := len(j.out); n > 0 {
		j.out[n-1].P3 = j.out[0].P0
	}
}

// outsideJoin builds the join at an outside corner from P, the end of prev,
// to Q, the start of next. Every construction that fails falls back to a
// simpler one, ending with a bevel.
func (j *joiner) outsideJoin(prev, next offsetPiece, P, Q Point, tang1, tang2 Vec2) []CubicBez {
	jc := joinCorner{
		prev:   prev.cubics[len(prev.cubics)-1],
		next:   next.cubics[0],
		p:      P,
		q:      Q,
		tang1:  tang1,
		tang2:  tang2,
		base:   prev.base1,
		width:  prev.w1,
		limit:  j.opts.MiterLimit,
		tol:    j.opts.tolerance(),
		bounds: prevNextBounds(prev, next),
	}
	var (
		out []CubicBez
		err error
	)
	switch j.opts.Join {
	case RoundJoin:
		out, err = jc.round()
	case MiterJoin:
		out, err = jc.miter()
	case ExtrapolatedMiterJoin:
		out, err = jc.extrapolatedMiter()
	case ExtrapolatedArcJoin:
		out, err = jc.extrapolatedArc()
		if err != nil {
			logFallback(j.opts.Join, MiterJoin, err)
			out, err = jc.miter()
		}
	case SpiroJoin:
		out, err = jc.spiro()
	default:
		return jc.bevel()
	}
	if err != nil {
		logFallback(j.opts.Join, BevelJoin, err)
		return jc.bevel()
	}
	return out
}

func logFallback(from, to JoinType, err error) {
	Logger().Debug("join construction failed",
		slog.String("join", from.String()),
		slog.String("fallback", to.String()),
		slog.Any("err", err))
}

func prevNextBounds(prev, next offsetPiece) Rect {
	r := prev.cubics[0].BoundingBox()
	for _, c := range prev.cubics[1:] {
		r = r.Union(c.BoundingBox())
	}
	for _, c := range next.cubics {
		r = r.Union(c.BoundingBox())
	}
	return r
}

// joinCorner is the geometry of one outside corner.
type joinCorner struct {
	// prev ends at p, next starts at q.
	prev, next   CubicBez
	p, q         Point
	tang1, tang2 Vec2
	// base is the point of the base path at the corner, width the stroke
	// width there.
	base   Point
	width  float64
	limit  float64
	tol    float64
	bounds Rect
}

func (jc *joinCorner) bevel() []CubicBez {
	return []CubicBez{Line{jc.p, jc.q}.Cubic()}
}

// tangentCrossing returns the point where the tangent lines at p and q meet,
// provided it lies ahead of p and behind q.
func (jc *joinCorner) tangentCrossing() (Point, error) {
	o, ok := Line{jc.p, jc.p.Translate(jc.tang1)}.CrossingPoint(Line{jc.q, jc.q.Translate(jc.tang2)})
	if !ok || jc.tang1.Dot(o.Sub(jc.p)) <= 0 || jc.tang2.Dot(jc.q.Sub(o)) <= 0 {
		return Point{}, errNoTangentCrossing
	}
	return o, nil
}

func (jc *joinCorner) withinLimit(pt Point) error {
	if pt.Distance(jc.base) > math.Abs(jc.width)*jc.limit {
		return fmt.Errorf("%g > %g×%g: %w", pt.Distance(jc.base), math.Abs(jc.width), jc.limit, errMiterLimit)
	}
	return nil
}

func (jc *joinCorner) round() ([]CubicBez, error) {
	var arc Arc
	if math.Abs(jc.tang1.Cross(jc.tang2)) < 1e-9 && jc.tang1.Dot(jc.tang2) < 0 {
		// The ends turn back on each other; connect them with a half circle
		// that leaves p along the tangent.
		center := jc.p.Midpoint(jc.q)
		r := 0.5 * jc.p.Distance(jc.q)
		sweep := math.Pi
		if jc.p.Sub(center).Rot90().Dot(jc.tang1) < 0 {
			sweep = -math.Pi
		}
		arc = Arc{
			Center:     center,
			Radii:      Vec(r, r),
			StartAngle: jc.p.Sub(center).Angle(),
			SweepAngle: sweep,
		}
	} else {
		o, err := jc.tangentCrossing()
		if err != nil {
			return nil, err
		}
		e, err := fitEllipse(jc.p, jc.q, o)
		if err != nil {
			return nil, fmt.Errorf("round join at %s: %w", jc.p, err)
		}
		if e.Radii.X > maxJoinRadius || e.Radii.Y > maxJoinRadius {
			return nil, fmt.Errorf("radii %s: %w", e.Radii, errRadiusTooLarge)
		}
		arc = e.arcBetween(jc.p, jc.q)
	}
	return snapEnds(arc.Cubics(jc.tol), jc.p, jc.q), nil
}

func (jc *joinCorner) miter() ([]CubicBez, error) {
	o, err := jc.tangentCrossing()
	if err != nil {
		return nil, err
	}
	if err := jc.withinLimit(o); err != nil {
		return nil, err
	}
	return []CubicBez{Line{jc.p, o}.Cubic(), Line{o, jc.q}.Cubic()}, nil
}

// extrapolatedMiter continues prev beyond p by its mirror image about the
// normal at p, and likewise next before q, and connects the two where they
// meet.
func (jc *joinCorner) extrapolatedMiter() ([]CubicBez, error) {
	ext1 := jc.prev.Transform(Reflect(jc.p, jc.tang1.Rot90())).Reverse()
	ext2 := jc.next.Transform(Reflect(jc.q, jc.tang2.Rot90()))
	xs := intersectCubics(ext1, ext2, jc.tol*1e-2)
	if len(xs) == 0 {
		return nil, errNoCrossing
	}
	best := xs[0]
	for _, x := range xs[1:] {
		if x.ta < best.ta {
			best = x
		}
	}
	x := ext1.Eval(best.ta)
	if err := jc.withinLimit(x); err != nil {
		return nil, err
	}
	c1 := ext1.Subsegment(0, best.ta)
	c2 := ext2.Subsegment(0, best.tb).Reverse()
	c1.P3, c2.P0 = x, x
	return []CubicBez{c1, c2}, nil
}

// extrapolatedArc continues prev and next along their circles of curvature,
// or along their tangents where they are straight, and connects them where
// those meet.
func (jc *joinCorner) extrapolatedArc() ([]CubicBez, error) {
	c1, ok1 := osculatingCircle(jc.prev, 1)
	c2, ok2 := osculatingCircle(jc.next, 0)
	var sols [2]Point
	var n int
	switch {
	case ok1 && ok2:
		sols, n = c1.IntersectCircle(c2)
	case ok1:
		sols, n = c1.IntersectLine(Line{jc.q, jc.q.Translate(jc.tang2)})
	case ok2:
		sols, n = c2.IntersectLine(Line{jc.p, jc.p.Translate(jc.tang1)})
	default:
		return nil, fmt.Errorf("both ends straight: %w", errNoCrossing)
	}

	var x Point
	found := false
	mid := jc.p.Midpoint(jc.q)
	for _, s := range sols[:n] {
		if jc.tang2.Dot(s.Sub(jc.q)) > 0 || jc.tang1.Dot(s.Sub(jc.p)) < 0 {
			continue
		}
		if !found || s.Distance(mid) < x.Distance(mid) {
			x, found = s, true
		}
	}
	if !found {
		return nil, errNoCrossing
	}
	if !jc.bounds.Scale(1.25).Contains(x) {
		return nil, fmt.Errorf("%s: %w", x, errOutsideBounds)
	}
	if err := jc.withinLimit(x); err != nil {
		return nil, err
	}

	var out []CubicBez
	if ok1 {
		arc, err := circleArc(c1, jc.p, x, jc.prev.Curvature(1))
		if err != nil {
			return nil, err
		}
		out = append(out, snapEnds(arc.Cubics(jc.tol), jc.p, x)...)
	} else {
		out = append(out, Line{jc.p, x}.Cubic())
	}
	if ok2 {
		arc, err := circleArc(c2, x, jc.q, jc.next.Curvature(0))
		if err != nil {
			return nil, err
		}
		out = append(out, snapEnds(arc.Cubics(jc.tol), x, jc.q)...)
	} else {
		out = append(out, Line{x, jc.q}.Cubic())
	}
	return out, nil
}

// circleArc returns the arc of c from a to b, turning in the direction of
// the sign of curvature. Arcs of more than half a turn are rejected.
func circleArc(c Circle, a, b Point, curvature float64) (Arc, error) {
	a0 := a.Sub(c.Center).Angle()
	sweep := math.Mod(b.Sub(c.Center).Angle()-a0, 2*math.Pi)
	if curvature > 0 && sweep < 0 {
		sweep += 2 * math.Pi
	} else if curvature < 0 && sweep > 0 {
		sweep -= 2 * math.Pi
	}
	if math.Abs(sweep) > math.Pi {
		return Arc{}, fmt.Errorf("sweep %g: %w", sweep, errArcSweep)
	}
	return Arc{
		Center:     c.Center,
		Radii:      Vec(c.Radius, c.Radius),
		StartAngle: a0,
		SweepAngle: sweep,
	}, nil
}

// spiro bridges the corner with the middle segment of a spiro spline
// through p and q, guided by points along both tangents.
func (jc *joinCorner) spiro() ([]CubicBez, error) {
	l := jc.p.Distance(jc.q)
	segs, err := solveSpiro([]Point{
		jc.p.Translate(jc.tang1.Mul(-l)),
		jc.p,
		jc.q,
		jc.q.Translate(jc.tang2.Mul(l)),
	})
	if err != nil {
		return nil, err
	}
	return segs[1].cubics(jc.tol), nil
}

// snapEnds makes the chain start exactly at p and end exactly at q. An empty
// chain becomes a line.
func snapEnds(cs []CubicBez, p, q Point) []CubicBez {
	if len(cs) == 0 {
		return []CubicBez{Line{p, q}.Cubic()}
	}
	cs[0].P0 = p
	cs[len(cs)-1].P3 = q
	return cs
}

func cloneCubics(cs []CubicBez) []CubicBez {
	return append([]CubicBez(nil), cs...)
}
