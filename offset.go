package powerstroke

import (
	"math"
	"sort"
)

// degeneratePiece is the control polygon length below which an offset cubic
// is dropped.
const degeneratePiece = 4e-3

// offsetPiece is a run of offset cubics that is continuous by construction,
// together with the base curve and width at its ends.
type offsetPiece struct {
	cubics       []CubicBez
	base0, base1 Point
	w0, w1       float64
}

func (p offsetPiece) start() Point { return p.cubics[0].P0 }
func (p offsetPiece) end() Point   { return p.cubics[len(p.cubics)-1].P3 }

// reverse returns the piece traversed backwards.
func (p offsetPiece) reverse() offsetPiece {
	out := offsetPiece{
		cubics: make([]CubicBez, len(p.cubics)),
		base0:  p.base1,
		base1:  p.base0,
		w0:     p.w1,
		w1:     p.w0,
	}
	for i, c := range p.cubics {
		out.cubics[len(p.cubics)-1-i] = c.Reverse()
	}
	return out
}

// variableOffset is the curve B(x(t)) + side·y(t)·N(x(t)), where (x, y) is a
// cubic of the width profile whose x stays within one segment B of the base
// curve, N is the unit normal of B, and side is ±1.
type variableOffset struct {
	base    CubicBez
	k       float64 // start of base in path time
	profile CubicBez
	dprof   QuadBez
	side    float64
}

// at returns the local parameter on base and its rate of change for
// profile parameter t.
func (vo *variableOffset) at(t float64) (s, ds float64) {
	s = vo.profile.Eval(t).X - vo.k
	ds = vo.dprof.Eval(t).X
	return min(max(s, 0), 1), ds
}

// frame returns the base point, the base derivative, the unit normal and
// the derivative of the unit normal at s.
func (vo *variableOffset) frame(s float64) (Point, Vec2, Vec2, Vec2) {
	b := vo.base.Eval(s)
	d := vo.base.Deriv(s)
	h := d.Hypot()
	if h <= tangentEpsilon {
		return b, d, unitTangent(vo.base, s).Rot90(), Vec2{}
	}
	t := d.Div(h)
	dd := vo.base.Deriv2(s)
	dt := dd.Sub(t.Mul(t.Dot(dd))).Div(h)
	return b, d, t.Rot90(), dt.Rot90()
}

func (vo *variableOffset) eval(t float64) Point {
	s, _ := vo.at(t)
	b, _, n, _ := vo.frame(s)
	return b.Translate(n.Mul(vo.side * vo.profile.Eval(t).Y))
}

func (vo *variableOffset) deriv(t float64) Vec2 {
	s, ds := vo.at(t)
	_, d, n, dn := vo.frame(s)
	w := vo.side * vo.profile.Eval(t).Y
	dw := vo.side * vo.dprof.Eval(t).Y
	return d.Mul(ds).Add(n.Mul(dw)).Add(dn.Mul(w * ds))
}

// cuspSign is positive where the offset runs along the base curve and
// negative where it runs against it.
func (vo *variableOffset) cuspSign(t float64) float64 {
	s, _ := vo.at(t)
	return vo.deriv(t).Dot(vo.base.Deriv(s))
}

// offsetCurves builds the two raw offset curves of pw for the width profile.
// The outer curve follows the path direction on the side of positive
// widths; the inner one comes back on the other side.
func offsetCurves(pw Piecewise, wp WidthProfile, tolerance float64) (outer, inner []offsetPiece) {
	n := pw.Len()
	for _, pc := range wp.Cubics {
		ts := integerCrossings(pc, n)
		for i := 1; i < len(ts); i++ {
			t0, t1 := ts[i-1], ts[i]
			if t1-t0 < 1e-12 {
				continue
			}
			mid := pc.Eval(0.5 * (t0 + t1)).X
			k := min(max(int(math.Floor(mid)), 0), n-1)
			for _, side := range [...]float64{1, -1} {
				vo := &variableOffset{
					base:    pw.Segs[k],
					k:       float64(k),
					profile: pc,
					dprof:   pc.Differentiate(),
					side:    side,
				}
				piece, ok := vo.fit(t0, t1, tolerance)
				if !ok {
					continue
				}
				if side > 0 {
					outer = append(outer, piece)
				} else {
					inner = append(inner, piece)
				}
			}
		}
	}
	for i, j := 0, len(inner)-1; i <= j; i, j = i+1, j-1 {
		inner[i], inner[j] = inner[j].reverse(), inner[i].reverse()
	}
	return outer, inner
}

// fit approximates the offset over [t0, t1] with cubics, breaking it at
// cusps. It returns false if nothing but degenerate cubics remain.
func (vo *variableOffset) fit(t0, t1, tolerance float64) (offsetPiece, bool) {
	var piece offsetPiece
	ts := breakCusps(vo.cuspSign, t0, t1, 16)
	for i := 1; i < len(ts); i++ {
		for _, c := range fitHermite(vo.eval, vo.deriv, ts[i-1], ts[i], tolerance) {
			if c.isDegenerate(degeneratePiece) || c.IsNaN() {
				continue
			}
			piece.cubics = append(piece.cubics, c)
		}
	}
	if len(piece.cubics) == 0 {
		return offsetPiece{}, false
	}
	// Dropping degenerate cubics can leave tiny gaps; close them.
	for i := 1; i < len(piece.cubics); i++ {
		piece.cubics[i].P0 = piece.cubics[i-1].P3
	}
	s0, _ := vo.at(t0)
	s1, _ := vo.at(t1)
	piece.base0 = vo.base.Eval(s0)
	piece.base1 = vo.base.Eval(s1)
	piece.w0 = vo.profile.Eval(t0).Y
	piece.w1 = vo.profile.Eval(t1).Y
	return piece, true
}

// integerCrossings returns the parameters of pc at which its x crosses an
// integer in [0, n], plus 0 and 1, sorted and without duplicates.
func integerCrossings(pc CubicBez, n int) []float64 {
	ts := []float64{0, 1}
	box := pc.ControlBox()
	lo := max(int(math.Ceil(box.X0)), 0)
	hi := min(int(math.Floor(box.X1)), n)
	for k := lo; k <= hi; k++ {
		roots, m := pc.solveX(float64(k))
		ts = append(ts, roots[:m]...)
	}
	sort.Float64s(ts)
	out := ts[:1]
	for _, t := range ts[1:] {
		if t-out[len(out)-1] > 1e-12 {
			out = append(out, t)
		}
	}
	return out
}
