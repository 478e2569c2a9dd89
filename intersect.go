package powerstroke

import "math"

// cubicCrossing is a crossing of two cubics, with the parameter on each.
type cubicCrossing struct {
	ta, tb float64
}

// intersectCubics returns the points where a and b cross. Both curves are
// subdivided while their bounding boxes overlap, until the pieces are flat
// enough to be treated as lines. Crossings closer than accuracy to each
// other are reported once.
func intersectCubics(a, b CubicBez, accuracy float64) []cubicCrossing {
	var out []cubicCrossing
	intersectCubicsRec(a, 0, 1, b, 0, 1, accuracy, 0, &out)
	// Merge duplicates found in adjacent subdivisions.
	var dedup []cubicCrossing
	for _, c := range out {
		dup := false
		for _, d := range dedup {
			if a.Eval(c.ta).Distance(a.Eval(d.ta)) <= accuracy {
				dup = true
				break
			}
		}
		if !dup {
			dedup = append(dedup, c)
		}
	}
	return dedup
}

func intersectCubicsRec(
	a CubicBez, a0, a1 float64,
	b CubicBez, b0, b1 float64,
	accuracy float64,
	depth int,
	out *[]cubicCrossing,
) {
	const maxDepth = 40
	ra := a.ControlBox()
	rb := b.ControlBox()
	if !ra.Inflate(accuracy, accuracy).Overlaps(rb) {
		return
	}
	flat := func(c CubicBez) bool {
		chord := Line{c.P0, c.P3}
		d1, _ := chord.Nearest(c.P1)
		d2, _ := chord.Nearest(c.P2)
		return math.Sqrt(max(d1, d2)) <= accuracy
	}
	if depth >= maxDepth || (flat(a) && flat(b)) {
		if ta, tb, ok := (Line{a.P0, a.P3}).intersectSegments(Line{b.P0, b.P3}); ok {
			*out = append(*out, cubicCrossing{
				ta: a0 + ta*(a1-a0),
				tb: b0 + tb*(b1-b0),
			})
		}
		return
	}
	am := 0.5 * (a0 + a1)
	bm := 0.5 * (b0 + b1)
	// Subdivide the larger curve, or both if they are similar in size.
	sa, sb := ra.maxDimension(), rb.maxDimension()
	switch {
	case sa > 2*sb:
		l, r := a.Subdivide()
		intersectCubicsRec(l, a0, am, b, b0, b1, accuracy, depth+1, out)
		intersectCubicsRec(r, am, a1, b, b0, b1, accuracy, depth+1, out)
	case sb > 2*sa:
		l, r := b.Subdivide()
		intersectCubicsRec(a, a0, a1, l, b0, bm, accuracy, depth+1, out)
		intersectCubicsRec(a, a0, a1, r, bm, b1, accuracy, depth+1, out)
	default:
		al, ar := a.Subdivide()
		bl, br := b.Subdivide()
		intersectCubicsRec(al, a0, am, bl, b0, bm, accuracy, depth+1, out)
		intersectCubicsRec(al, a0, am, br, bm, b1, accuracy, depth+1, out)
		intersectCubicsRec(ar, am, a1, bl, b0, bm, accuracy, depth+1, out)
		intersectCubicsRec(ar, am, a1, br, bm, b1, accuracy, depth+1, out)
	}
}

// pathCrossing is a crossing of two chains of cubics, identifying the cubic
// and the parameter on each.
type pathCrossing struct {
	ia, ib int
	ta, tb float64
}

// intersectChains returns the crossings between two chains of cubics.
func intersectChains(a, b []CubicBez, accuracy float64) []pathCrossing {
	var out []pathCrossing
	for ia, ca := range a {
		for ib, cb := range b {
			for _, x := range intersectCubics(ca, cb, accuracy) {
				p := ca.Eval(x.ta)
				dup := false
				for _, o := range out {
					if a[o.ia].Eval(o.ta).Distance(p) <= accuracy {
						dup = true
						break
					}
				}
				if !dup {
					out = append(out, pathCrossing{ia: ia, ib: ib, ta: x.ta, tb: x.tb})
				}
			}
		}
	}
	return out
}
