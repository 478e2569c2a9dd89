package powerstroke

import (
	"fmt"
	"slices"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic bezier using the current location and the two points.
	QuadToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	// Draw an elliptical arc from the current location to the point, using
	// the element's arc parameters.
	ArcToKind
	// Close off the path.
	ClosePathKind
)

// PathElement is the element of a Bézier path.
//
// A valid path has MoveTo at the beginning of each subpath. For ArcTo, P0 is
// the end point and Arc holds the remaining SVG arc parameters.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
	Arc  ArcParams
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind:
		return fmt.Sprintf("MoveTo(%s)", el.P0)
	case LineToKind:
		return fmt.Sprintf("LineTo(%s)", el.P0)
	case QuadToKind:
		return fmt.Sprintf("QuadTo(%s, %s)", el.P0, el.P1)
	case CubicToKind:
		return fmt.Sprintf("CubicTo(%s, %s, %s)", el.P0, el.P1, el.P2)
	case ArcToKind:
		return fmt.Sprintf("ArcTo(%s, %g, %t, %t, %s)",
			el.Arc.Radii, el.Arc.XRotation, el.Arc.LargeArc, el.Arc.Sweep, el.P0)
	case ClosePathKind:
		return "ClosePath()"
	default:
		return "InvalidPathElement"
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

// ArcTo returns an SVG-style elliptical arc element ending at pt.
func ArcTo(radii Vec2, xRotation float64, largeArc, sweep bool, pt Point) PathElement {
	return PathElement{
		Kind: ArcToKind,
		P0:   pt,
		Arc: ArcParams{
			Radii:     radii,
			XRotation: xRotation,
			LargeArc:  largeArc,
			Sweep:     sweep,
		},
	}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// EndPoint returns the end point of the path element, or false if none exists. It exists
// for all kinds except for [ClosePathKind].
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind, ArcToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

// BezPath is a path made of lines, Bézier curves and elliptical arcs, split
// into subpaths by MoveTo elements.
type BezPath []PathElement

// Push adds an element to the path.
func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

// MoveTo pushes a "move to" element onto the path.
func (p *BezPath) MoveTo(pt Point) { p.Push(MoveTo(pt)) }

// LineTo pushes a "line to" element onto the path.
func (p *BezPath) LineTo(pt Point) { p.Push(LineTo(pt)) }

// QuadTo pushes a "quad to" element onto the path.
func (p *BezPath) QuadTo(p1, p2 Point) { p.Push(QuadTo(p1, p2)) }

// CubicTo pushes a "curve to" element onto the path.
func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }

// ArcTo pushes an elliptical arc element onto the path.
func (p *BezPath) ArcTo(radii Vec2, xRotation float64, largeArc, sweep bool, pt Point) {
	p.Push(ArcTo(radii, xRotation, largeArc, sweep, pt))
}

// ClosePath pushes a "close path" element onto the path.
func (p *BezPath) ClosePath() { p.Push(ClosePath()) }

// Clone returns a copy of the path that shares no memory with p.
func (p BezPath) Clone() BezPath {
	return slices.Clone(p)
}

// SubpathCount returns the number of subpaths that contain at least one
// drawing element.
func (p BezPath) SubpathCount() int {
	n := 0
	for _, sp := range p.subpaths() {
		if len(sp.els) > 0 {
			n++
		}
	}
	return n
}

// SignedArea returns the signed area enclosed by the path. Open subpaths are
// implicitly closed.
func (p BezPath) SignedArea() float64 {
	var area float64
	for _, pw := range Normalize(p, DefaultTolerance) {
		for _, c := range pw.Segs {
			area += c.SignedArea()
		}
		if !pw.Closed && len(pw.Segs) > 0 {
			area += Line{pw.Segs[len(pw.Segs)-1].P3, pw.Segs[0].P0}.Cubic().SignedArea()
		}
	}
	return area
}

// BoundingBox returns the tight bounding box of the path, or false for a
// path without segments.
func (p BezPath) BoundingBox() (Rect, bool) {
	var r Rect
	found := false
	for _, pw := range Normalize(p, DefaultTolerance) {
		for _, c := range pw.Segs {
			bb := c.BoundingBox()
			if !found {
				r, found = bb, true
			} else {
				r = r.Union(bb)
			}
		}
	}
	return r, found
}

// subpath is one subpath of a BezPath.
type subpath struct {
	start Point
	// els contains only drawing elements.
	els    []PathElement
	closed bool
	// raw contains the elements as they appear in the input, including
	// MoveTo and ClosePath.
	raw BezPath
}

// subpaths splits the path. A drawing element following a ClosePath starts
// a new subpath at the start of the closed one; a path that does not begin
// with MoveTo starts at the origin.
func (p BezPath) subpaths() []subpath {
	var out []subpath
	var cur *subpath
	var start Point
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}
	for _, el := range p {
		switch el.Kind {
		case MoveToKind:
			flush()
			start = el.P0
			cur = &subpath{start: start, raw: BezPath{el}}
		case ClosePathKind:
			if cur == nil {
				continue
			}
			cur.closed = true
			cur.raw = append(cur.raw, el)
			flush()
		case LineToKind, QuadToKind, CubicToKind, ArcToKind:
			if cur == nil {
				cur = &subpath{start: start, raw: BezPath{MoveTo(start)}}
			}
			cur.els = append(cur.els, el)
			cur.raw = append(cur.raw, el)
		}
	}
	flush()
	return out
}
