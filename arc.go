package powerstroke

import "math"

// Arc is a single elliptical arc segment in center parameterization.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// ArcParams are the SVG endpoint parameters of an elliptical arc. The start
// point is the current point of the path and the end point is stored in the
// [PathElement].
type ArcParams struct {
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

// NewArcFromSVG converts an SVG endpoint arc into center parameterization.
//
// Radii that are too small to span the two points are scaled up, as
// mandated by the SVG specification. It returns false if the arc is a
// straight line: either radius is (nearly) zero or the end points
// coincide.
func NewArcFromSVG(from, to Point, params ArcParams) (Arc, bool) {
	rx := math.Abs(params.Radii.X)
	ry := math.Abs(params.Radii.Y)
	if rx <= 1e-5 || ry <= 1e-5 || from == to {
		return Arc{}, false
	}
	xr := math.Mod(params.XRotation, 2*math.Pi)
	sinPhi, cosPhi := math.Sincos(xr)
	hdX := (from.X - to.X) * 0.5
	hdY := (from.Y - to.Y) * 0.5
	hsX := (from.X + to.X) * 0.5
	hsY := (from.Y + to.Y) * 0.5
	p := Vec2{
		X: cosPhi*hdX + sinPhi*hdY,
		Y: -sinPhi*hdX + cosPhi*hdY,
	}

	if rf := p.X*p.X/(rx*rx) + p.Y*p.Y/(ry*ry); rf > 1.0 {
		rx *= math.Sqrt(rf)
		ry *= math.Sqrt(rf)
	}
	rxry := rx * ry
	rxpy := rx * p.Y
	rypx := ry * p.X
	sumOfSq := rxpy*rxpy + rypx*rypx

	signCoe := 1.0
	if params.LargeArc == params.Sweep {
		signCoe = -1.0
	}
	coe := signCoe * math.Sqrt(math.Abs((rxry*rxry-sumOfSq)/sumOfSq))
	tcx := coe * rxpy / ry
	tcy := -coe * rypx / rx

	center := Pt(
		cosPhi*tcx-sinPhi*tcy+hsX,
		sinPhi*tcx+cosPhi*tcy+hsY,
	)
	startV := Vec((p.X-tcx)/rx, (p.Y-tcy)/ry)
	endV := Vec((-p.X-tcx)/rx, (-p.Y-tcy)/ry)
	startAngle := startV.Angle()
	sweepAngle := math.Mod(endV.Angle()-startAngle, 2*math.Pi)
	if params.Sweep && sweepAngle < 0 {
		sweepAngle += 2 * math.Pi
	} else if !params.Sweep && sweepAngle > 0 {
		sweepAngle -= 2 * math.Pi
	}
	return Arc{
		Center:     center,
		Radii:      Vec(rx, ry),
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  params.XRotation,
	}, true
}

// Start returns the point at the start angle.
func (a Arc) Start() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle))
}

// End returns the point at the end of the sweep.
func (a Arc) End() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle+a.SweepAngle))
}

// Cubics approximates the arc with cubic Béziers within tolerance.
func (a Arc) Cubics(tolerance float64) []CubicBez {
	scaledError := max(a.Radii.X, a.Radii.Y) / tolerance
	// Number of subdivisions per ellipse based on error tolerance.
	// Note: this may slightly underestimate the error for quadrants.
	nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
	n := int(math.Ceil(nError * math.Abs(a.SweepAngle) * (1.0 / (2.0 * math.Pi))))
	if n == 0 {
		return nil
	}
	angleStep := a.SweepAngle / float64(n)
	armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.SweepAngle)
	angle0 := a.StartAngle
	p0 := sampleEllipse(a.Radii, a.XRotation, angle0)

	out := make([]CubicBez, 0, n)
	for range n {
		angle1 := angle0 + angleStep
		p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
		p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
		p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))
		out = append(out, CubicBez{
			a.Center.Translate(p0),
			a.Center.Translate(p1),
			a.Center.Translate(p2),
			a.Center.Translate(p3),
		})
		angle0 = angle1
		p0 = p3
	}
	return out
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and an
// angle, and returns the offset of that point from the center.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return rotateVec(Vec2{radii.X * cos, radii.Y * sin}, xRotation)
}

// rotateVec rotates v about the origin by angle radians.
func rotateVec(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
