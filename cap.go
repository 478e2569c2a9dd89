package powerstroke

import (
	"log/slog"
	"math"
)

// CapType defines the shape drawn at the ends of an open path.
type CapType int

const (
	// No cap. The width is pinned to zero at the end, so both sides meet on
	// the path.
	ZeroWidthCap CapType = iota
	// A half circle.
	RoundCap
	// A half square.
	SquareCap
	// A straight line across the end.
	ButtCap
	// A point half the width beyond the end.
	PeakCap
)

var capNames = []string{
	ZeroWidthCap: "zerowidth",
	RoundCap:     "round",
	SquareCap:    "square",
	ButtCap:      "butt",
	PeakCap:      "peak",
}

func (c CapType) String() string {
	return enumString(capNames, "CapType", c)
}

// ParseCapType parses the attribute spelling of a cap type, as returned by
// [CapType.String].
func ParseCapType(s string) (CapType, error) {
	return parseEnum[CapType](capNames, "cap type", s)
}

func (c CapType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CapType) UnmarshalText(b []byte) error {
	v, err := ParseCapType(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// capEnd returns the cubics leading from one side of the stroke, at from, to
// the other, at to, around an end whose outward direction is tangent.
func capEnd(cap CapType, from, to Point, tangent Vec2, tolerance float64) []CubicBez {
	r := 0.5 * from.Distance(to)
	rt := tangent.Mul(r)
	switch cap {
	case ZeroWidthCap:
		if from.isNear(to, tolerance) {
			return nil
		}
		return []CubicBez{Line{from, to}.Cubic()}
	case SquareCap:
		a := from.Translate(rt)
		b := to.Translate(rt)
		return []CubicBez{Line{from, a}.Cubic(), Line{a, b}.Cubic(), Line{b, to}.Cubic()}
	case PeakCap:
		peak := from.Midpoint(to).Translate(rt)
		return []CubicBez{Line{from, peak}.Cubic(), Line{peak, to}.Cubic()}
	case RoundCap:
		arc, ok := NewArcFromSVG(from, to, ArcParams{
			Radii:     Vec(r, r),
			XRotation: math.Pi / 2,
			Sweep:     tangent.Cross(to.Sub(from)) > 0,
		})
		if !ok {
			Logger().Debug("round cap construction failed, using butt cap",
				slog.Any("from", from), slog.Any("to", to))
			return []CubicBez{Line{from, to}.Cubic()}
		}
		return snapEnds(arc.Cubics(tolerance), from, to)
	default:
		return []CubicBez{Line{from, to}.Cubic()}
	}
}
