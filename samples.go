package powerstroke

import (
	"fmt"
	"math"
	"slices"
)

// OffsetSample is a width control point. Pos is a position along the path,
// in units that depend on the format version (see [Options.FormatVersion]);
// Width is the half width of the stroke at that position. Positive widths
// offset to the left of the path direction.
type OffsetSample struct {
	Pos   float64
	Width float64
}

func (s OffsetSample) String() string {
	return fmt.Sprintf("(%g, %g)", s.Pos, s.Width)
}

func (s OffsetSample) point() Point { return Pt(s.Pos, s.Width) }

// Samples is an ordered list of offset samples. The order is the edit order;
// positions need not be unique or increasing.
type Samples []OffsetSample

// Set replaces all samples.
func (s *Samples) Set(samples []OffsetSample) {
	*s = append((*s)[:0], samples...)
}

// Add appends a sample.
func (s *Samples) Add(sample OffsetSample) {
	*s = append(*s, sample)
}

// Remove deletes the sample at index i. It returns false if i is out of
// range.
func (s *Samples) Remove(i int) bool {
	if i < 0 || i >= len(*s) {
		return false
	}
	*s = slices.Delete(*s, i, i+1)
	return true
}

// Sorted returns a copy of the samples, stably sorted by position.
func (s Samples) Sorted() Samples {
	out := slices.Clone(s)
	slices.SortStableFunc(out, func(a, b OffsetSample) int {
		switch {
		case a.Pos < b.Pos:
			return -1
		case a.Pos > b.Pos:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Scaled returns a copy of the samples with every width multiplied by f.
func (s Samples) Scaled(f float64) Samples {
	out := slices.Clone(s)
	for i := range out {
		out[i].Width *= f
	}
	return out
}

// Reproject moves the samples from path from onto path to, which is an
// edited version of it. Positions are interpreted according to
// formatVersion.
//
// If to has fewer segments than from, positions are scaled by the ratio of
// segment counts. Otherwise the point each sample marks on the canvas, the
// base point offset by the width along the normal, is projected onto the
// nearest point of to; the width is kept. Samples whose projection is not a
// number are dropped.
func (s Samples) Reproject(from, to Piecewise, formatVersion string) Samples {
	if len(s) == 0 || from.Len() == 0 || to.Len() == 0 {
		return slices.Clone(s)
	}
	legacy := isLegacyPositions(formatVersion)
	fromLen := from.Arclen(DefaultAccuracy)
	toLen := to.Arclen(DefaultAccuracy)
	out := make(Samples, 0, len(s))
	for _, sample := range s {
		t := positionToTime(from, sample.Pos, legacy, fromLen)
		var nt float64
		if to.Len() < from.Len() {
			nt = t * float64(to.Len()) / float64(from.Len())
		} else {
			knot := from.Eval(t).Translate(from.Normal(t).Mul(sample.Width))
			nt, _ = to.Nearest(knot, DefaultAccuracy)
		}
		pos := timeToPosition(to, nt, legacy, toLen)
		if math.IsNaN(pos) {
			continue
		}
		out = append(out, OffsetSample{Pos: pos, Width: sample.Width})
	}
	return out
}

// isLegacyPositions reports whether sample positions of the given format
// version are in segment time rather than fractions of the arc length.
func isLegacyPositions(formatVersion string) bool {
	return formatVersion < "1.3"
}

// isLegacyBridge reports whether closed paths of the given format version
// use the periodic wrap instead of a bridging width.
func isLegacyBridge(formatVersion string) bool {
	return formatVersion < "1"
}

// positionToTime converts a sample position to a global parameter of pw.
// totalLen is the arc length of pw; it is only used for current positions.
func positionToTime(pw Piecewise, pos float64, legacy bool, totalLen float64) float64 {
	lo, hi := pw.Domain()
	if legacy {
		return min(max(pos, lo), hi)
	}
	return pw.TimeAtArclen(min(max(pos, 0), 1)*totalLen, DefaultAccuracy)
}

// timeToPosition is the inverse of positionToTime.
func timeToPosition(pw Piecewise, t float64, legacy bool, totalLen float64) float64 {
	if legacy {
		return t
	}
	if totalLen == 0 {
		return math.NaN()
	}
	return pw.ArclenAtTime(t, DefaultAccuracy) / totalLen
}
