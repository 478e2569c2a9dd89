// Package powerstroke converts paths into the outlines of strokes whose width
// varies along the path.
//
// The width is given by a list of [OffsetSample] values, each a position
// along the path and the half width there. [Stroke] interpolates them into a
// width profile, offsets the path by that profile on both sides, repairs the
// corners where the offset curves separate or overlap, and closes the ends
// with caps. The result is a [BezPath] that can be filled to draw the stroke.
//
// # Pipeline
//
// Every subpath goes through the same stages:
//
//   - [Normalize] converts lines, quadratic Béziers, cubic Béziers and
//     elliptical arcs into a [Piecewise] chain of cubic Béziers. Segment k
//     of the chain covers path time [k, k+1].
//   - The samples are sorted and scaled according to [Options], and their
//     positions converted to path time.
//   - An [Interpolator] builds the width profile through the samples. Open
//     subpaths get extra samples at both ends; closed ones get a width at
//     the seam so that the profile wraps around without a jump.
//   - Both offset curves are computed from the base curve, its normals and
//     the profile, and approximated by cubics.
//   - Each offset curve is walked piece by piece. Gaps at outside corners
//     are bridged with a join of the configured [JoinType]; overlaps at
//     inside corners are trimmed back to their crossing.
//   - Open subpaths get caps of the configured [CapType].
//
// Every join construction that fails, for example because tangents are
// parallel or a miter is too long, falls back to a simpler one, ending in a
// bevel. Stroke therefore never fails; if a stage produces nothing at all,
// the input path is returned unchanged.
//
// # Coordinates
//
// Positive widths offset to the left of the path direction in a coordinate
// system where y grows upwards, that is, along the tangent rotated by a
// quarter turn counter-clockwise (see [Vec2.Rot90]).
//
// # Logging
//
// The package logs through [log/slog]. It is silent until [SetLogger] is
// called.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [On the parameterization of Catmull-Rom curves] by Yuksel, Schaefer and Keyser
//   - [From Spiral to Spline: Optimal Techniques in Interactive Curve Design] by Raph Levien
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [On the parameterization of Catmull-Rom curves]: https://doi.org/10.1145/1629255.1629262
// [From Spiral to Spline: Optimal Techniques in Interactive Curve Design]: https://levien.com/phd/thesis.pdf
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package powerstroke
