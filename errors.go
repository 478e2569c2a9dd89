package powerstroke

import "errors"

// Errors of the join constructions. They never leave the package; every one
// of them is answered by a simpler join.
var (
	errNoTangentCrossing = errors.New("tangent lines do not cross ahead of the corner")
	errRadiusTooLarge    = errors.New("join radius too large")
	errMiterLimit        = errors.New("miter exceeds limit")
	errNoCrossing        = errors.New("extrapolated curves do not cross")
	errArcSweep          = errors.New("arc sweeps more than half a turn")
	errOutsideBounds     = errors.New("join point outside of the neighbourhood")
	errSpiroSolve        = errors.New("spiro spline did not converge")
)

// errEmptyStage is returned by a stroke stage that produced no geometry. It
// makes the stroke return its input unchanged.
var errEmptyStage = errors.New("stroke stage produced no geometry")
