package powerstroke

import (
	"math"
	"sort"
	"testing"
)

func checkRoots(t *testing.T, roots, expected []float64) {
	t.Helper()
	if len(roots) != len(expected) {
		t.Fatalf("got %d roots, expected %d", len(roots), len(expected))
	}
	const epsilon = 1e-12
	sort.Float64s(roots)
	sort.Float64s(expected)
	for i := range roots {
		if math.Abs(roots[i]-expected[i]) > epsilon {
			t.Errorf("root %d is %v but we expected %v", i, roots[i], expected[i])
		}
	}
}

func TestSolveCubic(t *testing.T) {
	slice := func(roots [3]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveCubic(-5, 0, 0, 1)), []float64{math.Cbrt(5)})
	checkRoots(t, slice(SolveCubic(0.0, -1.0, 0.0, 1.0)), []float64{-1.0, 0.0, 1.0})
	checkRoots(t, slice(SolveCubic(-2.0, -3.0, 0.0, 1.0)), []float64{-1.0, 2.0})
	// Degenerates to a line.
	checkRoots(t, slice(SolveCubic(-1.0, 2.0, 0.0, 0.0)), []float64{0.5})
}

func TestSolveQuadratic(t *testing.T) {
	slice := func(roots [2]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveQuadratic(-5.0, 0.0, 1.0)), []float64{-math.Sqrt(5), math.Sqrt(5)})
	checkRoots(t, slice(SolveQuadratic(5.0, 0.0, 1.0)), []float64{})
	checkRoots(t, slice(SolveQuadratic(5.0, 1.0, 0.0)), []float64{-5.0})
	checkRoots(t, slice(SolveQuadratic(1.0, 2.0, 1.0)), []float64{-1.0})
}

func TestFindRoot(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		a, b float64
		want float64
		ok   bool
	}{
		{"increasing", func(x float64) float64 { return x*x - 2 }, 0, 2, math.Sqrt2, true},
		{"decreasing", func(x float64) float64 { return 2 - x*x }, 0, 2, math.Sqrt2, true},
		{"root at start", func(x float64) float64 { return x }, 0, 1, 0, true},
		{"no sign change", func(x float64) float64 { return x + 1 }, 0, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findRoot(tt.f, tt.a, tt.b, tt.f(tt.a), tt.f(tt.b), 1e-12)
			if ok != tt.ok {
				t.Fatalf("got ok = %t, want %t", ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got root %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntegrate(t *testing.T) {
	// The unit tangent of a circle integrates to the chord.
	got := integrate(VecFromAngle, 0, math.Pi/2)
	want := Vec(1, 1)
	if got.Sub(want).Hypot() > 1e-12 {
		t.Errorf("got %s, want %s", got, want)
	}
}
