package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TerminalVelocity estimates the steady-state velocity as the mean of
// the last window samples.
func TerminalVelocity(vs []float64, window int) float64 {
	if len(vs) == 0 {
		return 0
	}
	if window <= 0 || window > len(vs) {
		window = len(vs)
	}
	return stat.Mean(vs[len(vs)-window:], nil)
}

// SettlingIndex returns the first index from which every successive
// velocity delta stays below tol, or -1 if the trace never settles.
func SettlingIndex(vs []float64, tol float64) int {
	if len(vs) < 2 {
		return -1
	}
	settled := len(vs) - 1
	for i := len(vs) - 1; i > 0; i-- {
		if math.Abs(vs[i]-vs[i-1]) >= tol {
			break
		}
		settled = i - 1
	}
	if settled == len(vs)-1 {
		return -1
	}
	return settled
}

// NonDecreasing reports whether the trace never moves backward. Used to
// check monotonic forward motion of recorded positions.
func NonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}

// Peak returns the largest value in the trace.
func Peak(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return floats.Max(vs)
}

// MaxDelta returns the largest successive-sample change in magnitude.
func MaxDelta(vs []float64) float64 {
	maxDelta := 0.0
	for i := 1; i < len(vs); i++ {
		if d := math.Abs(vs[i] - vs[i-1]); d > maxDelta {
			maxDelta = d
		}
	}
	return maxDelta
}
