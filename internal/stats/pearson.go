// Package stats provides the statistical primitives used by the analysis engine.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SkipReason explains why a correlation could not be computed for a factor.
// A skip is expected behavior on sparse or degenerate data, not an error.
type SkipReason int

const (
	// SkipNone means the correlation was computed.
	SkipNone SkipReason = iota
	// SkipInsufficientSample means there were fewer paired observations than required.
	SkipInsufficientSample
	// SkipZeroVariance means one of the series was constant.
	SkipZeroVariance
	// SkipNonFinite means the computation produced NaN or Inf.
	SkipNonFinite
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipInsufficientSample:
		return "insufficient-sample"
	case SkipZeroVariance:
		return "zero-variance"
	case SkipNonFinite:
		return "non-finite"
	default:
		return "unknown"
	}
}

// Correlation holds a correlation coefficient with its two-sided p-value
// and the paired sample size it was computed from.
type Correlation struct {
	R float64
	P float64
	N int
}

// Pearson computes the Pearson correlation between two equal-length series
// and a two-sided p-value from the Student's t distribution with n-2 degrees
// of freedom. Returns a non-none SkipReason instead of an error when the
// input cannot support the test.
func Pearson(x, y []float64, minSamples int) (Correlation, SkipReason) {
	n := len(x)
	if n != len(y) {
		return Correlation{}, SkipInsufficientSample
	}
	// The t approximation needs at least 3 points regardless of the caller's minimum.
	if n < minSamples || n < 3 {
		return Correlation{}, SkipInsufficientSample
	}

	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return Correlation{}, SkipZeroVariance
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Correlation{}, SkipNonFinite
	}

	// Rounding can push |r| marginally past 1.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	p := pValue(r, n)
	if math.IsNaN(p) {
		return Correlation{}, SkipNonFinite
	}

	return Correlation{R: r, P: p, N: n}, SkipNone
}

// PointBiserial computes the point-biserial correlation between a boolean
// series (coded 0/1) and a continuous series. A single-valued boolean series
// skips with SkipZeroVariance.
func PointBiserial(b []bool, y []float64, minSamples int) (Correlation, SkipReason) {
	x := make([]float64, len(b))
	for i, v := range b {
		if v {
			x[i] = 1
		}
	}
	return Pearson(x, y, minSamples)
}

// pValue returns the two-sided p-value for a Pearson r at sample size n.
func pValue(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0
	}

	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	p := 2 * dist.CDF(-math.Abs(t))

	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
