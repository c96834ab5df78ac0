// Package regression implements ordinary least-squares fitting over
// projected gene points.
package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// PercentScale converts fractional modification rates to percent units
// before fitting. Slope and intercept magnitudes depend on the scale;
// RSquared does not.
const PercentScale = 100.0

// EmptyInputError reports a fit attempted with no finite points.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "regression requires at least one finite point"
}

// DegenerateFitError reports input whose variance leaves the fit
// undefined: constant x makes the slope undefined, constant y with
// nonzero residuals makes RSquared undefined.
type DegenerateFitError struct {
	Axis string // "x" or "y"
}

func (e *DegenerateFitError) Error() string {
	return fmt.Sprintf("degenerate regression input: zero variance in %s", e.Axis)
}

// FitResult holds an ordinary least-squares fit over n points.
type FitResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	PValue    float64 `json:"p_value"` // Two-sided test of slope != 0
	StdErr    float64 `json:"std_err"` // Standard error of the slope
	N         int     `json:"n"`       // Finite points actually fit
}

// Fit computes the least-squares line over the points, with each rate
// multiplied by xScale before the sums. Pairs with a NaN or infinite
// coordinate are skipped; N counts only the points that were fit.
//
// Results are deterministic for identical input order. Reordering the
// input may change the low bits through floating-point summation order.
func Fit(points []ProjectedPoint, xScale float64) (FitResult, error) {
	var (
		n                        int
		sumX, sumY, sumXY, sumX2 float64
	)
	for _, p := range points {
		x := p.Rate * xScale
		y := p.Expression
		if !finitePair(x, y) {
			continue
		}
		n++
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	if n == 0 {
		return FitResult{}, &EmptyInputError{}
	}

	den := float64(n)*sumX2 - sumX*sumX
	if den == 0 {
		return FitResult{}, &DegenerateFitError{Axis: "x"}
	}

	slope := (float64(n)*sumXY - sumX*sumY) / den
	intercept := (sumY - slope*sumX) / float64(n)

	meanY := sumY / float64(n)
	var ssRes, ssTot float64
	for _, p := range points {
		x := p.Rate * xScale
		y := p.Expression
		if !finitePair(x, y) {
			continue
		}
		pred := slope*x + intercept
		ssRes += (y - pred) * (y - pred)
		ssTot += (y - meanY) * (y - meanY)
	}

	result := FitResult{Slope: slope, Intercept: intercept, N: n}
	switch {
	case ssTot == 0 && ssRes == 0:
		// Constant y perfectly explained by a flat line.
		result.RSquared = 1
	case ssTot == 0:
		return FitResult{}, &DegenerateFitError{Axis: "y"}
	default:
		result.RSquared = 1 - ssRes/ssTot
	}

	result.StdErr, result.PValue = slopeSignificance(slope, ssRes, den/float64(n), n)
	return result, nil
}

// slopeSignificance computes the standard error of the slope and the
// two-sided p-value for slope != 0 under Student's t with n-2 degrees
// of freedom.
func slopeSignificance(slope, ssRes, sxx float64, n int) (stdErr, pValue float64) {
	df := n - 2
	if df <= 0 {
		// Two points determine the line exactly; nothing to test.
		return 0, 1
	}
	stdErr = math.Sqrt(ssRes / float64(df) / sxx)
	if stdErr == 0 {
		if slope != 0 {
			return 0, 0
		}
		return 0, 1
	}
	t := slope / stdErr
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	pValue = 2 * dist.CDF(-math.Abs(t))
	return stdErr, pValue
}

// LinePoint is one endpoint of a rendered fit line, in scaled-x space.
type LinePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineEndpoints evaluates the fitted line at the scaled-x extrema of
// the same finite point set Fit uses. It is a rendering aid only; the
// statistical contract lives in Fit.
func LineEndpoints(points []ProjectedPoint, slope, intercept, xScale float64) ([2]LinePoint, error) {
	first := true
	var xMin, xMax float64
	for _, p := range points {
		x := p.Rate * xScale
		if !finitePair(x, p.Expression) {
			continue
		}
		if first || x < xMin {
			xMin = x
		}
		if first || x > xMax {
			xMax = x
		}
		first = false
	}
	if first {
		return [2]LinePoint{}, &EmptyInputError{}
	}
	return [2]LinePoint{
		{X: xMin, Y: slope*xMin + intercept},
		{X: xMax, Y: slope*xMax + intercept},
	}, nil
}

func finitePair(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
