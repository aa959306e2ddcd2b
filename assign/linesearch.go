package assign

import (
	"math"

	"github.com/katalvlaran/wardrop/network"
)

// Tolerances of the one-dimensional step-size searches. The main loop's
// convergence depends on consistent step sizes, so the link-based search is
// driven to a much tighter tolerance than the path-based one.
const (
	// fwTolerance bounds the bisection interval for the FW/CFW step size.
	fwTolerance = 1e-10

	// gpTolerance bounds the golden-section interval for the GP-E step size.
	gpTolerance = 1e-3

	// minGPStep replaces a degenerate zero step from the GP-E search, so the
	// gradient projection always makes progress.
	minGPStep = 1e-2
)

// goldenRatio is (√5 − 1)/2, the interval reduction factor of the
// golden-section search.
var goldenRatio = (math.Sqrt(5) - 1) / 2

// fwStepSize solves argmin over alpha in [0,1] of the Beckmann objective
// Σ_links ∫cost along the direction d = x_bar − flow.
//
// The objective's derivative is φ'(alpha) = Σ d_l · cost_l(flow_l + alpha·d_l),
// non-decreasing in alpha because every cost function is non-decreasing in
// flow — the objective is convex. Bisection on φ' is therefore exact up to
// the interval tolerance, with the boundary cases handled explicitly:
//
//   - φ'(0) ≥ 0: the current flow already minimizes along d → alpha = 0.
//   - φ'(1) ≤ 0: the auxiliary flow is still downhill → alpha = 1.
//
// Complexity: O(E · log(1/fwTolerance)).
func fwStepSize(net *network.Network, xbar map[network.LinkKey]float64, opts *Options) float64 {
	links := net.Links()

	// φ'(alpha) evaluated in one pass over the links.
	deriv := func(alpha float64) float64 {
		var sum float64
		for _, link := range links {
			d := xbar[link.Key()] - link.Flow
			if d == 0 {
				continue
			}
			sum += d * opts.Cost(opts.SystemOptimal,
				link.FreeFlowTime, link.Alpha, link.Flow+alpha*d, link.Capacity,
				link.Beta, link.Length, link.SpeedLimit)
		}

		return sum
	}

	if deriv(0) >= 0 {
		return 0
	}
	if deriv(1) <= 0 {
		return 1
	}

	lo, hi := 0.0, 1.0
	for hi-lo > fwTolerance {
		mid := (lo + hi) / 2
		if deriv(mid) > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}

	return (lo + hi) / 2
}

// goldenSection minimizes the unimodal objective f over [lo, hi] down to the
// given interval tolerance and returns the bracket midpoint.
//
// Used for the GP-E objective, which the zero-flow floor makes only
// piecewise-smooth: a derivative-free search stays robust where bisection on
// a derivative would not.
//
// Complexity: O(log((hi−lo)/tol)) objective evaluations.
func goldenSection(f func(float64) float64, lo, hi, tol float64) float64 {
	a, b := lo, hi
	x1 := b - goldenRatio*(b-a)
	x2 := a + goldenRatio*(b-a)
	f1, f2 := f(x1), f(x2)

	for b-a > tol {
		if f1 > f2 {
			a = x1
			x1, f1 = x2, f2
			x2 = a + goldenRatio*(b-a)
			f2 = f(x2)
		} else {
			b = x2
			x2, f2 = x1, f1
			x1 = b - goldenRatio*(b-a)
			f1 = f(x1)
		}
	}

	return (a + b) / 2
}
