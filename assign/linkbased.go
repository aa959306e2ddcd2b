package assign

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/wardrop/network"
)

// conjugateBetaCap keeps the conjugate coefficient strictly below 1 so the
// blended direction never collapses onto the previous one.
const conjugateBetaCap = 1 - 1e-9

// runLinkBased is the MSA / FW / CFW iteration:
//
//	Reset → { load auxiliary flow → compute step size → blend flow →
//	          update cost → compute gap } → Converged/MaxIter/MaxTime.
//
// Per iteration:
//
//	(a) All-or-nothing load produces the auxiliary flow x_bar.
//	(b) Step size alpha ∈ [0,1]: MSA uses 2/(k+1); FW solves the Beckmann
//	    line search; CFW first replaces x_bar with the conjugate direction's
//	    implied auxiliary flow, then solves the same line search. The first
//	    iteration always takes alpha = 1 (flows start at zero, the AON load
//	    is adopted wholesale).
//	(c) Every link blends: flow ← alpha·x_bar + (1−alpha)·flow.
//	(d) Costs are recomputed from the cost function.
//	(e) SPTT is recomputed without building a new auxiliary flow; the
//	    relative gap is TSTT/SPTT − 1.
//
// The caller (Run) has already validated options and reset the flows.
func runLinkBased(net *network.Network, opts *Options) (Result, error) {
	origins := net.OriginZones()
	t := newTracker(opts, origins)
	links := net.Links()

	// Previous-iteration state feeding the CFW conjugate direction.
	var (
		prevAlpha float64
		dCFW      map[network.LinkKey]float64
	)

	for !t.converged() {
		t.iteration++

		// (a) Auxiliary flow via all-or-nothing loading.
		_, xbar, err := loadAON(net, origins, true)
		if err != nil {
			return t.result(net), err
		}

		// CFW: replace the plain FW direction with the conjugate blend.
		if opts.Algorithm == CFW {
			dFW := make(map[network.LinkKey]float64, len(links))
			for _, link := range links {
				dFW[link.Key()] = xbar[link.Key()] - link.Flow
			}

			if t.iteration == 1 {
				dCFW = dFW
			} else {
				// Deflate the previous conjugate direction by the step taken.
				dBar := make(map[network.LinkKey]float64, len(links))
				for key, d := range dCFW {
					dBar[key] = (1 - prevAlpha) * d
				}

				beta := conjugateBeta(links, dFW, dBar, opts)
				dCFW = make(map[network.LinkKey]float64, len(links))
				for key, d := range dFW {
					dCFW[key] = d + beta*(dBar[key]-d)
				}
				for _, link := range links {
					xbar[link.Key()] = dCFW[link.Key()] + link.Flow
				}
			}
		}

		// (b) Step size.
		var alpha float64
		switch {
		case opts.Algorithm == MSA || t.iteration == 1:
			alpha = 2 / float64(t.iteration+1)
		default:
			alpha = fwStepSize(net, xbar, opts)
		}
		prevAlpha = alpha

		if opts.Verbose {
			opts.Logger.Info("step size selected",
				zap.Int("iteration", t.iteration),
				zap.Float64("alpha", alpha))
		}

		// (c) Blend the auxiliary flow into the link flows.
		for _, link := range links {
			link.Flow = alpha*xbar[link.Key()] + (1-alpha)*link.Flow
		}

		// (d) Costs follow the new flows immediately.
		updateCosts(net, opts)

		// (e) Gap bookkeeping and termination.
		if err = t.observeGap(net); err != nil {
			return t.result(net), err
		}
		if !t.converged() && t.exhausted() {
			break
		}
	}

	return t.result(net), nil
}

// conjugateBeta computes the CFW blending coefficient from derivative
// weighted inner products over all links:
//
//	beta = Σ d_bar·d_FW·cost' / Σ d_bar·(d_FW − d_bar)·cost'
//
// clamped to [0, conjugateBetaCap]; a zero denominator yields beta = 0
// (explicit fallback, never a division error).
func conjugateBeta(links []*network.Link, dFW, dBar map[network.LinkKey]float64, opts *Options) float64 {
	var num, den float64
	for _, link := range links {
		deriv := opts.CostDerivative(opts.SystemOptimal,
			link.FreeFlowTime, link.Alpha, link.Flow, link.Capacity,
			link.Beta, link.Length, link.SpeedLimit)

		key := link.Key()
		num += dBar[key] * dFW[key] * deriv
		den += dBar[key] * (dFW[key] - dBar[key]) * deriv
	}

	if den == 0 {
		return 0
	}
	beta := num / den
	if beta > conjugateBetaCap {
		return conjugateBetaCap
	}
	if beta < 0 {
		return 0
	}

	return beta
}
