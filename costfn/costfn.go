package costfn

import "math"

// BPR is the Bureau of Public Roads volume-delay function:
//
//	cost = fft · (1 + alpha · (flow/capacity)^beta)
//
// The system-optimal variant returns the marginal cost
//
//	cost = fft · (1 + alpha · (flow/capacity)^beta · (beta+1))
//
// which is d(flow·cost)/d(flow) for the BPR form, so routing against it
// minimizes total system travel time.
//
// Links with capacity below CapacityEps are effectively closed: BPR returns
// MaxCost instead of dividing by near-zero.
func BPR(optimal bool, fft, alpha, flow, capacity, beta, length, maxSpeed float64) float64 {
	if capacity < CapacityEps {
		return MaxCost
	}
	congestion := alpha * math.Pow(flow/capacity, beta)
	if optimal {
		return fft * (1 + congestion*(beta+1))
	}

	return fft * (1 + congestion)
}

// BPRDerivative is the analytic derivative of BPR with respect to flow:
//
//	d cost/d flow = fft · alpha · beta · (flow/capacity)^(beta-1) / capacity
//
// It is algebraically consistent with BPR — the line-search and conjugate
// direction computations depend on that consistency. The optimal flag is
// accepted for signature uniformity but does not alter the derivative used
// by the solvers.
func BPRDerivative(optimal bool, fft, alpha, flow, capacity, beta, length, maxSpeed float64) float64 {
	if capacity < CapacityEps {
		return MaxCost
	}

	return fft * alpha * beta * math.Pow(flow/capacity, beta-1) / capacity
}

// BPRIntegral is the definite integral of BPR from 0 to flow:
//
//	∫cost = fft · (flow + alpha · flow · (flow/capacity)^beta / (1+beta))
//
// Differentiating this expression with respect to flow recovers BPR exactly.
func BPRIntegral(optimal bool, fft, alpha, flow, capacity, beta, length, maxSpeed float64) float64 {
	if capacity < CapacityEps {
		if flow <= 0 {
			return 0
		}

		return MaxCost
	}

	return fft * (flow + alpha*flow*math.Pow(flow/capacity, beta)/(1+beta))
}

// Constant ignores flow entirely: cost is the free-flow time. The
// system-optimal variant adds the flow itself (marginal cost of a linear
// total-cost curve). Useful for tests and degenerate networks.
func Constant(optimal bool, fft, alpha, flow, capacity, beta, length, maxSpeed float64) float64 {
	if optimal {
		return fft + flow
	}

	return fft
}

// Greenshields is the capacity-sensitive speed-density cost:
//
//	cost = length / (maxSpeed · (1 - flow/capacity))
//
// with the system-optimal marginal variant
//
//	cost = length · capacity² / (maxSpeed · (capacity - flow)²)
//
// Links with capacity below CapacityEps return MaxCost, like BPR.
func Greenshields(optimal bool, fft, alpha, flow, capacity, beta, length, maxSpeed float64) float64 {
	if capacity < CapacityEps {
		return MaxCost
	}
	if optimal {
		diff := capacity - flow

		return (length * capacity * capacity) / (maxSpeed * diff * diff)
	}

	return length / (maxSpeed * (1 - flow/capacity))
}
