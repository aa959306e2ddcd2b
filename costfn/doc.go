// Package costfn provides the volume-delay cost functions for static traffic
// assignment: pure functions mapping a link's static parameters and current
// flow to travel cost, plus the closed-form derivative and integral of the
// BPR function required by the optimization-based solvers.
//
// Overview:
//
//   - BPR          — the Bureau of Public Roads function, the standard choice.
//   - Constant     — flow-independent cost, for tests and degenerate cases.
//   - Greenshields — a capacity-sensitive speed-density model.
//   - BPRDerivative / BPRIntegral — exact closed forms consistent with BPR,
//     used by line search and conjugate-direction computation.
//
// Every function shares one signature (Func) so solvers can treat the choice
// as configuration; ByName resolves {bpr, constant, greenshields} from user
// input with ErrUnknownFunction as the failure sentinel.
//
// System-optimal routing:
//
//	Passing optimal=true selects the marginal-cost variant of each function.
//	Assigning flow against marginal instead of average cost turns the
//	user-equilibrium solvers into system-optimal solvers without any change
//	to the iteration logic.
//
// Degenerate links:
//
//	A capacity below CapacityEps (1e-3) marks an effectively closed link.
//	Cost functions return the sentinel MaxCost for such links instead of
//	dividing by near-zero — the link becomes unusable but the solve never
//	crashes.
//
// Guarantees (for positive capacity):
//
//   - cost(flow=0) ≥ free-flow time, and cost is non-decreasing in flow for
//     BPR and Greenshields — the convexity the line searches rely on.
//   - BPRDerivative is the exact analytic derivative of BPR, and the
//     derivative of BPRIntegral with respect to flow recovers BPR.
//
// Complexity: every function is O(1).
package costfn
