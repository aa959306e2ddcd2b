// Package assign implements the equilibrium-seeking engine for static
// traffic assignment: iterative fixed-point algorithms over a road network
// with non-linear, flow-dependent link costs, driven to a configured
// relative-gap tolerance.
//
// Overview:
//
//   - Link-based solvers — MSA, FW, CFW — repeatedly compute an
//     all-or-nothing auxiliary flow via the shortest-path engine, blend it
//     into the current link flows with a computed step size, and recompute
//     costs until the relative gap drops below the accuracy threshold.
//   - Path-based solvers — GP, GP-E — maintain an explicit route set per OD
//     pair and shift flow from non-shortest routes toward the current
//     shortest route using a second-derivative-weighted step, with an
//     optional exact line search.
//   - Both share the convergence accounting: the relative gap is
//     TSTT/SPTT − 1, the ratio of actual to shortest-path total travel time
//     minus one.
//
// Algorithms:
//
//   - MSA  — step size 2/(k+1), ignoring the auxiliary-flow shape.
//   - FW   — exact step size from bisection on the convex Beckmann
//     objective's derivative, clamped to [0,1].
//   - CFW  — conjugate auxiliary direction (derivative-weighted blending
//     coefficient, clamped to [0, 1−ε], zero denominator ⇒ 0), then the
//     same line search as FW.
//   - GP   — fixed configured step size.
//   - GP-E — golden-section line search minimizing total integral cost over
//     all candidate flow shifts simultaneously.
//
// Termination:
//
//	gap ≤ accuracy (converged), iteration budget spent, or wall-clock budget
//	spent — budgets are checked once per iteration, and non-convergence is a
//	reported status, never an error.
//
// Anomalies and fallbacks:
//
//   - A negative gap (actual travel time below the shortest-path bound) is
//     a consistency anomaly: counted in Result.NegativeGapCount and logged
//     at warn level, but the solve continues.
//   - Zero-denominator conditions use explicit fallback values: conjugate
//     beta = 0, gradient-projection direction = +Inf (route flow goes to
//     zero immediately).
//
// Concurrency:
//
//	Single-threaded and synchronous. Run takes exclusive mutation rights
//	over the Network's flow/cost state for the whole call; never run two
//	solves concurrently on one Network.
//
// Errors (sentinel):
//
//   - ErrUnknownAlgorithm, ErrNilNetwork, ErrNilCostFunc, ErrBadAccuracy,
//     ErrBadMaxIterations, ErrBadStepSize, ErrNoDemand — all detected
//     before any solving begins.
//
// Example usage:
//
//	res, err := assign.Run(net,
//	    assign.WithAlgorithm(assign.CFW),
//	    assign.WithAccuracy(1e-6),
//	    assign.WithMaxIterations(5000),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("TSTT=%.3f gap=%.2e converged=%v\n", res.TSTT, res.Gap, res.Converged)
package assign
