package assign

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/wardrop/costfn"
	"github.com/katalvlaran/wardrop/network"
)

// round9 rounds to 9 decimal places. SPTT and TSTT are rounded before the
// gap ratio to keep run-to-run results stable against FP drift.
func round9(x float64) float64 { return math.Round(x*1e9) / 1e9 }

// updateCosts recomputes every link's cost from its current flow via the
// active cost function. Costs are never stale when the gap or a step size is
// computed: every flow change is followed by this call.
func updateCosts(net *network.Network, opts *Options) {
	for _, link := range net.Links() {
		link.Cost = opts.Cost(opts.SystemOptimal,
			link.FreeFlowTime, link.Alpha, link.Flow, link.Capacity,
			link.Beta, link.Length, link.SpeedLimit)
	}
}

// currentTSTT is Σ flow·cost over all links at the current (possibly
// system-optimal) costs — the numerator of the relative gap.
func currentTSTT(net *network.Network) float64 {
	var total float64
	for _, link := range net.Links() {
		total += link.Flow * link.Cost
	}

	return total
}

// ReportedTSTT is the real total system travel time of the current flows:
// user-equilibrium cost evaluated against maximum link capacity, rounded to
// 1e-9. Under system-optimal routing this differs from the gap's TSTT, which
// is taken at marginal cost.
func ReportedTSTT(net *network.Network, cost costfn.Func) float64 {
	var total float64
	for _, link := range net.Links() {
		total += link.Flow * cost(false,
			link.FreeFlowTime, link.Alpha, link.Flow, link.MaxCapacity,
			link.Beta, link.Length, link.SpeedLimit)
	}

	return round9(total)
}

// tracker carries the per-run convergence bookkeeping shared by the
// link-based and path-based loops: gap computation, anomaly accounting,
// diagnostics recording, and the iteration/time termination checks.
type tracker struct {
	opts    *Options
	origins []string
	start   time.Time

	gap       float64
	negGap    int
	iteration int
}

// newTracker starts the run clock with gap = +Inf.
func newTracker(opts *Options, origins []string) *tracker {
	return &tracker{
		opts:    opts,
		origins: origins,
		start:   time.Now(),
		gap:     math.Inf(1),
	}
}

// observeGap recomputes the shortest-path total travel time (without
// building an auxiliary flow), derives the relative gap TSTT/SPTT − 1,
// records the diagnostics sample, and reports — never aborts on — a
// negative gap.
func (t *tracker) observeGap(net *network.Network) error {
	sptt, _, err := loadAON(net, t.origins, false)
	if err != nil {
		return err
	}
	sptt = round9(sptt)
	tstt := round9(currentTSTT(net))

	t.gap = tstt/sptt - 1

	elapsed := time.Since(t.start)
	if t.opts.OnGap != nil {
		t.opts.OnGap(elapsed, t.gap)
	}

	if t.gap < 0 {
		// Consistency anomaly: actual travel time fell below the
		// shortest-path bound. Evidence of a numerical or algorithmic
		// defect to investigate, not user error — report and continue.
		t.negGap++
		t.opts.Logger.Warn("negative relative gap",
			zap.Float64("gap", t.gap),
			zap.Float64("tstt", tstt),
			zap.Float64("sptt", sptt),
			zap.Int("iteration", t.iteration))
	}

	if t.opts.Verbose {
		t.opts.Logger.Info("iteration complete",
			zap.Int("iteration", t.iteration),
			zap.Float64("gap", t.gap),
			zap.Duration("elapsed", elapsed))
	}

	return nil
}

// converged reports whether the gap has dropped to the accuracy threshold.
func (t *tracker) converged() bool { return t.gap <= t.opts.Accuracy }

// exhausted reports whether the iteration or wall-clock budget is spent.
// Budgets are checked once per iteration; there is no mid-iteration
// cancellation.
func (t *tracker) exhausted() bool {
	if t.iteration >= t.opts.MaxIterations {
		t.opts.Logger.Info("iteration budget exhausted before convergence",
			zap.Int("iterations", t.iteration),
			zap.Float64("gap", t.gap))

		return true
	}
	if elapsed := time.Since(t.start); elapsed > t.opts.MaxRunTime {
		t.opts.Logger.Info("time budget exhausted before convergence",
			zap.Duration("elapsed", elapsed),
			zap.Int("iterations", t.iteration),
			zap.Float64("gap", t.gap))

		return true
	}

	return false
}

// result assembles the Result for the finished run.
func (t *tracker) result(net *network.Network) Result {
	return Result{
		TSTT:             ReportedTSTT(net, t.opts.Cost),
		Gap:              t.gap,
		Iterations:       t.iteration,
		Elapsed:          time.Since(t.start),
		Converged:        t.converged(),
		NegativeGapCount: t.negGap,
	}
}
