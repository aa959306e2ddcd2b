package assign

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/wardrop/costfn"
)

// Default solver configuration values.
const (
	// DefaultAccuracy is the default relative-gap convergence threshold.
	DefaultAccuracy = 1e-4

	// DefaultMaxIterations is the default iteration budget.
	DefaultMaxIterations = 1000

	// DefaultMaxRunTime is the default wall-clock budget.
	DefaultMaxRunTime = 60 * time.Second

	// DefaultStepSize is the default fixed step size for GP.
	DefaultStepSize = 0.05
)

// GapRecorder receives one (elapsed wall-clock, relative gap) sample per
// solver iteration — the diagnostics stream consumed externally for
// convergence plotting.
type GapRecorder func(elapsed time.Duration, gap float64)

// Options configures a solver run. Build it with DefaultOptions and the
// With* functional options.
//
// Cost is the active volume-delay function; CostDerivative and CostIntegral
// are the closed forms used by the conjugate-direction, step-direction, and
// exact-line-search computations. They default to the BPR family and must be
// algebraically consistent with each other when overridden.
type Options struct {
	// Algorithm selects the solver (MSA, FW, CFW, GP, GP-E).
	Algorithm Algorithm

	// Cost maps link state to travel cost. Default: costfn.BPR.
	Cost costfn.Func

	// CostDerivative is d cost/d flow. Default: costfn.BPRDerivative.
	CostDerivative costfn.Func

	// CostIntegral is ∫cost dflow from 0 to flow. Default: costfn.BPRIntegral.
	CostIntegral costfn.Func

	// SystemOptimal routes against marginal cost instead of average cost,
	// yielding the system-optimal rather than user-equilibrium flows.
	SystemOptimal bool

	// Accuracy is the relative-gap threshold that terminates the loop.
	Accuracy float64

	// MaxIterations bounds the number of iterations; exceeding it reports
	// non-convergence, it is not an error.
	MaxIterations int

	// MaxRunTime bounds wall-clock time, checked once per iteration.
	MaxRunTime time.Duration

	// StepSize is the fixed step for GP (ignored by every other algorithm).
	StepSize float64

	// Logger receives solver diagnostics. Defaults to zap.NewNop().
	Logger *zap.Logger

	// Verbose enables per-iteration progress logging on Logger.
	Verbose bool

	// OnGap, when non-nil, is invoked once per iteration with the elapsed
	// time and the relative gap.
	OnGap GapRecorder
}

// Option represents a functional option for configuring a solver run.
type Option func(*Options)

// WithAlgorithm selects the solver algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// WithCostFunction sets the active volume-delay function.
//
// The default derivative and integral remain the BPR closed forms (matching
// the default cost); override them too when supplying a non-BPR cost whose
// optimization steps should follow the same curve.
func WithCostFunction(fn costfn.Func) Option {
	return func(o *Options) { o.Cost = fn }
}

// WithCostDerivative overrides the d cost/d flow closed form used by the
// conjugate-direction and gradient-projection step computations.
func WithCostDerivative(fn costfn.Func) Option {
	return func(o *Options) { o.CostDerivative = fn }
}

// WithCostIntegral overrides the ∫cost closed form minimized by the exact
// line searches.
func WithCostIntegral(fn costfn.Func) Option {
	return func(o *Options) { o.CostIntegral = fn }
}

// WithSystemOptimal routes against marginal cost, computing system-optimal
// instead of user-equilibrium flows.
func WithSystemOptimal() Option {
	return func(o *Options) { o.SystemOptimal = true }
}

// WithAccuracy sets the relative-gap convergence threshold.
// Non-positive values cause ErrBadAccuracy at Run time.
func WithAccuracy(accuracy float64) Option {
	return func(o *Options) { o.Accuracy = accuracy }
}

// WithMaxIterations bounds the iteration count.
// Values below 1 cause ErrBadMaxIterations at Run time.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithMaxRunTime bounds the wall-clock duration, checked once per iteration
// (there is no mid-iteration cancellation).
func WithMaxRunTime(d time.Duration) Option {
	return func(o *Options) { o.MaxRunTime = d }
}

// WithStepSize sets the fixed step size used by GP.
// Non-positive values cause ErrBadStepSize at Run time.
func WithStepSize(step float64) Option {
	return func(o *Options) { o.StepSize = step }
}

// WithLogger attaches a zap logger for solver diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithVerbose enables per-iteration progress logging.
func WithVerbose() Option {
	return func(o *Options) { o.Verbose = true }
}

// WithGapRecorder registers the per-iteration (elapsed, gap) diagnostics
// callback.
func WithGapRecorder(rec GapRecorder) Option {
	return func(o *Options) { o.OnGap = rec }
}

// DefaultOptions returns the solver defaults: FW with the BPR cost family,
// user equilibrium, Accuracy 1e-4, 1000 iterations, 60s, GP step 0.05,
// no-op logger.
func DefaultOptions() Options {
	return Options{
		Algorithm:      FW,
		Cost:           costfn.BPR,
		CostDerivative: costfn.BPRDerivative,
		CostIntegral:   costfn.BPRIntegral,
		Accuracy:       DefaultAccuracy,
		MaxIterations:  DefaultMaxIterations,
		MaxRunTime:     DefaultMaxRunTime,
		StepSize:       DefaultStepSize,
		Logger:         zap.NewNop(),
	}
}

// validate checks the assembled Options, in deterministic order.
func (o *Options) validate() error {
	if !o.Algorithm.valid() {
		return ErrUnknownAlgorithm
	}
	if o.Cost == nil || o.CostDerivative == nil || o.CostIntegral == nil {
		return ErrNilCostFunc
	}
	if o.Accuracy <= 0 {
		return ErrBadAccuracy
	}
	if o.MaxIterations < 1 {
		return ErrBadMaxIterations
	}
	if o.Algorithm == GP && o.StepSize <= 0 {
		return ErrBadStepSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return nil
}
