// Package assign defines the algorithm selector, configuration, and result
// types shared by all equilibrium solvers.
package assign

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors for solver configuration and execution.
var (
	// ErrUnknownAlgorithm indicates an unrecognized algorithm selection.
	// It is fatal: Run aborts before any solving begins.
	ErrUnknownAlgorithm = errors.New("assign: unknown algorithm (want MSA, FW, CFW, GP or GP-E)")

	// ErrNilNetwork indicates that a nil *network.Network was passed to Run.
	ErrNilNetwork = errors.New("assign: network is nil")

	// ErrNilCostFunc indicates that the cost function option was set to nil.
	ErrNilCostFunc = errors.New("assign: cost function is nil")

	// ErrBadAccuracy indicates a non-positive convergence accuracy.
	ErrBadAccuracy = errors.New("assign: accuracy must be positive")

	// ErrBadMaxIterations indicates a non-positive iteration budget.
	ErrBadMaxIterations = errors.New("assign: max iterations must be at least 1")

	// ErrBadStepSize indicates a non-positive fixed step size for GP.
	ErrBadStepSize = errors.New("assign: step size must be positive")

	// ErrNoDemand indicates the network carries no OD demand to assign.
	ErrNoDemand = errors.New("assign: network has no demand")
)

// Algorithm selects the equilibrium-seeking algorithm.
type Algorithm int

const (
	// MSA is the Method of Successive Averages: fixed step 2/(k+1),
	// ignoring the auxiliary-flow shape. Link-based.
	MSA Algorithm = iota

	// FW is the Frank-Wolfe algorithm: all-or-nothing direction with an
	// exact one-dimensional line search for the step size. Link-based.
	FW

	// CFW is Conjugate Frank-Wolfe: blends the FW direction with the
	// previous conjugate direction before the line search. Link-based.
	CFW

	// GP is Gradient Projection with a fixed configured step size.
	// Path-based: maintains explicit route sets per OD pair.
	GP

	// GPE is Gradient Projection with exact line search ("GP-E").
	GPE
)

// algorithmNames maps each Algorithm to its canonical spelling.
var algorithmNames = map[Algorithm]string{
	MSA: "MSA",
	FW:  "FW",
	CFW: "CFW",
	GP:  "GP",
	GPE: "GP-E",
}

// String returns the canonical algorithm name ("MSA", "FW", "CFW", "GP", "GP-E").
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}

	return "unknown"
}

// valid reports whether a is one of the recognized algorithms.
func (a Algorithm) valid() bool {
	_, ok := algorithmNames[a]

	return ok
}

// pathBased reports whether a maintains explicit route sets (GP family)
// rather than blending link flows directly.
func (a Algorithm) pathBased() bool { return a == GP || a == GPE }

// ParseAlgorithm resolves a case-insensitive algorithm name.
// Returns ErrUnknownAlgorithm for anything outside {MSA, FW, CFW, GP, GP-E}.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(name) {
	case "MSA":
		return MSA, nil
	case "FW":
		return FW, nil
	case "CFW":
		return CFW, nil
	case "GP":
		return GP, nil
	case "GP-E", "GPE":
		return GPE, nil
	default:
		return 0, ErrUnknownAlgorithm
	}
}

// Result is the outcome of one solver run.
//
// Non-convergence is not an error: Converged=false with the best achieved
// gap and total system travel time is a valid, reportable outcome.
type Result struct {
	// TSTT is the total system travel time of the final flows, evaluated at
	// user-equilibrium cost against maximum link capacity.
	TSTT float64

	// Gap is the final relative gap, TSTT/SPTT − 1.
	Gap float64

	// Iterations is the number of completed solver iterations.
	Iterations int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Converged reports whether Gap ≤ the configured accuracy was reached
	// within the iteration and time budgets.
	Converged bool

	// NegativeGapCount counts iterations whose relative gap came out
	// negative — a numerical/algorithmic consistency anomaly that is
	// reported but never fatal.
	NegativeGapCount int
}
