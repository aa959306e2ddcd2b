package assign

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/wardrop/network"
)

// Run computes a traffic assignment on net with the selected algorithm.
//
// It is the single entry point for every solver:
//
//   - Stage 1 — validate: nil network, algorithm selection, option ranges.
//     An unrecognized algorithm aborts here, before any solving.
//   - Stage 2 — reset: link flows and costs return to the free-flow state,
//     making runs independent and repeatable.
//   - Stage 3 — route: MSA/FW/CFW go to the link-based loop, GP/GP-E to the
//     path-based loop. Both share the gap computation and budgets.
//
// Run takes exclusive mutation rights over net's flow/cost state for the
// duration of the call; the final per-link flows and costs remain on net for
// the caller to read, and the Result carries the aggregate outcome.
//
// Non-convergence within the budgets is reported via Result.Converged=false,
// not as an error.
//
// Determinism: identical networks, demand, and options reproduce identical
// results — there is no randomness and iteration order is fixed.
func Run(net *network.Network, opts ...Option) (Result, error) {
	if net == nil {
		return Result{}, ErrNilNetwork
	}

	// Build and validate options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if net.TripCount() == 0 {
		return Result{}, ErrNoDemand
	}

	cfg.Logger.Info("assignment starting",
		zap.String("algorithm", cfg.Algorithm.String()),
		zap.Bool("system_optimal", cfg.SystemOptimal),
		zap.Float64("accuracy", cfg.Accuracy),
		zap.Int("nodes", net.NodeCount()),
		zap.Int("links", net.LinkCount()),
		zap.Int("od_pairs", net.TripCount()))

	// Runs are independent: start from the free-flow state.
	net.ResetFlow()

	var (
		res Result
		err error
	)
	if cfg.Algorithm.pathBased() {
		res, err = runPathBased(net, &cfg)
	} else {
		res, err = runLinkBased(net, &cfg)
	}
	if err != nil {
		return res, err
	}

	cfg.Logger.Info("assignment finished",
		zap.Bool("converged", res.Converged),
		zap.Int("iterations", res.Iterations),
		zap.Float64("gap", res.Gap),
		zap.Float64("tstt", res.TSTT),
		zap.Duration("elapsed", res.Elapsed))

	return res, nil
}
