// Package costfn defines the volume-delay cost function types used by the
// traffic assignment solvers.
package costfn

import (
	"errors"
	"math"
	"strings"
)

// ErrUnknownFunction is returned by ByName for an unrecognized function name.
var ErrUnknownFunction = errors.New("costfn: unknown cost function")

// CapacityEps is the capacity threshold below which a link is treated as
// effectively closed: cost functions return MaxCost instead of dividing by a
// near-zero capacity.
const CapacityEps = 1e-3

// MaxCost is the sentinel "maximal" travel cost returned for effectively
// closed links. It is finite so label arithmetic stays well defined.
var MaxCost = float64(math.MaxFloat32)

// Func maps a link's static parameters and current flow to a travel cost.
//
// Arguments, in order:
//   - optimal:  true for the system-optimal (marginal cost) variant,
//     false for the user-equilibrium (average cost) variant.
//   - fft:      free-flow travel time.
//   - alpha:    BPR multiplier parameter.
//   - flow:     current link flow.
//   - capacity: current link capacity.
//   - beta:     BPR power parameter.
//   - length:   link length.
//   - maxSpeed: link speed limit.
//
// Every Func must return a non-negative cost for non-negative flow; the
// shortest-path engine depends on that.
type Func func(optimal bool, fft, alpha, flow, capacity, beta, length, maxSpeed float64) float64

// Recognized cost function names for ByName.
const (
	NameBPR          = "bpr"
	NameConstant     = "constant"
	NameGreenshields = "greenshields"
)

// ByName resolves a cost function by its (case-insensitive) name.
// Returns ErrUnknownFunction for anything outside {bpr, constant, greenshields}.
func ByName(name string) (Func, error) {
	switch strings.ToLower(name) {
	case NameBPR:
		return BPR, nil
	case NameConstant:
		return Constant, nil
	case NameGreenshields:
		return Greenshields, nil
	default:
		return nil, ErrUnknownFunction
	}
}
