// Package shortest defines sentinels for the shortest-path engine.
package shortest

import "errors"

// Sentinel errors returned by the shortest-path engine.
var (
	// ErrNilNetwork indicates that a nil *network.Network was passed in.
	ErrNilNetwork = errors.New("shortest: network is nil")

	// ErrEmptyOrigin indicates that the provided origin node ID is empty.
	ErrEmptyOrigin = errors.New("shortest: origin node ID is empty")

	// ErrOriginNotFound indicates that the origin node does not exist
	// in the provided network.
	ErrOriginNotFound = errors.New("shortest: origin node not found in network")

	// ErrDestNotFound indicates that the destination node passed to TracePath
	// does not exist in the provided network.
	ErrDestNotFound = errors.New("shortest: destination node not found in network")
)
