// Package network defines the central Network, Node, Link, Zone, and Demand
// types for static traffic assignment.
//
// A Network owns every Node and Link exclusively. Link flow and cost are
// mutable solver state: flow is only ever non-negative, and cost is always a
// pure function of the current flow via the active cost function — it is
// recomputed after every flow change, never assigned independently.
//
// Concurrency: the Network is NOT goroutine-safe. A solver run assumes
// exclusive mutation rights over the flow/cost state for its whole loop;
// synchronize externally if you must share a Network across goroutines.
//
// Errors:
//
//	ErrEmptyNodeID      - node ID is the empty string.
//	ErrNodeNotFound     - requested node does not exist.
//	ErrLinkNotFound     - requested link does not exist.
//	ErrDuplicateLink    - a link with the same (from,to) key already exists.
//	ErrBadLink          - non-positive free-flow time or negative capacity.
//	ErrBadDemand        - negative demand volume.
//	ErrBadCapacityScale - capacity scale delta outside [-1, 1].
package network

import (
	"errors"
	"math"
)

// Sentinel errors for network construction and mutation.
var (
	// ErrEmptyNodeID indicates that a node ID is the empty string.
	ErrEmptyNodeID = errors.New("network: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrLinkNotFound indicates an operation referenced a non-existent link.
	ErrLinkNotFound = errors.New("network: link not found")

	// ErrDuplicateLink indicates a second link was added for the same ordered node pair.
	ErrDuplicateLink = errors.New("network: duplicate link")

	// ErrBadLink indicates invalid static link parameters
	// (free-flow time ≤ 0 or capacity < 0).
	ErrBadLink = errors.New("network: bad link parameters")

	// ErrBadDemand indicates a negative demand volume.
	ErrBadDemand = errors.New("network: demand must be non-negative")

	// ErrBadCapacityScale indicates a capacity scale delta outside [-1, 1].
	ErrBadCapacityScale = errors.New("network: capacity scale delta must be within [-1, 1]")
)

// NoPred marks the absence of a shortest-path predecessor on a Node.
const NoPred = ""

// LinkKey is the identity of a directed link: the ordered (from, to) node pair.
type LinkKey struct {
	// From is the origin node ID.
	From string

	// To is the destination node ID.
	To string
}

// ODPair identifies an origin-destination demand entry.
type ODPair struct {
	// Origin is the origin zone ID.
	Origin string

	// Dest is the destination zone ID.
	Dest string
}

// Node represents a network node.
//
// Label and Pred are transient scratch state for one shortest-path
// computation: they are fully reinitialized at the start of every
// shortest.Dijkstra call, and a previous run's partial values are never
// meaningful.
type Node struct {
	// ID uniquely identifies this node within its Network.
	ID string

	// Out lists the IDs of nodes reachable by one outgoing link, in insertion order.
	Out []string

	// In lists the IDs of nodes with a link into this node, in insertion order.
	In []string

	// Label is the minimal cost from the current shortest-path origin
	// (math.Inf(1) when unreached).
	Label float64

	// Pred is the predecessor node ID on the current shortest path
	// (NoPred when none).
	Pred string
}

// LinkParams holds the static attributes of a directed link.
type LinkParams struct {
	// Capacity is the maximum link capacity (vehicles per hour).
	Capacity float64

	// Length is the link length.
	Length float64

	// FreeFlowTime is the travel time at zero flow (minutes).
	FreeFlowTime float64

	// Alpha is the BPR multiplier parameter.
	Alpha float64

	// Beta is the BPR power parameter.
	Beta float64

	// SpeedLimit is the link speed limit.
	SpeedLimit float64

	// Toll is the link toll.
	Toll float64

	// LinkType is an opaque classification tag carried through from the input.
	LinkType string
}

// Link represents a directed link with static parameters and mutable
// flow/cost solver state. Its (From, To) pair is its identity.
type Link struct {
	// From is the origin node ID.
	From string

	// To is the destination node ID.
	To string

	// MaxCapacity is the full design capacity of the link.
	MaxCapacity float64

	// Length is the link length.
	Length float64

	// FreeFlowTime is the travel time at zero flow.
	FreeFlowTime float64

	// Alpha is the BPR multiplier parameter.
	Alpha float64

	// Beta is the BPR power parameter.
	Beta float64

	// SpeedLimit is the link speed limit.
	SpeedLimit float64

	// Toll is the link toll.
	Toll float64

	// LinkType is an opaque classification tag.
	LinkType string

	// capacityScale is the current fraction of MaxCapacity in effect, in [0, 1].
	capacityScale float64

	// Capacity is the capacity currently in effect (MaxCapacity × scale).
	Capacity float64

	// Flow is the current link flow. Invariant: Flow ≥ 0.
	Flow float64

	// Cost is the current travel cost, recomputed from Flow after every
	// flow change by the active cost function.
	Cost float64
}

// Key returns the link's (from, to) identity.
func (l *Link) Key() LinkKey { return LinkKey{From: l.From, To: l.To} }

// ScaleCapacity shifts the link's effective capacity by delta, expressed as a
// fraction of MaxCapacity. The cumulative scale is clamped to [0, 1].
// Returns ErrBadCapacityScale if delta itself is outside [-1, 1].
func (l *Link) ScaleCapacity(delta float64) error {
	if delta < -1 || delta > 1 {
		return ErrBadCapacityScale
	}
	l.capacityScale = math.Max(0, math.Min(1, l.capacityScale+delta))
	l.Capacity = l.MaxCapacity * l.capacityScale

	return nil
}

// ResetFlow zeroes the link flow and restores the free-flow cost.
func (l *Link) ResetFlow() {
	l.Flow = 0
	l.Cost = l.FreeFlowTime
}

// Reset restores the full capacity and then resets flow and cost.
func (l *Link) Reset() {
	l.capacityScale = 1
	l.Capacity = l.MaxCapacity
	l.ResetFlow()
}

// Zone represents an origin/destination zone. DestList is built once at load
// time (by AddDemand) and is not mutated thereafter.
type Zone struct {
	// ID uniquely identifies this zone.
	ID string

	// DestList lists the destination zone IDs with positive demand from this
	// zone, in insertion order.
	DestList []string
}

// Demand is one origin-destination demand entry.
type Demand struct {
	// Origin is the origin zone ID.
	Origin string

	// Dest is the destination zone ID.
	Dest string

	// Volume is the demand volume. Invariant: Volume > 0 — zero and
	// self-referential entries are excluded at load time.
	Volume float64
}
