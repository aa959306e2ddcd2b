// Package network provides the in-memory road network model for static
// traffic assignment: nodes, directed links, zones, and origin-destination
// demand, together with the mutable per-link flow/cost state the equilibrium
// solvers iterate on.
//
// Overview:
//
//   - Network is the single owning aggregate: it holds every Node, Link,
//     Zone and Demand exclusively. Solvers receive a *Network and take
//     exclusive mutation rights over its flow/cost state for the duration of
//     one run.
//   - Links are keyed by their ordered (from, to) node pair; at most one
//     link exists per pair.
//   - Demand entries with zero volume or identical origin and destination
//     are excluded at load time and never appear in the model.
//   - Iteration over links and demands follows insertion order, which makes
//     solver runs reproducible for identical inputs.
//
// Transient shortest-path state:
//
//   - Node.Label (minimal cost from the current origin) and Node.Pred
//     (predecessor node ID) exist only for the duration of one shortest-path
//     computation. Every shortest.Dijkstra call fully reinitializes them;
//     never read them across runs.
//
// Flow/cost invariants:
//
//   - Link.Flow ≥ 0 at all times.
//   - Link.Cost is a pure function of Link.Flow and the static parameters
//     via the active cost function. It is recomputed after every flow change
//     and is never stale when read by gap or step-size computations.
//
// Thread safety:
//
//   - None. The link-based and path-based solvers are never run concurrently
//     on the same Network; synchronize externally if you share one.
//
// Errors (sentinel):
//
//   - ErrEmptyNodeID, ErrNodeNotFound, ErrLinkNotFound, ErrDuplicateLink,
//     ErrBadLink, ErrBadDemand, ErrBadCapacityScale.
//
// Example usage:
//
//	net := network.New()
//	_, err := net.AddLink("1", "2", network.LinkParams{
//	    Capacity:     100,
//	    FreeFlowTime: 10,
//	    Alpha:        0.15,
//	    Beta:         4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err = net.AddDemand("1", "2", 50); err != nil {
//	    log.Fatal(err)
//	}
package network
