// Package shortest provides the single-source shortest-path engine the
// equilibrium solvers call on every iteration: heap-based Dijkstra over the
// network's current link costs, plus route reconstruction from predecessors.
//
// Overview:
//
//   - Dijkstra(net, origin) labels every reachable node with its minimal
//     cost from origin and records one shortest-path predecessor per node.
//   - TracePath(net, dest) walks those predecessors back to the origin and
//     returns the traversed link keys.
//   - Labels and predecessors live on the Node entities themselves — they
//     are per-run scratch state, fully reinitialized on every Dijkstra call.
//
// When to use:
//
//   - All-or-nothing demand loading: run Dijkstra once per origin zone, then
//     TracePath per destination with positive demand.
//   - Shortest-route generation for the path-based (gradient projection)
//     solver's route sets.
//
// Preconditions:
//
//   - All link costs must be non-negative. The costfn package guarantees
//     this for every cost function it ships, so no per-run weight scan is
//     performed.
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V) per run, V = |nodes|, E = |links|.
//   - Space: O(V + E) — labels on nodes plus heap entries under the
//     lazy-decrease-key strategy.
//
// Error handling (sentinel errors):
//
//   - ErrNilNetwork     — nil *network.Network.
//   - ErrEmptyOrigin    — empty origin node ID.
//   - ErrOriginNotFound — origin missing from the network.
//   - ErrDestNotFound   — TracePath destination missing from the network.
//
// Thread safety:
//
//   - None: Dijkstra mutates node labels in place. Never run two shortest
//     path computations concurrently on the same Network.
package shortest
