// Package shortest implements Dijkstra's shortest-path algorithm over the
// current link costs of a traffic network.
//
// Dijkstra computes the minimum-cost path from a single origin node to all
// other reachable nodes. It processes nodes in order of increasing label
// using a min-heap priority queue, relaxing outgoing links and updating
// labels and predecessors accordingly.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Each node is finalized at most once: V extractions from the heap.
//   - Each link relaxation may push a new entry into the heap: up to E pushes.
//   - Each heap operation (Push/Pop) costs O(log N), where N ≤ V + E. Simplified to O(log V).
//   - Space: O(V + E)
//   - Labels and predecessors live on the nodes themselves.
//   - O(E) worst-case entries in the heap under "lazy-decrease-key".
//
// Notes on implementation choices:
//
//   - Labels and predecessors are stored in the Node instances (transient
//     per-run scratch state) and fully reinitialized at the start of every run.
//   - Non-negativity of link costs is a contract of the costfn package, so
//     there is no per-run negative-weight scan.
//   - We use a "lazy" decrease-key strategy: pushing duplicates into the heap
//     and ignoring stale entries on extraction.
package shortest

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/wardrop/network"
)

// Dijkstra computes shortest-path labels from origin to every reachable node
// of net, using the links' current Cost values as weights.
//
// On return, each node's Label holds the minimal cost from origin
// (math.Inf(1) if unreachable) and Pred holds its predecessor on one
// shortest path (network.NoPred for origin and unreachable nodes). Use
// TracePath to reconstruct a route from the predecessors.
//
// Preconditions and validation (in order):
//  1. net must be non-nil (ErrNilNetwork).
//  2. origin must be non-empty (ErrEmptyOrigin).
//  3. net must contain origin (ErrOriginNotFound).
//  4. All link costs must be non-negative — guaranteed by the cost functions.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(net *network.Network, origin string) error {
	// 1) Validate inputs.
	if net == nil {
		return ErrNilNetwork
	}
	if origin == "" {
		return ErrEmptyOrigin
	}
	src, err := net.Node(origin)
	if err != nil {
		return ErrOriginNotFound
	}

	// 2) Reset every node's transient shortest-path state. A previous run's
	//    partial values are never meaningful.
	for _, node := range net.Nodes() {
		node.Label = math.Inf(1)
		node.Pred = network.NoPred
	}
	src.Label = 0

	// 3) Initialize the frontier with the origin at label 0.
	pq := make(nodePQ, 0, net.NodeCount())
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: origin, label: 0})

	visited := make(map[string]bool, net.NodeCount())

	// 4) Main loop: extract the minimum-label node and relax its out-links.
	var (
		item *nodeItem
		curr *network.Node
		next *network.Node
		link *network.Link
	)
	for pq.Len() > 0 {
		item = heap.Pop(&pq).(*nodeItem)
		if visited[item.id] {
			// Stale heap entry under lazy decrease-key.
			continue
		}
		visited[item.id] = true

		// The node exists: it was reachable from a relaxed link or is origin.
		curr, _ = net.Node(item.id)

		for _, to := range curr.Out {
			link, _ = net.Link(network.LinkKey{From: item.id, To: to})
			next, _ = net.Node(to)

			// Relax only on strict improvement, to avoid duplicate pushes
			// for equal-cost paths.
			candidate := curr.Label + link.Cost
			if candidate < next.Label {
				next.Label = candidate
				next.Pred = item.id
				heap.Push(&pq, &nodeItem{id: to, label: candidate})
			}
		}
	}

	return nil
}

// TracePath reconstructs the shortest route from the most recent Dijkstra
// run by walking predecessors from dest back to the origin. The traversed
// links are returned in reverse travel order (dest-side first), matching the
// walk; callers that only sum or set per-link quantities need no reversal.
//
// An empty slice means dest is the origin itself or unreachable.
// Returns ErrDestNotFound if dest does not exist in net.
func TracePath(net *network.Network, dest string) ([]network.LinkKey, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	node, err := net.Node(dest)
	if err != nil {
		return nil, ErrDestNotFound
	}

	var links []network.LinkKey
	for node.Pred != network.NoPred {
		links = append(links, network.LinkKey{From: node.Pred, To: node.ID})
		// The predecessor exists: it was written by a relaxation.
		node, _ = net.Node(node.Pred)
	}

	return links, nil
}

// nodeItem represents a node and its label at push time.
// It is stored in the priority queue to order nodes by increasing label.
type nodeItem struct {
	id    string
	label float64
}

// nodePQ is a min-heap of *nodeItem ordered by label ascending, under the
// lazy-decrease-key pattern: improved labels push duplicates, stale entries
// are skipped on extraction.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller label → higher priority.
func (pq nodePQ) Less(i, j int) bool { return pq[i].label < pq[j].label }

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap; x must be of type *nodeItem.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
