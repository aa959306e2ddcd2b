package network

import (
	"math"
	"sort"
)

// Network is the owning aggregate of all nodes, links, zones and OD demand.
//
// Iteration order over links and demands is insertion order, so a Network
// built from the same input always yields the same iteration sequence —
// solvers rely on this for run-to-run reproducibility.
type Network struct {
	nodes map[string]*Node
	links map[LinkKey]*Link
	zones map[string]*Zone
	trips map[ODPair]*Demand

	// linkOrder and tripOrder preserve insertion order for deterministic iteration.
	linkOrder []LinkKey
	tripOrder []ODPair
}

// New returns an empty Network.
func New() *Network {
	return &Network{
		nodes: make(map[string]*Node),
		links: make(map[LinkKey]*Link),
		zones: make(map[string]*Zone),
		trips: make(map[ODPair]*Demand),
	}
}

// AddNode inserts a node with the given ID if not already present and
// returns it. Returns ErrEmptyNodeID for an empty ID.
func (n *Network) AddNode(id string) (*Node, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	if node, ok := n.nodes[id]; ok {
		return node, nil
	}
	node := &Node{ID: id, Label: math.Inf(1), Pred: NoPred}
	n.nodes[id] = node

	return node, nil
}

// AddLink inserts a directed link from→to with the given static parameters,
// creating the endpoint nodes and adjacency entries as needed. The link
// starts at full capacity, zero flow and free-flow cost.
//
// Errors: ErrEmptyNodeID, ErrBadLink (free-flow time ≤ 0 or negative
// capacity), ErrDuplicateLink.
func (n *Network) AddLink(from, to string, p LinkParams) (*Link, error) {
	if from == "" || to == "" {
		return nil, ErrEmptyNodeID
	}
	if p.FreeFlowTime <= 0 || p.Capacity < 0 {
		return nil, ErrBadLink
	}
	key := LinkKey{From: from, To: to}
	if _, exists := n.links[key]; exists {
		return nil, ErrDuplicateLink
	}

	// Endpoint nodes exist before the link does.
	src, err := n.AddNode(from)
	if err != nil {
		return nil, err
	}
	dst, err := n.AddNode(to)
	if err != nil {
		return nil, err
	}

	link := &Link{
		From:          from,
		To:            to,
		MaxCapacity:   p.Capacity,
		Length:        p.Length,
		FreeFlowTime:  p.FreeFlowTime,
		Alpha:         p.Alpha,
		Beta:          p.Beta,
		SpeedLimit:    p.SpeedLimit,
		Toll:          p.Toll,
		LinkType:      p.LinkType,
		capacityScale: 1,
		Capacity:      p.Capacity,
		Cost:          p.FreeFlowTime,
	}
	n.links[key] = link
	n.linkOrder = append(n.linkOrder, key)

	// Adjacency entries are unique per neighbor even with parallel inputs.
	if !contains(src.Out, to) {
		src.Out = append(src.Out, to)
	}
	if !contains(dst.In, from) {
		dst.In = append(dst.In, from)
	}

	return link, nil
}

// AddDemand records an OD demand entry and maintains the zone set and the
// origin zone's destination list.
//
// Zero-volume and self-referential entries are excluded by contract: they
// are silently dropped, never stored. Negative volumes return ErrBadDemand.
func (n *Network) AddDemand(origin, dest string, volume float64) error {
	if origin == "" || dest == "" {
		return ErrEmptyNodeID
	}
	if volume < 0 {
		return ErrBadDemand
	}
	if origin == dest || volume == 0 {
		return nil
	}

	pair := ODPair{Origin: origin, Dest: dest}
	if d, ok := n.trips[pair]; ok {
		// Repeated entries for one pair accumulate.
		d.Volume += volume

		return nil
	}
	n.trips[pair] = &Demand{Origin: origin, Dest: dest, Volume: volume}
	n.tripOrder = append(n.tripOrder, pair)

	org := n.zone(origin)
	n.zone(dest)
	if !contains(org.DestList, dest) {
		org.DestList = append(org.DestList, dest)
	}

	return nil
}

// zone returns the zone with the given ID, creating it on first use.
func (n *Network) zone(id string) *Zone {
	if z, ok := n.zones[id]; ok {
		return z
	}
	z := &Zone{ID: id}
	n.zones[id] = z

	return z
}

// Node returns the node with the given ID, or ErrNodeNotFound.
func (n *Network) Node(id string) (*Node, error) {
	node, ok := n.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound
	}

	return node, nil
}

// HasNode reports whether a node with the given ID exists.
func (n *Network) HasNode(id string) bool {
	_, ok := n.nodes[id]

	return ok
}

// Link returns the link identified by key, or ErrLinkNotFound.
func (n *Network) Link(key LinkKey) (*Link, error) {
	link, ok := n.links[key]
	if !ok {
		return nil, ErrLinkNotFound
	}

	return link, nil
}

// Links returns all links in insertion order. The returned slice is shared
// state: callers must not reorder or mutate it.
func (n *Network) Links() []*Link {
	out := make([]*Link, 0, len(n.linkOrder))
	for _, key := range n.linkOrder {
		out = append(out, n.links[key])
	}

	return out
}

// LinkKeys returns all link keys in insertion order.
func (n *Network) LinkKeys() []LinkKey {
	out := make([]LinkKey, len(n.linkOrder))
	copy(out, n.linkOrder)

	return out
}

// Nodes returns every node. Order is unspecified; callers needing a stable
// order should sort by ID.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, node)
	}

	return out
}

// Zone returns the zone with the given ID, or nil when absent.
func (n *Network) Zone(id string) *Zone {
	return n.zones[id]
}

// Demands returns all OD demand entries in insertion order.
func (n *Network) Demands() []*Demand {
	out := make([]*Demand, 0, len(n.tripOrder))
	for _, pair := range n.tripOrder {
		out = append(out, n.trips[pair])
	}

	return out
}

// DemandBetween returns the demand volume from origin to dest
// (0 when no entry exists).
func (n *Network) DemandBetween(origin, dest string) float64 {
	if d, ok := n.trips[ODPair{Origin: origin, Dest: dest}]; ok {
		return d.Volume
	}

	return 0
}

// OriginZones returns the sorted IDs of every zone appearing as the origin
// of at least one demand entry.
func (n *Network) OriginZones() []string {
	seen := make(map[string]bool, len(n.zones))
	out := make([]string, 0, len(n.zones))
	for _, pair := range n.tripOrder {
		if !seen[pair.Origin] {
			seen[pair.Origin] = true
			out = append(out, pair.Origin)
		}
	}
	sort.Strings(out)

	return out
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodes) }

// LinkCount returns the number of links.
func (n *Network) LinkCount() int { return len(n.links) }

// ZoneCount returns the number of zones.
func (n *Network) ZoneCount() int { return len(n.zones) }

// TripCount returns the number of stored OD demand entries.
func (n *Network) TripCount() int { return len(n.tripOrder) }

// TotalDemand returns the sum of all demand volumes.
func (n *Network) TotalDemand() float64 {
	var total float64
	for _, pair := range n.tripOrder {
		total += n.trips[pair].Volume
	}

	return total
}

// ResetFlow zeroes every link's flow and restores free-flow costs.
// Solvers call this once before their loop so runs are independent.
func (n *Network) ResetFlow() {
	for _, key := range n.linkOrder {
		n.links[key].ResetFlow()
	}
}

// Reset restores every link to full capacity, zero flow and free-flow cost.
func (n *Network) Reset() {
	for _, key := range n.linkOrder {
		n.links[key].Reset()
	}
}

// contains reports whether s holds v. Adjacency and destination lists stay
// small, so a linear scan beats a side map.
func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
