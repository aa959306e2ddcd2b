package assign

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/wardrop/network"
	"github.com/katalvlaran/wardrop/shortest"
)

// Route is one explicit path of an OD pair's route set, owned by the
// path-based solver. Links reference the network's link identities, never
// the links themselves.
type Route struct {
	// Origin and Dest identify the OD pair this route serves.
	Origin string
	Dest   string

	// Links is the route's link sequence (as produced by shortest.TracePath).
	Links []network.LinkKey

	// Cost is the sum of current link costs along the route.
	Cost float64

	// Flow is the route's current flow volume.
	Flow float64
}

// runPathBased is the gradient projection iteration (GP with a fixed step,
// GP-E with exact line search):
//
//	Iteration 1: the shortest route of every OD pair is created and assigned
//	all demand. Each later iteration: recompute shortest routes; for every
//	existing non-shortest route, step its flow down along
//	(route.Cost − shortest.Cost)/h where h sums cost derivatives over the
//	links the two routes do not share; floor at zero; the shortest route
//	absorbs the remaining demand and is appended only when new. Link flows
//	are then rebuilt from route flows, costs recomputed, route costs
//	refreshed, and the gap observed exactly as in the link-based loop.
//
// Route sets grow monotonically: flows may decay to zero but routes are
// never deleted — an accepted memory/time tradeoff of the algorithm.
func runPathBased(net *network.Network, opts *Options) (Result, error) {
	origins := net.OriginZones()
	t := newTracker(opts, origins)

	// Route sets per OD pair, in deterministic OD order.
	pairs := make([]network.ODPair, 0, net.TripCount())
	for _, origin := range origins {
		for _, dest := range net.Zone(origin).DestList {
			pairs = append(pairs, network.ODPair{Origin: origin, Dest: dest})
		}
	}
	routes := make(map[network.ODPair][]*Route, len(pairs))

	for !t.converged() {
		t.iteration++

		shortestRoutes, err := shortestRouteSet(net, origins)
		if err != nil {
			return t.result(net), err
		}

		if t.iteration == 1 {
			// All demand onto the first shortest routes.
			for _, pair := range pairs {
				route := shortestRoutes[pair]
				route.Flow = net.DemandBetween(pair.Origin, pair.Dest)
				routes[pair] = append(routes[pair], route)
			}
		} else {
			var (
				alpha float64
				dirs  map[network.ODPair][]float64
			)
			if opts.Algorithm == GPE {
				alpha, dirs = exactGPStep(net, pairs, routes, shortestRoutes, opts)
			} else {
				alpha = opts.StepSize
				dirs = stepDirections(net, pairs, routes, shortestRoutes, opts)
			}

			if opts.Verbose {
				opts.Logger.Info("projection step",
					zap.Int("iteration", t.iteration),
					zap.Float64("alpha", alpha))
			}

			for _, pair := range pairs {
				sr := shortestRoutes[pair]
				appendNew := true
				var flowSum float64

				for idx, route := range routes[pair] {
					if dirs[pair][idx] == 0 {
						// The shortest route already lives in the set:
						// update it in place instead of appending.
						sr = route
						appendNew = false

						continue
					}
					route.Flow = math.Max(0, route.Flow-alpha*dirs[pair][idx])
					flowSum += route.Flow
				}

				// The shortest route absorbs whatever demand the others shed.
				sr.Flow = net.DemandBetween(pair.Origin, pair.Dest) - flowSum
				if appendNew {
					routes[pair] = append(routes[pair], sr)
				}
			}
		}

		// Rebuild link flows from route flows, then refresh costs both ways.
		rebuildLinkFlows(net, pairs, routes)
		updateCosts(net, opts)
		if err = refreshRouteCosts(net, pairs, routes); err != nil {
			return t.result(net), err
		}

		if err = t.observeGap(net); err != nil {
			return t.result(net), err
		}
		if !t.converged() && t.exhausted() {
			break
		}
	}

	return t.result(net), nil
}

// shortestRouteSet computes the current shortest route for every OD pair
// with positive demand: one Dijkstra pass per origin, one predecessor walk
// per destination.
func shortestRouteSet(net *network.Network, origins []string) (map[network.ODPair]*Route, error) {
	out := make(map[network.ODPair]*Route)
	for _, origin := range origins {
		if err := shortest.Dijkstra(net, origin); err != nil {
			return nil, err
		}

		for _, dest := range net.Zone(origin).DestList {
			if net.DemandBetween(origin, dest) <= 0 {
				continue
			}

			node, err := net.Node(dest)
			if err != nil {
				return nil, err
			}
			links, err := shortest.TracePath(net, dest)
			if err != nil {
				return nil, err
			}
			out[network.ODPair{Origin: origin, Dest: dest}] = &Route{
				Origin: origin,
				Dest:   dest,
				Cost:   node.Label,
				Links:  links,
			}
		}
	}

	return out, nil
}

// stepDirections computes the flow-shift direction of every stored route:
// (route.Cost − shortest.Cost) / h, with h from routeCurvature. A route
// whose link set equals the shortest route's gets direction 0 and becomes
// the in-place shift target; h == 0 yields +Inf, meaning the route's flow
// goes to zero immediately.
func stepDirections(
	net *network.Network,
	pairs []network.ODPair,
	routes map[network.ODPair][]*Route,
	shortestRoutes map[network.ODPair]*Route,
	opts *Options,
) map[network.ODPair][]float64 {
	dirs := make(map[network.ODPair][]float64, len(pairs))
	for _, pair := range pairs {
		sr := shortestRoutes[pair]
		dirs[pair] = make([]float64, len(routes[pair]))

		for idx, route := range routes[pair] {
			diff := symmetricDiff(route.Links, sr.Links)
			if len(diff) == 0 {
				// Identical link sets: this stored route *is* the shortest
				// route; later routes in the set compare against it.
				sr = route
				dirs[pair][idx] = 0

				continue
			}

			h := routeCurvature(net, diff, opts)
			if h == 0 {
				dirs[pair][idx] = math.Inf(1)

				continue
			}
			dirs[pair][idx] = (route.Cost - sr.Cost) / h
		}
	}

	return dirs
}

// routeCurvature sums the cost derivatives over the given links — the
// second derivative of the path-cost difference along the shift direction.
func routeCurvature(net *network.Network, links []network.LinkKey, opts *Options) float64 {
	var h float64
	for _, key := range links {
		link, err := net.Link(key)
		if err != nil {
			// Route links always exist; a miss would be a programming error
			// upstream, and contributes nothing here.
			continue
		}
		h += opts.CostDerivative(false,
			link.FreeFlowTime, link.Alpha, link.Flow, link.Capacity,
			link.Beta, link.Length, link.SpeedLimit)
	}

	return h
}

// exactGPStep finds the GP-E step size by minimizing the total integral cost
// over all candidate flow shifts simultaneously (golden-section search over
// [0,1], tolerance gpTolerance). A degenerate zero step is replaced by
// minGPStep so the projection always moves.
func exactGPStep(
	net *network.Network,
	pairs []network.ODPair,
	routes map[network.ODPair][]*Route,
	shortestRoutes map[network.ODPair]*Route,
	opts *Options,
) (float64, map[network.ODPair][]float64) {
	dirs := stepDirections(net, pairs, routes, shortestRoutes, opts)
	linkKeys := net.LinkKeys()

	objective := func(alpha float64) float64 {
		// Candidate link flows implied by shifting every route by alpha.
		tmpFlow := make(map[network.LinkKey]float64, len(linkKeys))

		for _, pair := range pairs {
			sr := shortestRoutes[pair]
			var flowSum float64

			for idx, route := range routes[pair] {
				shifted := math.Max(0, route.Flow-alpha*dirs[pair][idx])
				flowSum += shifted
				for _, key := range route.Links {
					tmpFlow[key] += shifted
				}
			}

			// Residual demand rides the freshly computed shortest route.
			residual := net.DemandBetween(pair.Origin, pair.Dest) - flowSum
			for _, key := range sr.Links {
				tmpFlow[key] += residual
			}
		}

		var total float64
		for _, key := range linkKeys {
			link, err := net.Link(key)
			if err != nil {
				continue
			}
			total += opts.CostIntegral(false,
				link.FreeFlowTime, link.Alpha, tmpFlow[key], link.Capacity,
				link.Beta, link.Length, link.SpeedLimit)
		}

		return total
	}

	alpha := goldenSection(objective, 0, 1, gpTolerance)
	if alpha == 0 {
		alpha = minGPStep
	}

	return alpha, dirs
}

// rebuildLinkFlows resets all link flows and re-accumulates them as the sum
// of route flows — link flow is always exactly that sum for the path-based
// solver.
func rebuildLinkFlows(net *network.Network, pairs []network.ODPair, routes map[network.ODPair][]*Route) {
	net.ResetFlow()
	for _, pair := range pairs {
		for _, route := range routes[pair] {
			for _, key := range route.Links {
				if link, err := net.Link(key); err == nil {
					link.Flow += route.Flow
				}
			}
		}
	}
}

// refreshRouteCosts recomputes every stored route's cost as the sum of its
// links' current costs.
func refreshRouteCosts(net *network.Network, pairs []network.ODPair, routes map[network.ODPair][]*Route) error {
	for _, pair := range pairs {
		for _, route := range routes[pair] {
			var cost float64
			for _, key := range route.Links {
				link, err := net.Link(key)
				if err != nil {
					return err
				}
				cost += link.Cost
			}
			route.Cost = cost
		}
	}

	return nil
}

// symmetricDiff returns the links present in exactly one of a and b.
// Routes never repeat a link, so set semantics over the slices are exact.
func symmetricDiff(a, b []network.LinkKey) []network.LinkKey {
	inA := make(map[network.LinkKey]bool, len(a))
	for _, key := range a {
		inA[key] = true
	}
	inB := make(map[network.LinkKey]bool, len(b))
	for _, key := range b {
		inB[key] = true
	}

	var out []network.LinkKey
	for _, key := range a {
		if !inB[key] {
			out = append(out, key)
		}
	}
	for _, key := range b {
		if !inA[key] {
			out = append(out, key)
		}
	}

	return out
}
