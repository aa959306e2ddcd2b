package assign

import (
	"fmt"

	"github.com/katalvlaran/wardrop/network"
	"github.com/katalvlaran/wardrop/shortest"
)

// loadAON performs an all-or-nothing load over the current link costs.
//
// For every origin zone it runs one Dijkstra pass; for every destination
// with positive demand it accumulates demand × shortest cost into SPTT (the
// shortest-path total travel time), and — when buildXbar is set — adds the
// demand onto every link of the shortest route, yielding the auxiliary flow
// vector x_bar.
//
// With buildXbar=false only SPTT is computed, which is how the per-iteration
// gap re-load avoids building a throwaway flow vector.
//
// Complexity: O(|origins| · (V + E) log V) for the Dijkstra passes plus the
// route walks.
func loadAON(net *network.Network, origins []string, buildXbar bool) (float64, map[network.LinkKey]float64, error) {
	var xbar map[network.LinkKey]float64
	if buildXbar {
		xbar = make(map[network.LinkKey]float64, net.LinkCount())
		for _, key := range net.LinkKeys() {
			xbar[key] = 0
		}
	}

	var sptt float64
	for _, origin := range origins {
		if err := shortest.Dijkstra(net, origin); err != nil {
			return 0, nil, fmt.Errorf("assign: all-or-nothing load from %q: %w", origin, err)
		}

		for _, dest := range net.Zone(origin).DestList {
			dem := net.DemandBetween(origin, dest)
			if dem <= 0 {
				continue
			}

			node, err := net.Node(dest)
			if err != nil {
				return 0, nil, fmt.Errorf("assign: demand destination %q: %w", dest, err)
			}
			sptt += node.Label * dem

			if buildXbar && origin != dest {
				links, err := shortest.TracePath(net, dest)
				if err != nil {
					return 0, nil, fmt.Errorf("assign: tracing route %s→%s: %w", origin, dest, err)
				}
				for _, key := range links {
					xbar[key] += dem
				}
			}
		}
	}

	return sptt, xbar, nil
}
