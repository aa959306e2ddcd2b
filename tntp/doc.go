// Package tntp reads and writes transportation networks in the TNTP
// table format used by the TransportationNetworks dataset collection
// (https://github.com/bstabler/TransportationNetworks).
//
// # Overview
//
//   - ReadNetwork — parses a link table (init_node, term_node, capacity,
//     length, free_flow_time, b, power, speed, toll, link_type) into a
//     network.Network.
//   - ReadDemand — parses a trip table (init_node, term_node, demand)
//     into the same network; zero-volume and intra-zonal records are
//     skipped at load.
//   - Load — convenience wrapper opening both files from disk, deriving
//     the demand path from the network path when not given
//     ("City_net.tntp" → "City_trips.tntp").
//   - WriteFlows — writes an assignment result file: total travel time,
//     cost-function name, UE/SO marker, then one row per link with its
//     equilibrium flow and travel time.
//
// Metadata lines (<...>), comment lines (~...) and trailing semicolons
// are tolerated and ignored, so raw dataset files load without
// preprocessing.
//
// # Errors
//
//   - ErrNoHeader — no header row found before data.
//   - ErrMissingColumn — header lacks a required column.
//   - ErrBadRow — a data row fails to parse.
//
// # Thread-safety
//
// Functions are pure over their arguments; concurrent calls on distinct
// readers and networks are safe.
package tntp
