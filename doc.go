// Package wardrop is an in-memory toolkit for static traffic assignment —
// computing user-equilibrium or system-optimal flows on road networks with
// flow-dependent link costs.
//
// 🚀 What is wardrop?
//
//	A modern, deterministic library that brings together:
//		• Network model: nodes, directed links, zones & OD demand with mutable flow/cost state
//		• Cost functions: BPR (with exact derivative & integral), constant, Greenshields
//		• Shortest paths: heap-based Dijkstra over current link costs
//		• Link-based solvers: Method of Successive Averages, Frank–Wolfe, Conjugate Frank–Wolfe
//		• Path-based solvers: Gradient Projection with fixed step or exact line search
//		• Convergence tooling: relative-gap accounting, CSV dumps & HTML gap charts
//
// ✨ Why choose wardrop?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Deterministic – identical inputs reproduce identical equilibria
//   - Purpose-built numerics – convex line searches, no generic optimizer dependency
//   - Extensible – plug in custom cost functions and per-iteration gap recorders
//
// Under the hood, everything is organized under focused subpackages:
//
//	network/  — nodes, links, zones, OD demand & the owning Network aggregate
//	costfn/   — volume-delay cost functions with derivatives & integrals
//	shortest/ — single-source Dijkstra & shortest-route reconstruction
//	assign/   — the equilibrium solvers (MSA, FW, CFW, GP, GP-E) & gap computation
//	gaps/     — per-iteration convergence recording, CSV and chart output
//	tntp/     — TNTP-style network/demand readers & flow result writer
//	httpapi/  — JSON solve surface served by cmd/wardropd
//
// Quick ASCII example:
//
//	    A───────B
//	     \      │
//	      \     │
//	       ─────C
//
//	Demand A→C splits between the direct link and the two-leg route via B
//	until both used routes cost the same: Wardrop's first principle.
//
// Dive into README.md for full examples and the solver feature matrix.
//
//	go get github.com/katalvlaran/wardrop
package wardrop
