// Package httpapi exposes traffic assignment over HTTP.
//
// # Overview
//
//   - NewRouter — a chi router with request-ID, panic-recovery and
//     structured request logging middleware.
//   - POST /api/v1/assign — builds a network from the JSON body (links,
//     demands, solver options), equilibrates it and returns totals plus
//     per-link flows and costs.
//   - GET /healthz — liveness probe.
//
// Each request builds its own Network, so concurrent solves share no
// mutable state.
//
// # Errors
//
// Malformed bodies and invalid solver configurations map to
// 400 Bad Request with a JSON error payload; solver failures map
// to 422 Unprocessable Entity.
package httpapi
