// Package gaps collects per-iteration convergence diagnostics from a
// traffic-assignment run and exports them for inspection.
//
// # Overview
//
//   - Recorder — thread-safe accumulator of (elapsed, relative gap)
//     samples; its Record method plugs directly into
//     assign.WithGapRecorder.
//   - WriteCSV — two-column CSV export (elapsed seconds, gap) with
//     nine-decimal precision.
//   - RenderHTML / RenderToFile — a self-contained go-echarts line chart
//     of gap versus iteration, for eyeballing convergence behaviour.
//
// # Complexity
//
//   - Record: O(1) amortised.
//   - WriteCSV, RenderHTML: O(n) over recorded samples.
//
// # Errors
//
//   - ErrNoSamples — exporting an empty recorder.
//
// # Thread-safety
//
// Recorder is safe for concurrent use; every method takes an internal
// mutex. Exports observe a consistent snapshot of the samples.
package gaps
