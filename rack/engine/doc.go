// Package engine drives a rack patch in real time. It resolves a
// deterministic processing order for the module graph (Kahn's algorithm
// with a type-rank tie-break and cycle fallback), routes signals along
// cables before each module runs, and paces buffer rendering against a
// clock source with a fixed lookahead margin.
//
// Topological anomalies never stop the engine: dangling cables are
// skipped, self-loops feed a module its own previous-cycle output, and
// cycle members are processed in rank order with one cycle of latency
// across the feedback edge. The only fatal condition is starting the
// engine without a clock source.
package engine
