// Package trace provides structured tracing for the tally pipeline.
//
// Enable it from the command line:
//
//	tally eval --trace=- --trace-level=detail prog.tly
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory, dumped on failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// A level admits every scope up to its granularity:
//
//   - LevelPhase: ScopeDriver and ScopeStage (lex, parse, eval)
//   - LevelDetail: plus ScopeFile (one span per input in batch runs)
//   - LevelDebug: plus ScopeNode (one point per evaluated expression)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", parentID)
//	defer span.End("")
package trace
